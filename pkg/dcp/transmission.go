package dcp

import(
	"fmt"
	"image"
	"sync"

	"github.com/dpearson/defog/pkg/fgrid"
)

// windowAt computes the dark-channel window centered on (x,y):
// [x-w/2, x+w/2) x [y-w/2, y+w/2), clamped to the image bounds. No
// wraparound, no padding - a corner pixel just gets the quarter of
// the window that fits.
func windowAt(cfg Config, bounds image.Rectangle, x, y int) image.Rectangle {
	half := cfg.MapWidth / 2
	w := image.Rect(x-half, y-half, x+half, y+half)
	return w.Intersect(bounds)
}

// BuildTransmissionMap estimates per-pixel transmission: for each
// pixel, find the dark channel of the window around it, and take
// t = 1 - darkChannelValue/light. The returned grid holds raw t
// values, unclamped; they only get scaled/saturated when rendered.
//
// Every pixel depends only on the read-only inputs, so the rows are
// partitioned across Config.Workers goroutines.
func BuildTransmissionMap(cfg Config, img *fgrid.RGBGrid, light float64) (fgrid.FloatGrid, error) {
	if light <= 0 {
		return fgrid.FloatGrid{}, fmt.Errorf("build transmission map: light intensity %f must be > 0", light)
	}

	bounds := img.Bounds()
	tmap := fgrid.NewFloatGrid(bounds.Dx(), bounds.Dy())

	var wg sync.WaitGroup
	for _, band := range rowBands(bounds.Dy(), cfg.Workers) {
		wg.Add(1)
		go func(yMin, yMax int) {
			defer wg.Done()
			for y:=yMin; y<yMax; y++ {
				for x:=0; x<bounds.Dx(); x++ {
					darkChan := FindDarkChannel(img, windowAt(cfg, bounds, x, y))
					t := 1.0 - img.Get(x, y, darkChan)/light
					tmap.Set(x, y, t)
				}
			}
		}(band.min, band.max)
	}
	wg.Wait()

	return tmap, nil
}

type rowBand struct {
	min, max int
}

// rowBands splits [0,height) into up to n contiguous bands, one per
// worker. Bands are disjoint, so workers never write the same pixel.
func rowBands(height, n int) []rowBand {
	if n > height { n = height }
	if n < 1      { n = 1 }

	bands := make([]rowBand, 0, n)
	per := height / n
	for i:=0; i<n; i++ {
		band := rowBand{min: i*per, max: (i+1)*per}
		if i == n-1 { band.max = height }
		bands = append(bands, band)
	}
	return bands
}

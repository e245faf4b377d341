package dcp

import(
	"sync"

	"github.com/dpearson/defog/pkg/fgrid"
)

// RecoverRadiance inverts the haze imaging model I = J*t + A*(1-t)
// for every pixel and channel:
//
//	J = (I - A) / max(t, floor) + A
//
// where A is the atmospheric light and t the pixel's transmission
// estimate. The floor keeps near-zero transmission from blowing a
// pixel up. Recovered values are left unclamped here; saturation to
// the displayable range happens when the grid is rendered to an
// image.
//
// Like the transmission pass, this is a per-pixel map over read-only
// inputs, split into row bands across Config.Workers goroutines.
func RecoverRadiance(cfg Config, img *fgrid.RGBGrid, tmap *fgrid.FloatGrid, light float64) fgrid.RGBGrid {
	out := img.NewFromThis()

	var wg sync.WaitGroup
	for _, band := range rowBands(img.Dy(), cfg.Workers) {
		wg.Add(1)
		go func(yMin, yMax int) {
			defer wg.Done()
			for y:=yMin; y<yMax; y++ {
				for x:=0; x<img.Dx(); x++ {
					t := tmap.Get(x, y)
					if t < cfg.TransmissionFloor {
						t = cfg.TransmissionFloor
					}
					for c:=fgrid.R; c<=fgrid.B; c++ {
						out.Set(x, y, c, (img.Get(x, y, c) - light)/t + light)
					}
				}
			}
		}(band.min, band.max)
	}
	wg.Wait()

	return out
}

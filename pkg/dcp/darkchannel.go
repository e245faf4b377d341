package dcp

import(
	"image"

	"github.com/dpearson/defog/pkg/fgrid"
)

// FindDarkChannel scans every pixel in the region `r` (half-open,
// wholly inside the grid) and returns the channel index of the
// region's darkest pixel - the pixel whose smallest channel value is
// smallest across the region.
//
// Scan order is row-major; ties between pixels go to the first pixel
// encountered, and ties within a pixel go to the first channel in
// R,G,B order, so the result is deterministic.
func FindDarkChannel(img *fgrid.RGBGrid, r image.Rectangle) fgrid.Channel {
	min, minChan := img.PixelMin(r.Min.X, r.Min.Y)

	for y:=r.Min.Y; y<r.Max.Y; y++ {
		for x:=r.Min.X; x<r.Max.X; x++ {
			if v, c := img.PixelMin(x, y); v < min {
				min = v
				minChan = c
			}
		}
	}

	return minChan
}

package dcp

import(
	"image"
	"testing"

	"github.com/dpearson/defog/pkg/fgrid"
)

func uniformGrid(w, h int, v float64) fgrid.RGBGrid {
	rg := fgrid.NewRGBGrid(w, h)
	for x:=0; x<w; x++ {
		for y:=0; y<h; y++ {
			for c:=fgrid.R; c<=fgrid.B; c++ {
				rg.Set(x, y, c, v)
			}
		}
	}
	return rg
}

func TestFindDarkChannel(t *testing.T) {
	t.Run("minimality", func(t *testing.T) {
		// The winning channel's value at the winning pixel must be
		// <= every pixel's own minimum in the region.
		rg := uniformGrid(8, 8, 100)
		rg.Set(3, 5, fgrid.G, 7)  // region-wide darkest value, on G
		rg.Set(6, 1, fgrid.B, 20)

		r := image.Rect(0, 0, 8, 8)
		ch := FindDarkChannel(&rg, r)
		if ch != fgrid.G {
			t.Fatalf("expected G, got %s", ch)
		}

		winning := rg.Get(3, 5, ch)
		for y:=r.Min.Y; y<r.Max.Y; y++ {
			for x:=r.Min.X; x<r.Max.X; x++ {
				if min, _ := rg.PixelMin(x, y); winning > min {
					t.Fatalf("winning value %f > pixel (%d,%d) min %f", winning, x, y, min)
				}
			}
		}
	})

	t.Run("uniform region tie-break is deterministic", func(t *testing.T) {
		rg := uniformGrid(16, 16, 42)
		r := image.Rect(0, 0, 16, 16)

		// All channels of all pixels tie; first channel of the first
		// pixel in scan order must win, every time.
		for i:=0; i<5; i++ {
			if ch := FindDarkChannel(&rg, r); ch != fgrid.R {
				t.Fatalf("run %d: expected R on a uniform region, got %s", i, ch)
			}
		}
	})

	t.Run("1x1 region returns the pixel's own min channel", func(t *testing.T) {
		rg := uniformGrid(4, 4, 200)
		rg.Set(2, 2, fgrid.B, 10)

		if ch := FindDarkChannel(&rg, image.Rect(2, 2, 3, 3)); ch != fgrid.B {
			t.Fatalf("expected B, got %s", ch)
		}
		// And a different 1x1 region is unaffected by (2,2).
		if ch := FindDarkChannel(&rg, image.Rect(0, 0, 1, 1)); ch != fgrid.R {
			t.Fatalf("expected R, got %s", ch)
		}
	})

	t.Run("within-pixel ties go to the first channel", func(t *testing.T) {
		rg := uniformGrid(4, 4, 100)
		rg.Set(1, 1, fgrid.G, 5)
		rg.Set(1, 1, fgrid.B, 5) // G and B tie at the darkest pixel

		if ch := FindDarkChannel(&rg, image.Rect(0, 0, 4, 4)); ch != fgrid.G {
			t.Fatalf("expected G (first of the tied channels), got %s", ch)
		}
	})
}

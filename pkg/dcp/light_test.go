package dcp

import(
	"image"
	"math"
	"testing"

	"github.com/dpearson/defog/pkg/fgrid"
)

func grayOf(rg *fgrid.RGBGrid) fgrid.FloatGrid {
	return rg.Gray()
}

func TestEstimateLight(t *testing.T) {
	cfg := NewConfig()

	t.Run("unique brightest pixel wins", func(t *testing.T) {
		// 40x40 = 1600 pixels, so the 0.1% candidate set degenerates
		// to a single slot.
		rg := uniformGrid(40, 40, 100)
		rg.Set(5, 7, fgrid.R, 200)
		rg.Set(5, 7, fgrid.G, 210)
		rg.Set(5, 7, fgrid.B, 220)
		gray := grayOf(&rg)

		light, err := EstimateLight(cfg, &rg, &gray, image.Rect(0, 0, 40, 40))
		if err != nil {
			t.Fatal(err)
		}
		if want := gray.Get(5, 7); light != want {
			t.Fatalf("expected intensity %f of the unique bright pixel, got %f", want, light)
		}
	})

	t.Run("larger candidate set still finds the brightest", func(t *testing.T) {
		// 100x100 = 10000 pixels -> 10 candidate slots.
		rg := uniformGrid(100, 100, 50)
		for i:=0; i<20; i++ {
			v := 100.0 + float64(i*5)
			for c:=fgrid.R; c<=fgrid.B; c++ {
				rg.Set(i, 30, c, v)
			}
		}
		gray := grayOf(&rg)

		light, err := EstimateLight(cfg, &rg, &gray, image.Rect(0, 0, 100, 100))
		if err != nil {
			t.Fatal(err)
		}
		if want := gray.Get(19, 30); light != want {
			t.Fatalf("expected %f, got %f", want, light)
		}
	})

	t.Run("empty candidate set is a configuration error", func(t *testing.T) {
		rg := uniformGrid(10, 10, 100)
		gray := grayOf(&rg)

		// 100 pixels x 0.001 floors to zero slots.
		if _, err := EstimateLight(cfg, &rg, &gray, image.Rect(0, 0, 10, 10)); err == nil {
			t.Fatal("expected an error for an empty candidate set")
		}
	})

	t.Run("exact top-K agrees on a simple image", func(t *testing.T) {
		rg := uniformGrid(40, 40, 100)
		rg.Set(12, 3, fgrid.R, 250)
		rg.Set(12, 3, fgrid.G, 250)
		rg.Set(12, 3, fgrid.B, 250)
		gray := grayOf(&rg)
		r := image.Rect(0, 0, 40, 40)

		approx, err := EstimateLight(cfg, &rg, &gray, r)
		if err != nil {
			t.Fatal(err)
		}

		exactCfg := cfg
		exactCfg.ExactTopK = true
		exact, err := EstimateLight(exactCfg, &rg, &gray, r)
		if err != nil {
			t.Fatal(err)
		}

		if math.Abs(approx - exact) > 1e-12 {
			t.Fatalf("first-fit %f vs exact %f", approx, exact)
		}
	})

	t.Run("exact top-K is deterministic under ties", func(t *testing.T) {
		// 100x100 -> 10 candidate slots, filled entirely by pixels
		// whose (val, intensity) pairs tie. The stable sort keeps
		// candidate order (and so the result) identical across runs.
		rg := uniformGrid(100, 100, 50)
		for i:=0; i<30; i++ {
			for c:=fgrid.R; c<=fgrid.B; c++ {
				rg.Set(i, 40, c, 180)
			}
		}
		gray := grayOf(&rg)
		r := image.Rect(0, 0, 100, 100)

		exactCfg := cfg
		exactCfg.ExactTopK = true

		first, err := EstimateLight(exactCfg, &rg, &gray, r)
		if err != nil {
			t.Fatal(err)
		}
		if want := gray.Get(0, 40); first != want {
			t.Fatalf("expected %f, got %f", want, first)
		}
		for i:=0; i<5; i++ {
			again, err := EstimateLight(exactCfg, &rg, &gray, r)
			if err != nil {
				t.Fatal(err)
			}
			if again != first {
				t.Fatalf("run %d: %f != %f", i, again, first)
			}
		}
	})
}

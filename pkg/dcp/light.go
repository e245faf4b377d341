package dcp

import(
	"fmt"
	"image"
	"sort"

	"github.com/dpearson/defog/pkg/fgrid"
)

// A candidate pixel held while selecting the brightest dark-channel
// pixels. Never outlives the estimation call that produced it.
type channelValue struct {
	x, y      int
	val       float64 // the pixel's value on the region's dark channel
	intensity float64 // the pixel's grayscale intensity
}

// EstimateLight returns the atmospheric light intensity for the
// region: the grayscale intensity of the brightest pixel among the
// top BrightFraction of pixels ranked by dark-channel value.
//
// The "top" set is filled with a first-fit replacement scan: for each
// pixel we walk the candidate slots in order and overwrite the first
// slot holding a lexicographically smaller (val, intensity) pair.
// That is not an exact top-K selection - a bright pixel can evict a
// brighter one that happened to land in an earlier slot - but it is
// the selection the original algorithm shipped with and its tuned
// constants depend on it, so it stays the default. Config.ExactTopK
// switches to a true top-K sort.
//
// The first-fit scan is order-dependent, so this function is
// deliberately sequential.
func EstimateLight(cfg Config, img *fgrid.RGBGrid, gray *fgrid.FloatGrid, r image.Rectangle) (float64, error) {
	topNum := int(float64(r.Dx() * r.Dy()) * cfg.BrightFraction)
	if topNum < 1 {
		return 0, fmt.Errorf("estimate light: region %v x fraction %f gives empty candidate set", r, cfg.BrightFraction)
	}

	darkChan := FindDarkChannel(img, r)

	if cfg.ExactTopK {
		return estimateLightExact(img, gray, r, darkChan, topNum), nil
	}

	top := make([]channelValue, topNum)
	for i:=0; i<topNum; i++ {
		top[i] = channelValue{x: -1, y: -1, val: -1.0, intensity: -1.0}
	}

	for y:=r.Min.Y; y<r.Max.Y; y++ {
		for x:=r.Min.X; x<r.Max.X; x++ {
			val := img.Get(x, y, darkChan)
			intensity := gray.Get(x, y)

			for i:=0; i<topNum; i++ {
				if top[i].val < val || (top[i].val == val && top[i].intensity < intensity) {
					top[i] = channelValue{x: x, y: y, val: val, intensity: intensity}
					break
				}
			}
		}
	}

	max := channelValue{intensity: -1.0}
	for i:=0; i<topNum; i++ {
		if top[i].intensity > max.intensity {
			max = top[i]
		}
	}

	return max.intensity, nil
}

// estimateLightExact keeps every pixel, sorts by (val, intensity)
// descending, and takes the brightest intensity among the first
// topNum. Available behind Config.ExactTopK for comparison against
// the first-fit heuristic.
func estimateLightExact(img *fgrid.RGBGrid, gray *fgrid.FloatGrid, r image.Rectangle, darkChan fgrid.Channel, topNum int) float64 {
	all := make([]channelValue, 0, r.Dx()*r.Dy())
	for y:=r.Min.Y; y<r.Max.Y; y++ {
		for x:=r.Min.X; x<r.Max.X; x++ {
			all = append(all, channelValue{x: x, y: y, val: img.Get(x, y, darkChan), intensity: gray.Get(x, y)})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].val != all[j].val {
			return all[i].val > all[j].val
		}
		return all[i].intensity > all[j].intensity
	})

	max := -1.0
	for i:=0; i<topNum && i<len(all); i++ {
		if all[i].intensity > max {
			max = all[i].intensity
		}
	}
	return max
}

package fgrid

import(
	"fmt"
	"image"
	"image/color"
	"log"
	"math"

	"github.com/codahale/hdrhistogram"
	"github.com/fogleman/gg" // Move to https://pkg.go.dev/golang.org/x/image/font#Drawer sometime
	"github.com/lucasb-eyer/go-colorful"
)

// A FloatGrid is a single-channel grid of floats, with some
// operations. Pixel values are float64 but nominally live in the
// 0-255 domain of the 8-bit images we read and write.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (g1 *FloatGrid)NewFromThis() FloatGrid  { return NewFloatGrid(g1.Dx(), g1.Dy()) }
func (fg *FloatGrid)Set(x, y int, v float64) { fg.values[fg.stride*y + x] = v }
func (fg *FloatGrid)Get(x, y int) float64    { return fg.values[fg.stride*y + x] }
func (fg *FloatGrid)Dx() int                 { return fg.stride }
func (fg *FloatGrid)Dy() int                 { return len(fg.values) / fg.stride }
func (fg *FloatGrid)Bounds() image.Rectangle { return image.Rect(0, 0, fg.Dx(), fg.Dy()) }

func (g1 *FloatGrid)Copy() *FloatGrid {
	g2 := FloatGrid{stride: g1.stride, values:make([]float64, len(g1.values))}
	copy(g2.values, g1.values)
	return &g2
}

func (fg *FloatGrid)MinMax() (float64, float64) {
	min := math.MaxFloat64
	max := -1.0 * min

	for i:=0 ; i<len(fg.values) ; i++ {
		if fg.values[i] > max { max = fg.values[i] }
		if fg.values[i] < min { min = fg.values[i] }
	}
	return min, max
}

func (fg *FloatGrid)Stats() string {
	min, max := fg.MinMax()
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}]", fg.Dx(), fg.Dy(), min, max)
}

// Quantiles buckets the grid's values (after scaling) into a
// histogram and returns the p01/p50/p99 values. Used for logging what
// a transmission map looks like without dumping the whole thing.
func (fg *FloatGrid)Quantiles(scale float64) (int64, int64, int64) {
	h := hdrhistogram.New(1, 0xFFFF, 3)
	for i:=0; i<len(fg.values); i++ {
		v := fg.values[i] * scale
		if v < 0 { v = 0 }
		if v > 0xFFFF { v = 0xFFFF }
		if err := h.RecordValue(int64(v)); err != nil {
			log.Printf("fgrid.Quantiles, recording %f: %v\n", v, err)
		}
	}
	return h.ValueAtQuantile(1), h.ValueAtQuantile(50), h.ValueAtQuantile(99)
}

// ToScaledGray renders the grid as an 8-bit grayscale image,
// multiplying each value by `scale` and saturating to [0,255]. This
// is the raw rendering used for the transmission map output file.
func (fg *FloatGrid)ToScaledGray(scale float64) *image.Gray {
	img := image.NewGray(fg.Bounds())
	for x:=0; x<fg.Dx(); x++ {
		for y:=0; y<fg.Dy(); y++ {
			v := fg.Get(x, y) * scale
			if v < 0 { v = 0 }
			if v > 255 { v = 255 }
			img.SetGray(x, y, color.Gray{uint8(v)})
		}
	}
	return img
}

// ToImg saves a simple grayscale, normalized to the range of values
// in the grid, and gamma scaling the gray to look normal for human
// vision
func (fg *FloatGrid)ToImg(title, filename string) {
	min, max := fg.MinMax()
	if max <= min { max = min + 1 }

	img := image.NewRGBA64(fg.Bounds())
	for x:=0; x<fg.Dx(); x++ {
		for y:=0; y<fg.Dy(); y++ {
			gray := gammaExpand((fg.Get(x,y) - min) / (max - min))
			col := color.RGBA64{uint16(gray * 65535.0), uint16(gray * 65535.0), uint16(gray * 65535.0), 0xFFFF}
			img.Set(x, y, col)
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1,1,1)
	dc.DrawString(title, 50, 50)
	dc.SavePNG(filename)
}

// ToFalseColorImg saves a blue-to-red heatmap of the grid, normalized
// to its value range. Low transmission (hazy) comes out red.
func (fg *FloatGrid)ToFalseColorImg(title, filename string) {
	min, max := fg.MinMax()
	if max <= min { max = min + 1 }

	img := image.NewRGBA(fg.Bounds())
	for x:=0; x<fg.Dx(); x++ {
		for y:=0; y<fg.Dy(); y++ {
			frac := (fg.Get(x,y) - min) / (max - min)
			r, g, b := colorful.Hsv(240.0 * frac, 1.0, 1.0).RGB255()
			img.Set(x, y, color.RGBA{r, g, b, 0xFF})
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1,1,1)
	dc.DrawString(title, 50, 50)
	dc.SavePNG(filename)
}

// https://www.sjbrown.co.uk/posts/gamma-correct-rendering/ - "linear RGB to sRGB"
// `f` is assumed to be in the range [0,1]
func gammaExpand(f float64) float64 {
	if f <= 0.0031308 {
		return 12.92 * f
	}
	return 1.055 * math.Pow(f, 1.0/2.4) - 0.055
}

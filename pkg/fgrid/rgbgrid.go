package fgrid

import(
	"image"
	"image/color"
)

// Channel identifies one of the three color channels of an RGBGrid,
// in the grid's native storage order.
type Channel int

const(
	R Channel = iota
	G
	B
	NumChannels = 3
)

func (c Channel)String() string {
	switch c {
	case R: return "R"
	case G: return "G"
	case B: return "B"
	}
	return "?"
}

// An RGBGrid is a three-channel grid of floats, one R,G,B triple per
// pixel, interleaved. Like FloatGrid, values nominally live in 0-255.
type RGBGrid struct {
	stride int
	values []float64
}

func NewRGBGrid(w, h int) RGBGrid {
	return RGBGrid{
		stride: w,
		values: make([]float64, w*h*NumChannels),
	}
}

func (rg *RGBGrid)NewFromThis() RGBGrid              { return NewRGBGrid(rg.Dx(), rg.Dy()) }
func (rg *RGBGrid)Set(x, y int, c Channel, v float64) { rg.values[(rg.stride*y + x)*NumChannels + int(c)] = v }
func (rg *RGBGrid)Get(x, y int, c Channel) float64    { return rg.values[(rg.stride*y + x)*NumChannels + int(c)] }
func (rg *RGBGrid)Dx() int                            { return rg.stride }
func (rg *RGBGrid)Dy() int                            { return len(rg.values) / (rg.stride * NumChannels) }
func (rg *RGBGrid)Bounds() image.Rectangle            { return image.Rect(0, 0, rg.Dx(), rg.Dy()) }

// PixelMin returns the smallest of the pixel's three channel values,
// and which channel held it. Ties go to the first channel in R,G,B
// order.
func (rg *RGBGrid)PixelMin(x, y int) (float64, Channel) {
	min := rg.Get(x, y, R)
	minChan := R
	for c:=G; c<=B; c++ {
		if v := rg.Get(x, y, c); v < min {
			min = v
			minChan = c
		}
	}
	return min, minChan
}

// NewRGBGridFromImage pulls an image into a float grid, mapping each
// channel onto 0-255 regardless of the source bit depth.
func NewRGBGridFromImage(img image.Image) RGBGrid {
	bounds := img.Bounds()
	rg := NewRGBGrid(bounds.Dx(), bounds.Dy())

	for x:=bounds.Min.X; x<bounds.Max.X; x++ {
		for y:=bounds.Min.Y; y<bounds.Max.Y; y++ {
			r, g, b, _ := img.At(x, y).RGBA()
			rg.Set(x-bounds.Min.X, y-bounds.Min.Y, R, float64(r) / 257.0)
			rg.Set(x-bounds.Min.X, y-bounds.Min.Y, G, float64(g) / 257.0)
			rg.Set(x-bounds.Min.X, y-bounds.Min.Y, B, float64(b) / 257.0)
		}
	}
	return rg
}

// ToImage renders the grid as an 8-bit RGBA image, saturating each
// channel to [0,255]. Radiance recovery can push channel values
// outside the displayable range; this is the one place they clip.
func (rg *RGBGrid)ToImage() *image.RGBA {
	img := image.NewRGBA(rg.Bounds())
	for x:=0; x<rg.Dx(); x++ {
		for y:=0; y<rg.Dy(); y++ {
			img.Set(x, y, color.RGBA{
				R: sat8(rg.Get(x, y, R)),
				G: sat8(rg.Get(x, y, G)),
				B: sat8(rg.Get(x, y, B)),
				A: 0xFF,
			})
		}
	}
	return img
}

// Gray collapses the grid to single-channel luma, using the same
// weights OpenCV's RGB2GRAY uses (ITU-R BT.601).
func (rg *RGBGrid)Gray() FloatGrid {
	fg := NewFloatGrid(rg.Dx(), rg.Dy())
	for x:=0; x<rg.Dx(); x++ {
		for y:=0; y<rg.Dy(); y++ {
			lum := 0.299*rg.Get(x,y,R) + 0.587*rg.Get(x,y,G) + 0.114*rg.Get(x,y,B)
			fg.Set(x, y, lum)
		}
	}
	return fg
}

func sat8(v float64) uint8 {
	if v < 0 { return 0 }
	if v > 255 { return 255 }
	return uint8(v + 0.5)
}

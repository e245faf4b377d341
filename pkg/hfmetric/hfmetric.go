// Package hfmetric counts high-frequency pixels in an image: the
// number of coefficients in the forward 2D DFT whose real component
// exceeds a cutoff. It only exists to report before/after quality
// around the restoration - more high-frequency content should mean
// less fog. It never feeds back into the restoration itself.
package hfmetric

import(
	"image"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/dpearson/defog/pkg/fgrid"
)

// Count converts the image to grayscale and counts DFT coefficients
// whose real part exceeds `cutoff` (127 on the original's 0-255
// scale).
func Count(img image.Image, cutoff float64) int {
	rg := fgrid.NewRGBGridFromImage(img)
	gray := rg.Gray()
	return CountGrid(&gray, cutoff)
}

// CountGrid is Count for an already-grayscale grid.
func CountGrid(gray *fgrid.FloatGrid, cutoff float64) int {
	coeffs := dft2d(gray)

	n := 0
	for _, v := range coeffs {
		if real(v) > cutoff {
			n++
		}
	}
	return n
}

// dft2d runs the forward transform over rows, then over columns of
// the row result. Row-column decomposition of the 2D DFT.
func dft2d(fg *fgrid.FloatGrid) []complex128 {
	w := fg.Dx()
	h := fg.Dy()

	data := make([]complex128, w*h)
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			data[y*w + x] = complex(fg.Get(x, y), 0)
		}
	}

	rowFFT := fourier.NewCmplxFFT(w)
	row := make([]complex128, w)
	for y:=0; y<h; y++ {
		copy(row, data[y*w : (y+1)*w])
		rowFFT.Coefficients(data[y*w : (y+1)*w], row)
	}

	colFFT := fourier.NewCmplxFFT(h)
	colIn := make([]complex128, h)
	colOut := make([]complex128, h)
	for x:=0; x<w; x++ {
		for y:=0; y<h; y++ {
			colIn[y] = data[y*w + x]
		}
		colFFT.Coefficients(colOut, colIn)
		for y:=0; y<h; y++ {
			data[y*w + x] = colOut[y]
		}
	}

	return data
}

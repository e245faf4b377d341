package dcp

import(
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/tiff"
)

// LoadColorImage decodes the file and verifies it is a 3-channel
// color image. Grayscale inputs are rejected outright: the algorithm
// needs three channels to have a dark channel at all.
func LoadColorImage(cfg Config, filename string) (image.Image, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open+r '%s': %v", filename, err)
	}
	defer reader.Close()

	img, format, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("decoding '%s': %v", filename, err)
	}

	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return nil, fmt.Errorf("'%s' is grayscale; need a 3-channel color image", filename)
	}
	if b := img.Bounds(); b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("'%s' is empty (%v)", filename, b)
	}

	if cfg.Verbosity > 0 {
		log.Printf("Loaded %s (%s, %dx%d)\n", filename, format, img.Bounds().Dx(), img.Bounds().Dy())
		maybeLogExif(filename)
	}

	return img, nil
}

// maybeLogExif reports camera metadata when the container carries
// any. Purely informational, so decode failures are not errors.
func maybeLogExif(filename string) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".tif", ".tiff":
	default:
		return
	}

	reader, err := os.Open(filename)
	if err != nil {
		return
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if err != nil {
		return
	}

	if tag, err := ex.Get(exif.Model); err == nil {
		if model, err := tag.StringVal(); err == nil {
			log.Printf("  camera model: %s\n", model)
		}
	}
	if when, err := ex.DateTime(); err == nil {
		log.Printf("  shot at: %s\n", when)
	}
}

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}

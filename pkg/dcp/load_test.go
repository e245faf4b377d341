package dcp

import(
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadColorImage(t *testing.T) {
	cfg := NewConfig()
	dir := t.TempDir()

	t.Run("color png loads", func(t *testing.T) {
		name := filepath.Join(dir, "color.png")
		img := image.NewRGBA(image.Rect(0, 0, 4, 4))
		img.Set(1, 1, color.RGBA{200, 10, 30, 255})
		writeTestPNG(t, name, img)

		loaded, err := LoadColorImage(cfg, name)
		if err != nil {
			t.Fatal(err)
		}
		if loaded.Bounds() != img.Bounds() {
			t.Fatalf("bounds mismatch: %v", loaded.Bounds())
		}
	})

	t.Run("grayscale png is rejected", func(t *testing.T) {
		name := filepath.Join(dir, "gray.png")
		writeTestPNG(t, name, image.NewGray(image.Rect(0, 0, 4, 4)))

		if _, err := LoadColorImage(cfg, name); err == nil {
			t.Fatal("expected grayscale input to be rejected")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadColorImage(cfg, filepath.Join(dir, "nope.png")); err == nil {
			t.Fatal("expected an error for a missing file")
		}
	})

	t.Run("undecodable file", func(t *testing.T) {
		name := filepath.Join(dir, "junk.png")
		if err := os.WriteFile(name, []byte("not an image"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadColorImage(cfg, name); err == nil {
			t.Fatal("expected an error for junk bytes")
		}
	})
}

func writeTestPNG(t *testing.T, name string, img image.Image) {
	t.Helper()
	f, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

package processing

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

// createTestImage creates a simple opaque test image
func createTestImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x % 256), uint8(y % 256), 128, 255})
		}
	}
	return img
}

func TestSaveAndLoadImage(t *testing.T) {
	p := NewProcessor()
	img := createTestImage(64, 48)

	path := filepath.Join(t.TempDir(), "test.png")
	if err := p.SaveImage(img, path, "png", 90, false); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	loaded, err := p.LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	bounds := loaded.Bounds()
	if bounds.Dx() != 64 || bounds.Dy() != 48 {
		t.Errorf("expected 64x48, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestDecodeImage(t *testing.T) {
	p := NewProcessor()
	img := createTestImage(10, 10)

	data, err := p.EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	decoded, err := p.DecodeImage(data)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}

	if decoded.Bounds().Dx() != 10 {
		t.Errorf("expected width 10, got %d", decoded.Bounds().Dx())
	}
}

func TestDecodeImageInvalid(t *testing.T) {
	p := NewProcessor()
	if _, err := p.DecodeImage([]byte("not an image")); err == nil {
		t.Error("expected error for invalid image data")
	}
}

func TestApplyMask(t *testing.T) {
	p := NewProcessor()
	img := createTestImage(20, 20)

	// Mask: left half fully opaque, right half fully transparent
	mask := image.NewGray(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if x < 10 {
				mask.SetGray(x, y, color.Gray{255})
			} else {
				mask.SetGray(x, y, color.Gray{0})
			}
		}
	}

	out := p.ApplyMask(img, mask)

	if a := out.NRGBAAt(5, 10).A; a != 255 {
		t.Errorf("expected alpha 255 in masked-in region, got %d", a)
	}
	if a := out.NRGBAAt(15, 10).A; a != 0 {
		t.Errorf("expected alpha 0 in masked-out region, got %d", a)
	}

	// Color channels are untouched
	if got, want := out.NRGBAAt(5, 10).R, img.NRGBAAt(5, 10).R; got != want {
		t.Errorf("expected red channel %d, got %d", want, got)
	}
}

func TestApplyMaskResizes(t *testing.T) {
	p := NewProcessor()
	img := createTestImage(40, 40)

	// Uniform half-transparent mask at a different size
	mask := image.NewGray(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			mask.SetGray(x, y, color.Gray{200})
		}
	}

	out := p.ApplyMask(img, mask)

	if out.Bounds().Dx() != 40 || out.Bounds().Dy() != 40 {
		t.Fatalf("expected output to keep image size 40x40, got %v", out.Bounds())
	}
	if a := out.NRGBAAt(20, 20).A; a != 200 {
		t.Errorf("expected alpha 200 after mask resize, got %d", a)
	}
}

package comparison

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/menta2k/rmbg-benchmark/pkg/compositor"
	"github.com/menta2k/rmbg-benchmark/pkg/processing"
)

// fakeCutouter returns the input-sized image with a transparent border
type fakeCutouter struct {
	fail bool
}

func (f *fakeCutouter) Cutout(_ context.Context, img image.Image) (image.Image, error) {
	if f.fail {
		return nil, errors.New("cutout backend down")
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if x > b.Dx()/4 && x < 3*b.Dx()/4 {
				out.SetNRGBA(x, y, color.NRGBA{200, 100, 50, 255})
			}
		}
	}
	return out, nil
}

// fakeMasker returns a centered rectangular mask
type fakeMasker struct {
	fail bool
}

func (f *fakeMasker) Mask(_ context.Context, img image.Image) (image.Image, error) {
	if f.fail {
		return nil, errors.New("mask backend down")
	}
	b := img.Bounds()
	mask := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Dy() / 4; y < 3*b.Dy()/4; y++ {
		for x := b.Dx() / 4; x < 3*b.Dx()/4; x++ {
			mask.SetGray(x, y, color.Gray{255})
		}
	}
	return mask, nil
}

func writeSourceImage(t *testing.T, dir, name string, width, height int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{80, 80, 200, 255})
		}
	}
	if err := processing.NewProcessor().SaveImage(img, filepath.Join(dir, name), "jpg", 95, false); err != nil {
		t.Fatal(err)
	}
}

func newTestRunner(t *testing.T, cut *fakeCutouter, mask *fakeMasker, inDir, outDir string) *Runner {
	t.Helper()
	comp, err := compositor.New(30)
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(cut, mask, processing.NewProcessor(), comp, Options{
		InputDir:  inDir,
		OutputDir: outDir,
		Labels:    [3]string{"Original Image", "RMBG 1.4", "RMBG 2.0"},
	})
}

func TestRunEndToEnd(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "results")
	writeSourceImage(t, inDir, "cat.jpg", 100, 100)

	runner := newTestRunner(t, &fakeCutouter{}, &fakeMasker{}, inDir, outDir)

	processed, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if processed != 1 {
		t.Fatalf("expected 1 processed file, got %d", processed)
	}

	outPath := filepath.Join(outDir, "combined_cat.jpg")
	grid, err := processing.NewProcessor().LoadImage(outPath)
	if err != nil {
		t.Fatalf("combined output missing: %v", err)
	}

	// 3 panels of 100px wide, 100px tall plus a 40px header at font size 30
	if grid.Bounds().Dx() != 300 {
		t.Errorf("expected grid width 300, got %d", grid.Bounds().Dx())
	}
	if grid.Bounds().Dy() != 140 {
		t.Errorf("expected grid height 140, got %d", grid.Bounds().Dy())
	}
}

func TestRunSkipsUnreadableFile(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "results")

	writeSourceImage(t, inDir, "good.png", 40, 40)
	if err := os.WriteFile(filepath.Join(inDir, "bad.jpg"), []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	runner := newTestRunner(t, &fakeCutouter{}, &fakeMasker{}, inDir, outDir)

	processed, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if processed != 1 {
		t.Errorf("expected 1 processed file (bad one skipped), got %d", processed)
	}

	if _, err := os.Stat(filepath.Join(outDir, "combined_good.png")); err != nil {
		t.Errorf("expected combined_good.png to exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "combined_bad.jpg")); err == nil {
		t.Errorf("expected no output for unreadable file")
	}
}

func TestRunContinuesAfterModelFailure(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "results")
	writeSourceImage(t, inDir, "a.jpg", 40, 40)
	writeSourceImage(t, inDir, "b.jpg", 40, 40)

	runner := newTestRunner(t, &fakeCutouter{fail: true}, &fakeMasker{}, inDir, outDir)

	processed, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if processed != 0 {
		t.Errorf("expected 0 processed files when cutout model fails, got %d", processed)
	}
}

func TestRunIgnoresOtherExtensions(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "results")

	writeSourceImage(t, inDir, "keep.jpg", 40, 40)
	if err := os.WriteFile(filepath.Join(inDir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(inDir, "skip.webp"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	runner := newTestRunner(t, &fakeCutouter{}, &fakeMasker{}, inDir, outDir)

	processed, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if processed != 1 {
		t.Errorf("expected only keep.jpg to be processed, got %d", processed)
	}
}

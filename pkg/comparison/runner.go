package comparison

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/menta2k/rmbg-benchmark/internal/utils"
	"github.com/menta2k/rmbg-benchmark/pkg/client"
	"github.com/menta2k/rmbg-benchmark/pkg/compositor"
	"github.com/menta2k/rmbg-benchmark/pkg/naming"
	"github.com/menta2k/rmbg-benchmark/pkg/processing"
)

// Options controls one comparison run
type Options struct {
	InputDir  string
	OutputDir string
	Labels    [3]string
}

// Runner drives the model comparison pipeline: every benchmark image in the
// input directory is segmented by both models and the results are assembled
// into a labelled side-by-side grid. A failure on one file is logged and the
// run continues with the next file.
type Runner struct {
	cutouter   client.Cutouter
	masker     client.Masker
	processor  *processing.Processor
	compositor *compositor.Compositor
	opts       Options
}

// NewRunner creates a comparison runner
func NewRunner(cutouter client.Cutouter, masker client.Masker, processor *processing.Processor, comp *compositor.Compositor, opts Options) *Runner {
	return &Runner{
		cutouter:   cutouter,
		masker:     masker,
		processor:  processor,
		compositor: comp,
		opts:       opts,
	}
}

// Run processes every .jpg/.png file directly inside the input directory,
// in name order. Returns the number of grids written.
func (r *Runner) Run(ctx context.Context) (int, error) {
	if err := utils.EnsureDir(r.opts.OutputDir); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	files, err := utils.ListImageFiles(r.opts.InputDir)
	if err != nil {
		return 0, fmt.Errorf("failed to scan input directory: %w", err)
	}

	processed := 0
	for _, path := range files {
		name := filepath.Base(path)
		log.Printf("processing %s...", name)

		if err := r.processFile(ctx, path); err != nil {
			log.Printf("skipping %s: %v", name, err)
			continue
		}
		processed++
	}

	return processed, nil
}

// processFile builds and persists one comparison grid
func (r *Runner) processFile(ctx context.Context, path string) error {
	original, err := r.processor.LoadImage(path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	cutout, err := r.cutouter.Cutout(ctx, original)
	if err != nil {
		return fmt.Errorf("cutout model failed: %w", err)
	}

	mask, err := r.masker.Mask(ctx, original)
	if err != nil {
		return fmt.Errorf("mask model failed: %w", err)
	}
	masked := r.processor.ApplyMask(original, mask)

	panelA := compositor.FlattenOnGreen(cutout)
	panelB := compositor.FlattenOnGreen(masked)

	grid := r.compositor.ComposeGrid(original, panelA, panelB, r.opts.Labels)

	name := filepath.Base(path)
	outPath := filepath.Join(r.opts.OutputDir, naming.CombinedFilename(name))
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if err := r.processor.SaveImage(grid, outPath, format, 95, false); err != nil {
		return fmt.Errorf("failed to save grid: %w", err)
	}

	log.Printf("wrote %s", outPath)
	return nil
}

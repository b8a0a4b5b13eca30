package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/menta2k/rmbg-benchmark/internal/utils"
	"github.com/menta2k/rmbg-benchmark/pkg/client"
	"github.com/menta2k/rmbg-benchmark/pkg/naming"
	"github.com/menta2k/rmbg-benchmark/pkg/processing"
	"github.com/menta2k/rmbg-benchmark/pkg/types"
)

// ManifestName is the filename of the run manifest written to the output dir
const ManifestName = "manifest.json"

// Options controls one generation run
type Options struct {
	OutputDir       string
	ImagesPerPrompt int
	Steps           int
	Guidance        float64
	SeedMax         int
	CaptionModel    string
}

// Runner drives the image generation pipeline: for each prompt it draws a
// random seed, invokes the generator and persists the result. The whole run
// is sequential and fail-fast.
type Runner struct {
	generator client.Generator
	captioner client.Captioner
	processor *processing.Processor
	rng       *rand.Rand
	opts      Options
}

// NewRunner creates a generation runner. The random source is injected so
// tests can run with a fixed seed sequence.
func NewRunner(generator client.Generator, processor *processing.Processor, rng *rand.Rand, opts Options) *Runner {
	if opts.ImagesPerPrompt < 1 {
		opts.ImagesPerPrompt = 1
	}
	if opts.SeedMax < 1 {
		opts.SeedMax = 1000000
	}
	return &Runner{
		generator: generator,
		processor: processor,
		rng:       rng,
		opts:      opts,
	}
}

// SetCaptioner attaches an optional vision model that annotates each
// generated image in the run manifest
func (r *Runner) SetCaptioner(captioner client.Captioner) {
	r.captioner = captioner
}

// Run generates ImagesPerPrompt images for every prompt, in order. The
// first error from the generator, the captioner or the filesystem aborts
// the run; there is no retry and no partial-run recovery.
func (r *Runner) Run(ctx context.Context, prompts []string) ([]types.ManifestEntry, error) {
	if err := utils.EnsureDir(r.opts.OutputDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var entries []types.ManifestEntry

	for idx, prompt := range prompts {
		for i := 0; i < r.opts.ImagesPerPrompt; i++ {
			seed := r.rng.Intn(r.opts.SeedMax) + 1

			params := types.GenerateParams{
				Seed:     seed,
				Steps:    r.opts.Steps,
				Guidance: r.opts.Guidance,
			}

			img, err := r.generator.Generate(ctx, prompt, params)
			if err != nil {
				return entries, fmt.Errorf("generation failed for prompt %d (seed %d): %w", idx+1, seed, err)
			}

			filename := naming.GeneratedFilename(idx+1, prompt, seed)
			path := filepath.Join(r.opts.OutputDir, filename)
			if err := r.processor.SaveImage(img, path, "png", 100, false); err != nil {
				return entries, fmt.Errorf("failed to save %s: %w", filename, err)
			}

			entry := types.ManifestEntry{
				Index:  idx + 1,
				Prompt: prompt,
				Seed:   seed,
				File:   filename,
			}

			if r.captioner != nil {
				caption, err := r.captioner.Caption(ctx, r.opts.CaptionModel, img)
				if err != nil {
					return entries, fmt.Errorf("caption failed for %s: %w", filename, err)
				}
				entry.Caption = caption
			}

			entries = append(entries, entry)
			log.Printf("generated image for prompt %d with seed %d -> %s", idx+1, seed, filename)
		}
	}

	if err := r.writeManifest(entries); err != nil {
		return entries, err
	}

	return entries, nil
}

// writeManifest records the run's prompts, seeds and filenames
func (r *Runner) writeManifest(entries []types.ManifestEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	path := filepath.Join(r.opts.OutputDir, ManifestName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

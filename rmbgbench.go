// Package rmbgbench provides benchmark pipelines around external
// image-model endpoints.
//
// Two independent pipelines are included:
//
// 1. Generation (pkg/generation): renders a list of text prompts through a
// text-to-image endpoint, drawing a fresh random seed per image and naming
// each output after the prompt and seed.
//
// 2. Comparison (pkg/comparison): runs every image in a folder through two
// background-removal models, flattens each result over an opaque green
// screen, and assembles a labelled side-by-side grid for visual review.
//
// Basic usage:
//
//	package main
//
//	import (
//		"context"
//		"log"
//		"math/rand"
//		"time"
//
//		rmbgbench "github.com/menta2k/rmbg-benchmark"
//		"github.com/menta2k/rmbg-benchmark/pkg/diffusion"
//		"github.com/menta2k/rmbg-benchmark/pkg/generation"
//	)
//
//	func main() {
//		bench, err := rmbgbench.New(30)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		gen, err := diffusion.NewClient("http://localhost:7860")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
//		_, err = bench.GenerateBenchmark(context.Background(), gen, rng,
//			[]string{"a red ball on a beach"}, generation.Options{
//				OutputDir:       "out",
//				ImagesPerPrompt: 3,
//				Steps:           8,
//				Guidance:        1.0,
//			})
//		if err != nil {
//			log.Fatal(err)
//		}
//	}
//
// The model endpoints are collaborators behind the interfaces in pkg/client,
// so tests can substitute fakes returning fixed images without running any
// real inference.
package rmbgbench

import (
	"context"
	"math/rand"

	"github.com/menta2k/rmbg-benchmark/pkg/client"
	"github.com/menta2k/rmbg-benchmark/pkg/comparison"
	"github.com/menta2k/rmbg-benchmark/pkg/compositor"
	"github.com/menta2k/rmbg-benchmark/pkg/generation"
	"github.com/menta2k/rmbg-benchmark/pkg/processing"
	"github.com/menta2k/rmbg-benchmark/pkg/types"
)

// Version of the rmbg-benchmark library
const Version = "1.0.0"

// Benchmark provides a high-level interface to both benchmark pipelines
type Benchmark struct {
	processor  *processing.Processor
	compositor *compositor.Compositor
}

// New creates a Benchmark rendering comparison labels at the given font size
func New(fontSize int) (*Benchmark, error) {
	comp, err := compositor.New(fontSize)
	if err != nil {
		return nil, err
	}
	return &Benchmark{
		processor:  processing.NewProcessor(),
		compositor: comp,
	}, nil
}

// GenerateBenchmark runs the generation pipeline over the prompts and
// returns the manifest of generated images
func (b *Benchmark) GenerateBenchmark(ctx context.Context, generator client.Generator, rng *rand.Rand, prompts []string, opts generation.Options) ([]types.ManifestEntry, error) {
	runner := generation.NewRunner(generator, b.processor, rng, opts)
	return runner.Run(ctx, prompts)
}

// CompareModels runs the comparison pipeline over the input directory and
// returns the number of grids written
func (b *Benchmark) CompareModels(ctx context.Context, cutouter client.Cutouter, masker client.Masker, opts comparison.Options) (int, error) {
	runner := comparison.NewRunner(cutouter, masker, b.processor, b.compositor, opts)
	return runner.Run(ctx)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}

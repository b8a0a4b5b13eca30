package client

import (
	"context"
	"image"

	"github.com/menta2k/rmbg-benchmark/pkg/types"
)

// Generator is a text-to-image model endpoint
type Generator interface {
	Generate(ctx context.Context, prompt string, params types.GenerateParams) (image.Image, error)
}

// Cutouter is a background removal model that returns the foreground
// with a per-pixel alpha channel
type Cutouter interface {
	Cutout(ctx context.Context, img image.Image) (image.Image, error)
}

// Masker is a background removal model that returns only the foreground
// mask; the caller applies it as the source image's alpha channel
type Masker interface {
	Mask(ctx context.Context, img image.Image) (image.Image, error)
}

// Captioner is a vision model that describes an image in one short sentence
type Captioner interface {
	Caption(ctx context.Context, model string, img image.Image) (string, error)
}

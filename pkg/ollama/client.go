package ollama

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/menta2k/rmbg-benchmark/pkg/processing"
)

// CaptionPrompt asks the vision model for a single-sentence description
const CaptionPrompt = `Describe this image in one short factual sentence. No preamble, no markdown.`

// Client wraps the Ollama API client for image captioning
type Client struct {
	client    *api.Client
	processor *processing.Processor
}

// NewClient creates a new Ollama caption client
func NewClient(ollamaURL string) (*Client, error) {
	parsedURL, err := url.Parse(ollamaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %v", err)
	}

	// Base URL only; any path like /api/chat is stripped
	baseURL := &url.URL{
		Scheme: parsedURL.Scheme,
		Host:   parsedURL.Host,
	}

	return &Client{
		client:    api.NewClient(baseURL, http.DefaultClient),
		processor: processing.NewProcessor(),
	}, nil
}

// Caption asks the vision model for a short description of the image
func (c *Client) Caption(ctx context.Context, model string, img image.Image) (string, error) {
	// Add timeout if context doesn't have one (vision models can be slow on CPU)
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 300*time.Second)
		defer cancel()
	}

	imgBytes, err := c.processor.EncodeForModel(img, "jpg", 1536, 85)
	if err != nil {
		return "", fmt.Errorf("failed to encode image for model: %w", err)
	}

	streamFalse := false
	req := &api.ChatRequest{
		Model: model,
		Messages: []api.Message{
			{
				Role:    "user",
				Content: CaptionPrompt,
				Images:  []api.ImageData{api.ImageData(imgBytes)},
			},
		},
		Stream: &streamFalse,
	}

	var responseContent string
	err = c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		responseContent = resp.Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat error: %v", err)
	}

	caption := strings.TrimSpace(responseContent)
	if caption == "" {
		return "", fmt.Errorf("empty response from ollama")
	}

	return caption, nil
}

package rembg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	_ "image/jpeg"
)

// CutoutClient calls a rembg-style endpoint that returns the foreground
// with a per-pixel alpha channel
type CutoutClient struct {
	baseURL    string
	httpClient *http.Client
}

// MaskClient calls a rembg-style endpoint that returns only the grayscale
// foreground mask
type MaskClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCutoutClient creates a background removal client returning RGBA cutouts
func NewCutoutClient(serverURL string) (*CutoutClient, error) {
	base, err := normalizeURL(serverURL)
	if err != nil {
		return nil, err
	}
	return &CutoutClient{baseURL: base, httpClient: newHTTPClient()}, nil
}

// NewMaskClient creates a background removal client returning masks only
func NewMaskClient(serverURL string) (*MaskClient, error) {
	base, err := normalizeURL(serverURL)
	if err != nil {
		return nil, err
	}
	return &MaskClient{baseURL: base, httpClient: newHTTPClient()}, nil
}

// Cutout removes the background from an image, returning the foreground
// over transparency
func (c *CutoutClient) Cutout(ctx context.Context, img image.Image) (image.Image, error) {
	return removeBackground(ctx, c.httpClient, c.baseURL+"/api/remove", img)
}

// Mask predicts the foreground mask for an image
func (c *MaskClient) Mask(ctx context.Context, img image.Image) (image.Image, error) {
	return removeBackground(ctx, c.httpClient, c.baseURL+"/api/remove?only_mask=true", img)
}

func normalizeURL(serverURL string) (string, error) {
	if serverURL == "" {
		return "", fmt.Errorf("missing server URL")
	}
	return strings.TrimSuffix(serverURL, "/"), nil
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 5 * time.Minute,
	}
}

// removeBackground uploads the image as a multipart form and decodes the
// returned PNG
func removeBackground(ctx context.Context, client *http.Client, url string, img image.Image) (image.Image, error) {
	var payload bytes.Buffer
	if err := png.Encode(&payload, img); err != nil {
		return nil, fmt.Errorf("failed to encode input image: %w", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "input.png")
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(payload.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("background removal request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("background removal returned HTTP %d", resp.StatusCode)
	}

	result, _, err := image.Decode(bytes.NewReader(respBody))
	if err != nil {
		return nil, fmt.Errorf("failed to decode result image: %w", err)
	}

	return result, nil
}

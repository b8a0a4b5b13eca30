package diffusion

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/menta2k/rmbg-benchmark/pkg/types"
)

// Client calls a stable-diffusion-webui compatible txt2img endpoint
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a txt2img client for the given server URL
func NewClient(serverURL string) (*Client, error) {
	if serverURL == "" {
		serverURL = "http://localhost:7860"
	}

	return &Client{
		baseURL: strings.TrimSuffix(serverURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Minute,
		},
	}, nil
}

type txt2imgRequest struct {
	Prompt    string  `json:"prompt"`
	Seed      int     `json:"seed"`
	Steps     int     `json:"steps"`
	CfgScale  float64 `json:"cfg_scale"`
	Width     int     `json:"width,omitempty"`
	Height    int     `json:"height,omitempty"`
	BatchSize int     `json:"batch_size"`
	NIter     int     `json:"n_iter"`
}

type txt2imgResponse struct {
	Images []string `json:"images"`
}

// Generate produces one image for the prompt with the given seed and
// inference parameters. Blocks until the endpoint finishes sampling.
func (c *Client) Generate(ctx context.Context, prompt string, params types.GenerateParams) (image.Image, error) {
	reqBody := txt2imgRequest{
		Prompt:    prompt,
		Seed:      params.Seed,
		Steps:     params.Steps,
		CfgScale:  params.Guidance,
		Width:     params.Width,
		Height:    params.Height,
		BatchSize: 1,
		NIter:     1,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal txt2img request: %w", err)
	}

	url := c.baseURL + "/sdapi/v1/txt2img"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("txt2img request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read txt2img response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("txt2img returned HTTP %d: %s", resp.StatusCode, truncateBody(body))
	}

	var respStruct txt2imgResponse
	if err := json.Unmarshal(body, &respStruct); err != nil {
		return nil, fmt.Errorf("unexpected txt2img response: %w", err)
	}

	if len(respStruct.Images) == 0 {
		return nil, fmt.Errorf("txt2img returned no images")
	}

	imgBytes, err := base64.StdEncoding.DecodeString(respStruct.Images[0])
	if err != nil {
		return nil, fmt.Errorf("failed to decode generated image: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode generated image: %w", err)
	}

	return img, nil
}

// truncateBody limits error diagnostics to a readable length
func truncateBody(body []byte) string {
	const max = 256
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}

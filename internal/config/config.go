package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the application configuration
type Config struct {
	Generation GenerationConfig `json:"generation"`
	Comparison ComparisonConfig `json:"comparison"`
}

// GenerationConfig holds configuration for the image generation pipeline
type GenerationConfig struct {
	Endpoint        string  `json:"endpoint"`
	OutputDir       string  `json:"output_dir"`
	ImagesPerPrompt int     `json:"images_per_prompt"`
	Steps           int     `json:"steps"`
	Guidance        float64 `json:"guidance"`
	SeedMax         int     `json:"seed_max"`
	CaptionURL      string  `json:"caption_url"`
	CaptionModel    string  `json:"caption_model"`
}

// ComparisonConfig holds configuration for the model comparison pipeline
type ComparisonConfig struct {
	InputDir  string    `json:"input_dir"`
	OutputDir string    `json:"output_dir"`
	CutoutURL string    `json:"cutout_url"`
	MaskURL   string    `json:"mask_url"`
	Labels    [3]string `json:"labels"`
	FontSize  int       `json:"font_size"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Generation: GenerationConfig{
			Endpoint:        "http://localhost:7860",
			OutputDir:       "./gen_benchmark",
			ImagesPerPrompt: 3,
			Steps:           8,
			Guidance:        1.0,
			SeedMax:         1000000,
			CaptionURL:      "http://localhost:11434",
			CaptionModel:    "",
		},
		Comparison: ComparisonConfig{
			InputDir:  "./gen_benchmark",
			OutputDir: "./rmbg_results",
			CutoutURL: "http://localhost:7000",
			MaskURL:   "http://localhost:7001",
			Labels:    [3]string{"Original Image", "RMBG 1.4", "RMBG 2.0"},
			FontSize:  30,
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Generation.ImagesPerPrompt < 1 {
		return fmt.Errorf("generation.images_per_prompt must be positive")
	}

	if c.Generation.Steps < 1 {
		return fmt.Errorf("generation.steps must be positive")
	}

	if c.Generation.Guidance < 0 {
		return fmt.Errorf("generation.guidance must not be negative")
	}

	if c.Generation.SeedMax < 1 {
		return fmt.Errorf("generation.seed_max must be positive")
	}

	if c.Comparison.FontSize < 8 {
		return fmt.Errorf("comparison.font_size must be at least 8")
	}

	for i, label := range c.Comparison.Labels {
		if label == "" {
			return fmt.Errorf("comparison.labels[%d] must not be empty", i)
		}
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "rmbg-benchmark", "config.json")
}

package config

import (
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	if cfg.Generation.Steps != 8 {
		t.Errorf("expected default steps 8, got %d", cfg.Generation.Steps)
	}
	if cfg.Generation.Guidance != 1.0 {
		t.Errorf("expected default guidance 1.0, got %f", cfg.Generation.Guidance)
	}
	if cfg.Generation.SeedMax != 1000000 {
		t.Errorf("expected default seed max 1000000, got %d", cfg.Generation.SeedMax)
	}
	if cfg.Comparison.FontSize != 30 {
		t.Errorf("expected default font size 30, got %d", cfg.Comparison.FontSize)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Generation.ImagesPerPrompt = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero images_per_prompt")
	}

	cfg = Default()
	cfg.Generation.Steps = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero steps")
	}

	cfg = Default()
	cfg.Comparison.FontSize = 4
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for tiny font size")
	}

	cfg = Default()
	cfg.Comparison.Labels[1] = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty label")
	}
}

func TestSaveAndLoad(t *testing.T) {
	cfg := Default()
	cfg.Generation.ImagesPerPrompt = 5
	cfg.Comparison.Labels = [3]string{"Original Image", "Model A", "Model B"}

	path := filepath.Join(t.TempDir(), "conf", "config.json")
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if loaded.Generation.ImagesPerPrompt != 5 {
		t.Errorf("expected 5 images per prompt, got %d", loaded.Generation.ImagesPerPrompt)
	}
	if loaded.Comparison.Labels[1] != "Model A" {
		t.Errorf("expected label 'Model A', got %q", loaded.Comparison.Labels[1])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/config.json"); err == nil {
		t.Error("expected error for missing config file")
	}
}

package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/menta2k/rmbg-benchmark/internal/config"
	"github.com/menta2k/rmbg-benchmark/pkg/diffusion"
	"github.com/menta2k/rmbg-benchmark/pkg/generation"
	"github.com/menta2k/rmbg-benchmark/pkg/ollama"
	"github.com/menta2k/rmbg-benchmark/pkg/processing"
)

// defaultPrompts is used when no prompt file is given
var defaultPrompts = []string{
	"A close-up of a medieval knights helmet with intricate carvings and golden accents, sunlight reflecting off its polished surface.",
	"A futuristic robotic hand reaching out to touch a glowing holographic butterfly, with neon colors and fine mechanical details.",
	"A magical crystal ball floating in mid-air, surrounded by swirling mist and enchanted runes.",
	"A vintage typewriter on an old wooden desk, covered with dust, a single piece of paper in it.",
	"A majestic lion with a mane of flowers and butterflies resting in a lush, enchanted forest.",
}

func main() {
	var configPath, promptsPath, outDir, endpoint, captionURL, captionModel string
	var perPrompt, steps, seedMax int
	var guidance float64
	var seed int64

	cfg := config.Default()

	flag.StringVar(&configPath, "config", "", "path to JSON config file (flag values override it)")
	flag.StringVar(&promptsPath, "prompts", "", "text file with one prompt per line (built-in list if empty)")
	flag.StringVar(&outDir, "out", cfg.Generation.OutputDir, "output directory")
	flag.StringVar(&endpoint, "url", cfg.Generation.Endpoint, "txt2img server URL")
	flag.IntVar(&perPrompt, "n", cfg.Generation.ImagesPerPrompt, "images generated per prompt")
	flag.IntVar(&steps, "steps", cfg.Generation.Steps, "inference steps")
	flag.Float64Var(&guidance, "guidance", cfg.Generation.Guidance, "guidance scale")
	flag.IntVar(&seedMax, "seedmax", cfg.Generation.SeedMax, "upper bound for random seeds")
	flag.Int64Var(&seed, "seed", 0, "seed for the random source (0 = time-based)")
	flag.StringVar(&captionURL, "captionurl", cfg.Generation.CaptionURL, "ollama server URL for captions")
	flag.StringVar(&captionModel, "captionmodel", cfg.Generation.CaptionModel, "vision model for captions (empty = no captions)")
	flag.Parse()

	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			log.Fatal(err)
		}
		if err := loaded.Validate(); err != nil {
			log.Fatal(err)
		}

		// Explicit flags win over the config file
		set := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if !set["out"] {
			outDir = loaded.Generation.OutputDir
		}
		if !set["url"] {
			endpoint = loaded.Generation.Endpoint
		}
		if !set["n"] {
			perPrompt = loaded.Generation.ImagesPerPrompt
		}
		if !set["steps"] {
			steps = loaded.Generation.Steps
		}
		if !set["guidance"] {
			guidance = loaded.Generation.Guidance
		}
		if !set["seedmax"] {
			seedMax = loaded.Generation.SeedMax
		}
		if !set["captionurl"] {
			captionURL = loaded.Generation.CaptionURL
		}
		if !set["captionmodel"] {
			captionModel = loaded.Generation.CaptionModel
		}
	}

	prompts := defaultPrompts
	if promptsPath != "" {
		loaded, err := readPrompts(promptsPath)
		if err != nil {
			log.Fatal(err)
		}
		prompts = loaded
	}
	if len(prompts) == 0 {
		log.Fatal("no prompts to generate")
	}

	generator, err := diffusion.NewClient(endpoint)
	if err != nil {
		log.Fatalf("failed to create txt2img client: %v", err)
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	runner := generation.NewRunner(generator, processing.NewProcessor(), rng, generation.Options{
		OutputDir:       outDir,
		ImagesPerPrompt: perPrompt,
		Steps:           steps,
		Guidance:        guidance,
		SeedMax:         seedMax,
		CaptionModel:    captionModel,
	})

	if captionModel != "" {
		captioner, err := ollama.NewClient(captionURL)
		if err != nil {
			log.Fatalf("failed to create caption client: %v", err)
		}
		runner.SetCaptioner(captioner)
	}

	entries, err := runner.Run(context.Background(), prompts)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("generated %d images for %d prompts in %s", len(entries), len(prompts), outDir)
}

// readPrompts loads prompts from a text file, one per line, skipping blanks
func readPrompts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var prompts []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		prompts = append(prompts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return prompts, nil
}

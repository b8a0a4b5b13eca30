package main

import (
	"context"
	"flag"
	"log"

	"github.com/menta2k/rmbg-benchmark/internal/config"
	"github.com/menta2k/rmbg-benchmark/pkg/comparison"
	"github.com/menta2k/rmbg-benchmark/pkg/compositor"
	"github.com/menta2k/rmbg-benchmark/pkg/processing"
	"github.com/menta2k/rmbg-benchmark/pkg/rembg"
)

func main() {
	var configPath, inDir, outDir, cutoutURL, maskURL, labelA, labelB string
	var fontSize int

	cfg := config.Default()

	flag.StringVar(&configPath, "config", "", "path to JSON config file (flag values override it)")
	flag.StringVar(&inDir, "in", cfg.Comparison.InputDir, "input directory with .jpg/.png images")
	flag.StringVar(&outDir, "out", cfg.Comparison.OutputDir, "output directory for combined grids")
	flag.StringVar(&cutoutURL, "cutouturl", cfg.Comparison.CutoutURL, "cutout model server URL")
	flag.StringVar(&maskURL, "maskurl", cfg.Comparison.MaskURL, "mask model server URL")
	flag.StringVar(&labelA, "labela", cfg.Comparison.Labels[1], "label for the cutout model panel")
	flag.StringVar(&labelB, "labelb", cfg.Comparison.Labels[2], "label for the mask model panel")
	flag.IntVar(&fontSize, "fontsize", cfg.Comparison.FontSize, "label font size")
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
		if !set["in"] {
			inDir = loaded.Comparison.InputDir
		}
		if !set["out"] {
			outDir = loaded.Comparison.OutputDir
		}
		if !set["cutouturl"] {
			cutoutURL = loaded.Comparison.CutoutURL
		}
		if !set["maskurl"] {
			maskURL = loaded.Comparison.MaskURL
		}
		if !set["labela"] {
			labelA = loaded.Comparison.Labels[1]
		}
		if !set["labelb"] {
			labelB = loaded.Comparison.Labels[2]
		}
		if !set["fontsize"] {
			fontSize = loaded.Comparison.FontSize
		}
		cfg = loaded
	}

	cutouter, err := rembg.NewCutoutClient(cutoutURL)
	if err != nil {
		log.Fatalf("failed to create cutout client: %v", err)
	}

	masker, err := rembg.NewMaskClient(maskURL)
	if err != nil {
		log.Fatalf("failed to create mask client: %v", err)
	}

	comp, err := compositor.New(fontSize)
	if err != nil {
		log.Fatalf("failed to create compositor: %v", err)
	}

	runner := comparison.NewRunner(cutouter, masker, processing.NewProcessor(), comp, comparison.Options{
		InputDir:  inDir,
		OutputDir: outDir,
		Labels:    [3]string{cfg.Comparison.Labels[0], labelA, labelB},
	})

	processed, err := runner.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("wrote %d comparison grids to %s", processed, outDir)
}

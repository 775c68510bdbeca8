// Command alphaextract recovers a true alpha channel from two renderings of
// the same subject: one composited over pure white, one over pure black.
//
// Usage:
//
//	alphaextract -w icon_white.webp -b icon_black.webp -o icon_transparent.png
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"go-alpha-extractor/internal/extractor"
	"go-alpha-extractor/internal/raster"
	"go-alpha-extractor/internal/repository"
	"go-alpha-extractor/internal/storage"
	"go-alpha-extractor/internal/strategy"
	"go-alpha-extractor/pkg/validation"
)

var (
	optWhite     = flag.String("w", "", "Path to image rendered on pure white background (required)")
	optBlack     = flag.String("b", "", "Path to image rendered on pure black background (required)")
	optOutput    = flag.String("o", "", "Output path for PNG with recovered alpha channel (required)")
	optThreshold = flag.Float64("t", 0.02, "Alpha snapping threshold in [0,1]; 0 disables snapping")
	optWorkers   = flag.Int("workers", 0, "Worker count for the per-pixel stage (0 = CPU count)")
	optNoVerify  = flag.Bool("no-backdrop-check", false, "Skip the advisory backdrop purity check")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *optWhite == "" || *optBlack == "" || *optOutput == "" {
		flag.Usage()
		return fmt.Errorf("options -w, -b and -o are required")
	}
	if err := validation.ValidateThreshold(*optThreshold); err != nil {
		return err
	}
	if err := validation.ValidateWorkerCount(*optWorkers); err != nil {
		return err
	}
	for _, path := range []string{*optWhite, *optBlack} {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("file not found: %s", path)
		}
	}

	pairRepo := repository.NewPairRepository(storage.NewLocalImageFetcher())
	pair, err := pairRepo.FetchPair(context.Background(), *optWhite, *optBlack)
	if err != nil {
		return err
	}

	alphaExtractor, err := extractor.NewExtractor()
	if err != nil {
		return err
	}
	defer alphaExtractor.Close()

	options := extractor.DefaultOptions().
		WithThreshold(*optThreshold).
		WithMaxWorkers(*optWorkers)
	if *optNoVerify {
		options = options.WithoutBackdropCheck()
	}

	extractionCtx := strategy.NewExtractionContext(strategy.NewTwoPassStrategy(alphaExtractor))
	result, err := extractionCtx.ExecuteExtraction(pair, options)
	if err != nil {
		return err
	}

	if result.Backdrops.Checked && (!result.Backdrops.WhiteClean || !result.Backdrops.BlackClean) {
		logrus.WithFields(logrus.Fields{
			"white_distance": result.Backdrops.WhiteDistance,
			"black_distance": result.Backdrops.BlackDistance,
		}).Warn("Source backdrops may not be pure white/black; alpha quality can suffer")
	}

	if err := raster.SavePNG(*optOutput, result.Image); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"output":             *optOutput,
		"width":              result.Width,
		"height":             result.Height,
		"mean_alpha":         result.Stats.MeanAlpha,
		"opaque_pixels":      result.Stats.OpaquePixels,
		"partial_pixels":     result.Stats.PartialPixels,
		"transparent_pixels": result.Stats.TransparentPixels,
		"processing_sec":     result.ProcessingTimeSec,
	}).Info("Saved transparent image")
	return nil
}

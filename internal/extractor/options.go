package extractor

import "image/color"

// ExtractionOptions provides flexible configuration for alpha recovery
type ExtractionOptions struct {
	// Threshold controls alpha snapping: raw alpha below it becomes 0,
	// above 1-Threshold becomes 1. Must be in [0,1]. Small positive values
	// suppress halo noise; 0 disables snapping entirely.
	Threshold float64

	// TransparentFill is the color written where alpha falls below the
	// recovery floor. It never affects the visual result (those pixels are
	// fully transparent) but keeps the output deterministic.
	TransparentFill color.NRGBA

	// Backdrop verification (advisory only, see BackdropReport)
	VerifyBackdrops   bool
	BackdropTolerance float64

	// Performance options
	UseWorkerPool bool
	MaxWorkers    int
}

// DefaultOptions returns default extraction options
func DefaultOptions() ExtractionOptions {
	return ExtractionOptions{
		Threshold:         0.02,
		TransparentFill:   color.NRGBA{A: 0},
		VerifyBackdrops:   true,
		BackdropTolerance: 0.2,
		UseWorkerPool:     true,
		MaxWorkers:        0, // Use default CPU count
	}
}

// WithThreshold returns options with a custom snapping threshold
func (opts ExtractionOptions) WithThreshold(t float64) ExtractionOptions {
	opts.Threshold = t
	return opts
}

// WithTransparentFill returns options with a custom fill color for fully
// transparent pixels
func (opts ExtractionOptions) WithTransparentFill(fill color.NRGBA) ExtractionOptions {
	opts.TransparentFill = fill
	return opts
}

// WithoutBackdropCheck disables the advisory backdrop verification
func (opts ExtractionOptions) WithoutBackdropCheck() ExtractionOptions {
	opts.VerifyBackdrops = false
	return opts
}

// WithMaxWorkers sets the number of workers for the per-pixel stage
func (opts ExtractionOptions) WithMaxWorkers(n int) ExtractionOptions {
	opts.MaxWorkers = n
	return opts
}

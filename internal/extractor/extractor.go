package extractor

import (
	"image"
	"runtime"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	apperrors "go-alpha-extractor/internal/errors"
	"go-alpha-extractor/internal/raster"
)

// Extractor defines the interface for two-pass alpha recovery
type Extractor interface {
	Extract(pair *raster.ImagePair, options ExtractionOptions) (*ExtractionResult, error)
	Close() error
}

// coreExtractor implements Extractor and orchestrates the per-pixel stage
type coreExtractor struct {
	workerPool *WorkerPool
}

// NewExtractor creates an extractor with a started worker pool
func NewExtractor() (Extractor, error) {
	workerPool := NewWorkerPool(0) // Use default CPU count
	workerPool.Start()

	return &coreExtractor{
		workerPool: workerPool,
	}, nil
}

// Extract runs the full recovery pipeline over an image pair: estimate raw
// alpha per pixel, snap it, reconstruct the subject color, and compose the
// RGBA output. Rows are processed in horizontal strips; strips touch disjoint
// regions of the output, so the stage needs no synchronization beyond waiting
// for completion.
func (ce *coreExtractor) Extract(pair *raster.ImagePair, options ExtractionOptions) (*ExtractionResult, error) {
	start := time.Now()

	if pair == nil || pair.White == nil || pair.Black == nil {
		return nil, apperrors.NewValidationError("image pair is incomplete", nil)
	}
	if options.Threshold < 0 || options.Threshold > 1 {
		return nil, apperrors.NewValidationError("threshold must be in [0,1]", nil)
	}

	width, height := pair.Width(), pair.Height()
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	amap := NewAlphaMap(width, height)

	if width > 0 && height > 0 {
		ce.processStrips(pair, out, amap, options)
	}

	result := &ExtractionResult{
		Image:  out,
		Width:  width,
		Height: height,
		Stats:  summarize(amap, options.Threshold),
	}

	if options.VerifyBackdrops {
		result.Backdrops = VerifyBackdrops(pair, options.BackdropTolerance)
	}

	result.ProcessingTimeSec = time.Since(start).Seconds()
	return result, nil
}

// processStrips splits the raster into horizontal strips and recovers each
// strip's pixels, on the worker pool or inline depending on options.
func (ce *coreExtractor) processStrips(pair *raster.ImagePair, out *image.NRGBA, amap *AlphaMap, options ExtractionOptions) {
	height := pair.Height()

	numWorkers := options.MaxWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > height {
		numWorkers = height
	}
	rowsPerStrip := (height + numWorkers - 1) / numWorkers // ceil division

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		startY := i * rowsPerStrip
		endY := startY + rowsPerStrip
		if endY > height {
			endY = height
		}
		if startY >= endY {
			continue
		}

		wg.Add(1)
		job := func(startY, endY int) func() {
			return func() {
				defer wg.Done()
				ce.processStrip(pair, out, amap, options, startY, endY)
			}
		}(startY, endY)

		if options.UseWorkerPool {
			ce.workerPool.Submit(job)
		} else {
			job()
		}
	}
	wg.Wait()
}

// processStrip applies the pure per-pixel recovery to rows [startY, endY).
func (ce *coreExtractor) processStrip(pair *raster.ImagePair, out *image.NRGBA, amap *AlphaMap, options ExtractionOptions, startY, endY int) {
	width := pair.Width()

	for y := startY; y < endY; y++ {
		for x := 0; x < width; x++ {
			cw := pair.White.NRGBAAt(x, y)
			cb := pair.Black.NRGBAAt(x, y)

			alphaRaw := EstimateAlpha(cw, cb)
			amap.Set(x, y, alphaRaw)

			alpha := SnapAlpha(alphaRaw, options.Threshold)
			r, g, b := RecoverColor(cb, alpha, options.TransparentFill)
			out.SetNRGBA(x, y, composePixel(r, g, b, alpha))
		}
	}
}

// summarize aggregates the alpha map into run statistics.
func summarize(amap *AlphaMap, threshold float64) AlphaStats {
	stats := AlphaStats{}
	if len(amap.Values) == 0 {
		return stats
	}

	stats.MeanAlpha = stat.Mean(amap.Values, nil)
	if len(amap.Values) > 1 {
		stats.AlphaStdDev = stat.StdDev(amap.Values, nil)
	}

	for _, alphaRaw := range amap.Values {
		switch SnapAlpha(alphaRaw, threshold) {
		case 0:
			stats.TransparentPixels++
		case 1:
			stats.OpaquePixels++
		default:
			stats.PartialPixels++
		}
	}
	return stats
}

// Close shuts down the worker pool
func (ce *coreExtractor) Close() error {
	ce.workerPool.Close()
	return nil
}

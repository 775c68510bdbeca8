package extractor

import (
	"image"

	"go-alpha-extractor/pkg/models"
)

// AlphaStats and BackdropReport are aliases to the shared models so the
// service layer can embed them in responses without conversion.
type AlphaStats = models.AlphaStats

type BackdropReport = models.BackdropReport

// ExtractionResult is the outcome of one alpha recovery run.
type ExtractionResult struct {
	Image             *image.NRGBA
	Width             int
	Height            int
	Stats             AlphaStats
	Backdrops         BackdropReport
	ProcessingTimeSec float64
}

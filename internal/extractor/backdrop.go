package extractor

import (
	"image/color"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"

	"go-alpha-extractor/internal/raster"
)

// VerifyBackdrops estimates the dominant color of each source image and
// measures its Lab distance from the nominal backdrop. The check is purely
// advisory: backdrop purity is a quality assumption imposed on the upstream
// generation step, not a contract enforced here, so the result feeds a report
// and a warning log, never an error. A subject that fills most of the frame
// legitimately dominates over its backdrop, which is another reason this can
// only ever warn.
func VerifyBackdrops(pair *raster.ImagePair, tolerance float64) BackdropReport {
	if tolerance <= 0 {
		tolerance = DefaultOptions().BackdropTolerance
	}

	whiteDominant := dominantcolor.Find(pair.White)
	blackDominant := dominantcolor.Find(pair.Black)

	report := BackdropReport{
		Checked:       true,
		WhiteDistance: labDistance(whiteDominant, color.RGBA{R: 255, G: 255, B: 255, A: 255}),
		BlackDistance: labDistance(blackDominant, color.RGBA{A: 255}),
	}
	report.WhiteClean = report.WhiteDistance <= tolerance
	report.BlackClean = report.BlackDistance <= tolerance
	return report
}

// labDistance measures perceptual distance between two opaque colors in Lab
// space.
func labDistance(a, b color.RGBA) float64 {
	ca, _ := colorful.MakeColor(a)
	cb, _ := colorful.MakeColor(b)
	return ca.DistanceLab(cb)
}

package extractor

import (
	"image/color"
	"math"
)

// RecoverPixel is the pure per-pixel recovery function: estimate raw alpha
// from the two observed colors, snap it against the threshold, then invert
// the compositing equation to recover the subject color. It has no
// dependence on neighboring pixels, which is what makes the whole pipeline a
// stateless parallel map.
//
// At snapped alpha 1 the division degenerates to the literal observed color,
// which is exactly right: a fully opaque pixel composites identically over
// both backdrops. At snapped alpha 0 the color is the fill and the pixel is
// invisible.
func RecoverPixel(cw, cb color.NRGBA, threshold float64, fill color.NRGBA) color.NRGBA {
	alpha := SnapAlpha(EstimateAlpha(cw, cb), threshold)
	r, g, b := RecoverColor(cb, alpha, fill)
	return composePixel(r, g, b, alpha)
}

// composePixel assembles one output RGBA pixel from a recovered color and a
// snapped alpha value.
func composePixel(r, g, b uint8, alpha float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(alpha * 255))}
}

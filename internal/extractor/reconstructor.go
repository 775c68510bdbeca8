package extractor

import (
	"image/color"
	"math"
)

// minRecoverableAlpha is the numerical floor below which the compositing
// inversion is unstable. Pixels under the floor are visually fully
// transparent, so their color is replaced with a stable fill instead of
// risking a division blow-up. A degraded pixel must never abort the image.
const minRecoverableAlpha = 1e-4

// RecoverColor inverts the "over" compositing equation against the black
// backdrop to recover the subject's un-composited color. On black the
// backdrop contributes nothing to the composite, so
// C_b = alpha * C_true  =>  C_true = C_b / alpha, per channel.
// Channels are clamped to [0,255] after the division: a small alpha can
// overshoot the valid range when the two renderings are not perfectly
// aligned. Below the recovery floor the fill color is returned.
func RecoverColor(cb color.NRGBA, alpha float64, fill color.NRGBA) (r, g, b uint8) {
	if alpha < minRecoverableAlpha {
		return fill.R, fill.G, fill.B
	}
	r = clampChannel(float64(cb.R) / alpha)
	g = clampChannel(float64(cb.G) / alpha)
	b = clampChannel(float64(cb.B) / alpha)
	return r, g, b
}

// clampChannel rounds a recovered channel value and clamps it to [0, 255].
func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}

package extractor

import (
	"image/color"
	"math"
)

// maxBackdropDistance is the Euclidean RGB distance between pure white and
// pure black, sqrt(3 * 255^2) ~= 441.67. It is the largest distance two
// observations of the same pixel can have, reached when the backdrop shows
// through completely.
var maxBackdropDistance = math.Sqrt(3 * 255 * 255)

// EstimateAlpha derives the raw opacity of a pixel from its two observed
// colors: cw composited over white, cb composited over black. A fully opaque
// pixel looks identical on both backdrops (distance 0, alpha 1); a fully
// transparent pixel shows the raw backdrops (maximum distance, alpha 0).
// The vector distance over all three channels keeps the estimate stable
// against color casts in any single channel. The result is clamped to [0,1]:
// noise and sub-pixel misalignment between the two renderings can push the
// raw value slightly outside.
func EstimateAlpha(cw, cb color.NRGBA) float64 {
	dr := float64(cw.R) - float64(cb.R)
	dg := float64(cw.G) - float64(cb.G)
	db := float64(cw.B) - float64(cb.B)

	dist := math.Sqrt(dr*dr + dg*dg + db*db)
	return clamp01(1 - dist/maxBackdropDistance)
}

// AlphaMap is a per-pixel grid of raw alpha values in [0,1], matching the
// source pair's dimensions.
type AlphaMap struct {
	Width  int
	Height int
	Values []float64
}

// NewAlphaMap allocates an alpha map for a width x height raster.
func NewAlphaMap(width, height int) *AlphaMap {
	return &AlphaMap{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
}

// At returns the alpha value at (x, y).
func (m *AlphaMap) At(x, y int) float64 {
	return m.Values[y*m.Width+x]
}

// Set stores the alpha value at (x, y).
func (m *AlphaMap) Set(x, y int, alpha float64) {
	m.Values[y*m.Width+x] = alpha
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package extractor

// SnapAlpha snaps near-transparent and near-opaque alpha values to exact 0
// and 1. Two independently regenerated images are never perfectly aligned:
// compression noise and slight color drift leave a faint nonzero distance
// even where the true pixel is fully opaque or fully transparent, which shows
// up as halos and ghosting around the subject. Values inside (threshold,
// 1-threshold) pass through unchanged to preserve genuine soft transparency.
func SnapAlpha(alpha, threshold float64) float64 {
	alpha = clamp01(alpha)
	if threshold <= 0 {
		return alpha
	}
	switch {
	case alpha < threshold:
		return 0
	case alpha > 1-threshold:
		return 1
	}
	return alpha
}

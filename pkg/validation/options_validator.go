package validation

import (
	"fmt"

	apperrors "go-alpha-extractor/internal/errors"
)

// ValidateThreshold checks that a snapping threshold is usable. The
// threshold is a fraction of the alpha range, so anything outside [0,1] is a
// caller mistake, not something to clamp silently.
func ValidateThreshold(t float64) error {
	if t < 0 || t > 1 {
		return apperrors.NewValidationError(
			fmt.Sprintf("threshold must be in [0,1], got %g", t), nil)
	}
	return nil
}

// ValidateWorkerCount checks a worker count option. Zero means "use the CPU
// count" and is valid.
func ValidateWorkerCount(n int) error {
	if n < 0 {
		return apperrors.NewValidationError(
			fmt.Sprintf("worker count must be >= 0, got %d", n), nil)
	}
	return nil
}

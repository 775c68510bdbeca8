package repository

import (
	"context"

	"go-alpha-extractor/internal/raster"
)

// PairRepository defines data access for source image pairs
type PairRepository interface {
	// FetchPair retrieves and validates the white-backdrop and
	// black-backdrop renderings as one dimension-checked pair
	FetchPair(ctx context.Context, whiteRef, blackRef string) (*raster.ImagePair, error)

	// ValidateRef checks whether a source reference is acceptable
	ValidateRef(ref string) error
}

package storage

import (
	"context"
	"fmt"
	"image"
	"os"

	apperrors "go-alpha-extractor/internal/errors"
)

// LocalImageFetcher implements ImageFetcher over the local filesystem. It is
// what the CLI uses: refs are plain file paths.
type LocalImageFetcher struct{}

// NewLocalImageFetcher creates a filesystem-backed image fetcher
func NewLocalImageFetcher() ImageFetcher {
	return &LocalImageFetcher{}
}

// FetchImage opens and decodes an image file
func (l *LocalImageFetcher) FetchImage(ctx context.Context, ref string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, apperrors.NewDecodeError(ref, err)
	}
	return img, nil
}

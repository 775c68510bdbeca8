package repository

import (
	"context"
	"image"
	"strings"

	"go-alpha-extractor/internal/raster"
	"go-alpha-extractor/internal/storage"
)

// fetcherPairRepository implements PairRepository over an ImageFetcher
type fetcherPairRepository struct {
	fetcher storage.ImageFetcher
}

// NewPairRepository creates a pair repository backed by the given fetcher
func NewPairRepository(fetcher storage.ImageFetcher) PairRepository {
	return &fetcherPairRepository{fetcher: fetcher}
}

// FetchPair retrieves both renderings concurrently, then validates them as a
// pair. The dimension check runs before any per-pixel work downstream.
func (r *fetcherPairRepository) FetchPair(ctx context.Context, whiteRef, blackRef string) (*raster.ImagePair, error) {
	if whiteRef == "" || blackRef == "" {
		return nil, ErrPairIncomplete
	}

	type fetchResult struct {
		img image.Image
		err error
	}

	whiteCh := make(chan fetchResult, 1)
	go func() {
		img, err := r.fetcher.FetchImage(ctx, whiteRef)
		whiteCh <- fetchResult{img, err}
	}()

	blackImg, blackErr := r.fetcher.FetchImage(ctx, blackRef)
	white := <-whiteCh

	if white.err != nil {
		return nil, white.err
	}
	if blackErr != nil {
		return nil, blackErr
	}

	return raster.NewPair(white.img, blackImg)
}

// ValidateRef checks that a reference is present and not just whitespace
func (r *fetcherPairRepository) ValidateRef(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return ErrInvalidRef
	}
	return nil
}

package raster

import (
	"image"
	"image/png"
	"io"
	"os"

	apperrors "go-alpha-extractor/internal/errors"
)

// EncodePNG writes the result raster as PNG. PNG is the only output format:
// it is lossless and preserves the recovered alpha channel.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return apperrors.NewEncodeError("failed to encode PNG output", err)
	}
	return nil
}

// SavePNG writes the result raster to path. A file that fails mid-write is
// removed so callers never observe a partial output.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewEncodeError("failed to create output file "+path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return apperrors.NewEncodeError("failed to write output file "+path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return apperrors.NewEncodeError("failed to finalize output file "+path, err)
	}
	return nil
}

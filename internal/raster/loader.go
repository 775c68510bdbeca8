// Package raster loads source image pairs and writes the recovered RGBA
// result. Inputs are treated as fully opaque composites: any alpha channel
// present in a source file is dropped on read.
package raster

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/webp"

	apperrors "go-alpha-extractor/internal/errors"
)

// ImagePair holds the two source renderings of the same subject: one
// composited over pure white, one over pure black. Both rasters are
// normalized to NRGBA with zero-based bounds and identical dimensions.
type ImagePair struct {
	White *image.NRGBA
	Black *image.NRGBA
}

// Width returns the shared pixel width of the pair.
func (p *ImagePair) Width() int {
	return p.White.Bounds().Dx()
}

// Height returns the shared pixel height of the pair.
func (p *ImagePair) Height() int {
	return p.Black.Bounds().Dy()
}

// DecodePair decodes the white-backdrop and black-backdrop streams and
// validates that their dimensions match. The ref arguments identify the
// sources in error messages.
func DecodePair(white, black io.Reader, whiteRef, blackRef string) (*ImagePair, error) {
	whiteImg, _, err := image.Decode(white)
	if err != nil {
		return nil, apperrors.NewDecodeError(whiteRef, err)
	}
	blackImg, _, err := image.Decode(black)
	if err != nil {
		return nil, apperrors.NewDecodeError(blackRef, err)
	}
	return NewPair(whiteImg, blackImg)
}

// NewPair builds an ImagePair from two already-decoded images, flattening
// both to opaque NRGBA. Fails with a dimension mismatch error if the rasters
// differ in width or height; the check runs before any per-pixel work.
func NewPair(white, black image.Image) (*ImagePair, error) {
	wb, bb := white.Bounds(), black.Bounds()
	if wb.Dx() != bb.Dx() || wb.Dy() != bb.Dy() {
		return nil, apperrors.NewDimensionMismatchError(
			fmt.Sprintf("white image is %dx%d, black image is %dx%d; images must be identical size",
				wb.Dx(), wb.Dy(), bb.Dx(), bb.Dy()), nil)
	}
	return &ImagePair{
		White: flattenOpaque(white),
		Black: flattenOpaque(black),
	}, nil
}

// flattenOpaque converts an image to NRGBA at zero-based bounds and forces
// every pixel fully opaque.
func flattenOpaque(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

package repository

import "errors"

var (
	// ErrInvalidRef indicates an invalid source image reference
	ErrInvalidRef = errors.New("invalid image reference")

	// ErrPairIncomplete indicates one of the two sources is missing
	ErrPairIncomplete = errors.New("image pair requires both a white and a black rendering")
)

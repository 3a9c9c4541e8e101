// Package raster holds the pixel buffer shared by every transform.
package raster

import (
	"errors"
	"math"
)

var (
	// ErrOutOfBounds is returned when a pixel access lies outside the buffer.
	ErrOutOfBounds = errors.New("pixel out of bounds")
	// ErrInvalidParameter is returned for out-of-range transform parameters.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ClampToByte rounds v to the nearest integer and clamps it to [0, 255].
// NaN maps to 0.
func ClampToByte(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(math.Round(v))
}

package geometry

import (
	"fmt"
	"math"

	"picedit/raster"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Pivot selects the point a rotation turns around.
type Pivot int

const (
	// PivotOrigin rotates around the top-left corner (0, 0). Content turning
	// out of frame is clipped.
	PivotOrigin Pivot = iota
	// PivotCenter rotates around the middle of the image.
	PivotCenter
)

// Interpolation selects how rotated pixels are resampled.
type Interpolation int

const (
	Nearest Interpolation = iota
	Bilinear
)

func (i Interpolation) transformer() draw.Transformer {
	if i == Bilinear {
		return draw.BiLinear
	}
	return draw.NearestNeighbor
}

type RotateOptions struct {
	Pivot         Pivot
	Interpolation Interpolation
}

// Rotate turns src clockwise by degrees around the origin using nearest
// neighbour sampling. See RotateWith.
func Rotate(src *raster.Buffer, degrees float64) (*raster.Buffer, error) {
	return RotateWith(src, degrees, RotateOptions{})
}

// RotateWith turns src clockwise by degrees (y axis pointing down) with the
// matrix [[cos θ, -sin θ], [sin θ, cos θ]]. The result keeps the source
// dimensions. Each destination pixel is sampled from the inverse-mapped
// source position; pixels whose source lies outside the image stay
// transparent.
func RotateWith(src *raster.Buffer, degrees float64, opts RotateOptions) (*raster.Buffer, error) {
	if !finite(degrees) {
		return nil, fmt.Errorf("%w: rotation angle %v", raster.ErrInvalidParameter, degrees)
	}

	dst := raster.CanvasLike(src)
	if src.Width() == 0 || src.Height() == 0 {
		return dst.Buffer(), nil
	}

	var cx, cy float64
	if opts.Pivot == PivotCenter {
		cx, cy = float64(src.Width())/2, float64(src.Height())/2
	}
	s2d := rotation(degrees, cx, cy)
	opts.Interpolation.transformer().Transform(dst, s2d, src, src.Bounds(), draw.Src, nil)
	return dst.Buffer(), nil
}

// rotation returns the source to destination matrix for a clockwise turn of
// degrees around (cx, cy).
func rotation(degrees, cx, cy float64) f64.Aff3 {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	// Quarter turns come out of Sincos with a ~1e-16 residue.
	sin, cos = snap(sin), snap(cos)
	return f64.Aff3{
		cos, -sin, cx - cos*cx + sin*cy,
		sin, cos, cy - sin*cx - cos*cy,
	}
}

func snap(v float64) float64 {
	const eps = 1e-12
	switch {
	case math.Abs(v) < eps:
		return 0
	case math.Abs(v-1) < eps:
		return 1
	case math.Abs(v+1) < eps:
		return -1
	}
	return v
}

// Package geometry remaps pixel coordinates: scale, rotate, translate and
// mirror.
//
// Scale, Translate and the mirrors are forward (scatter) mappings: every
// source pixel is written to its mapped destination cell if that cell is in
// frame. Cells no source pixel lands on keep the transparent background, so
// an upscale leaves visible gaps. Rotate samples the other way round, see
// RotateWith.
package geometry

import (
	"fmt"
	"math"

	"picedit/raster"
)

// maxSide bounds the side of a scaled buffer.
const maxSide = 1 << 15

// Scale resizes src by factor using x' = round(factor*x), y' = round(factor*y).
// The result is round(factor*w) × round(factor*h).
func Scale(src *raster.Buffer, factor float64) (*raster.Buffer, error) {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("%w: scale factor %v must be positive", raster.ErrInvalidParameter, factor)
	}

	fw := math.Round(factor * float64(src.Width()))
	fh := math.Round(factor * float64(src.Height()))
	if fw > maxSide || fh > maxSide {
		return nil, fmt.Errorf("%w: scale factor %v gives a %vx%v buffer", raster.ErrInvalidParameter, factor, fw, fh)
	}

	dst, err := raster.NewCanvas(int(fw), int(fh))
	if err != nil {
		return nil, err
	}
	scatter(src, dst, func(x, y int) (int, int) {
		return int(math.Round(factor * float64(x))), int(math.Round(factor * float64(y)))
	})
	return dst.Buffer(), nil
}

// Translate shifts src by (dx, dy), rounded to the nearest pixel. Pixels
// shifted out of frame are dropped and the vacated area is transparent.
func Translate(src *raster.Buffer, dx, dy float64) (*raster.Buffer, error) {
	if !finite(dx) || !finite(dy) {
		return nil, fmt.Errorf("%w: translation (%v,%v)", raster.ErrInvalidParameter, dx, dy)
	}

	dst := raster.CanvasLike(src)
	scatter(src, dst, func(x, y int) (int, int) {
		return int(math.Round(float64(x) + dx)), int(math.Round(float64(y) + dy))
	})
	return dst.Buffer(), nil
}

// MirrorHorizontal flips src left to right.
func MirrorHorizontal(src *raster.Buffer) *raster.Buffer {
	w := src.Width()
	dst := raster.CanvasLike(src)
	scatter(src, dst, func(x, y int) (int, int) {
		return w - 1 - x, y
	})
	return dst.Buffer()
}

// MirrorVertical flips src top to bottom.
func MirrorVertical(src *raster.Buffer) *raster.Buffer {
	h := src.Height()
	dst := raster.CanvasLike(src)
	scatter(src, dst, func(x, y int) (int, int) {
		return x, h - 1 - y
	})
	return dst.Buffer()
}

// scatter writes every source pixel to mapping(x, y) when it lies in dst.
func scatter(src *raster.Buffer, dst *raster.Canvas, mapping func(x, y int) (int, int)) {
	for y := range src.Height() {
		for x := range src.Width() {
			dx, dy := mapping(x, y)
			if !dst.In(dx, dy) {
				continue
			}
			dst.SetPixel(dx, dy, src.NRGBAAt(x, y))
		}
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

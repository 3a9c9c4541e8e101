// Package convolve applies 2D kernels to a buffer with clamp-to-edge
// sampling.
package convolve

import (
	"fmt"

	"picedit/raster"
)

// Kernel is an immutable grid of weights with odd width and height.
type Kernel struct {
	w, h    int
	weights []float64
}

// NewKernel copies rows into a kernel. Rows must be non-empty, of equal
// length and odd in both dimensions.
func NewKernel(rows [][]float64) (Kernel, error) {
	h := len(rows)
	if h == 0 || len(rows[0]) == 0 {
		return Kernel{}, fmt.Errorf("%w: empty kernel", raster.ErrInvalidParameter)
	}
	w := len(rows[0])
	if w%2 == 0 || h%2 == 0 {
		return Kernel{}, fmt.Errorf("%w: kernel size %dx%d is not odd", raster.ErrInvalidParameter, w, h)
	}

	k := Kernel{w: w, h: h, weights: make([]float64, 0, w*h)}
	for i, row := range rows {
		if len(row) != w {
			return Kernel{}, fmt.Errorf("%w: kernel row %d has %d weights, want %d", raster.ErrInvalidParameter, i, len(row), w)
		}
		k.weights = append(k.weights, row...)
	}
	return k, nil
}

// Box returns the size×size low-pass kernel with every weight 1/size².
func Box(size int) (Kernel, error) {
	if size <= 0 || size%2 == 0 {
		return Kernel{}, fmt.Errorf("%w: box kernel size %d must be a positive odd number", raster.ErrInvalidParameter, size)
	}
	v := 1 / float64(size*size)
	k := Kernel{w: size, h: size, weights: make([]float64, size*size)}
	for i := range k.weights {
		k.weights[i] = v
	}
	return k, nil
}

// Gaussian3 returns the 3×3 kernel [[1,2,1],[2,4,2],[1,2,1]]/16.
func Gaussian3() Kernel {
	return Kernel{w: 3, h: 3, weights: []float64{
		1.0 / 16, 2.0 / 16, 1.0 / 16,
		2.0 / 16, 4.0 / 16, 2.0 / 16,
		1.0 / 16, 2.0 / 16, 1.0 / 16,
	}}
}

func (k Kernel) Size() (w, h int) { return k.w, k.h }

// Radius returns the distance from the center cell to the kernel edge.
func (k Kernel) Radius() (rx, ry int) { return k.w / 2, k.h / 2 }

// Weight returns the weight in column kx, row ky.
func (k Kernel) Weight(kx, ky int) float64 { return k.weights[ky*k.w+kx] }

// Sum returns the total of all weights.
func (k Kernel) Sum() float64 {
	var s float64
	for _, v := range k.weights {
		s += v
	}
	return s
}

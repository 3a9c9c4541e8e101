package convolve

import (
	"fmt"

	"picedit/parallel"
	"picedit/raster"
)

// Options configures ApplyWith.
type Options struct {
	// Workers is the number of goroutines sharing the rows. Values below
	// one use GOMAXPROCS.
	Workers int
}

// Apply convolves src with k. See ApplyWith.
func Apply(src *raster.Buffer, k Kernel) (*raster.Buffer, error) {
	return ApplyWith(src, k, Options{})
}

// ApplyWith convolves the red, green and blue channels of src with k.
// Neighbours outside the image repeat the nearest edge pixel. Sums are
// clamped to [0, 255] and rounded; alpha is copied from the source.
func ApplyWith(src *raster.Buffer, k Kernel, opts Options) (*raster.Buffer, error) {
	if k.w == 0 || k.h == 0 {
		return nil, fmt.Errorf("%w: empty kernel", raster.ErrInvalidParameter)
	}

	w, h := src.Width(), src.Height()
	rx, ry := k.Radius()
	dst := raster.CanvasLike(src)

	// Clamped source column for every output column and kernel column.
	cols := make([]int, w*k.w)
	for x := range w {
		for kx := range k.w {
			cols[x*k.w+kx] = clamp(x+kx-rx, w) * 4
		}
	}

	parallel.Rows(h, opts.Workers, func(y0, y1 int) {
		rows := make([][]uint8, k.h)
		for y := y0; y < y1; y++ {
			for ky := range k.h {
				rows[ky] = src.Row(clamp(y+ky-ry, h))
			}
			out, center := dst.Row(y), src.Row(y)
			for x := range w {
				var sumR, sumG, sumB float64
				for ky, row := range rows {
					weights := k.weights[ky*k.w : (ky+1)*k.w]
					for kx, wt := range weights {
						i := cols[x*k.w+kx]
						sumR += wt * float64(row[i])
						sumG += wt * float64(row[i+1])
						sumB += wt * float64(row[i+2])
					}
				}
				o := out[x*4 : x*4+4 : x*4+4]
				o[0] = raster.ClampToByte(sumR)
				o[1] = raster.ClampToByte(sumG)
				o[2] = raster.ClampToByte(sumB)
				o[3] = center[x*4+3]
			}
		}
	})
	return dst.Buffer(), nil
}

// LowPass blurs src with a size×size box kernel.
func LowPass(src *raster.Buffer, size int) (*raster.Buffer, error) {
	k, err := Box(size)
	if err != nil {
		return nil, err
	}
	return Apply(src, k)
}

// GaussianBlur blurs src with Gaussian3.
func GaussianBlur(src *raster.Buffer) *raster.Buffer {
	dst, _ := Apply(src, Gaussian3())
	return dst
}

func clamp(v, n int) int {
	return max(0, min(n-1, v))
}

// Package tone holds per-pixel channel operations. Every operation keeps the
// buffer size and the alpha channel.
package tone

import (
	"picedit/parallel"
	"picedit/raster"
)

// Luma weights for Grayscale.
const (
	LumaR = 0.299
	LumaG = 0.587
	LumaB = 0.114
)

// midGray is the pivot Contrast scales around.
const midGray = 128

// Brightness adds delta to the red, green and blue channels.
func Brightness(src *raster.Buffer, delta float64) *raster.Buffer {
	return mapRGB(src, func(r, g, b uint8) (uint8, uint8, uint8) {
		return raster.ClampToByte(float64(r) + delta),
			raster.ClampToByte(float64(g) + delta),
			raster.ClampToByte(float64(b) + delta)
	})
}

// Contrast scales the red, green and blue channels by factor around mid
// gray. A factor of 1 is the identity, 0 gives flat gray and negative
// factors invert.
func Contrast(src *raster.Buffer, factor float64) *raster.Buffer {
	offset := midGray * (1 - factor)
	return mapRGB(src, func(r, g, b uint8) (uint8, uint8, uint8) {
		return raster.ClampToByte(factor*float64(r) + offset),
			raster.ClampToByte(factor*float64(g) + offset),
			raster.ClampToByte(factor*float64(b) + offset)
	})
}

// Grayscale replaces each pixel with its luma.
func Grayscale(src *raster.Buffer) *raster.Buffer {
	return mapRGB(src, func(r, g, b uint8) (uint8, uint8, uint8) {
		y := raster.ClampToByte(LumaR*float64(r) + LumaG*float64(g) + LumaB*float64(b))
		return y, y, y
	})
}

// mapRGB applies fn to every pixel of src in row bands.
func mapRGB(src *raster.Buffer, fn func(r, g, b uint8) (uint8, uint8, uint8)) *raster.Buffer {
	dst := raster.CanvasLike(src)
	parallel.Rows(src.Height(), parallel.DefaultWorkers(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			in, out := src.Row(y), dst.Row(y)
			for i := 0; i+3 < len(in); i += 4 {
				out[i], out[i+1], out[i+2] = fn(in[i], in[i+1], in[i+2])
				out[i+3] = in[i+3]
			}
		}
	})
	return dst.Buffer()
}

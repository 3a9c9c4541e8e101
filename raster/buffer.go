package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Buffer is an immutable grid of non-premultiplied RGBA pixels.
type Buffer struct {
	// pix holds the pixels in row-major order. The pixel at (x, y) starts at
	// pix[y*stride + x*4].
	pix []uint8
	// stride is the pix stride (in bytes) between vertically adjacent pixels.
	stride int
	width  int
	height int
}

// bytes per pixel: r, g, b, a uint8 = 4

// New returns a w×h buffer filled with transparent black.
func New(w, h int) (*Buffer, error) {
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("%w: buffer size %dx%d", ErrInvalidParameter, w, h)
	}
	return &Buffer{
		pix:    make([]uint8, w*h*4),
		stride: w * 4,
		width:  w,
		height: h,
	}, nil
}

// FromPixels copies a row-major grid of w*h pixels into a new buffer.
func FromPixels(w, h int, px []color.NRGBA) (*Buffer, error) {
	if w < 0 || h < 0 || len(px) != w*h {
		return nil, fmt.Errorf("%w: %d pixels for a %dx%d buffer", ErrInvalidParameter, len(px), w, h)
	}
	b, err := New(w, h)
	if err != nil {
		return nil, err
	}
	for i, p := range px {
		d := b.pix[i*4 : i*4+4 : i*4+4]
		d[0], d[1], d[2], d[3] = p.R, p.G, p.B, p.A
	}
	return b, nil
}

// FromImage converts a decoded image into a buffer anchored at (0, 0).
func FromImage(img image.Image) *Buffer {
	sr := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, sr.Dx(), sr.Dy()))
	draw.Draw(dst, dst.Rect, img, sr.Min, draw.Src)
	return &Buffer{
		pix:    dst.Pix,
		stride: dst.Stride,
		width:  sr.Dx(),
		height: sr.Dy(),
	}
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

func (b *Buffer) ColorModel() color.Model { return color.NRGBAModel }

func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

// At implements image.Image. Coordinates outside the buffer read as
// transparent black.
func (b *Buffer) At(x, y int) color.Color {
	if !b.in(x, y) {
		return color.NRGBA{}
	}
	return b.at(x, y)
}

// NRGBAAt is the allocation-free form of At.
func (b *Buffer) NRGBAAt(x, y int) color.NRGBA {
	if !b.in(x, y) {
		return color.NRGBA{}
	}
	return b.at(x, y)
}

// Pixel returns the pixel at (x, y), or ErrOutOfBounds.
func (b *Buffer) Pixel(x, y int) (color.NRGBA, error) {
	if !b.in(x, y) {
		return color.NRGBA{}, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, b.width, b.height)
	}
	return b.at(x, y), nil
}

// Pixels returns a row-major copy of every pixel.
func (b *Buffer) Pixels() []color.NRGBA {
	px := make([]color.NRGBA, 0, b.width*b.height)
	for y := range b.height {
		for x := range b.width {
			px = append(px, b.at(x, y))
		}
	}
	return px
}

// Equal reports whether both buffers have the same size and pixels.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.width == o.width && b.height == o.height && bytes.Equal(b.pix, o.pix)
}

func (b *Buffer) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// at skips the bounds check; callers iterate within the buffer.
func (b *Buffer) at(x, y int) color.NRGBA {
	i := y*b.stride + x*4
	s := b.pix[i : i+4 : i+4]
	return color.NRGBA{R: s[0], G: s[1], B: s[2], A: s[3]}
}

// Row returns the raw bytes of row y (R, G, B, A per pixel). The slice
// aliases the buffer and must not be written.
func (b *Buffer) Row(y int) []uint8 {
	return b.pix[y*b.stride : y*b.stride+b.width*4 : y*b.stride+b.width*4]
}

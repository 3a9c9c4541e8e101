package raster

import (
	"image"
	"image/color"
)

// Canvas is the writable side of a Buffer. A transform allocates one, fills
// it and hands the result out with Buffer; the canvas must not be written
// after that.
type Canvas struct {
	b *Buffer
}

// NewCanvas returns a w×h canvas filled with transparent black.
func NewCanvas(w, h int) (*Canvas, error) {
	b, err := New(w, h)
	if err != nil {
		return nil, err
	}
	return &Canvas{b: b}, nil
}

// CanvasLike returns a transparent canvas with the dimensions of b.
func CanvasLike(b *Buffer) *Canvas {
	return &Canvas{b: &Buffer{
		pix:    make([]uint8, len(b.pix)),
		stride: b.stride,
		width:  b.width,
		height: b.height,
	}}
}

func (c *Canvas) Width() int  { return c.b.width }
func (c *Canvas) Height() int { return c.b.height }

func (c *Canvas) ColorModel() color.Model { return color.NRGBAModel }
func (c *Canvas) Bounds() image.Rectangle { return c.b.Bounds() }
func (c *Canvas) At(x, y int) color.Color { return c.b.At(x, y) }
func (c *Canvas) In(x, y int) bool        { return c.b.in(x, y) }
func (c *Canvas) Buffer() *Buffer         { return c.b }

// Set implements draw.Image. Writes outside the canvas are dropped.
func (c *Canvas) Set(x, y int, col color.Color) {
	c.SetPixel(x, y, color.NRGBAModel.Convert(col).(color.NRGBA))
}

// SetPixel stores p at (x, y). Writes outside the canvas are dropped.
func (c *Canvas) SetPixel(x, y int, p color.NRGBA) {
	if !c.b.in(x, y) {
		return
	}
	i := y*c.b.stride + x*4
	s := c.b.pix[i : i+4 : i+4]
	s[0], s[1], s[2], s[3] = p.R, p.G, p.B, p.A
}

// Row returns the writable bytes of row y.
func (c *Canvas) Row(y int) []uint8 {
	b := c.b
	return b.pix[y*b.stride : y*b.stride+b.width*4 : y*b.stride+b.width*4]
}

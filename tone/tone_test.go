package tone

import (
	"image/color"
	"testing"

	"picedit/raster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// palette returns a w×h buffer cycling through every channel value with
// varying alpha.
func palette(t *testing.T, w, h int) *raster.Buffer {
	t.Helper()
	px := make([]color.NRGBA, w*h)
	for i := range px {
		px[i] = color.NRGBA{
			R: uint8(i * 7),
			G: uint8(255 - i*3),
			B: uint8(i * 13),
			A: uint8(i * 5),
		}
	}
	b, err := raster.FromPixels(w, h, px)
	require.NoError(t, err)
	return b
}

func single(t *testing.T, p color.NRGBA) *raster.Buffer {
	t.Helper()
	b, err := raster.FromPixels(1, 1, []color.NRGBA{p})
	require.NoError(t, err)
	return b
}

func first(t *testing.T, b *raster.Buffer) color.NRGBA {
	t.Helper()
	p, err := b.Pixel(0, 0)
	require.NoError(t, err)
	return p
}

func TestGrayscaleRed(t *testing.T) {
	got := first(t, Grayscale(single(t, color.NRGBA{R: 255, A: 255})))
	assert.Equal(t, color.NRGBA{R: 76, G: 76, B: 76, A: 255}, got)
}

func TestGrayscaleKeepsAlpha(t *testing.T) {
	got := first(t, Grayscale(single(t, color.NRGBA{R: 10, G: 200, B: 30, A: 42})))
	// 0.299*10 + 0.587*200 + 0.114*30 = 123.81
	assert.Equal(t, color.NRGBA{R: 124, G: 124, B: 124, A: 42}, got)
}

func TestGrayscaleIdempotent(t *testing.T) {
	once := Grayscale(palette(t, 40, 30))
	assert.True(t, once.Equal(Grayscale(once)))
}

func TestBrightness(t *testing.T) {
	src := single(t, color.NRGBA{R: 250, G: 5, B: 100, A: 7})

	assert.Equal(t, color.NRGBA{R: 255, G: 15, B: 110, A: 7}, first(t, Brightness(src, 10)))
	assert.Equal(t, color.NRGBA{R: 240, G: 0, B: 90, A: 7}, first(t, Brightness(src, -10)))
}

func TestBrightnessBounds(t *testing.T) {
	src := palette(t, 16, 16)
	for _, delta := range []float64{-1000, -255, -10, 0, 10, 255, 1000} {
		got := Brightness(src, delta)
		require.Equal(t, src.Width(), got.Width())
		require.Equal(t, src.Height(), got.Height())
		for i, p := range got.Pixels() {
			assert.Equal(t, src.Pixels()[i].A, p.A, "alpha at %d", i)
		}
	}
	assert.True(t, src.Equal(Brightness(src, 0)))
	for _, p := range Brightness(src, 1000).Pixels() {
		assert.Equal(t, uint8(255), p.R)
	}
}

func TestContrast(t *testing.T) {
	src := single(t, color.NRGBA{R: 200, G: 128, B: 28, A: 255})

	assert.Equal(t, color.NRGBA{R: 214, G: 128, B: 8, A: 255}, first(t, Contrast(src, 1.2)))
	assert.Equal(t, color.NRGBA{R: 128, G: 128, B: 128, A: 255}, first(t, Contrast(src, 0)))
	assert.Equal(t, color.NRGBA{R: 56, G: 128, B: 228, A: 255}, first(t, Contrast(src, -1)))
	assert.Equal(t, color.NRGBA{R: 255, G: 128, B: 0, A: 255}, first(t, Contrast(src, 10)))
}

func TestContrastIdentity(t *testing.T) {
	src := palette(t, 20, 20)
	assert.True(t, src.Equal(Contrast(src, 1)))
}

func TestToneKeepsSizeOnTallImages(t *testing.T) {
	// Tall enough to be split across workers.
	src := palette(t, 3, 200)
	for _, got := range []*raster.Buffer{Brightness(src, 3), Contrast(src, 0.8), Grayscale(src)} {
		assert.Equal(t, 3, got.Width())
		assert.Equal(t, 200, got.Height())
	}
	assert.True(t, src.Equal(Brightness(src, 0)))
}

func TestToneDoesNotTouchInput(t *testing.T) {
	src := palette(t, 4, 4)
	before := src.Pixels()
	Brightness(src, 50)
	Contrast(src, 2)
	Grayscale(src)
	assert.Equal(t, before, src.Pixels())
}

package pipeline

import (
	"image/color"
	"sync"
	"testing"

	"picedit/raster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quad(t *testing.T) *raster.Buffer {
	t.Helper()
	b, err := raster.FromPixels(2, 2, []color.NRGBA{
		{R: 255, A: 255}, {G: 255, A: 255},
		{B: 255, A: 255}, {R: 255, G: 255, B: 255, A: 255},
	})
	require.NoError(t, err)
	return b
}

func TestApplyDispatchesEveryVariant(t *testing.T) {
	tests := []struct {
		req  Request
		w, h int
	}{
		{Scale{Factor: 2}, 4, 4},
		{Rotate{Degrees: 90}, 2, 2},
		{Rotate{Degrees: 90, Center: true, Bilinear: true}, 2, 2},
		{Translate{DX: 1, DY: 0}, 2, 2},
		{MirrorHorizontal{}, 2, 2},
		{MirrorVertical{}, 2, 2},
		{Brightness{Delta: 10}, 2, 2},
		{Contrast{Factor: 1.2}, 2, 2},
		{Grayscale{}, 2, 2},
		{LowPass{KernelSize: 3}, 2, 2},
		{GaussianBlur{}, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.req.String(), func(t *testing.T) {
			got, err := Apply(tt.req, quad(t))
			require.NoError(t, err)
			assert.Equal(t, tt.w, got.Width())
			assert.Equal(t, tt.h, got.Height())
		})
	}
}

func TestApplyMirrorScenario(t *testing.T) {
	got, err := Apply(MirrorHorizontal{}, quad(t))
	require.NoError(t, err)
	assert.Equal(t, []color.NRGBA{
		{G: 255, A: 255}, {R: 255, A: 255},
		{R: 255, G: 255, B: 255, A: 255}, {B: 255, A: 255},
	}, got.Pixels())
}

func TestApplyPropagatesErrors(t *testing.T) {
	src := quad(t)
	before := src.Pixels()

	for _, req := range []Request{Scale{Factor: 0}, LowPass{KernelSize: 4}, LowPass{KernelSize: -1}, nil} {
		got, err := Apply(req, src)
		assert.ErrorIs(t, err, raster.ErrInvalidParameter, "%v", req)
		assert.Nil(t, got)
	}
	assert.Equal(t, before, src.Pixels())

	_, err := Apply(Grayscale{}, nil)
	assert.ErrorIs(t, err, raster.ErrInvalidParameter)
}

func TestApplyAll(t *testing.T) {
	src := quad(t)

	got, err := ApplyAll(src, MirrorHorizontal{}, MirrorHorizontal{}, Grayscale{}, Grayscale{})
	require.NoError(t, err)
	once, err := Apply(Grayscale{}, src)
	require.NoError(t, err)
	assert.True(t, once.Equal(got))

	same, err := ApplyAll(src)
	require.NoError(t, err)
	assert.True(t, src.Equal(same))

	_, err = ApplyAll(src, Grayscale{}, Scale{Factor: -2})
	require.ErrorIs(t, err, raster.ErrInvalidParameter)
	assert.Contains(t, err.Error(), "transform 2 (scale=-2)")
}

func TestApplyConcurrent(t *testing.T) {
	src := quad(t)
	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			got, err := ApplyAll(src, Scale{Factor: 3}, GaussianBlur{}, Contrast{Factor: 0.8})
			assert.NoError(t, err)
			assert.Equal(t, 6, got.Width())
		})
	}
	wg.Wait()
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Request
	}{
		{"scale=1.1", Scale{Factor: 1.1}},
		{" Scale = 0.9 ", Scale{Factor: 0.9}},
		{"rotate=-90", Rotate{Degrees: -90}},
		{"rotate-center=90", Rotate{Degrees: 90, Center: true}},
		{"rotate-smooth=15", Rotate{Degrees: 15, Bilinear: true}},
		{"rotate-center-smooth=15", Rotate{Degrees: 15, Center: true, Bilinear: true}},
		{"translate=25,0", Translate{DX: 25}},
		{"translate=0, 25", Translate{DY: 25}},
		{"translate=7", Translate{DX: 7}},
		{"mirror-h", MirrorHorizontal{}},
		{"mirror-v", MirrorVertical{}},
		{"brightness=-10", Brightness{Delta: -10}},
		{"contrast=1.2", Contrast{Factor: 1.2}},
		{"grayscale", Grayscale{}},
		{"lowpass", LowPass{KernelSize: 3}},
		{"lowpass=5", LowPass{KernelSize: 5}},
		{"gaussian", GaussianBlur{}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{"", "blur", "scale", "scale=big", "rotate=", "translate=a,b", "lowpass=3.5", "grayscale=1", "mirror-h=2"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, raster.ErrInvalidParameter, "%q", in)
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, req := range []Request{
		Scale{Factor: 1.1},
		Rotate{Degrees: -90},
		Rotate{Degrees: 12.5, Center: true, Bilinear: true},
		Translate{DX: 25, DY: -3},
		MirrorHorizontal{},
		MirrorVertical{},
		Brightness{Delta: 10},
		Contrast{Factor: 0.8},
		Grayscale{},
		LowPass{KernelSize: 7},
		GaussianBlur{},
	} {
		got, err := Parse(req.String())
		require.NoError(t, err, req.String())
		assert.Equal(t, req, got)
	}

	reqs, err := ParseAll([]string{"grayscale", "scale=2"})
	require.NoError(t, err)
	assert.Equal(t, []Request{Grayscale{}, Scale{Factor: 2}}, reqs)

	_, err = ParseAll([]string{"grayscale", "nope"})
	assert.Error(t, err)
}

package pipeline

import (
	"fmt"

	"picedit/convolve"
	"picedit/geometry"
	"picedit/raster"
	"picedit/tone"
)

// Apply runs req on src and returns the new buffer. src is never modified;
// on error no buffer is returned.
func Apply(req Request, src *raster.Buffer) (*raster.Buffer, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil buffer", raster.ErrInvalidParameter)
	}

	switch r := req.(type) {
	case Scale:
		return geometry.Scale(src, r.Factor)
	case Rotate:
		opts := geometry.RotateOptions{}
		if r.Center {
			opts.Pivot = geometry.PivotCenter
		}
		if r.Bilinear {
			opts.Interpolation = geometry.Bilinear
		}
		return geometry.RotateWith(src, r.Degrees, opts)
	case Translate:
		return geometry.Translate(src, r.DX, r.DY)
	case MirrorHorizontal:
		return geometry.MirrorHorizontal(src), nil
	case MirrorVertical:
		return geometry.MirrorVertical(src), nil
	case Brightness:
		return tone.Brightness(src, r.Delta), nil
	case Contrast:
		return tone.Contrast(src, r.Factor), nil
	case Grayscale:
		return tone.Grayscale(src), nil
	case LowPass:
		return convolve.LowPass(src, r.KernelSize)
	case GaussianBlur:
		return convolve.GaussianBlur(src), nil
	case nil:
		return nil, fmt.Errorf("%w: nil request", raster.ErrInvalidParameter)
	}
	return nil, fmt.Errorf("%w: unsupported request %T", raster.ErrInvalidParameter, req)
}

// ApplyAll runs reqs in order. It stops at the first failing request and
// reports its position; src is left as it was.
func ApplyAll(src *raster.Buffer, reqs ...Request) (*raster.Buffer, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil buffer", raster.ErrInvalidParameter)
	}

	cur := src
	for i, req := range reqs {
		next, err := Apply(req, cur)
		if err != nil {
			return nil, fmt.Errorf("transform %d (%v): %w", i+1, req, err)
		}
		cur = next
	}
	return cur, nil
}

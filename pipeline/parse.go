package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"picedit/raster"
)

// DefaultKernelSize is the box size used by a bare "lowpass".
const DefaultKernelSize = 3

// Parse reads the text form of a request, as produced by its String method:
//
//	scale=1.1  rotate=-90  rotate-center=90  rotate-center-smooth=15
//	translate=25,0  mirror-h  mirror-v  brightness=10  contrast=1.2
//	grayscale  lowpass  lowpass=5  gaussian
func Parse(s string) (Request, error) {
	name, arg, hasArg := strings.Cut(strings.TrimSpace(s), "=")
	name = strings.ToLower(strings.TrimSpace(name))
	arg = strings.TrimSpace(arg)

	noArg := func(r Request) (Request, error) {
		if hasArg {
			return nil, fmt.Errorf("%w: %q takes no argument", raster.ErrInvalidParameter, name)
		}
		return r, nil
	}

	switch name {
	case "scale":
		f, err := parseFloat(name, arg)
		if err != nil {
			return nil, err
		}
		return Scale{Factor: f}, nil
	case "rotate", "rotate-center", "rotate-smooth", "rotate-center-smooth":
		deg, err := parseFloat(name, arg)
		if err != nil {
			return nil, err
		}
		return Rotate{
			Degrees:  deg,
			Center:   strings.Contains(name, "-center"),
			Bilinear: strings.HasSuffix(name, "-smooth"),
		}, nil
	case "translate":
		xs, ys, ok := strings.Cut(arg, ",")
		if !ok {
			ys = "0"
		}
		dx, err := parseFloat(name, xs)
		if err != nil {
			return nil, err
		}
		dy, err := parseFloat(name, ys)
		if err != nil {
			return nil, err
		}
		return Translate{DX: dx, DY: dy}, nil
	case "mirror-h":
		return noArg(MirrorHorizontal{})
	case "mirror-v":
		return noArg(MirrorVertical{})
	case "brightness":
		d, err := parseFloat(name, arg)
		if err != nil {
			return nil, err
		}
		return Brightness{Delta: d}, nil
	case "contrast":
		f, err := parseFloat(name, arg)
		if err != nil {
			return nil, err
		}
		return Contrast{Factor: f}, nil
	case "grayscale":
		return noArg(Grayscale{})
	case "lowpass":
		if !hasArg {
			return LowPass{KernelSize: DefaultKernelSize}, nil
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s kernel size %q", raster.ErrInvalidParameter, name, arg)
		}
		return LowPass{KernelSize: n}, nil
	case "gaussian":
		return noArg(GaussianBlur{})
	}
	return nil, fmt.Errorf("%w: unknown transform %q", raster.ErrInvalidParameter, name)
}

// ParseAll parses every element of ops.
func ParseAll(ops []string) ([]Request, error) {
	reqs := make([]Request, 0, len(ops))
	for _, s := range ops {
		r, err := Parse(s)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, r)
	}
	return reqs, nil
}

func parseFloat(name, arg string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s value %q", raster.ErrInvalidParameter, name, arg)
	}
	return v, nil
}

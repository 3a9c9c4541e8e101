// Package pipeline dispatches a named, parameterised transform to the
// package that implements it.
package pipeline

import (
	"fmt"
	"strconv"
)

// Request fully describes one transform. The set of variants is closed.
type Request interface {
	fmt.Stringer
	request()
}

type Scale struct{ Factor float64 }

// Rotate turns clockwise by Degrees. Center pivots on the image center
// instead of the origin; Bilinear switches resampling from nearest.
type Rotate struct {
	Degrees  float64
	Center   bool
	Bilinear bool
}

type Translate struct{ DX, DY float64 }

type MirrorHorizontal struct{}

type MirrorVertical struct{}

type Brightness struct{ Delta float64 }

type Contrast struct{ Factor float64 }

type Grayscale struct{}

// LowPass is a box blur over a KernelSize×KernelSize neighbourhood.
type LowPass struct{ KernelSize int }

type GaussianBlur struct{}

func (Scale) request()            {}
func (Rotate) request()           {}
func (Translate) request()        {}
func (MirrorHorizontal) request() {}
func (MirrorVertical) request()   {}
func (Brightness) request()       {}
func (Contrast) request()         {}
func (Grayscale) request()        {}
func (LowPass) request()          {}
func (GaussianBlur) request()     {}

func (r Scale) String() string { return "scale=" + num(r.Factor) }

func (r Rotate) String() string {
	name := "rotate"
	if r.Center {
		name += "-center"
	}
	if r.Bilinear {
		name += "-smooth"
	}
	return name + "=" + num(r.Degrees)
}

func (r Translate) String() string      { return "translate=" + num(r.DX) + "," + num(r.DY) }
func (MirrorHorizontal) String() string { return "mirror-h" }
func (MirrorVertical) String() string   { return "mirror-v" }
func (r Brightness) String() string     { return "brightness=" + num(r.Delta) }
func (r Contrast) String() string       { return "contrast=" + num(r.Factor) }
func (Grayscale) String() string        { return "grayscale" }
func (r LowPass) String() string        { return "lowpass=" + strconv.Itoa(r.KernelSize) }
func (GaussianBlur) String() string     { return "gaussian" }

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

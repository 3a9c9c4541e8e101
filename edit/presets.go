package edit

import (
	"fmt"

	"picedit/pipeline"
	"picedit/raster"
)

// Preset is a button label of the editing screen and the transform it runs.
type Preset struct {
	Label   string
	Request pipeline.Request
}

// Presets returns the editing screen's buttons in display order.
func Presets() []Preset {
	return []Preset{
		{"+ Scale", pipeline.Scale{Factor: 1.1}},
		{"- Scale", pipeline.Scale{Factor: 0.9}},
		{"Rotate left", pipeline.Rotate{Degrees: -90}},
		{"Rotate right", pipeline.Rotate{Degrees: 90}},
		{"Mirror V", pipeline.MirrorVertical{}},
		{"Mirror H", pipeline.MirrorHorizontal{}},
		{"Translate X", pipeline.Translate{DX: 25}},
		{"Translate Y", pipeline.Translate{DY: 25}},
		{"+ Brightness", pipeline.Brightness{Delta: 10}},
		{"- Brightness", pipeline.Brightness{Delta: -10}},
		{"+ Contrast", pipeline.Contrast{Factor: 1.2}},
		{"- Contrast", pipeline.Contrast{Factor: 0.8}},
		{"Grayscale", pipeline.Grayscale{}},
		{"Low Pass Filter", pipeline.LowPass{KernelSize: pipeline.DefaultKernelSize}},
		// Shipped under this label, it runs the Gaussian blur.
		{"High Pass Filter", pipeline.GaussianBlur{}},
	}
}

// LookupPreset returns the request behind a button label.
func LookupPreset(label string) (pipeline.Request, error) {
	for _, p := range Presets() {
		if p.Label == label {
			return p.Request, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown preset %q", raster.ErrInvalidParameter, label)
}

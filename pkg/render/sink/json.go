package sink

import (
	"encoding/json"

	"github.com/matzehuels/stickfigures/pkg/render/figure"
	"github.com/matzehuels/stickfigures/pkg/scale"
)

// frameJSON is the wire form of a frame.
type frameJSON struct {
	figure.Frame
	StepLabel string  `json:"step_label"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

// RenderJSON encodes f together with the canvas size.
func RenderJSON(f figure.Frame, canvas scale.Canvas) ([]byte, error) {
	return json.MarshalIndent(frameJSON{
		Frame:     f,
		StepLabel: f.Step.String(),
		Width:     canvas.Width,
		Height:    canvas.Height,
	}, "", "  ")
}

package scale

import (
	moremath "github.com/aclements/go-moremath/scale"

	"github.com/matzehuels/stickfigures/pkg/entity"
)

// DefaultMargin is the inset reserved on every side of the canvas.
const DefaultMargin = 50

// Margin is the inset reserved around the plot area.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// UniformMargin returns a margin of m on all four sides.
func UniformMargin(m float64) Margin {
	return Margin{Top: m, Right: m, Bottom: m, Left: m}
}

// Canvas is the fixed rendering surface.
type Canvas struct {
	Width, Height float64
	Margin        Margin
}

// NewCanvas returns a w×h canvas with the default margin.
func NewCanvas(w, h float64) Canvas {
	return Canvas{Width: w, Height: h, Margin: UniformMargin(DefaultMargin)}
}

// XRange returns the horizontal pixel range, left to right.
func (c Canvas) XRange() [2]float64 {
	return [2]float64{c.Margin.Left, c.Width - c.Margin.Right}
}

// YRange returns the vertical pixel range, bottom to top. The first element
// is the larger pixel coordinate.
func (c Canvas) YRange() [2]float64 {
	return [2]float64{c.Height - c.Margin.Bottom, c.Margin.Top}
}

// Linear maps a closed numeric domain onto a pixel range.
type Linear struct {
	Domain [2]float64
	Range  [2]float64
}

// Map returns the pixel coordinate for v. Values outside the domain
// extrapolate linearly. A zero-width domain maps everything to the range
// midpoint.
func (l Linear) Map(v float64) float64 {
	t := 0.5
	if l.Domain[0] != l.Domain[1] {
		t = moremath.Linear{Min: l.Domain[0], Max: l.Domain[1]}.Map(v)
	}
	return l.Range[0] + t*(l.Range[1]-l.Range[0])
}

// Degenerate reports whether the domain has zero width.
func (l Linear) Degenerate() bool {
	return l.Domain[0] == l.Domain[1]
}

// Scales is the x/y scale pair for one step.
type Scales struct {
	Step Step
	X, Y Linear
}

// Point maps an attribute vector to canvas coordinates for the scales' step.
func (s Scales) Point(v entity.Vars) (x, y float64) {
	p := s.Step.Pair()
	return s.X.Map(v[p.X]), s.Y.Map(v[p.Y])
}

// Build computes the scales for step over c. It panics if step is invalid.
// An empty collection yields degenerate scales.
func Build(c entity.Collection, step Step, canvas Canvas) Scales {
	p := step.Pair()
	return Scales{
		Step: step,
		X:    Linear{Domain: Extent(c, p.X), Range: canvas.XRange()},
		Y:    Linear{Domain: Extent(c, p.Y), Range: canvas.YRange()},
	}
}

// Extent returns [min, max] of attribute i over c.
func Extent(c entity.Collection, i int) [2]float64 {
	if len(c) == 0 {
		return [2]float64{}
	}
	lo, hi := c[0].Vars[i], c[0].Vars[i]
	for _, e := range c[1:] {
		v := e.Vars[i]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return [2]float64{lo, hi}
}

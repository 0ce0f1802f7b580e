package figure

import (
	"fmt"
	"math"
	"time"

	"github.com/matzehuels/stickfigures/pkg/entity"
	"github.com/matzehuels/stickfigures/pkg/scale"
)

// Glyph geometry, relative to the glyph origin.
const (
	HeadRadius    = 10
	HeadY         = -15
	BodyTop       = -5
	BodyBottom    = 20
	ArmY          = 5
	ArmSpan       = 10
	LegSpan       = 10
	LegBottom     = 35
	LabelY        = 45
	StrokeWidth   = 2
	LabelFontSize = 10
)

// DefaultDuration is the length of a position transition.
const DefaultDuration = 800 * time.Millisecond

// Point is a canvas coordinate.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min, Max Point
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Bounds is the clickable area of a glyph relative to its origin: head,
// body and limbs. The label is not part of it.
var Bounds = Rect{
	Min: Point{X: -ArmSpan, Y: HeadY - HeadRadius},
	Max: Point{X: ArmSpan, Y: LegBottom},
}

// Transition interpolates a glyph between two positions.
type Transition struct {
	From, To Point
	Start    time.Time
	Duration time.Duration
}

// Progress returns the linear completion in [0, 1] at now.
func (t Transition) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(t.Start)) / float64(t.Duration)
	return math.Max(0, math.Min(1, p))
}

// At returns the eased position at now.
func (t Transition) At(now time.Time) Point {
	e := Ease(t.Progress(now))
	return Point{
		X: t.From.X + (t.To.X-t.From.X)*e,
		Y: t.From.Y + (t.To.Y-t.From.Y)*e,
	}
}

// Done reports whether the transition has reached its target at now.
func (t Transition) Done(now time.Time) bool {
	return t.Progress(now) >= 1
}

// Ease is cubic in-out easing over t ∈ [0, 1].
func Ease(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}

// Glyph is the rendered handle for one entity.
type Glyph struct {
	// Handle is an opaque identifier assigned once when the glyph is
	// created. Surfaces use it to address the glyph (DOM ids, click routes).
	Handle string
	ID     entity.ID
	Color  string
	Label  string

	transition Transition
	onActivate func(*Glyph)
}

// Position returns where the glyph is drawn at now.
func (g *Glyph) Position(now time.Time) Point {
	return g.transition.At(now)
}

// Target returns the position the glyph settles at.
func (g *Glyph) Target() Point {
	return g.transition.To
}

// Transition returns the glyph's current transition.
func (g *Glyph) Transition() Transition {
	return g.transition
}

// Activate runs the glyph's activation handler, if any, and reports
// whether one ran.
func (g *Glyph) Activate() bool {
	if g.onActivate == nil {
		return false
	}
	g.onActivate(g)
	return true
}

// Label formats the coordinate label for v at step using the raw values.
func Label(v entity.Vars, step scale.Step) string {
	p := step.Pair()
	return fmt.Sprintf("(%s; %s)", entity.FormatValue(v[p.X]), entity.FormatValue(v[p.Y]))
}

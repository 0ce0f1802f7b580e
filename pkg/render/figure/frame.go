package figure

import (
	"time"

	"github.com/matzehuels/stickfigures/pkg/entity"
	"github.com/matzehuels/stickfigures/pkg/scale"
)

// GlyphState is a glyph as drawn at one instant.
type GlyphState struct {
	Handle  string    `json:"handle"`
	ID      entity.ID `json:"id"`
	Color   string    `json:"color"`
	Label   string    `json:"label"`
	X       float64   `json:"x"`
	Y       float64   `json:"y"`
	TargetX float64   `json:"target_x"`
	TargetY float64   `json:"target_y"`
}

// Position returns the drawn position.
func (s GlyphState) Position() Point { return Point{X: s.X, Y: s.Y} }

// Target returns the settled position.
func (s GlyphState) Target() Point { return Point{X: s.TargetX, Y: s.TargetY} }

// Frame is a snapshot of every glyph at one instant, in creation order.
type Frame struct {
	Step       scale.Step   `json:"step"`
	DurationMS int64        `json:"duration_ms"`
	Animating  bool         `json:"animating"`
	Glyphs     []GlyphState `json:"glyphs"`
}

// Settled returns a copy of f with every glyph at its target.
func (f Frame) Settled() Frame {
	out := f
	out.Animating = false
	out.Glyphs = make([]GlyphState, len(f.Glyphs))
	for i, g := range f.Glyphs {
		g.X, g.Y = g.TargetX, g.TargetY
		out.Glyphs[i] = g
	}
	return out
}

// Frame derives the snapshot at now.
func (r *Renderer) Frame(now time.Time) Frame {
	f := Frame{
		Step:       r.step,
		DurationMS: r.duration.Milliseconds(),
		Glyphs:     make([]GlyphState, 0, len(r.order)),
	}
	for _, id := range r.order {
		g := r.glyphs[id]
		pos, target := g.Position(now), g.Target()
		f.Glyphs = append(f.Glyphs, GlyphState{
			Handle:  g.Handle,
			ID:      g.ID,
			Color:   g.Color,
			Label:   g.Label,
			X:       pos.X,
			Y:       pos.Y,
			TargetX: target.X,
			TargetY: target.Y,
		})
		if !g.transition.Done(now) {
			f.Animating = true
		}
	}
	return f
}

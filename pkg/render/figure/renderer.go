package figure

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/stickfigures/pkg/entity"
	"github.com/matzehuels/stickfigures/pkg/scale"
)

// DefaultPalette holds the ten glyph colors. Ids are assigned colors in
// first-seen order, wrapping around when there are more ids than colors.
var DefaultPalette = []string{
	"#4464AD", "#A4B0F5", "#FFB347", "#7D4600", "#439A86",
	"#D05353", "#F49AC2", "#DBABBE", "#09A129", "#957FEF",
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPalette replaces the color palette. An empty palette is ignored.
func WithPalette(colors []string) Option {
	return func(r *Renderer) {
		if len(colors) > 0 {
			r.palette = append([]string(nil), colors...)
		}
	}
}

// WithDuration sets the transition length. Zero makes updates instant.
func WithDuration(d time.Duration) Option {
	return func(r *Renderer) { r.duration = max(d, 0) }
}

// WithClock sets the time source used to start transitions.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// Renderer owns the id → glyph association.
type Renderer struct {
	palette  []string
	duration time.Duration
	now      func() time.Time

	glyphs   map[entity.ID]*Glyph
	byHandle map[string]*Glyph
	colors   map[entity.ID]int
	order    []entity.ID
	step     scale.Step
}

// New returns an empty Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		palette:  DefaultPalette,
		duration: DefaultDuration,
		now:      time.Now,
		glyphs:   make(map[entity.ID]*Glyph),
		byHandle: make(map[string]*Glyph),
		colors:   make(map[entity.ID]int),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Initialize creates a glyph for every entity in c that has none yet. New
// glyphs start at the canvas origin with the label for the first attribute
// pair. onActivate is attached to each new glyph and runs when the glyph is
// clicked.
func (r *Renderer) Initialize(c entity.Collection, onActivate func(*Glyph)) {
	for _, e := range c {
		if _, ok := r.glyphs[e.ID]; ok {
			continue
		}
		g := &Glyph{
			Handle:     uuid.NewString(),
			ID:         e.ID,
			Color:      r.color(e.ID),
			Label:      Label(e.Vars, 0),
			onActivate: onActivate,
		}
		r.glyphs[e.ID] = g
		r.byHandle[g.Handle] = g
		r.order = append(r.order, e.ID)
	}
}

// color returns the palette entry for id, assigning the next ordinal the
// first time id is seen.
func (r *Renderer) color(id entity.ID) string {
	i, ok := r.colors[id]
	if !ok {
		i = len(r.colors)
		r.colors[id] = i
	}
	return r.palette[i%len(r.palette)]
}

// Update retargets every glyph whose id is in c to the position given by s
// and refreshes its label. Entities without a glyph are ignored.
func (r *Renderer) Update(c entity.Collection, s scale.Scales) {
	now := r.now()
	r.step = s.Step
	for _, e := range c {
		g, ok := r.glyphs[e.ID]
		if !ok {
			continue
		}
		x, y := s.Point(e.Vars)
		g.transition = Transition{
			From:     g.Position(now),
			To:       Point{X: x, Y: y},
			Start:    now,
			Duration: r.duration,
		}
		g.Label = Label(e.Vars, s.Step)
	}
}

// Glyph returns the glyph for id.
func (r *Renderer) Glyph(id entity.ID) (*Glyph, bool) {
	g, ok := r.glyphs[id]
	return g, ok
}

// ByHandle returns the glyph with the given handle.
func (r *Renderer) ByHandle(handle string) (*Glyph, bool) {
	g, ok := r.byHandle[handle]
	return g, ok
}

// Len returns the number of glyphs.
func (r *Renderer) Len() int { return len(r.order) }

// Duration returns the transition length.
func (r *Renderer) Duration() time.Duration { return r.duration }

// Animating reports whether any glyph is still moving at now.
func (r *Renderer) Animating(now time.Time) bool {
	for _, id := range r.order {
		if !r.glyphs[id].transition.Done(now) {
			return true
		}
	}
	return false
}

// HitTest returns the topmost glyph whose bounds contain p at now.
// Glyphs are drawn in creation order, so later glyphs win.
func (r *Renderer) HitTest(p Point, now time.Time) (*Glyph, bool) {
	for i := len(r.order) - 1; i >= 0; i-- {
		g := r.glyphs[r.order[i]]
		pos := g.Position(now)
		if Bounds.Contains(Point{X: p.X - pos.X, Y: p.Y - pos.Y}) {
			return g, true
		}
	}
	return nil, false
}

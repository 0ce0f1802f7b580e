// Package session implements the interaction controller.
//
// A [Session] owns the loaded collection, the current attribute pair, the
// figure renderer and the data table. It is the single writer of that state:
// every input goes through one of its methods, which computes the next
// [State], rebuilds the scales and retargets the glyphs.
//
// Sessions are not safe for concurrent use. The terminal surface drives one
// from bubbletea's update loop; the HTTP server guards one with a mutex.
//
// # Inputs
//
//   - Activating any glyph (a click) advances the step: x1/y1 → x2/y2 →
//     x3/y3 → x1/y1.
//   - The rotate key (default "n", case-insensitive) rotates attribute
//     values one position through the collection.
//   - Every other input is ignored.
//
// The table is built once in [New] and is not refreshed after rotations.
package session

import (
	"strings"
	"time"

	"github.com/matzehuels/stickfigures/pkg/entity"
	"github.com/matzehuels/stickfigures/pkg/errors"
	"github.com/matzehuels/stickfigures/pkg/observability"
	"github.com/matzehuels/stickfigures/pkg/render/figure"
	"github.com/matzehuels/stickfigures/pkg/render/table"
	"github.com/matzehuels/stickfigures/pkg/scale"
)

// DefaultRotateKey is the key that triggers rotate-values.
const DefaultRotateKey = "n"

// State is the mutable part of a session.
type State struct {
	Entities entity.Collection
	Step     scale.Step
}

// Advance returns the state with the next attribute pair selected.
func (s State) Advance() State {
	return State{Entities: s.Entities, Step: s.Step.Next()}
}

// Rotate returns the state with attribute values rotated one position.
func (s State) Rotate() State {
	return State{Entities: entity.Rotate(s.Entities), Step: s.Step}
}

// Scales builds the scales for s on canvas.
func (s State) Scales(canvas scale.Canvas) scale.Scales {
	return scale.Build(s.Entities, s.Step, canvas)
}

// Option configures a Session.
type Option func(*config)

type config struct {
	rotateKey string
	figure    []figure.Option
}

// WithRotateKey sets the key that rotates values. It must be a single letter.
func WithRotateKey(key string) Option {
	return func(c *config) { c.rotateKey = key }
}

// WithFigureOptions passes options through to the figure renderer.
func WithFigureOptions(opts ...figure.Option) Option {
	return func(c *config) { c.figure = append(c.figure, opts...) }
}

// Session is one interactive view over a loaded collection.
type Session struct {
	state     State
	canvas    scale.Canvas
	rotateKey string
	renderer  *figure.Renderer
	table     table.Table
}

// New starts a session over c: it builds the table, creates one glyph per
// entity at the origin and starts their transitions to the step 0 layout.
func New(c entity.Collection, canvas scale.Canvas, opts ...Option) (*Session, error) {
	cfg := config{rotateKey: DefaultRotateKey}
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(c) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "session needs at least one entity")
	}
	if err := errors.ValidateKey(cfg.rotateKey); err != nil {
		return nil, err
	}

	s := &Session{
		state:     State{Entities: c.Clone()},
		canvas:    canvas,
		rotateKey: strings.ToLower(cfg.rotateKey),
		renderer:  figure.New(cfg.figure...),
		table:     table.Build(c),
	}
	s.renderer.Initialize(s.state.Entities, func(*figure.Glyph) { s.AdvanceStep() })
	s.render()
	return s, nil
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Step returns the current attribute pair.
func (s *Session) Step() scale.Step { return s.state.Step }

// Canvas returns the drawing surface the session lays out on.
func (s *Session) Canvas() scale.Canvas { return s.canvas }

// RotateKey returns the lower-cased rotate key.
func (s *Session) RotateKey() string { return s.rotateKey }

// Table returns the table built when the session started.
func (s *Session) Table() table.Table { return s.table }

// AdvanceStep selects the next attribute pair and retargets every glyph.
func (s *Session) AdvanceStep() {
	s.state = s.state.Advance()
	s.render()
	observability.Session().OnAdvanceStep(int(s.state.Step))
}

// RotateValues rotates attribute values and retargets every glyph.
func (s *Session) RotateValues() {
	s.state = s.state.Rotate()
	s.render()
	observability.Session().OnRotate(int(s.state.Step))
}

// HandleKey applies a key press and reports whether it changed state.
func (s *Session) HandleKey(key string) bool {
	if strings.ToLower(key) != s.rotateKey {
		observability.Session().OnIgnoredInput("key " + key)
		return false
	}
	s.RotateValues()
	return true
}

// Activate runs the activation handler of the glyph with handle.
func (s *Session) Activate(handle string) bool {
	g, ok := s.renderer.ByHandle(handle)
	if !ok {
		observability.Session().OnIgnoredInput("glyph " + handle)
		return false
	}
	return g.Activate()
}

// Click activates the glyph under p at now, if any.
func (s *Session) Click(p figure.Point, now time.Time) bool {
	g, ok := s.renderer.HitTest(p, now)
	if !ok {
		observability.Session().OnIgnoredInput("click")
		return false
	}
	return g.Activate()
}

// Frame returns the glyph snapshot at now.
func (s *Session) Frame(now time.Time) figure.Frame {
	return s.renderer.Frame(now)
}

// Animating reports whether any glyph is still moving at now.
func (s *Session) Animating(now time.Time) bool {
	return s.renderer.Animating(now)
}

func (s *Session) render() {
	s.renderer.Update(s.state.Entities, s.state.Scales(s.canvas))
}

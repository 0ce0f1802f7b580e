package session

import (
	"testing"
	"time"

	"github.com/matzehuels/stickfigures/pkg/entity"
	"github.com/matzehuels/stickfigures/pkg/errors"
	"github.com/matzehuels/stickfigures/pkg/observability"
	"github.com/matzehuels/stickfigures/pkg/render/figure"
	"github.com/matzehuels/stickfigures/pkg/scale"
)

var (
	canvas = scale.NewCanvas(1000, 800)
	t0     = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
)

func scenario() entity.Collection {
	return entity.Collection{
		{ID: "A", Vars: entity.Vars{0, 0, 10, 10, 20, 20}},
		{ID: "B", Vars: entity.Vars{10, 10, 0, 0, 30, 30}},
	}
}

func newSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	opts = append(opts, WithFigureOptions(figure.WithClock(func() time.Time { return t0 })))
	s, err := New(scenario(), canvas, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// targets returns the settled position of every glyph keyed by entity id.
func targets(s *Session) map[entity.ID]figure.Point {
	out := make(map[entity.ID]figure.Point)
	for _, g := range s.Frame(t0).Glyphs {
		out[g.ID] = g.Target()
	}
	return out
}

func TestNewLaysOutFirstPair(t *testing.T) {
	s := newSession(t)

	if s.Step() != 0 {
		t.Errorf("Step() = %v, want 0", s.Step())
	}
	got := targets(s)
	if got["A"] != (figure.Point{X: 50, Y: 750}) {
		t.Errorf("A target = %v, want (50, 750)", got["A"])
	}
	if got["B"] != (figure.Point{X: 950, Y: 50}) {
		t.Errorf("B target = %v, want (950, 50)", got["B"])
	}
	for _, g := range s.Frame(t0).Glyphs {
		if g.Position() != (figure.Point{}) {
			t.Errorf("%s starts at %v, want origin", g.ID, g.Position())
		}
	}
	if !s.Animating(t0) || s.Animating(t0.Add(figure.DefaultDuration)) {
		t.Error("initial transition should run for one duration")
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		c    entity.Collection
		opts []Option
		code errors.Code
	}{
		{"empty collection", entity.Collection{}, nil, errors.ErrCodeInvalidInput},
		{"multi-rune key", scenario(), []Option{WithRotateKey("nn")}, errors.ErrCodeInvalidKey},
		{"digit key", scenario(), []Option{WithRotateKey("1")}, errors.ErrCodeInvalidKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.c, canvas, tt.opts...)
			if !errors.Is(err, tt.code) {
				t.Errorf("New() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestAdvanceStepHasOrderThree(t *testing.T) {
	s := newSession(t)
	before := targets(s)

	s.AdvanceStep()
	if s.Step() != 1 {
		t.Fatalf("Step() = %v, want 1", s.Step())
	}
	if got := targets(s); got["A"] != (figure.Point{X: 950, Y: 50}) {
		t.Errorf("A target at step 1 = %v, want (950, 50)", got["A"])
	}
	s.AdvanceStep()
	s.AdvanceStep()

	if s.Step() != 0 {
		t.Errorf("Step() = %v after three advances, want 0", s.Step())
	}
	after := targets(s)
	for id, p := range before {
		if after[id] != p {
			t.Errorf("%s target = %v, want %v", id, after[id], p)
		}
	}
}

func TestHandleKey(t *testing.T) {
	tests := []struct {
		key     string
		rotated bool
	}{
		{"n", true},
		{"N", true},
		{"m", false},
		{"enter", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			s := newSession(t)
			if got := s.HandleKey(tt.key); got != tt.rotated {
				t.Fatalf("HandleKey(%q) = %v, want %v", tt.key, got, tt.rotated)
			}
			want := entity.Vars{0, 0, 10, 10, 20, 20}
			if tt.rotated {
				want = entity.Vars{10, 10, 0, 0, 30, 30}
			}
			if got := s.State().Entities[0].Vars; got != want {
				t.Errorf("A vars = %v, want %v", got, want)
			}
		})
	}
}

func TestCustomRotateKey(t *testing.T) {
	s := newSession(t, WithRotateKey("R"))
	if s.RotateKey() != "r" {
		t.Errorf("RotateKey() = %q, want r", s.RotateKey())
	}
	if s.HandleKey("n") {
		t.Error("default key should be ignored")
	}
	if !s.HandleKey("r") {
		t.Error("r should rotate")
	}
}

// Scenario: step 0, press "N", then click a glyph.
func TestRotateThenAdvanceScenario(t *testing.T) {
	s := newSession(t)
	a := s.Frame(t0).Glyphs[0]

	s.HandleKey("N")
	got := targets(s)
	if got["A"] != (figure.Point{X: 950, Y: 50}) || got["B"] != (figure.Point{X: 50, Y: 750}) {
		t.Errorf("after rotate targets = %v", got)
	}

	if !s.Activate(a.Handle) {
		t.Fatal("Activate returned false")
	}
	if s.Step() != 1 {
		t.Errorf("Step() = %v, want 1", s.Step())
	}
	// A now carries B's vars; at step 1 that is (0, 0).
	got = targets(s)
	if got["A"] != (figure.Point{X: 50, Y: 750}) {
		t.Errorf("A target = %v, want (50, 750)", got["A"])
	}

	f := s.Frame(t0)
	if f.Glyphs[0].Handle != a.Handle || f.Glyphs[0].Color != a.Color {
		t.Error("glyph identity or color changed")
	}
	if f.Glyphs[0].Label != "(0; 0)" {
		t.Errorf("A label = %q, want (0; 0)", f.Glyphs[0].Label)
	}
}

func TestActivateUnknownHandle(t *testing.T) {
	s := newSession(t)
	if s.Activate("nope") {
		t.Error("Activate(unknown) = true")
	}
	if s.Step() != 0 {
		t.Errorf("Step() = %v, want 0", s.Step())
	}
}

func TestClick(t *testing.T) {
	s := newSession(t)
	settled := t0.Add(figure.DefaultDuration)

	if s.Click(figure.Point{X: 500, Y: 400}, settled) {
		t.Error("click on empty canvas should be ignored")
	}
	if !s.Click(figure.Point{X: 950, Y: 50}, settled) {
		t.Fatal("click on B should activate it")
	}
	if s.Step() != 1 {
		t.Errorf("Step() = %v, want 1", s.Step())
	}
}

func TestTableIsNotRefreshed(t *testing.T) {
	s := newSession(t)
	before := s.Table().Rows[0][1]

	s.HandleKey("n")

	if got := s.Table().Rows[0][1]; got != before {
		t.Errorf("table cell = %q after rotate, want %q", got, before)
	}
	if s.State().Entities[0].Vars[0] != 10 {
		t.Error("state should have rotated")
	}
}

func TestSessionDoesNotMutateInput(t *testing.T) {
	c := scenario()
	s, err := New(c, canvas)
	if err != nil {
		t.Fatal(err)
	}
	s.RotateValues()
	if c[0].Vars[0] != 0 {
		t.Error("New or RotateValues mutated the caller's collection")
	}
}

func TestStateTransitionsArePure(t *testing.T) {
	st := State{Entities: scenario()}

	next := st.Advance().Rotate()
	if st.Step != 0 || st.Entities[0].Vars[0] != 0 {
		t.Error("transitions modified the receiver")
	}
	if next.Step != 1 || next.Entities[0].Vars[0] != 10 {
		t.Errorf("next = %+v", next)
	}
}

type recordingHooks struct {
	advances []int
	rotates  []int
	ignored  []string
}

func (h *recordingHooks) OnAdvanceStep(step int)      { h.advances = append(h.advances, step) }
func (h *recordingHooks) OnRotate(step int)           { h.rotates = append(h.rotates, step) }
func (h *recordingHooks) OnIgnoredInput(input string) { h.ignored = append(h.ignored, input) }

func TestSessionHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetSessionHooks(h)
	t.Cleanup(observability.Reset)

	s := newSession(t)
	s.AdvanceStep()
	s.HandleKey("N")
	s.HandleKey("x")

	if len(h.advances) != 1 || h.advances[0] != 1 {
		t.Errorf("advances = %v, want [1]", h.advances)
	}
	if len(h.rotates) != 1 || h.rotates[0] != 1 {
		t.Errorf("rotates = %v, want [1]", h.rotates)
	}
	if len(h.ignored) != 1 || h.ignored[0] != "key x" {
		t.Errorf("ignored = %v, want [key x]", h.ignored)
	}
}

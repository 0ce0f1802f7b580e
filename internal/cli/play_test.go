package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/stickfigures/pkg/config"
	"github.com/matzehuels/stickfigures/pkg/entity"
	"github.com/matzehuels/stickfigures/pkg/render/figure"
)

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

func playScenario() entity.Collection {
	return entity.Collection{
		{ID: "A", Vars: entity.Vars{0, 0, 10, 10, 20, 20}},
		{ID: "B", Vars: entity.Vars{10, 10, 0, 0, 30, 30}},
	}
}

// startedModel returns a model that has received a 100×40 window.
func startedModel(t *testing.T, clock *testClock) playModel {
	t.Helper()
	m := newPlayModel(playScenario(), config.Default(), clock.now)
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if cmd == nil {
		t.Fatal("window size should start the redraw ticker")
	}
	return next.(playModel)
}

func TestPlayModelWaitsForWindowSize(t *testing.T) {
	m := newPlayModel(playScenario(), config.Default(), time.Now)
	if !strings.Contains(m.View(), "Waiting") {
		t.Errorf("View() = %q", m.View())
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if next.(playModel).sess != nil {
		t.Error("keys before sizing should not start a session")
	}
}

func TestPlayModelTinyWindowKeepsPlotArea(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		margin        float64
	}{
		{"narrow", 5, 40, 50},
		{"one column", 1, 1, 50},
		{"wide margin", 20, 10, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Canvas.Margin = tt.margin
			m := newPlayModel(playScenario(), cfg, time.Now)
			next, _ := m.Update(tea.WindowSizeMsg{Width: tt.width, Height: tt.height})
			pm := next.(playModel)
			if pm.err != nil {
				t.Fatalf("start error = %v", pm.err)
			}
			c := pm.sess.Canvas()
			if c.Width <= 2*tt.margin || c.Height <= 2*tt.margin {
				t.Errorf("canvas %vx%v has no plot area inside margin %v", c.Width, c.Height, tt.margin)
			}
		})
	}
}

func TestPlayModelSizesCanvasOnce(t *testing.T) {
	clock := &testClock{t: time.Now()}
	m := startedModel(t, clock)

	c := m.sess.Canvas()
	wantRows := 40 - headerLines - tableHeight(2)
	if c.Width != 100*cellWidth || c.Height != float64(wantRows*cellHeight) {
		t.Errorf("canvas = %vx%v, want %vx%v", c.Width, c.Height, 100*cellWidth, wantRows*cellHeight)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 50, Height: 20})
	if got := next.(playModel).sess.Canvas(); got != c {
		t.Errorf("resize changed canvas to %+v", got)
	}
}

func TestPlayModelRotateKey(t *testing.T) {
	tests := []struct {
		key     rune
		rotated bool
	}{
		{'n', true},
		{'N', true},
		{'x', false},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			clock := &testClock{t: time.Now()}
			m := startedModel(t, clock)

			next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{tt.key}})
			got := next.(playModel).sess.State().Entities[0].Vars[0]
			if rotated := got == 10; rotated != tt.rotated {
				t.Errorf("A var[0] = %v, rotated = %v, want %v", got, rotated, tt.rotated)
			}
		})
	}
}

func TestPlayModelQuit(t *testing.T) {
	clock := &testClock{t: time.Now()}
	m := startedModel(t, clock)

	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
	} {
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%s: no command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s did not quit", msg)
		}
	}
}

func TestPlayModelClickAdvancesStep(t *testing.T) {
	clock := &testClock{t: time.Now()}
	m := startedModel(t, clock)
	clock.t = clock.t.Add(figure.DefaultDuration)

	// A settles at canvas (50, 610): cell (5, 31), head one row above.
	click := func(x, y int) playModel {
		next, _ := m.Update(tea.MouseMsg{X: x, Y: y + headerLines, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		return next.(playModel)
	}

	if got := click(50, 15).sess.Step(); got != 0 {
		t.Errorf("click on empty cell moved to step %v", got)
	}
	if got := click(5, 30).sess.Step(); got != 1 {
		t.Errorf("click on A's head: step = %v, want 1", got)
	}
}

func TestPlayModelTickStopsWhenSettled(t *testing.T) {
	clock := &testClock{t: time.Now()}
	m := startedModel(t, clock)

	next, cmd := m.Update(tickMsg(clock.t))
	if cmd == nil {
		t.Error("tick during animation should schedule another tick")
	}

	clock.t = clock.t.Add(figure.DefaultDuration)
	next, cmd = next.Update(tickMsg(clock.t))
	if cmd != nil {
		t.Error("tick after animation should stop")
	}
	if next.(playModel).ticking {
		t.Error("ticking should be cleared")
	}
}

func TestPlayModelView(t *testing.T) {
	clock := &testClock{t: time.Now()}
	m := startedModel(t, clock)
	clock.t = clock.t.Add(figure.DefaultDuration)

	view := m.View()
	for _, want := range []string{"x1/y1", "(0; 0)", "(10; 10)", "X1", "q: quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestDrawPlot(t *testing.T) {
	f := figure.Frame{Glyphs: []figure.GlyphState{
		{Color: "#4464ad", Label: "(1; 2)", X: 50, Y: 40},
	}}
	lines := strings.Split(drawPlot(f, 20, 6), "\n")

	for row, want := range map[int]string{1: "o", 2: "/|\\", 3: "/ \\", 4: "(1; 2)"} {
		if !strings.Contains(lines[row], want) {
			t.Errorf("row %d = %q, want %q", row, lines[row], want)
		}
	}
	if strings.TrimSpace(lines[0]) != "" || strings.TrimSpace(lines[5]) != "" {
		t.Error("rows outside the figure should be blank")
	}
}

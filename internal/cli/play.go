package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stickfigures/pkg/config"
	"github.com/matzehuels/stickfigures/pkg/entity"
	"github.com/matzehuels/stickfigures/pkg/render/figure"
	"github.com/matzehuels/stickfigures/pkg/scale"
	"github.com/matzehuels/stickfigures/pkg/session"
)

const (
	// cellWidth and cellHeight are the canvas units covered by one
	// terminal cell.
	cellWidth  = 10
	cellHeight = 20

	// frameInterval paces redraws while glyphs are moving.
	frameInterval = 16 * time.Millisecond

	// headerLines is the status line above the plot.
	headerLines = 1

	minPlotRows = 8
)

// sprite is a stick figure in terminal cells, centered on the glyph origin:
// head, arms with body, legs. Spaces are transparent.
var sprite = [...]string{" o ", "/|\\", "/ \\"}

// spriteTop is the row offset of the first sprite line; the label sits on
// the line below the sprite.
const spriteTop = -1

type playOpts struct {
	rotateKey string
	logFile   string
}

// playCommand creates the play command for the interactive terminal session.
func (c *CLI) playCommand() *cobra.Command {
	var opts playOpts

	cmd := &cobra.Command{
		Use:   "play <source>",
		Short: "Explore the data as stick figures in the terminal",
		Long: `Open an interactive terminal session.

Each entity is drawn as a stick figure positioned by one attribute pair.
Click a figure to switch to the next pair; press the rotate key (default n,
case-insensitive) to rotate attribute values between entities. Press q to
quit.

The plot size is taken from the terminal when the session starts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if opts.rotateKey != "" {
				cfg.Input.RotateKey = opts.rotateKey
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			coll, err := loadEntities(cmd.Context(), cmd.ErrOrStderr(), args[0])
			if err != nil {
				return err
			}
			return c.runPlay(cmd, coll, cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.rotateKey, "key", "", "rotate key (overrides config)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file while the session runs")

	return cmd
}

func (c *CLI) runPlay(cmd *cobra.Command, coll entity.Collection, cfg config.Config, opts playOpts) error {
	// Log lines would tear the alternate screen, so they go to a file or
	// nowhere while the program runs.
	var out io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := tea.LogToFile(opts.logFile, appName)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	c.Logger.SetOutput(out)
	defer c.Logger.SetOutput(os.Stderr)

	p := tea.NewProgram(newPlayModel(coll, cfg, time.Now),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(playModel); ok && m.err != nil {
		return m.err
	}
	return nil
}

// =============================================================================
// playModel - Interactive terminal session
// =============================================================================

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// playModel is the bubbletea model for the terminal session. The session is
// created from the first window size message and keeps that size.
type playModel struct {
	coll entity.Collection
	cfg  config.Config
	now  func() time.Time

	sess      *session.Session
	cols      int
	plotRows  int
	tableView string
	ticking   bool
	err       error
}

func newPlayModel(coll entity.Collection, cfg config.Config, now func() time.Time) playModel {
	return playModel{coll: coll, cfg: cfg, now: now}
}

func (m playModel) Init() tea.Cmd {
	return nil
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.sess != nil {
			return m, nil
		}
		if err := m.start(msg.Width, msg.Height); err != nil {
			m.err = err
			return m, tea.Quit
		}
		return m.animate()

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.sess == nil {
			return m, nil
		}
		if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && m.sess.HandleKey(string(msg.Runes)) {
			return m.animate()
		}
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		}

	case tea.MouseMsg:
		if m.sess == nil || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if handle, ok := m.glyphAt(msg.X, msg.Y-headerLines); ok && m.sess.Activate(handle) {
			return m.animate()
		}

	case tickMsg:
		if m.sess != nil && m.sess.Animating(m.now()) {
			return m, tick()
		}
		m.ticking = false
	}
	return m, nil
}

// minCells is the smallest cell count whose extent exceeds both margins.
// Narrower terminals get a plot that overflows rather than an empty range.
func minCells(margin float64, cell int) int {
	return int(math.Floor(2*margin/float64(cell))) + 1
}

// start sizes the canvas from the terminal and opens the session.
func (m *playModel) start(width, height int) error {
	margin := m.cfg.Canvas.Margin
	m.cols = max(width, minCells(margin, cellWidth))
	m.plotRows = max(height-headerLines-tableHeight(len(m.coll)), minPlotRows, minCells(margin, cellHeight))

	canvas := scale.Canvas{
		Width:  float64(m.cols * cellWidth),
		Height: float64(m.plotRows * cellHeight),
		Margin: scale.UniformMargin(m.cfg.Canvas.Margin),
	}
	sess, err := session.New(m.coll, canvas,
		session.WithRotateKey(m.cfg.Input.RotateKey),
		session.WithFigureOptions(m.cfg.FigureOptions()...),
	)
	if err != nil {
		return err
	}
	m.sess = sess
	m.tableView = renderTable(sess.Table())
	return nil
}

// animate starts the redraw ticker unless it is already running.
func (m playModel) animate() (tea.Model, tea.Cmd) {
	if m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, tick()
}

// cellOf returns the terminal cell of a canvas point.
func cellOf(x, y float64) (col, row int) {
	return int(math.Round(x / cellWidth)), int(math.Round(y / cellHeight))
}

// glyphAt returns the handle of the topmost figure drawn over the plot cell
// (col, row). Labels are not clickable.
func (m playModel) glyphAt(col, row int) (string, bool) {
	glyphs := m.sess.Frame(m.now()).Glyphs
	for i := len(glyphs) - 1; i >= 0; i-- {
		g := glyphs[i]
		c, r := cellOf(g.X, g.Y)
		dr := row - r - spriteTop
		dc := col - c + 1
		if dr < 0 || dr >= len(sprite) || dc < 0 || dc >= len(sprite[dr]) {
			continue
		}
		if sprite[dr][dc] != ' ' {
			return g.Handle, true
		}
	}
	return "", false
}

func (m playModel) View() string {
	if m.err != nil {
		return styleIconError.Render(iconError) + " " + m.err.Error() + "\n"
	}
	if m.sess == nil {
		return StyleDim.Render("Waiting for terminal size…")
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(drawPlot(m.sess.Frame(m.now()), m.cols, m.plotRows))
	b.WriteString(m.tableView)
	return b.String()
}

func (m playModel) header() string {
	return StyleTitle.Render(appName) + "  " +
		StyleHighlight.Render(m.sess.Step().String()) + "  " +
		StyleDim.Render(fmt.Sprintf("click a figure: next pair · %s: rotate values · q: quit", m.sess.RotateKey()))
}

// =============================================================================
// Plot drawing
// =============================================================================

type plotCell struct {
	r     rune
	color string
}

// drawPlot rasterizes f onto a cols×rows grid of terminal cells.
func drawPlot(f figure.Frame, cols, rows int) string {
	grid := make([][]plotCell, rows)
	for i := range grid {
		grid[i] = make([]plotCell, cols)
	}
	put := func(col, row int, r rune, color string) {
		if row < 0 || row >= rows || col < 0 || col >= cols {
			return
		}
		grid[row][col] = plotCell{r: r, color: color}
	}

	for _, g := range f.Glyphs {
		c, r := cellOf(g.X, g.Y)
		for dr, line := range sprite {
			for dc, ch := range line {
				if ch != ' ' {
					put(c-1+dc, r+spriteTop+dr, ch, g.Color)
				}
			}
		}
		label := []rune(g.Label)
		start := c - len(label)/2
		for i, ch := range label {
			put(start+i, r+spriteTop+len(sprite), ch, g.Color)
		}
	}

	var b strings.Builder
	for _, line := range grid {
		writeRow(&b, line)
		b.WriteString("\n")
	}
	return b.String()
}

// writeRow writes a grid row, styling runs of equally colored cells together.
func writeRow(b *strings.Builder, line []plotCell) {
	var run strings.Builder
	color := ""
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if color == "" {
			b.WriteString(run.String())
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(run.String()))
		}
		run.Reset()
	}
	for _, cell := range line {
		if cell.r == 0 {
			cell.r = ' '
		}
		if cell.color != color {
			flush()
			color = cell.color
		}
		run.WriteRune(cell.r)
	}
	flush()
}

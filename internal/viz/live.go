package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/restfield/internal/config"
	"github.com/san-kum/restfield/internal/palette"
	"github.com/san-kum/restfield/internal/particle"
	"github.com/san-kum/restfield/internal/scene"
	"go.uber.org/zap"
)

const historyCapacity = 240

const hints = "drag:push  o:overlay  t:theme  p:palette  r:rebuild  q:quit"

type TickMsg time.Time

// Options configures a Model.
type Options struct {
	Field   particle.FieldConfig
	FPS     int
	Theme   string
	Palette string
	Overlay bool
	// Hover lets plain mouse motion push particles, without a button held.
	Hover  bool
	Logger *zap.Logger
}

// OptionsFromConfig builds Options from a validated config.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	fc, err := cfg.FieldConfig()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Field:   fc,
		FPS:     cfg.Engine.FPS,
		Theme:   cfg.Render.Theme,
		Palette: cfg.Render.Palette,
		Overlay: cfg.Render.Overlay,
	}, nil
}

// activity is shared between the scene's render hook and every copy of the
// Model bubbletea hands around.
type activity struct {
	moving []float64
	last   particle.Stats
}

func (a *activity) record(st particle.Stats) {
	a.last = st
	a.moving = append(a.moving, float64(st.Particles-st.Resting))
	if len(a.moving) > historyCapacity {
		a.moving = a.moving[1:]
	}
}

// Model drives a scene from terminal events and draws it.
type Model struct {
	scene       *scene.Scene
	dots        *dotLayer
	act         *activity
	canvas      *Canvas
	theme       Theme
	paletteName string
	styles      styles
	threshold   float64
	interval    time.Duration
	start       time.Time
	width       int
	height      int
	overlay     bool
	ticking     bool
	log         *zap.Logger
	err         error
}

func NewModel(opts Options) (Model, error) {
	if opts.FPS <= 0 {
		return Model{}, fmt.Errorf("%w: fps must be positive, got %d", config.ErrInvalidConfig, opts.FPS)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	dots := &dotLayer{}
	act := &activity{}
	var sc *scene.Scene
	sceneOpts := []scene.Option{
		scene.WithLogger(log),
		scene.WithRender(func() { act.record(sc.Field.Stats()) }),
	}
	if opts.Hover {
		sceneOpts = append(sceneOpts, scene.WithHover())
	}
	sc, err := scene.New(opts.Field, dots, sceneOpts...)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		scene:       sc,
		dots:        dots,
		act:         act,
		theme:       GetTheme(opts.Theme),
		paletteName: opts.Palette,
		threshold:   opts.Field.Particle.Threshold,
		interval:    time.Second / time.Duration(opts.FPS),
		start:       time.Now(),
		overlay:     opts.Overlay,
		log:         log,
	}
	m.restyle()
	return m, nil
}

// Init waits for the first WindowSizeMsg, which builds the field.
func (m Model) Init() tea.Cmd { return nil }

// Update handles input events and advances the scene on ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "o":
			m.overlay = !m.overlay
			m.resize()
		case "t":
			m.theme = GetTheme(next(ThemeNames(), m.theme.Name))
			m.restyle()
		case "p":
			m.paletteName = next(palette.Names(), m.paletteName)
			m.restyle()
		case "r":
			m.resize()
		}
		return m, m.arm()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, m.arm()
	case tea.MouseMsg:
		m.pointer(msg)
		return m, m.arm()
	case TickMsg:
		m.ticking = false
		m.scene.Frame(m.stamp(time.Time(msg)))
		return m, m.arm()
	}
	return m, nil
}

// arm schedules the next tick while the scene has frame work queued.
func (m *Model) arm() tea.Cmd {
	if m.ticking || !m.scene.Busy() {
		return nil
	}
	m.ticking = true
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// stamp converts a tick time to milliseconds since the model was created.
func (m *Model) stamp(t time.Time) float64 {
	return float64(t.Sub(m.start)) / float64(time.Millisecond)
}

func (m *Model) canvasSize() (cols, rows int) {
	cols, rows = m.width, m.height-1
	if m.overlay {
		cols -= panelWidth
	}
	return cols, rows
}

// resize rebuilds the canvas and field for the current terminal size.
func (m *Model) resize() {
	cols, rows := m.canvasSize()
	if cols < 1 || rows < 1 {
		return
	}
	m.canvas = NewCanvas(cols, rows)
	layout := particle.Layout{Width: float64(cols * 2), Height: float64(rows * 4)}
	if err := m.scene.Resize(layout); err != nil {
		m.err = err
		m.log.Error("resize failed", zap.Int("cols", cols), zap.Int("rows", rows), zap.Error(err))
		return
	}
	m.err = nil
}

// pointer maps a mouse cell to the middle of its sub-pixel block.
func (m *Model) pointer(msg tea.MouseMsg) {
	x, y := float64(msg.X*2+1), float64(msg.Y*4+2)
	switch msg.Action {
	case tea.MouseActionPress:
		cols, rows := m.canvasSize()
		if msg.Button == tea.MouseButtonLeft && msg.X < cols && msg.Y < rows {
			m.scene.PointerDown(x, y)
		}
	case tea.MouseActionMotion:
		m.scene.PointerMove(x, y)
	case tea.MouseActionRelease:
		if m.scene.Buffer.IsActive() {
			m.scene.PointerUp()
		}
	}
}

func (m *Model) restyle() {
	m.styles = newStyles(m.theme, tinted(m.paletteName, m.theme))
}

// Close tears the scene down. The model is unusable afterwards.
func (m Model) Close() { m.scene.Destroy() }

// View renders the field and, when enabled, the debug overlay.
func (m Model) View() string {
	if m.canvas == nil {
		return "waiting for terminal size..."
	}
	m.dots.draw(m.canvas, m.threshold)
	body := m.canvas.Render(m.styles.bands)
	if m.overlay {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.panel())
	}
	return body + "\n" + m.styles.hint.Render(hints)
}

func (m Model) panel() string {
	var s strings.Builder
	s.WriteString(m.styles.title.Render("RESTFIELD") + "\n")

	buf := m.scene.Buffer
	status := m.styles.idle
	if m.scene.Engine.IsRunning() {
		status = m.styles.running
	}
	s.WriteString(status.Render(DebugLine(m.scene.Engine.IsRunning(), buf.X(), buf.Y())) + "\n\n")

	st := m.act.last
	g := m.scene.Field.Grid()
	s.WriteString(m.styles.row("Particles", fmt.Sprintf("%d", m.scene.Field.Len())))
	s.WriteString(m.styles.row("Resting", fmt.Sprintf("%d", st.Resting)))
	s.WriteString(m.styles.row("Max disp", fmt.Sprintf("%.2f", st.MaxDisplacement)))
	s.WriteString(m.styles.row("Grid", fmt.Sprintf("%dx%d @%g", g.Cols, g.Rows, g.Cell)))
	s.WriteString(m.styles.row("Frames", fmt.Sprintf("%d", m.scene.Engine.Frames())))
	s.WriteString(m.styles.row("Sleeps", fmt.Sprintf("%d", m.scene.Stops())))
	s.WriteString(m.styles.row("Theme", m.theme.Name))
	s.WriteString(m.styles.row("Palette", m.paletteName))

	if len(m.act.moving) > 1 {
		chart := asciigraph.Plot(m.act.moving,
			asciigraph.Height(5),
			asciigraph.Width(panelWidth-16),
			asciigraph.Caption("moving"))
		s.WriteString(m.styles.graph.Render(chart) + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + m.styles.err.Render(m.err.Error()) + "\n")
	}
	return m.styles.panel.Render(s.String())
}

// Run starts the terminal program and blocks until the user quits.
func Run(opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}
	defer m.Close()

	mouse := tea.WithMouseCellMotion()
	if opts.Hover {
		mouse = tea.WithMouseAllMotion()
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), mouse).Run()
	return err
}

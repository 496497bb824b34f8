package tty

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pthm-cable/orbis/config"
	"github.com/pthm-cable/orbis/frame"
	"github.com/pthm-cable/orbis/geo"
	"github.com/pthm-cable/orbis/globe"
	"github.com/pthm-cable/orbis/scene"
)

const (
	statusLines = 2
	nudge       = 10  // degrees per arrow key
	zoomStep    = 10  // percent per +/- key
	wheelDelta  = 100 // wheel delta per scroll notch
	maxFPS      = 30
)

// frameMsg drives one globe frame.
type frameMsg time.Time

// Options configures the terminal viewer.
type Options struct {
	Catalog   *scene.Catalog
	Scene     string // initial scene ID (empty = first)
	Landmass  globe.LandmassSource
	Listeners []func(globe.Event)
}

// Model is the root Bubble Tea model of the terminal viewer.
type Model struct {
	catalog   *scene.Catalog
	sched     *frame.Scheduler
	globe     *globe.Globe
	canvas    *Canvas
	selection *scene.Selection

	interval time.Duration
	width    int
	height   int
	ready    bool
	cursor   int // index of the last point flown to with n/p
}

// New creates the model and mounts the initial scene. The globe starts
// painting once the first window size arrives.
func New(cfg *config.Config, opts Options) (Model, error) {
	if opts.Catalog == nil {
		return Model{}, fmt.Errorf("tty: no scene catalog")
	}
	initial := opts.Catalog.First()
	if opts.Scene != "" {
		c, err := opts.Catalog.Get(opts.Scene)
		if err != nil {
			return Model{}, fmt.Errorf("initial scene: %w", err)
		}
		initial = c
	}

	fps := min(max(cfg.Screen.TargetFPS, 1), maxFPS)
	m := Model{
		catalog:   opts.Catalog,
		sched:     frame.NewScheduler(),
		canvas:    NewCanvas(0, 0),
		selection: &scene.Selection{},
		interval:  time.Second / time.Duration(fps),
		cursor:    -1,
	}
	m.globe = globe.New(globe.ParamsFromConfig(cfg), m.canvas, m.sched, globe.Options{
		OnActivate:  m.selection.Activate,
		Selected:    m.selection.Selected,
		Listeners:   opts.Listeners,
		Interactive: cfg.Globe.Interactive,
		Landmass:    opts.Landmass,
	})
	m.globe.Mount(initial, globe.Viewport{})
	return m, nil
}

// Globe returns the engine instance.
func (m Model) Globe() *globe.Globe {
	return m.globe
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.frameCmd()
}

func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.canvas.Resize(msg.Width, max(msg.Height-statusLines, 0))
		w, h := m.canvas.Size()
		m.globe.SetViewport(globe.Viewport{Width: w, Height: h, DPR: 1})

	case frameMsg:
		m.sched.Run(time.Time(msg))
		return m, m.frameCmd()

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) {
	now := time.Now()
	x, y := Cell(msg.X, msg.Y)
	if msg.Y >= m.canvas.rows {
		m.globe.PointerLeave(now)
		return
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.globe.Wheel(-wheelDelta)
		return
	case tea.MouseButtonWheelDown:
		m.globe.Wheel(wheelDelta)
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.globe.PointerDown(x, y, now)
		}
	case tea.MouseActionRelease:
		m.globe.PointerUp(x, y, now)
	case tea.MouseActionMotion:
		m.globe.PointerMove(x, y, now)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.setScene(m.catalog.Next(m.globe.Configuration().ID))
		m.cursor = -1
	case "+", "=":
		m.globe.SetZoomPercent(min(m.globe.ZoomPercent()+zoomStep, 100))
	case "-":
		m.globe.SetZoomPercent(max(m.globe.ZoomPercent()-zoomStep, 0))
	case "left", "right", "up", "down":
		m.nudge(msg.String())
	case "n":
		m.cursor = m.flyToPoint(m.cursor + 1)
	case "p":
		m.cursor = m.flyToPoint(m.cursor - 1)
	case "esc":
		m.selection.Clear()
	case "s":
		m.toggle(globe.LayerStars)
	case "g":
		m.toggle(globe.LayerGraticule)
	case "l":
		m.toggle(globe.LayerLandmass)
	case "t":
		m.toggle(globe.LayerSmallLabels)
	}
	return m, nil
}

func (m Model) setScene(cfg scene.Configuration) {
	m.globe.SetConfiguration(cfg)
	m.selection.Revalidate(cfg)
}

func (m Model) nudge(dir string) {
	r := m.globe.Orientation()
	switch dir {
	case "left":
		r.Yaw -= nudge
	case "right":
		r.Yaw += nudge
	case "up":
		r.Pitch -= nudge
	case "down":
		r.Pitch += nudge
	}
	r.Yaw = geo.NormalizeDegrees(r.Yaw)
	m.globe.SetOrientation(r)
}

// flyToPoint flies to the i-th point, wrapping around, selects it and
// returns the wrapped index.
func (m Model) flyToPoint(i int) int {
	points := m.globe.Configuration().Points
	if len(points) == 0 {
		return -1
	}
	i = ((i % len(points)) + len(points)) % len(points)
	p := points[i]
	m.globe.FlyTo(p)
	m.selection.Select(p)
	return i
}

func (m Model) toggle(l globe.Layer) {
	on := !m.globe.LayerEnabled(l)
	m.globe.SetLayer(l, on)
	slog.Info("layer toggled", "layer", l.String(), "enabled", on)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fac85a"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#96a5be"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e6ebfa"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}
	return m.canvas.Render() + "\n" + m.status()
}

func (m Model) status() string {
	cfg := m.globe.Configuration()
	field := func(label, value string) string {
		return labelStyle.Render(label+" ") + valueStyle.Render(value) + "  "
	}

	line := titleStyle.Render("Orbis") + "  " +
		field("scene", cfg.Name) +
		field("mode", m.globe.Mode().String()) +
		field("zoom", fmt.Sprintf("%.0f%%", m.globe.ZoomPercent())) +
		field("state", m.globe.State().String())
	if p, ok := m.globe.Hovered(); ok {
		line += field("hover", p.Name)
	}
	if p, ok := m.selection.Selected(); ok {
		line += field("selected", p.Name)
	}

	help := helpStyle.Render("drag rotate · wheel/+/- zoom · arrows nudge · n/p fly · tab scene · s/g/l/t layers · q quit")
	return lipgloss.NewStyle().MaxWidth(max(m.width, 1)).Render(line) + "\n" +
		lipgloss.NewStyle().MaxWidth(max(m.width, 1)).Render(help)
}

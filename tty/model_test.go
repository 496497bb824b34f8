package tty

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pthm-cable/orbis/config"
	"github.com/pthm-cable/orbis/globe"
	"github.com/pthm-cable/orbis/scene"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	catalog, err := scene.LoadCatalog("")
	if err != nil {
		t.Fatal(err)
	}
	m, err := New(cfg, Options{Catalog: catalog})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(m.Globe().Unmount)
	return m
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func frames(m Model, n int) Model {
	now := time.Unix(1000, 0)
	for i := 0; i < n; i++ {
		now = now.Add(33 * time.Millisecond)
		m = send(m, frameMsg(now))
	}
	return m
}

func TestViewBeforeSize(t *testing.T) {
	m := newTestModel(t)
	if m.View() != "starting..." {
		t.Errorf("unexpected view %q", m.View())
	}
}

func TestFramesPaintGlobe(t *testing.T) {
	m := newTestModel(t)
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 42})
	m = frames(m, 2)

	if m.Globe().Projection() == nil {
		t.Fatal("expected a projection after sized frames")
	}
	view := m.View()
	if !strings.Contains(view, "Earth") || !strings.Contains(view, "planet") {
		t.Errorf("expected status line with scene and mode, got:\n%s", view)
	}
	if !strings.Contains(m.canvas.String(), "New York") {
		t.Errorf("expected the centered point's small label on the canvas")
	}
}

func TestKeys(t *testing.T) {
	m := newTestModel(t)
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 42})
	m = frames(m, 1)

	z := m.Globe().ZoomPercent()
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	if got := m.Globe().ZoomPercent(); got <= z {
		t.Errorf("expected + to zoom in from %f, got %f", z, got)
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if p, ok := m.selection.Selected(); !ok || p.Name != "New York" {
		t.Errorf("expected n to select the first point, got %q %v", p.Name, ok)
	}
	if !m.Globe().Flying() {
		t.Error("expected n to start a flight")
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if p, _ := m.selection.Selected(); p.Name != "Nairobi" {
		t.Errorf("expected p to wrap to the last point, got %q", p.Name)
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	if m.Globe().LayerEnabled(globe.LayerGraticule) {
		t.Error("expected g to hide the graticule")
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	if id := m.Globe().Configuration().ID; id != "mars" {
		t.Errorf("expected tab to switch to mars, got %q", id)
	}
	if _, ok := m.selection.Selected(); ok {
		t.Error("expected selection dropped on scene switch")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected q to quit")
	}
}

func TestArrowNudgesOrientation(t *testing.T) {
	m := newTestModel(t)
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 42})
	before := m.Globe().Orientation()
	m = send(m, tea.KeyMsg{Type: tea.KeyRight})
	after := m.Globe().Orientation()
	if d := after.Yaw - before.Yaw; d < nudge-1e-9 || d > nudge+1e-9 {
		t.Errorf("expected yaw +%d, got %f", nudge, d)
	}
}

func TestMouseClickSelects(t *testing.T) {
	m := newTestModel(t)
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 42})
	m = frames(m, 1)

	cfg := m.Globe().Configuration()
	p, _ := cfg.Find("New York")
	x, y, visible, facing := m.Globe().Locate(p)
	if !visible || !facing {
		t.Fatal("expected New York on the visible hemisphere")
	}
	col, row := int(x/CellWidth), int(y/CellHeight)

	m = send(m,
		tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone},
		tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone},
	)
	if sel, ok := m.selection.Selected(); !ok || sel.Name != "New York" {
		t.Errorf("expected click to select New York, got %q %v", sel.Name, ok)
	}
	if h, ok := m.Globe().Hovered(); !ok || h.Name != "New York" {
		t.Errorf("expected New York hovered, got %q %v", h.Name, ok)
	}
}

func TestMouseWheelZooms(t *testing.T) {
	m := newTestModel(t)
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 42})
	_, before := m.Globe().Scale()
	m = send(m, tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if _, after := m.Globe().Scale(); after <= before {
		t.Errorf("expected wheel up to raise target scale from %f, got %f", before, after)
	}
}

package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbis/scene"
)

// ControlAction is what the user clicked in the controls panel.
type ControlAction struct {
	Scene string // scene ID to switch to
	FlyTo string // point name to fly to
}

// None reports whether nothing was clicked.
func (a ControlAction) None() bool {
	return a.Scene == "" && a.FlyTo == ""
}

// ControlsData holds the content of the controls panel.
type ControlsData struct {
	Scenes      []string
	ActiveScene string
	Points      []scene.Point
	FlyTo       bool // fly-to buttons are shown only when the mode allows it
}

// Controls renders scene and fly-to buttons in the top-right corner.
type Controls struct {
	renderer *Renderer
	width    int32
	maxRows  int
	bounds   rl.Rectangle
}

// NewControls creates a controls panel.
func NewControls() *Controls {
	return &Controls{
		renderer: NewRenderer(),
		width:    180,
		maxRows:  12,
	}
}

// Layout returns the panel height for data.
func (c *Controls) Layout(data ControlsData) int32 {
	r := c.renderer
	rows := int32(len(data.Scenes))
	h := r.Theme.Padding*2 + r.Theme.LineHeight + rows*26
	if data.FlyTo && len(data.Points) > 0 {
		h += r.Theme.LineHeight + 6 + int32(min(len(data.Points), c.maxRows))*26
	}
	return h
}

// Draw renders the panel and returns the clicked action.
func (c *Controls) Draw(data ControlsData, screenW, screenH int32) ControlAction {
	r := c.renderer
	pad := r.Theme.Padding
	height := c.Layout(data)
	px, py := AnchorTopRight.Place(screenW, screenH, c.width, height, 10)
	c.bounds = rl.Rectangle{X: float32(px), Y: float32(py), Width: float32(c.width), Height: float32(height)}
	r.DrawPanel(px, py, c.width, height)

	var action ControlAction
	x := float32(px + pad)
	y := py + pad
	bw := float32(c.width - pad*2)

	y = r.DrawSectionHeader(px+pad, y, "Scenes")
	for _, id := range data.Scenes {
		label := id
		if id == data.ActiveScene {
			label = "> " + id
		}
		if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: bw, Height: 22}, label) && id != data.ActiveScene {
			action.Scene = id
		}
		y += 26
	}

	if data.FlyTo && len(data.Points) > 0 {
		y += 6
		y = r.DrawSectionHeader(px+pad, y, "Fly To")
		for i, p := range data.Points {
			if i >= c.maxRows {
				break
			}
			if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: bw, Height: 22}, p.Name) {
				action.FlyTo = p.Name
			}
			y += 26
		}
	}
	return action
}

// Bounds returns the screen area covered by the last drawn panel.
func (c *Controls) Bounds() rl.Rectangle {
	return c.bounds
}

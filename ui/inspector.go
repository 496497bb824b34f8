package ui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbis/scene"
)

// InspectorData holds all the data needed to render the inspector panel.
type InspectorData struct {
	Point    scene.Point
	Color    rl.Color
	ScreenX  float64
	ScreenY  float64
	Visible  bool // projected this frame
	Facing   bool
	Hovered  bool
	Distance float64 // great-circle degrees from the view center
}

var inspectorSections = []SectionDescriptor{
	{
		Title: "Point",
		Fields: []FieldDescriptor{
			{Label: "Name", Widget: WidgetText, TextGetter: func(d any) string {
				return d.(*InspectorData).Point.Name
			}},
			{Label: "Kind", Widget: WidgetColorSwatch, ColorGetter: func(d any) rl.Color {
				return d.(*InspectorData).Color
			}},
			{Label: "Category", Widget: WidgetText, TextGetter: func(d any) string {
				return d.(*InspectorData).Point.Category.String()
			}},
			{Label: "Lat/Lng", Widget: WidgetText, TextGetter: func(d any) string {
				p := d.(*InspectorData).Point
				return fmt.Sprintf("%.3f, %.3f", p.Lat, p.Lng)
			}},
		},
	},
	{
		Title: "View",
		Fields: []FieldDescriptor{
			{Label: "Screen", Widget: WidgetText, TextGetter: func(d any) string {
				in := d.(*InspectorData)
				if !in.Visible {
					return "off screen"
				}
				return fmt.Sprintf("%.0f, %.0f", in.ScreenX, in.ScreenY)
			}},
			{Label: "Facing", Widget: WidgetText, TextGetter: func(d any) string {
				if d.(*InspectorData).Facing {
					return "front"
				}
				return "back"
			}},
			{Label: "Center", Widget: WidgetBar, Getter: func(d any) float32 {
				return float32(1 - d.(*InspectorData).Distance/180)
			}},
			{Label: "Hovered", Widget: WidgetText, Visible: func(d any) bool {
				return d.(*InspectorData).Hovered
			}, TextGetter: func(any) string { return "yes" }},
		},
	},
	{
		Title: "Notes",
		Visible: func(d any) bool {
			return len(d.(*InspectorData).Point.Meta) > 0
		},
		Fields: []FieldDescriptor{
			{Label: "Meta", Widget: WidgetText, TextGetter: func(d any) string {
				return strings.Join(d.(*InspectorData).Point.Meta, " / ")
			}},
		},
	},
}

// Inspector renders the selected point panel.
type Inspector struct {
	renderer *Renderer
	width    int32
	bounds   rl.Rectangle
}

// NewInspector creates a new inspector panel.
func NewInspector(width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		width:    width,
	}
}

// Draw renders the inspector anchored at the bottom-right corner.
func (ins *Inspector) Draw(data InspectorData, screenW, screenH int32) {
	r := ins.renderer
	pad := r.Theme.Padding

	height := pad * 2
	for _, sd := range inspectorSections {
		height += r.SectionHeight(sd, &data)
	}
	x, y := AnchorBottomRight.Place(screenW, screenH, ins.width, height, 10)
	ins.bounds = rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(ins.width), Height: float32(height)}
	r.DrawPanel(x, y, ins.width, height)

	y += pad
	for _, sd := range inspectorSections {
		y = r.DrawSection(x+pad, y, sd, &data, ins.width-pad*2)
	}
}

// Bounds returns the screen area covered by the last drawn panel. It is
// empty after Hide.
func (ins *Inspector) Bounds() rl.Rectangle {
	return ins.bounds
}

// Hide forgets the panel area when nothing is selected.
func (ins *Inspector) Hide() {
	ins.bounds = rl.Rectangle{}
}

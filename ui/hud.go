package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbis/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title     string
	Scene     string
	Mode      string
	FPS       int32
	Zoom      float64 // percent
	Surface3D bool
	State     string
	Flying    bool

	CursorLat, CursorLng float64
	CursorOnGlobe        bool

	RemoteAddr    string // empty when the remote server is off
	RemoteClients int
}

var hudSections = []SectionDescriptor{
	{
		Fields: []FieldDescriptor{
			{Label: "Scene", Widget: WidgetText, TextGetter: func(d any) string {
				h := d.(*HUDData)
				return fmt.Sprintf("%s (%s)", h.Scene, h.Mode)
			}},
			{Label: "Render", Widget: WidgetText, TextGetter: func(d any) string {
				if d.(*HUDData).Surface3D {
					return "3D"
				}
				return "2D FALLBACK"
			}},
			{Label: "State", Widget: WidgetText, TextGetter: func(d any) string {
				h := d.(*HUDData)
				if h.Flying {
					return h.State + " (flying)"
				}
				return h.State
			}},
			{Label: "Cursor", Widget: WidgetText, TextGetter: func(d any) string {
				h := d.(*HUDData)
				if !h.CursorOnGlobe {
					return "-"
				}
				return fmt.Sprintf("%.2f, %.2f", h.CursorLat, h.CursorLng)
			}},
			{Label: "FPS", Widget: WidgetText, TextGetter: func(d any) string {
				return fmt.Sprintf("%d", d.(*HUDData).FPS)
			}},
			{Label: "Remote", Widget: WidgetText, Visible: func(d any) bool {
				return d.(*HUDData).RemoteAddr != ""
			}, TextGetter: func(d any) string {
				h := d.(*HUDData)
				return fmt.Sprintf("%s (%d clients)", h.RemoteAddr, h.RemoteClients)
			}},
		},
	},
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
	bounds   rl.Rectangle
}

// NewHUD creates a HUD anchored at the top-left corner.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        10,
		y:        10,
		width:    260,
	}
}

// Draw renders the HUD and its zoom slider. It returns the slider value and
// whether the user moved it this frame.
func (h *HUD) Draw(data HUDData) (zoom float64, changed bool) {
	r := h.renderer
	pad := r.Theme.Padding

	height := pad*2 + 24 + 30
	for _, sd := range hudSections {
		height += r.SectionHeight(sd, &data)
	}
	h.bounds = rl.Rectangle{X: float32(h.x), Y: float32(h.y), Width: float32(h.width), Height: float32(height)}
	r.DrawPanel(h.x, h.y, h.width, height)

	x := h.x + pad
	y := h.y + pad
	rl.DrawText(data.Title, x, y, 20, r.Theme.ValueColor)
	y += 24

	for _, sd := range hudSections {
		y = r.DrawSection(x, y, sd, &data, h.width-pad*2)
	}

	rl.DrawText("Zoom", x, y+4, r.Theme.FontSize, r.Theme.LabelColor)
	slider := rl.Rectangle{
		X:      float32(x + r.Theme.LabelWidth),
		Y:      float32(y),
		Width:  float32(h.width - pad*2 - r.Theme.LabelWidth - 40),
		Height: 20,
	}
	cur := float32(data.Zoom)
	next := gui.SliderBar(slider, "", "", cur, 0, 100)
	rl.DrawText(fmt.Sprintf("%.0f%%", data.Zoom), int32(slider.X+slider.Width)+6, y+4, r.Theme.FontSize, r.Theme.ValueColor)
	return float64(next), next != cur
}

// Bounds returns the screen area covered by the last drawn HUD.
func (h *HUD) Bounds() rl.Rectangle {
	return h.bounds
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, legend string) {
	rl.DrawText(legend, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders loop phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Loop Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Pass: %s  (%.0f fps)", stats.AvgPass.Round(time.Microsecond), stats.FPS), x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases() {
		pct := stats.PhasePct[phase]
		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

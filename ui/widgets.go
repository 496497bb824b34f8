package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws panels and descriptor-driven sections in one theme.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel fills a panel rectangle and outlines it.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section title and returns the next line's Y.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// fieldHeight is the vertical space one field occupies.
func (r *Renderer) fieldHeight(w WidgetType) int32 {
	switch w {
	case WidgetBar:
		return r.Theme.LineHeight + 2
	case WidgetSpacer:
		return 6
	}
	return r.Theme.LineHeight
}

// clip shortens s with a trailing "..." until it fits in width pixels.
func (r *Renderer) clip(s string, width int32) string {
	if width <= 0 || rl.MeasureText(s, r.Theme.FontSize) <= width {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		t := string(runes[:n]) + "..."
		if rl.MeasureText(t, r.Theme.FontSize) <= width {
			return t
		}
	}
	return ""
}

func (r *Renderer) label(x, y int32, text string) {
	rl.DrawText(text+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
}

// DrawField draws one field in a column width pixels wide and returns the
// next field's Y.
func (r *Renderer) DrawField(x, y int32, fd FieldDescriptor, data any, width int32) int32 {
	vx := x + r.Theme.LabelWidth
	vw := width - r.Theme.LabelWidth

	switch fd.Widget {
	case WidgetSection:
		rl.DrawText(fd.Label, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)

	case WidgetText:
		r.label(x, y, fd.Label)
		if fd.TextGetter != nil {
			rl.DrawText(r.clip(fd.TextGetter(data), vw), vx, y, r.Theme.FontSize, r.Theme.ValueColor)
		}

	case WidgetBar:
		var v float32
		if fd.Getter != nil {
			v = min(max(fd.Getter(data), 0), 1)
		}
		// Leave room for the percentage to the right of the bar.
		pct := fmt.Sprintf("%3.0f%%", v*100)
		bw := vw - rl.MeasureText(pct, r.Theme.FontSize) - 4
		r.label(x, y, fd.Label)
		rl.DrawRectangle(vx, y+2, bw, r.Theme.BarHeight, r.Theme.BarBg)
		rl.DrawRectangle(vx, y+2, int32(float32(bw)*v), r.Theme.BarHeight, r.Theme.BarFill)
		rl.DrawText(pct, vx+bw+4, y, r.Theme.FontSize, r.Theme.ValueColor)

	case WidgetColorSwatch:
		r.label(x, y, fd.Label)
		if fd.ColorGetter != nil {
			c := fd.ColorGetter(data)
			rl.DrawRectangle(vx, y+1, 12, 12, c)
			rl.DrawText(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), vx+18, y, r.Theme.FontSize, r.Theme.ValueColor)
		}
	}
	return y + r.fieldHeight(fd.Widget)
}

func shown(visible func(any) bool, data any) bool {
	return visible == nil || visible(data)
}

// DrawSection draws a titled group of fields and returns the Y below it.
func (r *Renderer) DrawSection(x, y int32, sd SectionDescriptor, data any, width int32) int32 {
	if !shown(sd.Visible, data) {
		return y
	}
	if sd.Title != "" {
		y = r.DrawSectionHeader(x, y, sd.Title)
	}
	for _, fd := range sd.Fields {
		if shown(fd.Visible, data) {
			y = r.DrawField(x, y, fd, data, width)
		}
	}
	return y + 4
}

// SectionHeight is the height DrawSection would use for the same data.
func (r *Renderer) SectionHeight(sd SectionDescriptor, data any) int32 {
	if !shown(sd.Visible, data) {
		return 0
	}
	var h int32
	if sd.Title != "" {
		h += r.Theme.LineHeight
	}
	for _, fd := range sd.Fields {
		if shown(fd.Visible, data) {
			h += r.fieldHeight(fd.Widget)
		}
	}
	return h + 4
}

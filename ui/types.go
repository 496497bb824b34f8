// Package ui draws the viewer chrome around the globe: HUD, controls,
// layer toggles and the point inspector. Panels are described by
// descriptors so their content can follow the data without layout code.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Plain text
	WidgetBar                           // Progress bar [0, 1]
	WidgetColorSwatch                   // Color preview square
	WidgetSection                       // Section header
	WidgetSpacer                        // Vertical spacing
)

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	Label       string
	Widget      WidgetType
	Visible     func(any) bool     // nil = always visible
	Getter      func(any) float32  // bar value
	TextGetter  func(any) string   // text value
	ColorGetter func(any) rl.Color // swatch color
}

// SectionDescriptor groups fields under a header.
type SectionDescriptor struct {
	Title   string
	Fields  []FieldDescriptor
	Visible func(any) bool
}

// PanelAnchor specifies where a panel is anchored on screen.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

// Place returns the top-left corner of a w×h panel anchored in a screen of
// the given size with margin m.
func (a PanelAnchor) Place(screenW, screenH, w, h, m int32) (x, y int32) {
	switch a {
	case AnchorTopRight:
		return screenW - w - m, m
	case AnchorBottomLeft:
		return m, screenH - h - m
	case AnchorBottomRight:
		return screenW - w - m, screenH - h - m
	}
	return m, m
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	Accent         rl.Color
	Warning        rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 10, G: 14, B: 28, A: 220},
		PanelBorder:    rl.Color{R: 50, G: 70, B: 100, A: 255},
		SectionHeader:  rl.Color{R: 250, G: 200, B: 90, A: 255},
		LabelColor:     rl.Color{R: 150, G: 165, B: 190, A: 255},
		ValueColor:     rl.Color{R: 230, G: 235, B: 250, A: 255},
		Accent:         rl.Color{R: 90, G: 230, B: 190, A: 255},
		Warning:        rl.Color{R: 255, G: 150, B: 90, A: 255},
		BarBg:          rl.Color{R: 30, G: 36, B: 52, A: 255},
		BarFill:        rl.Color{R: 90, G: 150, B: 210, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     70,
		BarHeight:      10,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// Package tty runs the globe in a terminal with Bubble Tea. The globe draws
// in virtual pixels; every terminal cell covers CellWidth x CellHeight of
// them, which keeps the sphere round on typical fonts.
package tty

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pthm-cable/orbis/geo"
)

// Virtual pixels per terminal cell.
const (
	CellWidth  = 8
	CellHeight = 16
)

// maxStyles bounds the style cache; faded colors produce many variants.
const maxStyles = 4096

// Canvas rasterizes the globe overlay into a grid of styled runes. It
// implements surface.Canvas.
type Canvas struct {
	cols, rows int
	glyphs     []rune
	fg         []color.RGBA
	bg         []color.RGBA
	clearColor color.RGBA

	styles map[[2]color.RGBA]lipgloss.Style
}

// NewCanvas creates a canvas of cols x rows cells.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{styles: make(map[[2]color.RGBA]lipgloss.Style)}
	c.Resize(cols, rows)
	return c
}

// Resize changes the grid size and blanks it.
func (c *Canvas) Resize(cols, rows int) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	n := c.cols * c.rows
	c.glyphs = make([]rune, n)
	c.fg = make([]color.RGBA, n)
	c.bg = make([]color.RGBA, n)
	c.Clear(c.clearColor)
}

// Size returns the canvas size in virtual pixels.
func (c *Canvas) Size() (w, h float64) {
	return float64(c.cols * CellWidth), float64(c.rows * CellHeight)
}

// Cell converts a terminal cell to the virtual pixel at its center.
func Cell(col, row int) (x, y float64) {
	return float64(col*CellWidth + CellWidth/2), float64(row*CellHeight + CellHeight/2)
}

func (c *Canvas) cell(x, y float64) (col, row int, ok bool) {
	col = int(math.Floor(x / CellWidth))
	row = int(math.Floor(y / CellHeight))
	return col, row, col >= 0 && col < c.cols && row >= 0 && row < c.rows
}

// shade premultiplies alpha against the dark background. Fully transparent
// colors draw nothing.
func shade(col color.RGBA) (color.RGBA, bool) {
	if col.A == 0 {
		return col, false
	}
	f := float64(col.A) / 255
	return color.RGBA{
		R: uint8(float64(col.R) * f),
		G: uint8(float64(col.G) * f),
		B: uint8(float64(col.B) * f),
		A: 255,
	}, true
}

func (c *Canvas) plot(col, row int, r rune, fg color.RGBA) {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return
	}
	i := row*c.cols + col
	c.glyphs[i] = r
	c.fg[i] = fg
}

func (c *Canvas) Clear(col color.RGBA) {
	c.clearColor = col
	for i := range c.glyphs {
		c.glyphs[i] = ' '
		c.fg[i] = col
		c.bg[i] = col
	}
}

func (c *Canvas) Circle(x, y, r float64, col color.RGBA) {
	fg, ok := shade(col)
	if !ok {
		return
	}
	if r*2 < CellWidth {
		cx, cy, _ := c.cell(x, y)
		glyph := '•'
		if r < 1.5 {
			glyph = '·'
		}
		c.plot(cx, cy, glyph, fg)
		return
	}
	c0, r0, _ := c.cell(x-r, y-r)
	c1, r1, _ := c.cell(x+r, y+r)
	for row := max(r0, 0); row <= min(r1, c.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, c.cols-1); col++ {
			px, py := Cell(col, row)
			if math.Hypot(px-x, py-y) <= r {
				i := row*c.cols + col
				c.bg[i] = fg
			}
		}
	}
}

func (c *Canvas) CircleLines(x, y, r float64, col color.RGBA) {
	fg, ok := shade(col)
	if !ok {
		return
	}
	if r < CellWidth {
		cx, cy, _ := c.cell(x, y)
		c.plot(cx, cy, 'o', fg)
		return
	}
	n := max(16, int(2*math.Pi*r/CellWidth*2))
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		cx, cy, _ := c.cell(x+r*math.Cos(a), y+r*math.Sin(a))
		c.plot(cx, cy, '•', fg)
	}
}

func (c *Canvas) Line(x1, y1, x2, y2 float64, col color.RGBA) {
	fg, ok := shade(col)
	if !ok {
		return
	}
	glyph := lineGlyph(x2-x1, y2-y1)
	dc := math.Abs(x2-x1) / CellWidth
	dr := math.Abs(y2-y1) / CellHeight
	steps := int(math.Ceil(math.Max(dc, dr))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		cx, cy, _ := c.cell(x1+(x2-x1)*t, y1+(y2-y1)*t)
		c.plot(cx, cy, glyph, fg)
	}
}

// lineGlyph picks a rune from the on-screen slope of a segment.
func lineGlyph(dx, dy float64) rune {
	// Compare in cell units so the slope matches what the terminal shows.
	dx /= CellWidth
	dy /= CellHeight
	switch {
	case math.Abs(dy) <= math.Abs(dx)*0.4:
		return '─'
	case math.Abs(dx) <= math.Abs(dy)*0.4:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func (c *Canvas) Polyline(pts []geo.Vec2, col color.RGBA) {
	for i := 1; i < len(pts); i++ {
		c.Line(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, col)
	}
}

func (c *Canvas) Rect(x, y, w, h float64, col color.RGBA) {
	bg, ok := shade(col)
	if !ok {
		return
	}
	c0, r0, _ := c.cell(x, y)
	c1, r1, _ := c.cell(x+w-1, y+h-1)
	for row := max(r0, 0); row <= min(r1, c.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, c.cols-1); col++ {
			i := row*c.cols + col
			c.glyphs[i] = ' '
			c.bg[i] = bg
		}
	}
}

func (c *Canvas) RectLines(x, y, w, h float64, col color.RGBA) {
	fg, ok := shade(col)
	if !ok {
		return
	}
	c0, r0, _ := c.cell(x, y)
	c1, r1, _ := c.cell(x+w-1, y+h-1)
	for col := c0 + 1; col < c1; col++ {
		c.plot(col, r0, '─', fg)
		c.plot(col, r1, '─', fg)
	}
	for row := r0 + 1; row < r1; row++ {
		c.plot(c0, row, '│', fg)
		c.plot(c1, row, '│', fg)
	}
	c.plot(c0, r0, '┌', fg)
	c.plot(c1, r0, '┐', fg)
	c.plot(c0, r1, '└', fg)
	c.plot(c1, r1, '┘', fg)
}

// Text writes s one rune per cell starting at the cell holding the vertical
// middle of the glyph box.
func (c *Canvas) Text(s string, x, y float64, size int, col color.RGBA) {
	fg, ok := shade(col)
	if !ok {
		return
	}
	cx, cy, _ := c.cell(x, y+float64(size)/2)
	for _, r := range s {
		c.plot(cx, cy, r, fg)
		cx++
	}
}

// MeasureText returns the width of s in virtual pixels. Font size does not
// change the width of a terminal cell.
func (c *Canvas) MeasureText(s string, size int) float64 {
	return float64(len([]rune(s)) * CellWidth)
}

// Glyph returns the rune at a cell.
func (c *Canvas) Glyph(col, row int) rune {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return 0
	}
	return c.glyphs[row*c.cols+col]
}

// String renders the grid without styling.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		b.WriteString(string(c.glyphs[row*c.cols : (row+1)*c.cols]))
		if row < c.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Render renders the grid with colors. Runs of cells sharing a style are
// rendered together.
func (c *Canvas) Render() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		start := row * c.cols
		end := start + c.cols
		for i := start; i < end; {
			j := i + 1
			for j < end && c.fg[j] == c.fg[i] && c.bg[j] == c.bg[i] {
				j++
			}
			b.WriteString(c.style(c.fg[i], c.bg[i]).Render(string(c.glyphs[i:j])))
			i = j
		}
		if row < c.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (c *Canvas) style(fg, bg color.RGBA) lipgloss.Style {
	key := [2]color.RGBA{fg, bg}
	if s, ok := c.styles[key]; ok {
		return s
	}
	if len(c.styles) >= maxStyles {
		clear(c.styles)
	}
	s := lipgloss.NewStyle().Foreground(hex(fg)).Background(hex(bg))
	c.styles[key] = s
	return s
}

func hex(col color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", col.R, col.G, col.B))
}

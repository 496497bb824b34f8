package globe

import (
	"image/color"
	"math"

	"github.com/pthm-cable/orbis/decor"
	"github.com/pthm-cable/orbis/scene"
	"github.com/pthm-cable/orbis/surface"
)

// Palette
var (
	colorSpace     = color.RGBA{R: 6, G: 8, B: 18, A: 255}
	colorStar      = color.RGBA{R: 220, G: 228, B: 255, A: 255}
	colorOcean     = color.RGBA{R: 14, G: 34, B: 64, A: 255}
	colorOutline   = color.RGBA{R: 90, G: 150, B: 210, A: 255}
	colorGraticule = color.RGBA{R: 60, G: 100, B: 150, A: 90}
	colorLand      = color.RGBA{R: 120, G: 200, B: 150, A: 200}
	colorAsteroid  = color.RGBA{R: 150, G: 135, B: 120, A: 255}
	colorRing      = color.RGBA{R: 255, G: 220, B: 120, A: 255}
	colorLabelBg   = color.RGBA{R: 10, G: 14, B: 28, A: 220}
	colorLabelText = color.RGBA{R: 235, G: 240, B: 255, A: 255}
	colorMetaText  = color.RGBA{R: 160, G: 175, B: 200, A: 255}
	colorSmallText = color.RGBA{R: 180, G: 190, B: 210, A: 170}
)

var categoryColors = map[scene.Category]color.RGBA{
	scene.CategoryCity:     {R: 120, G: 200, B: 255, A: 255},
	scene.CategoryCapital:  {R: 255, G: 120, B: 100, A: 255},
	scene.CategoryPort:     {R: 90, G: 230, B: 190, A: 255},
	scene.CategoryStation:  {R: 250, G: 200, B: 90, A: 255},
	scene.CategoryOutpost:  {R: 200, G: 150, B: 255, A: 255},
	scene.CategoryAsteroid: {R: 200, G: 185, B: 165, A: 255},
}

// CategoryColor returns the marker color of a category.
func CategoryColor(c scene.Category) color.RGBA {
	if col, ok := categoryColors[c]; ok {
		return col
	}
	return colorLabelText
}

// draw repaints the overlay back to front. t is seconds since mount.
func (g *Globe) draw(t float64) {
	g.canvas.Clear(colorSpace)
	if g.LayerEnabled(LayerStars) {
		g.drawStars(t)
	}
	g.surf.Present()

	if g.mode.DrawsSilhouette() && !g.surf.Available() {
		g.drawSilhouette()
	}
	if g.mode.Scatters() {
		g.drawBelt()
	}

	sel, hasSel := g.selected()
	g.drawMarkers(sel, hasSel, t)
	if g.LayerEnabled(LayerSmallLabels) {
		g.drawSmallLabels(sel, hasSel)
	}
	g.drawLabels(sel, hasSel)
}

func (g *Globe) drawStars(t float64) {
	g.field.Stars(g.viewport.Width, g.viewport.Height, g.orbit.Yaw, t, func(s decor.StarSprite) {
		g.canvas.Circle(s.X, s.Y, s.Size, surface.Fade(colorStar, s.Brightness))
	})
}

// drawSilhouette paints the 2D fallback sphere: disc, graticule, landmass
// outlines and rim.
func (g *Globe) drawSilhouette() {
	cx, cy, r := g.proj.CenterX, g.proj.CenterY, g.proj.Scale
	g.canvas.Circle(cx, cy, r, colorOcean)

	if g.LayerEnabled(LayerGraticule) {
		for _, line := range g.graticule {
			for _, run := range g.proj.ProjectLine(line) {
				g.canvas.Polyline(run, colorGraticule)
			}
		}
	}
	if g.land != nil && g.LayerEnabled(LayerLandmass) {
		for _, ring := range g.land.Rings {
			for _, run := range g.proj.ProjectLine(ring) {
				g.canvas.Polyline(run, colorLand)
			}
		}
	}

	g.canvas.CircleLines(cx, cy, r, colorOutline)
}

// drawBelt paints the asteroid scatter, dimming back-facing bodies.
func (g *Globe) drawBelt() {
	g.field.Asteroids(func(b decor.Body) {
		x, y, visible, facing := g.locate(b.Point)
		if !visible {
			return
		}
		c := colorAsteroid
		shade := 0.55 + 0.45*b.Tone
		c.R = uint8(float64(c.R) * shade)
		c.G = uint8(float64(c.G) * shade)
		c.B = uint8(float64(c.B) * shade)
		if !facing {
			c = surface.Fade(c, g.params.BackfaceAlpha)
		}
		g.canvas.Circle(x, y, b.Size, c)
	})
}

func (g *Globe) alpha(facing bool) float64 {
	if facing {
		return 1
	}
	return g.params.BackfaceAlpha
}

// drawMarkers paints dots for every visible point plus rings on the hovered
// and selected ones. The selected ring pulses and gets corner brackets.
func (g *Globe) drawMarkers(sel scene.Point, hasSel bool, t float64) {
	m := g.params.Markers
	for _, p := range g.config.Points {
		x, y, visible, facing := g.locate(p)
		if !visible {
			continue
		}
		g.canvas.Circle(x, y, m.DotRadius, surface.Fade(CategoryColor(p.Category), g.alpha(facing)))
	}

	if g.hovering && !(hasSel && sel.Name == g.hover.Name) {
		if x, y, visible, facing := g.locate(g.hover); visible {
			g.canvas.CircleLines(x, y, m.RingRadius, surface.Fade(colorRing, g.alpha(facing)*0.7))
		}
	}

	if !hasSel {
		return
	}
	x, y, visible, facing := g.locate(sel)
	if !visible {
		return
	}
	a := g.alpha(facing)
	pulse := m.RingRadius + m.PulseAmplitude*math.Sin(t*m.PulseSpeed)
	g.canvas.CircleLines(x, y, pulse, surface.Fade(colorRing, a))
	g.canvas.CircleLines(x, y, m.RingRadius+m.PulseAmplitude*2, surface.Fade(colorRing, a*0.35))
	g.drawBrackets(x, y, m.RingRadius+m.PulseAmplitude+4, m.BracketSize, surface.Fade(colorRing, a))
}

// drawBrackets draws four corner brackets around (x, y).
func (g *Globe) drawBrackets(x, y, half, arm float64, c color.RGBA) {
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			cx, cy := x+sx*half, y+sy*half
			g.canvas.Line(cx, cy, cx-sx*arm, cy, c)
			g.canvas.Line(cx, cy, cx, cy-sy*arm, c)
		}
	}
}

// drawSmallLabels names every visible point that has no large label.
func (g *Globe) drawSmallLabels(sel scene.Point, hasSel bool) {
	l := g.params.Labels
	for _, p := range g.config.Points {
		if (hasSel && p.Name == sel.Name) || (g.hovering && p.Name == g.hover.Name) {
			continue
		}
		x, y, visible, facing := g.locate(p)
		if !visible {
			continue
		}
		g.canvas.Text(p.Name, x+6, y-float64(l.SmallFontSize)-2, l.SmallFontSize, surface.Fade(colorSmallText, g.alpha(facing)))
	}
}

// drawLabels places and paints the large labels of the hovered and selected
// points. They are drawn last so they sit above everything.
func (g *Globe) drawLabels(sel scene.Point, hasSel bool) {
	clear(g.activeLabels)

	var pts []scene.Point
	if g.hovering {
		pts = append(pts, g.hover)
	}
	if hasSel && !(g.hovering && sel.Name == g.hover.Name) {
		pts = append(pts, sel)
	}

	l := g.params.Labels
	for _, p := range pts {
		x, y, visible, _ := g.locate(p)
		if !visible {
			continue
		}

		w := g.canvas.MeasureText(p.Name, l.FontSize)
		for _, meta := range p.Meta {
			w = math.Max(w, g.canvas.MeasureText(meta, l.MetaFontSize))
		}
		w += 2 * l.Padding
		h := float64(l.FontSize) + float64(len(p.Meta)*(l.MetaFontSize+2)) + 2*l.Padding

		a := g.layout.Place(p.Name, x, y, w, h)
		g.activeLabels[p.Name] = true

		accent := CategoryColor(p.Category)
		g.canvas.Line(x, y, a.X, a.Y, surface.Fade(accent, 0.8))
		g.canvas.Rect(a.X, a.Y, a.W, a.H, colorLabelBg)
		g.canvas.RectLines(a.X, a.Y, a.W, a.H, accent)

		ty := a.Y + l.Padding
		g.canvas.Text(p.Name, a.X+l.Padding, ty, l.FontSize, colorLabelText)
		ty += float64(l.FontSize) + 2
		for _, meta := range p.Meta {
			g.canvas.Text(meta, a.X+l.Padding, ty, l.MetaFontSize, colorMetaText)
			ty += float64(l.MetaFontSize) + 2
		}
	}
}

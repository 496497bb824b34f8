package globe

import (
	"log/slog"

	"github.com/pthm-cable/orbis/decor"
	"github.com/pthm-cable/orbis/scene"
)

// SetConfiguration replaces the displayed configuration. It is a full reset:
// flight, decorative field, label anchors, orientation, hover and landmass
// all start over, and the sphere mesh is rebuilt for planets.
func (g *Globe) SetConfiguration(cfg scene.Configuration) {
	g.cancelFlight()
	if g.hovering {
		g.setHover(scene.Point{}, false)
	}
	g.pressed = false

	g.config = cfg
	g.hasScene = true
	g.mode = scene.ModeFor(cfg.ID, g.params.BeltIDs)

	g.field = decor.Generate(g.params.Decor, g.mode)
	g.layout.Reset()
	clear(g.activeLabels)

	yaw, pitch := g.defaultOrientation()
	g.orbit.Reset(yaw, pitch, g.params.InitialScale, g.mode.IdleDrift(g.params.IdleYaw))

	g.generation++
	g.land = nil

	g.surf.Unload()
	if g.mode.UsesSurface() && g.surf.Available() {
		if err := g.surf.Load(cfg.Textures); err != nil {
			slog.Warn("sphere texture unavailable, using tint", "scene", cfg.ID, "error", err)
		}
	} else {
		g.surf.Clear()
	}

	if g.mode.DrawsSilhouette() && cfg.Landmass != "" && g.landmass != nil {
		g.landmass.Request(g.generation, cfg.Landmass)
	}

	slog.Info("scene configured",
		"scene", cfg.ID,
		"mode", g.mode.String(),
		"points", len(cfg.Points),
		"asteroids", len(g.field.AsteroidPoints()),
	)
	g.emit(Event{Kind: EventScene})
}

// defaultOrientation centers planets on their first point and puts belts at
// a fixed oblique angle.
func (g *Globe) defaultOrientation() (yaw, pitch float64) {
	if g.mode == scene.Belt {
		return g.params.BeltYaw, g.params.BeltPitch
	}
	if len(g.config.Points) > 0 {
		p := g.config.Points[0]
		return -p.Lng, -p.Lat
	}
	return g.params.DefaultYaw, g.params.DefaultPitch
}

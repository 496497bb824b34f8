package viewer

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/golang/geo/s2"

	"github.com/pthm-cable/orbis/globe"
	"github.com/pthm-cable/orbis/scene"
	"github.com/pthm-cable/orbis/telemetry"
	"github.com/pthm-cable/orbis/ui"
)

// legend is the key help line drawn under the HUD.
func (v *Viewer) legend() string {
	return strings.Join([]string{
		"[Drag] Rotate",
		"[Wheel/+/-] Zoom",
		"[Tab] Next scene",
		v.overlays.Legend(ui.CategoryGlobe, "Layers"),
		v.overlays.Legend(ui.CategoryPanel, "Panels"),
		"[B] Bookmark",
		"[F3] Perf",
	}, "  ")
}

// Draw renders the frame: the globe first, then the UI panels.
func (v *Viewer) Draw() {
	rl.BeginDrawing()

	v.perf.StartPhase(telemetry.PhaseFrame)
	v.sched.Run(v.now)

	v.perf.StartPhase(telemetry.PhaseHUD)
	v.drawUI()

	rl.EndDrawing()

	v.endPass()
}

// drawUI renders every enabled panel and applies what the user clicked.
func (v *Viewer) drawUI() {
	sw, sh := int32(v.screenWidth), int32(v.screenHeight)

	if v.overlays.IsEnabled(ui.OverlayHUD) {
		zoom, changed := v.hud.Draw(v.hudData())
		if changed {
			v.SetZoomPercent(zoom)
		}
		v.hud.DrawControls(sh, v.legend())
	}

	if v.overlays.IsEnabled(ui.OverlayControls) {
		action := v.controls.Draw(v.controlsData(), sw, sh)
		v.applyControl(action)
	}

	if p, ok := v.selection.Selected(); ok && v.overlays.IsEnabled(ui.OverlayInspector) {
		v.inspector.Draw(v.inspectorData(p), sw, sh)
	} else {
		v.inspector.Hide()
	}

	if v.showPerf {
		b := v.hud.Bounds()
		v.perfPanel.SetPosition(int32(b.X), int32(b.Y+b.Height)+10)
		v.perfPanel.Draw(v.perf.Stats())
	}
}

func (v *Viewer) hudData() ui.HUDData {
	cfg := v.globe.Configuration()
	d := ui.HUDData{
		Title:     "Orbis",
		Scene:     cfg.Name,
		Mode:      v.globe.Mode().String(),
		FPS:       rl.GetFPS(),
		Zoom:      v.globe.ZoomPercent(),
		Surface3D: v.globe.SurfaceAvailable(),
		State:     v.globe.State().String(),
		Flying:    v.globe.Flying(),
	}
	if ll, ok := v.cursorLatLng(); ok {
		d.CursorLat, d.CursorLng, d.CursorOnGlobe = ll.Lat, ll.Lng, true
	}
	if v.remote != nil {
		d.RemoteAddr = v.remote.Addr()
		d.RemoteClients = v.remote.Clients()
	}
	return d
}

func (v *Viewer) controlsData() ui.ControlsData {
	cfg := v.globe.Configuration()
	return ui.ControlsData{
		Scenes:      v.catalog.IDs(),
		ActiveScene: cfg.ID,
		Points:      cfg.Points,
		FlyTo:       v.globe.Mode().AllowsFlyTo(),
	}
}

// applyControl runs a controls panel click.
func (v *Viewer) applyControl(a ui.ControlAction) {
	if a.None() {
		return
	}
	if a.Scene != "" {
		if err := v.SwitchScene(a.Scene); err != nil {
			return
		}
	}
	if a.FlyTo != "" && v.FlyToName(a.FlyTo) {
		v.Select(a.FlyTo)
	}
}

func (v *Viewer) inspectorData(p scene.Point) ui.InspectorData {
	x, y, visible, facing := v.globe.Locate(p)
	d := ui.InspectorData{
		Point:   p,
		Color:   globe.CategoryColor(p.Category),
		ScreenX: x,
		ScreenY: y,
		Visible: visible,
		Facing:  facing,
	}
	if h, ok := v.globe.Hovered(); ok && h.Name == p.Name {
		d.Hovered = true
	}
	if proj := v.globe.Projection(); proj != nil {
		c := proj.ViewCenter()
		d.Distance = s2.LatLngFromDegrees(p.Lat, p.Lng).Distance(s2.LatLngFromDegrees(c.Lat, c.Lng)).Degrees()
	}
	return d
}

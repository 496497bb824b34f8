package viewer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbis/geo"
	"github.com/pthm-cable/orbis/ui"
)

// Keyboard zoom step in percent.
const zoomStep = 10

// handleInput processes keyboard and pointer input.
func (v *Viewer) handleInput() {
	// Window resize propagation
	v.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		v.setScene(v.catalog.Next(v.globe.Configuration().ID))
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		v.showPerf = !v.showPerf
	}
	if rl.IsKeyPressed(rl.KeyB) {
		v.manualBookmark()
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		v.selection.Clear()
	}

	// Keyboard zoom with +/- (= and - keys)
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		v.SetZoomPercent(min(v.globe.ZoomPercent()+zoomStep, 100))
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		v.SetZoomPercent(max(v.globe.ZoomPercent()-zoomStep, 0))
	}

	// Home key resets the current scene
	if rl.IsKeyPressed(rl.KeyHome) {
		v.setScene(v.globe.Configuration())
	}

	v.handleOverlayKeys()

	s := ui.SamplePointer()
	v.pointer.Feed(v.globe, s, ui.Inside(s.X, s.Y, v.panelBounds()...), v.now)
}

// handleOverlayKeys toggles overlays and pushes layer state to the globe.
func (v *Viewer) handleOverlayKeys() {
	key := rl.GetKeyPressed()
	for key != 0 {
		if id, on, ok := v.overlays.HandleKeyPress(key); ok {
			v.overlays.Apply(v.globe)
			slog.Info("overlay toggled", "overlay", string(id), "enabled", on)
		}
		key = rl.GetKeyPressed()
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (v *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == v.screenWidth && h == v.screenHeight {
		return
	}
	v.screenWidth = w
	v.screenHeight = h
	v.globe.SetViewport(v.viewport())
}

// panelBounds returns the screen areas covered by visible panels.
func (v *Viewer) panelBounds() []rl.Rectangle {
	var rects []rl.Rectangle
	if v.overlays.IsEnabled(ui.OverlayHUD) {
		rects = append(rects, v.hud.Bounds())
	}
	if v.overlays.IsEnabled(ui.OverlayControls) {
		rects = append(rects, v.controls.Bounds())
	}
	if v.overlays.IsEnabled(ui.OverlayInspector) {
		rects = append(rects, v.inspector.Bounds())
	}
	return rects
}

// cursorLatLng inverts the mouse position through the last frame's projection.
func (v *Viewer) cursorLatLng() (geo.LatLng, bool) {
	proj := v.globe.Projection()
	if proj == nil {
		return geo.LatLng{}, false
	}
	pos := rl.GetMousePosition()
	return proj.Invert(float64(pos.X), float64(pos.Y))
}

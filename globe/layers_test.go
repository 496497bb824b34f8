package globe

import "testing"

func TestLayersToggle(t *testing.T) {
	h := newHarness(t, Options{})
	h.globe.Mount(planet(newYork, origin), testViewport)
	h.frames(1)

	circles := h.canvas.Count("circle")
	texts := len(h.canvas.Texts())
	if h.canvas.Count("polyline") == 0 {
		t.Fatal("expected graticule with all layers on")
	}

	h.globe.SetLayer(LayerGraticule, false)
	h.globe.SetLayer(LayerStars, false)
	h.globe.SetLayer(LayerSmallLabels, false)
	h.frames(1)

	if n := h.canvas.Count("polyline"); n != 0 {
		t.Errorf("expected no graticule, got %d polylines", n)
	}
	if n := h.canvas.Count("circle"); n != circles-testParams(t).Decor.StarCount {
		t.Errorf("expected star circles removed: %d before, %d after", circles, n)
	}
	if n := len(h.canvas.Texts()); n >= texts {
		t.Errorf("expected fewer texts without small labels: %d before, %d after", texts, n)
	}
	if h.globe.LayerEnabled(LayerStars) || !h.globe.LayerEnabled(LayerLandmass) {
		t.Error("unexpected layer state")
	}

	h.globe.SetLayer(LayerGraticule, true)
	h.frames(1)
	if h.canvas.Count("polyline") == 0 {
		t.Error("expected graticule back")
	}
}

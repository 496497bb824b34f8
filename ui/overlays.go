package ui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbis/globe"
)

// OverlayID names a toggleable part of the view.
type OverlayID string

const (
	OverlayStars       OverlayID = "stars"
	OverlayGraticule   OverlayID = "graticule"
	OverlayLandmass    OverlayID = "landmass"
	OverlaySmallLabels OverlayID = "small_labels"
	OverlayHUD         OverlayID = "hud"
	OverlayControls    OverlayID = "controls"
	OverlayInspector   OverlayID = "inspector"
)

// Overlay categories.
const (
	CategoryGlobe = "globe" // drawn by the engine, switched through globe.Layer
	CategoryPanel = "panel" // drawn by the viewer around the globe
)

// OverlayDescriptor describes one toggleable overlay.
type OverlayDescriptor struct {
	ID          OverlayID
	Name        string
	Description string
	Key         int32 // raylib key that toggles it (0 = none)
	KeyLabel    string
	Category    string
	Layer       globe.Layer // 0 for panels
	Exclusive   []OverlayID // switched off when this one is switched on
}

var defaultOverlays = []OverlayDescriptor{
	{OverlayStars, "Stars", "Twinkling background star field", rl.KeyS, "S", CategoryGlobe, globe.LayerStars, nil},
	{OverlayGraticule, "Graticule", "30 degree latitude/longitude grid", rl.KeyG, "G", CategoryGlobe, globe.LayerGraticule, nil},
	{OverlayLandmass, "Landmass", "Coastline outlines on the 2D silhouette", rl.KeyL, "L", CategoryGlobe, globe.LayerLandmass, nil},
	{OverlaySmallLabels, "Names", "Always-on names next to idle points", rl.KeyN, "N", CategoryGlobe, globe.LayerSmallLabels, nil},
	{OverlayHUD, "HUD", "Scene, zoom and frame rate readout", rl.KeyH, "H", CategoryPanel, 0, nil},
	{OverlayControls, "Controls", "Scene and fly-to buttons", rl.KeyC, "C", CategoryPanel, 0, nil},
	{OverlayInspector, "Inspector", "Details of the selected point", rl.KeyI, "I", CategoryPanel, 0, nil},
}

// LayerSwitch is the part of the globe the registry drives.
type LayerSwitch interface {
	SetLayer(l globe.Layer, on bool)
}

type overlayState struct {
	desc OverlayDescriptor
	on   bool
}

// OverlayRegistry tracks which overlays are on, in registration order.
type OverlayRegistry struct {
	overlays []overlayState
	index    map[OverlayID]int
}

// NewOverlayRegistry registers the default overlays. Globe overlays start in
// the state given by layers; panels start on.
func NewOverlayRegistry(layers globe.Layer) *OverlayRegistry {
	r := &OverlayRegistry{index: make(map[OverlayID]int)}
	for _, d := range defaultOverlays {
		r.Register(d)
		if d.Layer != 0 {
			r.overlays[r.index[d.ID]].on = layers&d.Layer == d.Layer
		} else {
			r.overlays[r.index[d.ID]].on = true
		}
	}
	return r
}

// Register adds d switched off, or replaces the descriptor with the same ID.
func (r *OverlayRegistry) Register(d OverlayDescriptor) {
	if i, ok := r.index[d.ID]; ok {
		r.overlays[i] = overlayState{desc: d}
		return
	}
	r.index[d.ID] = len(r.overlays)
	r.overlays = append(r.overlays, overlayState{desc: d})
}

// Toggle flips an overlay and returns its new state. Unknown IDs report false.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	i, ok := r.index[id]
	if !ok {
		return false
	}
	r.SetEnabled(id, !r.overlays[i].on)
	return r.overlays[i].on
}

// SetEnabled switches an overlay, turning off the ones it excludes.
func (r *OverlayRegistry) SetEnabled(id OverlayID, on bool) {
	i, ok := r.index[id]
	if !ok {
		return
	}
	r.overlays[i].on = on
	if !on {
		return
	}
	for _, other := range r.overlays[i].desc.Exclusive {
		if j, ok := r.index[other]; ok {
			r.overlays[j].on = false
		}
	}
}

// IsEnabled reports whether an overlay is on.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	i, ok := r.index[id]
	return ok && r.overlays[i].on
}

// ByCategory lists the descriptors of one category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var out []OverlayDescriptor
	for _, o := range r.overlays {
		if o.desc.Category == category {
			out = append(out, o.desc)
		}
	}
	return out
}

// HandleKeyPress toggles the overlay bound to key, if any.
func (r *OverlayRegistry) HandleKeyPress(key int32) (id OverlayID, on, ok bool) {
	for _, o := range r.overlays {
		if o.desc.Key != 0 && o.desc.Key == key {
			return o.desc.ID, r.Toggle(o.desc.ID), true
		}
	}
	return "", false, false
}

// Apply pushes the state of every globe overlay to g.
func (r *OverlayRegistry) Apply(g LayerSwitch) {
	for _, o := range r.overlays {
		if o.desc.Layer != 0 {
			g.SetLayer(o.desc.Layer, o.on)
		}
	}
}

// Legend lists the key bindings of one category, e.g. "[S/G/L/N] Layers".
func (r *OverlayRegistry) Legend(category, title string) string {
	var keys []string
	for _, o := range r.overlays {
		if o.desc.Category == category && o.desc.KeyLabel != "" {
			keys = append(keys, o.desc.KeyLabel)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	return "[" + strings.Join(keys, "/") + "] " + title
}

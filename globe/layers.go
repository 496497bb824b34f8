package globe

// Layer is an optional part of the overlay that can be switched off.
type Layer uint8

const (
	LayerStars Layer = 1 << iota
	LayerGraticule
	LayerLandmass
	LayerSmallLabels
)

// AllLayers enables everything.
const AllLayers = LayerStars | LayerGraticule | LayerLandmass | LayerSmallLabels

func (l Layer) String() string {
	switch l {
	case LayerStars:
		return "stars"
	case LayerGraticule:
		return "graticule"
	case LayerLandmass:
		return "landmass"
	case LayerSmallLabels:
		return "small_labels"
	}
	return "layers"
}

// SetLayer turns l on or off from the next frame.
func (g *Globe) SetLayer(l Layer, on bool) {
	if on {
		g.layers |= l
	} else {
		g.layers &^= l
	}
}

// LayerEnabled reports whether every bit of l is on.
func (g *Globe) LayerEnabled(l Layer) bool {
	return g.layers&l == l
}

package globe

import (
	"log/slog"

	"github.com/pthm-cable/orbis/geo"
)

// drainLandmass applies every finished landmass load without blocking.
func (g *Globe) drainLandmass() {
	if g.landmass == nil {
		return
	}
	for {
		select {
		case res := <-g.landmass.Results():
			g.applyLandmass(res)
		default:
			return
		}
	}
}

// applyLandmass keeps res if it belongs to the current configuration.
func (g *Globe) applyLandmass(res geo.LandmassResult) bool {
	if res.Generation != g.generation {
		slog.Debug("discarding stale landmass", "generation", res.Generation, "current", g.generation)
		return false
	}
	if res.Err != nil {
		slog.Warn("landmass unavailable", "source", res.Source, "error", res.Err)
		return false
	}
	g.land = res.Landmass
	slog.Info("landmass loaded", "source", res.Source, "rings", len(res.Landmass.Rings))
	g.emit(Event{Kind: EventLandmass})
	return true
}

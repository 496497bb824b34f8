// Package decor generates the decorative starfield and, in belt mode, the
// asteroid scatter. Both are regenerated on every mode change.
package decor

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/orbis/components"
	"github.com/pthm-cable/orbis/config"
	"github.com/pthm-cable/orbis/scene"
)

// Params controls field generation.
type Params struct {
	Seed          int64
	StarCount     int
	StarParallax  float64 // pixels per degree of yaw at depth 1
	TwinkleSpeed  float64
	AsteroidCount int
	LatitudeBand  float64 // asteroids stay within +/- this latitude
}

// ParamsFromConfig builds field parameters from the loaded configuration.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		Seed:          cfg.Decor.Seed,
		StarCount:     cfg.Decor.StarCount,
		StarParallax:  cfg.Decor.StarParallax,
		TwinkleSpeed:  cfg.Decor.TwinkleSpeed,
		AsteroidCount: cfg.Decor.AsteroidCount,
		LatitudeBand:  cfg.Belt.LatitudeBand,
	}
}

// StarSprite is a star resolved to screen space for one frame.
type StarSprite struct {
	X, Y       float64
	Size       float64
	Brightness float64
}

// Body is an asteroid on the sphere.
type Body struct {
	Point scene.Point
	Size  float64
	Tone  float64
}

// Field holds the generated entities.
type Field struct {
	params Params
	noise  opensimplex.Noise

	world *ecs.World

	starMapper *ecs.Map2[components.ScreenPos, components.Star]
	starFilter *ecs.Filter2[components.ScreenPos, components.Star]

	asteroidMapper *ecs.Map2[components.GeoPos, components.Asteroid]
	asteroidFilter *ecs.Filter2[components.GeoPos, components.Asteroid]

	// points is the asteroid hit-test list in generation order.
	points []scene.Point
}

// Generate builds a new field for the given mode.
func Generate(p Params, mode scene.Mode) *Field {
	world := ecs.NewWorld()

	f := &Field{
		params:         p,
		noise:          opensimplex.NewNormalized(p.Seed),
		world:          world,
		starMapper:     ecs.NewMap2[components.ScreenPos, components.Star](world),
		starFilter:     ecs.NewFilter2[components.ScreenPos, components.Star](world),
		asteroidMapper: ecs.NewMap2[components.GeoPos, components.Asteroid](world),
		asteroidFilter: ecs.NewFilter2[components.GeoPos, components.Asteroid](world),
	}

	rng := rand.New(rand.NewSource(p.Seed))
	f.spawnStars(rng)
	if mode.Scatters() {
		f.spawnAsteroids(rng)
	}
	return f
}

func (f *Field) spawnStars(rng *rand.Rand) {
	for i := 0; i < f.params.StarCount; i++ {
		pos := components.ScreenPos{X: rng.Float32(), Y: rng.Float32()}
		depth := rng.Float32()
		star := components.Star{
			Size:       0.5 + depth*1.5,
			Brightness: 0.3 + rng.Float32()*0.7,
			Depth:      depth,
			Phase:      rng.Float32() * 100,
		}
		f.starMapper.NewEntity(&pos, &star)
	}
}

// spawnAsteroids scatters bodies around the equator. Longitudes are
// rejection-sampled against 1D noise so the belt has denser clumps.
func (f *Field) spawnAsteroids(rng *rand.Rand) {
	band := f.params.LatitudeBand
	for i := 0; i < f.params.AsteroidCount; i++ {
		var lng float64
		for attempt := 0; attempt < 8; attempt++ {
			lng = rng.Float64()*360 - 180
			density := f.noise.Eval2(lng/40, 0)
			if rng.Float64() < 0.35+0.65*density {
				break
			}
		}
		lat := rng.NormFloat64() * band / 2
		lat = math.Max(-band, math.Min(band, lat))

		pos := components.GeoPos{Lat: lat, Lng: lng}
		ast := components.Asteroid{
			Index: i + 1,
			Size:  0.8 + rng.Float32()*2.2,
			Tone:  rng.Float32(),
		}
		f.asteroidMapper.NewEntity(&pos, &ast)

		f.points = append(f.points, scene.Point{
			Name:     AsteroidName(ast.Index),
			Lat:      lat,
			Lng:      lng,
			Category: scene.CategoryAsteroid,
		})
	}
}

// AsteroidName returns the hit-test name of the i-th asteroid.
func AsteroidName(i int) string {
	return fmt.Sprintf("AST-%03d", i)
}

// Stars resolves every star for a frame. Stars drift horizontally with yaw,
// nearer stars faster, and twinkle over time t in seconds.
func (f *Field) Stars(width, height, yaw, t float64, fn func(StarSprite)) {
	if width <= 0 || height <= 0 {
		return
	}
	query := f.starFilter.Query()
	for query.Next() {
		pos, star := query.Get()

		x := float64(pos.X)*width + yaw*f.params.StarParallax*float64(star.Depth)
		x = math.Mod(x, width)
		if x < 0 {
			x += width
		}
		twinkle := f.noise.Eval2(float64(star.Phase), t*f.params.TwinkleSpeed)

		fn(StarSprite{
			X:          x,
			Y:          float64(pos.Y) * height,
			Size:       float64(star.Size),
			Brightness: float64(star.Brightness) * (0.6 + 0.4*twinkle),
		})
	}
}

// Asteroids visits every asteroid body.
func (f *Field) Asteroids(fn func(Body)) {
	query := f.asteroidFilter.Query()
	for query.Next() {
		pos, ast := query.Get()
		fn(Body{
			Point: scene.Point{
				Name:     AsteroidName(ast.Index),
				Lat:      pos.Lat,
				Lng:      pos.Lng,
				Category: scene.CategoryAsteroid,
			},
			Size: float64(ast.Size),
			Tone: float64(ast.Tone),
		})
	}
}

// AsteroidPoints returns the asteroids as low-priority hit-test points.
func (f *Field) AsteroidPoints() []scene.Point {
	return f.points
}

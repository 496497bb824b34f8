package scene

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

//go:embed scenes.yaml
var defaultScenesYAML []byte

// ErrUnknownScene is returned when a scene ID is not in the catalog.
var ErrUnknownScene = errors.New("scene: unknown scene")

// Catalog is an ordered set of configurations.
type Catalog struct {
	scenes []Configuration
}

type catalogFile struct {
	Scenes []sceneSpec `yaml:"scenes"`
}

type sceneSpec struct {
	ID        string      `yaml:"id"`
	Name      string      `yaml:"name"`
	Textures  []string    `yaml:"textures"`
	Landmass  string      `yaml:"landmass"`
	PointsCSV string      `yaml:"points_csv"`
	Points    []pointSpec `yaml:"points"`
}

type pointSpec struct {
	Name     string   `yaml:"name"`
	Lat      float64  `yaml:"lat"`
	Lng      float64  `yaml:"lng"`
	Category string   `yaml:"category"`
	Meta     []string `yaml:"meta"`
}

// pointRecord is one row of a points CSV file. Meta lines are separated by "|".
type pointRecord struct {
	Name     string  `csv:"name"`
	Lat      float64 `csv:"lat"`
	Lng      float64 `csv:"lng"`
	Category string  `csv:"category"`
	Meta     string  `csv:"meta"`
}

// LoadCatalog loads a catalog from a YAML file, or the embedded catalog if
// path is empty. Relative points_csv paths resolve against the file's
// directory.
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultScenesYAML
	dir := "."
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading scene catalog: %w", err)
		}
		dir = filepath.Dir(path)
	}
	return ParseCatalog(data, dir)
}

// ParseCatalog parses catalog YAML.
func ParseCatalog(data []byte, dir string) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing scene catalog: %w", err)
	}
	if len(file.Scenes) == 0 {
		return nil, errors.New("scene catalog is empty")
	}

	c := &Catalog{}
	seen := make(map[string]bool)
	for _, entry := range file.Scenes {
		if entry.ID == "" {
			return nil, errors.New("scene without id")
		}
		if seen[entry.ID] {
			return nil, fmt.Errorf("duplicate scene id %q", entry.ID)
		}
		seen[entry.ID] = true

		cfg, err := entry.build(dir)
		if err != nil {
			return nil, fmt.Errorf("scene %q: %w", entry.ID, err)
		}
		c.scenes = append(c.scenes, cfg)
	}
	return c, nil
}

func (s sceneSpec) build(dir string) (Configuration, error) {
	cfg := Configuration{
		ID:       s.ID,
		Name:     s.Name,
		Textures: s.Textures,
		Landmass: s.Landmass,
	}
	if cfg.Name == "" {
		cfg.Name = s.ID
	}

	for _, p := range s.Points {
		cat, err := ParseCategory(p.Category)
		if err != nil {
			return Configuration{}, fmt.Errorf("point %q: %w", p.Name, err)
		}
		cfg.Points = append(cfg.Points, Point{Name: p.Name, Lat: p.Lat, Lng: p.Lng, Category: cat, Meta: p.Meta})
	}

	if s.PointsCSV != "" {
		path := s.PointsCSV
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return Configuration{}, fmt.Errorf("reading points csv: %w", err)
		}
		pts, err := ParsePointsCSV(data)
		if err != nil {
			return Configuration{}, err
		}
		cfg.Points = append(cfg.Points, pts...)
	}

	names := make(map[string]bool, len(cfg.Points))
	for _, p := range cfg.Points {
		if p.Name == "" {
			return Configuration{}, errors.New("point without name")
		}
		if names[p.Name] {
			return Configuration{}, fmt.Errorf("duplicate point name %q", p.Name)
		}
		names[p.Name] = true
	}
	return cfg, nil
}

// ParsePointsCSV reads points from CSV with a name,lat,lng,category,meta header.
func ParsePointsCSV(data []byte) ([]Point, error) {
	var records []pointRecord
	if err := gocsv.Unmarshal(bytes.NewReader(data), &records); err != nil {
		return nil, fmt.Errorf("parsing points csv: %w", err)
	}

	pts := make([]Point, 0, len(records))
	for _, r := range records {
		cat, err := ParseCategory(r.Category)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", r.Name, err)
		}
		var meta []string
		if r.Meta != "" {
			meta = strings.Split(r.Meta, "|")
		}
		pts = append(pts, Point{Name: r.Name, Lat: r.Lat, Lng: r.Lng, Category: cat, Meta: meta})
	}
	return pts, nil
}

// Get returns the configuration with the given ID.
func (c *Catalog) Get(id string) (Configuration, error) {
	for _, s := range c.scenes {
		if s.ID == id {
			return s, nil
		}
	}
	return Configuration{}, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// First returns the first configuration in catalog order.
func (c *Catalog) First() Configuration {
	return c.scenes[0]
}

// IDs returns the scene IDs in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.scenes))
	for i, s := range c.scenes {
		ids[i] = s.ID
	}
	return ids
}

// Next returns the scene after id, wrapping around.
func (c *Catalog) Next(id string) Configuration {
	for i, s := range c.scenes {
		if s.ID == id {
			return c.scenes[(i+1)%len(c.scenes)]
		}
	}
	return c.scenes[0]
}

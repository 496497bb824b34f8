package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SnapshotVersion is bumped whenever a field changes meaning.
const SnapshotVersion = 2

// Snapshot records the view at a bookmark for offline inspection. The viewer
// never reads snapshots back; each session starts from configuration.
type Snapshot struct {
	Version int    `yaml:"version"`
	Frame   uint64 `yaml:"frame"`

	Scene     string `yaml:"scene"`
	Mode      string `yaml:"mode"`
	Surface3D bool   `yaml:"surface_3d"`

	Yaw    float64 `yaml:"yaw"`
	Pitch  float64 `yaml:"pitch"`
	Zoom   float64 `yaml:"zoom"` // percent
	Flying bool    `yaml:"flying"`

	Selected string `yaml:"selected,omitempty"`
	Hovered  string `yaml:"hovered,omitempty"`

	Bookmark *Bookmark `yaml:"bookmark,omitempty"`
}

// snapshotName is view_<frame>[_<bookmark type>].yaml.
func snapshotName(s *Snapshot) string {
	if s.Bookmark == nil {
		return fmt.Sprintf("view_%d.yaml", s.Frame)
	}
	return fmt.Sprintf("view_%d_%s.yaml", s.Frame, s.Bookmark.Type)
}

// SaveSnapshot writes s into dir, creating it if needed, and returns the file path.
func SaveSnapshot(s *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	path := filepath.Join(dir, snapshotName(s))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot decodes a snapshot file. Used by tooling and tests.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	s := &Snapshot{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", filepath.Base(path), err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot %s: version %d, want %d", filepath.Base(path), s.Version, SnapshotVersion)
	}
	return s, nil
}

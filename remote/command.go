// Package remote exposes the viewer over a websocket: clients send commands
// that are applied on the frame thread and receive every globe event.
package remote

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/orbis/globe"
)

// Command operations.
const (
	OpFlyTo  = "fly_to"
	OpZoom   = "zoom"
	OpSelect = "select"
	OpScene  = "scene"
)

var (
	ErrUnknownOp    = errors.New("remote: unknown op")
	ErrMissingField = errors.New("remote: missing field")
	ErrRejected     = errors.New("remote: command rejected")
)

// Command is one client request.
type Command struct {
	Op      string  `json:"op"`
	Name    string  `json:"name,omitempty"`    // fly_to, select
	Percent float64 `json:"percent,omitempty"` // zoom
	ID      string  `json:"id,omitempty"`      // scene
}

// Validate checks that the fields the op needs are present.
func (c Command) Validate() error {
	switch c.Op {
	case OpFlyTo, OpSelect:
		if c.Name == "" {
			return fmt.Errorf("%w: %s needs name", ErrMissingField, c.Op)
		}
	case OpZoom:
		if c.Percent < 0 || c.Percent > 100 {
			return fmt.Errorf("remote: zoom percent %g outside [0, 100]", c.Percent)
		}
	case OpScene:
		if c.ID == "" {
			return fmt.Errorf("%w: scene needs id", ErrMissingField)
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownOp, c.Op)
	}
	return nil
}

// Target is what commands act on.
type Target interface {
	FlyToName(name string) bool
	SetZoomPercent(p float64)
	Select(name string) bool
	SwitchScene(id string) error
}

// Apply runs cmd against t. It must be called on the frame thread.
func Apply(cmd Command, t Target) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	switch cmd.Op {
	case OpFlyTo:
		if !t.FlyToName(cmd.Name) {
			return fmt.Errorf("%w: cannot fly to %q", ErrRejected, cmd.Name)
		}
	case OpZoom:
		t.SetZoomPercent(cmd.Percent)
	case OpSelect:
		if !t.Select(cmd.Name) {
			return fmt.Errorf("%w: no point %q", ErrRejected, cmd.Name)
		}
	case OpScene:
		if err := t.SwitchScene(cmd.ID); err != nil {
			return fmt.Errorf("%w: %w", ErrRejected, err)
		}
	}
	return nil
}

// Message is what the server pushes to clients.
type Message struct {
	Type  string     `json:"type"` // "event", "ack" or "error"
	Op    string     `json:"op,omitempty"`
	Error string     `json:"error,omitempty"`
	Event *EventJSON `json:"event,omitempty"`
}

// EventJSON is the wire form of a globe event.
type EventJSON struct {
	Kind     string  `json:"kind"`
	Scene    string  `json:"scene"`
	Mode     string  `json:"mode"`
	Point    string  `json:"point,omitempty"`
	Hovering bool    `json:"hovering,omitempty"`
	Yaw      float64 `json:"yaw"`
	Pitch    float64 `json:"pitch"`
	Zoom     float64 `json:"zoom,omitempty"`
}

// NewEventJSON converts ev for the wire.
func NewEventJSON(ev globe.Event) *EventJSON {
	return &EventJSON{
		Kind:     ev.Kind.String(),
		Scene:    ev.Scene,
		Mode:     ev.Mode.String(),
		Point:    ev.Point.Name,
		Hovering: ev.Hovering,
		Yaw:      ev.Rotation.Yaw,
		Pitch:    ev.Rotation.Pitch,
		Zoom:     ev.Zoom,
	}
}

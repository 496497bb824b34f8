// Package camera owns the globe orientation, zoom and inertia state.
package camera

import (
	"math"
	"time"

	"github.com/pthm-cable/orbis/config"
	"github.com/pthm-cable/orbis/geo"
)

// State is the orbit's interaction state.
type State int

const (
	Idle      State = iota // Inertia applies every frame
	Dragging               // Orientation follows the pointer
	Animating              // A flight drives the orientation
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Animating:
		return "animating"
	}
	return "unknown"
}

// Params holds the orbit tunables.
type Params struct {
	MinScale, MaxScale float64

	DragSensitivity  float64 // degrees per pixel
	WheelSensitivity float64 // scale units per wheel delta unit
	PitchDecay       float64 // per frame
	YawDecay         float64 // per frame, toward the idle baseline
	ZoomEase         float64 // fraction of remaining distance per frame

	FramePeriod   time.Duration // nominal frame used to convert throw speed
	MaxThrow      float64       // degrees per frame
	ReleaseWindow time.Duration // longer pointer rest throws nothing
}

// ParamsFromConfig builds orbit parameters from the loaded configuration.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		MinScale:         cfg.Globe.MinScale,
		MaxScale:         cfg.Globe.MaxScale,
		DragSensitivity:  cfg.Inertia.DragSensitivity,
		WheelSensitivity: cfg.Inertia.WheelSensitivity,
		PitchDecay:       cfg.Inertia.PitchDecay,
		YawDecay:         cfg.Inertia.YawDecay,
		ZoomEase:         cfg.Inertia.ZoomEase,
		FramePeriod:      time.Duration(cfg.Inertia.FramePeriodMS * float64(time.Millisecond)),
		MaxThrow:         cfg.Inertia.MaxThrow,
		ReleaseWindow:    time.Duration(cfg.Inertia.ReleaseWindowMS * float64(time.Millisecond)),
	}
}

// Orbit is the orientation, zoom and velocity of the view.
// It has a single owner; nothing in it is safe for concurrent use.
type Orbit struct {
	Yaw, Pitch, Roll float64 // degrees

	// Scale eases toward TargetScale every Step.
	Scale, TargetScale float64

	// Velocity in degrees per frame.
	VelYaw, VelPitch float64

	// IdleYaw is the resting yaw velocity inertia decays toward.
	IdleYaw float64

	params Params
	state  State
	drag   dragState
}

// dragState is the snapshot taken at pointer-down plus the last movement.
type dragState struct {
	startX, startY       float64
	startYaw, startPitch float64

	lastX, lastY   float64
	lastDX, lastDY float64
	lastMove       time.Time
	lastElapsed    time.Duration
}

// New creates an orbit at the given orientation and scale.
func New(p Params, yaw, pitch, scale, idleYaw float64) *Orbit {
	o := &Orbit{params: p}
	o.Reset(yaw, pitch, scale, idleYaw)
	return o
}

// Reset puts the orbit back into Idle at the given orientation and scale.
func (o *Orbit) Reset(yaw, pitch, scale, idleYaw float64) {
	o.Yaw = yaw
	o.Pitch = clampPitch(pitch)
	o.Roll = 0
	o.Scale = clamp(scale, o.params.MinScale, o.params.MaxScale)
	o.TargetScale = o.Scale
	o.IdleYaw = idleYaw
	o.VelYaw = idleYaw
	o.VelPitch = 0
	o.state = Idle
	o.drag = dragState{}
}

// State returns the current interaction state.
func (o *Orbit) State() State {
	return o.state
}

// Params returns the orbit tunables.
func (o *Orbit) Params() Params {
	return o.params
}

// Rotation returns the current orientation.
func (o *Orbit) Rotation() geo.Rotation {
	return geo.Rotation{Yaw: o.Yaw, Pitch: o.Pitch, Roll: o.Roll}
}

// SetRotation sets the orientation directly.
func (o *Orbit) SetRotation(r geo.Rotation) {
	o.Yaw = r.Yaw
	o.Pitch = clampPitch(r.Pitch)
	o.Roll = r.Roll
}

// BeginDrag snapshots the orientation and pointer position.
func (o *Orbit) BeginDrag(x, y float64, now time.Time) {
	o.state = Dragging
	o.VelYaw, o.VelPitch = 0, 0
	o.drag = dragState{
		startX:     x,
		startY:     y,
		startYaw:   o.Yaw,
		startPitch: o.Pitch,
		lastX:      x,
		lastY:      y,
		lastMove:   now,
	}
}

// DragTo sets the orientation from the cumulative pointer offset since
// BeginDrag, so the result depends only on the current pointer position.
func (o *Orbit) DragTo(x, y float64, now time.Time) {
	if o.state != Dragging {
		return
	}
	d := &o.drag
	sens := o.params.DragSensitivity
	o.Yaw = d.startYaw + (x-d.startX)*sens
	o.Pitch = clampPitch(d.startPitch - (y-d.startY)*sens)

	d.lastDX = x - d.lastX
	d.lastDY = y - d.lastY
	d.lastElapsed = now.Sub(d.lastMove)
	d.lastX, d.lastY = x, y
	d.lastMove = now
}

// DragTravel returns the pointer distance from the drag start in pixels.
func (o *Orbit) DragTravel() float64 {
	return math.Hypot(o.drag.lastX-o.drag.startX, o.drag.lastY-o.drag.startY)
}

// EndDrag leaves Dragging and seeds velocity from the last pointer movement.
func (o *Orbit) EndDrag(now time.Time) {
	if o.state != Dragging {
		return
	}
	o.state = Idle
	o.VelYaw, o.VelPitch = 0, 0

	d := o.drag
	if d.lastDX == 0 && d.lastDY == 0 {
		return
	}
	if o.params.ReleaseWindow > 0 && now.Sub(d.lastMove) > o.params.ReleaseWindow {
		return
	}

	frames := 1.0
	if o.params.FramePeriod > 0 && d.lastElapsed > 0 {
		frames = float64(d.lastElapsed) / float64(o.params.FramePeriod)
	}
	sens := o.params.DragSensitivity
	o.VelYaw = clampAbs(d.lastDX*sens/frames, o.params.MaxThrow)
	o.VelPitch = clampAbs(-d.lastDY*sens/frames, o.params.MaxThrow)
}

// BeginFlight suspends inertia while a flight drives the orientation.
func (o *Orbit) BeginFlight() {
	o.state = Animating
	o.VelYaw, o.VelPitch = 0, 0
}

// EndFlight returns to Idle with the velocity at the idle baseline.
func (o *Orbit) EndFlight() {
	if o.state != Animating {
		return
	}
	o.state = Idle
	o.VelYaw = o.IdleYaw
	o.VelPitch = 0
}

// Wheel moves the target scale by a wheel delta. Positive deltaY zooms out.
func (o *Orbit) Wheel(deltaY float64) {
	o.TargetScale = clamp(o.TargetScale-deltaY*o.params.WheelSensitivity, o.params.MinScale, o.params.MaxScale)
}

// SetZoomPercent maps 0-100 linearly onto the scale bounds.
func (o *Orbit) SetZoomPercent(p float64) {
	p = clamp(p, 0, 100)
	o.TargetScale = o.params.MinScale + p/100*(o.params.MaxScale-o.params.MinScale)
}

// ZoomPercent returns the target scale as a percentage of the scale bounds.
func (o *Orbit) ZoomPercent() float64 {
	span := o.params.MaxScale - o.params.MinScale
	if span <= 0 {
		return 0
	}
	return (o.TargetScale - o.params.MinScale) / span * 100
}

// Step advances one frame: inertia when idle, zoom easing always.
func (o *Orbit) Step() {
	if o.state == Idle {
		o.Yaw = geo.NormalizeDegrees(o.Yaw + o.VelYaw)
		o.Pitch = o.Pitch + o.VelPitch
		if o.Pitch > 90 || o.Pitch < -90 {
			o.Pitch = clampPitch(o.Pitch)
			o.VelPitch = 0
		}
		o.VelPitch *= o.params.PitchDecay
		o.VelYaw = o.IdleYaw + (o.VelYaw-o.IdleYaw)*o.params.YawDecay
	}

	o.Scale += (o.TargetScale - o.Scale) * o.params.ZoomEase
	o.Scale = clamp(o.Scale, o.params.MinScale, o.params.MaxScale)
}

func clampPitch(p float64) float64 {
	return clamp(p, -90, 90)
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

func clampAbs(x, limit float64) float64 {
	if limit <= 0 {
		return x
	}
	return clamp(x, -limit, limit)
}

// Package controller drives the camera once per tick: read the live
// transform, fold in mouse and keyboard input, write it back. A controller
// moves Uninitialized -> Tracking on its first successful read and drops into
// terminal Faulted on any failed access against the target; re-attaching is
// the caller's loop, not the controller's.
package controller

import (
	"fmt"
	"math"

	"github.com/Moonlight-Companies/gologger/logger"

	"freecam/camera"
	"freecam/coloransi"
	"freecam/input"
)

type State int

const (
	StateUninitialized State = iota
	StateTracking
	StateFaulted
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateTracking:
		return "tracking"
	case StateFaulted:
		return "faulted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// CameraMemory is the live transform access a Controller drives.
type CameraMemory interface {
	ReadMatrix() (camera.Matrix, error)
	WriteMatrix(camera.Matrix) error
}

// PositionMemory is the reduced access the position-only fallback drives.
type PositionMemory interface {
	ReadPosition() (camera.Position, error)
	WritePosition(camera.Position) error
}

// Config bounds the movement speed and mouse response.
type Config struct {
	MoveSpeed float32
	MinSpeed  float32
	MaxSpeed  float32
	SpeedStep float32

	// RadiansPerCount converts sensitivity-scaled mouse counts into radians
	// of yaw/pitch per tick.
	RadiansPerCount float32
}

func DefaultConfig() Config {
	return Config{
		MoveSpeed:       5.0,
		MinSpeed:        0.1,
		MaxSpeed:        100.0,
		SpeedStep:       0.5,
		RadiansPerCount: 0.002,
	}
}

const (
	// Mouse deltas smaller than this are sensor noise, not intent.
	mouseDeadZone = 0.01

	// Pitch stops just short of the poles so the view never flips.
	maxPitch = 0.99 * math.Pi / 2
)

// Controller is the full free-camera state machine. Orientation is held as
// authoritative yaw/pitch angles and the matrix rotation is reconstructed
// from them on every change, so mouse look never accumulates drift.
type Controller struct {
	cfg   Config
	src   input.Source
	state State
	err   error

	yaw          float32
	pitch        float32
	lastPosition camera.Position

	log *logger.Logger
}

func New(src input.Source, cfg Config) *Controller {
	return &Controller{
		cfg: cfg,
		src: src,
		log: logger.NewLogger(coloransi.Color(coloransi.White, coloransi.ColorPurple, "camera")),
	}
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Speed() float32 {
	return c.cfg.MoveSpeed
}

func (c *Controller) LastPosition() camera.Position {
	return c.lastPosition
}

// Update runs one tick and reports whether the transform was written back.
// Nothing is written on a tick with no input, and a failed read or write
// faults the controller permanently.
func (c *Controller) Update(mem CameraMemory) (bool, error) {
	if c.state == StateFaulted {
		return false, fmt.Errorf("controller faulted: %w", c.err)
	}

	c.cfg.applySpeedDelta(c.src.SpeedDelta())

	m, err := mem.ReadMatrix()
	if err != nil {
		return false, c.fault(fmt.Errorf("read camera matrix: %w", err))
	}

	if c.state == StateUninitialized {
		c.lastPosition = m.Position()
		c.yaw, c.pitch = m.Orientation()
		c.state = StateTracking
		c.log.Debugln("tracking from", fmt.Sprintf("%+v yaw=%.3f pitch=%.3f", c.lastPosition, c.yaw, c.pitch))
	}

	moved := false

	if dx, dy := c.src.MouseDelta(); outsideDeadZone(dx) || outsideDeadZone(dy) {
		c.yaw += dx * c.cfg.RadiansPerCount
		c.pitch += dy * c.cfg.RadiansPerCount
		if c.pitch > maxPitch {
			c.pitch = maxPitch
		} else if c.pitch < -maxPitch {
			c.pitch = -maxPitch
		}
		m.Reconstruct(c.yaw, c.pitch)
		moved = true
	}

	if mv := c.src.Movement(); mv.Any() {
		m.Translate(mv.Vector(c.cfg.MoveSpeed))
		moved = true
	}

	if !moved {
		return false, nil
	}

	if err := mem.WriteMatrix(m); err != nil {
		return false, c.fault(fmt.Errorf("write camera matrix: %w", err))
	}
	c.lastPosition = m.Position()
	return true, nil
}

func (c *Controller) fault(err error) error {
	c.state = StateFaulted
	c.err = err
	c.log.Warn("faulted: ", err)
	return err
}

func outsideDeadZone(v float32) bool {
	return v > mouseDeadZone || v < -mouseDeadZone
}

func (cfg *Config) applySpeedDelta(delta int) {
	switch {
	case delta > 0:
		cfg.MoveSpeed += cfg.SpeedStep
		if cfg.MoveSpeed > cfg.MaxSpeed {
			cfg.MoveSpeed = cfg.MaxSpeed
		}
	case delta < 0:
		cfg.MoveSpeed -= cfg.SpeedStep
		if cfg.MoveSpeed < cfg.MinSpeed {
			cfg.MoveSpeed = cfg.MinSpeed
		}
	}
}

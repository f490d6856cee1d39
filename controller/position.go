package controller

import (
	"fmt"

	"github.com/Moonlight-Companies/gologger/logger"

	"freecam/camera"
	"freecam/coloransi"
	"freecam/input"
)

// DefaultPositionConfig moves faster and in coarser speed steps than the full
// controller; with no orientation the camera covers ground in world axes.
func DefaultPositionConfig() Config {
	return Config{
		MoveSpeed: 10.0,
		MinSpeed:  0.1,
		MaxSpeed:  100.0,
		SpeedStep: 1.0,
	}
}

// PositionController is the fallback for targets where matrix access fails
// but the position triplet still resolves. Movement keys translate directly
// along world axes; there is no orientation state.
type PositionController struct {
	cfg   Config
	src   input.Source
	state State
	err   error

	lastPosition camera.Position

	log *logger.Logger
}

func NewPosition(src input.Source, cfg Config) *PositionController {
	return &PositionController{
		cfg: cfg,
		src: src,
		log: logger.NewLogger(coloransi.Color(coloransi.White, coloransi.ColorTeal, "camera-basic")),
	}
}

func (c *PositionController) State() State {
	return c.state
}

func (c *PositionController) Speed() float32 {
	return c.cfg.MoveSpeed
}

func (c *PositionController) LastPosition() camera.Position {
	return c.lastPosition
}

// Update runs one tick against position-only memory.
func (c *PositionController) Update(mem PositionMemory) (bool, error) {
	if c.state == StateFaulted {
		return false, fmt.Errorf("controller faulted: %w", c.err)
	}

	c.cfg.applySpeedDelta(c.src.SpeedDelta())

	pos, err := mem.ReadPosition()
	if err != nil {
		return false, c.fault(fmt.Errorf("read camera position: %w", err))
	}

	if c.state == StateUninitialized {
		c.lastPosition = pos
		c.state = StateTracking
		c.log.Debugln("tracking from", fmt.Sprintf("%+v", pos))
	}

	mv := c.src.Movement()
	if !mv.Any() {
		return false, nil
	}

	speed := c.cfg.MoveSpeed
	if mv.Forward {
		pos.Z += speed
	}
	if mv.Backward {
		pos.Z -= speed
	}
	if mv.Left {
		pos.X -= speed
	}
	if mv.Right {
		pos.X += speed
	}
	if mv.Up {
		pos.Y += speed
	}
	if mv.Down {
		pos.Y -= speed
	}

	if err := mem.WritePosition(pos); err != nil {
		return false, c.fault(fmt.Errorf("write camera position: %w", err))
	}
	c.lastPosition = pos
	return true, nil
}

func (c *PositionController) fault(err error) error {
	c.state = StateFaulted
	c.err = err
	c.log.Warn("faulted: ", err)
	return err
}

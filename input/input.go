// Package input turns raw key and mouse state into the per-tick signals the
// camera controllers consume. Controllers only see the Source interface, so
// the polling backend stays swappable and the control logic testable.
package input

// Movement holds the held state of the six movement keys for one tick.
type Movement struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Up       bool
	Down     bool
}

// Any reports whether any movement key is held.
func (m Movement) Any() bool {
	return m.Forward || m.Backward || m.Left || m.Right || m.Up || m.Down
}

// Vector maps the held keys to a camera-local movement vector scaled by
// speed. Left is positive X and right negative: the game's stored basis runs
// that way, as does its third row for forward.
func (m Movement) Vector(speed float32) (dx, dy, dz float32) {
	if m.Forward {
		dz += speed
	}
	if m.Backward {
		dz -= speed
	}
	if m.Left {
		dx += speed
	}
	if m.Right {
		dx -= speed
	}
	if m.Up {
		dy += speed
	}
	if m.Down {
		dy -= speed
	}
	return dx, dy, dz
}

// Source produces one tick's worth of input signals.
type Source interface {
	// Movement returns the currently held movement keys.
	Movement() Movement

	// SpeedDelta returns +1 to speed up, -1 to slow down, 0 otherwise.
	SpeedDelta() int

	// MouseDelta returns the sensitivity-scaled cursor delta since the last
	// sample, or zeros when mouse look is off.
	MouseDelta() (dx, dy float32)
}

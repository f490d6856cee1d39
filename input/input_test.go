package input

import "testing"

func TestMovementAny(t *testing.T) {
	if (Movement{}).Any() {
		t.Fatal("empty movement reports Any")
	}
	if !(Movement{Down: true}).Any() {
		t.Fatal("held key not reported by Any")
	}
}

func TestMovementVector(t *testing.T) {
	tests := []struct {
		name       string
		m          Movement
		dx, dy, dz float32
	}{
		{"forward", Movement{Forward: true}, 0, 0, 2},
		{"backward", Movement{Backward: true}, 0, 0, -2},
		{"left is positive x", Movement{Left: true}, 2, 0, 0},
		{"right is negative x", Movement{Right: true}, -2, 0, 0},
		{"up", Movement{Up: true}, 0, 2, 0},
		{"down", Movement{Down: true}, 0, -2, 0},
		{"opposites cancel", Movement{Forward: true, Backward: true}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dx, dy, dz := tt.m.Vector(2)
			if dx != tt.dx || dy != tt.dy || dz != tt.dz {
				t.Fatalf("Vector(2) = (%v, %v, %v), want (%v, %v, %v)", dx, dy, dz, tt.dx, tt.dy, tt.dz)
			}
		})
	}
}

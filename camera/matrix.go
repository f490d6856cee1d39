// Package camera models the game's camera transform: a row-major 4x4 matrix
// whose rows 0/1/2 hold the right/up/backward basis vectors and whose row 3
// holds the position. The stored third row encodes "backward", so the view
// forward direction is its negation.
package camera

import "math"

// Position is a 3-component world-space vector.
type Position struct {
	X float32
	Y float32
	Z float32
}

// Matrix is a row-major 4x4 camera transform as stored by the game.
type Matrix [16]float32

// Identity returns the identity transform.
func Identity() Matrix {
	var m Matrix
	m[0] = 1
	m[5] = 1
	m[10] = 1
	m[15] = 1
	return m
}

// Position returns the translation row (elements 12..14).
func (m *Matrix) Position() Position {
	return Position{X: m[12], Y: m[13], Z: m[14]}
}

// SetPosition writes the translation row without touching rotation.
func (m *Matrix) SetPosition(pos Position) {
	m[12] = pos.X
	m[13] = pos.Y
	m[14] = pos.Z
}

// Forward returns the view direction: the negated third basis row.
func (m *Matrix) Forward() Position {
	return Position{X: -m[8], Y: -m[9], Z: -m[10]}
}

// ApplyPitch incrementally rotates the stored basis by angle radians around
// the local X axis, rotating the (y,z) components of each basis row. Position
// and the homogeneous row are untouched. Repeated incremental rotation can
// accumulate orthonormality drift; Reconstruct is the drift-free path.
func (m *Matrix) ApplyPitch(angle float32) {
	cosA := cos(angle)
	sinA := sin(angle)

	old := *m

	m[1] = old[1]*cosA - old[2]*sinA
	m[2] = old[1]*sinA + old[2]*cosA

	m[5] = old[5]*cosA - old[6]*sinA
	m[6] = old[5]*sinA + old[6]*cosA

	m[9] = old[9]*cosA - old[10]*sinA
	m[10] = old[9]*sinA + old[10]*cosA
}

// ApplyYaw incrementally rotates the stored basis by angle radians around the
// local Y axis, rotating the (x,z) components of each basis row.
func (m *Matrix) ApplyYaw(angle float32) {
	cosA := cos(angle)
	sinA := sin(angle)

	old := *m

	m[0] = old[0]*cosA + old[2]*sinA
	m[2] = -old[0]*sinA + old[2]*cosA

	m[4] = old[4]*cosA + old[6]*sinA
	m[6] = -old[4]*sinA + old[6]*cosA

	m[8] = old[8]*cosA + old[10]*sinA
	m[10] = -old[8]*sinA + old[10]*cosA
}

// Translate moves the position along the current basis rows (camera-local
// movement): position += dx*right + dy*up + dz*row2. The raw third row is
// used here, consistent with how the basis is stored.
func (m *Matrix) Translate(dx, dy, dz float32) {
	m[12] += dx*m[0] + dy*m[4] + dz*m[8]
	m[13] += dx*m[1] + dy*m[5] + dz*m[9]
	m[14] += dx*m[2] + dy*m[6] + dz*m[10]
}

// Mul returns the row-major product a*b.
func Mul(a, b Matrix) Matrix {
	var out Matrix
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				out[i*4+j] += a[i*4+k] * b[k*4+j]
			}
		}
	}
	return out
}

// Reconstruct rebuilds the three basis rows from absolute yaw and pitch,
// leaving position and the homogeneous row untouched. The third row stores
// the negated forward vector, matching the game's convention.
func (m *Matrix) Reconstruct(yaw, pitch float32) {
	cosYaw := cos(yaw)
	sinYaw := sin(yaw)
	cosPitch := cos(pitch)
	sinPitch := sin(pitch)

	forwardX := cosPitch * cosYaw
	forwardY := sinPitch
	forwardZ := cosPitch * sinYaw

	// right = cross(world up, forward), up = cross(forward, right)
	m[0] = -sinYaw
	m[1] = 0
	m[2] = cosYaw

	m[4] = -sinPitch * cosYaw
	m[5] = cosPitch
	m[6] = -sinPitch * sinYaw

	m[8] = -forwardX
	m[9] = -forwardY
	m[10] = -forwardZ
}

// Orientation derives the absolute yaw and pitch encoded by the transform's
// forward vector, the seed values for drift-free reconstruction.
func (m *Matrix) Orientation() (yaw, pitch float32) {
	f := m.Forward()
	yaw = float32(math.Atan2(float64(f.Z), float64(f.X)))
	pitch = float32(math.Asin(float64(-f.Y)))
	return yaw, pitch
}

func cos(v float32) float32 {
	return float32(math.Cos(float64(v)))
}

func sin(v float32) float32 {
	return float32(math.Sin(float64(v)))
}

package rig

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"freecam/camera"
	"freecam/chain"
	"freecam/process"
	"freecam/profile"
)

const testBase = process.Address(0x400000)

// fakeMemory is a sparse byte map standing in for the target address space.
// Reads touching unmapped bytes fail like a real cross-process read would.
type fakeMemory struct {
	data map[process.Address]byte
}

func newFakeMemory() *fakeMemory {
	return &fakeMemory{data: make(map[process.Address]byte)}
}

func (f *fakeMemory) ReadMemory(addr process.Address, size process.Size) ([]byte, error) {
	out := make([]byte, size)
	for i := range out {
		b, ok := f.data[addr+process.Address(i)]
		if !ok {
			return nil, &process.MemoryError{Op: "read", Addr: addr, Err: errors.New("unmapped")}
		}
		out[i] = b
	}
	return out, nil
}

func (f *fakeMemory) WriteMemory(addr process.Address, data []byte) error {
	for i, b := range data {
		f.data[addr+process.Address(i)] = b
	}
	return nil
}

func (f *fakeMemory) putU32(addr process.Address, v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	f.WriteMemory(addr, buf[:])
}

func (f *fakeMemory) putF32(addr process.Address, v float32) {
	f.putU32(addr, math.Float32bits(v))
}

// plantCamera lays out the Skate3 pointer chain and a camera structure whose
// matrix holds the given transform. Returns the matrix address.
func plantCamera(f *fakeMemory, prof profile.Profile, m camera.Matrix) process.Address {
	const structBase = process.Address(0x540000)

	hops := []process.Address{0x500000, 0x510000, 0x520000, 0x530000, structBase}

	current := testBase + process.Address(prof.CameraBase)
	for i, off := range prof.CameraChain {
		f.putU32(current, uint32(hops[i]))
		current = hops[i] + process.Address(off)
	}

	matrixAddr := current + process.Address(prof.Matrix)
	for i, v := range m {
		f.putF32(matrixAddr+process.Address(i*4), v)
	}
	return matrixAddr
}

func testMatrix() camera.Matrix {
	m := camera.Identity()
	m.SetPosition(camera.Position{X: 100.5, Y: -20.25, Z: 3000})
	return m
}

func TestReadMatrix(t *testing.T) {
	mem := newFakeMemory()
	prof := profile.Skate3()
	want := testMatrix()
	plantCamera(mem, prof, want)

	r := New(mem, prof, testBase)
	got, err := r.ReadMatrix()
	if err != nil {
		t.Fatalf("ReadMatrix: %v", err)
	}
	if got != want {
		t.Fatalf("matrix = %v, want %v", got, want)
	}
}

func TestPositionOverlaysMatrixTranslation(t *testing.T) {
	// The position terminals address matrix elements 12..14 directly
	// (0x324 - 0x2F4 = 48 bytes = 12 floats), so both views must agree.
	mem := newFakeMemory()
	prof := profile.Skate3()
	plantCamera(mem, prof, testMatrix())

	r := New(mem, prof, testBase)
	pos, err := r.ReadPosition()
	if err != nil {
		t.Fatalf("ReadPosition: %v", err)
	}
	if want := (camera.Position{X: 100.5, Y: -20.25, Z: 3000}); pos != want {
		t.Fatalf("position = %+v, want %+v", pos, want)
	}
}

func TestWritePositionRoundTrip(t *testing.T) {
	mem := newFakeMemory()
	prof := profile.Skate3()
	plantCamera(mem, prof, testMatrix())

	r := New(mem, prof, testBase)
	want := camera.Position{X: 1, Y: 2, Z: 3}
	if err := r.WritePosition(want); err != nil {
		t.Fatalf("WritePosition: %v", err)
	}

	m, err := r.ReadMatrix()
	if err != nil {
		t.Fatalf("ReadMatrix: %v", err)
	}
	if m.Position() != want {
		t.Fatalf("matrix position = %+v after WritePosition, want %+v", m.Position(), want)
	}
}

func TestWriteMatrixRoundTrip(t *testing.T) {
	mem := newFakeMemory()
	prof := profile.Skate3()
	plantCamera(mem, prof, testMatrix())

	r := New(mem, prof, testBase)
	want := camera.Identity()
	want.Reconstruct(0.5, 0.25)
	want.SetPosition(camera.Position{X: 7, Y: 8, Z: 9})

	if err := r.WriteMatrix(want); err != nil {
		t.Fatalf("WriteMatrix: %v", err)
	}
	got, err := r.ReadMatrix()
	if err != nil {
		t.Fatalf("ReadMatrix: %v", err)
	}
	if got != want {
		t.Fatalf("matrix = %v, want %v", got, want)
	}
}

func TestCameraAddresses(t *testing.T) {
	mem := newFakeMemory()
	prof := profile.Skate3()
	matrixAddr := plantCamera(mem, prof, testMatrix())

	r := New(mem, prof, testBase)
	x, y, z, err := r.CameraAddresses()
	if err != nil {
		t.Fatalf("CameraAddresses: %v", err)
	}

	wantX := matrixAddr + 48 // element 12
	if x != wantX || y != wantX+4 || z != wantX+8 {
		t.Fatalf("addresses = %s %s %s, want %s..", x, y, z, wantX)
	}
}

func TestReadMatrixBrokenChain(t *testing.T) {
	mem := newFakeMemory()
	prof := profile.Skate3()
	plantCamera(mem, prof, testMatrix())

	// Null out the third hop.
	mem.putU32(0x510008, 0)

	r := New(mem, prof, testBase)
	_, err := r.ReadMatrix()
	var npe *chain.NullPointerError
	if !errors.As(err, &npe) {
		t.Fatalf("err = %v, want NullPointerError", err)
	}
	if npe.Step != 2 {
		t.Fatalf("step = %d, want 2", npe.Step)
	}
}

func TestPatchSiteSignatureMatch(t *testing.T) {
	mem := newFakeMemory()
	prof := profile.Skate3()

	want := testBase + process.Address(prof.TextOffset) + process.Address(prof.PatchOffset)
	mem.WriteMemory(want, prof.PatchSignature)

	r := New(mem, prof, testBase)
	if got := r.PatchSite(); got != want {
		t.Fatalf("PatchSite() = %s, want %s", got, want)
	}
}

func TestPatchSiteFallback(t *testing.T) {
	mem := newFakeMemory()
	prof := profile.Skate3()

	// Nothing readable anywhere: fall back to the first candidate.
	r := New(mem, prof, testBase)
	if got, want := r.PatchSite(), testBase+process.Address(prof.PatchOffset); got != want {
		t.Fatalf("PatchSite() = %s, want fallback %s", got, want)
	}
}

func TestPatchSiteIgnoresWrongBytes(t *testing.T) {
	mem := newFakeMemory()
	prof := profile.Skate3()

	// First candidate readable but wrong; the signed site is the match.
	mem.WriteMemory(testBase+process.Address(prof.PatchOffset), []byte{0x90, 0x90})
	want := testBase + process.Address(prof.TextOffset) + process.Address(prof.PatchOffset)
	mem.WriteMemory(want, prof.PatchSignature)

	r := New(mem, prof, testBase)
	if got := r.PatchSite(); got != want {
		t.Fatalf("PatchSite() = %s, want %s", got, want)
	}
}

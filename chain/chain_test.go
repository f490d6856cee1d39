package chain

import (
	"encoding/binary"
	"errors"
	"testing"

	"freecam/process"
)

// fakeReader serves 4-byte little-endian pointer values at fixed addresses.
// Reading an address it does not know about fails, so tests also prove which
// addresses were not touched.
type fakeReader map[process.Address]uint32

func (f fakeReader) ReadMemory(addr process.Address, size process.Size) ([]byte, error) {
	v, ok := f[addr]
	if !ok {
		return nil, &process.MemoryError{Op: "read", Addr: addr, Err: errors.New("unmapped")}
	}
	buf := make([]byte, size)
	binary.LittleEndian.PutUint32(buf, v)
	return buf, nil
}

func TestResolveSingleOffsetNoDereference(t *testing.T) {
	// Empty fake: any read would fail, so success means no read happened.
	addr, err := Resolve(fakeReader{}, 0x400000, Offsets{0x324})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := process.Address(0x400324); addr != want {
		t.Fatalf("addr = %s, want %s", addr, want)
	}
}

func TestResolveWalksChain(t *testing.T) {
	mem := fakeReader{
		0x400000: 0x500000,
		0x500010: 0x600000,
	}

	addr, err := Resolve(mem, 0x400000, Offsets{0x10, 0x20, 0x30})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// *(0x400000)+0x10 = 0x500010, *(0x500010)+0x20 = 0x600020, +0x30 final
	if want := process.Address(0x600050); addr != want {
		t.Fatalf("addr = %s, want %s", addr, want)
	}
}

func TestResolveNullPointer(t *testing.T) {
	mem := fakeReader{
		0x400000: 0x500000,
		0x500010: 0,
	}

	_, err := Resolve(mem, 0x400000, Offsets{0x10, 0x20, 0x30})
	var npe *NullPointerError
	if !errors.As(err, &npe) {
		t.Fatalf("err = %v, want NullPointerError", err)
	}
	if npe.Step != 1 {
		t.Fatalf("step = %d, want 1", npe.Step)
	}
}

func TestResolveInvalidPointer(t *testing.T) {
	tests := []struct {
		name  string
		value uint32
	}{
		{"below user range", 0xFFFF},
		{"above 32-bit signed range", 0x80000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := fakeReader{0x400000: tt.value}

			_, err := Resolve(mem, 0x400000, Offsets{0x10, 0x20})
			var ipe *InvalidPointerError
			if !errors.As(err, &ipe) {
				t.Fatalf("err = %v, want InvalidPointerError", err)
			}
			if ipe.Step != 0 || ipe.Value != tt.value {
				t.Fatalf("got step %d value 0x%X, want step 0 value 0x%X", ipe.Step, ipe.Value, tt.value)
			}
		})
	}
}

func TestResolveReadFailureWrapped(t *testing.T) {
	_, err := Resolve(fakeReader{}, 0x400000, Offsets{0x10, 0x20})
	var merr *process.MemoryError
	if !errors.As(err, &merr) {
		t.Fatalf("err = %v, want wrapped MemoryError", err)
	}
}

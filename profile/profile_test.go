package profile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"freecam/chain"
)

func TestSkate3FieldChains(t *testing.T) {
	p := Skate3()

	x := p.FieldChain(p.PosX)
	want := chain.Offsets{0x34C, 0x8, 0x4, 0x8C, 0x0, 0x324}
	if len(x) != len(want) {
		t.Fatalf("chain length = %d, want %d", len(x), len(want))
	}
	for i := range want {
		if x[i] != want[i] {
			t.Fatalf("chain[%d] = 0x%X, want 0x%X", i, x[i], want[i])
		}
	}

	// FieldChain must not alias the shared outer sequence.
	m := p.FieldChain(p.Matrix)
	m[0] = 0xDEAD
	if p.CameraChain[0] != 0x34C {
		t.Fatal("FieldChain aliased the profile's outer chain")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	p := Skate3()
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	path := filepath.Join(t.TempDir(), "skate3.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.CameraBase != p.CameraBase || got.PatchOffset != p.PatchOffset {
		t.Fatalf("Load round trip mismatch: %+v", got)
	}
	if len(got.PatchSignature) != 2 || got.PatchSignature[0] != 0xF3 {
		t.Fatalf("signature = %X", got.PatchSignature)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"process_names": []}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted profile with no process names")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("Load accepted a missing file")
	}
}

// Package profile carries the game-specific discovered facts: pointer-chain
// offsets, patch site, instruction signature. These are configuration data,
// not logic — the resolver and patcher are reusable against any profile.
package profile

import (
	"encoding/json"
	"fmt"
	"os"

	"freecam/chain"
)

// Profile describes one target game build.
type Profile struct {
	// ProcessNames are tried in order as case-insensitive substrings when
	// attaching.
	ProcessNames []string `json:"process_names"`

	// CameraBase is the offset of the camera pointer chain root from the
	// main module's load address.
	CameraBase uint32 `json:"camera_base"`

	// CameraChain is the outer offset sequence shared by every camera field;
	// a field-specific terminal offset is appended per access.
	CameraChain chain.Offsets `json:"camera_chain"`

	// Terminal offsets for the individual fields.
	PosX   uint32 `json:"pos_x"`
	PosY   uint32 `json:"pos_y"`
	PosZ   uint32 `json:"pos_z"`
	Matrix uint32 `json:"matrix"`

	// PatchOffset locates the camera-overwrite instruction relative to the
	// module's .text section; PatchSignature is probed to confirm the site.
	PatchOffset    uint32 `json:"patch_offset"`
	PatchLen       int    `json:"patch_len"`
	PatchSignature []byte `json:"patch_signature"`

	// TextOffset is the assumed .text section start relative to the module
	// base, used when the real section table cannot be read.
	TextOffset uint32 `json:"text_offset"`
}

// Skate3 is the profile this tool was built around: the camera structures of
// the Skate3 executable, a 32-bit target.
func Skate3() Profile {
	return Profile{
		ProcessNames: []string{"skate3.exe", "Skate3.exe", "SKATE3.EXE"},
		CameraBase:   0x004E1E78,
		CameraChain:  chain.Offsets{0x34C, 0x8, 0x4, 0x8C, 0x0},
		PosX:         0x324,
		PosY:         0x328,
		PosZ:         0x32C,
		Matrix:       0x2F4,

		PatchOffset:    0x16B2E4,
		PatchLen:       2,
		PatchSignature: []byte{0xF3, 0xA5}, // repe movsd
		TextOffset:     0x1000,
	}
}

// FieldChain returns the full chain for one terminal offset: the shared
// outer sequence plus the field's add-only final step.
func (p Profile) FieldChain(terminal uint32) chain.Offsets {
	out := make(chain.Offsets, 0, len(p.CameraChain)+1)
	out = append(out, p.CameraChain...)
	return append(out, terminal)
}

func (p Profile) validate() error {
	if len(p.ProcessNames) == 0 {
		return fmt.Errorf("profile has no process names")
	}
	if len(p.CameraChain) == 0 {
		return fmt.Errorf("profile has an empty camera chain")
	}
	if p.PatchLen <= 0 {
		return fmt.Errorf("profile has invalid patch length %d", p.PatchLen)
	}
	return nil
}

// Load reads a profile from a JSON file for targets other than the built-in.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if err := p.validate(); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

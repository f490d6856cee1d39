// Package rig binds an attached process, a game profile, and the module load
// address into camera memory access and patch-site discovery.
package rig

import (
	"bytes"
	"fmt"

	"github.com/Moonlight-Companies/gologger/logger"

	"freecam/camera"
	"freecam/chain"
	"freecam/coloransi"
	"freecam/pod"
	"freecam/process"
	"freecam/profile"
)

// Rig resolves the profile's pointer chains against one attached process.
// Resolution happens on every access: the game reallocates the camera
// structures between states, so addresses are never cached.
type Rig struct {
	mem  process.Memory
	prof profile.Profile
	base process.Address
	log  *logger.Logger
}

func New(mem process.Memory, prof profile.Profile, base process.Address) *Rig {
	return &Rig{
		mem:  mem,
		prof: prof,
		base: base,
		log:  logger.NewLogger(coloransi.Color(coloransi.ColorLimeGreen, coloransi.ColorPurple, "rig")),
	}
}

// chainRoot is the address the camera pointer chain starts from.
func (r *Rig) chainRoot() process.Address {
	return r.base + process.Address(r.prof.CameraBase)
}

func (r *Rig) resolveField(terminal uint32) (process.Address, error) {
	return chain.Resolve(r.mem, r.chainRoot(), r.prof.FieldChain(terminal))
}

// ReadMatrix resolves and reads the full 4x4 camera transform.
func (r *Rig) ReadMatrix() (camera.Matrix, error) {
	addr, err := r.resolveField(r.prof.Matrix)
	if err != nil {
		return camera.Matrix{}, fmt.Errorf("resolve camera matrix: %w", err)
	}
	return pod.ReadT[camera.Matrix](r.mem, addr)
}

// WriteMatrix resolves and writes the full 4x4 camera transform back.
func (r *Rig) WriteMatrix(m camera.Matrix) error {
	addr, err := r.resolveField(r.prof.Matrix)
	if err != nil {
		return fmt.Errorf("resolve camera matrix: %w", err)
	}
	return pod.WriteT(r.mem, addr, m)
}

// ReadPosition reads the three position floats through their own chains.
func (r *Rig) ReadPosition() (camera.Position, error) {
	var pos camera.Position
	for _, axis := range []struct {
		terminal uint32
		out      *float32
	}{
		{r.prof.PosX, &pos.X},
		{r.prof.PosY, &pos.Y},
		{r.prof.PosZ, &pos.Z},
	} {
		addr, err := r.resolveField(axis.terminal)
		if err != nil {
			return camera.Position{}, fmt.Errorf("resolve position field +0x%X: %w", axis.terminal, err)
		}
		v, err := pod.ReadT[float32](r.mem, addr)
		if err != nil {
			return camera.Position{}, err
		}
		*axis.out = v
	}
	return pos, nil
}

// WritePosition writes the three position floats through their own chains.
func (r *Rig) WritePosition(pos camera.Position) error {
	for _, axis := range []struct {
		terminal uint32
		value    float32
	}{
		{r.prof.PosX, pos.X},
		{r.prof.PosY, pos.Y},
		{r.prof.PosZ, pos.Z},
	} {
		addr, err := r.resolveField(axis.terminal)
		if err != nil {
			return fmt.Errorf("resolve position field +0x%X: %w", axis.terminal, err)
		}
		if err := pod.WriteT(r.mem, addr, axis.value); err != nil {
			return err
		}
	}
	return nil
}

// CameraAddresses reports the resolved absolute addresses of the position
// fields, for startup diagnostics.
func (r *Rig) CameraAddresses() (x, y, z process.Address, err error) {
	if x, err = r.resolveField(r.prof.PosX); err != nil {
		return 0, 0, 0, err
	}
	if y, err = r.resolveField(r.prof.PosY); err != nil {
		return 0, 0, 0, err
	}
	if z, err = r.resolveField(r.prof.PosZ); err != nil {
		return 0, 0, 0, err
	}
	return x, y, z, nil
}

// PatchSite locates the camera-overwrite instruction. The profile's
// instruction offset is combined with three section-layout assumptions and
// each candidate is probed for the instruction signature. When nothing
// matches, the first candidate is returned as a degraded fallback rather
// than failing the whole run.
func (r *Rig) PatchSite() process.Address {
	off := process.Address(r.prof.PatchOffset)
	text := process.Address(r.prof.TextOffset)

	candidates := []process.Address{
		r.base + off,
		r.base + text + off,
		r.base + off - text,
	}

	for _, addr := range candidates {
		probe, err := r.mem.ReadMemory(addr, process.Size(len(r.prof.PatchSignature)))
		if err != nil {
			continue
		}
		if bytes.Equal(probe, r.prof.PatchSignature) {
			r.log.Debugln("patch signature matched at", addr)
			return addr
		}
	}

	r.log.Warn("patch signature not found, falling back to ", candidates[0])
	return candidates[0]
}

// PatchLen returns the byte length of the patch site's instruction.
func (r *Rig) PatchLen() int {
	return r.prof.PatchLen
}

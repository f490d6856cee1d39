// Package patch applies and reverts in-place NOP overwrites of executable
// code in the target process. A patch captures the original bytes before
// writing and those bytes never change afterwards; they are the ground truth
// for restoration.
package patch

import (
	"errors"
	"fmt"

	"freecam/process"
)

// NopOpcode is the single-byte x86 no-operation instruction.
const NopOpcode byte = 0x90

// Mirrors PAGE_EXECUTE_READWRITE. Declared here so the package builds and
// tests on any platform; the Protector implementation interprets it.
const pageExecuteReadWrite uint32 = 0x40

var (
	// ErrNotApplied is returned when restoring a patch that is not currently applied.
	ErrNotApplied = errors.New("patch not applied")
)

// Memory is the access a patch needs against the target process.
type Memory interface {
	process.Reader
	process.Writer
	process.Protector
}

// Patch is one applied NOP overwrite and the bytes needed to undo it.
type Patch struct {
	addr     process.Address
	original []byte
	applied  bool
}

func (p *Patch) Address() process.Address {
	return p.addr
}

func (p *Patch) Applied() bool {
	return p.applied
}

// Original returns a copy of the captured pre-patch bytes.
func (p *Patch) Original() []byte {
	out := make([]byte, len(p.original))
	copy(out, p.original)
	return out
}

// Apply captures length original bytes at addr, then overwrites them with
// NOPs under temporarily relaxed page protection. The previous protection is
// put back before returning, including when the write fails. The returned
// patch is marked applied only after every step succeeded.
func Apply(mem Memory, addr process.Address, length int) (*Patch, error) {
	if length <= 0 {
		return nil, fmt.Errorf("apply: invalid patch length %d", length)
	}

	original, err := mem.ReadMemory(addr, process.Size(length))
	if err != nil {
		return nil, fmt.Errorf("capture original bytes at %s: %w", addr, err)
	}

	nops := make([]byte, length)
	for i := range nops {
		nops[i] = NopOpcode
	}

	if err := writeCode(mem, addr, nops); err != nil {
		return nil, err
	}

	return &Patch{addr: addr, original: original, applied: true}, nil
}

// Restore writes the captured original bytes back. Restoring a patch that is
// not applied fails with ErrNotApplied; re-applying afterwards goes through
// Apply again so the bytes are re-captured fresh.
func (p *Patch) Restore(mem Memory) error {
	if !p.applied {
		return ErrNotApplied
	}

	if err := writeCode(mem, p.addr, p.original); err != nil {
		return err
	}

	p.applied = false
	return nil
}

// writeCode brackets a code write as tightly as possible with the protection
// change and always restores the previous protection, even when the write
// fails partway.
func writeCode(mem Memory, addr process.Address, data []byte) error {
	size := process.Size(len(data))

	old, err := mem.ProtectMemory(addr, size, pageExecuteReadWrite)
	if err != nil {
		return fmt.Errorf("change protection at %s: %w", addr, err)
	}

	werr := mem.WriteMemory(addr, data)

	if _, perr := mem.ProtectMemory(addr, size, old); perr != nil && werr == nil {
		return fmt.Errorf("restore protection at %s: %w", addr, perr)
	}

	if werr != nil {
		return fmt.Errorf("write code at %s: %w", addr, werr)
	}
	return nil
}

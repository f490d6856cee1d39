// Package chain resolves multi-level pointer chains inside the target
// process. Every offset except the last is "dereference, then add"; the last
// offset is added without a read, so a one-element chain never touches the
// target at all.
//
// The target is assumed to be a 32-bit process: intermediate pointers are
// read as 4-byte values and validated against the 32-bit user-space range
// even though addresses are carried as 64-bit quantities.
package chain

import (
	"fmt"

	"freecam/pod"
	"freecam/process"
)

// Valid range for an intermediate pointer in a 32-bit target.
const (
	MinPointer = 0x10000
	MaxPointer = 0x7FFFFFFF
)

// Offsets is an ordered pointer-chain specification. It is immutable once
// built; resolving it never writes to the target.
type Offsets []uint32

// NullPointerError reports a zero pointer read at one dereference step.
type NullPointerError struct {
	Step int
}

func (e *NullPointerError) Error() string {
	return fmt.Sprintf("null pointer at step %d", e.Step)
}

// InvalidPointerError reports an intermediate pointer outside the 32-bit
// user-space range, usually meaning the assumed layout no longer holds.
type InvalidPointerError struct {
	Step  int
	Value uint32
}

func (e *InvalidPointerError) Error() string {
	return fmt.Sprintf("invalid pointer 0x%X at step %d", e.Value, e.Step)
}

// Resolve walks the chain from base and returns the final address.
//
//	// base -> deref +0x34C -> deref +0x8 -> final read site at +0x324
//	addr, err := chain.Resolve(mem, base, chain.Offsets{0x34C, 0x8, 0x324})
func Resolve(mem process.Reader, base process.Address, offsets Offsets) (process.Address, error) {
	current := base

	for i, off := range offsets {
		if i == len(offsets)-1 {
			// Last offset is add-only
			return current + process.Address(off), nil
		}

		ptr, err := pod.ReadT[uint32](mem, current)
		if err != nil {
			return 0, fmt.Errorf("read pointer at step %d (%s): %w", i, current, err)
		}
		if ptr == 0 {
			return 0, &NullPointerError{Step: i}
		}
		if ptr < MinPointer || ptr > MaxPointer {
			return 0, &InvalidPointerError{Step: i, Value: ptr}
		}

		current = process.Address(ptr) + process.Address(off)
	}

	return current, nil
}

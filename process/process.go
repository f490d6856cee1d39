// Package process defines the memory access capabilities the rest of the
// module compiles against. Platform packages provide the implementations.
package process

import (
	"errors"
	"fmt"
)

var (
	// ErrProcessNotOpen is returned when an operation requiring an open process is attempted
	// before the process has been successfully opened or after it has been closed.
	ErrProcessNotOpen = errors.New("process not open")

	// ErrProcessNotFound is returned when no running process matches the requested name.
	ErrProcessNotFound = errors.New("process not found")

	// ErrNoModules is returned when the target process exposes no enumerable modules.
	ErrNoModules = errors.New("no modules found")
)

// Reader reads raw bytes from the target address space. A short read is an
// error, never a truncated result.
type Reader interface {
	ReadMemory(addr Address, size Size) ([]byte, error)
}

// Writer writes raw bytes into the target address space. A short write is an error.
type Writer interface {
	WriteMemory(addr Address, data []byte) error
}

// Memory combines read and write access to one target process.
type Memory interface {
	Reader
	Writer
}

// Protector changes page protection in the target address space and reports
// the previous protection value so it can be restored.
type Protector interface {
	ProtectMemory(addr Address, size Size, protect uint32) (old uint32, err error)
}

// MemoryError reports a failed transfer against the target process. It carries
// the failing address and the OS error for diagnostics; callers treat any
// MemoryError as "this access failed", not as a class to branch on.
type MemoryError struct {
	Op   string
	Addr Address
	Err  error
}

func (e *MemoryError) Error() string {
	return fmt.Sprintf("%s at %s: %v", e.Op, e.Addr, e.Err)
}

func (e *MemoryError) Unwrap() error {
	return e.Err
}

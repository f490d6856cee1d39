package process

import "fmt"

// Address represents a memory address within the target process.
// Wide enough for a 64-bit address space even though the supported
// targets store 32-bit pointers.
type Address uint64

func (a Address) String() string {
	return fmt.Sprintf("0x%X", uint64(a))
}

// Size represents a size of a memory region in the target process
type Size uint

func (s Size) String() string {
	return fmt.Sprintf("%d bytes", uint(s))
}

// ProcessID identifies a running process
type ProcessID uint32

// ProcessInfo describes one running process as seen by a snapshot scan
type ProcessInfo struct {
	PID  ProcessID
	Name string
}

// ModuleInfo describes one module loaded into the target process
type ModuleInfo struct {
	Name string
	Path string
	Base Address
	Size Size
}

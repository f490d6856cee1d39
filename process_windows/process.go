//go:build windows

// Package process_windows implements the process access interfaces against a
// live Windows target.
package process_windows

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/Moonlight-Companies/gologger/logger"
	"golang.org/x/sys/windows"

	"freecam/coloransi"
	"freecam/process"
)

// Rights needed to read, write, patch, and enumerate the target.
const openAccess = windows.PROCESS_VM_READ |
	windows.PROCESS_VM_WRITE |
	windows.PROCESS_VM_OPERATION |
	windows.PROCESS_QUERY_INFORMATION

// WindowsProcess owns the handle to one open target process
type WindowsProcess struct {
	pid    process.ProcessID
	handle windows.Handle
	log    *logger.Logger
	mu     sync.Mutex
}

// New creates an unopened WindowsProcess
func New() *WindowsProcess {
	return &WindowsProcess{
		log: logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "process-not-open")),
	}
}

// OpenPID creates a WindowsProcess and opens it with the given PID
func OpenPID(pid process.ProcessID) (*WindowsProcess, error) {
	p := New()
	if err := p.Open(pid); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *WindowsProcess) Open(pid process.ProcessID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	handle, err := windows.OpenProcess(openAccess, false, uint32(pid))
	if err != nil {
		return fmt.Errorf("OpenProcess %d failed: %w", pid, err)
	}

	p.pid = pid
	p.handle = handle
	p.log = logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("process-%d", pid)))
	p.log.Infoln("Process opened")
	return nil
}

// Close releases the process handle. The handle is released exactly once no
// matter how often Close is called or whether earlier operations failed.
func (p *WindowsProcess) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle != 0 {
		if err := windows.CloseHandle(p.handle); err != nil {
			return fmt.Errorf("CloseHandle failed: %w", err)
		}
		p.handle = 0
	}

	p.pid = 0
	p.log = logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "process-not-open"))
	p.log.Infoln("Process closed")
	return nil
}

func (p *WindowsProcess) GetPID() process.ProcessID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pid
}

func (p *WindowsProcess) openHandle() (windows.Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == 0 {
		return 0, process.ErrProcessNotOpen
	}
	return p.handle, nil
}

func (p *WindowsProcess) ReadMemory(addr process.Address, size process.Size) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}

	handle, err := p.openHandle()
	if err != nil {
		return nil, err
	}

	buf := make([]byte, size)
	var bytesRead uintptr
	if err := windows.ReadProcessMemory(handle, uintptr(addr), &buf[0], uintptr(size), &bytesRead); err != nil {
		return nil, &process.MemoryError{Op: "ReadProcessMemory", Addr: addr, Err: err}
	}
	if bytesRead != uintptr(size) {
		return nil, &process.MemoryError{
			Op:   "ReadProcessMemory",
			Addr: addr,
			Err:  fmt.Errorf("read incomplete: expected %d, got %d", size, bytesRead),
		}
	}

	return buf, nil
}

func (p *WindowsProcess) WriteMemory(addr process.Address, data []byte) error {
	if len(data) == 0 {
		return nil
	}

	handle, err := p.openHandle()
	if err != nil {
		return err
	}

	var bytesWritten uintptr
	if err := windows.WriteProcessMemory(handle, uintptr(addr), &data[0], uintptr(len(data)), &bytesWritten); err != nil {
		return &process.MemoryError{Op: "WriteProcessMemory", Addr: addr, Err: err}
	}
	if bytesWritten != uintptr(len(data)) {
		return &process.MemoryError{
			Op:   "WriteProcessMemory",
			Addr: addr,
			Err:  fmt.Errorf("write incomplete: expected %d, got %d", len(data), bytesWritten),
		}
	}

	return nil
}

// ProtectMemory changes page protection for the range and returns the
// previous protection value.
func (p *WindowsProcess) ProtectMemory(addr process.Address, size process.Size, protect uint32) (uint32, error) {
	handle, err := p.openHandle()
	if err != nil {
		return 0, err
	}

	var old uint32
	if err := windows.VirtualProtectEx(handle, uintptr(addr), uintptr(size), protect, &old); err != nil {
		return 0, &process.MemoryError{Op: "VirtualProtectEx", Addr: addr, Err: err}
	}
	return old, nil
}

// Modules enumerates the modules loaded into the target.
func (p *WindowsProcess) Modules() ([]process.ModuleInfo, error) {
	handle, err := p.openHandle()
	if err != nil {
		return nil, err
	}

	mods := make([]windows.Handle, 1024)
	modSize := uint32(unsafe.Sizeof(mods[0]))
	var needed uint32
	if err := windows.EnumProcessModules(handle, &mods[0], uint32(len(mods))*modSize, &needed); err != nil {
		return nil, fmt.Errorf("EnumProcessModules failed: %w", err)
	}

	count := int(needed / modSize)
	if count > len(mods) {
		count = len(mods)
	}

	out := make([]process.ModuleInfo, 0, count)
	for _, mod := range mods[:count] {
		var info windows.ModuleInfo
		if err := windows.GetModuleInformation(handle, mod, &info, uint32(unsafe.Sizeof(info))); err != nil {
			continue
		}

		var nameBuf [windows.MAX_PATH]uint16
		name := ""
		if err := windows.GetModuleBaseName(handle, mod, &nameBuf[0], uint32(len(nameBuf))); err == nil {
			name = windows.UTF16ToString(nameBuf[:])
		}

		var pathBuf [windows.MAX_PATH]uint16
		path := ""
		if err := windows.GetModuleFileNameEx(handle, mod, &pathBuf[0], uint32(len(pathBuf))); err == nil {
			path = windows.UTF16ToString(pathBuf[:])
		}

		out = append(out, process.ModuleInfo{
			Name: name,
			Path: path,
			Base: process.Address(info.BaseOfDll),
			Size: process.Size(info.SizeOfImage),
		})
	}

	if len(out) == 0 {
		return nil, process.ErrNoModules
	}
	return out, nil
}

// BaseModule returns the first enumerated module, the main executable.
func (p *WindowsProcess) BaseModule() (process.ModuleInfo, error) {
	mods, err := p.Modules()
	if err != nil {
		return process.ModuleInfo{}, err
	}
	return mods[0], nil
}

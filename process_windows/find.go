//go:build windows

package process_windows

import (
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"

	"freecam/process"
)

// ListProcesses snapshots the running processes whose executable name
// contains filter (case-insensitive). An empty filter lists everything.
func ListProcesses(filter string) ([]process.ProcessInfo, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("CreateToolhelp32Snapshot failed: %w", err)
	}
	defer windows.CloseHandle(snapshot)

	filter = strings.ToLower(filter)

	var out []process.ProcessInfo
	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	for err := windows.Process32First(snapshot, &entry); err == nil; err = windows.Process32Next(snapshot, &entry) {
		name := windows.UTF16ToString(entry.ExeFile[:])
		if filter == "" || strings.Contains(strings.ToLower(name), filter) {
			out = append(out, process.ProcessInfo{
				PID:  process.ProcessID(entry.ProcessID),
				Name: name,
			})
		}
	}

	return out, nil
}

// FindProcess returns the PID of the first process whose executable name
// contains name, case-insensitive.
func FindProcess(name string) (process.ProcessID, error) {
	matches, err := ListProcesses(name)
	if err != nil {
		return 0, err
	}
	if len(matches) == 0 {
		return 0, fmt.Errorf("%q: %w", name, process.ErrProcessNotFound)
	}
	return matches[0].PID, nil
}

// Attach tries each candidate name in order and opens the first process that
// both matches and grants the required access.
func Attach(names ...string) (*WindowsProcess, error) {
	lastErr := error(process.ErrProcessNotFound)
	for _, name := range names {
		pid, err := FindProcess(name)
		if err != nil {
			lastErr = err
			continue
		}
		p, err := OpenPID(pid)
		if err != nil {
			lastErr = err
			continue
		}
		return p, nil
	}
	return nil, lastErr
}

//go:build windows

package input

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	moduser32            = windows.NewLazySystemDLL("user32.dll")
	procGetAsyncKeyState = moduser32.NewProc("GetAsyncKeyState")
	procGetCursorPos     = moduser32.NewProc("GetCursorPos")
	procSetCursorPos     = moduser32.NewProc("SetCursorPos")
	procGetSystemMetrics = moduser32.NewProc("GetSystemMetrics")
)

// Virtual key codes for the control scheme
const (
	VK_I = 0x49 // forward
	VK_J = 0x4A // left
	VK_K = 0x4B // backward
	VK_L = 0x4C // right
	VK_U = 0x55 // up
	VK_O = 0x4F // down
	VK_M = 0x4D // toggle mouse look
	VK_P = 0x50 // toggle camera write patch

	VK_PRIOR = 0x21 // Page Up, speed up
	VK_NEXT  = 0x22 // Page Down, slow down

	SM_CXSCREEN = 0
	SM_CYSCREEN = 1
)

// IsKeyPressed reports whether the key is currently held.
func IsKeyPressed(vk int) bool {
	state, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
	return uint16(state)&0x8000 != 0
}

type point struct {
	X int32
	Y int32
}

// Poller is the Windows input Source: it polls the movement and speed keys
// and samples mouse-look deltas relative to the screen center, recentering
// the cursor after any significant movement.
type Poller struct {
	centerX      int32
	centerY      int32
	sensitivity  float32
	mouseEnabled bool
}

func NewPoller(sensitivity float32) *Poller {
	cx, _, _ := procGetSystemMetrics.Call(SM_CXSCREEN)
	cy, _, _ := procGetSystemMetrics.Call(SM_CYSCREEN)
	return &Poller{
		centerX:     int32(cx) / 2,
		centerY:     int32(cy) / 2,
		sensitivity: sensitivity,
	}
}

func (p *Poller) Movement() Movement {
	return Movement{
		Forward:  IsKeyPressed(VK_I),
		Backward: IsKeyPressed(VK_K),
		Left:     IsKeyPressed(VK_J),
		Right:    IsKeyPressed(VK_L),
		Up:       IsKeyPressed(VK_U),
		Down:     IsKeyPressed(VK_O),
	}
}

func (p *Poller) SpeedDelta() int {
	if IsKeyPressed(VK_PRIOR) {
		return 1
	}
	if IsKeyPressed(VK_NEXT) {
		return -1
	}
	return 0
}

// EnableMouse starts mouse look and centers the cursor so the first sample
// has no spurious delta.
func (p *Poller) EnableMouse() {
	p.mouseEnabled = true
	procSetCursorPos.Call(uintptr(p.centerX), uintptr(p.centerY))
}

func (p *Poller) DisableMouse() {
	p.mouseEnabled = false
}

func (p *Poller) MouseEnabled() bool {
	return p.mouseEnabled
}

func (p *Poller) MouseDelta() (float32, float32) {
	if !p.mouseEnabled {
		return 0, 0
	}

	var pt point
	ok, _, _ := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ok == 0 {
		return 0, 0
	}

	dx := float32(pt.X - p.centerX)
	dy := float32(pt.Y - p.centerY)

	// Only recenter on significant movement, SetCursorPos is not free.
	if dx > 1 || dx < -1 || dy > 1 || dy < -1 {
		procSetCursorPos.Call(uintptr(p.centerX), uintptr(p.centerY))
	}

	return dx * p.sensitivity, dy * p.sensitivity
}

// Toggle edge-detects one key so a held key flips its state only once.
type Toggle struct {
	vk   int
	down bool
}

func NewToggle(vk int) *Toggle {
	return &Toggle{vk: vk}
}

// Pressed reports a fresh key-down transition since the previous poll.
func (t *Toggle) Pressed() bool {
	held := IsKeyPressed(t.vk)
	fired := held && !t.down
	t.down = held
	return fired
}

//go:build windows

// freecam attaches to a running game process and takes over its camera:
// movement keys and mouse look are written straight into the camera transform
// each tick, and the game's own camera-overwrite instruction can be patched
// out while flying.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Moonlight-Companies/gologger/logger"

	"freecam/camera"
	"freecam/coloransi"
	"freecam/controller"
	"freecam/input"
	"freecam/patch"
	"freecam/process_windows"
	"freecam/profile"
	"freecam/rig"
)

const tickInterval = 16 * time.Millisecond

func main() {
	profileFlag := flag.String("profile", "", "JSON profile for a target other than the built-in Skate3 layout")
	sensitivityFlag := flag.Float64("sensitivity", 0.5, "Mouse look sensitivity")
	flag.Parse()

	log := logger.NewLogger(coloransi.Color(coloransi.Cyan, coloransi.ColorOrange, "freecam"))

	prof := profile.Skate3()
	if *profileFlag != "" {
		p, err := profile.Load(*profileFlag)
		if err != nil {
			log.Warn("profile: ", err)
			os.Exit(1)
		}
		prof = p
	}

	scanForCandidates(log, prof)

	proc, err := process_windows.Attach(prof.ProcessNames...)
	if err != nil {
		log.Warn("attach failed: ", err)
		fmt.Println("Could not attach to the game process.")
		fmt.Println("Start the game first, and run this tool as Administrator.")
		os.Exit(1)
	}
	defer proc.Close()

	module, err := proc.BaseModule()
	if err != nil {
		log.Warn("base address: ", err)
		os.Exit(1)
	}
	log.Infoln("module", module.Name, "loaded at", module.Base)

	r := rig.New(proc, prof, module.Base)
	if module.Path != "" {
		r.RefineTextOffset(module.Path)
	}

	pos, err := r.ReadPosition()
	if err != nil {
		log.Warn("camera position unreachable: ", err)
		fmt.Println("The pointer chain did not resolve; make sure a session is actually running.")
		os.Exit(1)
	}
	log.Infoln(fmt.Sprintf("camera at X:%.6f Y:%.6f Z:%.6f", pos.X, pos.Y, pos.Z))

	if x, y, z, err := r.CameraAddresses(); err == nil {
		log.Infoln("position fields at", x, y, z)
	}

	toggler := patch.NewToggler(proc, r.PatchSite(), r.PatchLen())
	defer toggler.Close()

	src := input.NewPoller(float32(*sensitivityFlag))

	if _, err := r.ReadMatrix(); err != nil {
		log.Warn("matrix unreachable, falling back to position-only mode: ", err)
		runBasic(r, src, toggler)
		return
	}
	runFull(r, src, toggler)
}

// scanForCandidates lists running processes matching the profile's first
// target name, so a failed attach is easier to diagnose.
func scanForCandidates(log *logger.Logger, prof profile.Profile) {
	filter := strings.TrimSuffix(strings.ToLower(prof.ProcessNames[0]), ".exe")
	candidates, err := process_windows.ListProcesses(filter)
	if err != nil {
		log.Warn("process scan: ", err)
		return
	}
	for _, c := range candidates {
		log.Infoln("candidate", c.Name, "pid", c.PID)
	}
}

func printControls(mouseLook bool) {
	fmt.Println("Controls:")
	fmt.Println("  I/K          - Move forward/backward")
	fmt.Println("  J/L          - Move left/right")
	fmt.Println("  U/O          - Move up/down")
	if mouseLook {
		fmt.Println("  M            - Toggle mouse look")
	}
	fmt.Println("  P            - Toggle camera write patch")
	fmt.Println("  Page Up/Down - Increase/decrease speed")
	fmt.Println()
	fmt.Println("Switch to the game window and fly. Close this terminal to stop.")
	fmt.Println()
}

func runFull(r *rig.Rig, src *input.Poller, toggler *patch.Toggler) {
	printControls(true)

	ctl := controller.New(src, controller.DefaultConfig())
	mouseToggle := input.NewToggle(input.VK_M)
	patchToggle := input.NewToggle(input.VK_P)

	var last camera.Position
	for {
		if mouseToggle.Pressed() {
			if src.MouseEnabled() {
				src.DisableMouse()
				fmt.Println("\nmouse look off")
			} else {
				src.EnableMouse()
				fmt.Println("\nmouse look on - move the mouse to look around")
			}
		}
		if patchToggle.Pressed() {
			if _, err := toggler.Toggle(); err != nil {
				fmt.Println("\npatch toggle failed:", err)
			}
		}

		moved, err := ctl.Update(r)
		if err != nil {
			fmt.Println("\ncamera control error:", err)
			fmt.Println("The game state may have changed; restart the tool to re-attach.")
			return
		}
		if moved {
			last = showPosition(ctl.LastPosition(), last, src.MouseEnabled(), toggler.Active(), ctl.Speed())
		}

		time.Sleep(tickInterval)
	}
}

func runBasic(r *rig.Rig, src *input.Poller, toggler *patch.Toggler) {
	printControls(false)

	ctl := controller.NewPosition(src, controller.DefaultPositionConfig())
	patchToggle := input.NewToggle(input.VK_P)

	var last camera.Position
	for {
		if patchToggle.Pressed() {
			if _, err := toggler.Toggle(); err != nil {
				fmt.Println("\npatch toggle failed:", err)
			}
		}

		moved, err := ctl.Update(r)
		if err != nil {
			fmt.Println("\ncamera control error:", err)
			fmt.Println("The game state may have changed; restart the tool to re-attach.")
			return
		}
		if moved {
			last = showPosition(ctl.LastPosition(), last, false, toggler.Active(), ctl.Speed())
		}

		time.Sleep(tickInterval)
	}
}

// showPosition rewrites the status line, but only when the camera moved far
// enough to matter so the terminal is not flooded at tick rate.
func showPosition(pos, last camera.Position, mouse, patched bool, speed float32) camera.Position {
	if abs(pos.X-last.X) <= 0.1 && abs(pos.Y-last.Y) <= 0.1 && abs(pos.Z-last.Z) <= 0.1 {
		return last
	}
	fmt.Printf("\rcamera X:%.1f Y:%.1f Z:%.1f | mouse %s | patch %s | speed %.1f   ",
		pos.X, pos.Y, pos.Z, onOff(mouse), onOff(patched), speed)
	return pos
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

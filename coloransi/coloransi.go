// Package coloransi provides the ANSI color helpers used to tag logger names.
package coloransi

import (
	"fmt"
	"strings"
)

// ColorCode represents ANSI color codes and RGB colors as a 32-bit integer.
// The lower 8 bits represent ANSI color codes, and the upper 24 bits represent RGB values.
type ColorCode uint32

// ANSI color codes
const (
	Black   ColorCode = 30
	Red     ColorCode = 31
	Green   ColorCode = 32
	Yellow  ColorCode = 33
	Blue    ColorCode = 34
	Magenta ColorCode = 35
	Cyan    ColorCode = 36
	White   ColorCode = 37

	// Background colors start at 40
	BackgroundOffset ColorCode = 10

	// RGB color mask
	RGBMask ColorCode = 0xFFFFFF00
)

// CreateRGB packs RGB values into a ColorCode
func CreateRGB(r, g, b uint8) ColorCode {
	return ColorCode(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8)
}

var ColorOrange ColorCode = CreateRGB(255, 140, 0)
var ColorPurple ColorCode = CreateRGB(128, 0, 128)
var ColorTeal ColorCode = CreateRGB(0, 128, 128)
var ColorLimeGreen ColorCode = CreateRGB(50, 205, 50)

// IsRGB checks if the ColorCode represents an RGB color
func (c ColorCode) IsRGB() bool {
	return c&RGBMask != 0
}

// Color formats the given text with the specified foreground and background colors.
func Color(fg, bg ColorCode, v ...interface{}) string {
	fgCode := OneForeground(fg)
	bgCode := OneBackground(bg)
	reset := Reset()
	args := make([]string, len(v))
	for i, arg := range v {
		args[i] = fmt.Sprint(arg)
	}
	text := strings.Join(args, " ")
	return fmt.Sprintf("%s%s%s%s", fgCode, bgCode, text, reset)
}

// Foreground formats the given text with the specified foreground color.
func Foreground(fg ColorCode, v ...interface{}) string {
	fgCode := OneForeground(fg)
	reset := Reset()
	args := make([]string, len(v))
	for i, arg := range v {
		args[i] = fmt.Sprint(arg)
	}
	text := strings.Join(args, " ")
	return fmt.Sprintf("%s%s%s", fgCode, text, reset)
}

// OneForeground returns the ANSI escape sequence for the given color code.
func OneForeground(code ColorCode) string {
	if code.IsRGB() {
		r := (code >> 24) & 0xFF
		g := (code >> 16) & 0xFF
		b := (code >> 8) & 0xFF
		return fmt.Sprintf("\033[38;2;%d;%d;%dm", r, g, b)
	}
	return fmt.Sprintf("\033[%dm", code)
}

// OneBackground returns the ANSI escape sequence for the given background color code.
func OneBackground(code ColorCode) string {
	if code.IsRGB() {
		r := (code >> 24) & 0xFF
		g := (code >> 16) & 0xFF
		b := (code >> 8) & 0xFF
		return fmt.Sprintf("\033[48;2;%d;%d;%dm", r, g, b)
	}
	return fmt.Sprintf("\033[%dm", code+BackgroundOffset)
}

// Reset returns the ANSI escape sequence to reset the text color.
func Reset() string {
	return "\033[0m"
}

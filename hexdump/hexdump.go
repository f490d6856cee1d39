// Package hexdump renders short byte runs for log lines.
package hexdump

import (
	"fmt"
	"strings"
	"unicode"

	"freecam/coloransi"
)

// Options defines options for customizing the dump output
type Options struct {
	// OffsetWidth is the width of the offset column in hex digits
	OffsetWidth int

	// OffsetColor is the color for the offset/address column
	OffsetColor coloransi.ColorCode

	// HexColor is the color for the hex values
	HexColor coloransi.ColorCode

	// ASCIIColor is the color for the ASCII representation
	ASCIIColor coloransi.ColorCode
}

// DefaultOptions returns the default dump options
func DefaultOptions() Options {
	return Options{
		OffsetWidth: 8,
		OffsetColor: coloransi.Cyan,
		HexColor:    coloransi.Green,
		ASCIIColor:  coloransi.White,
	}
}

// Line renders data as one "address: hex bytes |ascii|" line.
func Line(data []byte, addr uint64) string {
	return LineWithOptions(data, addr, DefaultOptions())
}

// LineWithOptions renders data as a single line with the given options.
func LineWithOptions(data []byte, addr uint64, options Options) string {
	if options.OffsetWidth <= 0 {
		options.OffsetWidth = 8
	}

	var sb strings.Builder

	offsetStr := fmt.Sprintf("%0*X:", options.OffsetWidth, addr)
	sb.WriteString(coloransi.Foreground(options.OffsetColor, offsetStr))
	sb.WriteString(" ")

	hexParts := make([]string, len(data))
	for i, b := range data {
		hexParts[i] = fmt.Sprintf("%02X", b)
	}
	sb.WriteString(coloransi.Foreground(options.HexColor, strings.Join(hexParts, " ")))

	sb.WriteString(" |")
	var ascii strings.Builder
	for _, b := range data {
		if unicode.IsPrint(rune(b)) && b < 0x80 {
			ascii.WriteByte(b)
		} else {
			ascii.WriteByte('.')
		}
	}
	sb.WriteString(coloransi.Foreground(options.ASCIIColor, ascii.String()))
	sb.WriteString("|")

	return sb.String()
}

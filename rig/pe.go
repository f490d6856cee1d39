package rig

import (
	"fmt"

	"github.com/Binject/debug/pe"
)

// TextSectionOffset reads the executable's PE section table and returns the
// .text section RVA.
func TextSectionOffset(path string) (uint32, error) {
	f, err := pe.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open PE %s: %w", path, err)
	}
	defer f.Close()

	for _, section := range f.Sections {
		if section.Name == ".text" {
			return section.VirtualAddress, nil
		}
	}
	return 0, fmt.Errorf("%s has no .text section", path)
}

// RefineTextOffset replaces the profile's assumed .text offset with the one
// from the module's own section table when the executable file is readable.
// Failure keeps the assumption; patch-site probing covers the difference.
func (r *Rig) RefineTextOffset(path string) {
	off, err := TextSectionOffset(path)
	if err != nil {
		r.log.Warn("keeping assumed .text offset: ", err)
		return
	}
	if off != r.prof.TextOffset {
		r.log.Infoln("resolved .text offset", fmt.Sprintf("0x%X", off))
		r.prof.TextOffset = off
	}
}

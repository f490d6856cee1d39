package patch

import (
	"github.com/Moonlight-Companies/gologger/logger"

	"freecam/coloransi"
	"freecam/hexdump"
	"freecam/process"
)

// Toggler owns the live patch for one patch site across a control loop.
// Toggling off restores the original bytes; toggling back on re-applies with
// a freshly captured patch. Close gives the loop a single guaranteed restore
// point for every exit path.
type Toggler struct {
	mem    Memory
	addr   process.Address
	length int
	cur    *Patch
	log    *logger.Logger
}

func NewToggler(mem Memory, addr process.Address, length int) *Toggler {
	return &Toggler{
		mem:    mem,
		addr:   addr,
		length: length,
		log:    logger.NewLogger(coloransi.Color(coloransi.Yellow, coloransi.ColorTeal, "patch")),
	}
}

func (t *Toggler) Active() bool {
	return t.cur != nil && t.cur.Applied()
}

// Toggle flips the patch state and reports whether it is applied afterwards.
func (t *Toggler) Toggle() (bool, error) {
	if t.Active() {
		if err := t.cur.Restore(t.mem); err != nil {
			return true, err
		}
		t.log.Infoln("restored original bytes at", t.addr)
		return false, nil
	}

	p, err := Apply(t.mem, t.addr, t.length)
	if err != nil {
		return false, err
	}
	t.cur = p
	t.log.Infoln("applied", t.length, "NOPs at", t.addr)
	t.log.Debugln("original:", hexdump.Line(p.Original(), uint64(t.addr)))
	return true, nil
}

// Close restores a still-applied patch. Safe to call when nothing is applied.
func (t *Toggler) Close() error {
	if !t.Active() {
		return nil
	}
	return t.cur.Restore(t.mem)
}

package fatal

import (
	"github.com/clktmr/arm64fatal/debug"
	"github.com/clktmr/arm64fatal/klog"
)

// NumRegs is the number of registers in an ESF.
const NumRegs = 20

// ESF is the exception stack frame pushed by the trap entry code: the caller
// saved general purpose registers x0-x18 and the link register x30.
//
// Regs is in the order the entry code stores registers, which pushes pairs
// starting at x18/x30 and ending at x0/x1. Use Reg and SetReg to access
// registers by number.
type ESF struct {
	Regs [NumRegs]uint64
}

// layout maps registers to their slot in ESF.Regs. It's in the order the
// registers are reported.
var layout = [NumRegs]struct {
	reg   uint8
	slot  uint8
	label string
}{
	{0, 18, "x0:"}, {1, 19, "x1:"},
	{2, 16, "x2:"}, {3, 17, "x3:"},
	{4, 14, "x4:"}, {5, 15, "x5:"},
	{6, 12, "x6:"}, {7, 13, "x7:"},
	{8, 10, "x8:"}, {9, 11, "x9:"},
	{10, 8, "x10:"}, {11, 9, "x11:"},
	{12, 6, "x12:"}, {13, 7, "x13:"},
	{14, 4, "x14:"}, {15, 5, "x15:"},
	{16, 2, "x16:"}, {17, 3, "x17:"},
	{18, 0, "x18:"}, {30, 1, "x30:"},
}

func init() {
	if debug.Enabled {
		var seen [NumRegs]bool
		for _, l := range layout {
			debug.Assert(!seen[l.slot], "esf slot used twice")
			seen[l.slot] = true
		}
	}
}

// SavedRegs returns the numbers of the registers in an ESF, in report order.
func SavedRegs() []int {
	regs := make([]int, NumRegs)
	for i, l := range layout {
		regs[i] = int(l.reg)
	}
	return regs
}

func slotOf(reg int) (int, bool) {
	for _, l := range layout {
		if int(l.reg) == reg {
			return int(l.slot), true
		}
	}
	return 0, false
}

// Reg returns the value of general purpose register xn. Returns false if the
// register isn't part of the frame.
func (e *ESF) Reg(n int) (uint64, bool) {
	slot, ok := slotOf(n)
	if !ok {
		return 0, false
	}
	return e.Regs[slot], true
}

// SetReg sets the value of general purpose register xn. Returns false if the
// register isn't part of the frame.
func (e *ESF) SetReg(n int, v uint64) bool {
	slot, ok := slotOf(n)
	if ok {
		e.Regs[slot] = v
	}
	return ok
}

// dumpESF writes two registers per line, e.g.
//
//	x0:  0x0000000000000000  x1:  0x0000000000000001
func (r *Reporter) dumpESF(esf *ESF) {
	for i := 0; i < len(layout); i += 2 {
		b := r.line[:0]
		b = appendESFReg(b, i, esf)
		b = append(b, "  "...)
		b = appendESFReg(b, i+1, esf)
		r.Sink.Log(klog.LevelError, b)
	}
}

func appendESFReg(b []byte, i int, esf *ESF) []byte {
	l := &layout[i]
	b = append(b, l.label...)
	for n := len(l.label); n < 4; n++ {
		b = append(b, ' ')
	}
	b = append(b, " 0x"...)
	return appendHex(b, esf.Regs[l.slot])
}

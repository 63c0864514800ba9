package fatal

import (
	"github.com/clktmr/arm64fatal/esr"
	"github.com/clktmr/arm64fatal/klog"
	"github.com/clktmr/arm64fatal/machine"
)

// Labels of the syndrome register lines.
const (
	LabelESR = "ESR_ELn: "
	LabelFAR = "FAR_ELn: "
	LabelELR = "ELR_ELn: "
)

func (r *Reporter) dumpSysRegs() {
	if r.Registers.ExceptionLevel() == machine.EL0 {
		return
	}

	syndrome := r.Registers.ESR()
	far := r.Registers.FAR()
	elr := r.Registers.ELR()

	r.logReg(LabelESR, syndrome)
	r.logReg(LabelFAR, far)
	r.logReg(LabelELR, elr)

	if text, ok := esr.Classify(esr.Syndrome(syndrome)); ok {
		r.Sink.Log(klog.LevelError, append(r.line[:0], text...))
	}
}

func (r *Reporter) logReg(label string, v uint64) {
	b := append(r.line[:0], label...)
	b = append(b, "0x"...)
	b = appendHex(b, v)
	r.Sink.Log(klog.LevelError, b)
}

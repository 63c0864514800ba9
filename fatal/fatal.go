// Package fatal reports unrecoverable exceptions taken in aarch64 kernel code
// and hands over to the kernel's fatal error policy.
//
// A report consists of the EL1 syndrome registers, a description of the
// exception class and the registers saved by the trap entry code, written as
// separate lines with error severity. The line format is parsed by tools, see
// package report.
package fatal

import (
	"errors"

	"github.com/clktmr/arm64fatal/klog"
	"github.com/clktmr/arm64fatal/machine"
)

// Reason is the kernel's fatal error code.
type Reason uint32

const (
	CPUException   Reason = iota // unhandled exception in the CPU
	SpuriousIRQ                  // interrupt without a handler
	StackCheckFail               // stack canary was overwritten
	KernelOops                   // recoverable kernel bug, thread is aborted
	KernelPanic                  // unrecoverable kernel bug
)

var reasonNames = [...]string{
	CPUException:   "CPU exception",
	SpuriousIRQ:    "Unhandled interrupt",
	StackCheckFail: "Stack overflow",
	KernelOops:     "Kernel oops",
	KernelPanic:    "Kernel panic",
}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "Unknown error"
}

// Policy decides what happens after an error was reported, e.g. halting the
// system or aborting the faulting thread. FatalError must not return.
type Policy interface {
	FatalError(reason Reason, esf *ESF)
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(reason Reason, esf *ESF)

func (f PolicyFunc) FatalError(reason Reason, esf *ESF) { f(reason, esf) }

// ErrPolicyReturned is the panic value if a Policy breaks its contract.
var ErrPolicyReturned = errors.New("fatal: policy returned")

// ErrNoPolicy is the panic value if a Reporter has no Policy.
var ErrNoPolicy = errors.New("fatal: no policy")

const lineSize = 160

// Reporter writes fatal error reports. It's not safe for concurrent or
// reentrant use.
type Reporter struct {
	Registers machine.Registers
	Sink      klog.Sink
	Policy    Policy

	line [lineSize]byte
}

// Default is used by Report. On bare metal targets it logs the executing
// core's registers to the failsafe UART before halting. Elsewhere it's empty
// until configured.
var Default = &Reporter{}

// Report reports a fatal error using Default. It never returns.
func Report(reason Reason, esf *ESF) {
	Default.Report(reason, esf)
}

// Report logs the syndrome registers and the exception stack frame esf, which
// may be nil, and then calls the Policy with the same arguments. It never
// returns.
//
// The syndrome registers are skipped for spurious interrupts, which don't
// set them, and if the fault was taken from EL0. Without a Sink nothing is
// logged, without Registers only the frame is. Without a Policy Report panics
// with ErrNoPolicy.
func (r *Reporter) Report(reason Reason, esf *ESF) {
	if r.Sink != nil {
		if reason != SpuriousIRQ && r.Registers != nil {
			r.dumpSysRegs()
		}
		if esf != nil {
			r.dumpESF(esf)
		}
	}
	if r.Policy == nil {
		panic(ErrNoPolicy)
	}
	r.Policy.FatalError(reason, esf)
	panic(ErrPolicyReturned)
}

// Package machine provides access to aarch64 processor state which the
// runtime and the fatal error path need before any driver is initialized.
package machine

// ExceptionLevel is the privilege level the processor executes at.
type ExceptionLevel uint8

const (
	EL0 ExceptionLevel = iota // least privileged, applications
	EL1                       // kernel
	EL2                       // hypervisor
	EL3                       // secure monitor
)

func (el ExceptionLevel) String() string {
	return [...]string{"EL0", "EL1", "EL2", "EL3"}[el&3]
}

// LevelOf decodes the value of the CurrentEL register.
func LevelOf(currentEL uint64) ExceptionLevel {
	return ExceptionLevel(currentEL >> 2 & 3)
}

// Registers gives read access to the exception syndrome registers of the
// current exception level. Reads have no side effects.
type Registers interface {
	ExceptionLevel() ExceptionLevel
	ESR() uint64 // exception syndrome
	FAR() uint64 // fault address
	ELR() uint64 // exception return address
}

//go:build noos

package machine

// SysRegs reads the EL1 syndrome registers of the executing core.
type SysRegs struct{}

//go:nosplit
func (SysRegs) ExceptionLevel() ExceptionLevel { return LevelOf(currentEL()) }

//go:nosplit
func (SysRegs) ESR() uint64 { return esrEL1() }

//go:nosplit
func (SysRegs) FAR() uint64 { return farEL1() }

//go:nosplit
func (SysRegs) ELR() uint64 { return elrEL1() }

// Implemented in sysregs_arm64.s
func currentEL() uint64
func esrEL1() uint64
func farEL1() uint64
func elrEL1() uint64

// Halt parks the core in a low power loop with interrupts masked. It never
// returns.
func Halt()

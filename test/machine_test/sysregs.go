//go:build noos && arm64

package machine_test

import (
	"testing"

	"github.com/clktmr/arm64fatal/machine"
)

func TestExceptionLevel(t *testing.T) {
	if el := (machine.SysRegs{}).ExceptionLevel(); el != machine.EL1 {
		t.Fatalf("expected %v, got %v", machine.EL1, el)
	}
}

// Reading the syndrome registers must not trap, even if no exception was
// taken yet.
func TestSyndromeReadable(t *testing.T) {
	var regs machine.Registers = machine.SysRegs{}
	esr, far, elr := regs.ESR(), regs.FAR(), regs.ELR()
	t.Logf("ESR %#x FAR %#x ELR %#x", esr, far, elr)
}

//go:build noos

package fatal

import (
	"github.com/clktmr/arm64fatal/klog"
	"github.com/clktmr/arm64fatal/machine"
)

func init() {
	Default.Registers = machine.SysRegs{}
	Default.Sink = klog.NewWriter(machine.DefaultWriter)
	Default.Policy = HaltPolicy{}
}

// HaltPolicy stops the executing core. It's the policy of Default until the
// kernel installs its own.
type HaltPolicy struct{}

func (HaltPolicy) FatalError(Reason, *ESF) { machine.Halt() }

//go:build noos && arm64

package fatal_test

import (
	"strings"
	"testing"

	"github.com/clktmr/arm64fatal/fatal"
	"github.com/clktmr/arm64fatal/klog"
	"github.com/clktmr/arm64fatal/machine"
)

type halted struct{}

// report runs a Reporter on the executing core's registers.
func report(t *testing.T, reason fatal.Reason, esf *fatal.ESF) (sink *klog.Recorder) {
	t.Helper()
	sink = &klog.Recorder{}
	r := &fatal.Reporter{
		Registers: machine.SysRegs{},
		Sink:      sink,
		Policy:    fatal.PolicyFunc(func(fatal.Reason, *fatal.ESF) { panic(halted{}) }),
	}
	defer func() {
		if v := recover(); v != (halted{}) {
			t.Fatalf("expected policy to halt, got %v", v)
		}
	}()
	r.Report(reason, esf)
	return
}

func TestReportLive(t *testing.T) {
	lines := report(t, fatal.KernelOops, &fatal.ESF{}).Texts()
	if len(lines) < 3+fatal.NumRegs/2 {
		t.Fatalf("expected syndrome registers and frame, got %q", lines)
	}
	for i, label := range []string{fatal.LabelESR, fatal.LabelFAR, fatal.LabelELR} {
		if !strings.HasPrefix(lines[i], label+"0x") {
			t.Errorf("line %d: expected %s, got %q", i, label, lines[i])
		}
	}
	if last := lines[len(lines)-1]; last != "x18: 0x0000000000000000  x30: 0x0000000000000000" {
		t.Errorf("unexpected last line %q", last)
	}
}

func TestReportSpuriousLive(t *testing.T) {
	if lines := report(t, fatal.SpuriousIRQ, nil).Lines; len(lines) != 0 {
		t.Fatalf("expected no lines, got %d", len(lines))
	}
}

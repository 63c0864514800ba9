package report

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/clktmr/arm64fatal/esr"
	"github.com/clktmr/arm64fatal/fatal"
	"github.com/clktmr/arm64fatal/klog"
	"github.com/clktmr/arm64fatal/machine"
)

type regs struct {
	el            machine.ExceptionLevel
	esr, far, elr uint64
}

func (r regs) ExceptionLevel() machine.ExceptionLevel { return r.el }
func (r regs) ESR() uint64                            { return r.esr }
func (r regs) FAR() uint64                            { return r.far }
func (r regs) ELR() uint64                            { return r.elr }

var errHalt = errors.New("halt")

// writeReport writes a report the way the kernel does.
func writeReport(t *testing.T, w io.Writer, hw regs, reason fatal.Reason, esf *fatal.ESF) {
	t.Helper()
	r := &fatal.Reporter{
		Registers: hw,
		Sink:      klog.NewWriter(w),
		Policy:    fatal.PolicyFunc(func(fatal.Reason, *fatal.ESF) { panic(errHalt) }),
	}
	defer func() {
		if v := recover(); v != errHalt {
			t.Fatalf("expected halt, got %v", v)
		}
	}()
	r.Report(reason, esf)
}

func testESF(base uint64) *fatal.ESF {
	esf := &fatal.ESF{}
	for i := range esf.Regs {
		esf.Regs[i] = base + uint64(i)
	}
	return esf
}

var dataAbort = regs{
	el:  machine.EL1,
	esr: 0x9600_0045,
	far: 0x0000_0000_dead_beef,
	elr: 0xffff_0000_0008_1234,
}

func TestParseRoundTrip(t *testing.T) {
	var log bytes.Buffer
	log.WriteString("*** Booting kernel ***\n")
	writeReport(t, &log, dataAbort, fatal.CPUException, testESF(0x100))
	writeReport(t, &log, regs{el: machine.EL0}, fatal.KernelOops, testESF(0x200))
	writeReport(t, &log, regs{el: machine.EL1, esr: 0x3f << 26, elr: 0x42}, fatal.KernelPanic, nil)
	log.WriteString("fatal error: halted\n")
	writeReport(t, &log, dataAbort, fatal.SpuriousIRQ, testESF(0x300))

	reports, err := Parse(&log)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Report{
		{
			Line:       2,
			SysRegs:    true,
			Syndrome:   0x9600_0045,
			FaultAddr:  0xdead_beef,
			ReturnAddr: 0xffff_0000_0008_1234,
			Cause:      "Data Abort taken without a change in Exception level",
			ESF:        testESF(0x100),
		},
		{Line: 16, ESF: testESF(0x200)},
		{Line: 26, SysRegs: true, Syndrome: 0x3f << 26, ReturnAddr: 0x42},
		{Line: 30, ESF: testESF(0x300)},
	}
	if diff := cmp.Diff(expected, reports); diff != "" {
		t.Fatalf("reports mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePrefixes(t *testing.T) {
	tests := map[string]string{
		"plain": "ESR_ELn: 0x0000000096000045\n" +
			"FAR_ELn: 0x00000000deadbeef\n" +
			"ELR_ELn: 0xffff000000081234\n" +
			"Data Abort taken without a change in Exception level\n",
		"minimalCRLF": "E: ESR_ELn: 0x0000000096000045\r\n" +
			"E: FAR_ELn: 0x00000000deadbeef\r\n" +
			"E: ELR_ELn: 0xffff000000081234\r\n" +
			"E: Data Abort taken without a change in Exception level\r\n",
		"header": "[00:00:00.012,000] <err> os: ESR_ELn: 0x0000000096000045\n" +
			"[00:00:00.012,000] <err> os: FAR_ELn: 0x00000000deadbeef\n" +
			"[00:00:00.012,000] <err> os: ELR_ELn: 0xffff000000081234\n" +
			"[00:00:00.012,000] <err> os: Data Abort taken without a change in Exception level\n",
	}
	expected := []Report{{
		Line:       1,
		SysRegs:    true,
		Syndrome:   0x9600_0045,
		FaultAddr:  0xdead_beef,
		ReturnAddr: 0xffff_0000_0008_1234,
		Cause:      "Data Abort taken without a change in Exception level",
	}}
	for name, log := range tests {
		t.Run(name, func(t *testing.T) {
			reports, err := Parse(strings.NewReader(log))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(expected, reports); diff != "" {
				t.Fatalf("reports mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseIgnored(t *testing.T) {
	log := "Unknown reason\n" +
		"x-ray: enabled\n" +
		"x1 is a register\n" +
		"PASS\n"
	reports, err := Parse(strings.NewReader(log))
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 0 {
		t.Fatalf("expected no reports, got %v", reports)
	}
}

func TestParseMalformed(t *testing.T) {
	tests := map[string]string{
		"badHex":      "ESR_ELn: 0xzz\n",
		"noHexPrefix": "FAR_ELn: 1234\n",
		"shortDump":   "x0:  0x0000000000000001  x1:\n",
		"unsavedReg":  "x19: 0x0000000000000001  x20: 0x0000000000000002\n",
		"overflow":    "ELR_ELn: 0x10000000000000000\n",
	}
	for name, log := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader("boot\n" + log))
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected %v, got %v", ErrMalformed, err)
			}
			if !strings.HasPrefix(err.Error(), "line 2: ") {
				t.Fatalf("expected line number in error, got %q", err)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	a := Report{SysRegs: true, Syndrome: 0x9600_0045, FaultAddr: 8, ReturnAddr: 0x1000}
	b := a
	b.Syndrome = 0x9600_0047 // same class, different ISS
	b.ESF = testESF(0)
	c := a
	c.ReturnAddr = 0x1004

	if a.Key() != b.Key() || a.Fingerprint() != b.Fingerprint() {
		t.Fatal("expected same fingerprint for same fault")
	}
	if a.Key() == c.Key() {
		t.Fatal("expected different key for different return address")
	}
	if a.Key().Class != esr.Class(0x25) {
		t.Fatalf("expected class 0x25, got %#x", a.Key().Class)
	}
}

func TestSummary(t *testing.T) {
	tests := map[string]struct {
		r    Report
		want string
	}{
		"cause": {
			Report{SysRegs: true, Syndrome: 0x3c << 26, ReturnAddr: 0x80, Cause: "BRK instruction execution in AArch64 state."},
			"BRK instruction execution in AArch64 state. at 0x0000000000000080, fault address 0x0000000000000000",
		},
		"noCause": {
			Report{SysRegs: true, Syndrome: 0x3f << 26},
			"exception class 0x3f at 0x0000000000000000, fault address 0x0000000000000000",
		},
		"noSysRegs": {Report{ESF: testESF(0)}, "no syndrome registers"},
	}
	for name, tc := range tests {
		if got := tc.r.Summary(); got != tc.want {
			t.Errorf("%s: expected %q, got %q", name, tc.want, got)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := map[string]bool{
		"ESR_ELn: 0x0000000096000045":                             true,
		"E: FAR_ELn: 0x0000000000000000\r":                        true,
		"[00:00:00.012,000] <err> os: ELR_ELn: 0x0000000000000000": true,
		"E: x0:  0x0000000000000000  x1:  0x0000000000000000":     true,
		"panic: runtime error: index out of range":                true,
		"fatal error: unexpected signal":                          true,
		">>> FATAL ERROR 3: Kernel oops":                          true,
		"Data Abort taken without a change in Exception level":    false,
		"x-ray: enabled":                                          false,
		"PASS":                                                    false,
		"":                                                        false,
	}
	for line, want := range tests {
		if got := Detect(line); got != want {
			t.Errorf("%q: expected %v, got %v", line, want, got)
		}
	}
}

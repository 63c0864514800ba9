//go:build noos && arm64

// Test binary for tests which need real hardware. Boot it with
//
//	fatalgo run test.elf
package main

import (
	"embedded/rtos"
	"os"
	"reflect"
	"runtime"
	"syscall"
	"testing"

	"github.com/clktmr/arm64fatal/machine"
	"github.com/clktmr/arm64fatal/test/fatal_test"
	"github.com/clktmr/arm64fatal/test/machine_test"

	"github.com/embeddedgo/fs/termfs"
)

func init() {
	console := termfs.NewLight("termfs", nil, machine.DefaultWriter)
	rtos.Mount(console, "/dev/console")

	var err error
	os.Stdout, err = os.OpenFile("/dev/console", syscall.O_WRONLY, 0)
	if err != nil {
		panic(err)
	}
	os.Stderr = os.Stdout
}

func main() {
	os.Args = append(os.Args, "-test.v")
	testing.Main(
		matchAll,
		[]testing.InternalTest{
			newInternalTest(machine_test.TestExceptionLevel),
			newInternalTest(machine_test.TestSyndromeReadable),
			newInternalTest(fatal_test.TestReportLive),
			newInternalTest(fatal_test.TestReportSpuriousLive),
		},
		nil, nil,
	)
}

func matchAll(_ string, _ string) (bool, error) { return true, nil }

func newInternalTest(testFn func(*testing.T)) testing.InternalTest {
	return testing.InternalTest{
		Name: runtime.FuncForPC(reflect.ValueOf(testFn).Pointer()).Name(),
		F:    testFn,
	}
}

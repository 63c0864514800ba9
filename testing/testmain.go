//go:build noos

// Package testing provides utilities for tests running on aarch64 bare metal.
package testing

import (
	"embedded/rtos"
	"os"
	"syscall"
	"testing"

	"github.com/clktmr/arm64fatal/machine"

	"github.com/embeddedgo/fs/termfs"
)

// TestMain should be used as TestMain for tests running on the target. It
// redirects stdout and stderr to the failsafe UART.
func TestMain(m *testing.M) {
	console := termfs.NewLight("termfs", nil, machine.DefaultWriter)
	rtos.Mount(console, "/dev/console")

	var err error
	os.Stdout, err = os.OpenFile("/dev/console", syscall.O_WRONLY, 0)
	if err != nil {
		panic(err)
	}
	os.Stderr = os.Stdout

	// There is no way to pass flags to a test binary booted by an emulator.
	os.Args = append(os.Args, "-test.v")

	os.Exit(m.Run())
}

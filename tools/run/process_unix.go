//go:build unix

package run

import (
	"os"
	"syscall"
)

// The emulator runs as session leader of the pty, so signal its whole process
// group.
func processGroupKill(p *os.Process) error {
	return syscall.Kill(-p.Pid, syscall.SIGINT)
}

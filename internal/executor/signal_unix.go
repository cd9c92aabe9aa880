//go:build unix || darwin || linux
// +build unix darwin linux

package executor

import (
	"os"
	"syscall"
)

// terminate sends SIGTERM so a cancelled formatter can exit gracefully; the
// dispatcher's WaitDelay escalates to a kill if it does not.
func terminate(proc *os.Process) error {
	if proc == nil {
		return nil
	}
	return proc.Signal(syscall.SIGTERM)
}

//go:build windows
// +build windows

package executor

import "os"

// terminate kills the process outright; Windows has no SIGTERM equivalent.
func terminate(proc *os.Process) error {
	if proc == nil {
		return nil
	}
	return proc.Kill()
}

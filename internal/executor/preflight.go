package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// Preflight verifies the formatter executable works at all by running
// `--version` with stdout discarded. A failure here aborts the run before
// any file is processed.
func Preflight(ctx context.Context, cfg InvocationConfig) error {
	argv := []string{cfg.Executable, "--version"}
	cmd := commandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExpectedError{
				Message: fmt.Sprintf("Command '%s' returned non-zero exit status %d",
					cmdline(argv), exitErr.ExitCode()),
			}
		}
		return &ExpectedError{
			Message: fmt.Sprintf("Command '%s' failed to start: %v", cmdline(argv), err),
		}
	}
	return nil
}

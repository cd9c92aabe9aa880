package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime/debug"
	"strings"
	"time"

	"clangfmt-wrapper/internal/diffutil"
	"clangfmt-wrapper/internal/utils"
)

// forceKillWait is how long a cancelled subprocess gets to react to the
// termination signal before it is killed outright.
const forceKillWait = 5 * time.Second

// commandContext creates subprocesses; swappable via SetCommandContextFn.
var commandContext = exec.CommandContext

// BuildArgs returns the clang-format invocation for one file.
func BuildArgs(cfg InvocationConfig, path string) []string {
	args := []string{cfg.Executable}
	if cfg.InPlace {
		args = append(args, "-i")
	}
	args = append(args, path)
	if style := strings.TrimSpace(cfg.FallbackStyle); style != "" {
		args = append(args, "--fallback-style", style)
	}
	return args
}

// FormatFile processes a single file: read the original, run the formatter,
// and classify the result. It returns exactly one Outcome or exactly one
// typed error. Failures that are part of normal CI life (unreadable file,
// missing executable, non-zero formatter exit) come back as *ExpectedError;
// anything else, panics included, as *UnexpectedError with a stack trace.
//
// In in-place mode the formatter rewrites the file on disk; no other part of
// the program mutates files.
func FormatFile(ctx context.Context, cfg InvocationConfig, path string) (outcome *Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome = nil
			err = wrapUnexpected(path, r)
		}
	}()

	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, &ExpectedError{Message: readErr.Error()}
	}
	original := diffutil.Lines(string(data))

	argv := BuildArgs(cfg, path)
	if cfg.DryRun {
		return &Outcome{Kind: OutcomeDryRun, Argv: argv}, nil
	}

	cmd := commandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = cfg.Workplace
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Cancel = func() error { return terminate(cmd.Process) }
	cmd.WaitDelay = forceKillWait

	logInfo(fmt.Sprintf("invoking: %s", cmdline(argv)))
	if startErr := cmd.Start(); startErr != nil {
		return nil, &ExpectedError{
			Message: fmt.Sprintf("Command '%s' failed to start: %v", cmdline(argv), startErr),
		}
	}

	waitErr := cmd.Wait()
	stderrLines := splitOutput(stderr.String())
	logStderr(path, stderrLines)

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return nil, &ExpectedError{
				Message: fmt.Sprintf("Command '%s' returned non-zero exit status %d",
					cmdline(argv), exitErr.ExitCode()),
				Stderr: stderrLines,
			}
		}
		return nil, &UnexpectedError{
			Message: fmt.Sprintf("%s: %v", path, waitErr),
			Cause:   waitErr,
			Stack:   string(debug.Stack()),
		}
	}

	if cfg.InPlace {
		return &Outcome{Kind: OutcomeWritten, Stderr: stderrLines}, nil
	}

	diff, diffErr := diffutil.Unified(path, original, diffutil.Lines(stdout.String()))
	if diffErr != nil {
		return nil, &UnexpectedError{
			Message: fmt.Sprintf("%s: %v", path, diffErr),
			Cause:   diffErr,
			Stack:   string(debug.Stack()),
		}
	}
	if len(diff) == 0 {
		return &Outcome{Kind: OutcomeClean, Stderr: stderrLines}, nil
	}
	return &Outcome{Kind: OutcomeDiff, Diff: diff, Stderr: stderrLines}, nil
}

func wrapUnexpected(path string, r any) *UnexpectedError {
	cause, _ := r.(error)
	return &UnexpectedError{
		Message: fmt.Sprintf("%s: panic: %v", path, r),
		Cause:   cause,
		Stack:   string(debug.Stack()),
	}
}

func cmdline(argv []string) string {
	return strings.Join(argv, " ")
}

// splitOutput breaks captured subprocess output into lines without trailing
// newlines, preserving interior blank lines.
func splitOutput(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

const stderrLogLineLimit = 500

func logStderr(path string, lines []string) {
	for _, line := range lines {
		logInfo(fmt.Sprintf("%s: stderr: %s", path,
			utils.SafeTruncate(utils.SanitizeOutput(line), stderrLogLineLimit)))
	}
}

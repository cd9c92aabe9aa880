package executor

import (
	"context"
	"os/exec"
)

func SetCommandContextFn(fn func(context.Context, string, ...string) *exec.Cmd) (restore func()) {
	prev := commandContext
	if fn != nil {
		commandContext = fn
	} else {
		commandContext = exec.CommandContext
	}
	return func() { commandContext = prev }
}

func SetFormatFileFn(fn func(context.Context, InvocationConfig, string) (*Outcome, error)) (restore func()) {
	prev := formatFileFn
	if fn != nil {
		formatFileFn = fn
	} else {
		formatFileFn = FormatFile
	}
	return func() { formatFileFn = prev }
}

package executor

// ExpectedError is a recoverable per-file failure: unreadable input, a
// formatter binary that cannot be started, or a non-zero formatter exit.
// It escalates the run status to trouble but does not stop other workers.
type ExpectedError struct {
	Message string
	Stderr  []string
}

func (e *ExpectedError) Error() string { return e.Message }

// UnexpectedError wraps any other failure inside the invocation path,
// including panics. It carries a stack trace for diagnostics and makes the
// dispatcher stop handing out further work: if the invocation mechanism
// itself is broken, processing the remaining files would only produce noise.
type UnexpectedError struct {
	Message string
	Cause   error
	Stack   string
}

func (e *UnexpectedError) Error() string { return e.Message }

func (e *UnexpectedError) Unwrap() error { return e.Cause }

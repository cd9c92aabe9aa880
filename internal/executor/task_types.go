package executor

// InvocationConfig is the read-only configuration shared by all workers.
type InvocationConfig struct {
	Executable    string
	Workplace     string // subprocess working directory
	InPlace       bool
	FallbackStyle string
	DryRun        bool
}

// OutcomeKind discriminates the variants of a successful invocation.
type OutcomeKind int

const (
	// OutcomeClean means the reformatted content equals the original.
	OutcomeClean OutcomeKind = iota
	// OutcomeDiff means reformatting would change the file; Diff holds the
	// unified diff. Only produced in check (non-in-place) mode.
	OutcomeDiff
	// OutcomeWritten means the file was rewritten on disk (in-place mode).
	OutcomeWritten
	// OutcomeDryRun means no subprocess ran; Argv holds the command that
	// would have been executed.
	OutcomeDryRun
)

// Outcome is the result of processing one file.
type Outcome struct {
	Kind   OutcomeKind
	Diff   []string // unified diff lines, OutcomeDiff only
	Stderr []string // formatter stderr, surfaced for every kind
	Argv   []string // planned invocation, OutcomeDryRun only
}

// FileResult pairs a file with its outcome or its typed failure. Exactly one
// of Outcome and Err is set.
type FileResult struct {
	Path    string
	Outcome *Outcome
	Err     error
}

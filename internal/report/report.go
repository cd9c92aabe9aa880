// Package report folds the dispatcher's result stream into user-facing
// output and a single process exit status.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"clangfmt-wrapper/internal/executor"
)

// Status is the process exit status. It only ever escalates: Success <
// DiffFound < Trouble, whatever order results arrive in.
type Status int

const (
	StatusSuccess Status = 0
	StatusDiff    Status = 1
	StatusTrouble Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusDiff:
		return "diff"
	case StatusTrouble:
		return "trouble"
	default:
		return "success"
	}
}

// Escalate returns the worse of s and other.
func (s Status) Escalate(other Status) Status {
	if other > s {
		return other
	}
	return s
}

// Options configures an Aggregator.
type Options struct {
	Prog      string
	Quiet     bool // suppress diff output; the exit status still reflects diffs
	ColorDiff bool // colorize diffs on stdout
	ColorErr  bool // colorize trouble messages on stderr
	Stdout    io.Writer
	Stderr    io.Writer
}

// Aggregator is the single consumer of the result stream. It owns the only
// mutable run-wide state (the status accumulator and summary counters), so
// workers never need locking.
type Aggregator struct {
	opts    Options
	palette *palette
	status  Status
	halted  bool
	halt    func()
	summary *Summary
}

// NewAggregator builds an Aggregator. halt is invoked once if an unexpected
// failure arrives, telling the dispatcher to stop handing out work.
func NewAggregator(opts Options, halt func()) *Aggregator {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return &Aggregator{
		opts:    opts,
		palette: newPalette(opts.ColorDiff, opts.ColorErr),
		halt:    halt,
		summary: newSummary(),
	}
}

// Consume drains the result stream and returns the final status. Results
// arriving after an unexpected failure are discarded unreported, matching the
// fail-fast contract: completed work before the halt stays valid, in-flight
// work cut down by the halt does not surface.
func (a *Aggregator) Consume(results <-chan executor.FileResult) Status {
	for res := range results {
		if a.halted {
			continue
		}
		a.observe(res)
	}
	a.summary.ExitStatus = int(a.status)
	return a.status
}

// Status returns the worst status seen so far.
func (a *Aggregator) Status() Status { return a.status }

// Summary returns the machine-readable run summary.
func (a *Aggregator) Summary() *Summary { return a.summary }

func (a *Aggregator) observe(res executor.FileResult) {
	var unexpected *executor.UnexpectedError
	var expected *executor.ExpectedError

	switch {
	case errors.As(res.Err, &unexpected):
		a.printTrouble(unexpected.Error())
		fmt.Fprint(a.opts.Stderr, unexpected.Stack)
		a.status = a.status.Escalate(StatusTrouble)
		a.summary.recordFailure(res.Path, unexpected.Error())
		// Something is wrong with the invocation mechanism itself; stop
		// scheduling and ignore whatever is still in flight.
		a.halted = true
		if a.halt != nil {
			a.halt()
		}
	case errors.As(res.Err, &expected):
		a.printTrouble(expected.Error())
		a.writeStderrLines(expected.Stderr)
		a.status = a.status.Escalate(StatusTrouble)
		a.summary.recordFailure(res.Path, expected.Error())
	case res.Err != nil:
		a.printTrouble(res.Err.Error())
		a.status = a.status.Escalate(StatusTrouble)
		a.summary.recordFailure(res.Path, res.Err.Error())
	default:
		a.observeOutcome(res.Path, res.Outcome)
	}
}

func (a *Aggregator) observeOutcome(path string, outcome *executor.Outcome) {
	// Stderr always comes before the file's diff or dry-run line.
	a.writeStderrLines(outcome.Stderr)

	switch outcome.Kind {
	case executor.OutcomeDryRun:
		fmt.Fprintln(a.opts.Stdout, strings.Join(outcome.Argv, " "))
		a.summary.recordClean(path)
	case executor.OutcomeWritten:
		// In-place rewrite is a success, not a "diff found" condition.
		a.summary.recordWritten(path)
	case executor.OutcomeDiff:
		if !a.opts.Quiet {
			a.printDiff(outcome.Diff)
		}
		a.status = a.status.Escalate(StatusDiff)
		a.summary.recordChanged(path)
	default:
		a.summary.recordClean(path)
	}
}

func (a *Aggregator) writeStderrLines(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(a.opts.Stderr, line)
	}
}

func (a *Aggregator) printDiff(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(a.opts.Stdout, a.palette.diffLine(line))
	}
}

func (a *Aggregator) printTrouble(message string) {
	PrintTrouble(a.opts.Stderr, a.opts.Prog, message, a.opts.ColorErr)
}

// PrintTrouble writes the single-line error report used for every failure:
// "prog: error: message", with the error token highlighted when color is on.
func PrintTrouble(w io.Writer, prog, message string, colored bool) {
	errText := "error:"
	if colored {
		errText = troubleColor().Sprint(errText)
	}
	fmt.Fprintf(w, "%s: %s %s\n", prog, errText, message)
}

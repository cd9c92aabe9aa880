package report

import (
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Summary is the optional machine-readable run report emitted by
// --summary-json. It lives only for the duration of the run; nothing is
// persisted between runs.
type Summary struct {
	RunID      string         `json:"run_id"`
	Files      int            `json:"files"`
	Clean      int            `json:"clean"`
	Changed    int            `json:"changed"`
	Written    int            `json:"written"`
	Failed     int            `json:"failed"`
	ExitStatus int            `json:"exit_status"`
	Entries    []SummaryEntry `json:"entries,omitempty"`
}

// SummaryEntry records the per-file result.
type SummaryEntry struct {
	Path   string `json:"path"`
	Result string `json:"result"`
	Error  string `json:"error,omitempty"`
}

func newSummary() *Summary {
	return &Summary{RunID: uuid.NewString()}
}

func (s *Summary) recordClean(path string) {
	s.add(SummaryEntry{Path: path, Result: "clean"})
	s.Clean++
}

func (s *Summary) recordChanged(path string) {
	s.add(SummaryEntry{Path: path, Result: "changed"})
	s.Changed++
}

func (s *Summary) recordWritten(path string) {
	s.add(SummaryEntry{Path: path, Result: "written"})
	s.Written++
}

func (s *Summary) recordFailure(path, message string) {
	s.add(SummaryEntry{Path: path, Result: "failed", Error: message})
	s.Failed++
}

func (s *Summary) add(entry SummaryEntry) {
	s.Entries = append(s.Entries, entry)
	s.Files++
}

// MarshalIndent renders the summary as indented JSON.
func (s *Summary) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

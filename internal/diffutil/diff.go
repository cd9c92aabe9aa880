// Package diffutil renders unified diffs between original and reformatted
// file content. It is pure: no I/O, safe from any goroutine.
package diffutil

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the amount of unchanged context shown around each hunk.
const contextLines = 3

// Lines splits file content into newline-terminated lines in the form the
// differ expects. Both sides of a comparison must be split the same way.
func Lines(content string) []string {
	return difflib.SplitLines(content)
}

// Unified returns the unified diff between the original and reformatted line
// sequences of path, without trailing newlines, or an empty slice when the
// content is identical. The before side is labeled "{path}\t(original)" and
// the after side "{path}\t(reformatted)".
func Unified(path string, original, reformatted []string) ([]string, error) {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        original,
		B:        reformatted,
		FromFile: path + "\t(original)",
		ToFile:   path + "\t(reformatted)",
		Context:  contextLines,
	})
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines, nil
}

package logger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Logger writes the per-run JSON log file. Diagnostics go to the file, not
// the console: stdout and stderr belong to diffs, formatter stderr and
// trouble messages.
type Logger struct {
	file *os.File
	zl   zerolog.Logger
	path string
}

// NewLogger creates the run's log file `clangfmt-wrapper-<pid>.log` in the
// temp directory.
func NewLogger() (*Logger, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("%s-%d.log", WrapperName, os.Getpid()))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, err
	}
	zl := zerolog.New(zerolog.SyncWriter(file)).With().Timestamp().Logger()
	return &Logger{file: file, zl: zl, path: path}, nil
}

// Path returns the log file location.
func (l *Logger) Path() string { return l.path }

func (l *Logger) Debug(msg string) { l.zl.Debug().Msg(msg) }

func (l *Logger) Info(msg string) { l.zl.Info().Msg(msg) }

func (l *Logger) Warn(msg string) { l.zl.Warn().Msg(msg) }

func (l *Logger) Error(msg string) { l.zl.Error().Msg(msg) }

// Flush forces buffered log data to disk.
func (l *Logger) Flush() {
	if l == nil || l.file == nil {
		return
	}
	_ = l.file.Sync()
}

// Close closes the file handle. The file itself is kept; removal is an
// explicit decision made by the caller once the run outcome is known.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// RemoveLogFile deletes the log file from disk.
func (l *Logger) RemoveLogFile() error {
	if l == nil {
		return nil
	}
	return removeLogFileFn(l.path)
}

// ExtractRecentErrors returns up to n formatted error-level entries from the
// tail of the log file, oldest first. Unparseable lines are skipped.
func (l *Logger) ExtractRecentErrors(n int) []string {
	if l == nil || n <= 0 {
		return nil
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry struct {
			Level   string `json:"level"`
			Time    string `json:"time"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		if entry.Level != zerolog.LevelErrorValue {
			continue
		}
		entries = append(entries, fmt.Sprintf("%s ERROR %s", entry.Time, entry.Message))
	}
	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries
}

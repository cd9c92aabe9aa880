package logger

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CleanupStats reports what a stale-log sweep did.
type CleanupStats struct {
	Scanned      int
	Deleted      int
	Kept         int
	Errors       int
	DeletedFiles []string
	KeptFiles    []string
}

// Filesystem and process probes, swappable for tests.
var (
	processRunningCheck = isProcessRunning
	processStartTimeFn  = getProcessStartTime
	removeLogFileFn     = os.Remove
	globLogFiles        = filepath.Glob
	fileStatFn          = os.Lstat
)

// CleanupOldLogs removes log files left behind by runs whose process is
// gone. A file is stale when its pid no longer runs, or when the pid was
// reused: the file predates the owning process's start time. The current
// process's own file is always kept.
func CleanupOldLogs() (CleanupStats, error) {
	var stats CleanupStats

	pattern := filepath.Join(os.TempDir(), WrapperName+"-*.log")
	paths, err := globLogFiles(pattern)
	if err != nil {
		return stats, err
	}

	self := os.Getpid()
	for _, path := range paths {
		stats.Scanned++

		pid, ok := pidFromLogName(filepath.Base(path))
		if !ok {
			stats.Errors++
			continue
		}
		if pid == self || !isStale(path, pid) {
			stats.Kept++
			stats.KeptFiles = append(stats.KeptFiles, path)
			continue
		}

		if err := removeLogFileFn(path); err != nil {
			stats.Errors++
			continue
		}
		stats.Deleted++
		stats.DeletedFiles = append(stats.DeletedFiles, path)
	}

	return stats, nil
}

func isStale(path string, pid int) bool {
	if !processRunningCheck(pid) {
		return true
	}
	// The pid is alive, but it may be a new process that reused the number.
	info, err := fileStatFn(path)
	if err != nil {
		return false
	}
	start := processStartTimeFn(pid)
	return !start.IsZero() && info.ModTime().Before(start)
}

func pidFromLogName(name string) (int, bool) {
	raw, ok := strings.CutPrefix(name, WrapperName+"-")
	if !ok {
		return 0, false
	}
	raw, ok = strings.CutSuffix(raw, ".log")
	if !ok {
		return 0, false
	}
	pid, err := strconv.Atoi(raw)
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

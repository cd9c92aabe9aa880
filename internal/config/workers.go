package config

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
)

// maxJobsLimit caps -j to keep goroutine and subprocess counts sane even if a
// caller passes something absurd.
const maxJobsLimit = 100

// cpuCountFn is swappable for tests.
var cpuCountFn = logicalCPUCount

func logicalCPUCount() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// ResolveJobs turns the requested -j value into the effective worker count.
// 0 means auto: logical CPUs + 1. The result is clamped to the number of
// tasks so a short file list never spawns idle workers, and is never below 1.
func ResolveJobs(requested, taskCount int) int {
	jobs := requested
	if jobs <= 0 {
		jobs = cpuCountFn() + 1
	}
	if jobs > maxJobsLimit {
		jobs = maxJobsLimit
	}
	if taskCount > 0 && jobs > taskCount {
		jobs = taskCount
	}
	if jobs < 1 {
		jobs = 1
	}
	return jobs
}

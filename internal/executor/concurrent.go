package executor

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// formatFileFn is swappable for dispatcher tests.
var formatFileFn = FormatFile

// ExecuteConcurrent processes paths over a bounded pool of jobs workers and
// returns a channel carrying one FileResult per started task, closed when the
// run is over.
//
// With jobs == 1 execution is strictly sequential and results arrive in
// file-list order; with more workers results arrive in completion order and
// no cross-file ordering is guaranteed. Every started task yields exactly one
// result. After an unexpected failure the pool context is cancelled:
// queued-but-unstarted tasks are never dispatched and in-flight subprocesses
// are terminated best-effort through their context.
func ExecuteConcurrent(ctx context.Context, cfg InvocationConfig, paths []string, jobs int) <-chan FileResult {
	results := make(chan FileResult)
	if jobs <= 1 {
		go runSequential(ctx, cfg, paths, results)
		return results
	}

	poolCtx, cancel := context.WithCancel(ctx)
	tasks := make(chan string)

	var wg sync.WaitGroup
	wg.Add(jobs)
	for i := 0; i < jobs; i++ {
		go func() {
			defer wg.Done()
			runWorker(poolCtx, cancel, cfg, tasks, results)
		}()
	}

	go func() {
		defer close(tasks)
		for _, path := range paths {
			select {
			case <-poolCtx.Done():
				return
			case tasks <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		cancel()
		close(results)
	}()

	return results
}

// runWorker pulls tasks until the queue drains or the pool is cancelled. On
// an unexpected failure it cancels the pool and stops pulling; the failure
// itself is still delivered.
func runWorker(ctx context.Context, cancel context.CancelFunc, cfg InvocationConfig, tasks <-chan string, results chan<- FileResult) {
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-tasks:
			if !ok {
				return
			}
			res := runOne(ctx, cfg, path)
			halt := isUnexpected(res.Err)
			if halt {
				cancel()
			}
			results <- res
			if halt {
				return
			}
		}
	}
}

// runSequential executes in the dispatching goroutine itself: no pool
// overhead and simpler diagnostics when a single job is requested.
func runSequential(ctx context.Context, cfg InvocationConfig, paths []string, results chan<- FileResult) {
	defer close(results)
	for _, path := range paths {
		if ctx.Err() != nil {
			return
		}
		res := runOne(ctx, cfg, path)
		results <- res
		if isUnexpected(res.Err) {
			return
		}
	}
}

func runOne(ctx context.Context, cfg InvocationConfig, path string) FileResult {
	logInfo(fmt.Sprintf("processing %s", path))
	outcome, err := formatFileFn(ctx, cfg, path)
	if err != nil {
		logError(fmt.Sprintf("%s: %v", path, err))
		return FileResult{Path: path, Err: err}
	}
	return FileResult{Path: path, Outcome: outcome}
}

func isUnexpected(err error) bool {
	var unexpected *UnexpectedError
	return errors.As(err, &unexpected)
}

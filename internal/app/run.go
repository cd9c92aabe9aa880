package wrapper

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	config "clangfmt-wrapper/internal/config"
	discovery "clangfmt-wrapper/internal/discovery"
	executor "clangfmt-wrapper/internal/executor"
	report "clangfmt-wrapper/internal/report"
)

// Output streams, swappable in tests.
var (
	stdoutWriter io.Writer = os.Stdout
	stderrWriter io.Writer = os.Stderr
)

// runFormat executes one full run: preflight, discovery, parallel formatting
// and aggregation. The returned int is the process exit code: 0 clean, 1
// diff found, 2 trouble.
func runFormat(cfg *config.Config) int {
	colorDiff, colorErr := resolveColor(cfg.ColorMode)

	inv := InvocationConfig{
		Executable:    cfg.Executable,
		Workplace:     cfg.Workplace,
		InPlace:       cfg.InPlace,
		FallbackStyle: cfg.FallbackStyle,
		DryRun:        cfg.DryRun,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := executor.Preflight(ctx, inv); err != nil {
		logError("preflight failed: " + err.Error())
		report.PrintTrouble(stderrWriter, wrapperName, err.Error(), colorErr)
		return int(report.StatusTrouble)
	}

	excludes, err := discovery.ExcludesFromFile(filepath.Join(cfg.Workplace, config.DefaultIgnoreFile))
	if err != nil {
		logError("ignore file unreadable: " + err.Error())
		report.PrintTrouble(stderrWriter, wrapperName, err.Error(), colorErr)
		return int(report.StatusTrouble)
	}
	excludes = append(excludes, cfg.Excludes...)

	files, err := discovery.ListFiles(cfg.Workplace, cfg.Extensions, excludes)
	if err != nil {
		logError("discovery failed: " + err.Error())
		report.PrintTrouble(stderrWriter, wrapperName, err.Error(), colorErr)
		return int(report.StatusTrouble)
	}
	if len(files) == 0 {
		logInfo("no files to process")
		return int(report.StatusSuccess)
	}

	jobs := config.ResolveJobs(cfg.Jobs, len(files))
	logInfo(fmt.Sprintf("formatting %d file(s) with %d worker(s)", len(files), jobs))

	results := executor.ExecuteConcurrent(ctx, inv, files, jobs)
	agg := report.NewAggregator(report.Options{
		Prog:      wrapperName,
		Quiet:     cfg.Quiet,
		ColorDiff: colorDiff,
		ColorErr:  colorErr,
		Stdout:    stdoutWriter,
		Stderr:    stderrWriter,
	}, cancel)
	status := agg.Consume(results)
	logInfo(fmt.Sprintf("run finished: status=%s", status))

	if cfg.SummaryJSON {
		data, err := agg.Summary().MarshalIndent()
		if err != nil {
			logError("summary marshal failed: " + err.Error())
		} else {
			fmt.Fprintln(stdoutWriter, string(data))
		}
	}

	return int(status)
}

package wrapper

import (
	"errors"
	"fmt"
	"os"
	"strings"

	config "clangfmt-wrapper/internal/config"
	ilogger "clangfmt-wrapper/internal/logger"
	report "clangfmt-wrapper/internal/report"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const version = "1.0.0"

const wrapperName = ilogger.WrapperName

type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit %d", e.code)
}

var exitFn = os.Exit

func Main() {
	Run()
}

// Run is the program entrypoint for cmd/clangfmt/main.go.
func Run() {
	exitFn(run())
}

func run() int {
	cmd := newRootCommand()
	cmd.SetArgs(os.Args[1:])
	if err := cmd.Execute(); err != nil {
		var ee exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		return int(report.StatusTrouble)
	}
	return 0
}

type cliOptions struct {
	Executable  string
	Workplace   string
	DryRun      bool
	InPlace     bool
	Quiet       bool
	Jobs        int
	Color       string
	Excludes    []string
	Fallback    string
	Extensions  string
	SummaryJSON bool

	Version    bool
	ConfigFile string
}

func newRootCommand() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:           "clangfmt [flags]",
		Short:         "Parallel clang-format driver for linting and CI gating",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Version {
				fmt.Printf("%s version %s\n", wrapperName, version)
				return nil
			}

			exitCode := runWithLoggerAndCleanup(func() int {
				v, err := config.NewViper(opts.ConfigFile)
				if err != nil {
					report.PrintTrouble(stderrWriter, wrapperName, err.Error(), false)
					return int(report.StatusTrouble)
				}

				cfg, err := resolveConfig(cmd, opts, v)
				if err != nil {
					report.PrintTrouble(stderrWriter, wrapperName, err.Error(), false)
					return int(report.StatusTrouble)
				}
				logInfo(fmt.Sprintf("Resolved config: workplace=%s, in_place=%t, dry_run=%t, jobs=%d",
					cfg.Workplace, cfg.InPlace, cfg.DryRun, cfg.Jobs))

				return runFormat(cfg)
			})

			if exitCode == 0 {
				return nil
			}
			return exitError{code: exitCode}
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	addRootFlags(cmd.Flags(), opts)
	cmd.AddCommand(newVersionCommand(), newCleanupCommand())

	return cmd
}

func addRootFlags(fs *pflag.FlagSet, opts *cliOptions) {
	fs.StringVar(&opts.ConfigFile, "config", "", "Config file path (default: $HOME/.clangfmt/config.*)")
	fs.BoolVarP(&opts.Version, "version", "v", false, "Print version and exit")

	fs.StringVar(&opts.Executable, "clang-format-executable", config.DefaultExecutable, "Path to the clang-format executable")
	fs.StringVarP(&opts.Workplace, "workplace", "w", config.DefaultWorkplace, "Path to the source root")
	fs.BoolVarP(&opts.DryRun, "dry-run", "d", false, "Print the formatter invocations without running them")
	fs.BoolVarP(&opts.InPlace, "in-place", "i", false, "Format files in place instead of printing diffs")
	fs.BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress diff output; the exit code still reports diffs")
	fs.IntVarP(&opts.Jobs, "jobs", "j", 0, "Run N formatter jobs in parallel (0 = number of CPUs + 1)")
	fs.StringVar(&opts.Color, "color", config.ColorAuto, "Show colored diff (auto, always, never)")
	fs.StringArrayVarP(&opts.Excludes, "exclude", "e", nil, "Exclude paths matching the given glob pattern (repeatable)")
	fs.StringVar(&opts.Fallback, "fallback", config.DefaultFallbackStyle, "Fallback style used when no .clang-format is found")
	fs.StringVar(&opts.Extensions, "extensions", config.DefaultExtensions, "Comma-separated file extensions to format")
	fs.BoolVar(&opts.SummaryJSON, "summary-json", false, "Print a JSON run summary to stdout after the run")
}

// resolveConfig applies the precedence flag > CLANGFMT_* env / config file >
// default for every setting.
func resolveConfig(cmd *cobra.Command, opts *cliOptions, v *viper.Viper) (*config.Config, error) {
	cfg := &config.Config{
		Executable:    opts.Executable,
		Workplace:     opts.Workplace,
		InPlace:       opts.InPlace,
		DryRun:        opts.DryRun,
		Quiet:         opts.Quiet,
		Jobs:          opts.Jobs,
		ColorMode:     opts.Color,
		FallbackStyle: opts.Fallback,
		Excludes:      opts.Excludes,
		SummaryJSON:   opts.SummaryJSON,
	}

	extensions := opts.Extensions
	flags := cmd.Flags()

	if !flags.Changed("clang-format-executable") {
		if val := strings.TrimSpace(v.GetString("clang-format-executable")); val != "" {
			cfg.Executable = val
		}
	}
	if !flags.Changed("workplace") {
		if val := strings.TrimSpace(v.GetString("workplace")); val != "" {
			cfg.Workplace = val
		}
	}
	if !flags.Changed("fallback") {
		if val := strings.TrimSpace(v.GetString("fallback")); val != "" {
			cfg.FallbackStyle = val
		}
	}
	if !flags.Changed("color") {
		if val := strings.TrimSpace(v.GetString("color")); val != "" {
			cfg.ColorMode = val
		}
	}
	if !flags.Changed("extensions") {
		if val := strings.TrimSpace(v.GetString("extensions")); val != "" {
			extensions = val
		}
	}
	if !flags.Changed("jobs") && v.IsSet("jobs") {
		cfg.Jobs = v.GetInt("jobs")
	}
	if !flags.Changed("in-place") && v.IsSet("in-place") {
		cfg.InPlace = v.GetBool("in-place")
	}
	if !flags.Changed("dry-run") && v.IsSet("dry-run") {
		cfg.DryRun = v.GetBool("dry-run")
	}
	if !flags.Changed("quiet") && v.IsSet("quiet") {
		cfg.Quiet = v.GetBool("quiet")
	}
	if !flags.Changed("summary-json") && v.IsSet("summary-json") {
		cfg.SummaryJSON = v.GetBool("summary-json")
	}

	if strings.TrimSpace(cfg.Executable) == "" {
		return nil, fmt.Errorf("clang-format executable path is empty")
	}
	if err := config.ValidateColorMode(cfg.ColorMode); err != nil {
		return nil, err
	}

	cfg.Extensions = config.ParseExtensions(extensions)
	if len(cfg.Extensions) == 0 {
		return nil, fmt.Errorf("extension list is empty")
	}

	return cfg, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "version",
		Short:         "Print version and exit",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("%s version %s\n", wrapperName, version)
			return nil
		},
	}
}

func newCleanupCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "cleanup",
		Short:         "Delete log files left behind by dead runs and exit",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := cleanupOldLogs()
			if err != nil {
				report.PrintTrouble(stderrWriter, wrapperName, err.Error(), false)
				return exitError{code: int(report.StatusTrouble)}
			}
			fmt.Fprintf(stdoutWriter, "scanned %d log file(s): deleted %d, kept %d, errors %d\n",
				stats.Scanned, stats.Deleted, stats.Kept, stats.Errors)
			return nil
		},
	}
}

func runWithLoggerAndCleanup(fn func() int) (exitCode int) {
	logger, err := NewLogger()
	if err != nil {
		fmt.Fprintf(stderrWriter, "ERROR: failed to initialize logger: %v\n", err)
		return int(report.StatusTrouble)
	}
	setLogger(logger)

	defer func() {
		logger := activeLogger()
		if logger != nil {
			logger.Flush()
		}
		if err := closeLogger(); err != nil {
			fmt.Fprintf(stderrWriter, "ERROR: failed to close logger: %v\n", err)
		}
		if logger == nil {
			return
		}

		if exitCode == int(report.StatusTrouble) {
			if entries := logger.ExtractRecentErrors(10); len(entries) > 0 {
				fmt.Fprintln(stderrWriter, "\n=== Recent Errors ===")
				for _, entry := range entries {
					fmt.Fprintln(stderrWriter, entry)
				}
				fmt.Fprintf(stderrWriter, "Log file: %s (deleted)\n", logger.Path())
			}
		}
		_ = logger.RemoveLogFile()
	}()

	// Sweep logs left over from dead runs.
	if _, err := cleanupOldLogs(); err != nil {
		logWarn("startup log cleanup failed: " + err.Error())
	}

	return fn()
}

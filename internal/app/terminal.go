package wrapper

import (
	"os"

	config "clangfmt-wrapper/internal/config"

	"github.com/mattn/go-isatty"
)

var isTerminalFn = defaultIsTerminal

func defaultIsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// resolveColor maps the --color mode onto the two output streams: diffs go
// to stdout, trouble messages to stderr, and in auto mode each stream is
// colorized only when it is a terminal.
func resolveColor(mode string) (colorDiff, colorErr bool) {
	switch mode {
	case config.ColorAlways:
		return true, true
	case config.ColorNever:
		return false, false
	default:
		return isTerminalFn(os.Stdout), isTerminalFn(os.Stderr)
	}
}

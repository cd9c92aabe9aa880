package config

import (
	"fmt"
	"os"
	"strings"
)

// Defaults mirror the historical CI wrapper so existing pipelines keep
// working without flags.
const (
	DefaultExecutable    = "/usr/bin/clang-format-13"
	DefaultFallbackStyle = "Google"
	DefaultWorkplace     = "."
	DefaultIgnoreFile    = ".clang-format-ignore"
	DefaultExtensions    = "c,h,C,H,cpp,hpp,cc,hh,c++,h++,cxx,hxx"
)

// Color output modes accepted by --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the resolved per-run configuration. It is built once from
// flags, environment and config file, and is read-only afterwards.
type Config struct {
	Executable    string
	Workplace     string
	InPlace       bool
	DryRun        bool
	Quiet         bool
	Jobs          int
	ColorMode     string
	FallbackStyle string
	Extensions    []string
	Excludes      []string
	SummaryJSON   bool
}

// ValidateColorMode checks a --color value.
func ValidateColorMode(mode string) error {
	switch mode {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	default:
		return fmt.Errorf("invalid color mode %q (expected auto, always or never)", mode)
	}
}

// ParseExtensions splits a comma-separated extension list, dropping empty
// entries. Matching is case-sensitive, so "C" and "c" are distinct.
func ParseExtensions(raw string) []string {
	var exts []string
	for _, ext := range strings.Split(raw, ",") {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}
	return exts
}

// EnvFlagEnabled returns true when the environment variable exists and is not
// explicitly set to a falsey value ("0/false/no/off").
func EnvFlagEnabled(key string) bool {
	val, ok := os.LookupEnv(key)
	if !ok {
		return false
	}
	return ParseBoolFlag(val, true)
}

func ParseBoolFlag(val string, defaultValue bool) bool {
	val = strings.TrimSpace(strings.ToLower(val))
	switch val {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return defaultValue
	}
}

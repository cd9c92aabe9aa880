package report

import (
	"strings"

	"github.com/fatih/color"
)

// palette styles diff lines: bold file headers, cyan hunk headers, green
// additions, red removals. Color is decided per stream up front, so the
// global tty auto-detection in fatih/color is overridden both ways.
type palette struct {
	enabled bool
	header  *color.Color
	hunk    *color.Color
	added   *color.Color
	removed *color.Color
}

func newPalette(diffColor, errColor bool) *palette {
	p := &palette{
		enabled: diffColor,
		header:  color.New(color.Bold),
		hunk:    color.New(color.FgCyan),
		added:   color.New(color.FgGreen),
		removed: color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.header, p.hunk, p.added, p.removed} {
		if diffColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *palette) diffLine(line string) string {
	if !p.enabled {
		return line
	}
	switch {
	case strings.HasPrefix(line, "--- ") || strings.HasPrefix(line, "+++ "):
		return p.header.Sprint(line)
	case strings.HasPrefix(line, "@@ "):
		return p.hunk.Sprint(line)
	case strings.HasPrefix(line, "+"):
		return p.added.Sprint(line)
	case strings.HasPrefix(line, "-"):
		return p.removed.Sprint(line)
	default:
		return line
	}
}

func troubleColor() *color.Color {
	c := color.New(color.Bold, color.FgRed)
	c.EnableColor()
	return c
}

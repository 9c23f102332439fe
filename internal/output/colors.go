package output

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorMode represents the color output mode
type ColorMode int

const (
	// ColorAuto enables colors if output is a TTY
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on
	ColorAlways
	// ColorNever disables colors
	ColorNever
)

type sprintf func(format string, a ...interface{}) string

// Colors holds the color functions for different output types
type Colors struct {
	Time      sprintf
	Countdown sprintf
	Delay     sprintf
	DelayHigh sprintf
	OnTime    sprintf
	Platform  sprintf
	Dest      sprintf
	Favorite  sprintf
	Canceled  sprintf
	Message   sprintf
	Header    sprintf
	Muted     sprintf
	Index     sprintf

	// lines colors the line label by transport type
	lines       map[string]sprintf
	defaultLine sprintf
}

// NewColors creates a new Colors instance based on the color mode
func NewColors(mode ColorMode) *Colors {
	useColors := false
	switch mode {
	case ColorAlways:
		useColors = true
		color.NoColor = false
	case ColorNever:
		useColors = false
	case ColorAuto:
		useColors = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	if !useColors {
		noColor := func(format string, a ...interface{}) string {
			if len(a) == 0 {
				return format
			}
			return fmt.Sprintf(format, a...)
		}
		return &Colors{
			Time:        noColor,
			Countdown:   noColor,
			Delay:       noColor,
			DelayHigh:   noColor,
			OnTime:      noColor,
			Platform:    noColor,
			Dest:        noColor,
			Favorite:    noColor,
			Canceled:    noColor,
			Message:     noColor,
			Header:      noColor,
			Muted:       noColor,
			Index:       noColor,
			lines:       map[string]sprintf{},
			defaultLine: noColor,
		}
	}

	return &Colors{
		Time:      color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Countdown: color.New(color.FgHiWhite).SprintfFunc(),
		Delay:     color.New(color.FgYellow).SprintfFunc(),
		DelayHigh: color.New(color.FgRed, color.Bold).SprintfFunc(),
		OnTime:    color.New(color.FgGreen).SprintfFunc(),
		Platform:  color.New(color.FgMagenta).SprintfFunc(),
		Dest:      color.New(color.FgWhite).SprintfFunc(),
		Favorite:  color.New(color.FgHiYellow, color.Bold).SprintfFunc(),
		Canceled:  color.New(color.FgRed, color.Bold).SprintfFunc(),
		Message:   color.New(color.FgHiBlack, color.Italic).SprintfFunc(),
		Header:    color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Muted:     color.New(color.FgHiBlack).SprintfFunc(),
		Index:     color.New(color.FgCyan).SprintfFunc(),
		lines: map[string]sprintf{
			"UBAHN":        color.New(color.FgHiWhite, color.BgBlue, color.Bold).SprintfFunc(),
			"SBAHN":        color.New(color.FgHiWhite, color.BgGreen, color.Bold).SprintfFunc(),
			"TRAM":         color.New(color.FgHiWhite, color.BgRed, color.Bold).SprintfFunc(),
			"BUS":          color.New(color.FgHiWhite, color.BgCyan, color.Bold).SprintfFunc(),
			"REGIONAL_BUS": color.New(color.FgHiWhite, color.BgCyan).SprintfFunc(),
			"BAHN":         color.New(color.FgHiWhite, color.BgHiBlack, color.Bold).SprintfFunc(),
			"SCHIFF":       color.New(color.FgHiWhite, color.BgHiBlue).SprintfFunc(),
		},
		defaultLine: color.New(color.FgCyan, color.Bold).SprintfFunc(),
	}
}

// Line colors a line label by its transport type
func (c *Colors) Line(transportType, format string, a ...interface{}) string {
	if f, ok := c.lines[transportType]; ok {
		return f(format, a...)
	}
	return c.defaultLine(format, a...)
}

// FormatDelay formats a delay value with appropriate color (fixed 4-char width)
func (c *Colors) FormatDelay(delay int) string {
	if delay == 0 {
		return "    "
	}
	if delay > 0 {
		if delay >= 10 {
			return c.DelayHigh("%+4d", delay)
		}
		return c.Delay("%+4d", delay)
	}
	return c.OnTime("%4d", delay)
}

// ParseColorMode parses a color mode string
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}

package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Colors matching output/colors.go
var (
	colorCyan    = lipgloss.Color("6")
	colorYellow  = lipgloss.Color("3")
	colorRed     = lipgloss.Color("1")
	colorGreen   = lipgloss.Color("2")
	colorBlue    = lipgloss.Color("4")
	colorMagenta = lipgloss.Color("5")
	colorWhite   = lipgloss.Color("15")
	colorGray    = lipgloss.Color("8")
	colorBlack   = lipgloss.Color("0")
)

// Text styles
var (
	styleTime      = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleCountdown = lipgloss.NewStyle().Foreground(colorWhite)
	styleDelay     = lipgloss.NewStyle().Foreground(colorYellow)
	styleDelayHigh = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	styleOnTime    = lipgloss.NewStyle().Foreground(colorGreen)
	stylePlatform  = lipgloss.NewStyle().Foreground(colorMagenta)
	styleCanceled  = lipgloss.NewStyle().Foreground(colorRed).Strikethrough(true)
	styleFavorite  = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	styleMuted     = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader    = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleSelected  = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleError     = lipgloss.NewStyle().Foreground(colorRed)
)

// Line badges by transport type
var lineStyles = map[string]lipgloss.Style{
	"UBAHN":        badge(colorBlue),
	"SBAHN":        badge(colorGreen),
	"TRAM":         badge(colorRed),
	"BUS":          badge(colorCyan),
	"REGIONAL_BUS": badge(colorCyan),
	"BAHN":         badge(colorGray),
	"SCHIFF":       badge(colorBlue),
}

var styleLineDefault = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)

func badge(bg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorWhite).Background(bg).Bold(true)
}

func lineStyle(transportType string) lipgloss.Style {
	if s, ok := lineStyles[transportType]; ok {
		return s
	}
	return styleLineDefault
}

// Header bar
var (
	styleLogo = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(colorBlue).
			Bold(true).
			Padding(0, 1)

	styleTabActive = lipgloss.NewStyle().
			Foreground(colorBlack).
			Background(colorCyan).
			Bold(true).
			Padding(0, 1)

	styleTabInactive = lipgloss.NewStyle().
				Foreground(colorGray).
				Padding(0, 1)

	styleModeNormal = lipgloss.NewStyle().
			Foreground(colorBlack).
			Background(colorGreen).
			Bold(true).
			Padding(0, 1)

	styleModeSearch = lipgloss.NewStyle().
			Foreground(colorBlack).
			Background(colorYellow).
			Bold(true).
			Padding(0, 1)
)

// Search popup
var (
	stylePopup = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorYellow).
			Padding(0, 1)

	styleInputCursor = lipgloss.NewStyle().Reverse(true)
)

// Status bar at the bottom
var styleStatusBar = lipgloss.NewStyle().
	Foreground(colorWhite).
	Background(lipgloss.Color("236"))

// formatDelay returns a styled delay string (4-char width)
func formatDelay(delay int) string {
	if delay == 0 {
		return "    "
	}
	if delay > 0 {
		s := fmt.Sprintf("%+4d", delay)
		if delay >= 10 {
			return styleDelayHigh.Render(s)
		}
		return styleDelay.Render(s)
	}
	s := fmt.Sprintf("%4d", delay)
	return styleOnTime.Render(s)
}

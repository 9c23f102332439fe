package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mobil-koeln/mvg-tui/internal/models"
	"github.com/mobil-koeln/mvg-tui/internal/output"
	"github.com/mobil-koeln/mvg-tui/internal/state"
)

const maxSuggestions = 8

// View returns the last rendered frame.
func (m Model) View() string {
	if m.frame == "" {
		return "Loading..."
	}
	return m.frame
}

// render paints a full frame from a snapshot of the state machine.
func (m Model) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	snap := m.app.Snapshot()

	header := m.renderHeader(snap)
	status := m.renderStatusBar(snap)
	helpView := m.renderHelp(snap)

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(status) - lipgloss.Height(helpView)

	var sections []string
	sections = append(sections, header)
	if snap.Mode == state.ModeSearch {
		popup := m.renderSearchPopup(snap)
		sections = append(sections, popup)
		bodyHeight -= lipgloss.Height(popup)
	}
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	if snap.Tab == state.TabStation {
		body = m.renderStationList(snap, bodyHeight)
	} else {
		body = m.renderDepartureBoard(snap, bodyHeight)
	}
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	sections = append(sections, body, status, helpView)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the brand, the tab bar and the mode badge.
func (m Model) renderHeader(snap state.Snapshot) string {
	logo := styleLogo.Render("MVG")

	tabs := make([]string, 0, 2)
	for _, tab := range []state.Tab{state.TabHome, state.TabStation} {
		if tab == snap.Tab {
			tabs = append(tabs, styleTabActive.Render(tab.String()))
		} else {
			tabs = append(tabs, styleTabInactive.Render(tab.String()))
		}
	}

	modeStyle := styleModeNormal
	if snap.Mode == state.ModeSearch {
		modeStyle = styleModeSearch
	}
	mode := modeStyle.Render(snap.Mode.String())

	left := lipgloss.JoinHorizontal(lipgloss.Top, logo, " ", strings.Join(tabs, ""))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(mode)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + mode
}

// renderSearchPopup renders the query line and the suggestion list.
func (m Model) renderSearchPopup(snap state.Snapshot) string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("Search: "))
	b.WriteString(renderQuery(snap.Query, snap.QueryCursor))

	switch {
	case len(snap.Suggestions) > 0:
		start, end := visibleRange(snap.SuggestionCursor, len(snap.Suggestions), maxSuggestions)
		for i := start; i < end; i++ {
			b.WriteString("\n")
			b.WriteString(renderRow(snap.Suggestions[i].DisplayName(), i == snap.SuggestionCursor, m.width-8))
		}
	case len([]rune(snap.Query)) > 0:
		b.WriteString("\n")
		b.WriteString(styleMuted.Render("   no suggestions"))
	default:
		b.WriteString("\n")
		b.WriteString(styleMuted.Render("   type a station name"))
	}

	width := m.width - 2
	if width < 20 {
		width = 20
	}
	return stylePopup.Width(width).Render(b.String())
}

// renderQuery draws the query with a block cursor at pos.
func renderQuery(query string, pos int) string {
	runes := []rune(query)
	if pos < 0 || pos > len(runes) {
		pos = len(runes)
	}
	under := " "
	rest := ""
	if pos < len(runes) {
		under = string(runes[pos])
		rest = string(runes[pos+1:])
	}
	return string(runes[:pos]) + styleInputCursor.Render(under) + rest
}

// renderStationList renders the station picker with list indices.
func (m Model) renderStationList(snap state.Snapshot, height int) string {
	title := styleHeader.Render(fmt.Sprintf("STATIONS (%d)", len(snap.Stations)))
	if len(snap.Stations) == 0 {
		return title + "\n" + styleMuted.Render(" No stations loaded")
	}

	maxVisible := height - 1
	if maxVisible < 1 {
		maxVisible = 1
	}
	idxWidth := len(fmt.Sprint(len(snap.Stations)))

	var b strings.Builder
	b.WriteString(title)
	start, end := visibleRange(snap.StationCursor, len(snap.Stations), maxVisible)
	for i := start; i < end; i++ {
		label := fmt.Sprintf("%*d %s", idxWidth, i, snap.Stations[i].DisplayName())
		b.WriteString("\n")
		b.WriteString(renderRow(label, i == snap.StationCursor, m.width-4))
	}
	return b.String()
}

// renderRow renders one list entry with the selection marker.
func renderRow(label string, selected bool, width int) string {
	label = output.Truncate(label, width)
	if selected {
		return styleSelected.Render(" > " + label)
	}
	return "   " + label
}

// renderDepartureBoard renders the selected station and its departures.
func (m Model) renderDepartureBoard(snap state.Snapshot, height int) string {
	if snap.Selected == nil {
		return styleHeader.Render("DEPARTURES") + "\n" +
			styleMuted.Render(" Press tab to pick a station or / to search")
	}

	var b strings.Builder
	b.WriteString(styleHeader.Render(output.Truncate(snap.Selected.DisplayName(), m.width-2)))
	if line := refreshLine(snap); line != "" {
		b.WriteString("  ")
		b.WriteString(styleMuted.Render(line))
	}

	if len(snap.Departures) == 0 {
		b.WriteString("\n")
		if snap.Fetching {
			b.WriteString(styleMuted.Render(" Loading departures..."))
		} else {
			b.WriteString(styleMuted.Render(" No departures"))
		}
		return b.String()
	}

	maxVisible := height - 1
	if maxVisible < 1 {
		maxVisible = 1
	}
	now := m.now()
	start, end := visibleRange(snap.DepartureCursor, len(snap.Departures), maxVisible)
	for i := start; i < end; i++ {
		dep := snap.Departures[i]
		b.WriteString("\n")
		b.WriteString(m.renderDepartureLine(&dep, snap.FavDirections, i == snap.DepartureCursor, now))
	}
	return b.String()
}

// refreshLine describes when the departures were last fetched.
func refreshLine(snap state.Snapshot) string {
	if snap.LastRefreshed.IsZero() {
		return ""
	}
	line := "refreshed " + snap.LastRefreshed.Format("15:04:05")
	if snap.DisplaySeconds {
		line += fmt.Sprintf(" (%ds ago)", snap.Elapsed)
	}
	return line
}

// renderDepartureLine renders a single departure entry.
func (m Model) renderDepartureLine(dep *models.Departure, favs []string, selected bool, now time.Time) string {
	timeStr := "??:??"
	if when := dep.When(); when != nil {
		timeStr = when.Format("15:04")
	}
	countdown := fmt.Sprintf("%6s", output.FormatCountdown(dep, now))
	line := lineStyle(dep.TransportType).Render(output.Pad(output.Truncate(dep.Line, 4), 4))

	platform := "      "
	if dep.Platform != "" {
		platform = fmt.Sprintf("Pl.%-3s", output.Truncate(dep.Platform, 3))
	}

	// marker(3) time(5) countdown(6) delay(4) line(4) platform(6) and gaps
	destWidth := m.width - 3 - 5 - 1 - 6 - 1 - 4 - 2 - 4 - 2 - 2 - 6 - 1
	if destWidth < 8 {
		destWidth = 8
	}
	dest := output.Pad(output.Truncate(dep.Destination, destWidth), destWidth)
	switch {
	case dep.IsCancelled:
		dest = styleCanceled.Render(dest)
	case dep.HeadsTowards(favs):
		dest = styleFavorite.Render(dest)
	}

	entry := fmt.Sprintf("%s %s %s  %s  %s  %s",
		styleTime.Render(timeStr),
		styleCountdown.Render(countdown),
		formatDelay(dep.Delay),
		line,
		dest,
		stylePlatform.Render(platform),
	)

	if selected {
		return styleSelected.Render(" > ") + entry
	}
	return "   " + entry
}

// renderStatusBar renders the status message and the fetch spinner.
func (m Model) renderStatusBar(snap state.Snapshot) string {
	text := " " + snap.Status
	if snap.Fetching {
		text = " " + m.spinner.View() + text
	}
	if strings.Contains(strings.ToLower(snap.Status), "failed") {
		text = styleError.Render(text)
	}
	return styleStatusBar.Width(m.width).MaxWidth(m.width).Render(text)
}

// renderHelp renders the key hints for the active mode.
func (m Model) renderHelp(snap state.Snapshot) string {
	if snap.Mode == state.ModeSearch {
		return m.help.View(searchHelp{m.keys})
	}
	return m.help.View(normalHelp{m.keys})
}

// visibleRange calculates the start and end indices for a scrollable list.
// A cursor of -1 shows the top of the list.
func visibleRange(cursor, total, maxVisible int) (int, int) {
	if total <= maxVisible {
		return 0, total
	}
	if cursor < 0 {
		cursor = 0
	}

	start := cursor - maxVisible/2
	if start < 0 {
		start = 0
	}
	end := start + maxVisible
	if end > total {
		end = total
		start = end - maxVisible
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mobil-koeln/mvg-tui/internal/logging"
	"github.com/mobil-koeln/mvg-tui/internal/state"
)

// Update forwards every message to the state machine in arrival order and
// repaints when the state machine reports a pending redraw.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.app.Handle(state.Resize{})

	case tea.KeyMsg:
		if m.app.Mode() == state.ModeNormal && key.Matches(msg, m.keys.Help) {
			m.help.ShowAll = !m.help.ShowAll
		}
		var ev state.Event = state.KeyPress{Key: msg.String()}
		if msg.Type == tea.KeyRunes && !msg.Alt && m.app.Mode() == state.ModeSearch {
			ev = state.TextInput{Runes: msg.Runes}
		}
		cmds = append(cmds, m.runEffects(m.app.Handle(ev))...)
		if m.app.Mode() != state.ModeSearch {
			// the search session ended; drop its pending debounce
			m.pendingSearch = 0
		}

	case tickMsg:
		m.app.Handle(state.Tick{Now: time.Time(msg)})
		cmds = append(cmds, tick(m.settings.TickInterval))

	case refreshMsg:
		cmds = append(cmds, m.runEffects(m.app.Handle(state.RefreshDue{}))...)
		cmds = append(cmds, refreshTick(m.settings.RefreshInterval))

	case stationsMsg:
		if msg.err != nil {
			logging.Warn("Loading stations failed", zap.Error(msg.err))
		} else {
			logging.Info("Stations loaded", zap.Int("count", len(msg.stations)))
		}
		cmds = append(cmds, m.runEffects(m.app.LoadStations(msg.stations, msg.err))...)

	case departuresMsg:
		r := msg.result
		logging.LogFetch(r.StationID, r.Cause.String(), len(r.Departures), msg.elapsed, r.Err)
		m.app.Handle(r)

	case searchDebounceMsg:
		if msg.seq == m.pendingSearch {
			logging.Debug("Searching stations", zap.String("query", msg.query), zap.Int("seq", msg.seq))
			cmds = append(cmds, searchStations(m.fetcher, m.settings.RequestTimeout, msg.query, msg.seq))
		}

	case suggestionsMsg:
		if msg.result.Err != nil {
			logging.Warn("Station search failed", zap.Error(msg.result.Err))
		}
		m.app.Handle(msg.result)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		if m.app.Fetching() {
			m.frame = m.render()
		}
	}

	if m.app.NeedsRedraw() {
		m.frame = m.render()
		m.app.ClearRedraw()
	}

	return m, tea.Batch(cmds...)
}

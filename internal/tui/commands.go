package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobil-koeln/mvg-tui/internal/state"
)

// tick returns a tea.Cmd that samples the clock for the seconds counter.
func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshTick returns a tea.Cmd that fires after the refresh interval.
func refreshTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

// loadStations returns a tea.Cmd that fetches the station list.
func loadStations(f Fetcher, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		stations, err := f.ListStations(ctx)
		return stationsMsg{stations: stations, err: err}
	}
}

// fetchDepartures returns a tea.Cmd that fetches departures for a station.
func fetchDepartures(f Fetcher, timeout time.Duration, now func() time.Time, req state.FetchDepartures) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		departures, err := f.ListDepartures(ctx, req.StationID)
		return departuresMsg{
			result: state.DeparturesLoaded{
				StationID:  req.StationID,
				Departures: departures,
				Err:        err,
				Cause:      req.Cause,
				At:         now(),
			},
			elapsed: time.Since(start),
		}
	}
}

// debounceSearch returns a tea.Cmd that reports back after the debounce
// delay so only the last query of a typing burst is searched.
func debounceSearch(d time.Duration, req state.SearchStations) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: req.Seq, query: req.Query}
	})
}

// searchStations returns a tea.Cmd that searches stations by name.
func searchStations(f Fetcher, timeout time.Duration, query string, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		stations, err := f.SearchStations(ctx, query)
		return suggestionsMsg{result: state.SuggestionsLoaded{
			Seq:      seq,
			Stations: stations,
			Err:      err,
		}}
	}
}

// runEffects turns the I/O requested by the App into commands.
func (m *Model) runEffects(effects []state.Effect) []tea.Cmd {
	var cmds []tea.Cmd
	for _, eff := range effects {
		switch eff := eff.(type) {
		case state.FetchDepartures:
			cmds = append(cmds, fetchDepartures(m.fetcher, m.settings.RequestTimeout, m.now, eff))
		case state.SearchStations:
			m.pendingSearch = eff.Seq
			cmds = append(cmds, debounceSearch(m.settings.SearchDebounce, eff))
		case state.Quit:
			cmds = append(cmds, tea.Quit)
		}
	}
	return cmds
}

package state

import (
	"fmt"
	"time"

	"github.com/mobil-koeln/mvg-tui/internal/models"
)

// Tab is the focused top-level panel.
type Tab int

const (
	TabHome Tab = iota
	TabStation
)

func (t Tab) String() string {
	if t == TabStation {
		return "Stations"
	}
	return "Departures"
}

// Mode decides which key bindings and which cursor are active.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
)

func (m Mode) String() string {
	if m == ModeSearch {
		return "SEARCH"
	}
	return "NORMAL"
}

const defaultSearchMinChars = 2

// Options configure an App. They are read once and never mutated.
type Options struct {
	// Transport is the allow-list of transport types; nil disables filtering.
	Transport []string
	// FavDirections are destinations highlighted in the departure table.
	FavDirections []string
	// FavStationIdx selects a station from the list at startup.
	FavStationIdx *int
	// DisplaySeconds enables the seconds-since-refresh counter.
	DisplaySeconds bool
	// RedrawInterval is the counter granularity in seconds.
	RedrawInterval int
	// SearchMinChars is the shortest query that triggers a station search.
	SearchMinChars int
}

// App is the application state machine. It is the only owner of the state
// it holds: one goroutine calls Handle, the renderer reads a Snapshot.
type App struct {
	opts Options

	tab        Tab
	mode       Mode
	shouldQuit bool
	status     string

	stations      []models.Station
	stationCursor Cursor

	selected        *models.Station
	departures      []models.Departure
	departureCursor Cursor
	fetching        bool

	query        Editor
	suggestions  []models.Station
	searchCursor Cursor
	searchSeq    int

	clock *RefreshClock
}

// New creates an App with no stations loaded.
func New(opts Options) (*App, error) {
	clock, err := NewRefreshClock(opts.RedrawInterval)
	if err != nil {
		return nil, err
	}
	if opts.SearchMinChars <= 0 {
		opts.SearchMinChars = defaultSearchMinChars
	}
	return &App{
		opts:   opts,
		status: "Loading stations...",
		clock:  clock,
	}, nil
}

// LoadStations stores the station list fetched at startup. A fetch error
// leaves the list empty and is shown in the status line. When a favorite
// station is configured, its departures are requested right away.
func (a *App) LoadStations(stations []models.Station, err error) []Effect {
	a.clock.Invalidate()
	if err != nil {
		a.stations = nil
		a.status = fmt.Sprintf("Loading stations failed: %v", err)
		return nil
	}

	a.stations = stations
	a.stationCursor.Clamp(len(a.stations))
	a.status = fmt.Sprintf("%d stations loaded", len(a.stations))

	if idx := a.opts.FavStationIdx; idx != nil {
		if *idx < 0 || *idx >= len(a.stations) {
			a.status = fmt.Sprintf("Favorite station index %d out of range (0-%d)", *idx, len(a.stations)-1)
			return nil
		}
		a.stationCursor.Select(*idx)
		return a.SelectStation()
	}
	return nil
}

// Handle applies one event and returns the I/O it requires.
func (a *App) Handle(ev Event) []Effect {
	switch ev := ev.(type) {
	case Tick:
		a.handleTick(ev.Now)
	case KeyPress:
		return a.handleKey(ev.Key)
	case TextInput:
		return a.insertText(ev.Runes)
	case RefreshDue:
		return a.refresh()
	case Resize:
		a.clock.Invalidate()
	case DeparturesLoaded:
		a.handleDepartures(ev)
	case SuggestionsLoaded:
		a.handleSuggestions(ev)
	}
	return nil
}

func (a *App) handleTick(now time.Time) {
	if !a.opts.DisplaySeconds {
		return
	}
	a.clock.Tick(now)
}

// ToggleTab switches between the departure view and the station picker.
func (a *App) ToggleTab() {
	if a.tab == TabHome {
		a.tab = TabStation
	} else {
		a.tab = TabHome
	}
	a.clock.Invalidate()
}

// EnterSearch switches to search mode, keeping any unfinished query.
func (a *App) EnterSearch() {
	a.mode = ModeSearch
	a.clock.Invalidate()
}

// ExitSearch ends the search session and discards its state.
func (a *App) ExitSearch() {
	a.mode = ModeNormal
	a.resetSearch()
	a.clock.Invalidate()
}

func (a *App) resetSearch() {
	a.query.Reset()
	a.suggestions = nil
	a.searchCursor.SelectNone()
	a.searchSeq++
}

// SelectStation picks the highlighted entry of the station list.
func (a *App) SelectStation() []Effect {
	if a.fetching {
		a.status = "Still fetching departures..."
		a.clock.Invalidate()
		return nil
	}
	i, ok := a.stationCursor.Index(len(a.stations))
	if !ok {
		return nil
	}
	a.status = "Fetching departures"
	return a.beginSelection(a.stations[i])
}

// SelectSearchedStation picks the highlighted search suggestion and ends
// the search session.
func (a *App) SelectSearchedStation() []Effect {
	if a.fetching {
		a.status = "Still fetching departures..."
		a.clock.Invalidate()
		return nil
	}
	i, ok := a.searchCursor.Index(len(a.suggestions))
	if !ok {
		a.status = "Select a station with up/down first"
		a.clock.Invalidate()
		return nil
	}
	station := a.suggestions[i]
	a.status = "Fetching departures from search"
	a.mode = ModeNormal
	a.resetSearch()
	return a.beginSelection(station)
}

func (a *App) beginSelection(station models.Station) []Effect {
	a.selected = &station
	a.fetching = true
	a.tab = TabHome
	a.clock.Invalidate()
	return []Effect{FetchDepartures{StationID: station.ID, Cause: CauseSelection}}
}

// refresh re-fetches the selected station. It is a no-op without a
// selection or while another fetch is outstanding.
func (a *App) refresh() []Effect {
	if a.selected == nil || a.fetching {
		return nil
	}
	a.fetching = true
	return []Effect{FetchDepartures{StationID: a.selected.ID, Cause: CauseRefresh}}
}

func (a *App) handleDepartures(ev DeparturesLoaded) {
	if a.selected == nil || ev.StationID != a.selected.ID {
		return
	}
	a.fetching = false
	a.clock.Invalidate()

	if ev.Err != nil {
		a.departures = nil
		a.departureCursor.SelectNone()
		a.status = fmt.Sprintf("Fetching departures failed: %v", ev.Err)
		return
	}

	a.departures = FilterDepartures(ev.Departures, a.opts.Transport)
	if ev.Cause == CauseSelection {
		a.departureCursor.SelectNone()
	} else {
		a.departureCursor.Clamp(len(a.departures))
	}
	a.clock.MarkRefreshed(ev.At)
	a.status = fmt.Sprintf("%d departures", len(a.departures))
}

func (a *App) handleSuggestions(ev SuggestionsLoaded) {
	if ev.Seq != a.searchSeq || a.mode != ModeSearch {
		return
	}
	a.clock.Invalidate()
	a.searchCursor.SelectNone()
	if ev.Err != nil {
		a.suggestions = nil
		a.status = fmt.Sprintf("Search failed: %v", ev.Err)
		return
	}
	a.suggestions = ev.Stations
	if len(a.suggestions) == 0 {
		a.status = "No matching stations"
	} else {
		a.status = fmt.Sprintf("%d matching stations", len(a.suggestions))
	}
}

// queryChanged starts a new search generation for the current query.
func (a *App) queryChanged() []Effect {
	a.searchSeq++
	a.searchCursor.SelectNone()
	q := a.query.String()
	if a.query.Len() < a.opts.SearchMinChars {
		a.suggestions = nil
		return nil
	}
	return []Effect{SearchStations{Query: q, Seq: a.searchSeq}}
}

// ShouldQuit reports whether the user asked to quit.
func (a *App) ShouldQuit() bool {
	return a.shouldQuit
}

// Fetching reports whether a departure fetch is outstanding.
func (a *App) Fetching() bool {
	return a.fetching
}

// NeedsRedraw reports whether the screen must be repainted.
func (a *App) NeedsRedraw() bool {
	return a.clock.NeedsRedraw()
}

// ClearRedraw is called by the main loop after painting.
func (a *App) ClearRedraw() {
	a.clock.ClearRedraw()
}

// Status returns the current status line.
func (a *App) Status() string {
	return a.status
}

// Mode returns the active input mode.
func (a *App) Mode() Mode {
	return a.mode
}

// Tab returns the focused panel.
func (a *App) Tab() Tab {
	return a.tab
}

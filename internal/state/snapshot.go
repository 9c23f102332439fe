package state

import (
	"time"

	"github.com/mobil-koeln/mvg-tui/internal/models"
)

// Snapshot is a read-only copy of everything the renderer needs. Cursor
// fields are -1 when nothing is selected.
type Snapshot struct {
	Tab    Tab
	Mode   Mode
	Status string

	Stations      []models.Station
	StationCursor int

	Selected        *models.Station
	Departures      []models.Departure
	DepartureCursor int
	Fetching        bool

	Query            string
	QueryCursor      int
	Suggestions      []models.Station
	SuggestionCursor int

	DisplaySeconds bool
	LastRefreshed  time.Time
	Elapsed        int64
	FavDirections  []string
}

// Snapshot copies the current state for one paint.
func (a *App) Snapshot() Snapshot {
	snap := Snapshot{
		Tab:              a.tab,
		Mode:             a.mode,
		Status:           a.status,
		Stations:         a.stations,
		StationCursor:    cursorIndex(a.stationCursor, len(a.stations)),
		Departures:       cloneSlice(a.departures),
		DepartureCursor:  cursorIndex(a.departureCursor, len(a.departures)),
		Fetching:         a.fetching,
		Query:            a.query.String(),
		QueryCursor:      a.query.Cursor(),
		Suggestions:      cloneSlice(a.suggestions),
		SuggestionCursor: cursorIndex(a.searchCursor, len(a.suggestions)),
		DisplaySeconds:   a.opts.DisplaySeconds,
		LastRefreshed:    a.clock.LastRefreshed(),
		Elapsed:          a.clock.Elapsed(),
		FavDirections:    a.opts.FavDirections,
	}
	if a.selected != nil {
		st := *a.selected
		snap.Selected = &st
	}
	return snap
}

func cursorIndex(c Cursor, n int) int {
	if i, ok := c.Index(n); ok {
		return i
	}
	return -1
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}

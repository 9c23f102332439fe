package state

import (
	"time"

	"github.com/mobil-koeln/mvg-tui/internal/models"
)

// Event is anything the main loop feeds into App.Handle.
type Event interface {
	isEvent()
}

// Tick is delivered by the timer source.
type Tick struct {
	Now time.Time
}

// KeyPress carries a key in Bubble Tea notation ("a", "enter", "ctrl+c").
type KeyPress struct {
	Key string
}

// TextInput carries characters that arrived together, from a paste or
// from typing faster than the terminal is read.
type TextInput struct {
	Runes []rune
}

// RefreshDue is delivered by the periodic refresh timer.
type RefreshDue struct{}

// Resize is delivered when the terminal changed size.
type Resize struct{}

// DeparturesLoaded completes a FetchDepartures effect.
type DeparturesLoaded struct {
	StationID  string
	Departures []models.Departure
	Err        error
	Cause      FetchCause
	At         time.Time
}

// SuggestionsLoaded completes a SearchStations effect.
type SuggestionsLoaded struct {
	Seq      int
	Stations []models.Station
	Err      error
}

func (Tick) isEvent()              {}
func (KeyPress) isEvent()          {}
func (TextInput) isEvent()         {}
func (RefreshDue) isEvent()        {}
func (Resize) isEvent()            {}
func (DeparturesLoaded) isEvent()  {}
func (SuggestionsLoaded) isEvent() {}

// FetchCause tells a departure fetch completion what triggered it.
type FetchCause int

const (
	// CauseSelection is a fetch for a newly selected station.
	CauseSelection FetchCause = iota
	// CauseRefresh is a periodic or manual refresh of the same station.
	CauseRefresh
)

func (c FetchCause) String() string {
	if c == CauseRefresh {
		return "refresh"
	}
	return "selection"
}

// Effect is I/O requested by App.Handle. The caller performs it and
// reports the outcome back as an event.
type Effect interface {
	isEffect()
}

// FetchDepartures asks for the departures of one station.
type FetchDepartures struct {
	StationID string
	Cause     FetchCause
}

// SearchStations asks for station suggestions matching Query. The result
// must be returned with the same Seq.
type SearchStations struct {
	Query string
	Seq   int
}

// Quit asks the main loop to stop.
type Quit struct{}

func (FetchDepartures) isEffect() {}
func (SearchStations) isEffect()  {}
func (Quit) isEffect()            {}

package tui

import (
	"time"

	"github.com/mobil-koeln/mvg-tui/internal/models"
	"github.com/mobil-koeln/mvg-tui/internal/state"
)

// tickMsg drives the seconds-since-refresh counter.
type tickMsg time.Time

// refreshMsg is sent every refresh interval to re-fetch departures.
type refreshMsg time.Time

// stationsMsg carries the station list loaded at startup.
type stationsMsg struct {
	stations []models.Station
	err      error
}

// departuresMsg carries a finished departure fetch.
type departuresMsg struct {
	result  state.DeparturesLoaded
	elapsed time.Duration
}

// searchDebounceMsg fires once typing has paused. seq identifies the
// query generation that scheduled it.
type searchDebounceMsg struct {
	seq   int
	query string
}

// suggestionsMsg carries station search results back to the model.
type suggestionsMsg struct {
	result state.SuggestionsLoaded
}

package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobil-koeln/mvg-tui/internal/models"
	"github.com/mobil-koeln/mvg-tui/internal/state"
)

// Fetcher is the data source for the board. *api.Client implements it.
type Fetcher interface {
	ListStations(ctx context.Context) ([]models.Station, error)
	ListDepartures(ctx context.Context, stationID string) ([]models.Departure, error)
	SearchStations(ctx context.Context, query string) ([]models.Station, error)
}

// Settings holds the timing knobs of the event loop.
type Settings struct {
	// RefreshInterval is the period of automatic departure refreshes.
	RefreshInterval time.Duration
	// TickInterval is how often the seconds counter is sampled.
	TickInterval time.Duration
	// RequestTimeout bounds every fetch.
	RequestTimeout time.Duration
	// SearchDebounce delays a station search until typing pauses.
	SearchDebounce time.Duration
	// DisplaySeconds enables the tick source.
	DisplaySeconds bool
}

const (
	defaultTickInterval   = 250 * time.Millisecond
	defaultRequestTimeout = 10 * time.Second
	defaultSearchDebounce = 300 * time.Millisecond
	defaultRefresh        = time.Minute
)

func (s Settings) withDefaults() Settings {
	if s.RefreshInterval <= 0 {
		s.RefreshInterval = defaultRefresh
	}
	if s.TickInterval <= 0 {
		s.TickInterval = defaultTickInterval
	}
	if s.RequestTimeout <= 0 {
		s.RequestTimeout = defaultRequestTimeout
	}
	if s.SearchDebounce <= 0 {
		s.SearchDebounce = defaultSearchDebounce
	}
	return s
}

// Model is the root Bubble Tea model. All board state lives in the
// wrapped state.App; the model turns messages into events and effects
// into commands, and repaints only when the App asks for it.
type Model struct {
	app      *state.App
	fetcher  Fetcher
	settings Settings

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	width  int
	height int

	// frame is the last rendered screen, reused until a redraw is due
	frame string
	// pendingSearch is the seq of the newest scheduled station search
	pendingSearch int
	// now is replaced in tests
	now func() time.Time
}

// New creates a new TUI model around app.
func New(app *state.App, fetcher Fetcher, settings Settings) Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styleFavorite

	return Model{
		app:      app,
		fetcher:  fetcher,
		settings: settings.withDefaults(),
		keys:     newKeyMap(),
		help:     help.New(),
		spinner:  sp,
		now:      time.Now,
	}
}

// Init loads the station list and starts the timers.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		loadStations(m.fetcher, m.settings.RequestTimeout),
		refreshTick(m.settings.RefreshInterval),
		m.spinner.Tick,
	}
	if m.settings.DisplaySeconds {
		cmds = append(cmds, tick(m.settings.TickInterval))
	}
	return tea.Batch(cmds...)
}

// App returns the wrapped state machine.
func (m Model) App() *state.App {
	return m.app
}

package state

import (
	"errors"
	"testing"
	"time"

	"github.com/mobil-koeln/mvg-tui/internal/models"
	"github.com/mobil-koeln/mvg-tui/internal/testutil"
)

var refreshedAt = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, opts Options) *App {
	t.Helper()
	if opts.RedrawInterval == 0 {
		opts.RedrawInterval = 10
	}
	a, err := New(opts)
	testutil.AssertNil(t, err)
	return a
}

func threeStations() []models.Station {
	return []models.Station{
		{ID: "de:09162:1", Name: "A"},
		{ID: "de:09162:2", Name: "B"},
		{ID: "de:09162:3", Name: "C"},
	}
}

func at(hour, minute int) *time.Time {
	t := time.Date(2025, 1, 15, hour, minute, 0, 0, time.UTC)
	return &t
}

func press(a *App, keys ...string) []Effect {
	var effects []Effect
	for _, k := range keys {
		effects = append(effects, a.Handle(KeyPress{Key: k})...)
	}
	return effects
}

func typeText(a *App, text string) []Effect {
	var effects []Effect
	for _, r := range text {
		effects = append(effects, a.Handle(KeyPress{Key: string(r)})...)
	}
	return effects
}

func fetchOf(t *testing.T, effects []Effect) FetchDepartures {
	t.Helper()
	for _, e := range effects {
		if f, ok := e.(FetchDepartures); ok {
			return f
		}
	}
	t.Fatalf("no FetchDepartures in %v", effects)
	return FetchDepartures{}
}

func lastSearch(t *testing.T, effects []Effect) SearchStations {
	t.Helper()
	for i := len(effects) - 1; i >= 0; i-- {
		if s, ok := effects[i].(SearchStations); ok {
			return s
		}
	}
	t.Fatalf("no SearchStations in %v", effects)
	return SearchStations{}
}

func TestNew_RejectsInvalidInterval(t *testing.T) {
	_, err := New(Options{RedrawInterval: 0})
	if !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("New() error = %v, want ErrInvalidInterval", err)
	}
}

func TestNew_InitialState(t *testing.T) {
	a := newTestApp(t, Options{})
	snap := a.Snapshot()

	testutil.AssertEqual(t, snap.Tab, TabHome)
	testutil.AssertEqual(t, snap.Mode, ModeNormal)
	testutil.AssertEqual(t, snap.Status, "Loading stations...")
	testutil.AssertEqual(t, snap.StationCursor, -1)
	testutil.AssertEqual(t, snap.DepartureCursor, -1)
	testutil.AssertTrue(t, snap.Selected == nil)
	testutil.AssertTrue(t, a.NeedsRedraw())
}

func TestLoadStations_Failure(t *testing.T) {
	a := newTestApp(t, Options{})
	effects := a.LoadStations(nil, errors.New("connection refused"))

	testutil.AssertLen(t, effects, 0)
	testutil.AssertLen(t, a.Snapshot().Stations, 0)
	testutil.AssertContains(t, a.Status(), "Loading stations failed")
	testutil.AssertFalse(t, a.ShouldQuit())
}

func TestLoadStations_FavoriteStation(t *testing.T) {
	idx := 2
	a := newTestApp(t, Options{FavStationIdx: &idx})
	effects := a.LoadStations(threeStations(), nil)

	f := fetchOf(t, effects)
	testutil.AssertEqual(t, f.StationID, "de:09162:3")
	testutil.AssertEqual(t, f.Cause, CauseSelection)
	testutil.AssertEqual(t, a.Snapshot().StationCursor, 2)
}

func TestLoadStations_FavoriteOutOfRange(t *testing.T) {
	idx := 7
	a := newTestApp(t, Options{FavStationIdx: &idx})
	effects := a.LoadStations(threeStations(), nil)

	testutil.AssertLen(t, effects, 0)
	testutil.AssertContains(t, a.Status(), "out of range")
}

func TestToggleTab_IndependentOfMode(t *testing.T) {
	a := newTestApp(t, Options{})

	press(a, "tab")
	testutil.AssertEqual(t, a.Snapshot().Tab, TabStation)

	press(a, "/")
	testutil.AssertEqual(t, a.Snapshot().Mode, ModeSearch)

	press(a, "tab")
	snap := a.Snapshot()
	testutil.AssertEqual(t, snap.Tab, TabHome)
	testutil.AssertEqual(t, snap.Mode, ModeSearch)
}

// Station list [A, B, C], select B, fetch returns a bus and a tram, the
// allow-list keeps only buses.
func TestScenario_SelectStationAppliesFilter(t *testing.T) {
	a := newTestApp(t, Options{Transport: []string{"BUS"}})
	a.LoadStations(threeStations(), nil)

	press(a, "tab", "j", "j")
	testutil.AssertEqual(t, a.Snapshot().StationCursor, 1)

	f := fetchOf(t, press(a, "enter"))
	testutil.AssertEqual(t, f.StationID, "de:09162:2")
	testutil.AssertTrue(t, a.Fetching())
	testutil.AssertEqual(t, a.Snapshot().Tab, TabHome)

	a.Handle(DeparturesLoaded{
		StationID: f.StationID,
		Cause:     f.Cause,
		At:        refreshedAt,
		Departures: []models.Departure{
			{Line: "X", Planned: at(10, 0), TransportType: "BUS"},
			{Line: "Y", Planned: at(10, 5), TransportType: "TRAM"},
		},
	})

	snap := a.Snapshot()
	testutil.AssertLen(t, snap.Departures, 1)
	testutil.AssertEqual(t, snap.Departures[0].Line, "X")
	testutil.AssertEqual(t, snap.Selected.Name, "B")
	testutil.AssertFalse(t, snap.Fetching)
	testutil.AssertTrue(t, snap.LastRefreshed.Equal(refreshedAt))
}

// In search mode, typing "mu" then backspace leaves "m" with the cursor at 1.
func TestScenario_SearchEditing(t *testing.T) {
	a := newTestApp(t, Options{})
	press(a, "/")

	typeText(a, "mu")
	snap := a.Snapshot()
	testutil.AssertEqual(t, snap.Query, "mu")
	testutil.AssertEqual(t, snap.QueryCursor, 2)

	press(a, "backspace")
	snap = a.Snapshot()
	testutil.AssertEqual(t, snap.Query, "m")
	testutil.AssertEqual(t, snap.QueryCursor, 1)
}

// Selecting a searched station clears the query and the suggestion cursor
// and returns to the departure view in normal mode.
func TestScenario_SelectSearchedStation(t *testing.T) {
	a := newTestApp(t, Options{})
	a.LoadStations(threeStations(), nil)
	press(a, "tab", "/")

	s := lastSearch(t, typeText(a, "Mar"))
	testutil.AssertEqual(t, s.Query, "Mar")

	a.Handle(SuggestionsLoaded{Seq: s.Seq, Stations: []models.Station{
		{ID: "de:09162:2", Name: "Marienplatz"},
		{ID: "de:09162:50", Name: "Marsstraße"},
	}})
	press(a, "down", "down")
	testutil.AssertEqual(t, a.Snapshot().SuggestionCursor, 1)

	f := fetchOf(t, press(a, "enter"))
	testutil.AssertEqual(t, f.StationID, "de:09162:50")

	snap := a.Snapshot()
	testutil.AssertEqual(t, snap.Query, "")
	testutil.AssertEqual(t, snap.QueryCursor, 0)
	testutil.AssertEqual(t, snap.SuggestionCursor, -1)
	testutil.AssertLen(t, snap.Suggestions, 0)
	testutil.AssertEqual(t, snap.Mode, ModeNormal)
	testutil.AssertEqual(t, snap.Tab, TabHome)
	testutil.AssertEqual(t, snap.Selected.Name, "Marsstraße")
}

// A failed fetch empties the departure list and reports it in the status.
func TestScenario_FetchFailure(t *testing.T) {
	a := newTestApp(t, Options{})
	a.LoadStations(threeStations(), nil)
	press(a, "tab", "j")
	f := fetchOf(t, press(a, "enter"))
	a.Handle(DeparturesLoaded{StationID: f.StationID, Cause: f.Cause, At: refreshedAt,
		Departures: []models.Departure{{Line: "U3"}, {Line: "U6"}}})
	testutil.AssertLen(t, a.Snapshot().Departures, 2)

	f = fetchOf(t, a.Handle(RefreshDue{}))
	a.ClearRedraw()
	a.Handle(DeparturesLoaded{StationID: f.StationID, Cause: f.Cause, Err: errors.New("502 bad gateway")})

	snap := a.Snapshot()
	testutil.AssertLen(t, snap.Departures, 0)
	testutil.AssertContains(t, snap.Status, "Fetching departures failed")
	testutil.AssertFalse(t, snap.Fetching)
	testutil.AssertTrue(t, a.NeedsRedraw())
	testutil.AssertFalse(t, a.ShouldQuit())
	// The failed fetch does not move the refresh time.
	testutil.AssertTrue(t, snap.LastRefreshed.Equal(refreshedAt))
}

func TestSelectStation_RefusedWhileFetching(t *testing.T) {
	a := newTestApp(t, Options{})
	a.LoadStations(threeStations(), nil)
	press(a, "tab", "j")
	fetchOf(t, press(a, "enter"))

	press(a, "tab", "j")
	effects := press(a, "enter")
	testutil.AssertLen(t, effects, 0)
	testutil.AssertContains(t, a.Status(), "Still fetching")

	testutil.AssertLen(t, a.Handle(RefreshDue{}), 0)
}

func TestRefreshDue_NoStationIsNoOp(t *testing.T) {
	a := newTestApp(t, Options{})
	a.LoadStations(threeStations(), nil)
	testutil.AssertLen(t, a.Handle(RefreshDue{}), 0)
	testutil.AssertLen(t, press(a, "r"), 0)
}

func TestRefresh_PreservesDepartureCursor(t *testing.T) {
	a := newTestApp(t, Options{})
	a.LoadStations(threeStations(), nil)
	press(a, "tab", "j")
	f := fetchOf(t, press(a, "enter"))
	deps := []models.Departure{{Line: "1"}, {Line: "2"}, {Line: "3"}, {Line: "4"}}
	a.Handle(DeparturesLoaded{StationID: f.StationID, Cause: f.Cause, At: refreshedAt, Departures: deps})

	press(a, "j", "j", "j")
	testutil.AssertEqual(t, a.Snapshot().DepartureCursor, 2)

	f = fetchOf(t, a.Handle(RefreshDue{}))
	testutil.AssertEqual(t, f.Cause, CauseRefresh)
	a.Handle(DeparturesLoaded{StationID: f.StationID, Cause: f.Cause, At: refreshedAt.Add(time.Minute), Departures: deps})
	testutil.AssertEqual(t, a.Snapshot().DepartureCursor, 2)

	// The list shrank: the cursor is pulled back onto the last row.
	f = fetchOf(t, press(a, "r"))
	a.Handle(DeparturesLoaded{StationID: f.StationID, Cause: f.Cause, At: refreshedAt.Add(2 * time.Minute), Departures: deps[:2]})
	testutil.AssertEqual(t, a.Snapshot().DepartureCursor, 1)
}

func TestNewSelection_ResetsDepartureCursor(t *testing.T) {
	a := newTestApp(t, Options{})
	a.LoadStations(threeStations(), nil)
	press(a, "tab", "j")
	f := fetchOf(t, press(a, "enter"))
	deps := []models.Departure{{Line: "1"}, {Line: "2"}}
	a.Handle(DeparturesLoaded{StationID: f.StationID, Cause: f.Cause, At: refreshedAt, Departures: deps})
	press(a, "G")
	testutil.AssertEqual(t, a.Snapshot().DepartureCursor, 1)

	press(a, "tab", "j")
	f = fetchOf(t, press(a, "enter"))
	a.Handle(DeparturesLoaded{StationID: f.StationID, Cause: f.Cause, At: refreshedAt, Departures: deps})
	testutil.AssertEqual(t, a.Snapshot().DepartureCursor, -1)
}

func TestDeparturesLoaded_IgnoresOtherStation(t *testing.T) {
	a := newTestApp(t, Options{})
	a.LoadStations(threeStations(), nil)
	press(a, "tab", "j")
	fetchOf(t, press(a, "enter"))

	a.Handle(DeparturesLoaded{StationID: "de:09162:99", At: refreshedAt, Departures: []models.Departure{{Line: "X"}}})
	testutil.AssertLen(t, a.Snapshot().Departures, 0)
	testutil.AssertTrue(t, a.Fetching())
}

func TestNavigation_EmptyListsAreSafe(t *testing.T) {
	a := newTestApp(t, Options{})
	a.LoadStations(nil, nil)

	press(a, "j", "k", "G", "g", "enter")
	testutil.AssertEqual(t, a.Snapshot().DepartureCursor, -1)

	press(a, "tab", "j", "k", "G", "enter")
	testutil.AssertEqual(t, a.Snapshot().StationCursor, -1)

	// Suggestion list is empty too.
	press(a, "/", "down", "up", "enter")
	testutil.AssertEqual(t, a.Snapshot().SuggestionCursor, -1)
	testutil.AssertEqual(t, a.Snapshot().Mode, ModeSearch)
}

func TestNavigation_DepartureFirstLastNone(t *testing.T) {
	a := newTestApp(t, Options{})
	a.LoadStations(threeStations(), nil)
	press(a, "tab", "j")
	f := fetchOf(t, press(a, "enter"))
	a.Handle(DeparturesLoaded{StationID: f.StationID, Cause: f.Cause, At: refreshedAt,
		Departures: []models.Departure{{Line: "1"}, {Line: "2"}, {Line: "3"}}})

	press(a, "G")
	testutil.AssertEqual(t, a.Snapshot().DepartureCursor, 2)
	press(a, "j")
	testutil.AssertEqual(t, a.Snapshot().DepartureCursor, 0)
	press(a, "k")
	testutil.AssertEqual(t, a.Snapshot().DepartureCursor, 2)
	press(a, "g")
	testutil.AssertEqual(t, a.Snapshot().DepartureCursor, 0)
	press(a, "esc")
	testutil.AssertEqual(t, a.Snapshot().DepartureCursor, -1)
}

func TestSearch_ShortQueryClearsSuggestions(t *testing.T) {
	a := newTestApp(t, Options{SearchMinChars: 3})
	press(a, "/")

	effects := typeText(a, "ma")
	testutil.AssertLen(t, effects, 0)

	s := lastSearch(t, typeText(a, "r"))
	a.Handle(SuggestionsLoaded{Seq: s.Seq, Stations: threeStations()})
	testutil.AssertLen(t, a.Snapshot().Suggestions, 3)

	effects = press(a, "backspace")
	testutil.AssertLen(t, effects, 0)
	testutil.AssertLen(t, a.Snapshot().Suggestions, 0)
}

func TestSearch_StaleSuggestionsIgnored(t *testing.T) {
	a := newTestApp(t, Options{})
	press(a, "/")

	first := lastSearch(t, typeText(a, "ma"))
	second := lastSearch(t, typeText(a, "r"))
	testutil.AssertTrue(t, second.Seq > first.Seq)

	a.Handle(SuggestionsLoaded{Seq: first.Seq, Stations: threeStations()})
	testutil.AssertLen(t, a.Snapshot().Suggestions, 0)

	a.Handle(SuggestionsLoaded{Seq: second.Seq, Stations: threeStations()[:1]})
	testutil.AssertLen(t, a.Snapshot().Suggestions, 1)
}

func TestSearch_FailureShowsStatus(t *testing.T) {
	a := newTestApp(t, Options{})
	press(a, "/")
	s := lastSearch(t, typeText(a, "ma"))

	a.Handle(SuggestionsLoaded{Seq: s.Seq, Err: errors.New("timeout")})
	testutil.AssertContains(t, a.Status(), "Search failed")
	testutil.AssertLen(t, a.Snapshot().Suggestions, 0)
}

func TestSearch_EscEndsSession(t *testing.T) {
	a := newTestApp(t, Options{})
	press(a, "/")
	s := lastSearch(t, typeText(a, "mar"))
	a.Handle(SuggestionsLoaded{Seq: s.Seq, Stations: threeStations()})
	press(a, "down")

	press(a, "esc")
	snap := a.Snapshot()
	testutil.AssertEqual(t, snap.Mode, ModeNormal)
	testutil.AssertEqual(t, snap.Query, "")
	testutil.AssertEqual(t, snap.SuggestionCursor, -1)
	testutil.AssertLen(t, snap.Suggestions, 0)

	// A late result for the finished session is dropped.
	press(a, "/")
	a.Handle(SuggestionsLoaded{Seq: s.Seq, Stations: threeStations()})
	testutil.AssertLen(t, a.Snapshot().Suggestions, 0)
}

func TestSearch_EnterWithoutSuggestionKeepsSession(t *testing.T) {
	a := newTestApp(t, Options{})
	press(a, "/")
	typeText(a, "mar")

	effects := press(a, "enter")
	testutil.AssertLen(t, effects, 0)
	snap := a.Snapshot()
	testutil.AssertEqual(t, snap.Mode, ModeSearch)
	testutil.AssertEqual(t, snap.Query, "mar")
}

func TestSearch_CursorKeysAndSpaces(t *testing.T) {
	a := newTestApp(t, Options{})
	press(a, "/")
	typeText(a, "Sendlinger Tor")
	press(a, "left", "left", "left", "left")
	testutil.AssertEqual(t, a.Snapshot().QueryCursor, 10)

	press(a, "right")
	testutil.AssertEqual(t, a.Snapshot().QueryCursor, 11)

	// Normal-mode keys are plain text in search mode.
	typeText(a, "q")
	testutil.AssertFalse(t, a.ShouldQuit())
	testutil.AssertEqual(t, a.Snapshot().Query, "Sendlinger qTor")
}

func TestQuitKeys(t *testing.T) {
	a := newTestApp(t, Options{})
	effects := press(a, "q")
	testutil.AssertLen(t, effects, 1)
	_, ok := effects[0].(Quit)
	testutil.AssertTrue(t, ok)
	testutil.AssertTrue(t, a.ShouldQuit())

	b := newTestApp(t, Options{})
	press(b, "/")
	press(b, "ctrl+c")
	testutil.AssertTrue(t, b.ShouldQuit())
}

func TestTick_RedrawOnlyOnInterval(t *testing.T) {
	a := newTestApp(t, Options{DisplaySeconds: true, RedrawInterval: 5})
	a.LoadStations(threeStations(), nil)
	press(a, "tab", "j")
	f := fetchOf(t, press(a, "enter"))
	a.Handle(DeparturesLoaded{StationID: f.StationID, Cause: f.Cause, At: refreshedAt})
	testutil.AssertTrue(t, a.NeedsRedraw())
	a.ClearRedraw()

	a.Handle(Tick{Now: refreshedAt.Add(3 * time.Second)})
	testutil.AssertFalse(t, a.NeedsRedraw())

	a.Handle(Tick{Now: refreshedAt.Add(5 * time.Second)})
	testutil.AssertTrue(t, a.NeedsRedraw())
	testutil.AssertEqual(t, a.Snapshot().Elapsed, int64(5))
}

func TestTick_DisplaySecondsOff(t *testing.T) {
	a := newTestApp(t, Options{DisplaySeconds: false, RedrawInterval: 1})
	a.LoadStations(threeStations(), nil)
	press(a, "tab", "j")
	f := fetchOf(t, press(a, "enter"))
	a.Handle(DeparturesLoaded{StationID: f.StationID, Cause: f.Cause, At: refreshedAt})
	a.ClearRedraw()

	a.Handle(Tick{Now: refreshedAt.Add(4 * time.Second)})
	testutil.AssertFalse(t, a.NeedsRedraw())
}

func TestKeyPress_Redraws(t *testing.T) {
	a := newTestApp(t, Options{})
	a.ClearRedraw()
	press(a, "j")
	testutil.AssertTrue(t, a.NeedsRedraw())

	a.ClearRedraw()
	a.Handle(Resize{})
	testutil.AssertTrue(t, a.NeedsRedraw())
}

func TestSnapshot_IsACopy(t *testing.T) {
	a := newTestApp(t, Options{})
	a.LoadStations(threeStations(), nil)
	press(a, "tab", "j")
	f := fetchOf(t, press(a, "enter"))
	a.Handle(DeparturesLoaded{StationID: f.StationID, Cause: f.Cause, At: refreshedAt,
		Departures: []models.Departure{{Line: "U3"}}})

	snap := a.Snapshot()
	snap.Departures[0].Line = "changed"
	snap.Selected.Name = "changed"

	again := a.Snapshot()
	testutil.AssertEqual(t, again.Departures[0].Line, "U3")
	testutil.AssertEqual(t, again.Selected.Name, "A")
}

func TestModeAndTabStrings(t *testing.T) {
	testutil.AssertEqual(t, ModeNormal.String(), "NORMAL")
	testutil.AssertEqual(t, ModeSearch.String(), "SEARCH")
	testutil.AssertEqual(t, TabHome.String(), "Departures")
	testutil.AssertEqual(t, TabStation.String(), "Stations")
	testutil.AssertEqual(t, CauseRefresh.String(), "refresh")
	testutil.AssertEqual(t, CauseSelection.String(), "selection")
}

func TestTextInput_InsertsAllRunesAsOneEdit(t *testing.T) {
	a := newTestApp(t, Options{})
	a.LoadStations(threeStations(), nil)
	press(a, "/")

	effects := a.Handle(TextInput{Runes: []rune("Marienplatz")})
	testutil.AssertLen(t, effects, 1)
	search := lastSearch(t, effects)
	testutil.AssertEqual(t, search.Query, "Marienplatz")
	testutil.AssertEqual(t, a.Snapshot().QueryCursor, 11)

	// Inserted at the cursor, not appended.
	press(a, "left", "left")
	effects = a.Handle(TextInput{Runes: []rune("ÄÖ")})
	testutil.AssertEqual(t, lastSearch(t, effects).Query, "MarienplaÄÖtz")
	testutil.AssertEqual(t, lastSearch(t, effects).Seq, search.Seq+1)
}

func TestTextInput_SkipsControlRunes(t *testing.T) {
	a := newTestApp(t, Options{})
	press(a, "/")

	effects := a.Handle(TextInput{Runes: []rune("Sendlinger\nTor\t")})
	testutil.AssertEqual(t, lastSearch(t, effects).Query, "SendlingerTor")

	testutil.AssertLen(t, a.Handle(TextInput{Runes: []rune("\r\n")}), 0)
	testutil.AssertEqual(t, a.Snapshot().Query, "SendlingerTor")
}

func TestTextInput_IgnoredInNormalMode(t *testing.T) {
	a := newTestApp(t, Options{})
	a.LoadStations(threeStations(), nil)

	testutil.AssertLen(t, a.Handle(TextInput{Runes: []rune("jjq")}), 0)
	testutil.AssertFalse(t, a.ShouldQuit())
	testutil.AssertEqual(t, a.Snapshot().Query, "")
	testutil.AssertEqual(t, a.Mode(), ModeNormal)
}

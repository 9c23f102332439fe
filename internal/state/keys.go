package state

import (
	"unicode"
	"unicode/utf8"
)

func (a *App) handleKey(key string) []Effect {
	if key == "ctrl+c" {
		return a.quit()
	}
	if a.mode == ModeSearch {
		return a.handleSearchKey(key)
	}
	return a.handleNormalKey(key)
}

func (a *App) handleNormalKey(key string) []Effect {
	a.clock.Invalidate()

	switch key {
	case "q":
		return a.quit()
	case "tab", "shift+tab":
		a.ToggleTab()
	case "/", "s":
		a.EnterSearch()
	case "r":
		return a.refresh()
	case "j", "down":
		a.navigate(func(c *Cursor, n int) { c.Next(n) })
	case "k", "up":
		a.navigate(func(c *Cursor, n int) { c.Previous(n) })
	case "g", "home":
		a.navigate(func(c *Cursor, _ int) { c.SelectFirst() })
	case "G", "end":
		a.navigate(func(c *Cursor, n int) { c.SelectLast(n) })
	case "esc":
		a.navigate(func(c *Cursor, _ int) { c.SelectNone() })
	case "enter":
		if a.tab == TabStation {
			return a.SelectStation()
		}
	}
	return nil
}

// navigate applies move to the cursor of the focused list. Lists that are
// empty are left alone.
func (a *App) navigate(move func(c *Cursor, n int)) {
	cursor, n := &a.departureCursor, len(a.departures)
	if a.tab == TabStation {
		cursor, n = &a.stationCursor, len(a.stations)
	}
	if n == 0 {
		cursor.SelectNone()
		return
	}
	move(cursor, n)
}

func (a *App) handleSearchKey(key string) []Effect {
	a.clock.Invalidate()

	switch key {
	case "esc":
		a.ExitSearch()
		return nil
	case "enter":
		return a.SelectSearchedStation()
	case "tab", "shift+tab":
		a.ToggleTab()
		return nil
	case "down", "ctrl+n":
		a.searchCursor.Next(len(a.suggestions))
		return nil
	case "up", "ctrl+p":
		a.searchCursor.Previous(len(a.suggestions))
		return nil
	case "left":
		a.query.MoveLeft()
		return nil
	case "right":
		a.query.MoveRight()
		return nil
	case "backspace":
		if a.query.Cursor() == 0 {
			return nil
		}
		a.query.DeleteBeforeCursor()
		return a.queryChanged()
	}

	if r, ok := insertable(key); ok {
		a.query.Insert(r)
		return a.queryChanged()
	}
	return nil
}

// insertText types runes into the query as a single edit, so a paste
// starts one search. Non-printable runes such as newlines are skipped.
// Outside search mode the input is ignored.
func (a *App) insertText(runes []rune) []Effect {
	if a.mode != ModeSearch {
		return nil
	}
	a.clock.Invalidate()

	inserted := false
	for _, r := range runes {
		if unicode.IsPrint(r) {
			a.query.Insert(r)
			inserted = true
		}
	}
	if !inserted {
		return nil
	}
	return a.queryChanged()
}

// insertable reports whether key is a single printable rune.
func insertable(key string) (rune, bool) {
	if utf8.RuneCountInString(key) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(key)
	if !unicode.IsPrint(r) {
		return 0, false
	}
	return r, true
}

func (a *App) quit() []Effect {
	a.shouldQuit = true
	return []Effect{Quit{}}
}

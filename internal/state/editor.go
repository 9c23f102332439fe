package state

// Editor holds the search query and a cursor position inside it. Positions
// count runes, not bytes, so station names with umlauts edit correctly.
type Editor struct {
	text []rune
	pos  int
}

// String returns the current text.
func (e *Editor) String() string {
	return string(e.text)
}

// Cursor returns the cursor position in runes.
func (e *Editor) Cursor() int {
	return e.pos
}

// Len returns the text length in runes.
func (e *Editor) Len() int {
	return len(e.text)
}

// Insert puts r at the cursor and moves the cursor right.
func (e *Editor) Insert(r rune) {
	e.pos = e.clamp(e.pos)
	e.text = append(e.text, 0)
	copy(e.text[e.pos+1:], e.text[e.pos:])
	e.text[e.pos] = r
	e.MoveRight()
}

// DeleteBeforeCursor removes the rune left of the cursor. It does nothing
// at position 0.
func (e *Editor) DeleteBeforeCursor() {
	e.pos = e.clamp(e.pos)
	if e.pos == 0 {
		return
	}
	e.text = append(e.text[:e.pos-1], e.text[e.pos:]...)
	e.MoveLeft()
}

// MoveLeft moves the cursor one rune left, stopping at 0.
func (e *Editor) MoveLeft() {
	e.pos = e.clamp(e.pos - 1)
}

// MoveRight moves the cursor one rune right, stopping at the end.
func (e *Editor) MoveRight() {
	e.pos = e.clamp(e.pos + 1)
}

// Reset clears the text and the cursor.
func (e *Editor) Reset() {
	e.text = nil
	e.pos = 0
}

func (e *Editor) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(e.text) {
		return len(e.text)
	}
	return pos
}

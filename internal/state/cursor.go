package state

// Cursor is an optional index into a list whose length is only known at
// call time. The zero value has no selection.
//
// The cursor never stores the length. Callers pass the current length to
// every operation, and read the index back through Index, which checks it
// against the length again.
type Cursor struct {
	index    int
	selected bool
}

// Selected returns the raw index and whether a selection exists.
func (c Cursor) Selected() (int, bool) {
	return c.index, c.selected
}

// Index returns the selected index if it is valid for a list of length n.
func (c Cursor) Index(n int) (int, bool) {
	if !c.selected || c.index < 0 || c.index >= n {
		return 0, false
	}
	return c.index, true
}

// Select sets the cursor to i. Out-of-range values are not checked here;
// Index and Clamp handle them.
func (c *Cursor) Select(i int) {
	c.index = i
	c.selected = true
}

// Next advances by one with wraparound. With no selection it selects 0.
// It is a no-op for an empty list.
func (c *Cursor) Next(n int) {
	if n <= 0 {
		return
	}
	if !c.selected || c.index >= n-1 {
		c.Select(0)
		return
	}
	c.Select(c.index + 1)
}

// Previous retreats by one with wraparound. With no selection it selects 0.
// It is a no-op for an empty list.
func (c *Cursor) Previous(n int) {
	if n <= 0 {
		return
	}
	if !c.selected {
		c.Select(0)
		return
	}
	if c.index <= 0 || c.index > n-1 {
		c.Select(n - 1)
		return
	}
	c.Select(c.index - 1)
}

// SelectFirst selects index 0.
func (c *Cursor) SelectFirst() {
	c.Select(0)
}

// SelectLast selects n-1 when n > 1, else 0.
func (c *Cursor) SelectLast(n int) {
	last := 0
	if n > 1 {
		last = n - 1
	}
	c.Select(last)
}

// SelectNone clears the selection.
func (c *Cursor) SelectNone() {
	c.index = 0
	c.selected = false
}

// Clamp re-validates the cursor against a list of length n: it is cleared
// when the list is empty and pulled back to the last row when the list
// shrank below it.
func (c *Cursor) Clamp(n int) {
	if !c.selected {
		return
	}
	if n <= 0 {
		c.SelectNone()
		return
	}
	if c.index >= n {
		c.Select(n - 1)
	}
	if c.index < 0 {
		c.Select(0)
	}
}

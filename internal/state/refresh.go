package state

import (
	"errors"
	"time"
)

// ErrInvalidInterval is returned for a redraw interval of zero or less.
var ErrInvalidInterval = errors.New("redraw interval must be positive")

// RefreshClock tracks the time since the last successful data refresh and
// decides when the screen needs repainting.
//
// Redrawing on every tick keeps the process busy for no visible change, so
// idle redraws happen only when the elapsed seconds are a multiple of the
// interval. A successful refresh always requests a redraw.
type RefreshClock struct {
	interval    int64
	lastRefresh time.Time
	elapsed     int64
	dirty       bool
}

// NewRefreshClock creates a clock that redraws every interval seconds.
func NewRefreshClock(interval int) (*RefreshClock, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	return &RefreshClock{
		interval: int64(interval),
		dirty:    true,
	}, nil
}

// Tick recomputes the elapsed seconds from the wall clock, so dropped ticks
// do not skew the counter. It reports whether a redraw was requested.
// Before the first refresh there is no counter to show and Tick does nothing.
func (c *RefreshClock) Tick(now time.Time) bool {
	if c.lastRefresh.IsZero() {
		return false
	}
	seconds := int64(now.Sub(c.lastRefresh) / time.Second)
	if seconds%c.interval != 0 {
		return false
	}
	c.elapsed = seconds
	c.dirty = true
	return true
}

// MarkRefreshed records a successful refresh at now and requests a redraw.
func (c *RefreshClock) MarkRefreshed(now time.Time) {
	c.lastRefresh = now
	c.elapsed = 0
	c.dirty = true
}

// Invalidate requests a redraw without touching the refresh time.
func (c *RefreshClock) Invalidate() {
	c.dirty = true
}

// NeedsRedraw reports whether a redraw is pending.
func (c *RefreshClock) NeedsRedraw() bool {
	return c.dirty
}

// ClearRedraw is called by the main loop after it repainted.
func (c *RefreshClock) ClearRedraw() {
	c.dirty = false
}

// LastRefreshed returns the time of the last successful refresh, zero if
// there was none.
func (c *RefreshClock) LastRefreshed() time.Time {
	return c.lastRefresh
}

// Elapsed returns the displayed seconds since the last refresh. It only
// changes when Tick requests a redraw.
func (c *RefreshClock) Elapsed() int64 {
	return c.elapsed
}

// Interval returns the redraw interval in seconds.
func (c *RefreshClock) Interval() int {
	return int(c.interval)
}

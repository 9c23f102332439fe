package state

import (
	"testing"

	"github.com/mobil-koeln/mvg-tui/internal/testutil"
)

func TestCursor_ZeroValueHasNoSelection(t *testing.T) {
	var c Cursor
	_, ok := c.Selected()
	testutil.AssertFalse(t, ok)
	_, ok = c.Index(5)
	testutil.AssertFalse(t, ok)
}

func TestCursor_NextFromNoneSelectsFirst(t *testing.T) {
	var c Cursor
	c.Next(3)
	i, ok := c.Index(3)
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, i, 0)
}

func TestCursor_PreviousFromNoneSelectsFirst(t *testing.T) {
	var c Cursor
	c.Previous(3)
	i, ok := c.Index(3)
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, i, 0)
}

func TestCursor_NextWrapsAroundClosure(t *testing.T) {
	// Property: from no selection, L calls visit every index once and the
	// (L+1)-th call returns to the first index.
	for n := 1; n <= 12; n++ {
		var c Cursor
		seen := make(map[int]bool)
		for step := 0; step < n; step++ {
			c.Next(n)
			i, ok := c.Index(n)
			if !ok {
				t.Fatalf("n=%d step=%d: no selection", n, step)
			}
			if seen[i] {
				t.Fatalf("n=%d: index %d visited twice", n, i)
			}
			seen[i] = true
		}
		testutil.AssertEqual(t, len(seen), n)

		c.Next(n)
		i, _ := c.Index(n)
		if i != 0 {
			t.Errorf("n=%d: call %d returned %d, want 0", n, n+1, i)
		}
	}
}

func TestCursor_PreviousFromZeroWrapsToLast(t *testing.T) {
	for n := 1; n <= 12; n++ {
		var c Cursor
		c.SelectFirst()
		c.Previous(n)
		i, ok := c.Index(n)
		testutil.AssertTrue(t, ok)
		if i != n-1 {
			t.Errorf("n=%d: Previous from 0 = %d, want %d", n, i, n-1)
		}
	}
}

func TestCursor_PreviousSteps(t *testing.T) {
	var c Cursor
	c.Select(3)
	c.Previous(5)
	i, _ := c.Index(5)
	testutil.AssertEqual(t, i, 2)
}

func TestCursor_EmptyListIsNoOp(t *testing.T) {
	var c Cursor
	c.Next(0)
	c.Previous(0)
	_, ok := c.Selected()
	testutil.AssertFalse(t, ok)

	c.Select(2)
	c.Next(0)
	i, ok := c.Selected()
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, i, 2)
}

func TestCursor_SelectFirstLastNone(t *testing.T) {
	var c Cursor

	c.SelectLast(5)
	i, _ := c.Index(5)
	testutil.AssertEqual(t, i, 4)

	c.SelectLast(1)
	i, _ = c.Index(1)
	testutil.AssertEqual(t, i, 0)

	c.SelectLast(0)
	i, ok := c.Selected()
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, i, 0)

	c.SelectFirst()
	i, _ = c.Index(3)
	testutil.AssertEqual(t, i, 0)

	c.SelectNone()
	_, ok = c.Selected()
	testutil.AssertFalse(t, ok)
}

func TestCursor_IndexRevalidatesAgainstLength(t *testing.T) {
	var c Cursor
	c.Select(4)

	_, ok := c.Index(5)
	testutil.AssertTrue(t, ok)

	// The list shrank underneath the cursor.
	_, ok = c.Index(3)
	testutil.AssertFalse(t, ok)
	_, ok = c.Index(0)
	testutil.AssertFalse(t, ok)
}

func TestCursor_Clamp(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		selected bool
		n        int
		want     int
		wantOK   bool
	}{
		{"in range unchanged", 2, true, 5, 2, true},
		{"shrunk list pulls back", 7, true, 3, 2, true},
		{"empty list clears", 1, true, 0, 0, false},
		{"no selection stays none", 0, false, 4, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Cursor
			if tt.selected {
				c.Select(tt.start)
			}
			c.Clamp(tt.n)
			i, ok := c.Index(tt.n)
			testutil.AssertEqual(t, ok, tt.wantOK)
			if ok {
				testutil.AssertEqual(t, i, tt.want)
			}
		})
	}
}

func TestCursor_PreviousAfterShrink(t *testing.T) {
	var c Cursor
	c.Select(9)
	c.Previous(4)
	i, ok := c.Index(4)
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, i, 3)
}

package textrange

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOverlapsWith(t *testing.T) {
	a := New(0, 10)
	b := New(10, 20)
	require.True(t, a.OverlapsWith(b), "touching ranges count as overlapping")

	c := New(11, 20)
	require.False(t, a.OverlapsWith(c))
}

func TestContainsRange(t *testing.T) {
	outer := New(0, 100)
	inner := New(10, 20)
	require.True(t, outer.ContainsRange(inner))
	require.False(t, inner.ContainsRange(outer))
}

func TestShiftRightBy(t *testing.T) {
	r := New(5, 10)
	shifted := r.ShiftRightBy(3)
	require.Equal(t, New(8, 13), shifted)
}

func TestEditOffsetApplyInsertAfter(t *testing.T) {
	// insert 4 bytes at byte 50; a range entirely before is untouched.
	e := EditOffset{At: 50, Inserted: 4}
	r := New(10, 20)
	require.Equal(t, r, e.Apply(r))
}

func TestEditOffsetApplyInsertBefore(t *testing.T) {
	// insert 4 bytes at byte 0; a later range shifts forward by 4.
	e := EditOffset{At: 0, Inserted: 4}
	r := New(10, 20)
	require.Equal(t, New(14, 24), e.Apply(r))
}

func TestEditOffsetApplyInsertAtRangeStart(t *testing.T) {
	// insert 3 bytes exactly at r.Start; the whole range, including its
	// start, shifts right rather than staying pinned at the edit point.
	e := EditOffset{At: 5, Inserted: 3}
	r := New(5, 10)
	require.Equal(t, New(8, 13), e.Apply(r))
}

func TestEditOffsetApplyDeleteSpanningRange(t *testing.T) {
	// delete bytes [5, 25) entirely swallows the [10,20) range; it collapses
	// to the edit point.
	e := EditOffset{At: 5, Deleted: 20}
	r := New(10, 20)
	got := e.Apply(r)
	require.True(t, got.IsEmpty())
	require.Equal(t, uint32(5), got.Start)
}

func TestComposeAdjacentEdits(t *testing.T) {
	a := EditOffset{At: 10, Inserted: 2, Deleted: 1}
	b := EditOffset{At: 10, Inserted: 3, Deleted: 0}
	composed := Compose(a, b)
	require.Equal(t, EditOffset{At: 10, Inserted: 5, Deleted: 1}, composed)
}

// Package textrange provides the half-open byte-offset range type shared by
// the rope, CST, and scope-graph layers, plus the edit-offset algebra used to
// remap stored ranges across incremental edits.
package textrange

import "fmt"

// TextRange is a half-open byte interval [Start, End) into a document.
type TextRange struct {
	Start uint32
	End   uint32
}

// New builds a TextRange from a start and end byte offset.
func New(start, end uint32) TextRange {
	return TextRange{Start: start, End: end}
}

// FromUsize builds a TextRange from an int start/end pair.
func FromUsize(start, end int) TextRange {
	return TextRange{Start: uint32(start), End: uint32(end)}
}

// OverlapsWith reports whether r and b overlap or touch: the comparison is
// inclusive at both ends, so touching boundaries (r.End == b.Start) count as
// overlapping.
func (r TextRange) OverlapsWith(b TextRange) bool {
	return r.Start <= b.End && b.Start <= r.End
}

// Contains reports whether byte falls within r.
func (r TextRange) Contains(byte uint32) bool {
	return r.Start <= byte && byte < r.End
}

// ContainsRange reports whether r fully contains b.
func (r TextRange) ContainsRange(b TextRange) bool {
	return r.Start <= b.Start && r.End >= b.End
}

// Len returns the number of bytes spanned by r.
func (r TextRange) Len() uint32 {
	return r.End - r.Start
}

// IsEmpty reports whether r spans zero bytes.
func (r TextRange) IsEmpty() bool {
	return r.Start == r.End
}

// ShiftRightBy returns a copy of r translated forward by offset bytes.
func (r TextRange) ShiftRightBy(offset uint32) TextRange {
	return TextRange{Start: r.Start + offset, End: r.End + offset}
}

// IntoUsizeRange returns the [start, end) pair as ints, for slicing Go strings/bytes.
func (r TextRange) IntoUsizeRange() (int, int) {
	return int(r.Start), int(r.End)
}

func (r TextRange) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// EditOffset describes a single incremental text mutation in byte-offset
// space, used to remap previously recorded TextRanges (scope spans, stored
// node identities) after an edit without reparsing everything from scratch.
type EditOffset struct {
	// At is the byte offset the edit occurred at, in pre-edit coordinates.
	At uint32
	// Inserted is the number of bytes inserted at At.
	Inserted uint32
	// Deleted is the number of bytes removed starting at At (pre-edit).
	Deleted uint32
}

// Apply remaps r across the edit described by e. Ranges entirely before the
// edit are unaffected. Ranges entirely after the deleted span are shifted by
// the net delta (Inserted - Deleted). Ranges overlapping the deleted span are
// clipped to the edit point and then extended by Inserted bytes, matching the
// "delete the overlap, then insert" composition used by the edit pipeline's
// ChangedRange remapping. A pure insertion (Deleted == 0) whose edit point
// sits exactly at r.Start shifts the whole range forward rather than leaving
// Start pinned: delStart == delEnd == At in that case, so r.Start lands in
// the "at or past the edit" branch along with r.End. A non-empty range that
// ends exactly at the edit point counts as entirely before the edit and is
// left unchanged.
func (e EditOffset) Apply(r TextRange) TextRange {
	if r.Start < r.End && r.End <= e.At {
		return r
	}

	delStart := e.At
	delEnd := e.At + e.Deleted

	remap := func(byte uint32) uint32 {
		switch {
		case byte < delStart:
			return byte
		case byte >= delEnd:
			return byte - e.Deleted + e.Inserted
		default:
			return e.At + e.Inserted
		}
	}

	return TextRange{Start: remap(r.Start), End: remap(r.End)}
}

// Compose returns the single EditOffset equivalent to applying a then b in
// sequence, both adjacent edits at the same document position (the common
// case when the editor batches several keystrokes into one notification).
// Callers that need disjoint, non-adjacent edits should remap each one
// separately via Apply instead of composing them.
func Compose(a, b EditOffset) EditOffset {
	return EditOffset{
		At:       a.At,
		Inserted: a.Inserted + b.Inserted,
		Deleted:  a.Deleted + b.Deleted,
	}
}

package query

import "sort"

// interval is one entry in an IntervalIndex: a byte range plus the ident it
// was recorded under, so a range deletion can also clean out the trie.
type interval struct {
	start, end uint32
	ident      string
	occ        Occurrence
}

// IntervalIndex tracks every occurrence by its byte range within one file,
// kept sorted by start offset, so a changed byte range (a reparse, a
// didClose) can find and remove every occurrence it invalidated without
// rescanning the whole trie.
type IntervalIndex struct {
	uri       string
	trie      *Trie
	intervals []interval
}

// NewIntervalIndex builds an index for uri that also maintains trie.
func NewIntervalIndex(uri string, trie *Trie) *IntervalIndex {
	return &IntervalIndex{uri: uri, trie: trie}
}

// Insert records one occurrence of ident at [start, end) and inserts it
// into the backing trie.
func (idx *IntervalIndex) Insert(ident string, start, end uint32) {
	occ := Occurrence{URI: idx.uri, Start: start, End: end}
	idx.trie.Insert(ident, occ)

	iv := interval{start: start, end: end, ident: ident, occ: occ}
	i := sort.Search(len(idx.intervals), func(i int) bool { return idx.intervals[i].start >= start })
	idx.intervals = append(idx.intervals, interval{})
	copy(idx.intervals[i+1:], idx.intervals[i:])
	idx.intervals[i] = iv
}

// DeleteOverlapping removes every occurrence overlapping [start, end) from
// both this index and the backing trie, returning how many were removed.
func (idx *IntervalIndex) DeleteOverlapping(start, end uint32) int {
	kept := idx.intervals[:0]
	removed := 0
	for _, iv := range idx.intervals {
		if iv.start < end && start < iv.end {
			idx.trie.Remove(iv.ident, iv.occ)
			removed++
			continue
		}
		kept = append(kept, iv)
	}
	idx.intervals = kept
	return removed
}

// Len reports how many occurrences are currently indexed.
func (idx *IntervalIndex) Len() int {
	return len(idx.intervals)
}

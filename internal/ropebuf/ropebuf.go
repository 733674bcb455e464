// Package ropebuf layers line-indexed byte bookkeeping on top of
// github.com/shaia/rope's immutable rope, the way range_util.rs layers
// byte/line conversions on top of the crop crate's Rope in the original
// server. The rope library itself only knows about byte offsets; this
// package adds ByteOfLine/LineOfByte and a Replace helper that returns the
// EditOffset the caller needs to remap stored ranges.
package ropebuf

import (
	"sync"

	"github.com/shaia/rope"

	"github.com/shinyvision/kls/internal/textrange"
)

// Rope is a mutable-by-replacement, line-indexed text buffer for one
// document. Safe for concurrent readers; writers must hold the document's
// own write lock (see internal/workspace), Rope itself only guards its
// internal line-index cache.
type Rope struct {
	mu         sync.RWMutex
	root       rope.Node
	lineStarts []uint32 // byte offset of the first byte of each line; always starts with 0
}

// New builds a Rope from the initial document content.
func New(content string) *Rope {
	r := &Rope{root: rope.New(content)}
	r.reindex()
	return r
}

// Len returns the buffer length in bytes.
func (r *Rope) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.root.Len()
}

// String materializes the full buffer content.
func (r *Rope) String() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.root.String()
}

// ByteSlice returns the content of the half-open byte range [start, end).
func (r *Rope) ByteSlice(start, end int) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.root.Slice(start, end).String()
}

// ByteOfLine returns the byte offset of the first byte of the given
// zero-based line number. A line number beyond the last line returns the
// buffer length.
func (r *Rope) ByteOfLine(line int) uint32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if line < 0 {
		line = 0
	}
	if line >= len(r.lineStarts) {
		return uint32(r.root.Len())
	}
	return r.lineStarts[line]
}

// LineOfByte returns the zero-based line number containing byteOffset.
func (r *Rope) LineOfByte(byteOffset uint32) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lineOfByteLocked(byteOffset)
}

func (r *Rope) lineOfByteLocked(byteOffset uint32) int {
	// lineStarts is sorted ascending; find the last line whose start <= byteOffset.
	lo, hi := 0, len(r.lineStarts)-1
	best := 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if r.lineStarts[mid] <= byteOffset {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return best
}

// Point is a zero-based (line, column-in-bytes) position, the rope-level
// analog of a tree-sitter Point.
type Point struct {
	Row    int
	Column int
}

// PointOfByte converts a byte offset into a line/column Point.
func (r *Rope) PointOfByte(byteOffset uint32) Point {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row := r.lineOfByteLocked(byteOffset)
	return Point{Row: row, Column: int(byteOffset - r.lineStarts[row])}
}

// ByteOfLSPPosition converts an LSP (line, UTF-16-oblivious byte character)
// position to a byte offset, mirroring lsp_pos_to_byte_pos: the character
// offset is added directly to the line's starting byte, so callers that
// speak UTF-16 columns must transcode before calling this.
func (r *Rope) ByteOfLSPPosition(line, character uint32) uint32 {
	return r.ByteOfLine(int(line)) + character
}

// Replace deletes [start, end) and inserts text at start, returning the
// EditOffset describing the mutation so callers can remap previously stored
// TextRanges (scope spans, CST node identities) across the edit.
func (r *Rope) Replace(start, end int, text string) textrange.EditOffset {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := end - start
	next := r.root
	if deleted > 0 {
		next = rope.Delete(next, start, end)
	}
	if len(text) > 0 {
		next = rope.Insert(next, start, text)
	}
	r.root = next
	r.reindexLocked()

	return textrange.EditOffset{
		At:       uint32(start),
		Inserted: uint32(len(text)),
		Deleted:  uint32(deleted),
	}
}

func (r *Rope) reindex() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reindexLocked()
}

// reindexLocked recomputes the full line-start table from the current
// content. This module does not attempt incremental line-index maintenance;
// each replace rescans the buffer once, which keeps the index always
// correct and is fast enough for interactive editing sizes.
func (r *Rope) reindexLocked() {
	content := r.root.String()
	starts := make([]uint32, 1, 16)
	starts[0] = 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, uint32(i+1))
		}
	}
	r.lineStarts = starts
}

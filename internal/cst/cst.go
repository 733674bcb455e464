// Package cst wraps the tree-sitter-bare binding with the Kotlin-family
// grammar into the concrete syntax tree layer the scope builder consumes.
// It mirrors the parse/edit/reparse sequence the teacher's php.Document
// follows, generalized to the single-language, single-parser case and
// adding a ChangedRanges diff the bare binding does not expose directly.
package cst

import (
	"context"

	kotlinforest "github.com/alexaandru/go-sitter-forest/kotlin"
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/shinyvision/kls/internal/textrange"
)

// newParser builds a fresh parser bound to the Kotlin-family grammar. A
// fresh *sitter.Parser is cheap and the bare binding documents parsers as
// not safe for concurrent Parse calls, so each Tree gets its own.
func newParser() *sitter.Parser {
	p := sitter.NewParser()
	lang := sitter.NewLanguage(kotlinforest.GetLanguage())
	_ = p.SetLanguage(lang)
	return p
}

// Tree owns a parsed syntax tree for one document snapshot. Edit adjusts
// the receiver's node positions in place; Reparse returns a new Tree rather
// than replacing the receiver, so a previous Tree can still be read by
// anyone holding a reference to it until it is closed.
type Tree struct {
	inner *sitter.Tree
}

// Parse produces a fresh Tree from scratch, with no prior tree to diff
// against.
func Parse(ctx context.Context, content []byte) (*Tree, error) {
	parser := newParser()
	t, err := parser.ParseString(ctx, nil, content)
	if err != nil {
		return nil, err
	}
	return &Tree{inner: t}, nil
}

// Edit applies a single tree-sitter InputEdit to the tree's node positions
// in place, matching the teacher's `d.tree.Edit(*change)` step. Call this
// before Reparse so tree-sitter can reuse unaffected subtrees.
func (t *Tree) Edit(edit sitter.InputEdit) {
	t.inner.Edit(edit)
}

// Reparse runs an incremental parse against the new content, using t as the
// old tree (already adjusted via Edit). The caller is responsible for
// closing t once Reparse returns, mirroring the teacher's
// `d.tree.Close(); d.tree = newTree` sequence.
func (t *Tree) Reparse(ctx context.Context, content []byte) (*Tree, error) {
	parser := newParser()
	newTree, err := parser.ParseString(ctx, t.inner, content)
	if err != nil {
		return nil, err
	}
	return &Tree{inner: newTree}, nil
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	if t != nil && t.inner != nil {
		t.inner.Close()
	}
}

// RootNode returns the tree's root CST node.
func (t *Tree) RootNode() sitter.Node {
	return t.inner.RootNode()
}

// NamedDescendantForByteRange returns the smallest named node fully
// containing [start, end).
func (t *Tree) NamedDescendantForByteRange(start, end uint32) sitter.Node {
	return t.inner.RootNode().NamedDescendantForByteRange(start, end)
}

// ChangedRanges reports the byte ranges whose syntactic structure differs
// between old and new, the Go equivalent of the original server's
// `ast.changed_ranges(new_ast)` step (tree-sitter-bare does not surface
// changed-range computation itself, only the two trees). Both trees must
// share the same incremental-edit lineage (new must have been produced by
// Edit+Reparse from old) for the comparison to be meaningful. oldContent and
// newContent are the full source each tree was parsed from: comparing a
// subtree's own text, rather than just its type and byte span, is what
// catches an edit that happens to leave a node's length unchanged (an
// equal-length identifier rename lands back on the same [start,end) pair one
// level up, so a span-only comparison would wrongly call it untouched).
func ChangedRanges(old, new *Tree, oldContent, newContent []byte) []textrange.TextRange {
	var out []textrange.TextRange
	diffWalk(old.RootNode(), new.RootNode(), oldContent, newContent, &out)
	return out
}

// diffWalk walks two trees in lockstep, recording a changed range wherever a
// node's kind or source text differs, and stopping descent once a subtree's
// text is identical on both sides.
func diffWalk(a, b sitter.Node, oldContent, newContent []byte, out *[]textrange.TextRange) {
	if a.IsNull() || b.IsNull() {
		if !a.IsNull() {
			*out = append(*out, textrange.New(a.StartByte(), a.EndByte()))
		}
		if !b.IsNull() {
			*out = append(*out, textrange.New(b.StartByte(), b.EndByte()))
		}
		return
	}

	if a.Type() == b.Type() && a.Content(oldContent) == b.Content(newContent) {
		return
	}

	if a.NamedChildCount() == 0 && b.NamedChildCount() == 0 {
		*out = append(*out, textrange.New(min32(a.StartByte(), b.StartByte()), max32(a.EndByte(), b.EndByte())))
		return
	}

	count := a.NamedChildCount()
	if b.NamedChildCount() > count {
		count = b.NamedChildCount()
	}
	for i := uint32(0); i < count; i++ {
		var ac, bc sitter.Node
		if i < a.NamedChildCount() {
			ac = a.NamedChild(i)
		}
		if i < b.NamedChildCount() {
			bc = b.NamedChild(i)
		}
		diffWalk(ac, bc, oldContent, newContent, out)
	}
}

func min32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

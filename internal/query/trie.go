// Package query indexes the scope graph for identifier completion and
// occurrence lookup. completion.rs only ever reaches a single `todo!()`
// dispatch over item kinds; this package replaces that gap with a prefix
// trie over visible identifiers (for completion) and a byte-range interval
// index (for removing a file's occurrences on edit/close), both built the
// way the teacher indexes PHP symbols in its own analyzer package.
package query

import "sort"

// trieNode is one node of the identifier prefix trie.
type trieNode struct {
	children map[byte]*trieNode
	// entries holds every (distinct) URI+byte-range occurrence of the
	// identifier that terminates at this node, keyed by Occurrence so
	// duplicates collapse.
	entries map[Occurrence]struct{}
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[byte]*trieNode)}
}

// Occurrence is one place an identifier is declared or visible from.
type Occurrence struct {
	URI   string
	Start uint32
	End   uint32
}

// Trie is a prefix trie mapping identifier text to the occurrences that
// introduced it, supporting completion-style prefix queries.
type Trie struct {
	root *trieNode
}

// NewTrie builds an empty trie.
func NewTrie() *Trie {
	return &Trie{root: newTrieNode()}
}

// Insert records that ident is visible at occ.
func (t *Trie) Insert(ident string, occ Occurrence) {
	n := t.root
	for i := 0; i < len(ident); i++ {
		b := ident[i]
		child, ok := n.children[b]
		if !ok {
			child = newTrieNode()
			n.children[b] = child
		}
		n = child
	}
	if n.entries == nil {
		n.entries = make(map[Occurrence]struct{})
	}
	n.entries[occ] = struct{}{}
}

// Remove drops occ from ident's entry set, if present.
func (t *Trie) Remove(ident string, occ Occurrence) {
	n := t.root
	for i := 0; i < len(ident); i++ {
		child, ok := n.children[ident[i]]
		if !ok {
			return
		}
		n = child
	}
	delete(n.entries, occ)
}

// CompletionsFor returns every distinct identifier stored under prefix.
func (t *Trie) CompletionsFor(prefix string) []string {
	n := t.root
	for i := 0; i < len(prefix); i++ {
		child, ok := n.children[prefix[i]]
		if !ok {
			return nil
		}
		n = child
	}

	var out []string
	collect(n, prefix, &out)
	sort.Strings(out)
	return out
}

func collect(n *trieNode, text string, out *[]string) {
	if n == nil {
		return
	}
	if len(n.entries) > 0 {
		*out = append(*out, text)
	}
	for b, child := range n.children {
		collect(child, text+string(b), out)
	}
}

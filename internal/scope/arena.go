package scope

import "github.com/shinyvision/kls/internal/textrange"

// NodeID indexes a Scope within an Arena. The zero value is a valid index
// (the first node ever allocated); callers track "no such scope" with a
// separate bool, the way Arena.Parent does.
type NodeID int

type arenaNode struct {
	scope    Scope
	parent   NodeID
	hasParent bool
	children []NodeID
	removed  bool
}

// Arena is an append-only tree of Scopes, grounded on the same shape as an
// indextree arena: nodes are never reindexed, so a NodeID stays valid for
// the arena's whole lifetime. Removed nodes are tombstoned in place rather
// than compacted, so siblings keep their indices.
type Arena struct {
	nodes []arenaNode
}

// New allocates s as a new, parentless node and returns its id.
func (a *Arena) New(s Scope) NodeID {
	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, arenaNode{scope: s, parent: -1})
	return id
}

// Get returns a pointer to id's Scope for in-place mutation.
func (a *Arena) Get(id NodeID) *Scope {
	return &a.nodes[id].scope
}

// Append makes child a child of parent, appending it to parent's children.
func (a *Arena) Append(parent, child NodeID) {
	a.nodes[child].parent = parent
	a.nodes[child].hasParent = true
	a.nodes[parent].children = append(a.nodes[parent].children, child)
}

// Children returns id's live children in insertion order.
func (a *Arena) Children(id NodeID) []NodeID {
	return a.nodes[id].children
}

// Parent returns id's parent, if it has one.
func (a *Arena) Parent(id NodeID) (NodeID, bool) {
	n := a.nodes[id]
	return n.parent, n.hasParent
}

// Remove detaches id from its parent's children (or lets the caller detach
// it from the file's root list) and tombstones it. Descendants are removed
// too, matching delete_scope's "cut the whole subtree" semantics.
func (a *Arena) Remove(id NodeID) {
	if a.nodes[id].removed {
		return
	}
	for _, c := range a.nodes[id].children {
		a.Remove(c)
	}
	if p := a.nodes[id].parent; a.nodes[id].hasParent {
		siblings := a.nodes[p].children
		for i, s := range siblings {
			if s == id {
				a.nodes[p].children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
	a.nodes[id].removed = true
	a.nodes[id].children = nil
}

// Removed reports whether id has been tombstoned.
func (a *Arena) Removed(id NodeID) bool {
	return a.nodes[id].removed
}

// RemapRanges applies e to every live scope's Range, in place. Called after
// every edit, before the builder dispatches changed ranges, so a later
// declaration's stored Range keeps tracking its text even though the builder
// only touches scopes inside the edit's own changed ranges.
func (a *Arena) RemapRanges(e textrange.EditOffset) {
	for i := range a.nodes {
		if a.nodes[i].removed {
			continue
		}
		a.nodes[i].scope.Range = e.Apply(a.nodes[i].scope.Range)
	}
}

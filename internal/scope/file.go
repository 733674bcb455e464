package scope

// File is the scope-graph arena for one source file: a set of root scopes
// (one per top-level declaration) plus the nesting beneath them (a class
// declaration's function scopes). Grounded on the GSFile/root_nodes/
// scope_at_byte design.
type File struct {
	Path      string
	Scopes    Arena
	RootNodes []NodeID
}

// NewFile builds an empty scope arena for path.
func NewFile(path string) *File {
	return &File{Path: path}
}

// NewRootScope allocates s as a new top-level scope and registers it as a
// root.
func (f *File) NewRootScope(s Scope) NodeID {
	id := f.Scopes.New(s)
	f.RootNodes = append(f.RootNodes, id)
	return id
}

// NewChildScope allocates s as a child of parent.
func (f *File) NewChildScope(parent NodeID, s Scope) NodeID {
	id := f.Scopes.New(s)
	f.Scopes.Append(parent, id)
	return id
}

// ScopeAtByte returns the innermost scope whose range contains byte.
func (f *File) ScopeAtByte(byte uint32) (NodeID, bool) {
	return f.ScopeHavingBestMatch(func(s *Scope) bool {
		return s.Range.Contains(byte)
	})
}

// ScopeHavingBestMatch finds a root scope matching cond, then descends into
// whichever child also matches cond for as long as possible, returning the
// deepest match. It reports false if no root scope matches at all.
func (f *File) ScopeHavingBestMatch(cond func(*Scope) bool) (NodeID, bool) {
	var current NodeID
	found := false
	for _, r := range f.RootNodes {
		if f.Scopes.Removed(r) {
			continue
		}
		if cond(f.Scopes.Get(r)) {
			current = r
			found = true
			break
		}
	}
	if !found {
		return 0, false
	}

	for {
		descended := false
		for _, c := range f.Scopes.Children(current) {
			if f.Scopes.Removed(c) {
				continue
			}
			if cond(f.Scopes.Get(c)) {
				current = c
				descended = true
				break
			}
		}
		if !descended {
			break
		}
	}
	return current, true
}

// DeleteScope removes id (and its descendants) from the arena, and from the
// root list if id was itself a root.
func (f *File) DeleteScope(id NodeID) {
	f.Scopes.Remove(id)
	for i, r := range f.RootNodes {
		if r == id {
			f.RootNodes = append(f.RootNodes[:i], f.RootNodes[i+1:]...)
			break
		}
	}
}

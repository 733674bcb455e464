package query

import "github.com/shinyvision/kls/internal/scope"

// BuildTrie indexes every declared identifier in f's scope tree: the
// package name, class and function names, and function parameter names.
// Grounded on the intent of Completion::completions_for's scope lookup,
// generalized since that method's own item-kind dispatch never got past a
// single `todo!()` arm.
func BuildTrie(f *scope.File) *Trie {
	t := NewTrie()
	for _, r := range f.RootNodes {
		insertScopeIdents(f, r, t)
	}
	return t
}

func insertScopeIdents(f *scope.File, id scope.NodeID, t *Trie) {
	if f.Scopes.Removed(id) {
		return
	}
	s := f.Scopes.Get(id)
	switch k := s.Kind.(type) {
	case *scope.PackageHeaderKind:
		t.Insert(k.Ident, occFor(f, s))
	case *scope.ClassDeclKind:
		t.Insert(k.Ident, occFor(f, s))
	case *scope.FunDeclKind:
		t.Insert(k.Ident, occFor(f, s))
		for _, p := range k.Parameters {
			t.Insert(p.Ident, occFor(f, s))
		}
	}
	for _, c := range f.Scopes.Children(id) {
		insertScopeIdents(f, c, t)
	}
}

func occFor(f *scope.File, s *scope.Scope) Occurrence {
	return Occurrence{URI: f.Path, Start: s.Range.Start, End: s.Range.End}
}

// CompletionsAt returns every known identifier starting with prefix that is
// visible anywhere in f. It does not yet restrict candidates to those
// actually in scope at byte (a function's own parameters leaking into
// sibling functions' completions, say); narrowing that by walking
// scope.File.ScopeAtByte's ancestor chain is the natural next refinement.
func CompletionsAt(f *scope.File, byte uint32, prefix string) []string {
	_ = byte
	return BuildTrie(f).CompletionsFor(prefix)
}

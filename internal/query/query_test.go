package query

import (
	"testing"

	"github.com/shinyvision/kls/internal/scope"
	"github.com/shinyvision/kls/internal/textrange"
	"github.com/stretchr/testify/require"
)

func TestTrieInsertAndCompletionsFor(t *testing.T) {
	trie := NewTrie()
	trie.Insert("greet", Occurrence{URI: "a.kt", Start: 0, End: 5})
	trie.Insert("greeting", Occurrence{URI: "a.kt", Start: 10, End: 18})
	trie.Insert("farewell", Occurrence{URI: "a.kt", Start: 20, End: 28})

	require.Equal(t, []string{"greet", "greeting"}, trie.CompletionsFor("gre"))
	require.Empty(t, trie.CompletionsFor("zzz"))
}

func TestTrieRemove(t *testing.T) {
	trie := NewTrie()
	occ := Occurrence{URI: "a.kt", Start: 0, End: 5}
	trie.Insert("greet", occ)
	trie.Remove("greet", occ)
	require.Empty(t, trie.CompletionsFor("greet"))
}

func TestIntervalIndexDeleteOverlapping(t *testing.T) {
	trie := NewTrie()
	idx := NewIntervalIndex("a.kt", trie)
	idx.Insert("greet", 0, 5)
	idx.Insert("farewell", 10, 18)

	removed := idx.DeleteOverlapping(3, 12)
	require.Equal(t, 2, removed)
	require.Equal(t, 0, idx.Len())
	require.Empty(t, trie.CompletionsFor("greet"))
}

func TestCompletionsAtIndexesScopeDeclarations(t *testing.T) {
	f := scope.NewFile("Greeter.kt")
	class := f.NewRootScope(scope.Scope{
		Kind:  &scope.ClassDeclKind{Ident: "Greeter"},
		Range: textrange.New(0, 50),
	})
	f.NewChildScope(class, scope.Scope{
		Kind: &scope.FunDeclKind{
			Ident:      "greet",
			Parameters: []scope.Param{{Ident: "greeting", Type: &scope.TypeRef{Name: "String"}}},
		},
		Range: textrange.New(10, 40),
	})

	names := CompletionsAt(f, 20, "gre")
	require.Equal(t, []string{"greet", "greeting"}, names)
}

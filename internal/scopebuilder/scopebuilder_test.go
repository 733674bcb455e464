package scopebuilder

import (
	"context"
	"testing"

	"github.com/shinyvision/kls/internal/cst"
	"github.com/shinyvision/kls/internal/scope"
	"github.com/shinyvision/kls/internal/textrange"
	"github.com/stretchr/testify/require"
)

func TestDiffAndAssignNewParamsReplacesMismatch(t *testing.T) {
	old := []scope.Param{
		{Ident: "name", Type: &scope.TypeRef{Name: "String"}},
		{Ident: "age", Type: &scope.TypeRef{Name: "Int"}},
	}
	newParams := []scope.Param{
		{Ident: "name", Type: &scope.TypeRef{Name: "String"}},
		{Ident: "age", Type: &scope.TypeRef{Name: "Long"}},
	}
	diffAndAssignNewParams(&old, newParams)
	require.Len(t, old, 2)
	require.Equal(t, "age", old[1].Ident)
	require.Equal(t, "Long", old[1].Type.Name)
}

func TestDiffAndAssignNewParamsTruncates(t *testing.T) {
	old := []scope.Param{
		{Ident: "a"}, {Ident: "b"}, {Ident: "c"},
	}
	newParams := []scope.Param{{Ident: "a"}}
	diffAndAssignNewParams(&old, newParams)
	require.Len(t, old, 1)
	require.Equal(t, "a", old[0].Ident)
}

func TestDiffAndAssignNewParamsAppendsExtra(t *testing.T) {
	old := []scope.Param{{Ident: "a"}}
	newParams := []scope.Param{{Ident: "a"}, {Ident: "b"}}
	diffAndAssignNewParams(&old, newParams)
	require.Len(t, old, 2)
	require.Equal(t, "b", old[1].Ident)
}

func TestUpdateScopesInsertsPackageHeader(t *testing.T) {
	ctx := context.Background()
	src := []byte("package foo.bar\n")
	tree, err := cst.Parse(ctx, src)
	require.NoError(t, err)
	defer tree.Close()

	f := scope.NewFile("Foo.kt")
	b := New(f)
	err = b.UpdateScopes(tree, src, ChangedRange{Range: textrange.New(0, uint32(len(src))), Op: Upsert})
	require.NoError(t, err)
	require.Len(t, f.RootNodes, 1)

	s := f.Scopes.Get(f.RootNodes[0])
	ph, ok := s.Kind.(*scope.PackageHeaderKind)
	require.True(t, ok)
	require.Equal(t, "foo.bar", ph.Ident)
}

func TestUpdateScopesDeletesOverlapping(t *testing.T) {
	f := scope.NewFile("Foo.kt")
	id := f.NewRootScope(scope.Scope{
		Kind:  &scope.PackageHeaderKind{Ident: "foo"},
		Range: textrange.New(0, 15),
	})
	b := New(f)
	err := b.UpdateScopes(nil, nil, ChangedRange{Range: textrange.New(0, 15), Op: Delete})
	require.NoError(t, err)
	require.True(t, f.Scopes.Removed(id))
}

package workspace

import (
	"context"
	"testing"

	"github.com/shinyvision/kls/internal/cst"
	"github.com/shinyvision/kls/internal/ropebuf"
	"github.com/shinyvision/kls/internal/scope"
	"github.com/stretchr/testify/require"
)

func TestNewDocumentBuildsPackageScope(t *testing.T) {
	doc, err := NewDocument(context.Background(), "file:///Greeter.kt", []byte("package foo\n"))
	require.NoError(t, err)
	defer doc.Close()

	var gotIdent string
	doc.View(func(_ *ropebuf.Rope, _ *cst.Tree, f *scope.File) {
		require.Len(t, f.RootNodes, 1)
		ph := f.Scopes.Get(f.RootNodes[0]).Kind.(*scope.PackageHeaderKind)
		gotIdent = ph.Ident
	})
	require.Equal(t, "foo", gotIdent)
}

func TestApplyRenamesPackageIdentifier(t *testing.T) {
	ctx := context.Background()
	content := "package foo\n"
	doc, err := NewDocument(ctx, "file:///Greeter.kt", []byte(content))
	require.NoError(t, err)
	defer doc.Close()

	// Insert "bar" right after "foo" so the package becomes "foobar".
	insertAt := len("package foo")
	require.NoError(t, doc.Apply(ctx, insertAt, insertAt, "bar"))

	var gotIdent, gotText string
	doc.View(func(r *ropebuf.Rope, _ *cst.Tree, f *scope.File) {
		gotText = r.String()
		ph := f.Scopes.Get(f.RootNodes[0]).Kind.(*scope.PackageHeaderKind)
		gotIdent = ph.Ident
	})
	require.Equal(t, "package foobar\n", gotText)
	require.Equal(t, "foobar", gotIdent)
}

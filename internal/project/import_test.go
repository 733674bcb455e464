package project

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shinyvision/kls/internal/scope"
	"github.com/stretchr/testify/require"
)

func TestImportWorkspaceParsesKotlinFiles(t *testing.T) {
	root := t.TempDir()
	kotlinDir := filepath.Join(root, "src", "main", "kotlin")
	require.NoError(t, os.MkdirAll(kotlinDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(kotlinDir, "Greeter.kt"), []byte("package foo\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(kotlinDir, "notes.txt"), []byte("ignored"), 0o644))

	p := DefaultProject(root)
	ImportWorkspace(context.Background(), p)

	ss := p.SourceSets["kotlin"]
	require.Len(t, ss.Files, 1)

	f, ok := ss.Files[filepath.Join(kotlinDir, "Greeter.kt")]
	require.True(t, ok)
	require.Len(t, f.RootNodes, 1)

	s := f.Scopes.Get(f.RootNodes[0])
	_, isPackage := s.Kind.(*scope.PackageHeaderKind)
	require.True(t, isPackage)
}

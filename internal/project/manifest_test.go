package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadManifestToProject(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "kls-test-project.json")
	body := `{
		"name": "demo",
		"id": 1,
		"root_dir": "` + dir + `",
		"source_sets": [
			{"name": "kotlin", "src_dir": "src/main/kotlin", "dependencies": []},
			{"name": "test", "src_dir": "src/test/kotlin", "dependencies": [
				{"kind": "SourceSet", "name": "kotlin", "visibility": "Api"}
			]}
		]
	}`
	require.NoError(t, os.WriteFile(manifestPath, []byte(body), 0o644))

	m, err := LoadManifest(manifestPath)
	require.NoError(t, err)
	require.Equal(t, "demo", m.Name)

	p := m.ToProject()
	require.Equal(t, "demo", p.Name)
	require.Contains(t, p.SourceSets, "kotlin")
	require.Contains(t, p.SourceSets, "test")
	require.Len(t, p.SourceSets["test"].Dependencies, 1)
	require.Equal(t, "kotlin", p.SourceSets["test"].Dependencies[0].Name)
}

func TestDefaultProjectLayout(t *testing.T) {
	p := DefaultProject("/workspace")
	require.Contains(t, p.SourceSets, "kotlin")
	require.Contains(t, p.SourceSets, "test")
	require.Equal(t, filepath.Join("/workspace", "src", "main", "kotlin"), p.SourceSets["kotlin"].Dir)
}

// Package project loads a workspace's source-set layout and drives
// asynchronous import of its Kotlin files into the scope graph.
//
// Grounded on project.rs's convention-based default (no manifest: a
// src/main/kotlin set plus a src/test/kotlin set that depends on it) and on
// project/kls_test_project.rs's JSON manifest loader, used by fixtures that
// need a layout the convention doesn't produce.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shinyvision/kls/internal/scope"
)

// ManifestFile is the on-disk shape of a kls-test-project.json fixture.
type ManifestFile struct {
	Name       string             `json:"name"`
	ID         int                `json:"id"`
	RootDir    string             `json:"root_dir"`
	SourceSets []ManifestSourceSet `json:"source_sets"`
}

// ManifestSourceSet is one source set entry in a manifest.
type ManifestSourceSet struct {
	Name         string                 `json:"name"`
	SrcDir       string                 `json:"src_dir"`
	Dependencies []ManifestDependency `json:"dependencies"`
}

// ManifestDependency is one dependency edge in a manifest.
type ManifestDependency struct {
	Kind       string `json:"kind"` // "SourceSet" or "Project"
	Name       string `json:"name"`
	Visibility string `json:"visibility"` // "Api" or "CompileOnly"
}

// LoadManifest reads and parses a kls-test-project.json-shaped file at path.
func LoadManifest(path string) (*ManifestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m ManifestFile
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ToProject builds a scope.Project from a parsed manifest.
func (m *ManifestFile) ToProject() *scope.Project {
	p := scope.NewProject(m.Name, strconv.Itoa(m.ID), m.RootDir)
	for _, ss := range m.SourceSets {
		dir := ss.SrcDir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(m.RootDir, dir)
		}
		sourceSet := scope.NewSourceSet(ss.Name, dir)
		for _, dep := range ss.Dependencies {
			sourceSet.Dependencies = append(sourceSet.Dependencies, scope.Dependency{
				Kind:       dependencyKind(dep.Kind),
				Name:       dep.Name,
				Visibility: visibilityKind(dep.Visibility),
			})
		}
		p.SourceSets[ss.Name] = sourceSet
	}
	return p
}

func dependencyKind(s string) scope.DependencyKind {
	if s == "Project" {
		return scope.DependencyProject
	}
	return scope.DependencySourceSet
}

func visibilityKind(s string) scope.Visibility {
	if s == "CompileOnly" {
		return scope.VisibilityCompileOnly
	}
	return scope.VisibilityApi
}

// DefaultProject builds the convention-based layout used when no manifest
// is present: a "kotlin" source set at src/main/kotlin, and a "test" source
// set at src/test/kotlin depending on it. Grounded on Project::s_source_sets.
func DefaultProject(rootDir string) *scope.Project {
	p := scope.NewProject("Project", "", rootDir)

	kotlin := scope.NewSourceSet("kotlin", filepath.Join(rootDir, "src", "main", "kotlin"))
	test := scope.NewSourceSet("test", filepath.Join(rootDir, "src", "test", "kotlin"))
	test.Dependencies = append(test.Dependencies, scope.Dependency{
		Kind:       scope.DependencySourceSet,
		Name:       "kotlin",
		Visibility: scope.VisibilityApi,
	})

	p.SourceSets["kotlin"] = kotlin
	p.SourceSets["test"] = test
	return p
}

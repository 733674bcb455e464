// Package scopebuilder keeps a scope.File's arena in sync with an edited
// concrete syntax tree. Grounded on scope_builder.rs: a changed byte range
// either deletes the scope it falls in, or upserts it by either creating
// fresh top-level scopes (nothing existed there yet) or updating an
// existing scope's declaration-specific fields in place.
package scopebuilder

import (
	"fmt"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/shinyvision/kls/internal/cst"
	"github.com/shinyvision/kls/internal/scope"
	"github.com/shinyvision/kls/internal/textrange"
)

// UpsertOrDelete discriminates the two ways an edit can be described to
// UpdateScopes.
type UpsertOrDelete int

const (
	Upsert UpsertOrDelete = iota
	Delete
)

// ChangedRange is the edit UpdateScopes reacts to, in post-edit byte
// coordinates.
type ChangedRange struct {
	Range textrange.TextRange
	Op    UpsertOrDelete
}

// Builder drives scope updates for one file.
type Builder struct {
	File *scope.File
}

// New returns a Builder for file.
func New(file *scope.File) *Builder {
	return &Builder{File: file}
}

// UpdateScopes reacts to a single changed range: deleting the scope it
// falls within, or upserting (creating or refreshing) the scope(s) it
// overlaps, reading fresh declaration text from tree/content as needed.
func (b *Builder) UpdateScopes(tree *cst.Tree, content []byte, cr ChangedRange) error {
	if b.File == nil {
		return fmt.Errorf("scopebuilder: nil file")
	}

	if cr.Op == Delete {
		if id, ok := b.File.ScopeHavingBestMatch(func(s *scope.Scope) bool {
			return s.Range.OverlapsWith(cr.Range)
		}); ok {
			b.File.DeleteScope(id)
		}
		return nil
	}

	existingID, ok := b.File.ScopeHavingBestMatch(func(s *scope.Scope) bool {
		return s.Range.OverlapsWith(cr.Range)
	})
	if !ok {
		b.insertTopLevelScopes(tree, content, cr.Range)
		return nil
	}

	existing := b.File.Scopes.Get(existingID)
	if cr.Range.ContainsRange(existing.Range) {
		b.File.DeleteScope(existingID)
		b.insertTopLevelScopes(tree, content, cr.Range)
		return nil
	}

	node := findDeclNode(tree, existing.Range)
	if node.IsNull() {
		// The declaration this scope described no longer parses as one;
		// leave the stale scope in place rather than guess, matching the
		// original's "warn and no-op" behavior for an unmapped node.
		return nil
	}

	switch existing.Kind.(type) {
	case *scope.PackageHeaderKind:
		return updatePackageHeader(b, existingID, node, content)
	case *scope.ClassDeclKind:
		return updateClassDeclaration(b, existingID, node, content)
	case *scope.FunDeclKind:
		return updateFunctionDeclaration(b, existingID, node, content)
	default:
		return fmt.Errorf("scopebuilder: unhandled scope kind %T", existing.Kind)
	}
}

// insertTopLevelScopes (re)creates scopes for every declaration overlapping
// r, starting from the root and recursing into class bodies. Grounded on
// scope_builder.rs's insert_top_level_scopes, generalized to also recurse
// one level for nested function scopes since this package's ClassDeclKind
// has no counterpart there.
func (b *Builder) insertTopLevelScopes(tree *cst.Tree, content []byte, r textrange.TextRange) {
	root := tree.RootNode()
	for i := uint32(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		if !nodeRange(child).OverlapsWith(r) {
			continue
		}
		insertDeclaration(b, tree, child, content, -1, false)
	}
}

func insertDeclaration(b *Builder, tree *cst.Tree, n sitter.Node, content []byte, parent scope.NodeID, hasParent bool) {
	switch n.Type() {
	case "package_header":
		insertPackageHeader(b, n, content)
	case "class_declaration":
		insertClassDeclaration(b, tree, n, content, parent, hasParent)
	case "function_declaration":
		insertFunctionDeclaration(b, n, content, parent, hasParent)
	}
}

func newScope(b *Builder, s scope.Scope, parent scope.NodeID, hasParent bool) scope.NodeID {
	if hasParent {
		return b.File.NewChildScope(parent, s)
	}
	return b.File.NewRootScope(s)
}

func nodeRange(n sitter.Node) textrange.TextRange {
	return textrange.New(n.StartByte(), n.EndByte())
}

// findDeclNode locates the declaration node whose range matches target,
// searching the root's top-level declarations and one level into class
// bodies. Scope ranges are always set to exactly the declaration node's own
// range on insert, so an exact start-byte match identifies it uniquely.
func findDeclNode(tree *cst.Tree, target textrange.TextRange) sitter.Node {
	root := tree.RootNode()
	return searchDecl(root, target)
}

func searchDecl(container sitter.Node, target textrange.TextRange) sitter.Node {
	for i := uint32(0); i < container.NamedChildCount(); i++ {
		n := container.NamedChild(i)
		switch n.Type() {
		case "package_header", "function_declaration", "class_declaration":
			if n.StartByte() == target.Start {
				return n
			}
			if n.Type() == "class_declaration" {
				if body := n.ChildByFieldName("body"); !body.IsNull() {
					if found := searchDecl(body, target); !found.IsNull() {
						return found
					}
				}
			}
		}
	}
	return sitter.Node{}
}

func findChildOfType(n sitter.Node, kind string) sitter.Node {
	for i := uint32(0); i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		if c.Type() == kind {
			return c
		}
	}
	return sitter.Node{}
}

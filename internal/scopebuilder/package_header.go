package scopebuilder

import (
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/shinyvision/kls/internal/scope"
)

// insertPackageHeader creates a root PackageHeader scope for node, if it
// carries an identifier. Grounded on scope_builder/package_header.rs's
// insert_package_header.
func insertPackageHeader(b *Builder, node sitter.Node, content []byte) {
	ident := findChildOfType(node, "identifier")
	if ident.IsNull() {
		return
	}
	b.File.NewRootScope(scope.Scope{
		Kind:  &scope.PackageHeaderKind{Ident: ident.Content(content)},
		Range: nodeRange(node),
	})
}

// updatePackageHeader rewrites id's identifier in place from node's current
// text. Grounded on update_package_header.
func updatePackageHeader(b *Builder, id scope.NodeID, node sitter.Node, content []byte) error {
	s := b.File.Scopes.Get(id)
	ph, ok := s.Kind.(*scope.PackageHeaderKind)
	if !ok {
		return errKindMismatch("package header", s.Kind)
	}
	ident := findChildOfType(node, "identifier")
	if !ident.IsNull() {
		ph.Ident = ident.Content(content)
	}
	s.Range = nodeRange(node)
	return nil
}

package scopebuilder

import (
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/shinyvision/kls/internal/cst"
	"github.com/shinyvision/kls/internal/scope"
)

// insertClassDeclaration creates a scope for a class declaration and
// recurses into its body to nest the function scopes it contains. Unlike
// package_header/function_declaration, this updater has no counterpart in
// the source this package is otherwise grounded on (which never got past
// package-declaration handling); it follows the same shape as
// insertPackageHeader/insertFunctionDeclaration.
func insertClassDeclaration(b *Builder, tree *cst.Tree, node sitter.Node, content []byte, parent scope.NodeID, hasParent bool) {
	ident := findChildOfType(node, "type_identifier")
	if ident.IsNull() {
		ident = findChildOfType(node, "identifier")
	}
	name := ""
	if !ident.IsNull() {
		name = ident.Content(content)
	}

	id := newScope(b, scope.Scope{
		Kind:  &scope.ClassDeclKind{Ident: name, Supertypes: parseSupertypes(node, content)},
		Range: nodeRange(node),
	}, parent, hasParent)

	body := node.ChildByFieldName("body")
	if body.IsNull() {
		return
	}
	for i := uint32(0); i < body.NamedChildCount(); i++ {
		child := body.NamedChild(i)
		if child.Type() == "function_declaration" {
			insertFunctionDeclaration(b, child, content, id, true)
		}
	}
}

// updateClassDeclaration rewrites id's name and supertype list from node's
// current text. Supertypes aren't diffed incrementally the way function
// parameters are: a class header change is rare enough, and cheap enough to
// re-derive wholesale, that no equivalent to diffAndAssignNewParams exists
// here.
func updateClassDeclaration(b *Builder, id scope.NodeID, node sitter.Node, content []byte) error {
	s := b.File.Scopes.Get(id)
	cd, ok := s.Kind.(*scope.ClassDeclKind)
	if !ok {
		return errKindMismatch("class declaration", s.Kind)
	}

	ident := findChildOfType(node, "type_identifier")
	if ident.IsNull() {
		ident = findChildOfType(node, "identifier")
	}
	if !ident.IsNull() {
		cd.Ident = ident.Content(content)
	}
	cd.Supertypes = parseSupertypes(node, content)
	s.Range = nodeRange(node)
	return nil
}

func parseSupertypes(node sitter.Node, content []byte) []string {
	delegation := findChildOfType(node, "delegation_specifiers")
	if delegation.IsNull() {
		return nil
	}
	var out []string
	for i := uint32(0); i < delegation.NamedChildCount(); i++ {
		spec := delegation.NamedChild(i)
		t := findChildOfType(spec, "user_type")
		if t.IsNull() {
			t = spec
		}
		out = append(out, t.Content(content))
	}
	return out
}

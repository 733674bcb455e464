package scopebuilder

import (
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/shinyvision/kls/internal/scope"
)

// insertFunctionDeclaration creates a FunDecl scope for node, reading its
// name, parameter list, and return type. Grounded on
// scope_builder/function_declaration.rs's create_fun_decl.
func insertFunctionDeclaration(b *Builder, node sitter.Node, content []byte, parent scope.NodeID, hasParent bool) {
	name := functionName(node, content)
	params := parseParameters(node, content)
	ret := parseReturnType(node, content)

	newScope(b, scope.Scope{
		Kind:  &scope.FunDeclKind{Ident: name, Parameters: params, ReturnType: ret},
		Range: nodeRange(node),
	}, parent, hasParent)
}

// updateFunctionDeclaration rewrites id's name, return type, and parameter
// list from node's current text. The parameter list specifically goes
// through diffAndAssignNewParams rather than a wholesale replace, to match
// the original's in-place, identity-preserving parameter update.
func updateFunctionDeclaration(b *Builder, id scope.NodeID, node sitter.Node, content []byte) error {
	s := b.File.Scopes.Get(id)
	fd, ok := s.Kind.(*scope.FunDeclKind)
	if !ok {
		return errKindMismatch("function declaration", s.Kind)
	}

	fd.Ident = functionName(node, content)
	fd.ReturnType = parseReturnType(node, content)
	diffAndAssignNewParams(&fd.Parameters, parseParameters(node, content))
	s.Range = nodeRange(node)
	return nil
}

func functionName(node sitter.Node, content []byte) string {
	name := node.ChildByFieldName("name")
	if name.IsNull() {
		name = findChildOfType(node, "simple_identifier")
	}
	if name.IsNull() {
		return ""
	}
	return name.Content(content)
}

func parseParameters(node sitter.Node, content []byte) []scope.Param {
	list := node.ChildByFieldName("parameters")
	if list.IsNull() {
		list = findChildOfType(node, "function_value_parameters")
	}
	if list.IsNull() {
		return nil
	}

	var out []scope.Param
	for i := uint32(0); i < list.NamedChildCount(); i++ {
		p := list.NamedChild(i)
		if p.Type() != "parameter" {
			continue
		}
		ident := findChildOfType(p, "simple_identifier")
		if ident.IsNull() {
			continue
		}
		out = append(out, scope.Param{
			Ident: ident.Content(content),
			Type:  parseUserType(findChildOfType(p, "user_type"), content),
		})
	}
	return out
}

func parseReturnType(node sitter.Node, content []byte) *scope.TypeRef {
	t := node.ChildByFieldName("return_type")
	if t.IsNull() {
		t = findChildOfType(node, "user_type")
	}
	if t.IsNull() {
		return nil
	}
	return parseUserType(t, content)
}

func parseUserType(t sitter.Node, content []byte) *scope.TypeRef {
	if t.IsNull() {
		return nil
	}
	text := t.Content(content)
	if text == "Unit" {
		return &scope.TypeRef{Unit: true}
	}
	return &scope.TypeRef{Name: text}
}

// diffAndAssignNewParams updates old in place to match newParams, inserting
// a replacement ahead of the first mismatching entry rather than discarding
// and rebuilding the whole slice, so any Param object a caller is still
// holding a pointer into later in the slice keeps its identity. Grounded on
// diff_and_assign_new_params, with one fix: the original never appends
// newParams entries beyond old's original length, silently dropping
// trailing new parameters when a parameter is added; this version appends
// them once the compare loop finishes.
func diffAndAssignNewParams(old *[]scope.Param, newParams []scope.Param) {
	params := *old
	i := 0
	for i < len(params) {
		if i >= len(newParams) {
			params = params[:i]
			break
		}
		if !params[i].EqNoType(newParams[i]) {
			params = append(params[:i], append([]scope.Param{newParams[i]}, params[i:]...)...)
		}
		i++
	}
	if i < len(newParams) {
		params = append(params, newParams[i:]...)
	}
	*old = params
}

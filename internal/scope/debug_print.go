package scope

import (
	"fmt"
	"strings"
)

// Sexp renders f's scope tree as an indented s-expression, the scope-graph
// analog of the recovery package's Node.Sexp, for the custom/printScopes
// debug request.
func (f *File) Sexp() string {
	var b strings.Builder
	for _, r := range f.RootNodes {
		if f.Scopes.Removed(r) {
			continue
		}
		f.writeSexp(&b, r, 0)
	}
	return b.String()
}

func (f *File) writeSexp(b *strings.Builder, id NodeID, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	s := f.Scopes.Get(id)
	b.WriteString(fmt.Sprintf("(%s %s)\n", kindLabel(s.Kind), s.Range))

	for _, c := range f.Scopes.Children(id) {
		if f.Scopes.Removed(c) {
			continue
		}
		f.writeSexp(b, c, depth+1)
	}
}

func kindLabel(k Kind) string {
	switch v := k.(type) {
	case *PackageHeaderKind:
		return fmt.Sprintf("package_header %q", v.Ident)
	case *ClassDeclKind:
		return fmt.Sprintf("class_decl %q supertypes=%v", v.Ident, v.Supertypes)
	case *FunDeclKind:
		return fmt.Sprintf("fun_decl %q params=%d returns=%s", v.Ident, len(v.Parameters), v.ReturnType)
	default:
		return "unknown"
	}
}

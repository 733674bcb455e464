// Package scope holds the scope graph built on top of the concrete syntax
// tree: a per-file arena of nested Scope nodes (package header, class, and
// function declarations) plus the project/source-set graph that links files
// together. Unlike internal/recovery, this package is driven by the real
// tree-sitter CST (internal/cst), not by the resumable recovery parser.
package scope

import "github.com/shinyvision/kls/internal/textrange"

// Kind discriminates the declaration a Scope was created for. Each
// implementation carries the declaration-specific data the corresponding
// scope_builder updater reads and rewrites in place.
type Kind interface {
	isKind()
}

// PackageHeaderKind is the scope created for a `package a.b.c` declaration.
type PackageHeaderKind struct {
	Ident string
}

// ClassDeclKind is the scope created for a class declaration. It nests the
// function declarations of its body as child scopes.
type ClassDeclKind struct {
	Ident      string
	Supertypes []string
}

// FunDeclKind is the scope created for a function declaration.
type FunDeclKind struct {
	Ident      string
	Parameters []Param
	ReturnType *TypeRef
}

func (*PackageHeaderKind) isKind() {}
func (*ClassDeclKind) isKind()     {}
func (*FunDeclKind) isKind()       {}

// Param is one function parameter, matching fun_decl_scope's Parameter.
type Param struct {
	Ident string
	Type  *TypeRef
}

// EqNoType reports whether two parameters are interchangeable as far as
// diffAndAssignNewParams is concerned. Despite the name carried over from
// the implementation this is grounded on, it compares both the identifier
// and the type, not merely the identifier.
func (p Param) EqNoType(other Param) bool {
	if p.Ident != other.Ident {
		return false
	}
	return p.Type.Equal(other.Type)
}

// TypeRef is either Kotlin's Unit or a named simple type.
type TypeRef struct {
	Unit bool
	Name string
}

// Equal compares two possibly-nil TypeRefs structurally.
func (t *TypeRef) Equal(other *TypeRef) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.Unit == other.Unit && t.Name == other.Name
}

func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}
	if t.Unit {
		return "Unit"
	}
	return t.Name
}

// TypeSlot is an unused extension point reserved for a future type checker;
// nothing in this package populates or reads it.
type TypeSlot struct {
	Resolved string
}

// Scope is one node of the per-file scope tree.
type Scope struct {
	Kind     Kind
	Range    textrange.TextRange
	TypeSlot *TypeSlot
}

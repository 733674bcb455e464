// Package recovery is an error-tolerant, resumable parser for "K" source
// text, independent of the tree-sitter CST. It can reparse only the grammar
// construct surrounding an insertion instead of the whole file, via the
// ChangedRange/parser-state-resumption scheme implemented here. Nothing else
// in this module calls it: the scope builder works from internal/cst.
package recovery

import "fmt"

// Token is both a lexer token kind and, for the node tree built from parse
// events, a syntax-node kind (the same enum does double duty in the source
// this package is modeled on).
type Token int

const (
	Ws Token = iota
	Period
	Comma
	Colon
	LBrace
	RBrace
	LParen
	RParen
	SimpleIdent

	PackageKeyword
	ClassKeyword
	FunKeyword

	Error
	Tombstone

	SourceFile
	PackageDecl
	ClassDecl
	FunDecl
	ParamList
	Param
)

var tokenNames = map[Token]string{
	Ws:             "Ws",
	Period:         "Period",
	Comma:          "Comma",
	Colon:          "Colon",
	LBrace:         "LBrace",
	RBrace:         "RBrace",
	LParen:         "LParen",
	RParen:         "RParen",
	SimpleIdent:    "SimpleIdent",
	PackageKeyword: "PackageKeyword",
	ClassKeyword:   "ClassKeyword",
	FunKeyword:     "FunKeyword",
	Error:          "Error",
	Tombstone:      "Tombstone",
	SourceFile:     "SourceFile",
	PackageDecl:    "PackageDecl",
	ClassDecl:      "ClassDecl",
	FunDecl:        "FunDecl",
	ParamList:      "ParamList",
	Param:          "Param",
}

func (t Token) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Token(%d)", int(t))
}

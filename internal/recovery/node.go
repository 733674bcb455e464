package recovery

import (
	"fmt"
	"strings"

	"github.com/shinyvision/kls/internal/textrange"
)

// Node is the recovery parser's own syntax tree node, distinct from the
// vendored tree-sitter CST: it exists purely to let the parser resume from a
// prior parse, via DescendantContainingByte and parserStateFrom.
type Node struct {
	Type     Token
	Parent   *Node
	Children []*Node
	Range    textrange.TextRange
	Err      string
}

// NewNode allocates a detached node.
func NewNode(t Token, r textrange.TextRange) *Node {
	return &Node{Type: t, Range: r}
}

// NewErrorNode allocates a detached error node carrying a diagnostic message.
func NewErrorNode(r textrange.TextRange, err string) *Node {
	return &Node{Type: Error, Range: r, Err: err}
}

// ChildOf appends a new child of the given kind/range to parent and returns it.
func ChildOf(parent *Node, t Token, r textrange.TextRange) *Node {
	child := &Node{Type: t, Parent: parent, Range: r}
	parent.Children = append(parent.Children, child)
	return child
}

// Text returns the slice of content this node spans.
func (n *Node) Text(content string) string {
	s, e := n.Range.IntoUsizeRange()
	return content[s:e]
}

func (n *Node) String() string {
	if n.Type == Error {
		return fmt.Sprintf("%s %s %s", n.Range, n.Type, n.Err)
	}
	return fmt.Sprintf("%s %s", n.Range, n.Type)
}

// Sexp renders the subtree rooted at n as an indented s-expression-style
// listing, the recovery-tree analog of the debug scope printer's
// print_ast option.
func (n *Node) Sexp() string {
	var b strings.Builder
	writeSexp(&b, n, 0)
	return b.String()
}

func writeSexp(b *strings.Builder, n *Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.String())
	b.WriteByte('\n')
	for _, c := range n.Children {
		writeSexp(b, c, depth+1)
	}
}

package recovery

import "fmt"

// priorSiblingOf returns the sibling immediately before node in its parent's
// child list, used by parserStateFrom to skip past a Ws node and recover the
// real token kind it follows.
func priorSiblingOf(node *Node) (*Node, error) {
	if node.Parent == nil {
		return nil, fmt.Errorf("recovery: node %s has no parent", node)
	}

	siblings := node.Parent.Children
	pos := -1
	for i, s := range siblings {
		if s == node {
			pos = i
			break
		}
	}
	if pos <= 0 {
		return nil, fmt.Errorf("recovery: node %s has no prior sibling", node)
	}
	return siblings[pos-1], nil
}

package recovery

import "fmt"

// DescendantContainingByte descends from node into whichever child spans
// byte, returning the innermost node whose range contains it.
func DescendantContainingByte(node *Node, byte uint32) (*Node, error) {
	if !node.Range.Contains(byte) {
		return nil, fmt.Errorf("recovery: node %s does not contain byte %d", node, byte)
	}

	cur := node
	for len(cur.Children) > 0 {
		var next *Node
		for _, c := range cur.Children {
			if c.Range.Contains(byte) {
				next = c
				break
			}
		}
		if next == nil {
			break
		}
		cur = next
	}
	return cur, nil
}

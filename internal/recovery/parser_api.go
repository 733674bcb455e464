package recovery

import "github.com/shinyvision/kls/internal/ropebuf"

// ParseNoState parses text from scratch and returns the resulting tree.
func ParseNoState(text string) *Node {
	p := NewNoState(text)
	return BuildTree(p.Parse())
}

// ParseWithState resumes a parse from astRoot around change and returns the
// resulting tree, or an error if change is a kind this package cannot yet
// resume from (see TryNew).
func ParseWithState(content *ropebuf.Rope, astRoot *Node, change ChangedRange) (*Node, error) {
	p, err := TryNew(content, astRoot, change)
	if err != nil {
		return nil, err
	}
	return BuildTree(p.Parse()), nil
}

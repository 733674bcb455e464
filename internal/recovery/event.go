package recovery

import "github.com/shinyvision/kls/internal/textrange"

type eventKind int

const (
	eventStart eventKind = iota
	eventFinish
	eventToken
	eventError
)

// ParseEvent is one entry in the flat event stream a Parser produces. A
// separate pass (BuildTree) turns the stream into a Node tree.
//
// ForwardParent lets a left-recursive construct emit a child node before it
// knows about its parent: the child's Start event records an offset to a
// later Start event that should actually wrap it. See BuildTree for the
// resolution algorithm.
type ParseEvent struct {
	Kind          eventKind
	Token         Token
	Range         textrange.TextRange
	ForwardParent *uint32
	ErrMsg        string
}

func tombstoneEvent() ParseEvent {
	return ParseEvent{Kind: eventStart, Token: Tombstone, Range: textrange.New(0, 0)}
}

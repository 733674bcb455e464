package recovery

// treeBuilder bridges the parser's flat event stream with the Node tree,
// eagerly attaching each token/error/child node to whichever node is
// currently open.
type treeBuilder struct {
	result  *Node
	current *Node
}

func newTreeBuilder() *treeBuilder {
	return &treeBuilder{}
}

func (b *treeBuilder) token(ev ParseEvent) {
	if b.current == nil {
		panic("recovery: token event before any node was started")
	}
	ChildOf(b.current, ev.Token, ev.Range)
}

func (b *treeBuilder) startNode(tok Token, ev ParseEvent) {
	if b.result == nil {
		b.result = NewNode(tok, ev.Range)
		b.current = b.result
		return
	}
	b.current = ChildOf(b.current, tok, ev.Range)
}

func (b *treeBuilder) finishNode() {
	if b.current == nil {
		panic("recovery: finish event before any node was started")
	}
	b.current = b.current.Parent
}

func (b *treeBuilder) errorNode(ev ParseEvent) {
	ChildOf(b.current, Error, ev.Range).Err = ev.ErrMsg
}

func (b *treeBuilder) finish() *Node {
	return b.result
}

// BuildTree consumes a flat parse-event stream and produces the Node tree it
// describes, resolving forward_parent chains in a single pass: event A with
// forward_parent pointing at event B means B actually wraps A, so the
// emitted nodes are built outer-to-inner by walking the forward_parent chain
// before calling startNode for any of them.
func BuildTree(events []ParseEvent) *Node {
	sink := newTreeBuilder()

	type pending struct {
		tok Token
		ev  ParseEvent
	}
	var forwardParents []pending

	for i := 0; i < len(events); i++ {
		ev := events[i]
		events[i] = tombstoneEvent()

		switch ev.Kind {
		case eventStart:
			if ev.Token == Tombstone {
				continue
			}

			forwardParents = append(forwardParents, pending{ev.Token, ev})
			idx := i
			fp := ev.ForwardParent
			for fp != nil {
				idx += int(*fp)
				next := events[idx]
				events[idx] = tombstoneEvent()
				if next.Kind != eventStart {
					panic("recovery: forward_parent did not point at a Start event")
				}
				if next.Token != Tombstone {
					forwardParents = append(forwardParents, pending{next.Token, next})
				}
				fp = next.ForwardParent
			}

			for j := len(forwardParents) - 1; j >= 0; j-- {
				sink.startNode(forwardParents[j].tok, forwardParents[j].ev)
			}
			forwardParents = forwardParents[:0]

		case eventFinish:
			sink.finishNode()
		case eventToken:
			sink.token(ev)
		case eventError:
			sink.errorNode(ev)
		}
	}

	return sink.finish()
}

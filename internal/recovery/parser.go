package recovery

import (
	"fmt"

	"github.com/shinyvision/kls/internal/ropebuf"
	"github.com/shinyvision/kls/internal/textrange"
)

// ParserState names the position a resumed parse restarts from. Nothing in
// this package reads it: resumption uses the Rule stack that
// parserStateFrom rebuilds.
type ParserState int

const (
	StateSourceFile ParserState = iota
	StateOptionalTopLevelStatements
	StateUnset
	StatePackageDeclKeywordParsed
	StatePackageDeclPeriodParsed
	StatePackageDeclIdentParsed
)

// ChangedRangeKind discriminates the three ways a document edit can be
// described to a resumable parse.
type ChangedRangeKind int

const (
	ChangeInsert ChangedRangeKind = iota
	ChangeDelete
	ChangeUpdate
)

// ChangedRange describes one edit in byte-offset space, for TryNew to use
// when deciding which prior AST node(s) to resume parsing around.
type ChangedRange struct {
	Kind ChangedRangeKind

	AtByte  uint32 // Insert
	NewText string // Insert, Update
	Range   textrange.TextRange // Delete, Update
}

// Parser drives a grammar rule stack against a token stream, accumulating a
// flat ParseEvent log that BuildTree later turns into a Node tree.
type Parser struct {
	astRoot      *Node
	priorASTNode *Node
	nextASTNode  *Node
	tokens       *TokenVec

	state  []Rule
	result []ParseEvent
}

// NewNoState builds a Parser that parses new_text from scratch, with no
// prior tree to resume from.
func NewNoState(newText string) *Parser {
	return &Parser{
		tokens: Lex(newText, 0),
		state:  defaultState(),
	}
}

// TryNew builds a Parser resuming from astRoot around the edit described by
// change. Only ChangeInsert is implemented; Delete and Update require a
// wider reparse strategy this package does not yet implement, matching a
// gap already present in the implementation this package is modeled on.
func TryNew(content *ropebuf.Rope, astRoot *Node, change ChangedRange) (*Parser, error) {
	if change.Kind != ChangeInsert {
		return nil, fmt.Errorf("recovery: resumable parsing for changed-range kind %v is not implemented", change.Kind)
	}

	var priorNode, nextNode *Node
	if change.AtByte != 0 {
		if n, err := DescendantContainingByte(astRoot, change.AtByte-1); err == nil {
			priorNode = n
		}
	}
	if n, err := DescendantContainingByte(astRoot, change.AtByte); err == nil {
		nextNode = n
	}

	full := content.String()
	var priorText, nextText string
	if priorNode != nil {
		priorText = priorNode.Text(full)
	}
	if nextNode != nil {
		nextText = nextNode.Text(full)
	}
	fullChange := priorText + change.NewText + nextText

	var offset uint32
	if priorNode != nil {
		offset = priorNode.Range.Start
	}
	tokens := Lex(fullChange, offset)

	state := defaultState()
	if priorNode != nil {
		state = parserStateFrom(priorNode)
	}

	return &Parser{
		astRoot:      astRoot,
		priorASTNode: priorNode,
		nextASTNode:  nextNode,
		tokens:       tokens,
		state:        state,
	}, nil
}

// Parse pops and runs the next rule in the state stack, returning the
// accumulated event stream. Only a single rule is ever popped: each rule is
// responsible for parsing everything it owns via its own loops/sub-rules.
func (p *Parser) Parse() []ParseEvent {
	if len(p.state) == 0 {
		return p.result
	}
	next := p.state[len(p.state)-1]
	p.state = p.state[:len(p.state)-1]
	next.ParseRule(p)
	return p.result
}

func (p *Parser) start(kind Token, forwardParent *uint32) *Marker {
	rng := textrange.New(0, 0)
	if cur := p.tokens.Current(); cur != nil {
		rng = cur.rng
	}
	idx := uint32(len(p.result))
	p.result = append(p.result, ParseEvent{Kind: eventStart, Token: kind, Range: rng, ForwardParent: forwardParent})
	return newMarker(idx, kind.String())
}

func (p *Parser) finish() {
	p.result = append(p.result, ParseEvent{Kind: eventFinish})
}

// expect consumes the next token if it is tok, otherwise emits an Error
// event and leaves the cursor where it was.
func (p *Parser) expect(tok Token) bool {
	if p.eat(tok) {
		return true
	}
	r := textrange.New(0, 0)
	if rr, ok := p.tokens.CurrentlyAtAsRange(); ok {
		r = rr
	}
	p.error(fmt.Sprintf("expected %s", tok), r)
	return false
}

func (p *Parser) eat(tok Token) bool {
	cur := p.tokens.Current()
	if cur == nil || cur.tok != tok {
		return false
	}
	p.result = append(p.result, ParseEvent{Kind: eventToken, Token: cur.tok, Range: cur.rng})
	p.tokens.Bump()
	return true
}

// eatAny unconditionally consumes whatever token is under the cursor, used
// by rules that skip opaque content (a function body) without caring about
// its internal grammar.
func (p *Parser) eatAny() bool {
	cur := p.tokens.Current()
	if cur == nil {
		return false
	}
	p.result = append(p.result, ParseEvent{Kind: eventToken, Token: cur.tok, Range: cur.rng})
	p.tokens.Bump()
	return true
}

// currentPos returns the byte offset the cursor sits at: the start of the
// current token, or the end of the last token once the stream is exhausted.
func (p *Parser) currentPos() uint32 {
	if cur := p.tokens.Current(); cur != nil {
		return cur.rng.Start
	}
	if n := len(p.tokens.tokens); n > 0 {
		return p.tokens.tokens[n-1].rng.End
	}
	return 0
}

func (p *Parser) at(tok Token) bool {
	cur := p.tokens.Current()
	return cur != nil && cur.tok == tok
}

func (p *Parser) error(msg string, r textrange.TextRange) {
	p.result = append(p.result, ParseEvent{Kind: eventError, ErrMsg: msg, Range: r})
}

// parserStateFrom reconstructs the rule stack that would have produced node,
// by walking up through its ancestors. A Ws node carries no grammatical
// meaning of its own, so it is treated as standing in for its prior sibling.
func parserStateFrom(node *Node) []Rule {
	var state []Rule
	cur := node

	for {
		nodeType := cur.Type
		if cur.Type == Ws {
			if sib, err := priorSiblingOf(cur); err == nil {
				nodeType = sib.Type
			}
		}

		if nodeType == SourceFile {
			if len(state) == 0 {
				state = append(state, SourceFileRule{})
			}
			break
		}

		if cur.Parent == nil {
			// No further ancestor context: fall back to a clean reparse
			// rather than guessing at a grammar state.
			return defaultState()
		}
		cur = cur.Parent

		switch cur.Type {
		case SourceFile:
			state = append(state, SourceFileRule{})
		case PackageDecl:
			startAt := nodeType
			state = append(state, PackageStatementRule{StartAt: &startAt})
		case ClassDecl:
			state = append(state, ClassDeclarationRule{})
		case FunDecl:
			state = append(state, FunctionDeclarationRule{})
		default:
			return defaultState()
		}
	}

	for i, j := 0, len(state)-1; i < j; i, j = i+1, j-1 {
		state[i], state[j] = state[j], state[i]
	}
	return state
}

func defaultState() []Rule {
	return []Rule{SourceFileRule{}}
}

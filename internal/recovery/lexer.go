package recovery

import "github.com/shinyvision/kls/internal/textrange"

type tokenEntry struct {
	tok Token
	rng textrange.TextRange
}

// TokenVec is a cursor over a lexed token stream. Parser rules read through
// Current/NextNonWs and advance with Bump; the cursor is never rewound.
type TokenVec struct {
	tokens  []tokenEntry
	curElem uint32
}

// Lex tokenizes text, shifting every resulting range by offset bytes so the
// tokens can be spliced back into a larger document's coordinate space (used
// when resuming a parse around an edit).
func Lex(text string, offset uint32) *TokenVec {
	var entries []tokenEntry
	i := 0
	n := len(text)

	for i < n {
		c := text[i]
		switch {
		case isSpace(c):
			start := i
			for i < n && isSpace(text[i]) {
				i++
			}
			entries = append(entries, tokenEntry{Ws, shifted(start, i, offset)})
		case isIdentStart(c):
			start := i
			for i < n && isIdentCont(text[i]) {
				i++
			}
			entries = append(entries, tokenEntry{identToken(text[start:i]), shifted(start, i, offset)})
		case c == '.':
			entries = append(entries, tokenEntry{Period, shifted(i, i+1, offset)})
			i++
		case c == ',':
			entries = append(entries, tokenEntry{Comma, shifted(i, i+1, offset)})
			i++
		case c == ':':
			entries = append(entries, tokenEntry{Colon, shifted(i, i+1, offset)})
			i++
		case c == '{':
			entries = append(entries, tokenEntry{LBrace, shifted(i, i+1, offset)})
			i++
		case c == '}':
			entries = append(entries, tokenEntry{RBrace, shifted(i, i+1, offset)})
			i++
		case c == '(':
			entries = append(entries, tokenEntry{LParen, shifted(i, i+1, offset)})
			i++
		case c == ')':
			entries = append(entries, tokenEntry{RParen, shifted(i, i+1, offset)})
			i++
		default:
			entries = append(entries, tokenEntry{Error, shifted(i, i+1, offset)})
			i++
		}
	}

	return &TokenVec{tokens: entries}
}

func shifted(start, end int, offset uint32) textrange.TextRange {
	return textrange.FromUsize(start, end).ShiftRightBy(offset)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\f' || c == '\r'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func identToken(word string) Token {
	switch word {
	case "package":
		return PackageKeyword
	case "class":
		return ClassKeyword
	case "fun":
		return FunKeyword
	default:
		return SimpleIdent
	}
}

// Current returns the token under the cursor, or nil at end of input.
func (tv *TokenVec) Current() *tokenEntry {
	if int(tv.curElem) >= len(tv.tokens) {
		return nil
	}
	return &tv.tokens[tv.curElem]
}

// NextNonWs returns the first non-whitespace token at or after the cursor,
// without advancing it. Grammar rules use this for lookahead decisions so a
// stray Ws token never hides the token that actually determines which rule
// to take.
func (tv *TokenVec) NextNonWs() *tokenEntry {
	for i := int(tv.curElem); i < len(tv.tokens); i++ {
		if tv.tokens[i].tok != Ws {
			return &tv.tokens[i]
		}
	}
	return nil
}

// CurrentlyAtAsRange returns a zero-width range at the start of the current
// token, used to anchor error events when an expected token is missing.
func (tv *TokenVec) CurrentlyAtAsRange() (textrange.TextRange, bool) {
	cur := tv.Current()
	if cur == nil {
		return textrange.TextRange{}, false
	}
	return textrange.New(cur.rng.Start, cur.rng.Start), true
}

// Bump advances the cursor past the current token.
func (tv *TokenVec) Bump() {
	tv.curElem++
}

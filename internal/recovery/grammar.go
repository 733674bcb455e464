package recovery

// Rule is a single grammar production: it knows whether it matches the
// parser's current lookahead and how to consume tokens/emit events for
// itself. Each concrete rule is a small struct rather than a closure so
// resumable parsing can carry state (e.g. PackageStatementRule.StartAt)
// between an interrupted parse and its continuation.
type Rule interface {
	Name() string
	Matches(p *Parser) bool
	ParseRule(p *Parser)
}

// expectRule parses r, which the caller has already established must match;
// a caller that gets this wrong has a grammar bug, not a recoverable parse
// error, so it panics rather than emitting an Error event.
func expectRule(r Rule, p *Parser) {
	if !r.Matches(p) {
		panic("recovery: expected rule " + r.Name() + " to match")
	}
	r.ParseRule(p)
}

// optRule parses r only if it matches, otherwise it is a no-op.
func optRule(r Rule, p *Parser) {
	if r.Matches(p) {
		r.ParseRule(p)
	}
}

package recovery

// SourceFileRule is the grammar's entry point: a source file is an optional
// package declaration followed by zero or more top-level declarations.
type SourceFileRule struct{}

func (SourceFileRule) Name() string { return "SourceFile" }

// Matches is always true: SourceFileRule is only ever the bottom of the
// rule stack, never looked up by lookahead.
func (SourceFileRule) Matches(p *Parser) bool { return true }

func (SourceFileRule) ParseRule(p *Parser) {
	m := p.start(SourceFile, nil)

	optRule(PackageStatementRule{}, p)
	for {
		switch {
		case (ClassDeclarationRule{}).Matches(p):
			(ClassDeclarationRule{}).ParseRule(p)
		case (FunctionDeclarationRule{}).Matches(p):
			(FunctionDeclarationRule{}).ParseRule(p)
		case p.tokens.NextNonWs() == nil:
			m.Finish(p)
			return
		default:
			// Unrecognized top-level token: record it as an error and
			// advance one token so the loop always makes progress.
			p.eat(Ws)
			if p.tokens.Current() == nil {
				m.Finish(p)
				return
			}
			cur, _ := p.tokens.CurrentlyAtAsRange()
			p.error("unexpected top-level token", cur)
			p.eatAny()
		}
	}
}

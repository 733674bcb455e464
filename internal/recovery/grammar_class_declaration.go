package recovery

// ClassDeclarationRule parses `class Ident { members... }`. This grammar
// construct has no counterpart in the parser2 package this recovery parser
// is otherwise modeled on (which only ever finished the package-declaration
// rule); it is added here so the scope graph has more than one declaration
// kind to build nested scopes from.
type ClassDeclarationRule struct {
	StartAt *Token
}

func (ClassDeclarationRule) Name() string { return "ClassDeclaration" }

func (ClassDeclarationRule) Matches(p *Parser) bool {
	e := p.tokens.NextNonWs()
	return e != nil && e.tok == ClassKeyword
}

func (r ClassDeclarationRule) ParseRule(p *Parser) {
	m := p.start(ClassDecl, nil)

	p.eat(Ws)
	p.expect(ClassKeyword)
	p.eat(Ws)
	p.expect(SimpleIdent)
	p.eat(Ws)

	if p.eat(LBrace) {
		p.eat(Ws)
		for p.tokens.Current() != nil && !p.at(RBrace) {
			if (FunctionDeclarationRule{}).Matches(p) {
				(FunctionDeclarationRule{}).ParseRule(p)
			} else {
				cur, _ := p.tokens.CurrentlyAtAsRange()
				p.error("unexpected token in class body", cur)
				p.eatAny()
			}
			p.eat(Ws)
		}
		p.expect(RBrace)
	}

	m.Finish(p)
}

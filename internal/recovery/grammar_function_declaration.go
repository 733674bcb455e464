package recovery

// FunctionDeclarationRule parses `fun name(param: Type, ...): ReturnType { ... }`.
// The body is consumed as opaque balanced-brace content: this package only
// models declaration shape (scope §3's FunDecl/Param/Type), not statement or
// expression grammar, matching the Non-goal of full expression parsing.
type FunctionDeclarationRule struct {
	StartAt *Token
}

func (FunctionDeclarationRule) Name() string { return "FunctionDeclaration" }

func (FunctionDeclarationRule) Matches(p *Parser) bool {
	e := p.tokens.NextNonWs()
	return e != nil && e.tok == FunKeyword
}

func (r FunctionDeclarationRule) ParseRule(p *Parser) {
	m := p.start(FunDecl, nil)

	p.eat(Ws)
	p.expect(FunKeyword)
	p.eat(Ws)
	p.expect(SimpleIdent)
	p.eat(Ws)

	if p.eat(LParen) {
		paramList := p.start(ParamList, nil)
		p.eat(Ws)
		for !p.at(RParen) && p.tokens.Current() != nil {
			param := p.start(Param, nil)
			p.expect(SimpleIdent)
			p.eat(Ws)
			if p.eat(Colon) {
				p.eat(Ws)
				p.expect(SimpleIdent)
			}
			param.Finish(p)
			p.eat(Ws)
			if !p.eat(Comma) {
				break
			}
			p.eat(Ws)
		}
		paramList.Finish(p)
		p.expect(RParen)
	}

	p.eat(Ws)
	if p.eat(Colon) {
		p.eat(Ws)
		p.expect(SimpleIdent)
	}

	p.eat(Ws)
	if p.eat(LBrace) {
		depth := 1
		for depth > 0 && p.tokens.Current() != nil {
			switch {
			case p.eat(LBrace):
				depth++
			case p.eat(RBrace):
				depth--
			default:
				p.eatAny()
			}
		}
	}

	m.Finish(p)
}

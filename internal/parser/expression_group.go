package parser

import (
	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/token"
)

// parseParenExpr: `(x, y: T) -> e` лямбда, `(a, b)` кортеж, `(e)` группа.
func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	if closeAt := p.matchingClose(p.pos); closeAt > 0 && closeAt+1 < len(p.toks) && p.toks[closeAt+1].Kind == token.Arrow {
		return p.parseArrowLambda()
	}

	open := p.advance()
	restore := p.withFlags(false, false)
	defer restore()

	if _, ok := p.eat(token.RParen); ok {
		return p.b.Exprs.NewTuple(p.spanFrom(open.Span), nil), true
	}

	first, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.eat(token.RParen); ok {
		return p.b.Exprs.NewGroup(p.spanFrom(open.Span), first), true
	}
	if _, ok := p.expect(token.Comma, diag.SynUnclosedDelimiter, "expected ',' or ')'"); !ok {
		return ast.NoExprID, false
	}

	elems := []ast.ExprID{first}
	for !p.at(token.RParen) {
		el, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, el)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ',' or ')' in tuple"); !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewTuple(p.spanFrom(open.Span), elems), true
}

// parseArrowLambda: `x -> e` или `(x, mut y: T) -> e`.
func (p *Parser) parseArrowLambda() (ast.ExprID, bool) {
	start := p.peek()
	var params []ast.LambdaParam
	if start.Kind == token.Ident {
		p.advance()
		params = append(params, ast.LambdaParam{Name: p.intern(start.Text), Span: start.Span})
	} else {
		var ok bool
		if params, ok = p.parseLambdaParams(); !ok {
			return ast.NoExprID, false
		}
	}
	if _, ok := p.expect(token.Arrow, diag.SynUnexpectedToken, "expected '->' after lambda parameters"); !ok {
		return ast.NoExprID, false
	}
	restore := p.withFlags(p.noStruct, false)
	body, ok := p.parseExpr()
	restore()
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewLambda(p.spanFrom(start.Span), ast.ExprLambdaData{
		Form:   ast.LambdaArrow,
		Params: params,
		Body:   body,
	}), true
}

// parseFnLambda: `[async] fn(params) [-> T] { ... }`.
func (p *Parser) parseFnLambda(async bool) (ast.ExprID, bool) {
	start := p.peek()
	if async {
		p.advance()
	}
	if _, ok := p.expect(token.KwFn, diag.SynUnexpectedToken, "expected 'fn'"); !ok {
		return ast.NoExprID, false
	}
	params, ok := p.parseLambdaParams()
	if !ok {
		return ast.NoExprID, false
	}
	result := ast.NoTypeID
	if _, ok := p.eat(token.Arrow); ok {
		if result, ok = p.parseType(); !ok {
			return ast.NoExprID, false
		}
	}
	body, ok := p.parseBlockExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewLambda(p.spanFrom(start.Span), ast.ExprLambdaData{
		Form:   ast.LambdaFn,
		Params: params,
		Result: result,
		Body:   body,
		Async:  async,
	}), true
}

func (p *Parser) parseLambdaParams() ([]ast.LambdaParam, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' before lambda parameters"); !ok {
		return nil, false
	}
	var params []ast.LambdaParam
	for !p.at(token.RParen) {
		start := p.peek()
		param := ast.LambdaParam{}
		if _, ok := p.eat(token.KwMut); ok {
			param.Mut = true
		}
		name, _, ok := p.parseIdent("lambda parameter name")
		if !ok {
			return nil, false
		}
		param.Name = name
		if _, ok := p.eat(token.Colon); ok {
			if param.Type, ok = p.parseType(); !ok {
				return nil, false
			}
		}
		param.Span = p.spanFrom(start.Span)
		params = append(params, param)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ',' or ')' in lambda parameters"); !ok {
		return nil, false
	}
	return params, true
}

// parseBraceExpr — '{' в позиции операнда: блок, если первый токен начинает
// оператор или первый разделитель глубины 0 — ';'; иначе инициализатор массива.
func (p *Parser) parseBraceExpr() (ast.ExprID, bool) {
	if p.braceIsBlock() {
		return p.parseBlockExpr()
	}
	open := p.advance()
	restore := p.withFlags(false, false)
	defer restore()

	var elems []ast.ExprID
	for !p.at(token.RBrace) {
		el, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, el)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected ',' or '}' in array initializer"); !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewArray(p.spanFrom(open.Span), elems), true
}

func (p *Parser) braceIsBlock() bool {
	first := p.peekN(1)
	if first.Kind == token.RBrace {
		return false
	}
	if isStmtKeyword(first.Kind) || first.Kind == token.LBrace || first.Kind == token.At {
		return true
	}
	if first.Kind == token.KwFn && p.peekN(2).Kind == token.Ident {
		return true
	}
	if first.Kind == token.Ident && p.peekN(2).Kind == token.Colon && isLoopKeyword(p.peekN(3).Kind) {
		return true
	}
	depth := 0
	for i := p.pos + 1; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket:
			depth--
		case token.RBrace:
			if depth == 0 {
				return false
			}
			depth--
		case token.Semicolon:
			if depth == 0 {
				return true
			}
		case token.Comma:
			if depth == 0 {
				return false
			}
		case token.EOF:
			return false
		}
	}
	return false
}

func isStmtKeyword(k token.Kind) bool {
	switch k {
	case token.KwVar, token.KwConst, token.KwAutofree, token.KwReturn, token.KwBreak,
		token.KwContinue, token.KwFor, token.KwWhile, token.KwLoop, token.KwRepeat,
		token.KwGuard, token.KwUnless, token.KwDefer, token.KwStruct, token.KwEnum,
		token.KwUnion, token.KwImpl, token.KwTrait, token.KwImport, token.KwIf, token.KwMatch:
		return true
	}
	return false
}

func isLoopKeyword(k token.Kind) bool {
	return k == token.KwFor || k == token.KwWhile || k == token.KwLoop || k == token.KwRepeat
}

// parseIfExpr: `if c { } [else (if ... | { })]` или тернарный `if c ? a : b`.
func (p *Parser) parseIfExpr() (ast.ExprID, bool) {
	kw := p.advance()

	restore := p.withFlags(true, true)
	cond, ok := p.parseExpr()
	restore()
	if !ok {
		return ast.NoExprID, false
	}

	if _, ok := p.eat(token.Question); ok {
		restore := p.withFlags(false, false)
		defer restore()
		then, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in conditional expression"); !ok {
			return ast.NoExprID, false
		}
		els, ok := p.parseExprPrec(precTernary)
		if !ok {
			return ast.NoExprID, false
		}
		return p.b.Exprs.NewTernary(p.spanFrom(kw.Span), cond, then, els), true
	}

	then, ok := p.parseBlockExpr()
	if !ok {
		return ast.NoExprID, false
	}
	els := ast.NoExprID
	if _, ok := p.eat(token.KwElse); ok {
		if p.at(token.KwIf) {
			els, ok = p.parseIfExpr()
		} else {
			els, ok = p.parseBlockExpr()
		}
		if !ok {
			return ast.NoExprID, false
		}
	}
	return p.b.Exprs.NewIf(p.spanFrom(kw.Span), cond, then, els), true
}

// parseMatchExpr: `match e { pat [if guard] => expr|block [,] ... }`.
func (p *Parser) parseMatchExpr() (ast.ExprID, bool) {
	kw := p.advance()

	restore := p.withFlags(true, false)
	scrutinee, ok := p.parseExpr()
	restore()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{' after match scrutinee"); !ok {
		return ast.NoExprID, false
	}

	restore = p.withFlags(false, false)
	defer restore()

	var arms []ast.MatchArm
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		arm, ok := p.parseMatchArm()
		if !ok {
			return ast.NoExprID, false
		}
		arms = append(arms, arm)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close match"); !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewMatch(p.spanFrom(kw.Span), scrutinee, arms), true
}

func (p *Parser) parseMatchArm() (ast.MatchArm, bool) {
	start := p.peek()
	pat, ok := p.parsePattern()
	if !ok {
		return ast.MatchArm{}, false
	}
	arm := ast.MatchArm{Pattern: pat}
	if _, ok := p.eat(token.KwIf); ok {
		if arm.Guard, ok = p.parseExpr(); !ok {
			return ast.MatchArm{}, false
		}
	}
	if _, ok := p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>' after match pattern"); !ok {
		return ast.MatchArm{}, false
	}
	if p.at(token.LBrace) {
		arm.Body, ok = p.parseBlockExpr()
	} else {
		arm.Body, ok = p.parseExpr()
	}
	if !ok {
		return ast.MatchArm{}, false
	}
	arm.Span = p.spanFrom(start.Span)
	p.eat(token.Comma)
	return arm, true
}

// parseQueryExpr — sizeof/typeof: сначала грамматика типа, потом выражения.
func (p *Parser) parseQueryExpr(kind ast.ExprKind) (ast.ExprID, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after '"+kw.Text+"'"); !ok {
		return ast.NoExprID, false
	}
	restore := p.withFlags(false, false)
	defer restore()

	data := ast.ExprQueryData{}
	tok := p.peek()
	switch {
	case tok.Kind == token.Ident && p.peekN(1).Kind == token.RParen && !token.IsPrimitiveType(tok.Text):
		// одиночное имя: тип, если объявлено как struct/enum/union/trait в этом файле
		p.advance()
		name := p.intern(tok.Text)
		data.Ambiguous = isCapitalized(tok.Text)
		if _, declared := p.typeNames[tok.Text]; declared {
			data.Type = p.b.Types.NewNamed(tok.Span, name, nil)
		} else {
			data.Expr = p.b.Exprs.NewIdent(tok.Span, name)
		}
	default:
		var ty ast.TypeID
		isType := p.speculate(func() bool {
			var ok bool
			ty, ok = p.parseType()
			return ok && p.at(token.RParen)
		})
		if isType {
			data.Type = ty
		} else {
			expr, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			data.Expr = expr
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after "+kw.Text+" operand"); !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewQuery(p.spanFrom(kw.Span), kind, data), true
}

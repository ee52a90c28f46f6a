package parser

import (
	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/token"
)

// parsePostfixExpr обрабатывает постфиксы слева направо: вызов, индекс,
// доступ к полю, метод, `?.`, `::` и `?` (try).
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		switch p.peek().Kind {
		case token.LParen:
			args, ok := p.parseCallArgs()
			if !ok {
				return ast.NoExprID, false
			}
			expr = p.b.Exprs.NewCall(p.spanFrom(p.exprSpan(expr)), expr, args)

		case token.LBracket:
			p.advance()
			restore := p.withFlags(false, false)
			index, ok := p.parseExpr()
			restore()
			if !ok {
				return ast.NoExprID, false
			}
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' after index"); !ok {
				return ast.NoExprID, false
			}
			expr = p.b.Exprs.NewIndex(p.spanFrom(p.exprSpan(expr)), expr, index)

		case token.Dot, token.QuestionDot:
			if expr, ok = p.parseMemberExpr(expr); !ok {
				return ast.NoExprID, false
			}

		case token.ColonColon:
			p.advance()
			name, _, ok := p.parseIdent("identifier after '::'")
			if !ok {
				return ast.NoExprID, false
			}
			expr = p.b.Exprs.NewScoped(p.spanFrom(p.exprSpan(expr)), expr, name)

		case token.Question:
			if p.noTry {
				return expr, true
			}
			p.advance()
			expr = p.b.Exprs.NewUnary(p.spanFrom(p.exprSpan(expr)), ast.UnaryTry, expr)

		default:
			return expr, true
		}
	}
}

// parseMemberExpr: `.name`, `.0`, `.name(args)`, `.name<T>(args)` и их `?.`-варианты.
func (p *Parser) parseMemberExpr(target ast.ExprID) (ast.ExprID, bool) {
	dot := p.advance()
	safe := dot.Kind == token.QuestionDot
	start := p.exprSpan(target)

	if !safe && p.at(token.IntLit) {
		idx := p.advance()
		return p.b.Exprs.NewMember(p.spanFrom(start), ast.ExprMemberData{
			Target:     target,
			Name:       p.intern(idx.Text),
			TupleIndex: true,
		}), true
	}

	name, _, ok := p.parseIdent("member name after '" + dot.Kind.String() + "'")
	if !ok {
		return ast.NoExprID, false
	}

	var generics []ast.TypeID
	if p.at(token.Lt) {
		// `.f<T>(` — только если за аргументами сразу идёт '('; иначе это сравнение
		p.speculate(func() bool {
			args, ok := p.parseTypeArgs()
			if !ok || !p.at(token.LParen) {
				return false
			}
			generics = args
			return true
		})
	}

	if p.at(token.LParen) {
		args, ok := p.parseCallArgs()
		if !ok {
			return ast.NoExprID, false
		}
		return p.b.Exprs.NewMethodCall(p.spanFrom(start), ast.ExprMethodCallData{
			Receiver: target,
			Name:     name,
			Generics: generics,
			Args:     args,
			Safe:     safe,
		}), true
	}

	return p.b.Exprs.NewMember(p.spanFrom(start), ast.ExprMemberData{
		Target: target,
		Name:   name,
		Safe:   safe,
	}), true
}

// parseCallArgs parses `( [name:] expr, ... )`.
func (p *Parser) parseCallArgs() ([]ast.CallArg, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('"); !ok {
		return nil, false
	}
	restore := p.withFlags(false, false)
	defer restore()

	var args []ast.CallArg
	for !p.at(token.RParen) {
		arg := ast.CallArg{}
		if p.at(token.Ident) && p.peekN(1).Kind == token.Colon {
			arg.Name = p.intern(p.advance().Text)
			p.advance()
		}
		value, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		arg.Value = value
		args = append(args, arg)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ',' or ')' in argument list"); !ok {
		return nil, false
	}
	return args, true
}

// parseTypeArgs parses `<T, U>` with '>>' splitting.
func (p *Parser) parseTypeArgs() ([]ast.TypeID, bool) {
	if _, ok := p.expect(token.Lt, diag.SynUnexpectedToken, "expected '<'"); !ok {
		return nil, false
	}
	var args []ast.TypeID
	for {
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		args = append(args, ty)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if !p.eatCloseAngle() {
		p.fail(diag.SynUnclosedDelimiter, "expected '>' to close generic arguments", token.Gt)
		return nil, false
	}
	return args, true
}

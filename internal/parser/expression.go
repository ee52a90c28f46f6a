package parser

import (
	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/source"
	"zenc/internal/token"
)

// exprStarters — ожидаемое множество для "expected expression".
var exprStarters = []token.Kind{
	token.Ident, token.IntLit, token.FloatLit, token.StringLit, token.CharLit,
	token.LParen, token.LBrace, token.Minus, token.Bang, token.Star, token.Amp,
	token.KwIf, token.KwMatch, token.KwFn,
}

// parseExpr — главная точка входа для выражений.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseExprPrec(precAssign)
}

// parseExprPrec — precedence climbing over binaryOps.
func (p *Parser) parseExprPrec(minPrec prec) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		tok := p.peek()

		if tok.Kind == token.KwAs {
			if castPrec < minPrec {
				break
			}
			p.advance()
			ty, ok := p.parseType()
			if !ok {
				return ast.NoExprID, false
			}
			left = p.b.Exprs.NewCast(p.exprSpan(left).Cover(p.typeSpan(ty)), left, ty)
			continue
		}

		info, isBinary := lookupBinary(tok.Kind)
		if !isBinary || info.prec < minPrec {
			break
		}
		p.advance()

		next := info.prec + 1
		if info.right {
			next = info.prec
		}

		if info.rng {
			end := ast.NoExprID
			if p.canStartOperand() {
				if end, ok = p.parseExprPrec(next); !ok {
					return ast.NoExprID, false
				}
			}
			left = p.b.Exprs.NewRange(p.spanFrom(p.exprSpan(left)), left, end, info.incl)
			continue
		}

		right, ok := p.parseExprPrec(next)
		if !ok {
			return ast.NoExprID, false
		}
		sp := p.exprSpan(left).Cover(p.exprSpan(right))
		left = p.b.Exprs.NewBinary(sp, info.op, left, right)
	}

	return left, true
}

type prefixOp struct {
	op   ast.UnaryOp
	span source.Span
}

// parseUnaryExpr собирает префиксы и применяет их справа налево.
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	var prefixes []prefixOp

	for {
		tok := p.peek()

		// !"..." и !"...".. — печать в stderr, а не отрицание
		if tok.Kind == token.Bang && isStringTok(p.peekN(1).Kind) {
			bang := p.advance()
			expr, ok := p.parseEprintShorthand(bang)
			if !ok {
				return ast.NoExprID, false
			}
			return p.applyPrefixes(prefixes, expr), true
		}

		switch tok.Kind {
		case token.Amp:
			amp := p.advance()
			if mutTok, ok := p.eat(token.KwMut); ok {
				prefixes = append(prefixes, prefixOp{op: ast.UnaryAddrOfMut, span: amp.Span.Cover(mutTok.Span)})
			} else {
				prefixes = append(prefixes, prefixOp{op: ast.UnaryAddrOf, span: amp.Span})
			}
			continue
		case token.AndAnd:
			// `&&x` — два взятия адреса
			tt := p.advance()
			first := source.Span{File: tt.Span.File, Start: tt.Span.Start, End: tt.Span.Start + 1}
			second := source.Span{File: tt.Span.File, Start: tt.Span.Start + 1, End: tt.Span.End}
			prefixes = append(prefixes, prefixOp{op: ast.UnaryAddrOf, span: first}, prefixOp{op: ast.UnaryAddrOf, span: second})
			continue
		case token.DotDot, token.DotDotEq:
			// `..b`, `..=b`, `..`
			rt := p.advance()
			end := ast.NoExprID
			if p.canStartOperand() {
				var ok bool
				if end, ok = p.parseExprPrec(precRange + 1); !ok {
					return ast.NoExprID, false
				}
			}
			expr := p.b.Exprs.NewRange(p.spanFrom(rt.Span), ast.NoExprID, end, rt.Kind == token.DotDotEq)
			return p.applyPrefixes(prefixes, expr), true
		}

		op, isPrefix := prefixOps[tok.Kind]
		if !isPrefix {
			break
		}
		opTok := p.advance()
		prefixes = append(prefixes, prefixOp{op: op, span: opTok.Span})
	}

	expr, ok := p.parsePostfixExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.applyPrefixes(prefixes, expr), true
}

func (p *Parser) applyPrefixes(prefixes []prefixOp, expr ast.ExprID) ast.ExprID {
	for i := len(prefixes) - 1; i >= 0; i-- {
		sp := prefixes[i].span.Cover(p.exprSpan(expr))
		expr = p.b.Exprs.NewUnary(sp, prefixes[i].op, expr)
	}
	return expr
}

// canStartOperand reports whether the current token may begin an expression.
// Used for the optional operands of `..`, `return` and `break`.
func (p *Parser) canStartOperand() bool {
	switch p.peek().Kind {
	case token.Ident, token.Underscore, token.IntLit, token.FloatLit, token.StringLit,
		token.InterpStringLit, token.CharLit, token.KwTrue, token.KwFalse, token.KwNull,
		token.LParen, token.Minus, token.Bang, token.Tilde, token.Star, token.Amp,
		token.AndAnd, token.KwAwait, token.KwIf, token.KwMatch, token.KwFn,
		token.KwSizeof, token.KwTypeof, token.KwEmbed, token.KwComptime, token.KwAsm,
		token.KwRaw, token.Question, token.DotDot, token.DotDotEq:
		return true
	case token.LBrace:
		return !p.noStruct
	}
	return false
}

func isStringTok(k token.Kind) bool {
	return k == token.StringLit || k == token.InterpStringLit
}

func (p *Parser) expectExprFail() {
	p.fail(diag.SynExpectExpression, "expected expression", exprStarters...)
}

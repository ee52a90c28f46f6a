package parser

import (
	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/source"
	"zenc/internal/token"
)

var patternStarters = []token.Kind{
	token.Ident, token.Underscore, token.IntLit, token.CharLit, token.StringLit,
	token.LParen, token.Minus, token.DotDot, token.KwMut,
}

// parsePattern: альтернативы через '|' собираются в один плоский PatOr.
func (p *Parser) parsePattern() (ast.PatternID, bool) {
	first, ok := p.parsePatternAtom()
	if !ok {
		return ast.NoPatternID, false
	}
	if !p.at(token.Pipe) {
		return first, true
	}
	alts := []ast.PatternID{first}
	for p.at(token.Pipe) {
		p.advance()
		alt, ok := p.parsePatternAtom()
		if !ok {
			return ast.NoPatternID, false
		}
		alts = append(alts, alt)
	}
	return p.b.Patterns.NewOr(p.spanFrom(p.patSpan(first)), alts), true
}

func (p *Parser) parsePatternAtom() (ast.PatternID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Underscore:
		p.advance()
		return p.b.Patterns.NewWildcard(tok.Span), true
	case token.DotDot:
		p.advance()
		return p.b.Patterns.NewRest(tok.Span), true
	case token.KwMut:
		p.advance()
		name, nameTok, ok := p.parseIdent("binding name after 'mut'")
		if !ok {
			return ast.NoPatternID, false
		}
		return p.b.Patterns.NewIdent(tok.Span.Cover(nameTok.Span), name, true), true
	case token.LParen:
		return p.parseTuplePattern()
	case token.Ident:
		return p.parsePathPattern()
	case token.IntLit, token.FloatLit, token.CharLit, token.StringLit,
		token.KwTrue, token.KwFalse, token.KwNull, token.Minus:
		return p.parseLiteralPattern()
	}
	p.fail(diag.SynExpectPattern, "expected pattern", patternStarters...)
	return ast.NoPatternID, false
}

// parseLiteralPattern: литерал, `-1`, или диапазон `1..10`, `'a'..='z'`.
func (p *Parser) parseLiteralPattern() (ast.PatternID, bool) {
	start, ok := p.parsePatternLit()
	if !ok {
		return ast.NoPatternID, false
	}
	if p.atAny(token.DotDot, token.DotDotEq) {
		rng := p.advance()
		end, ok := p.parsePatternLit()
		if !ok {
			return ast.NoPatternID, false
		}
		return p.b.Patterns.NewRange(p.spanFrom(p.exprSpan(start)), start, end, rng.Kind == token.DotDotEq), true
	}
	return p.b.Patterns.NewLit(p.exprSpan(start), start), true
}

func (p *Parser) parsePatternLit() (ast.ExprID, bool) {
	if minus, ok := p.eat(token.Minus); ok {
		if !p.atAny(token.IntLit, token.FloatLit) {
			p.fail(diag.SynExpectPattern, "expected number after '-' in pattern", token.IntLit, token.FloatLit)
			return ast.NoExprID, false
		}
		lit, _ := p.parseLiteral()
		return p.b.Exprs.NewUnary(minus.Span.Cover(p.exprSpan(lit)), ast.UnaryNeg, lit), true
	}
	switch p.peek().Kind {
	case token.IntLit, token.FloatLit, token.CharLit, token.KwTrue, token.KwFalse, token.KwNull:
		return p.parseLiteral()
	case token.StringLit:
		return p.parseStringExpr()
	}
	p.fail(diag.SynExpectPattern, "expected literal in pattern", token.IntLit, token.CharLit, token.StringLit)
	return ast.NoExprID, false
}

// parsePathPattern: `x` — привязка; `None`, `Opt::None` — вариант без данных;
// `Some(x)` — вариант с аргументами; `Point { x, y: 0, .. }` — структура.
func (p *Parser) parsePathPattern() (ast.PatternID, bool) {
	first := p.advance()
	path := []source.StringID{p.intern(first.Text)}
	for p.at(token.ColonColon) {
		p.advance()
		name, _, ok := p.parseIdent("identifier after '::' in pattern")
		if !ok {
			return ast.NoPatternID, false
		}
		path = append(path, name)
	}

	switch p.peek().Kind {
	case token.LParen:
		p.advance()
		var args []ast.PatternID
		for !p.at(token.RParen) {
			arg, ok := p.parsePattern()
			if !ok {
				return ast.NoPatternID, false
			}
			args = append(args, arg)
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ',' or ')' in variant pattern"); !ok {
			return ast.NoPatternID, false
		}
		return p.b.Patterns.NewEnum(p.spanFrom(first.Span), ast.PatEnumData{Path: path, Args: args, HasArgs: true}), true
	case token.LBrace:
		return p.parseStructPattern(first.Span, path)
	}

	if len(path) == 1 && !isCapitalized(first.Text) {
		return p.b.Patterns.NewIdent(first.Span, path[0], false), true
	}
	return p.b.Patterns.NewEnum(p.spanFrom(first.Span), ast.PatEnumData{Path: path}), true
}

func (p *Parser) parseStructPattern(start source.Span, path []source.StringID) (ast.PatternID, bool) {
	p.advance() // {
	data := ast.PatStructData{Path: path}
	for !p.at(token.RBrace) {
		if _, ok := p.eat(token.DotDot); ok {
			data.Rest = true
			break
		}
		name, nameTok, ok := p.parseIdent("field name in struct pattern")
		if !ok {
			return ast.NoPatternID, false
		}
		field := ast.PatField{Name: name, Span: nameTok.Span}
		if _, ok := p.eat(token.Colon); ok {
			if field.Pattern, ok = p.parsePattern(); !ok {
				return ast.NoPatternID, false
			}
			field.Span = p.spanFrom(nameTok.Span)
		}
		data.Fields = append(data.Fields, field)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected ',' or '}' in struct pattern"); !ok {
		return ast.NoPatternID, false
	}
	return p.b.Patterns.NewStruct(p.spanFrom(start), data), true
}

func (p *Parser) parseTuplePattern() (ast.PatternID, bool) {
	open := p.advance()
	var elems []ast.PatternID
	trailing := false
	for !p.at(token.RParen) {
		el, ok := p.parsePattern()
		if !ok {
			return ast.NoPatternID, false
		}
		elems = append(elems, el)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
		trailing = true
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ',' or ')' in tuple pattern"); !ok {
		return ast.NoPatternID, false
	}
	// (p) — просто скобки
	if len(elems) == 1 && !trailing {
		return elems[0], true
	}
	return p.b.Patterns.NewTuple(p.spanFrom(open.Span), elems), true
}

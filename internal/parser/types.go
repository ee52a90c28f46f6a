package parser

import (
	"strings"

	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/source"
	"zenc/internal/token"
)

// typeStarters — ожидаемое множество для "expected type".
var typeStarters = []token.Kind{
	token.Ident, token.Star, token.Question, token.Amp, token.LParen, token.KwFn,
}

type typePrefix struct {
	kind ast.TypeKind
	qual ast.PointerQual
	mut  bool
	span source.Span
}

// parseType: префиксы `?`, `*`, `*const`, `*mut`, `&`, `&mut` применяются
// после суффиксов массива, так что `?*i32[4]` — Optional(Pointer(Array(i32, 4))).
func (p *Parser) parseType() (ast.TypeID, bool) {
	var prefixes []typePrefix
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.Question:
			p.advance()
			prefixes = append(prefixes, typePrefix{kind: ast.TypeOptional, span: tok.Span})
			continue
		case token.Star:
			p.advance()
			pr := typePrefix{kind: ast.TypePointer, span: tok.Span}
			if q, ok := p.eat(token.KwConst); ok {
				pr.qual, pr.span = ast.PtrConst, tok.Span.Cover(q.Span)
			} else if q, ok := p.eat(token.KwMut); ok {
				pr.qual, pr.span = ast.PtrMut, tok.Span.Cover(q.Span)
			}
			prefixes = append(prefixes, pr)
			continue
		case token.Amp:
			p.advance()
			pr := typePrefix{kind: ast.TypeRef, span: tok.Span}
			if m, ok := p.eat(token.KwMut); ok {
				pr.mut, pr.span = true, tok.Span.Cover(m.Span)
			}
			prefixes = append(prefixes, pr)
			continue
		case token.AndAnd:
			p.advance()
			first := source.Span{File: tok.Span.File, Start: tok.Span.Start, End: tok.Span.Start + 1}
			second := source.Span{File: tok.Span.File, Start: tok.Span.Start + 1, End: tok.Span.End}
			prefixes = append(prefixes, typePrefix{kind: ast.TypeRef, span: first}, typePrefix{kind: ast.TypeRef, span: second})
			continue
		}
		break
	}

	ty, ok := p.parseBaseType()
	if !ok {
		return ast.NoTypeID, false
	}
	if ty, ok = p.parseArraySuffixes(ty); !ok {
		return ast.NoTypeID, false
	}

	for i := len(prefixes) - 1; i >= 0; i-- {
		pr := prefixes[i]
		sp := pr.span.Cover(p.typeSpan(ty))
		switch pr.kind {
		case ast.TypeOptional:
			ty = p.b.Types.NewOptional(sp, ty)
		case ast.TypePointer:
			ty = p.b.Types.NewPointer(sp, pr.qual, ty)
		case ast.TypeRef:
			ty = p.b.Types.NewRef(sp, pr.mut, ty)
		}
	}
	return ty, true
}

func (p *Parser) parseBaseType() (ast.TypeID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		return p.parseNamedType()
	case token.LParen:
		return p.parseTupleType()
	case token.KwFn:
		return p.parseFnType()
	}
	p.fail(diag.SynExpectType, "expected type", typeStarters...)
	return ast.NoTypeID, false
}

// parseNamedType: `i32`, `Vec<T>`, `std::io::File`, `Map<K, V>`.
func (p *Parser) parseNamedType() (ast.TypeID, bool) {
	first := p.advance()
	if token.IsPrimitiveType(first.Text) && !p.at(token.ColonColon) && !p.at(token.Lt) {
		return p.b.Types.NewPrimitive(first.Span, p.intern(first.Text)), true
	}

	parts := []string{first.Text}
	for p.at(token.ColonColon) && p.peekN(1).Kind == token.Ident {
		p.advance()
		parts = append(parts, p.advance().Text)
	}
	name := p.intern(strings.Join(parts, "::"))

	var args []ast.TypeID
	if p.at(token.Lt) {
		var ok bool
		if args, ok = p.parseTypeArgs(); !ok {
			return ast.NoTypeID, false
		}
	}
	return p.b.Types.NewNamed(p.spanFrom(first.Span), name, args), true
}

// parseTupleType: `()` — пустой кортеж, `(T)` — просто T, `(T, U)` — кортеж.
// `(T,)` не кортеж: в типе нужно минимум два элемента.
func (p *Parser) parseTupleType() (ast.TypeID, bool) {
	open := p.advance()
	if _, ok := p.eat(token.RParen); ok {
		return p.b.Types.NewTuple(p.spanFrom(open.Span), nil), true
	}
	var elems []ast.TypeID
	for {
		el, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		elems = append(elems, el)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
		if p.at(token.RParen) {
			if len(elems) == 1 {
				p.fail(diag.SynExpectType, "tuple type needs a second element", typeStarters...)
				return ast.NoTypeID, false
			}
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ',' or ')' in tuple type"); !ok {
		return ast.NoTypeID, false
	}
	if len(elems) == 1 {
		return elems[0], true
	}
	return p.b.Types.NewTuple(p.spanFrom(open.Span), elems), true
}

// parseFnType: `fn(T, U) -> R`.
func (p *Parser) parseFnType() (ast.TypeID, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'fn' in type"); !ok {
		return ast.NoTypeID, false
	}
	var params []ast.TypeID
	for !p.at(token.RParen) {
		prm, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		params = append(params, prm)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ',' or ')' in function type"); !ok {
		return ast.NoTypeID, false
	}
	result := ast.NoTypeID
	if _, ok := p.eat(token.Arrow); ok {
		if result, ok = p.parseType(); !ok {
			return ast.NoTypeID, false
		}
	}
	return p.b.Types.NewFn(p.spanFrom(kw.Span), params, result), true
}

// parseArraySuffixes: `T[N]`, `T[]`, `T[N][M]`.
func (p *Parser) parseArraySuffixes(elem ast.TypeID) (ast.TypeID, bool) {
	for p.at(token.LBracket) {
		p.advance()
		size := ast.NoExprID
		if !p.at(token.RBracket) {
			restore := p.withFlags(false, false)
			var ok bool
			size, ok = p.parseExpr()
			restore()
			if !ok {
				return ast.NoTypeID, false
			}
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' in array type"); !ok {
			return ast.NoTypeID, false
		}
		elem = p.b.Types.NewArray(p.spanFrom(p.typeSpan(elem)), elem, size)
	}
	return elem, true
}

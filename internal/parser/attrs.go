package parser

import (
	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/token"
)

// parseAttrs: `@name` или `@name(expr, ...)`, порядок сохраняется.
// Имя может совпадать с ключевым словом (`@const`).
func (p *Parser) parseAttrs() ([]ast.Attr, bool) {
	var attrs []ast.Attr
	for p.at(token.At) {
		at := p.advance()
		nameTok := p.peek()
		if nameTok.Kind != token.Ident && !nameTok.Kind.IsKeyword() {
			p.fail(diag.SynBadAttribute, "expected attribute name after '@'", token.Ident)
			return nil, false
		}
		p.advance()
		attr := ast.Attr{Name: p.intern(nameTok.Text)}
		if kind, ok := ast.LookupAttr(nameTok.Text); ok {
			attr.Known = kind
		}

		if _, ok := p.eat(token.LParen); ok {
			restore := p.withFlags(false, false)
			for !p.at(token.RParen) {
				arg, ok := p.parseExpr()
				if !ok {
					restore()
					return nil, false
				}
				attr.Args = append(attr.Args, arg)
				if _, ok := p.eat(token.Comma); !ok {
					break
				}
			}
			restore()
			if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ',' or ')' in attribute arguments"); !ok {
				return nil, false
			}
		}
		attr.Span = p.spanFrom(at.Span)
		attrs = append(attrs, attr)
	}
	return attrs, true
}

package parser

import (
	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/token"
)

// parseVarItem: `var [mut] name [: T] [= e];` и `var (a, b) = e;`.
func (p *Parser) parseVarItem(mods declMods) (ast.ItemID, bool) {
	p.advance() // var
	v := ast.VarItem{Attrs: mods.attrs, Autofree: mods.autofree}
	if _, ok := p.eat(token.KwMut); ok {
		v.Mut = true
	}

	var ok bool
	if p.at(token.LParen) {
		if v.Pattern, ok = p.parsePattern(); !ok {
			return ast.NoItemID, false
		}
	} else if v.Name, _, ok = p.parseIdent("variable name"); !ok {
		return ast.NoItemID, false
	}

	if _, ok := p.eat(token.Colon); ok {
		if v.Type, ok = p.parseType(); !ok {
			return ast.NoItemID, false
		}
	}
	if _, ok := p.eat(token.Assign); ok {
		if v.Value, ok = p.parseExpr(); !ok {
			return ast.NoItemID, false
		}
	} else if v.Pattern.IsValid() {
		p.fail(diag.SynUnexpectedToken, "expected '=' after destructuring pattern", token.Assign)
		return ast.NoItemID, false
	}
	if !p.expectSemi("variable declaration") {
		return ast.NoItemID, false
	}
	return p.b.Items.NewVar(p.spanFrom(mods.start), v), true
}

// parseConstItem: `const name [: T] = e;`.
func (p *Parser) parseConstItem(mods declMods) (ast.ItemID, bool) {
	p.advance() // const
	c := ast.ConstItem{Attrs: mods.attrs}
	var ok bool
	if c.Name, _, ok = p.parseIdent("constant name"); !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.eat(token.Colon); ok {
		if c.Type, ok = p.parseType(); !ok {
			return ast.NoItemID, false
		}
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in constant declaration"); !ok {
		return ast.NoItemID, false
	}
	if c.Value, ok = p.parseExpr(); !ok {
		return ast.NoItemID, false
	}
	if !p.expectSemi("constant declaration") {
		return ast.NoItemID, false
	}
	return p.b.Items.NewConst(p.spanFrom(mods.start), c), true
}

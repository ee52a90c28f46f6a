package parser

import (
	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/token"
)

// parseImplItem: `impl[<G>] [Trait for] Type { members }`.
func (p *Parser) parseImplItem() (ast.ItemID, bool) {
	kw := p.advance()
	im := ast.ImplItem{}
	var ok bool
	if p.at(token.Lt) {
		if im.Generics, ok = p.parseGenericParams(); !ok {
			return ast.NoItemID, false
		}
	}

	first, ok := p.parseType()
	if !ok {
		return ast.NoItemID, false
	}
	if _, isFor := p.eat(token.KwFor); isFor {
		im.Trait = first
		if im.Type, ok = p.parseType(); !ok {
			return ast.NoItemID, false
		}
	} else {
		im.Type = first
	}

	if im.Members, ok = p.parseMembers("impl"); !ok {
		return ast.NoItemID, false
	}
	return p.b.Items.NewImpl(p.spanFrom(kw.Span), im), true
}

// parseTraitItem: `trait Name[<G>] [: A + B] { [attrs] [async] fn sig (block|;) | const ... }`.
func (p *Parser) parseTraitItem(mods declMods) (ast.ItemID, bool) {
	p.advance() // trait
	tr := ast.TraitItem{Attrs: mods.attrs, Pub: mods.pub}

	name, _, ok := p.parseIdent("trait name")
	if !ok {
		return ast.NoItemID, false
	}
	tr.Name = name
	if p.at(token.Lt) {
		if tr.Generics, ok = p.parseGenericParams(); !ok {
			return ast.NoItemID, false
		}
	}
	if _, ok := p.eat(token.Colon); ok {
		if tr.Bounds, ok = p.parseBounds(); !ok {
			return ast.NoItemID, false
		}
	}
	if tr.Members, ok = p.parseMembers("trait"); !ok {
		return ast.NoItemID, false
	}
	return p.b.Items.NewTrait(p.spanFrom(mods.start), tr), true
}

// parseMembers — тело impl/trait: только функции и константы.
func (p *Parser) parseMembers(owner string) ([]ast.ItemID, bool) {
	if _, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{' to open "+owner+" body"); !ok {
		return nil, false
	}
	var members []ast.ItemID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if _, ok := p.eat(token.Semicolon); ok {
			continue
		}
		start := p.peek()
		attrs, ok := p.parseAttrs()
		if !ok {
			return nil, false
		}
		mods := declMods{attrs: attrs, start: start.Span}
		for {
			switch {
			case p.at(token.KwPub) && !mods.pub:
				p.advance()
				mods.pub = true
				continue
			case p.at(token.KwAsync) && !mods.async:
				p.advance()
				mods.async = true
				continue
			}
			break
		}

		var member ast.ItemID
		switch {
		case p.at(token.KwFn):
			member, ok = p.parseFnItem(mods)
		case p.at(token.KwConst) && !mods.async:
			member, ok = p.parseConstItem(mods)
		default:
			p.fail(diag.SynUnexpectedToken, "expected 'fn' or 'const' in "+owner+" body", token.KwFn, token.KwConst)
			return nil, false
		}
		if !ok {
			return nil, false
		}
		members = append(members, member)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close "+owner+" body"); !ok {
		return nil, false
	}
	return members, true
}

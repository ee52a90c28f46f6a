package parser

import (
	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/token"
)

// parseRecordItem: `struct Name[<G>] { fields }`, `union ...`, `struct Name;`.
func (p *Parser) parseRecordItem(mods declMods, kind ast.ItemKind) (ast.ItemID, bool) {
	kw := p.advance()
	rec := ast.RecordItem{Attrs: mods.attrs, Pub: mods.pub}

	name, _, ok := p.parseIdent(kw.Text + " name")
	if !ok {
		return ast.NoItemID, false
	}
	rec.Name = name
	if p.at(token.Lt) {
		if rec.Generics, ok = p.parseGenericParams(); !ok {
			return ast.NoItemID, false
		}
	}

	if _, ok := p.eat(token.Semicolon); ok {
		return p.b.Items.NewRecord(p.spanFrom(mods.start), kind, rec), true
	}
	if rec.Fields, ok = p.parseFieldBlock(); !ok {
		return ast.NoItemID, false
	}
	p.eat(token.Semicolon)
	return p.b.Items.NewRecord(p.spanFrom(mods.start), kind, rec), true
}

// parseFieldBlock: `{ [attrs] [pub] name: T [: bits] [= default] (;|,) ... use T; }`.
// Разделитель после последнего поля можно опустить.
func (p *Parser) parseFieldBlock() ([]ast.Field, bool) {
	if _, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{' before fields"); !ok {
		return nil, false
	}
	var fields []ast.Field
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		field, ok := p.parseField()
		if !ok {
			return nil, false
		}
		fields = append(fields, field)
		if p.atAny(token.Semicolon, token.Comma) {
			p.advance()
			continue
		}
		if !p.at(token.RBrace) {
			p.fail(diag.SynExpectSemicolon, "expected ';' or ',' after field", token.Semicolon, token.Comma, token.RBrace)
			return nil, false
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close field list"); !ok {
		return nil, false
	}
	return fields, true
}

func (p *Parser) parseField() (ast.Field, bool) {
	start := p.peek()
	attrs, ok := p.parseAttrs()
	if !ok {
		return ast.Field{}, false
	}
	field := ast.Field{Attrs: attrs}

	if _, ok := p.eat(token.KwUse); ok {
		if field.Type, ok = p.parseType(); !ok {
			return ast.Field{}, false
		}
		field.Use = true
		field.Span = p.spanFrom(start.Span)
		return field, true
	}

	if _, ok := p.eat(token.KwPub); ok {
		field.Pub = true
	}
	if field.Name, _, ok = p.parseIdent("field name"); !ok {
		return ast.Field{}, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after field name"); !ok {
		return ast.Field{}, false
	}
	if field.Type, ok = p.parseType(); !ok {
		return ast.Field{}, false
	}
	// битовое поле: `flags: u8 : 3`
	if _, ok := p.eat(token.Colon); ok {
		if field.Bits, ok = p.parseExprPrec(precOr); !ok {
			return ast.Field{}, false
		}
	}
	if _, ok := p.eat(token.Assign); ok {
		if field.Default, ok = p.parseExpr(); !ok {
			return ast.Field{}, false
		}
	}
	field.Span = p.spanFrom(start.Span)
	return field, true
}

// parseEnumItem: варианты `A`, `B = 2`, `C(i32, name: T)`, `D { x: i32 }`.
func (p *Parser) parseEnumItem(mods declMods) (ast.ItemID, bool) {
	p.advance() // enum
	en := ast.EnumItem{Attrs: mods.attrs, Pub: mods.pub}

	name, _, ok := p.parseIdent("enum name")
	if !ok {
		return ast.NoItemID, false
	}
	en.Name = name
	if p.at(token.Lt) {
		if en.Generics, ok = p.parseGenericParams(); !ok {
			return ast.NoItemID, false
		}
	}
	if _, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{' after enum name"); !ok {
		return ast.NoItemID, false
	}

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		v, ok := p.parseVariant()
		if !ok {
			return ast.NoItemID, false
		}
		en.Variants = append(en.Variants, v)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected ',' or '}' in enum body"); !ok {
		return ast.NoItemID, false
	}
	p.eat(token.Semicolon)
	return p.b.Items.NewEnum(p.spanFrom(mods.start), en), true
}

func (p *Parser) parseVariant() (ast.Variant, bool) {
	start := p.peek()
	attrs, ok := p.parseAttrs()
	if !ok {
		return ast.Variant{}, false
	}
	v := ast.Variant{Attrs: attrs, Shape: ast.VariantUnit}
	if v.Name, _, ok = p.parseIdent("variant name"); !ok {
		return ast.Variant{}, false
	}

	switch p.peek().Kind {
	case token.Assign:
		p.advance()
		v.Shape = ast.VariantValue
		if v.Value, ok = p.parseExpr(); !ok {
			return ast.Variant{}, false
		}
	case token.LParen:
		p.advance()
		v.Shape = ast.VariantTuple
		for !p.at(token.RParen) {
			vf := ast.VariantField{}
			if p.at(token.Ident) && p.peekN(1).Kind == token.Colon {
				vf.Name = p.intern(p.advance().Text)
				p.advance()
			}
			if vf.Type, ok = p.parseType(); !ok {
				return ast.Variant{}, false
			}
			v.Tuple = append(v.Tuple, vf)
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ',' or ')' in variant"); !ok {
			return ast.Variant{}, false
		}
	case token.LBrace:
		v.Shape = ast.VariantStruct
		if v.Fields, ok = p.parseFieldBlock(); !ok {
			return ast.Variant{}, false
		}
	}
	v.Span = p.spanFrom(start.Span)
	return v, true
}

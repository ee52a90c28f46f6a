package parser

import (
	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/token"
)

// parseFnItem: `fn name[<G>](params) [-> T] (block | ;)`.
// Модификаторы уже в mods. Тело без ';' — прототип (extern, сигнатура trait).
func (p *Parser) parseFnItem(mods declMods) (ast.ItemID, bool) {
	p.advance() // fn
	fn := ast.FnItem{Attrs: mods.attrs, Pub: mods.pub, Async: mods.async}

	name, _, ok := p.parseIdent("function name")
	if !ok {
		return ast.NoItemID, false
	}
	fn.Name = name

	if p.at(token.Lt) {
		if fn.Generics, ok = p.parseGenericParams(); !ok {
			return ast.NoItemID, false
		}
	}
	if fn.Params, ok = p.parseFnParams(); !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.eat(token.Arrow); ok {
		if fn.Result, ok = p.parseType(); !ok {
			return ast.NoItemID, false
		}
	}

	if _, ok := p.eat(token.Semicolon); ok {
		return p.b.Items.NewFn(p.spanFrom(mods.start), fn), true
	}
	if !p.at(token.LBrace) {
		p.fail(diag.SynExpectBlock, "expected function body or ';'", token.LBrace, token.Semicolon)
		return ast.NoItemID, false
	}

	// метки циклов не видны внутри вложенной функции
	labels := p.labels
	p.labels = nil
	fn.Body, ok = p.parseBlockExpr()
	p.labels = labels
	if !ok {
		return ast.NoItemID, false
	}
	return p.b.Items.NewFn(p.spanFrom(mods.start), fn), true
}

// parseGenericParams: `<T, U: Display + Clone>`.
func (p *Parser) parseGenericParams() ([]ast.GenericParam, bool) {
	p.advance() // <
	var params []ast.GenericParam
	for {
		name, nameTok, ok := p.parseIdent("generic parameter name")
		if !ok {
			return nil, false
		}
		gp := ast.GenericParam{Name: name}
		if _, ok := p.eat(token.Colon); ok {
			if gp.Bounds, ok = p.parseBounds(); !ok {
				return nil, false
			}
		}
		gp.Span = p.spanFrom(nameTok.Span)
		params = append(params, gp)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if !p.eatCloseAngle() {
		p.fail(diag.SynUnclosedDelimiter, "expected ',' or '>' in generic parameters", token.Comma, token.Gt)
		return nil, false
	}
	return params, true
}

// parseBounds: `A + B + C`.
func (p *Parser) parseBounds() ([]ast.TypeID, bool) {
	var bounds []ast.TypeID
	for {
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		bounds = append(bounds, ty)
		if _, ok := p.eat(token.Plus); !ok {
			return bounds, true
		}
	}
}

// parseFnParams: `([mut] self, [mut] name: T [= default], ...)`.
func (p *Parser) parseFnParams() ([]ast.FnParam, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return nil, false
	}
	var params []ast.FnParam
	for !p.at(token.RParen) {
		start := p.peek()
		param := ast.FnParam{}
		if _, ok := p.eat(token.KwMut); ok {
			param.Mut = true
		}
		name, nameTok, ok := p.parseIdent("parameter name")
		if !ok {
			return nil, false
		}
		param.Name = name

		switch {
		case nameTok.Text == token.WordSelf && !p.at(token.Colon):
			param.SelfParam = true
		default:
			if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after parameter name"); !ok {
				return nil, false
			}
			if param.Type, ok = p.parseType(); !ok {
				return nil, false
			}
			if _, ok := p.eat(token.Assign); ok {
				restore := p.withFlags(false, false)
				param.Default, ok = p.parseExpr()
				restore()
				if !ok {
					return nil, false
				}
			}
		}
		param.Span = p.spanFrom(start.Span)
		params = append(params, param)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ',' or ')' in parameter list"); !ok {
		return nil, false
	}
	return params, true
}

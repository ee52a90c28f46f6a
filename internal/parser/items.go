package parser

import (
	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/source"
	"zenc/internal/token"
)

// itemStarters — ожидаемое множество для "expected declaration".
var itemStarters = []token.Kind{
	token.KwFn, token.KwStruct, token.KwEnum, token.KwUnion, token.KwImpl,
	token.KwTrait, token.KwVar, token.KwConst, token.KwImport, token.At,
}

// parseItem разбирает одну конструкцию верхнего уровня.
// Всё, что не объявление и не директива, оборачивается в ItemStmt.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.BuildDirective:
		return p.parseBuildDirective()
	case token.PPDirective:
		return p.parsePPDirective()
	case token.KwComptime:
		if p.peekN(1).Kind == token.LBrace {
			p.advance()
			body, ok := p.parseBlockExpr()
			if !ok {
				return ast.NoItemID, false
			}
			p.eat(token.Semicolon)
			return p.b.Items.NewComptime(p.spanFrom(tok.Span), body), true
		}
	case token.RBrace:
		p.fail(diag.SynUnexpectedTopLevel, "unexpected '}' at top level")
		return ast.NoItemID, false
	}

	if p.atDeclStart() {
		return p.parseDecl()
	}

	stmt, _, ok := p.parseStmt(false)
	if !ok {
		return ast.NoItemID, false
	}
	return p.b.Items.NewStmt(p.b.Stmts.Get(stmt).Span, stmt), true
}

// atDeclStart: атрибуты, модификаторы или ключевое слово объявления.
func (p *Parser) atDeclStart() bool {
	switch p.peek().Kind {
	case token.At, token.KwPub, token.KwStruct, token.KwEnum, token.KwUnion,
		token.KwImpl, token.KwTrait, token.KwVar, token.KwConst, token.KwAutofree,
		token.KwImport, token.BuildDirective, token.PPDirective:
		return true
	case token.KwFn:
		return p.peekN(1).Kind == token.Ident
	case token.KwAsync:
		return p.peekN(1).Kind == token.KwFn && p.peekN(2).Kind == token.Ident ||
			p.peekN(1).Kind == token.KwPub
	}
	return false
}

// atItemKeyword — точки синхронизации после ошибки.
func (p *Parser) atItemKeyword() bool {
	switch p.peek().Kind {
	case token.KwFn, token.KwStruct, token.KwEnum, token.KwUnion, token.KwImpl,
		token.KwTrait, token.KwImport, token.BuildDirective, token.PPDirective:
		return true
	}
	return false
}

// parseDecl: `[attrs] [autofree] [async] [pub] <decl>` в позиции item или оператора.
func (p *Parser) parseDecl() (ast.ItemID, bool) {
	start := p.peek()
	switch start.Kind {
	case token.BuildDirective:
		return p.parseBuildDirective()
	case token.PPDirective:
		return p.parsePPDirective()
	}

	attrs, ok := p.parseAttrs()
	if !ok {
		return ast.NoItemID, false
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
		case p.at(token.KwAutofree) && !mods.autofree:
			p.advance()
			mods.autofree = true
			continue
		}
		break
	}

	tok := p.peek()
	if mods.autofree && tok.Kind != token.KwVar {
		p.fail(diag.SynUnexpectedToken, "expected 'var' after 'autofree'", token.KwVar)
		return ast.NoItemID, false
	}
	if mods.async && tok.Kind != token.KwFn {
		p.fail(diag.SynUnexpectedToken, "expected 'fn' after 'async'", token.KwFn)
		return ast.NoItemID, false
	}

	switch tok.Kind {
	case token.KwFn:
		return p.parseFnItem(mods)
	case token.KwStruct:
		return p.parseRecordItem(mods, ast.ItemStruct)
	case token.KwUnion:
		return p.parseRecordItem(mods, ast.ItemUnion)
	case token.KwEnum:
		return p.parseEnumItem(mods)
	case token.KwTrait:
		return p.parseTraitItem(mods)
	case token.KwImpl:
		if len(attrs) > 0 || mods.pub {
			p.fail(diag.SynUnexpectedToken, "attributes and 'pub' are not allowed on impl blocks")
			return ast.NoItemID, false
		}
		return p.parseImplItem()
	case token.KwVar:
		return p.parseVarItem(mods)
	case token.KwConst:
		return p.parseConstItem(mods)
	case token.KwImport:
		if len(attrs) > 0 || mods.pub {
			p.fail(diag.SynUnexpectedToken, "attributes and 'pub' are not allowed on imports")
			return ast.NoItemID, false
		}
		return p.parseImportItem()
	}
	p.fail(diag.SynUnexpectedToken, "expected declaration", itemStarters...)
	return ast.NoItemID, false
}

type declMods struct {
	attrs    []ast.Attr
	pub      bool
	async    bool
	autofree bool
	start    source.Span
}

// resyncTop пропускает токены до ';', закрытия '}' верхнего уровня или начала объявления.
func (p *Parser) resyncTop(before int) {
	if p.pos == before && !p.at(token.EOF) {
		p.advance()
	}
	depth := 0
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket:
			if depth > 0 {
				depth--
			}
		case token.RBrace:
			p.advance()
			if depth <= 1 {
				return
			}
			depth--
			continue
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		}
		if depth == 0 && p.atItemKeyword() {
			return
		}
		p.advance()
	}
}

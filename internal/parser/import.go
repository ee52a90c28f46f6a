package parser

import (
	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/source"
	"zenc/internal/token"
)

// parseImportItem: `import a::b::c [as x];`, `import "std/io.zc";`, `import plugin "name";`.
func (p *Parser) parseImportItem() (ast.ItemID, bool) {
	kw := p.advance()

	if p.atWord(token.WordPlugin) && p.peekN(1).Kind == token.StringLit {
		p.advance()
		name := p.advance()
		if !p.expectSemi("plugin import") {
			return ast.NoItemID, false
		}
		return p.b.Items.NewPluginImport(p.spanFrom(kw.Span), p.intern(unquote(name.Text))), true
	}

	im := ast.ImportItem{}
	switch tok := p.peek(); tok.Kind {
	case token.StringLit:
		p.advance()
		im.Path = []source.StringID{p.intern(unquote(tok.Text))}
	case token.Ident:
		for {
			part, _, ok := p.parseIdent("module path segment")
			if !ok {
				return ast.NoItemID, false
			}
			im.Path = append(im.Path, part)
			if _, ok := p.eat(token.ColonColon); !ok {
				break
			}
		}
	default:
		p.fail(diag.SynExpectIdentifier, "expected module path after 'import'", token.Ident, token.StringLit)
		return ast.NoItemID, false
	}

	if _, ok := p.eat(token.KwAs); ok {
		alias, _, ok := p.parseIdent("import alias")
		if !ok {
			return ast.NoItemID, false
		}
		im.Alias = alias
	}
	if !p.expectSemi("import") {
		return ast.NoItemID, false
	}
	return p.b.Items.NewImport(p.spanFrom(kw.Span), im), true
}

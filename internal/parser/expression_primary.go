package parser

import (
	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/lexer"
	"zenc/internal/source"
	"zenc/internal/token"
)

// parsePrimaryExpr парсит атомарные выражения и выражения с ключевым словом во главе.
func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		return p.parseIdentExpr()
	case token.Underscore:
		p.advance()
		return p.b.Exprs.NewIdent(tok.Span, p.intern("_")), true
	case token.IntLit, token.FloatLit, token.CharLit, token.KwTrue, token.KwFalse, token.KwNull:
		return p.parseLiteral()
	case token.StringLit, token.InterpStringLit:
		return p.parseStringOrPrint()
	case token.LParen:
		return p.parseParenExpr()
	case token.LBrace:
		if p.noStruct {
			break
		}
		return p.parseBraceExpr()
	case token.KwIf:
		return p.parseIfExpr()
	case token.KwMatch:
		return p.parseMatchExpr()
	case token.KwFn:
		return p.parseFnLambda(false)
	case token.KwAsync:
		if p.peekN(1).Kind == token.KwFn {
			return p.parseFnLambda(true)
		}
	case token.KwSizeof:
		return p.parseQueryExpr(ast.ExprSizeof)
	case token.KwTypeof:
		return p.parseQueryExpr(ast.ExprTypeof)
	case token.KwEmbed:
		return p.parseEmbedExpr()
	case token.KwComptime:
		p.advance()
		body, ok := p.parseBlockExpr()
		if !ok {
			return ast.NoExprID, false
		}
		return p.b.Exprs.NewComptime(p.spanFrom(tok.Span), body), true
	case token.KwAsm:
		return p.parseAsmExpr()
	case token.KwRaw:
		return p.parseRawExpr()
	case token.Question:
		return p.parseInputExpr()
	}
	p.expectExprFail()
	return ast.NoExprID, false
}

func (p *Parser) parseIdentExpr() (ast.ExprID, bool) {
	tok := p.peek()
	next := p.peekN(1)

	switch {
	case next.Kind == token.Bang && p.peekN(2).Kind == token.MacroBody:
		return p.parseMacroExpr()
	case next.Kind == token.Arrow:
		return p.parseArrowLambda()
	case token.PrintWords[tok.Text]:
		if expr, ok, matched := p.tryPrintCall(); matched {
			return expr, ok
		}
	}

	p.advance()
	name := p.intern(tok.Text)

	if isCapitalized(tok.Text) && !p.noStruct && p.at(token.LBrace) && p.looksLikeStructLit() {
		ty := p.b.Types.NewNamed(tok.Span, name, nil)
		return p.parseStructLit(ty, tok.Span)
	}
	return p.b.Exprs.NewIdent(tok.Span, name), true
}

// looksLikeStructLit: `{}` / `{ name:` / `{ name,` / `{ name }` после '{'.
func (p *Parser) looksLikeStructLit() bool {
	first := p.peekN(1)
	if first.Kind == token.RBrace {
		return true
	}
	if first.Kind != token.Ident {
		return false
	}
	switch p.peekN(2).Kind {
	case token.Colon, token.Comma, token.RBrace:
		return true
	}
	return false
}

func (p *Parser) parseStructLit(ty ast.TypeID, start source.Span) (ast.ExprID, bool) {
	p.advance() // {
	restore := p.withFlags(false, false)
	defer restore()

	var fields []ast.FieldInit
	for !p.at(token.RBrace) {
		name, nameTok, ok := p.parseIdent("field name")
		if !ok {
			return ast.NoExprID, false
		}
		field := ast.FieldInit{Name: name, Span: nameTok.Span}
		if _, ok := p.eat(token.Colon); ok {
			value, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			field.Value = value
			field.Span = p.spanFrom(nameTok.Span)
		} else {
			field.Shorthand = true
			field.Value = p.b.Exprs.NewIdent(nameTok.Span, name)
		}
		fields = append(fields, field)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected ',' or '}' in struct literal"); !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewStruct(p.spanFrom(start), ty, fields), true
}

func (p *Parser) parseLiteral() (ast.ExprID, bool) {
	tok := p.advance()
	raw := p.intern(tok.Text)
	var kind ast.LitKind
	value := raw
	switch tok.Kind {
	case token.IntLit:
		kind = ast.LitInt
		if v, err := token.IntValue(tok.Text); err == nil {
			value = p.intern(v.String())
		}
	case token.FloatLit:
		kind = ast.LitFloat
		value = p.intern(token.StripDigitSeparators(tok.Text))
	case token.CharLit:
		kind = ast.LitChar
		value = p.intern(unquote(tok.Text))
	case token.KwTrue, token.KwFalse:
		kind = ast.LitBool
	case token.KwNull:
		kind = ast.LitNull
	}
	return p.b.Exprs.NewLit(tok.Span, kind, raw, value), true
}

// unquote снимает кавычки и раскрывает escape-последовательности.
func unquote(text string) string {
	if len(text) < 2 {
		return text
	}
	s, err := lexer.Unescape(text[1 : len(text)-1])
	if err != nil {
		return text[1 : len(text)-1]
	}
	return s
}

// parseStringOrPrint: строка, интерполяция или `"..."..` (print без перевода строки).
func (p *Parser) parseStringOrPrint() (ast.ExprID, bool) {
	str, ok := p.parseStringExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if p.at(token.DotDot) && p.lastSpan.Adjacent(p.peek().Span) {
		p.advance()
		return p.b.Exprs.NewPrint(p.spanFrom(p.exprSpan(str)), ast.PrintPrint, ast.PrintFormShorthand, str), true
	}
	return str, true
}

// parseEprintShorthand: '!' уже съеден; `!"..."` — eprintln, `!"..."..` — eprint.
func (p *Parser) parseEprintShorthand(bang token.Token) (ast.ExprID, bool) {
	str, ok := p.parseStringExpr()
	if !ok {
		return ast.NoExprID, false
	}
	kind := ast.PrintEprintln
	if p.at(token.DotDot) && p.lastSpan.Adjacent(p.peek().Span) {
		p.advance()
		kind = ast.PrintEprint
	}
	return p.b.Exprs.NewPrint(p.spanFrom(bang.Span), kind, ast.PrintFormShorthand, str), true
}

func (p *Parser) parseStringExpr() (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.StringLit:
		p.advance()
		return p.b.Exprs.NewLit(tok.Span, ast.LitString, p.intern(tok.Text), p.intern(unquote(tok.Text))), true
	case token.InterpStringLit:
		return p.parseInterpString()
	}
	p.fail(diag.SynUnexpectedToken, "expected string literal", token.StringLit)
	return ast.NoExprID, false
}

var printKinds = map[string]ast.PrintKind{
	"print":    ast.PrintPrint,
	"println":  ast.PrintPrintln,
	"eprint":   ast.PrintEprint,
	"eprintln": ast.PrintEprintln,
}

// tryPrintCall распознаёт `print("...")` и `println "..."`.
// matched=false — это обычный идентификатор (например, вызов print(x)).
func (p *Parser) tryPrintCall() (expr ast.ExprID, ok, matched bool) {
	word := p.peek()
	kind := printKinds[word.Text]

	if p.peekN(1).Kind == token.LParen && isStringTok(p.peekN(2).Kind) && p.peekN(3).Kind == token.RParen {
		p.advance()
		p.advance()
		str, ok := p.parseStringExpr()
		if !ok {
			return ast.NoExprID, false, true
		}
		p.advance() // )
		return p.b.Exprs.NewPrint(p.spanFrom(word.Span), kind, ast.PrintFormCall, str), true, true
	}
	if kind == ast.PrintPrintln && isStringTok(p.peekN(1).Kind) {
		p.advance()
		str, ok := p.parseStringExpr()
		if !ok {
			return ast.NoExprID, false, true
		}
		return p.b.Exprs.NewPrint(p.spanFrom(word.Span), kind, ast.PrintFormBare, str), true, true
	}
	return ast.NoExprID, false, false
}

func (p *Parser) parseMacroExpr() (ast.ExprID, bool) {
	nameTok := p.advance()
	p.advance() // !
	body := p.advance()
	var delim byte
	if body.Text != "" {
		delim = body.Text[0]
	}
	return p.b.Exprs.NewMacro(p.spanFrom(nameTok.Span), ast.ExprMacroData{
		Name:  p.intern(nameTok.Text),
		Delim: delim,
		Body:  body.Span,
		Text:  p.intern(body.Text),
	}), true
}

func (p *Parser) parseEmbedExpr() (ast.ExprID, bool) {
	kw := p.advance()
	if !p.at(token.StringLit) {
		p.fail(diag.SynUnexpectedToken, "expected path string after 'embed'", token.StringLit)
		return ast.NoExprID, false
	}
	path := p.advance()
	return p.b.Exprs.NewEmbed(p.spanFrom(kw.Span), p.intern(unquote(path.Text))), true
}

// parseInputExpr: `? "prompt" [(var)]`.
func (p *Parser) parseInputExpr() (ast.ExprID, bool) {
	q := p.advance()
	if !isStringTok(p.peek().Kind) {
		p.fail(diag.SynUnexpectedToken, "expected prompt string after '?'", token.StringLit)
		return ast.NoExprID, false
	}
	prompt, ok := p.parseStringExpr()
	if !ok {
		return ast.NoExprID, false
	}
	target := ast.NoExprID
	if p.at(token.LParen) && p.peekN(1).Kind == token.Ident && p.peekN(2).Kind == token.RParen {
		p.advance()
		id := p.advance()
		p.advance()
		target = p.b.Exprs.NewIdent(id.Span, p.intern(id.Text))
	}
	return p.b.Exprs.NewInput(p.spanFrom(q.Span), prompt, target), true
}

func (p *Parser) parseRawExpr() (ast.ExprID, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{' after 'raw'"); !ok {
		return ast.NoExprID, false
	}
	body := ""
	if bodyTok, ok := p.eat(token.RawBody); ok {
		body = bodyTok.Text
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close raw block"); !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewRaw(p.spanFrom(kw.Span), p.intern(body)), true
}

// parseAsmExpr: `asm [volatile] { "tmpl"* (: out|in|clobber|inout (ident|"str"))* }`.
func (p *Parser) parseAsmExpr() (ast.ExprID, bool) {
	kw := p.advance()
	data := ast.ExprAsmData{}
	if p.atWord(token.WordVolatile) {
		p.advance()
		data.Volatile = true
	}
	if _, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{' after 'asm'"); !ok {
		return ast.NoExprID, false
	}
	for isStringTok(p.peek().Kind) {
		t := p.advance()
		data.Templates = append(data.Templates, p.intern(asmText(t)))
	}
	for p.at(token.Colon) {
		colon := p.advance()
		var kind ast.AsmOperandKind
		switch {
		case p.at(token.KwIn):
			kind = ast.AsmIn
		case p.atWord("out"):
			kind = ast.AsmOut
		case p.atWord("inout"):
			kind = ast.AsmInOut
		case p.atWord("clobber"):
			kind = ast.AsmClobber
		default:
			p.fail(diag.SynBadAsmOperand, "expected 'out', 'in', 'inout' or 'clobber'", token.Ident, token.KwIn)
			return ast.NoExprID, false
		}
		p.advance()
		if _, ok := p.expect(token.LParen, diag.SynBadAsmOperand, "expected '(' after asm operand kind"); !ok {
			return ast.NoExprID, false
		}
		op := ast.AsmOperand{Kind: kind}
		switch tok := p.peek(); {
		case tok.Kind == token.Ident:
			p.advance()
			op.Target = p.intern(tok.Text)
		case isStringTok(tok.Kind):
			p.advance()
			op.Target = p.intern(asmText(tok))
			op.IsString = true
		default:
			p.fail(diag.SynBadAsmOperand, "expected identifier or string in asm operand", token.Ident, token.StringLit)
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after asm operand"); !ok {
			return ast.NoExprID, false
		}
		op.Span = p.spanFrom(colon.Span)
		data.Operands = append(data.Operands, op)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close asm block"); !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewAsm(p.spanFrom(kw.Span), data), true
}

// asmText: шаблоны asm не интерполируются, фигурные скобки остаются как есть.
func asmText(t token.Token) string {
	if t.Kind == token.InterpStringLit {
		return t.Text[1 : len(t.Text)-1]
	}
	return unquote(t.Text)
}

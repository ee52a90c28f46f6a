package parser

import (
	"fmt"
	"strings"

	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/lexer"
	"zenc/internal/source"
	"zenc/internal/token"
)

// peek возвращает текущий токен; за концом слайса и после остановки — последний (EOF).
func (p *Parser) peek() token.Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) || p.st.stopped() {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	k := p.peek().Kind
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// atWord reports whether the current token is the contextual word w.
func (p *Parser) atWord(w string) bool {
	return p.peek().IsWord(w)
}

// advance — съедает текущий токен и обновляет lastSpan.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) eat(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect — ожидаем конкретный токен; иначе ошибка с одним ожидаемым видом.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.fail(code, msg, k)
	return token.Token{}, false
}

// fail records a parse error at the current token. Inside a speculative
// attempt it only marks the attempt as failed; after a halt it records nothing.
func (p *Parser) fail(code diag.Code, msg string, expected ...token.Kind) {
	if p.skipError() {
		return
	}
	found := p.peek()
	if found.Kind == token.Invalid {
		if le := p.lexErrorAt(found.Span); le != nil {
			p.failLex(le)
			return
		}
	}
	sp := found.Span
	if found.Kind == token.EOF && p.lastSpan.End > 0 {
		sp = p.lastSpan.ZeroideToEnd()
	}
	p.st.errs = append(p.st.errs, &Error{
		Code:     code,
		Msg:      fmt.Sprintf("%s, found %s", msg, describeToken(found)),
		Expected: expected,
		Found:    found,
		Span:     sp,
	})
	p.checkLimit()
}

// failAt records an error that is not about the current token (bad directive, bad label).
func (p *Parser) failAt(code diag.Code, sp source.Span, msg string) {
	if p.skipError() {
		return
	}
	p.st.errs = append(p.st.errs, &Error{Code: code, Msg: msg, Found: p.peek(), Span: sp})
	p.checkLimit()
}

func (p *Parser) failLex(le *lexer.Error) {
	if p.skipError() {
		return
	}
	if !p.opts.Recover {
		p.st.errs = append(p.st.errs, le)
		p.st.halted = true
		return
	}
	p.checkLimit()
}

// skipError: внутри спекуляции ошибка только помечает попытку неудачной;
// после остановки новые ошибки не пишутся.
func (p *Parser) skipError() bool {
	if p.spec > 0 {
		p.st.specFailed = true
		return true
	}
	return p.st.halted
}

func (p *Parser) checkLimit() {
	if !p.opts.Recover {
		p.st.halted = true
		return
	}
	if p.opts.MaxErrors > 0 && uint(len(p.st.errs)+len(p.st.lexErrs)) >= p.opts.MaxErrors {
		p.st.halted = true
	}
}

func (p *Parser) lexErrorAt(sp source.Span) *lexer.Error {
	for _, le := range p.st.lexErrs {
		if le.Span.Start >= sp.Start && le.Span.Start <= sp.End {
			return le
		}
	}
	return nil
}

type splitUndo struct {
	pos int
	tok token.Token
}

type mark struct {
	pos      int
	splits   int
	lastSpan source.Span
	nodes    ast.Mark
}

func (p *Parser) mark() mark {
	return mark{pos: p.pos, splits: len(p.splits), lastSpan: p.lastSpan, nodes: p.b.Mark()}
}

func (p *Parser) reset(m mark) {
	for len(p.splits) > m.splits {
		u := p.splits[len(p.splits)-1]
		p.toks[u.pos] = u.tok
		p.splits = p.splits[:len(p.splits)-1]
	}
	p.pos = m.pos
	p.lastSpan = m.lastSpan
	p.b.Rollback(m.nodes)
}

// speculate runs fn without reporting; on failure the token position and the
// builder's arenas are restored.
func (p *Parser) speculate(fn func() bool) bool {
	m := p.mark()
	outer := p.st.specFailed
	p.spec++
	ok := fn() && !p.st.specFailed
	p.spec--
	p.st.specFailed = outer
	if !ok {
		p.reset(m)
	}
	return ok
}

// eatCloseAngle consumes one '>' closing generic arguments, splitting '>>', '>=' and '>>='.
func (p *Parser) eatCloseAngle() bool {
	tok := p.peek()
	var rest token.Kind
	switch tok.Kind {
	case token.Gt:
		p.advance()
		return true
	case token.Shr:
		rest = token.Gt
	case token.GtEq:
		rest = token.Assign
	case token.ShrAssign:
		rest = token.GtEq
	default:
		return false
	}
	p.splits = append(p.splits, splitUndo{pos: p.pos, tok: tok})
	p.lastSpan = source.Span{File: tok.Span.File, Start: tok.Span.Start, End: tok.Span.Start + 1}
	p.toks[p.pos] = token.Token{
		Kind: rest,
		Span: source.Span{File: tok.Span.File, Start: tok.Span.Start + 1, End: tok.Span.End},
		Text: tok.Text[1:],
	}
	return true
}

// withFlags сбрасывает контекстные флаги внутри скобок; возвращает функцию восстановления.
func (p *Parser) withFlags(noStruct, noTry bool) func() {
	prevStruct, prevTry := p.noStruct, p.noTry
	p.noStruct, p.noTry = noStruct, noTry
	return func() {
		p.noStruct, p.noTry = prevStruct, prevTry
	}
}

// parseIdent ожидает Ident и интернирует его.
func (p *Parser) parseIdent(what string) (source.StringID, token.Token, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.b.Intern(tok.Text), tok, true
	}
	p.fail(diag.SynExpectIdentifier, "expected "+what, token.Ident)
	return source.NoStringID, token.Token{}, false
}

func (p *Parser) intern(s string) source.StringID {
	return p.b.Intern(s)
}

func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	if e := p.b.Exprs.Get(id); e != nil {
		return e.Span
	}
	return p.lastSpan
}

func (p *Parser) typeSpan(id ast.TypeID) source.Span {
	if t := p.b.Types.Get(id); t != nil {
		return t.Span
	}
	return p.lastSpan
}

func (p *Parser) patSpan(id ast.PatternID) source.Span {
	if pt := p.b.Patterns.Get(id); pt != nil {
		return pt.Span
	}
	return p.lastSpan
}

// spanFrom covers start through the last consumed token.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

// matchingClose returns the index of the token closing the bracket at toks[open].
func (p *Parser) matchingClose(open int) int {
	depth := 0
	for i := open; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
			if depth == 0 {
				return i
			}
		case token.EOF:
			return -1
		}
	}
	return -1
}

func describeToken(t token.Token) string {
	switch t.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident:
		return fmt.Sprintf("identifier '%s'", t.Text)
	case token.IntLit, token.FloatLit, token.StringLit, token.InterpStringLit, token.CharLit:
		return fmt.Sprintf("%s %s", t.Kind, t.Text)
	case token.Invalid:
		return fmt.Sprintf("invalid token %q", t.Text)
	}
	return t.Kind.Quoted()
}

func describeKinds(kinds []token.Kind) string {
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, k.Quoted())
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1]
}

func isCapitalized(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}

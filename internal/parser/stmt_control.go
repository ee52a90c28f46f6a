package parser

import (
	"slices"

	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/source"
	"zenc/internal/token"
)

func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	kw := p.advance()
	value := ast.NoExprID
	if !p.at(token.Semicolon) && !p.at(token.RBrace) {
		var ok bool
		if value, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if !p.at(token.RBrace) && !p.expectSemi("return") {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewReturn(p.spanFrom(kw.Span), value), true
}

// parseBreakStmt: `break [label] [value];` — идентификатор считается меткой,
// только если так назван один из объемлющих циклов.
func (p *Parser) parseBreakStmt() (ast.StmtID, bool) {
	kw := p.advance()
	label := source.NoStringID
	if tok := p.peek(); tok.Kind == token.Ident && p.isLabel(tok.Text) {
		p.advance()
		label = p.intern(tok.Text)
	}
	value := ast.NoExprID
	if !p.at(token.Semicolon) && !p.at(token.RBrace) {
		var ok bool
		if value, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if !p.at(token.RBrace) && !p.expectSemi("break") {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewJump(p.spanFrom(kw.Span), ast.StmtBreak, label, value), true
}

func (p *Parser) parseContinueStmt() (ast.StmtID, bool) {
	kw := p.advance()
	label := source.NoStringID
	if tok := p.peek(); tok.Kind == token.Ident {
		p.advance()
		if !p.isLabel(tok.Text) {
			p.failAt(diag.SynBadLabel, tok.Span, "continue to unknown label '"+tok.Text+"'")
			return ast.NoStmtID, false
		}
		label = p.intern(tok.Text)
	}
	if !p.at(token.RBrace) && !p.expectSemi("continue") {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewJump(p.spanFrom(kw.Span), ast.StmtContinue, label, ast.NoExprID), true
}

func (p *Parser) isLabel(name string) bool {
	return slices.Contains(p.labels, name)
}

// parseLabeledStmt: `outer: for ...`, `outer: while ...`, `outer: loop ...`.
func (p *Parser) parseLabeledStmt() (ast.StmtID, bool) {
	nameTok := p.advance()
	p.advance() // :
	label := p.intern(nameTok.Text)
	p.labels = append(p.labels, nameTok.Text)
	defer func() { p.labels = p.labels[:len(p.labels)-1] }()
	return p.parseLoopStmt(label, nameTok.Span)
}

func (p *Parser) parseLoopStmt(label source.StringID, start source.Span) (ast.StmtID, bool) {
	kw := p.advance()
	switch kw.Kind {
	case token.KwFor:
		return p.parseForStmt(label, start)
	case token.KwLoop:
		body, ok := p.parseBlockExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.b.Stmts.NewLoop(p.spanFrom(start), label, body), true
	}

	kind := ast.StmtWhile
	if kw.Kind == token.KwRepeat {
		kind = ast.StmtRepeat
	}
	cond, body, ok := p.parseCondAndBody()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewCond(p.spanFrom(start), kind, label, cond, body), true
}

// parseForStmt: `for pat in iter [step e] { ... }`; 'for' уже съеден.
func (p *Parser) parseForStmt(label source.StringID, start source.Span) (ast.StmtID, bool) {
	data := ast.StmtForData{Label: label}
	var ok bool
	if data.Pattern, ok = p.parsePattern(); !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in' after for pattern"); !ok {
		return ast.NoStmtID, false
	}

	restore := p.withFlags(true, false)
	data.Iter, ok = p.parseExpr()
	if ok && p.atWord(token.WordStep) {
		p.advance()
		data.Step, ok = p.parseExpr()
	}
	restore()
	if !ok {
		return ast.NoStmtID, false
	}

	if data.Body, ok = p.parseBlockExpr(); !ok {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewFor(p.spanFrom(start), data), true
}

// parseCondAndBody: заголовок без struct-литералов, затем блок.
func (p *Parser) parseCondAndBody() (ast.ExprID, ast.ExprID, bool) {
	restore := p.withFlags(true, false)
	cond, ok := p.parseExpr()
	restore()
	if !ok {
		return ast.NoExprID, ast.NoExprID, false
	}
	body, ok := p.parseBlockExpr()
	if !ok {
		return ast.NoExprID, ast.NoExprID, false
	}
	return cond, body, true
}

// parseGuardStmt: `guard cond else { ... }`.
func (p *Parser) parseGuardStmt() (ast.StmtID, bool) {
	kw := p.advance()
	restore := p.withFlags(true, false)
	cond, ok := p.parseExpr()
	restore()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwElse, diag.SynUnexpectedToken, "expected 'else' after guard condition"); !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseBlockExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewCond(p.spanFrom(kw.Span), ast.StmtGuard, source.NoStringID, cond, body), true
}

func (p *Parser) parseUnlessStmt() (ast.StmtID, bool) {
	kw := p.advance()
	cond, body, ok := p.parseCondAndBody()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewCond(p.spanFrom(kw.Span), ast.StmtUnless, source.NoStringID, cond, body), true
}

// parseDeferStmt: `defer { ... }` или `defer expr;`.
func (p *Parser) parseDeferStmt() (ast.StmtID, bool) {
	kw := p.advance()
	if p.at(token.LBrace) {
		body, ok := p.parseBlockExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		p.eat(token.Semicolon)
		return p.b.Stmts.NewDefer(p.spanFrom(kw.Span), body), true
	}
	body, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.expectSemi("defer") {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewDefer(p.spanFrom(kw.Span), body), true
}

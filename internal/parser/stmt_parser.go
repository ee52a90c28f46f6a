package parser

import (
	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/source"
	"zenc/internal/token"
)

// parseBlockExpr: `{ stmts [tail] }` в позиции значения.
func (p *Parser) parseBlockExpr() (ast.ExprID, bool) {
	open, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{'")
	if !ok {
		return ast.NoExprID, false
	}
	restore := p.withFlags(false, false)
	stmts, tail, ok := p.parseBlockBody()
	restore()
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewBlock(p.spanFrom(open.Span), stmts, tail), true
}

// parseBlockBody читает операторы до '}' включительно.
// Tail — последнее выражение без ';' непосредственно перед '}'.
func (p *Parser) parseBlockBody() (stmts []ast.StmtID, tail ast.ExprID, ok bool) {
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos
		stmt, t, ok := p.parseStmt(true)
		if !ok {
			p.resyncStmt(before)
			continue
		}
		if t.IsValid() {
			tail = t
			break
		}
		stmts = append(stmts, stmt)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close block"); !ok {
		return nil, ast.NoExprID, false
	}
	return stmts, tail, true
}

// parseStmt разбирает один оператор. При allowTail выражение без ';'
// прямо перед '}' возвращается как tail, а не как оператор.
func (p *Parser) parseStmt(allowTail bool) (ast.StmtID, ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Semicolon:
		p.advance()
		return p.b.Stmts.NewEmpty(tok.Span), ast.NoExprID, true
	case token.KwReturn:
		stmt, ok := p.parseReturnStmt()
		return stmt, ast.NoExprID, ok
	case token.KwBreak:
		stmt, ok := p.parseBreakStmt()
		return stmt, ast.NoExprID, ok
	case token.KwContinue:
		stmt, ok := p.parseContinueStmt()
		return stmt, ast.NoExprID, ok
	case token.KwFor, token.KwWhile, token.KwLoop, token.KwRepeat:
		stmt, ok := p.parseLoopStmt(source.NoStringID, tok.Span)
		return stmt, ast.NoExprID, ok
	case token.KwGuard:
		stmt, ok := p.parseGuardStmt()
		return stmt, ast.NoExprID, ok
	case token.KwUnless:
		stmt, ok := p.parseUnlessStmt()
		return stmt, ast.NoExprID, ok
	case token.KwDefer:
		stmt, ok := p.parseDeferStmt()
		return stmt, ast.NoExprID, ok
	case token.LBrace:
		stmt, ok := p.parseBlockStmt()
		return stmt, ast.NoExprID, ok
	case token.Ident:
		if p.peekN(1).Kind == token.Colon && isLoopKeyword(p.peekN(2).Kind) {
			stmt, ok := p.parseLabeledStmt()
			return stmt, ast.NoExprID, ok
		}
	}

	if p.atDeclStart() {
		item, ok := p.parseDecl()
		if !ok {
			return ast.NoStmtID, ast.NoExprID, false
		}
		return p.b.Stmts.NewItem(p.b.Items.Get(item).Span, item), ast.NoExprID, true
	}

	return p.parseExprStmt(allowTail)
}

// parseExprStmt: блочные формы (if, match, comptime, asm, raw) не требуют ';'.
func (p *Parser) parseExprStmt(allowTail bool) (ast.StmtID, ast.ExprID, bool) {
	start := p.peek()
	var (
		expr ast.ExprID
		ok   bool
	)
	blockLike := true
	switch start.Kind {
	case token.KwIf:
		expr, ok = p.parseIfExpr()
	case token.KwMatch:
		expr, ok = p.parseMatchExpr()
	case token.KwAsm:
		expr, ok = p.parseAsmExpr()
	case token.KwRaw:
		expr, ok = p.parseRawExpr()
	case token.KwComptime:
		expr, ok = p.parsePrimaryExpr()
	default:
		blockLike = false
		expr, ok = p.parseExpr()
	}
	if !ok {
		return ast.NoStmtID, ast.NoExprID, false
	}

	if allowTail && p.at(token.RBrace) {
		return ast.NoStmtID, expr, true
	}
	if semi, ok := p.eat(token.Semicolon); ok {
		return p.b.Stmts.NewExpr(p.exprSpan(expr).Cover(semi.Span), expr, true), ast.NoExprID, true
	}
	if blockLike {
		return p.b.Stmts.NewExpr(p.exprSpan(expr), expr, false), ast.NoExprID, true
	}
	p.fail(diag.SynExpectSemicolon, "expected ';' after expression", token.Semicolon)
	return ast.NoStmtID, ast.NoExprID, false
}

// parseBlockStmt — '{' в позиции оператора: вложенный блок без значения.
// Хвостовое выражение становится обычным оператором.
func (p *Parser) parseBlockStmt() (ast.StmtID, bool) {
	open := p.advance()
	restore := p.withFlags(false, false)
	stmts, tail, ok := p.parseBlockBody()
	restore()
	if !ok {
		return ast.NoStmtID, false
	}
	if tail.IsValid() {
		stmts = append(stmts, p.b.Stmts.NewExpr(p.exprSpan(tail), tail, false))
	}
	return p.b.Stmts.NewBlock(p.spanFrom(open.Span), stmts), true
}

func (p *Parser) expectSemi(what string) bool {
	_, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after "+what)
	return ok
}

// resyncStmt пропускает токены до ';' (съедая его) или до '}' глубины 0.
// Если оператор не съел ни одного токена, пропускается хотя бы один.
func (p *Parser) resyncStmt(before int) {
	if p.pos == before && !p.at(token.RBrace) && !p.at(token.EOF) {
		p.advance()
	}
	depth := 0
	for {
		switch p.peek().Kind {
		case token.EOF:
			return
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket:
			if depth > 0 {
				depth--
			}
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		}
		if depth == 0 && p.pos != before && p.atItemKeyword() {
			return
		}
		p.advance()
	}
}

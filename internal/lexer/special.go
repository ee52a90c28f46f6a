package lexer

import (
	"zenc/internal/diag"
	"zenc/internal/source"
	"zenc/internal/token"
)

// scanBuildDirective: "//>" до конца строки, без '\n'.
func (lx *Lexer) scanBuildDirective() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	return lx.makeToken(token.BuildDirective, start)
}

// scanPPDirective: '#' первым непробельным символом строки, до конца строки.
// Обратный слэш в конце строки продолжает директиву, как в C.
func (lx *Lexer) scanPPDirective() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			if lx.cursor.Off > uint32(start) && lx.file.Content[lx.cursor.Off-1] == '\\' {
				lx.cursor.Bump()
				continue
			}
			break
		}
		lx.cursor.Bump()
	}
	return lx.makeToken(token.PPDirective, start)
}

// maybeMacro: Ident, сразу за ним '!' и сразу открывающая скобка — тело макроса
// одним токеном MacroBody вместе со скобками.
func (lx *Lexer) maybeMacro() {
	if lx.cursor.Peek() != '!' {
		return
	}
	open := lx.cursor.PeekAt(1)
	if open != '(' && open != '[' && open != '{' {
		return
	}
	bangAt := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.push(lx.makeToken(token.Bang, bangAt))

	bodyAt := lx.cursor.Mark()
	if !lx.skipBalanced() {
		tok := lx.makeToken(token.Invalid, bodyAt)
		lx.errLex(diag.LexUnterminatedMacro, tok.Span, "unterminated macro body")
		lx.push(tok)
		return
	}
	lx.push(lx.makeToken(token.MacroBody, bodyAt))
}

// skipBalanced съедает сбалансированную группу ()[]{} начиная с открывающей скобки.
// Строки и char-литералы пропускаются целиком.
func (lx *Lexer) skipBalanced() bool {
	stack := make([]byte, 0, 8)
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '(':
			stack = append(stack, ')')
		case '[':
			stack = append(stack, ']')
		case '{':
			stack = append(stack, '}')
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != b {
				return false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				lx.cursor.Bump()
				return true
			}
		case '"':
			q := quoteScanner{content: lx.file.Content, limit: lx.cursor.Limit}
			end, _, err := q.scanQuoted(lx.cursor.Off)
			lx.cursor.Off = end
			if err != nil && err.code != diag.LexBadEscape {
				return false
			}
			continue
		case '\'':
			lx.cursor.Off = skipCharLit(lx.file.Content, lx.cursor.Off, lx.cursor.Limit)
			continue
		}
		lx.cursor.Bump()
	}
	return false
}

// scanRawBody: после "raw {" всё до первой '}' — один RawBody.
// Пустое тело токена не даёт; '}' лексится обычным образом.
func (lx *Lexer) scanRawBody() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '}' {
		lx.cursor.Bump()
	}
	if lx.cursor.EOF() {
		lx.errLex(diag.LexUnterminatedRaw, source.Span{File: lx.file.ID, Start: uint32(start) - 1, End: lx.cursor.Off}, "unterminated raw block, expected '}'")
		lx.push(lx.makeToken(token.Invalid, start))
		return
	}
	if lx.cursor.Off > uint32(start) {
		lx.push(lx.makeToken(token.RawBody, start))
	}
}

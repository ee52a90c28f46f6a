package lexer

import (
	"zenc/internal/diag"
	"zenc/internal/token"
)

// scanNumber: 0x.., 0o.., 0b.., 123, 1.5, 1e-3, 1.5e+10; '_' разделяет группы цифр.
// Float требует цифру после '.', поэтому "1..5" и "1.foo" не съедают точку.
// После '.' или '?.' читается только целое: t.0.1 — два обращения к полю.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		var digit func(byte) bool
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			digit = isHex
		case 'o', 'O':
			digit = isOct
		case 'b', 'B':
			digit = isBin
		}
		if digit != nil {
			lx.cursor.Off += 2
			if n := lx.eatDigits(digit); n == 0 {
				return lx.badNumber(start, "missing digits after base prefix")
			}
			return lx.finishNumber(kind, start)
		}
	}

	lx.eatDigits(isDec)
	if lx.prev == token.Dot || lx.prev == token.QuestionDot {
		return lx.finishNumber(kind, start)
	}

	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		lx.eatDigits(isDec)
		kind = token.FloatLit
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		n := uint32(1)
		if s := lx.cursor.PeekAt(1); s == '+' || s == '-' {
			n = 2
		}
		if lx.digitAhead(n, isDec) {
			lx.cursor.Off += n
			lx.eatDigits(isDec)
			kind = token.FloatLit
		}
	}
	return lx.finishNumber(kind, start)
}

// digitAhead: начиная со смещения off, после возможных '_' идёт цифра.
func (lx *Lexer) digitAhead(off uint32, digit func(byte) bool) bool {
	for lx.cursor.PeekAt(off) == '_' {
		off++
	}
	return digit(lx.cursor.PeekAt(off))
}

// eatDigits съедает цифры и '_' (в том числе сразу после префикса 0x/0o/0b),
// возвращает число настоящих цифр.
func (lx *Lexer) eatDigits(digit func(byte) bool) int {
	n := 0
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case digit(b):
			n++
		case b == '_':
		default:
			return n
		}
		lx.cursor.Bump()
	}
	return n
}

// finishNumber rejects a literal glued to an identifier character or a stray digit.
func (lx *Lexer) finishNumber(kind token.Kind, start Mark) token.Token {
	if b := lx.cursor.Peek(); !lx.cursor.EOF() && isIdentContinueByte(b) {
		for isIdentContinueByte(lx.cursor.Peek()) && !lx.cursor.EOF() {
			lx.cursor.Bump()
		}
		return lx.badNumber(start, "invalid digit or suffix in numeric literal")
	}
	return lx.makeToken(kind, start)
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	tok := lx.makeToken(token.Invalid, start)
	lx.errLex(diag.LexBadNumber, tok.Span, msg)
	return tok
}

package lexer

import (
	"unicode/utf8"
)

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }
func isOct(b byte) bool { return b >= '0' && b <= '7' }
func isBin(b byte) bool { return b == '0' || b == '1' }
func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v'
}

// decodeRuneAt декодирует руну на позиции off, не выходя за limit.
func decodeRuneAt(content []byte, off, limit uint32) (rune, uint32) {
	if off >= limit {
		return utf8.RuneError, 0
	}
	if b := content[off]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	r, sz := utf8.DecodeRune(content[off:limit])
	return r, uint32(sz) // #nosec G115 -- sz <= utf8.UTFMax
}

// atLineStart reports whether only blanks precede off on its line (down to floor).
func atLineStart(content []byte, off, floor uint32) bool {
	for i := off; i > floor; i-- {
		switch content[i-1] {
		case ' ', '\t', '\r', '\f', '\v':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

// try2/try3 съедают 2/3 байта при совпадении.
func (lx *Lexer) try2(a, b byte) bool {
	if lx.cursor.PeekAt(0) != a || lx.cursor.PeekAt(1) != b {
		return false
	}
	lx.cursor.Off += 2
	return true
}

func (lx *Lexer) try3(a, b, c byte) bool {
	if lx.cursor.PeekAt(0) != a || lx.cursor.PeekAt(1) != b || lx.cursor.PeekAt(2) != c {
		return false
	}
	lx.cursor.Off += 3
	return true
}

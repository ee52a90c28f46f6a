package lexer

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// readEscape разбирает escape-последовательность, начинающуюся с '\' на позиции i.
// byteVal означает, что r — значение байта (\xHH, \OOO), а не руна.
// n — сколько байт занимает последовательность, даже при ошибке.
func readEscape(b []byte, i int) (r rune, byteVal bool, n int, msg string) {
	if i+1 >= len(b) {
		return 0, false, 1, "incomplete escape sequence"
	}
	c := b[i+1]
	switch c {
	case '\\':
		return '\\', false, 2, ""
	case '\'':
		return '\'', false, 2, ""
	case '"':
		return '"', false, 2, ""
	case 'n':
		return '\n', false, 2, ""
	case 'r':
		return '\r', false, 2, ""
	case 't':
		return '\t', false, 2, ""
	case '{':
		return '{', false, 2, ""
	case '}':
		return '}', false, 2, ""
	case 'x':
		j := i + 2
		for j < len(b) && j < i+4 && isHex(b[j]) {
			r = r*16 + hexVal(b[j])
			j++
		}
		if j != i+4 {
			return 0, true, j - i, "\\x escape needs exactly two hex digits"
		}
		return r, true, 4, ""
	case 'u':
		if i+2 >= len(b) || b[i+2] != '{' {
			return 0, false, 2, "\\u escape must look like \\u{XXXX}"
		}
		j := i + 3
		digits := 0
		for j < len(b) && isHex(b[j]) {
			if digits < 8 {
				r = r*16 + hexVal(b[j])
			}
			digits++
			j++
		}
		if j >= len(b) || b[j] != '}' || digits == 0 {
			return 0, false, j - i, "\\u escape must look like \\u{XXXX}"
		}
		if digits > 6 || !utf8.ValidRune(r) {
			return 0, false, j + 1 - i, "\\u escape is not a valid unicode scalar value"
		}
		return r, false, j + 1 - i, ""
	}
	if isOct(c) {
		j := i + 1
		for j < len(b) && j < i+4 && isOct(b[j]) {
			r = r*8 + rune(b[j]-'0')
			j++
		}
		// \400..\777 как в C: старшие биты отбрасываются
		return r & 0xFF, true, j - i, ""
	}
	_, sz := utf8.DecodeRune(b[i+1:])
	return 0, false, 1 + sz, fmt.Sprintf("unknown escape sequence \\%s", b[i+1:i+1+sz])
}

func hexVal(b byte) rune {
	switch {
	case b >= '0' && b <= '9':
		return rune(b - '0')
	case b >= 'a' && b <= 'f':
		return rune(b-'a') + 10
	default:
		return rune(b-'A') + 10
	}
}

// Unescape decodes the escapes of a string or char body (text without quotes).
func Unescape(raw string) (string, error) {
	if !strings.Contains(raw, `\`) {
		return raw, nil
	}
	b := []byte(raw)
	var out strings.Builder
	out.Grow(len(b))
	for i := 0; i < len(b); {
		if b[i] != '\\' {
			out.WriteByte(b[i])
			i++
			continue
		}
		r, byteVal, n, msg := readEscape(b, i)
		if msg != "" {
			return "", errors.New(msg)
		}
		if byteVal {
			out.WriteByte(byte(r)) // #nosec G115 -- byte escapes are masked to 0xFF in readEscape
		} else {
			out.WriteRune(r)
		}
		i += n
	}
	return out.String(), nil
}

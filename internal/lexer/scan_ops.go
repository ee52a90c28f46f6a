package lexer

import (
	"fmt"

	"zenc/internal/diag"
	"zenc/internal/token"
)

// scanOperatorOrPunct — жадный матч: сначала тройки, потом пары, потом одиночные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.try3('.', '.', '='):
		return lx.makeToken(token.DotDotEq, start)
	case lx.try3('?', '?', '='):
		return lx.makeToken(token.QuestionQuestionAssign, start)
	case lx.try3('<', '<', '='):
		return lx.makeToken(token.ShlAssign, start)
	case lx.try3('>', '>', '='):
		return lx.makeToken(token.ShrAssign, start)
	}

	for _, op := range twoByteOps {
		if lx.try2(op.a, op.b) {
			return lx.makeToken(op.kind, start)
		}
	}

	b := lx.cursor.Peek()
	if k, ok := oneByteOps[b]; ok {
		lx.cursor.Bump()
		return lx.makeToken(k, start)
	}

	// неизвестный символ: съедаем целую руну, чтобы не резать UTF-8
	r, sz := decodeRuneAt(lx.file.Content, lx.cursor.Off, lx.cursor.Limit)
	if sz == 0 {
		sz = 1
	}
	lx.cursor.Off += sz
	tok := lx.makeToken(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unknown character %q", r))
	return tok
}

type pair struct {
	a, b byte
	kind token.Kind
}

var twoByteOps = [...]pair{
	{'.', '.', token.DotDot},
	{'?', '.', token.QuestionDot},
	{'?', '?', token.QuestionQuestion},
	{':', ':', token.ColonColon},
	{'-', '>', token.Arrow},
	{'=', '>', token.FatArrow},
	{'=', '=', token.EqEq},
	{'!', '=', token.BangEq},
	{'<', '=', token.LtEq},
	{'>', '=', token.GtEq},
	{'<', '<', token.Shl},
	{'>', '>', token.Shr},
	{'&', '&', token.AndAnd},
	{'|', '|', token.OrOr},
	{'+', '=', token.PlusAssign},
	{'-', '=', token.MinusAssign},
	{'*', '=', token.StarAssign},
	{'/', '=', token.SlashAssign},
	{'%', '=', token.PercentAssign},
	{'&', '=', token.AmpAssign},
	{'|', '=', token.PipeAssign},
	{'^', '=', token.CaretAssign},
}

var oneByteOps = map[byte]token.Kind{
	'(': token.LParen, ')': token.RParen,
	'{': token.LBrace, '}': token.RBrace,
	'[': token.LBracket, ']': token.RBracket,
	',': token.Comma, ';': token.Semicolon, ':': token.Colon, '.': token.Dot,
	'@': token.At, '?': token.Question,
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash,
	'%': token.Percent, '&': token.Amp, '|': token.Pipe, '^': token.Caret,
	'~': token.Tilde, '!': token.Bang, '=': token.Assign, '<': token.Lt, '>': token.Gt,
}

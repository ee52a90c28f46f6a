package lexer

import (
	"zenc/internal/diag"
	"zenc/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - пробелы и табы коалесцируются в один TriviaSpace
// - последовательные '\n' коалесцируются в один TriviaNewline
// - //... до \n -> TriviaLineComment, но "//>" это директива, не trivia
// - /* ... */ -> TriviaBlockComment, без вложенности
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case isSpace(b):
			for isSpace(lx.cursor.Peek()) && !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			lx.holdTrivia(token.TriviaSpace, start)
		case b == '\n':
			for lx.cursor.Peek() == '\n' && !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			lx.holdTrivia(token.TriviaNewline, start)
		case b == '/' && lx.cursor.PeekAt(1) == '/':
			if lx.cursor.PeekAt(2) == '>' {
				return
			}
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			lx.holdTrivia(token.TriviaLineComment, start)
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			lx.cursor.Off += 2
			closed := false
			for !lx.cursor.EOF() {
				if lx.try2('*', '/') {
					closed = true
					break
				}
				lx.cursor.Bump()
			}
			if !closed {
				lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
			}
			lx.holdTrivia(token.TriviaBlockComment, start)
		default:
			return
		}
	}
}

func (lx *Lexer) holdTrivia(kind token.TriviaKind, m Mark) {
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: lx.cursor.SpanFrom(m),
		Text: lx.cursor.Text(m),
	})
}

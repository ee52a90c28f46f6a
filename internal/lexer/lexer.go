package lexer

import (
	"zenc/internal/source"
	"zenc/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	floor  uint32 // начало диапазона; для '#' в начале строки
	opts   Options
	queue  []token.Token  // готовые токены (макросы и raw дают по несколько за раз)
	hold   []token.Trivia // накопленные leading trivia
	prev   token.Kind     // последний отсканированный значимый токен
	errs   []*Error
}

// New creates a lexer over the whole file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		prev:   token.Invalid,
	}
}

// NewRange creates a lexer over file bytes [start, end).
// Spans stay absolute offsets into the file.
func NewRange(file *source.File, start, end uint32, opts Options) *Lexer {
	lx := New(file, opts)
	lx.cursor = NewRangeCursor(file, start, end)
	lx.floor = lx.cursor.Off
	return lx
}

// Next возвращает следующий значимый токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if len(lx.queue) == 0 {
		lx.scan()
	}
	tok := lx.queue[0]
	lx.queue = lx.queue[1:]
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if len(lx.queue) == 0 {
		lx.scan()
	}
	return lx.queue[0]
}

// Errors returns every lexical error seen so far in source order.
func (lx *Lexer) Errors() []*Error {
	return lx.errs
}

// EmptySpan is a zero-width span at the cursor.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// Tokenize lexes the whole file. The result always ends with EOF.
func Tokenize(file *source.File, opts Options) ([]token.Token, []*Error) {
	lx := New(file, opts)
	return lx.drain(), lx.errs
}

// TokenizeRange lexes file bytes [start, end).
func TokenizeRange(file *source.File, start, end uint32, opts Options) ([]token.Token, []*Error) {
	lx := NewRange(file, start, end, opts)
	return lx.drain(), lx.errs
}

func (lx *Lexer) drain() []token.Token {
	toks := make([]token.Token, 0, (lx.cursor.Limit-lx.cursor.Off)/4+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// scan кладёт в очередь один или несколько токенов.
func (lx *Lexer) scan() {
	rawArmed := lx.prev == token.KwRaw

	lx.collectLeadingTrivia()
	leading := lx.hold
	lx.hold = nil

	if lx.cursor.EOF() {
		lx.push(token.Token{Kind: token.EOF, Span: lx.EmptySpan(), Leading: leading})
		return
	}

	var tok token.Token
	ch := lx.cursor.Peek()
	switch {
	case ch == '/' && lx.cursor.PeekAt(1) == '/' && lx.cursor.PeekAt(2) == '>':
		tok = lx.scanBuildDirective()
	case ch == '#' && atLineStart(lx.file.Content, lx.cursor.Off, lx.floor):
		tok = lx.scanPPDirective()
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	case ch == '\'':
		tok = lx.scanChar()
	default:
		tok = lx.scanOperatorOrPunct()
	}
	tok.Leading = leading
	lx.push(tok)

	switch {
	case tok.Kind == token.Ident:
		lx.maybeMacro()
	case tok.Kind == token.LBrace && rawArmed:
		lx.scanRawBody()
	}
}

func (lx *Lexer) push(tok token.Token) {
	lx.prev = tok.Kind
	lx.queue = append(lx.queue, tok)
}

func (lx *Lexer) makeToken(kind token.Kind, m Mark) token.Token {
	sp := lx.cursor.SpanFrom(m)
	return token.Token{Kind: kind, Span: sp, Text: lx.cursor.Text(m)}
}

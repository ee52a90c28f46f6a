package lexer

import (
	"bytes"

	"zenc/internal/diag"
	"zenc/internal/source"
	"zenc/internal/token"
)

// SegmentKind distinguishes literal text from {expr} splices.
type SegmentKind uint8

const (
	SegText SegmentKind = iota
	SegSplice
)

// Segment is one piece of an interpolated string.
// For SegText Span covers the raw text (escapes not decoded).
// For SegSplice Span covers the expression bytes and Spec the format spec after ':'.
type Segment struct {
	Kind    SegmentKind
	Span    source.Span
	Spec    source.Span
	HasSpec bool
}

type rawSeg struct {
	kind       SegmentKind
	start, end uint32
	specStart  uint32
	hasSpec    bool
}

type scanErr struct {
	code       diag.Code
	msg        string
	start, end uint32
}

// quoteScanner разбирает строковый литерал поверх байтов файла.
// Используется и лексером, и StringSegments, поэтому правила одни.
type quoteScanner struct {
	content []byte
	limit   uint32
	segs    []rawSeg
	collect bool
}

// scanQuoted: content[off] == '"'. Возвращает позицию после закрывающей кавычки.
// Ошибка escape не останавливает поиск конца строки, ошибки сплайса — останавливают.
func (q *quoteScanner) scanQuoted(off uint32) (end uint32, interp bool, err *scanErr) {
	i := off + 1
	textStart := i
	flush := func(to uint32) {
		if q.collect && to > textStart {
			q.segs = append(q.segs, rawSeg{kind: SegText, start: textStart, end: to})
		}
	}
	for i < q.limit {
		switch q.content[i] {
		case '"':
			flush(i)
			return i + 1, interp, err
		case '\\':
			_, _, n, msg := readEscape(q.content[:q.limit], int(i))
			if msg != "" && err == nil {
				err = &scanErr{code: diag.LexBadEscape, msg: msg, start: i, end: i + uint32(n)} // #nosec G115
			}
			i += uint32(n) // #nosec G115 -- n is small
		case '{':
			flush(i)
			interp = true
			next, serr := q.scanSplice(i)
			if serr != nil {
				return next, interp, serr
			}
			i = next
			textStart = i
		default:
			i++
		}
	}
	return q.limit, interp, &scanErr{code: diag.LexUnterminatedString, msg: "unterminated string literal", start: off, end: q.limit}
}

// scanSplice: content[open] == '{'. Возвращает позицию после '}'.
func (q *quoteScanner) scanSplice(open uint32) (uint32, *scanErr) {
	seg := rawSeg{kind: SegSplice, start: open + 1}
	depth := 0
	inSpec := false
	for j := open + 1; j < q.limit; {
		c := q.content[j]
		if inSpec {
			if c == '}' {
				return q.closeSplice(seg, j, open)
			}
			j++
			continue
		}
		switch c {
		case '"':
			// вложенная строка пропускается целиком
			nested := quoteScanner{content: q.content, limit: q.limit}
			end, _, err := nested.scanQuoted(j)
			if err != nil && err.code != diag.LexBadEscape {
				return q.limit, &scanErr{code: diag.LexUnterminatedSplice, msg: "unterminated interpolation, expected '}'", start: open, end: q.limit}
			}
			j = end
			continue
		case '\'':
			j = skipCharLit(q.content, j, q.limit)
			continue
		case '(', '[', '{':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case '}':
			if depth == 0 {
				seg.end = j
				return q.closeSplice(seg, j, open)
			}
			depth--
		case ':':
			if j+1 < q.limit && q.content[j+1] == ':' {
				j += 2
				continue
			}
			if depth == 0 {
				seg.end = j
				seg.specStart = j + 1
				seg.hasSpec = true
				inSpec = true
			}
		}
		j++
	}
	return q.limit, &scanErr{code: diag.LexUnterminatedSplice, msg: "unterminated interpolation, expected '}'", start: open, end: q.limit}
}

func (q *quoteScanner) closeSplice(seg rawSeg, closeAt, open uint32) (uint32, *scanErr) {
	if len(bytes.TrimSpace(q.content[seg.start:seg.end])) == 0 {
		return closeAt + 1, &scanErr{code: diag.LexEmptySplice, msg: "empty interpolation", start: open, end: closeAt + 1}
	}
	if seg.hasSpec && seg.specStart == closeAt {
		return closeAt + 1, &scanErr{code: diag.LexEmptySplice, msg: "empty format spec after ':'", start: open, end: closeAt + 1}
	}
	if q.collect {
		q.segs = append(q.segs, seg)
	}
	return closeAt + 1, nil
}

// specEnd для сплайса — позиция закрывающей '}' (spec идёт до неё).
func specEnd(content []byte, seg rawSeg) uint32 {
	i := seg.specStart
	for i < uint32(len(content)) && content[i] != '}' { // #nosec G115
		i++
	}
	return i
}

// skipCharLit пропускает char-литерал внутри сплайса; при сбое — только кавычку.
func skipCharLit(content []byte, j, limit uint32) uint32 {
	for k := j + 1; k < limit; k++ {
		switch content[k] {
		case '\\':
			k++
		case '\'':
			return k + 1
		case '\n':
			return j + 1
		}
	}
	return j + 1
}

func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	q := quoteScanner{content: lx.file.Content, limit: lx.cursor.Limit}
	end, interp, err := q.scanQuoted(lx.cursor.Off)
	lx.cursor.Off = end
	if err != nil {
		tok := lx.makeToken(token.Invalid, start)
		lx.errLex(err.code, source.Span{File: lx.file.ID, Start: err.start, End: err.end}, err.msg)
		return tok
	}
	if interp {
		return lx.makeToken(token.InterpStringLit, start)
	}
	return lx.makeToken(token.StringLit, start)
}

// StringSegments splits a StringLit or InterpStringLit token into text and splice parts.
func StringSegments(file *source.File, tok token.Token) ([]Segment, error) {
	q := quoteScanner{content: file.Content, limit: tok.Span.End, collect: true}
	if _, _, err := q.scanQuoted(tok.Span.Start); err != nil {
		return nil, &Error{Code: err.code, Reason: err.msg, Span: source.Span{File: file.ID, Start: err.start, End: err.end}}
	}
	out := make([]Segment, 0, len(q.segs))
	for _, s := range q.segs {
		seg := Segment{Kind: s.kind, Span: source.Span{File: file.ID, Start: s.start, End: s.end}}
		if s.hasSpec {
			seg.HasSpec = true
			seg.Spec = source.Span{File: file.ID, Start: s.specStart, End: specEnd(file.Content, s)}
		}
		out = append(out, seg)
	}
	return out, nil
}

// scanChar: ровно одна руна или один escape между одинарными кавычками.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	content := lx.file.Content
	lx.cursor.Bump() // '\''

	switch b := lx.cursor.Peek(); {
	case lx.cursor.EOF() || b == '\n':
		tok := lx.makeToken(token.Invalid, start)
		lx.errLex(diag.LexUnterminatedChar, tok.Span, "unterminated char literal")
		return tok
	case b == '\'':
		lx.cursor.Bump()
		tok := lx.makeToken(token.Invalid, start)
		lx.errLex(diag.LexBadChar, tok.Span, "empty char literal")
		return tok
	case b == '\\':
		escAt := lx.cursor.Off
		_, _, n, msg := readEscape(content[:lx.cursor.Limit], int(escAt))
		lx.cursor.Off += uint32(n) // #nosec G115
		if msg != "" {
			lx.skipCharTail()
			tok := lx.makeToken(token.Invalid, start)
			lx.errLex(diag.LexBadEscape, source.Span{File: lx.file.ID, Start: escAt, End: escAt + uint32(n)}, msg) // #nosec G115
			return tok
		}
	default:
		_, sz := decodeRuneAt(content, lx.cursor.Off, lx.cursor.Limit)
		lx.cursor.Off += sz
	}

	if lx.cursor.Eat('\'') {
		return lx.makeToken(token.CharLit, start)
	}
	if lx.skipCharTail() {
		tok := lx.makeToken(token.Invalid, start)
		lx.errLex(diag.LexBadChar, tok.Span, "char literal must contain exactly one character")
		return tok
	}
	tok := lx.makeToken(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedChar, tok.Span, "unterminated char literal")
	return tok
}

// skipCharTail ищет закрывающую кавычку до конца строки; true, если нашлась.
func (lx *Lexer) skipCharTail() bool {
	m := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '\n':
			lx.cursor.Reset(m)
			return false
		case '\\':
			lx.cursor.Bump()
		case '\'':
			lx.cursor.Bump()
			return true
		}
		lx.cursor.Bump()
	}
	lx.cursor.Reset(m)
	return false
}

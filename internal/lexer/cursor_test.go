package lexer

import (
	"testing"

	"zenc/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.zc", []byte(content))
	return fs.Get(id)
}

func TestCursorSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))
	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Bump(); got != want {
			t.Errorf("Bump: want %q, got %q", want, got)
		}
	}
	if !cursor.EOF() {
		t.Error("expected EOF at end")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Error("Peek/Bump at EOF must return 0")
	}
}

func TestCursorRangeLimit(t *testing.T) {
	cursor := NewRangeCursor(createFile("abcdef"), 2, 4)
	if cursor.Peek() != 'c' {
		t.Errorf("expected 'c', got %q", cursor.Peek())
	}
	if _, _, ok := cursor.Peek2(); !ok {
		t.Error("Peek2 inside range must succeed")
	}
	m := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	if !cursor.EOF() {
		t.Error("range cursor must stop at its limit")
	}
	if got := cursor.Text(m); got != "cd" {
		t.Errorf("Text: want cd, got %q", got)
	}
	sp := cursor.SpanFrom(m)
	if sp.Start != 2 || sp.End != 4 {
		t.Errorf("SpanFrom: got %v", sp)
	}
	cursor.Reset(m)
	if !cursor.Eat('c') || cursor.Eat('x') {
		t.Error("Eat mismatch")
	}
}

func TestAtLineStart(t *testing.T) {
	content := []byte("x\n  #a #b")
	if !atLineStart(content, 4, 0) {
		t.Error("'#' after indentation is at line start")
	}
	if atLineStart(content, 7, 0) {
		t.Error("'#' after text is not at line start")
	}
	if !atLineStart(content, 0, 0) {
		t.Error("file start is a line start")
	}
}

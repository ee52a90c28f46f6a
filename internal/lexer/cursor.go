package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"zenc/internal/source"
)

// Cursor is a byte position inside File.Content bounded by Limit.
type Cursor struct {
	File  *source.File
	Off   uint32
	Limit uint32 // исключительная граница
}

// NewCursor creates a cursor over the whole file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, Limit: limit}
}

// NewRangeCursor creates a cursor over [start, end) of the file.
func NewRangeCursor(f *source.File, start, end uint32) Cursor {
	c := NewCursor(f)
	if end < c.Limit {
		c.Limit = end
	}
	if start > c.Limit {
		start = c.Limit
	}
	c.Off = start
	return c
}

func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek возвращает текущий байт или 0 на EOF.
func (c *Cursor) Peek() byte {
	return c.PeekAt(0)
}

// PeekAt возвращает байт на n позиций вперёд или 0 за границей.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// Peek2 reads the current and next byte.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// Eat consumes the next byte if it equals b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.File.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// Mark это метка начала фрагмента для SpanFrom.
type Mark uint32

func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}

// Text returns the bytes between m and the cursor.
func (c *Cursor) Text(m Mark) string {
	return string(c.File.Content[uint32(m):c.Off])
}

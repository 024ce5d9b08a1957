package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"jlite/internal/source"
)

// Cursor walks the bytes of one file. Reads past the end yield 0.
type Cursor struct {
	src  []byte
	file source.FileID
	Off  uint32
}

func NewCursor(f *source.File) Cursor {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic(fmt.Errorf("lexer: %s: %w", f.Path, err))
	}
	return Cursor{src: f.Content, file: f.ID}
}

func (c *Cursor) EOF() bool { return int(c.Off) >= len(c.src) }

func (c *Cursor) at(i uint32) byte {
	if int(i) >= len(c.src) {
		return 0
	}
	return c.src[i]
}

func (c *Cursor) Peek() byte { return c.at(c.Off) }

// Peek2 returns the next two bytes; ok is false when fewer than two remain.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if int(c.Off)+2 > len(c.src) {
		return 0, 0, false
	}
	return c.src[c.Off], c.src[c.Off+1], true
}

func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// Eat съедает b, если он следующий.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.src[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

// Skip advances while pred holds for the next byte.
func (c *Cursor) Skip(pred func(byte) bool) {
	for !c.EOF() && pred(c.src[c.Off]) {
		c.Off++
	}
}

// Mark is a saved offset.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

// SpanFrom covers everything consumed since m.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file, Start: uint32(m), End: c.Off}
}

func (c *Cursor) rest() []byte { return c.src[c.Off:] }

func (c *Cursor) text(sp source.Span) string { return string(c.src[sp.Start:sp.End]) }

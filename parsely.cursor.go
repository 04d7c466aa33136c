package parsely

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Position represents a location in the input text
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number, counted in runes
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// source is the shared, read-only state of one parse call.
type source struct {
	text   string
	logger *zap.Logger
}

// Cursor is an immutable, position-tracked view over the input.
//
// Parsers receive a Cursor by value and return the advanced Cursor on
// success. Keeping the old value is all it takes to backtrack.
type Cursor struct {
	src  *source
	off  int
	line int
	col  int
}

// NewCursor returns a cursor at the start of input.
func NewCursor(input string) Cursor {
	return newCursor(input, nil)
}

func newCursor(input string, logger *zap.Logger) Cursor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Cursor{
		src:  &source{text: input, logger: logger},
		line: 1,
		col:  1,
	}
}

// Position returns the current position
func (c Cursor) Position() Position {
	return Position{Offset: c.off, Line: c.line, Column: c.col}
}

// Offset returns the current byte offset
func (c Cursor) Offset() int {
	return c.off
}

// Remaining returns the unconsumed input
func (c Cursor) Remaining() string {
	if c.src == nil {
		return ""
	}
	return c.src.text[c.off:]
}

// AtEnd returns true if all input has been consumed
func (c Cursor) AtEnd() bool {
	return c.src == nil || c.off >= len(c.src.text)
}

// Peek returns the next rune without advancing. The size is 0 at end of input.
func (c Cursor) Peek() (rune, int) {
	if c.AtEnd() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(c.src.text[c.off:])
}

// HasPrefix returns true if the remaining input starts with s
func (c Cursor) HasPrefix(s string) bool {
	return strings.HasPrefix(c.Remaining(), s)
}

// Advance returns a cursor moved past the next n bytes of input.
// n is clamped to the remaining input; a cursor never moves backwards.
func (c Cursor) Advance(n int) Cursor {
	if n <= 0 || c.AtEnd() {
		return c
	}
	end := c.off + n
	if end > len(c.src.text) {
		end = len(c.src.text)
	}
	for _, r := range c.src.text[c.off:end] {
		if r == '\n' {
			c.line++
			c.col = 1
		} else {
			c.col++
		}
	}
	c.off = end
	return c
}

// Next consumes one rune and returns it with the advanced cursor.
func (c Cursor) Next() (rune, Cursor, bool) {
	r, size := c.Peek()
	if size == 0 {
		return r, c, false
	}
	return r, c.Advance(size), true
}

// excerpt returns a short quoted view of the input at the cursor for error reports.
func (c Cursor) excerpt() string {
	if c.AtEnd() {
		return ExpectEOF
	}
	rest := c.Remaining()
	n := 0
	for i := range rest {
		if n == maxFoundRunes {
			return fmt.Sprintf("%q...", rest[:i])
		}
		n++
	}
	return fmt.Sprintf("%q", rest)
}

func (c Cursor) logger() *zap.Logger {
	if c.src == nil || c.src.logger == nil {
		return zap.NewNop()
	}
	return c.src.logger
}

// Package source implements the character stream that feeds the lexer: a
// buffered reader with unbounded look-ahead and line/column tracking.
package source

import (
	"bufio"
	"io"
)

// Reader is a buffered rune stream with unbounded look-ahead, used by the
// lexer to scan the source text of a single module.
type Reader struct {
	name string
	br   *bufio.Reader
	la   []rune // look-ahead deque, filled lazily by peek

	line, col int
	atEOF     bool
}

// New creates a Reader over r, identified by name (used in SourceSpan and
// diagnostics).
func New(name string, r io.Reader) *Reader {
	return &Reader{
		name: name,
		br:   bufio.NewReader(r),
		line: 1,
		col:  1,
	}
}

// Name returns the source name this reader was created with.
func (rd *Reader) Name() string { return rd.name }

// Line returns the current 1-based line number.
func (rd *Reader) Line() int { return rd.line }

// Col returns the current 1-based column number.
func (rd *Reader) Col() int { return rd.col }

// fill ensures at least n runes are available in the look-ahead deque,
// short of EOF.
func (rd *Reader) fill(n int) {
	for len(rd.la) < n {
		r, _, err := rd.br.ReadRune()
		if err != nil {
			rd.atEOF = true
			return
		}
		rd.la = append(rd.la, r)
	}
}

// Peek returns the next rune without consuming it, or 0 at EOF.
func (rd *Reader) Peek() rune {
	return rd.PeekAt(0)
}

// PeekAt returns the rune n positions ahead (0 = next rune) without
// consuming anything, or 0 if that position is at or past EOF.
func (rd *Reader) PeekAt(n int) rune {
	rd.fill(n + 1)
	if n >= len(rd.la) {
		return 0
	}
	return rd.la[n]
}

// Match reports whether the upcoming runes equal str; if so, it consumes
// them and returns true, otherwise the stream is left untouched.
func (rd *Reader) Match(str string) bool {
	runes := []rune(str)
	rd.fill(len(runes))
	if len(rd.la) < len(runes) {
		return false
	}
	for i, r := range runes {
		if rd.la[i] != r {
			return false
		}
	}
	for range runes {
		rd.Next()
	}
	return true
}

// Next consumes and returns the next rune, advancing line/column tracking.
// It returns 0 once the stream is exhausted.
func (rd *Reader) Next() rune {
	rd.fill(1)
	if len(rd.la) == 0 {
		return 0
	}
	r := rd.la[0]
	rd.la = rd.la[1:]

	if r == '\n' {
		rd.line++
		rd.col = 1
	} else {
		rd.col++
	}
	return r
}

// EOF reports whether the underlying stream is exhausted and the
// look-ahead deque is empty.
func (rd *Reader) EOF() bool {
	rd.fill(1)
	return len(rd.la) == 0 && rd.atEOF
}

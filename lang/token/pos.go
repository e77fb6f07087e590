package token

import "fmt"

const (
	lineBits = 18
	colBits  = 32 - lineBits

	// MaxLines is the maximum 1-based line number value that can be encoded in
	// Pos.
	MaxLines = (1 << lineBits) - 1
	// MaxCols is the maximum 1-based column number value that can be encoded in
	// Pos.
	MaxCols = (1 << colBits) - 1

	lineMask = MaxLines
	colMask  = MaxCols
)

// Pos is an efficient encoding of a 1-based line and column position in a
// 32-bit unsigned integer. A value of 0 for either line or column should be
// interpreted as "unknown".
type Pos uint32

// NoPos is the zero value of Pos, representing an unknown position.
const NoPos Pos = 0

// MakePos creates a Pos value encoding the provided line and col. It is the
// caller's responsibility to ensure the values are > 0 and <= the maximum
// allowed.
func MakePos(line, col int) Pos {
	return Pos(col<<lineBits | line)
}

// LineCol returns the line and column values encoded in Pos.
func (p Pos) LineCol() (int, int) {
	l := p & lineMask
	c := (p >> lineBits) & colMask
	return int(l), int(c)
}

// Unknown returns true if either line or column value is unknown.
func (p Pos) Unknown() bool {
	l, c := p.LineCol()
	return l == 0 || c == 0
}

// Location is the decoded, human-facing form of a Pos: a 1-based line and
// column pair (spec.md's SourceLocation).
type Location struct {
	Line, Column int
}

// Loc decodes p into a Location.
func (p Pos) Loc() Location {
	l, c := p.LineCol()
	return Location{Line: l, Column: c}
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Span identifies a range of source text within a named source (spec.md's
// SourceSpan). Every token, AST node and diagnostic carries one.
type Span struct {
	Name       string
	Start, End Pos
}

func (s Span) String() string {
	if s.Name == "" {
		return s.Start.Loc().String()
	}
	return fmt.Sprintf("%s:%s", s.Name, s.Start.Loc())
}

// Join returns the smallest Span covering both s and other. Name is taken
// from s; callers are expected to only join spans from the same source.
func (s Span) Join(other Span) Span {
	start, end := s.Start, s.End
	if other.Start != 0 && (start == 0 || other.Start < start) {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Span{Name: s.Name, Start: start, End: end}
}

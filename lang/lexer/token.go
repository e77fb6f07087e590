package lexer

import (
	"strconv"

	"github.com/anode-lang/anode/lang/token"
)

// Token is a single lexical token: its kind, the span of source text it
// covers, and the uninterpreted text of that span (spec.md §3.2).
type Token struct {
	Kind token.Kind
	Span token.Span
	Text string
}

// IntValue parses the token's text as a base-10 int32, the way literal
// values are computed on demand rather than at scan time.
func (t Token) IntValue() (int32, error) {
	v, err := strconv.ParseInt(t.Text, 10, 32)
	return int32(v), err
}

// FloatValue parses the token's text as a float64.
func (t Token) FloatValue() (float64, error) {
	return strconv.ParseFloat(t.Text, 64)
}

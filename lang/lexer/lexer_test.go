package lexer_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anode-lang/anode/lang/diag"
	"github.com/anode-lang/anode/lang/lexer"
	"github.com/anode-lang/anode/lang/source"
	"github.com/anode-lang/anode/lang/token"
)

func scanAll(t *testing.T, src string) []lexer.Token {
	t.Helper()
	errs := &diag.Stream{}
	lx := lexer.New(source.New("test", bytes.NewReader([]byte(src))), errs)
	var toks []lexer.Token
	for {
		tok := lx.NextToken()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	require.NoError(t, errs.Err())
	return toks
}

func kinds(toks []lexer.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestLexArithmetic(t *testing.T) {
	toks := scanAll(t, "1 + 2 * 3;")
	assert.Equal(t, []token.Kind{
		token.INT, token.PLUS, token.INT, token.STAR, token.INT, token.SEMI, token.EOF,
	}, kinds(toks))
	assert.Equal(t, "1", toks[0].Text)
	assert.Equal(t, "3", toks[4].Text)
}

func TestLexDeclAndAssign(t *testing.T) {
	toks := scanAll(t, "foo:int = 100;")
	assert.Equal(t, []token.Kind{
		token.IDENT, token.COLON, token.IDENT, token.ASSIGN, token.INT, token.SEMI, token.EOF,
	}, kinds(toks))
}

func TestLexKeywordsAndPunctuation(t *testing.T) {
	toks := scanAll(t, "class Widget { a:int; } w:Widget::Nested;")
	ks := kinds(toks)
	assert.Contains(t, ks, token.CLASS)
	assert.Contains(t, ks, token.COLONCOLON)
	assert.Contains(t, ks, token.LBRACE)
	assert.Contains(t, ks, token.RBRACE)
}

func TestLexPeekDoesNotConsume(t *testing.T) {
	errs := &diag.Stream{}
	lx := lexer.New(source.New("test", bytes.NewReader([]byte("1 + 2"))), errs)
	first := lx.PeekToken()
	second := lx.NextToken()
	assert.Equal(t, first.Kind, second.Kind)
	assert.Equal(t, first.Text, second.Text)
}

func TestLexLineAndBlockComments(t *testing.T) {
	toks := scanAll(t, "1 # trailing comment\n(# nested (# block #) comment #) + 2;")
	assert.Equal(t, []token.Kind{token.INT, token.PLUS, token.INT, token.SEMI, token.EOF}, kinds(toks))
}

func TestLexFloatLiteral(t *testing.T) {
	toks := scanAll(t, "1.5;")
	require.Len(t, toks, 3)
	assert.Equal(t, token.FLOAT, toks[0].Kind)
	f, err := toks[0].FloatValue()
	require.NoError(t, err)
	assert.InDelta(t, 1.5, f, 0.0001)
}

// TestLexRoundTrip checks spec.md §8's lexer round-trip law: concatenating
// every token's text separated by one space re-lexes to an equivalent
// token sequence (same kinds and texts, ignoring the trailing EOF span).
func TestLexRoundTrip(t *testing.T) {
	const src = "func add:int(x:int, y:int) x + y; add(2, 3);"
	first := scanAll(t, src)

	var buf bytes.Buffer
	for i, tok := range first {
		if tok.Kind == token.EOF {
			break
		}
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(tok.Text)
	}

	second := scanAll(t, buf.String())
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Kind, second[i].Kind, "token %d kind", i)
		assert.Equal(t, first[i].Text, second[i].Text, "token %d text", i)
	}
}

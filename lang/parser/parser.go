// Package parser implements the Pratt (operator-precedence) parser that
// turns a token stream into an ast.Module (spec.md §4.3): prefix parslets
// for literals, identifiers, unary operators and the bracketed forms
// (if/while/assert/new/cast/func/class/namespace/template/expand), and an
// infix precedence-climbing loop for binary operators including
// assignment.
package parser

import (
	"bytes"
	"errors"

	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/diag"
	"github.com/anode-lang/anode/lang/lexer"
	"github.com/anode-lang/anode/lang/source"
	"github.com/anode-lang/anode/lang/token"
)

// ParseModule parses a complete source file (or REPL entry) into an
// ast.Module. The returned error, when non-nil, unwraps to every
// diag.Error encountered; the Module returned alongside it is usable for
// tooling but must not be handed to the semantic passes.
func ParseModule(name string, src []byte) (*ast.Module, error) {
	errs := &diag.Stream{}
	p := &parser{
		name: name,
		lex:  lexer.New(source.New(name, bytes.NewReader(src)), errs),
		errs: errs,
	}
	p.advance()

	body := p.parseStmtList(token.EOF)
	mod := ast.NewModule(token.Span{Name: name}, name, body)
	p.errs.Sort()
	return mod, p.errs.Err()
}

// parser holds the mutable state threaded through every parse method.
type parser struct {
	name string
	lex  *lexer.Lexer
	errs *diag.Stream

	tok lexer.Token
}

func (p *parser) advance() {
	p.tok = p.lex.NextToken()
}

// errPanic is recovered at statement granularity, matching the teacher's
// panic-mode error recovery: a malformed statement is skipped up to the
// next ';' rather than aborting the whole parse.
var errPanic = errors.New("parser: panic mode")

func (p *parser) error(span token.Span, kind diag.Kind, format string, args ...any) {
	p.errs.Add(kind, span, format, args...)
}

func (p *parser) expect(kinds ...token.Kind) lexer.Token {
	for _, k := range kinds {
		if p.tok.Kind == k {
			t := p.tok
			p.advance()
			return t
		}
	}
	p.error(p.tok.Span, diag.UnexpectedToken, "expected %s, found %s", expectedList(kinds), p.tok.Kind)
	panic(errPanic)
}

func expectedList(kinds []token.Kind) string {
	if len(kinds) == 1 {
		return kinds[0].GoString()
	}
	s := "one of "
	for i, k := range kinds {
		if i > 0 {
			s += ", "
		}
		s += k.GoString()
	}
	return s
}

func (p *parser) at(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.tok.Kind == k {
			return true
		}
	}
	return false
}

// recoverStmt skips tokens until past the next ';', or up to a
// block-closing '}' or EOF, called from the deferred recover in
// parseStmt.
func (p *parser) recoverStmt() {
	for !p.at(token.EOF, token.RBRACE) {
		if p.tok.Kind == token.SEMI {
			p.advance()
			return
		}
		p.advance()
	}
}

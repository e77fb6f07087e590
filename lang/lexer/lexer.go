// Package lexer turns anode source text into a lazy sequence of tokens.
// Whitespace and comments (# to end-of-line, and nesting (# ... #) block
// comments) are skipped between tokens.
package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/anode-lang/anode/lang/diag"
	"github.com/anode-lang/anode/lang/source"
	"github.com/anode-lang/anode/lang/token"
)

// punctuation lists candidate multi-character operators for a given first
// rune, longest-first, so e.g. "==" is preferred over "=" and ">=" over
// ">". Comments, including "(#" block openers, are skipped before this
// table is consulted.
var punctuation = map[rune][]struct {
	text string
	kind token.Kind
}{
	'=': {{"==", token.EQ}, {"=", token.ASSIGN}},
	'!': {{"!=", token.NEQ}, {"!", token.BANG}},
	'<': {{"<=", token.LE}, {"<", token.LT}},
	'>': {{">=", token.GE}, {">", token.GT}},
	'&': {{"&&", token.ANDAND}},
	'|': {{"||", token.OROR}},
	'+': {{"++", token.PLUSPLUS}, {"+", token.PLUS}},
	'*': {{"*", token.STAR}},
	'/': {{"/", token.SLASH}},
	':': {{"::", token.COLONCOLON}, {":", token.COLON}},
	',': {{",", token.COMMA}},
	';': {{";", token.SEMI}},
	'.': {{".", token.DOT}},
	'{': {{"{", token.LBRACE}},
	'}': {{"}", token.RBRACE}},
}

// Lexer tokenizes a single module's source text.
type Lexer struct {
	rd   *source.Reader
	errs *diag.Stream

	// one-token pushback buffer for PeekToken.
	buf []Token
}

// New creates a Lexer reading from rd, reporting lex errors to errs.
func New(rd *source.Reader, errs *diag.Stream) *Lexer {
	return &Lexer{rd: rd, errs: errs}
}

func (l *Lexer) pos() token.Pos { return token.MakePos(l.rd.Line(), l.rd.Col()) }

func (l *Lexer) span(start token.Pos, text string) token.Span {
	// approximate end as start + rune count on the same line; good enough for
	// single-line tokens, which covers every anode token kind.
	_, col := start.LineCol()
	line, _ := start.LineCol()
	end := token.MakePos(line, col+len([]rune(text)))
	return token.Span{Name: l.rd.Name(), Start: start, End: end}
}

// PeekToken returns, without consuming, the next token.
func (l *Lexer) PeekToken() Token {
	if len(l.buf) == 0 {
		l.buf = append(l.buf, l.scan())
	}
	return l.buf[0]
}

// NextToken consumes and returns the next token.
func (l *Lexer) NextToken() Token {
	if len(l.buf) > 0 {
		t := l.buf[0]
		l.buf = l.buf[1:]
		return t
	}
	return l.scan()
}

func (l *Lexer) scan() Token {
	l.skipWhitespaceAndComments()

	start := l.pos()
	cur := l.rd.Peek()

	switch {
	case cur == 0 && l.rd.EOF():
		return Token{Kind: token.EOF, Span: l.span(start, "")}

	case isLetter(cur):
		lit := l.ident()
		kind := token.LookupIdent(lit)
		return Token{Kind: kind, Span: l.span(start, lit), Text: lit}

	case isDigit(cur) || (cur == '-' && isDigit(l.rd.PeekAt(1))):
		return l.number(start)

	default:
		return l.operatorOrIllegal(start)
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case isSpace(l.rd.Peek()):
			l.rd.Next()
		case l.rd.Peek() == '#' && l.rd.PeekAt(1) != 0:
			l.lineComment()
		case l.rd.Peek() == '(' && l.rd.PeekAt(1) == '#':
			l.blockComment()
		case l.rd.Peek() == '#':
			l.lineComment()
		default:
			return
		}
	}
}

func (l *Lexer) lineComment() {
	for l.rd.Peek() != '\n' && !l.rd.EOF() {
		l.rd.Next()
	}
}

func (l *Lexer) blockComment() {
	start := l.pos()
	depth := 0
	l.rd.Next() // '('
	l.rd.Next() // '#'
	depth++
	for depth > 0 {
		if l.rd.EOF() {
			l.errs.Add(diag.UnexpectedEofInMultilineComment, l.span(start, "(#"),
				"unexpected end of file in multi-line comment")
			return
		}
		if l.rd.Peek() == '(' && l.rd.PeekAt(1) == '#' {
			l.rd.Next()
			l.rd.Next()
			depth++
			continue
		}
		if l.rd.Peek() == '#' && l.rd.PeekAt(1) == ')' {
			l.rd.Next()
			l.rd.Next()
			depth--
			continue
		}
		l.rd.Next()
	}
}

func (l *Lexer) ident() string {
	var sb strings.Builder
	for isLetter(l.rd.Peek()) || isDigit(l.rd.Peek()) {
		sb.WriteRune(l.rd.Next())
	}
	return sb.String()
}

func (l *Lexer) number(start token.Pos) Token {
	var sb strings.Builder
	if l.rd.Peek() == '-' {
		sb.WriteRune(l.rd.Next())
	}
	isFloat := false
	for isDigit(l.rd.Peek()) {
		sb.WriteRune(l.rd.Next())
	}
	if l.rd.Peek() == '.' && isDigit(l.rd.PeekAt(1)) {
		isFloat = true
		sb.WriteRune(l.rd.Next())
		for isDigit(l.rd.Peek()) {
			sb.WriteRune(l.rd.Next())
		}
	}

	text := sb.String()
	if isFloat {
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			l.errs.Add(diag.InvalidLiteralFloat, l.span(start, text), "invalid float literal %q: %s", text, err)
		}
		return Token{Kind: token.FLOAT, Span: l.span(start, text), Text: text}
	}
	if _, err := strconv.ParseInt(text, 10, 32); err != nil {
		l.errs.Add(diag.InvalidLiteralInt32, l.span(start, text), "invalid int32 literal %q: %s", text, err)
	}
	return Token{Kind: token.INT, Span: l.span(start, text), Text: text}
}

func (l *Lexer) operatorOrIllegal(start token.Pos) Token {
	cur := l.rd.Peek()

	if cur == '(' {
		if l.rd.PeekAt(1) == '?' {
			l.rd.Next()
			l.rd.Next()
			return Token{Kind: token.QUESTIONPAREN, Span: l.span(start, "(?"), Text: "(?"}
		}
		l.rd.Next()
		return Token{Kind: token.LPAREN, Span: l.span(start, "("), Text: "("}
	}
	if cur == ')' {
		l.rd.Next()
		return Token{Kind: token.RPAREN, Span: l.span(start, ")"), Text: ")"}
	}
	if cur == '-' {
		if l.rd.PeekAt(1) == '-' {
			l.rd.Next()
			l.rd.Next()
			return Token{Kind: token.MINUSMINUS, Span: l.span(start, "--"), Text: "--"}
		}
		l.rd.Next()
		return Token{Kind: token.MINUS, Span: l.span(start, "-"), Text: "-"}
	}

	if candidates, ok := punctuation[cur]; ok {
		for _, c := range candidates {
			if l.rd.Match(c.text) {
				return Token{Kind: c.kind, Span: l.span(start, c.text), Text: c.text}
			}
		}
	}

	r := l.rd.Next()
	text := string(r)
	l.errs.Add(diag.UnexpectedCharacter, l.span(start, text), "unexpected character %q", r)
	return Token{Kind: token.ILLEGAL, Span: l.span(start, text), Text: text}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_' ||
		r >= utf8.RuneSelf && unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

package parser

import (
	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/diag"
	"github.com/anode-lang/anode/lang/token"
)

// binopPriority maps a binary-operator token kind to its (left, right)
// binding power for precedence-climbing. Left-associative operators use
// left == right; ASSIGN is right-associative (right < left) so a chain
// like `a = b = c` parses as `a = (b = c)`.
var binopPriority = [...]struct{ left, right int }{
	token.ASSIGN: {1, 0},
	token.OROR:   {2, 2},
	token.ANDAND: {3, 3},
	token.EQ:     {4, 4}, token.NEQ: {4, 4},
	token.LT: {4, 4}, token.LE: {4, 4}, token.GT: {4, 4}, token.GE: {4, 4},
	token.PLUS: {5, 5}, token.MINUS: {5, 5},
	token.STAR: {6, 6}, token.SLASH: {6, 6},
}

const unopPriority = 7

var binopKind = map[token.Kind]ast.BinaryOp{
	token.ASSIGN: ast.BinaryAssign,
	token.PLUS:   ast.BinaryAdd,
	token.MINUS:  ast.BinarySub,
	token.STAR:   ast.BinaryMul,
	token.SLASH:  ast.BinaryDiv,
	token.EQ:     ast.BinaryEq,
	token.NEQ:    ast.BinaryNotEq,
	token.LT:     ast.BinaryLessThan,
	token.LE:     ast.BinaryLessThanOrEqual,
	token.GT:     ast.BinaryGreaterThan,
	token.GE:     ast.BinaryGreaterThanOrEqual,
	token.ANDAND: ast.BinaryLogicalAnd,
	token.OROR:   ast.BinaryLogicalOr,
}

var unopKind = map[token.Kind]ast.UnaryOp{
	token.BANG:       ast.UnaryNot,
	token.PLUSPLUS:   ast.UnaryPreIncrement,
	token.MINUSMINUS: ast.UnaryPreDecrement,
	token.MINUS:      ast.UnaryNegate,
}

// parseExpr parses a full expression at the lowest precedence.
func (p *parser) parseExpr() ast.ExprStmt {
	return p.parseSubExpr(0)
}

func (p *parser) parseSubExpr(priority int) ast.ExprStmt {
	left := p.parseUnary()

	for p.tok.Kind.IsBinop() && binopPriority[p.tok.Kind].left > priority {
		kind := p.tok.Kind
		op := binopKind[kind]
		p.advance()
		right := p.parseSubExpr(binopPriority[kind].right)
		left = ast.NewBinaryExpr(left.Span().Join(right.Span()), op, left, right)
	}
	return left
}

func (p *parser) parseUnary() ast.ExprStmt {
	if p.tok.Kind.IsUnop() || p.tok.Kind == token.MINUS {
		op := unopKind[p.tok.Kind]
		start := p.tok.Span
		p.advance()
		operand := p.parseSubExpr(unopPriority)
		return ast.NewUnaryExpr(start.Join(operand.Span()), op, operand)
	}
	return p.parseSuffixed()
}

// parseSuffixed parses a primary expression followed by any number of
// '.' member accesses and '(' ... ')' call suffixes, which always bind
// tighter than any binary operator.
func (p *parser) parseSuffixed() ast.ExprStmt {
	e := p.parsePrimary()
	for {
		switch p.tok.Kind {
		case token.DOT:
			p.advance()
			nameTok := p.expect(token.IDENT)
			e = ast.NewDotExpr(e.Span().Join(nameTok.Span), e, nameTok.Text)
		case token.LPAREN:
			args, end := p.parseArgList()
			e = ast.NewFuncCallExpr(e.Span().Join(end), e, args)
		default:
			return e
		}
	}
}

func (p *parser) parseArgList() ([]ast.ExprStmt, token.Span) {
	p.expect(token.LPAREN)
	var args []ast.ExprStmt
	for !p.at(token.RPAREN, token.EOF) {
		args = append(args, p.parseExpr())
		if p.tok.Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	end := p.expect(token.RPAREN)
	return args, end.Span
}

func (p *parser) parsePrimary() ast.ExprStmt {
	switch p.tok.Kind {
	case token.INT:
		t := p.tok
		p.advance()
		v, err := t.IntValue()
		if err != nil {
			p.error(t.Span, diag.InvalidLiteralInt32, "invalid int literal %q", t.Text)
		}
		return ast.NewLiteralInt32Expr(t.Span, v)
	case token.FLOAT:
		t := p.tok
		p.advance()
		v, err := t.FloatValue()
		if err != nil {
			p.error(t.Span, diag.InvalidLiteralFloat, "invalid float literal %q", t.Text)
		}
		return ast.NewLiteralFloatExpr(t.Span, v)
	case token.TRUE:
		t := p.tok
		p.advance()
		return ast.NewLiteralBoolExpr(t.Span, true)
	case token.FALSE:
		t := p.tok
		p.advance()
		return ast.NewLiteralBoolExpr(t.Span, false)
	case token.IDENT:
		return p.parseIdentStartingExpr()
	case token.LPAREN:
		p.advance()
		e := p.parseExpr()
		p.expect(token.RPAREN)
		return e
	case token.LBRACE:
		return p.parseCompound()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.ASSERT:
		return p.parseAssert()
	case token.NEW:
		return p.parseNew()
	case token.CAST:
		return p.parseCast()
	case token.FUNC:
		return p.parseFuncDef()
	case token.CLASS:
		return p.parseClassDef()
	case token.NAMESPACE:
		return p.parseNamespace()
	case token.TEMPLATE:
		return p.parseTemplate()
	case token.EXPAND:
		return p.parseExpand()
	default:
		p.error(p.tok.Span, diag.UnexpectedToken, "unexpected %s", p.tok.Kind)
		panic(errPanic)
	}
}

// parseVariableRef parses a possibly "::"-qualified identifier chain, e.g.
// `a::b::c`, used both as a value reference and as the head of a
// TemplateExpansionExpr's name.
func (p *parser) parseVariableRef() *ast.VariableRefExpr {
	start := p.tok.Span
	parts := []string{p.expect(token.IDENT).Text}
	end := start
	for p.tok.Kind == token.COLONCOLON {
		p.advance()
		t := p.expect(token.IDENT)
		parts = append(parts, t.Text)
		end = t.Span
	}
	return ast.NewVariableRefExpr(start.Join(end), parts)
}

// parseTypeRef parses a type reference: a "::"-qualified name with
// optional '<' TypeRef (',' TypeRef)* '>' generic arguments.
func (p *parser) parseTypeRef() ast.TypeRef {
	start := p.tok.Span
	parts := []string{p.expect(token.IDENT).Text}
	end := start
	for p.tok.Kind == token.COLONCOLON {
		p.advance()
		t := p.expect(token.IDENT)
		parts = append(parts, t.Text)
		end = t.Span
	}

	var args []ast.TypeRef
	if p.tok.Kind == token.LT {
		p.advance()
		for !p.at(token.GT, token.EOF) {
			args = append(args, p.parseTypeRef())
			if p.tok.Kind == token.COMMA {
				p.advance()
				continue
			}
			break
		}
		gt := p.expect(token.GT)
		end = gt.Span
	}
	return ast.NewDeferredTypeRef(start.Join(end), parts, args)
}

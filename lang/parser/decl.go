package parser

import (
	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/diag"
	"github.com/anode-lang/anode/lang/token"
)

// parseStmtList parses expression-statements until it sees one of the stop
// kinds (typically EOF or RBRACE). The ';' after each statement is
// optional (a class definition or block needs none), matching an
// expression-oriented block's "last expression is the value" rule.
func (p *parser) parseStmtList(stop ...token.Kind) []ast.ExprStmt {
	var stmts []ast.ExprStmt
	for !p.at(stop...) {
		stmts = append(stmts, p.parseStmt())
		if p.tok.Kind == token.SEMI {
			p.advance()
			continue
		}
		if p.at(token.RBRACE, token.EOF) {
			break
		}
	}
	return stmts
}

// parseStmt parses a single statement, recovering to the next ';' on a
// parse error so one malformed statement does not abort the whole module.
func (p *parser) parseStmt() (stmt ast.ExprStmt) {
	defer func() {
		if r := recover(); r != nil {
			if r != errPanic {
				panic(r)
			}
			p.recoverStmt()
			stmt = ast.NewLiteralBoolExpr(p.tok.Span, false)
		}
	}()
	return p.parseExpr()
}

func (p *parser) parseCompound() *ast.CompoundExpr {
	lb := p.expect(token.LBRACE)
	stmts := p.parseStmtList(token.RBRACE)
	rb := p.expect(token.RBRACE)
	return ast.NewCompoundExpr(lb.Span.Join(rb.Span), stmts)
}

// parseIdentStartingExpr disambiguates the two forms that can start with an
// identifier: a (possibly "::"-qualified) VariableRefExpr, or a
// VariableDeclExpr when the identifier is immediately followed by ':'
// (spec.md §8 scenario 2: `foo:int = 100`, with the initializer optional, as
// in `w:Widget;`).
func (p *parser) parseIdentStartingExpr() ast.ExprStmt {
	first := p.expect(token.IDENT)
	if p.tok.Kind == token.COLON {
		p.advance()
		declType := p.parseTypeRef()
		var init ast.ExprStmt
		end := declType.Span()
		if p.tok.Kind == token.ASSIGN {
			p.advance()
			init = p.parseExpr()
			end = init.Span()
		}
		return ast.NewVariableDeclExpr(first.Span.Join(end), first.Text, declType, init)
	}

	parts := []string{first.Text}
	end := first.Span
	for p.tok.Kind == token.COLONCOLON {
		p.advance()
		t := p.expect(token.IDENT)
		parts = append(parts, t.Text)
		end = t.Span
	}
	return ast.NewVariableRefExpr(first.Span.Join(end), parts)
}

// parseIf parses `if ( cond ) then (else else)?`, where then/else are each
// a single expression (possibly a `{ ... }` block, since that is itself a
// primary expression). A ';' between then and else is allowed, as in
// `if (1) 2; else 3;`.
func (p *parser) parseIf() *ast.IfExpr {
	start := p.expect(token.IF)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	then := p.parseExpr()
	if p.tok.Kind == token.SEMI && p.lex.PeekToken().Kind == token.ELSE {
		p.advance()
	}
	var els ast.ExprStmt
	end := then.Span()
	if p.tok.Kind == token.ELSE {
		p.advance()
		els = p.parseExpr()
		end = els.Span()
	}
	return ast.NewIfExpr(start.Span.Join(end), cond, then, els)
}

func (p *parser) parseWhile() *ast.WhileExpr {
	start := p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	body := p.parseExpr()
	return ast.NewWhileExpr(start.Span.Join(body.Span()), cond, body)
}

func (p *parser) parseAssert() *ast.AssertExpr {
	start := p.expect(token.ASSERT)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	end := p.expect(token.RPAREN)
	return ast.NewAssertExpr(start.Span.Join(end.Span), cond)
}

func (p *parser) parseNew() *ast.NewExpr {
	start := p.expect(token.NEW)
	target := p.parseTypeRef()
	args, end := p.parseArgList()
	return ast.NewNewExpr(start.Span.Join(end), target, args)
}

// parseCast parses `cast < Type > ( expr )`.
func (p *parser) parseCast() *ast.CastExpr {
	start := p.expect(token.CAST)
	p.expect(token.LT)
	target := p.parseTypeRef()
	p.expect(token.GT)
	p.expect(token.LPAREN)
	operand := p.parseExpr()
	end := p.expect(token.RPAREN)
	return ast.NewCastExpr(start.Span.Join(end.Span), ast.CastExplicit, target, operand)
}

// parseParamList parses `'(' (name ':' Type (',' name ':' Type)*)? ')'`.
func (p *parser) parseParamList() []*ast.ParamDecl {
	p.expect(token.LPAREN)
	var params []*ast.ParamDecl
	for !p.at(token.RPAREN, token.EOF) {
		name := p.expect(token.IDENT)
		p.expect(token.COLON)
		ty := p.parseTypeRef()
		params = append(params, &ast.ParamDecl{Name: name.Text, Type: ty})
		if p.tok.Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return params
}

// parseFuncDef parses `func name (':' ReturnType)? ( params ) body`, where
// body is a single expression (spec.md §8 scenario 5: `func add:int(x:int,
// y:int) x + y;`); a `{ ... }` block is just another expression.
func (p *parser) parseFuncDef() *ast.FuncDefExpr {
	start := p.expect(token.FUNC)
	name := p.expect(token.IDENT)

	var ret ast.TypeRef
	if p.tok.Kind == token.COLON {
		p.advance()
		ret = p.parseTypeRef()
	}
	params := p.parseParamList()
	body := p.parseExpr()
	return ast.NewFuncDefExpr(start.Span.Join(body.Span()), name.Text, params, ret, body)
}

// parseGenericParamNames parses an optional `'<' ident (',' ident)* '>'`.
func (p *parser) parseGenericParamNames() []string {
	if p.tok.Kind != token.LT {
		return nil
	}
	p.advance()
	var names []string
	for !p.at(token.GT, token.EOF) {
		names = append(names, p.expect(token.IDENT).Text)
		if p.tok.Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.GT)
	return names
}

// parseClassDef parses `class Name ('<' params '>')? { (field;)* (method)* }`,
// producing a CompleteClassDefExpr when there are no generic parameters, or
// a GenericClassDefExpr otherwise.
func (p *parser) parseClassDef() ast.ExprStmt {
	start := p.expect(token.CLASS)
	name := p.expect(token.IDENT)
	genericParams := p.parseGenericParamNames()

	p.expect(token.LBRACE)
	var fields []*ast.FieldDecl
	var methods []*ast.FuncDefExpr
	for !p.at(token.RBRACE, token.EOF) {
		if p.tok.Kind == token.FUNC {
			methods = append(methods, p.parseFuncDef())
			continue
		}
		fname := p.expect(token.IDENT)
		p.expect(token.COLON)
		ftype := p.parseTypeRef()
		p.expect(token.SEMI)
		fields = append(fields, &ast.FieldDecl{Name: fname.Text, Type: ftype})
	}
	rb := p.expect(token.RBRACE)
	span := start.Span.Join(rb.Span)

	if len(genericParams) == 0 {
		return ast.NewCompleteClassDefExpr(span, name.Text, fields, methods)
	}
	return ast.NewGenericClassDefExpr(span, name.Text, genericParams, fields, methods)
}

func (p *parser) parseNamespace() *ast.NamespaceExpr {
	start := p.expect(token.NAMESPACE)
	name := p.expect(token.IDENT)
	p.expect(token.LBRACE)
	body := p.parseStmtList(token.RBRACE)
	rb := p.expect(token.RBRACE)
	return ast.NewNamespaceExpr(start.Span.Join(rb.Span), name.Text, body)
}

// parseTemplate parses `template Name '<' params '>' (funcdef | classdef)`.
func (p *parser) parseTemplate() *ast.NamedTemplateExpr {
	start := p.expect(token.TEMPLATE)
	name := p.expect(token.IDENT)
	params := p.parseGenericParamNames()

	var body ast.ExprStmt
	switch p.tok.Kind {
	case token.FUNC:
		body = p.parseFuncDef()
	case token.CLASS:
		body = p.parseClassDef()
	default:
		p.error(p.tok.Span, diag.UnexpectedToken, "expected func or class, found %s", p.tok.Kind)
		panic(errPanic)
	}
	return ast.NewNamedTemplateExpr(start.Span.Join(body.Span()), name.Text, params, body)
}

// parseExpand parses `expand name::qualified::chain '<' TypeArgs '>'`, the
// explicit use site of a named template (spec.md §4.6).
func (p *parser) parseExpand() *ast.TemplateExpansionExpr {
	start := p.expect(token.EXPAND)
	ref := p.parseVariableRef()
	p.expect(token.LT)
	var args []ast.TypeRef
	for !p.at(token.GT, token.EOF) {
		args = append(args, p.parseTypeRef())
		if p.tok.Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	end := p.expect(token.GT)
	return ast.NewTemplateExpansionExpr(start.Span.Join(end.Span), ref.Name, args)
}

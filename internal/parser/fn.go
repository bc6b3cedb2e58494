package parser

import (
	"calc/internal/diag"
	"calc/internal/ir"
	"calc/internal/source"
	"calc/internal/token"
)

// fn <name>(<params,...>) = <body>
func (p *Parser) parseFunction() (ir.Statement, bool) {
	kw := p.advance()

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name after `fn`")
	if !ok {
		return ir.Statement{}, false
	}
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected `(` after function name")
	if !ok {
		return ir.Statement{}, false
	}
	params, ok := p.parseParams()
	if !ok {
		return ir.Statement{}, false
	}
	if !p.closeParen(open.Span, "parameter list") {
		return ir.Statement{}, false
	}
	name := ir.InternFunction(p.db, nameTok.Text)
	if _, ok := p.expect(token.Assign, diag.SynExpectAssign, "expected `=` before function body"); !ok {
		return p.brokenFunction(kw, name, nameTok, params), false
	}
	body, ok := p.parseExpr()
	if !ok {
		return p.brokenFunction(kw, name, nameTok, params), false
	}

	fn := ir.NewFunction(p.db, name, nameTok.Span, params, body)
	return ir.Statement{
		Span: kw.Span.Cover(body.Span),
		Data: ir.FunctionStmt{Function: fn},
	}, true
}

// brokenFunction keeps a function whose header parsed but whose body did
// not, so calls to it are still checked against its arity. The body is an
// empty ErrorExpr placed after the last consumed token.
func (p *Parser) brokenFunction(kw token.Token, name ir.FunctionID, nameTok token.Token, params []ir.VariableID) ir.Statement {
	end := p.lastSpan.End
	body := ir.Expression{Span: source.Span{Start: end, End: end}, Data: ir.ErrorExpr{}}
	fn := ir.NewFunction(p.db, name, nameTok.Span, params, body)
	return ir.Statement{
		Span: kw.Span.Cover(p.lastSpan),
		Data: ir.FunctionStmt{Function: fn},
	}
}

// parseParams разбирает `a, b, c` до закрывающей скобки (не съедая её).
func (p *Parser) parseParams() ([]ir.VariableID, bool) {
	var params []ir.VariableID
	if p.at(token.RParen) {
		return params, true
	}
	for {
		tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name")
		if !ok {
			return nil, false
		}
		params = append(params, ir.InternVariable(p.db, tok.Text))
		if !p.at(token.Comma) {
			return params, true
		}
		p.advance()
	}
}

package parser

import (
	"strconv"

	"calc/internal/diag"
	"calc/internal/ir"
	"calc/internal/source"
	"calc/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() (ir.Expression, bool) {
	return p.parseBinaryExpr(precAdditive)
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ir.Expression, bool) {
	left, ok := p.parsePrimary()
	if !ok {
		return ir.Expression{}, false
	}
	for {
		op, prec := binaryOp(p.lx.Peek().Kind)
		if prec < minPrec {
			return left, true
		}
		p.advance()

		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return ir.Expression{}, false
		}
		left = ir.Expression{
			Span: left.Span.Cover(right.Span),
			Data: ir.BinaryExpr{Op: op, Left: left, Right: right},
		}
	}
}

func (p *Parser) parsePrimary() (ir.Expression, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Number:
		p.advance()
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			// переполнение даёт ±Inf, это допустимый литерал
			if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
				p.report(diag.LexBadNumber, tok.Span, "invalid number literal `"+tok.Text+"`")
				return ir.Expression{}, false
			}
		}
		return ir.Expression{Span: tok.Span, Data: ir.NumberExpr{Value: ir.Number(v)}}, true

	case token.Ident:
		p.advance()
		if p.at(token.LParen) {
			return p.parseCall(tok)
		}
		return ir.Expression{
			Span: tok.Span,
			Data: ir.VariableExpr{Name: ir.InternVariable(p.db, tok.Text)},
		}, true

	case token.LParen:
		open := p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ir.Expression{}, false
		}
		if !p.closeParen(open.Span, "parenthesized expression") {
			return ir.Expression{}, false
		}
		inner.Span = open.Span.Cover(p.lastSpan)
		return inner, true

	case token.Invalid:
		// лексер уже отрепортил
		p.advance()
		return ir.Expression{}, false

	default:
		p.report(diag.SynExpectExpression, p.getDiagnosticSpan(), "expected expression, found "+describe(tok))
		return ir.Expression{}, false
	}
}

// <name>(<args,...>); имя уже съедено, текущий токен, '('.
func (p *Parser) parseCall(name token.Token) (ir.Expression, bool) {
	open := p.advance()
	var args []ir.Expression
	if !p.at(token.RParen) {
		for {
			arg, ok := p.parseExpr()
			if !ok {
				return ir.Expression{}, false
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	if !p.closeParen(open.Span, "argument list") {
		return ir.Expression{}, false
	}
	return ir.Expression{
		Span: name.Span.Cover(p.lastSpan),
		Data: ir.CallExpr{Name: ir.InternFunction(p.db, name.Text), Args: args},
	}, true
}

// closeParen съедает ')' или репортит незакрытую скобку с заметкой на открывающую.
func (p *Parser) closeParen(open source.Span, what string) bool {
	if p.at(token.RParen) {
		p.advance()
		return true
	}
	sp := p.getDiagnosticSpan()
	p.rep.Report(diag.SynUnclosedParen, diag.SevError, sp,
		"expected `)` to close "+what+", found "+describe(p.lx.Peek()),
		[]diag.Note{{Span: open, Msg: "opening `(` is here"}})
	return false
}

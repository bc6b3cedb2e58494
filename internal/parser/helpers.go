package parser

import (
	"calc/internal/diag"
	"calc/internal/source"
	"calc/internal/token"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan: возвращает лучший span для диагностики.
// На EOF указываем сразу за последним съеденным токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет, репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	if p.at(token.Invalid) {
		// лексер уже отрепортил этот токен
		return token.Token{Kind: token.Invalid, Span: p.lx.Peek().Span}, false
	}
	sp := p.getDiagnosticSpan()
	p.report(code, sp, msg+", found "+describe(p.lx.Peek()))
	return token.Token{Kind: token.Invalid, Span: sp, Text: p.lx.Peek().Text}, false
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(p.rep, code, sp, msg)
}

// describe: человекочитаемое имя токена для сообщений.
func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.Number, token.Ident, token.Invalid:
		return "`" + tok.Text + "`"
	default:
		return "`" + tok.Kind.String() + "`"
	}
}

package parser

import (
	"calc/internal/diag"
	"calc/internal/ir"
	"calc/internal/lexer"
	"calc/internal/query"
	"calc/internal/source"
	"calc/internal/token"
)

var parseStatements = query.NewQuery("parse_statements", func(db *query.Database, src ir.SourceProgram) ir.Program {
	rep := ir.Reporter{DB: db}
	p := Parser{
		db:  db,
		lx:  lexer.New([]byte(src.Text(db)), lexer.Options{Reporter: rep}),
		rep: rep,
	}
	return ir.NewProgram(db, p.parseStatements())
})

// ParseStatements parses the source program into a Program. Syntax errors
// are pushed to ir.Diagnostics; statements around them are still returned.
func ParseStatements(db *query.Database, src ir.SourceProgram) ir.Program {
	return parseStatements.Get(db, src)
}

// Parser: состояние парсера на один исходник
type Parser struct {
	db       *query.Database
	lx       *lexer.Lexer
	rep      diag.Reporter
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

// parseStatements крутит parseStatement до EOF. Сломанный statement
// может вернуть частичный результат вместе с ok=false.
func (p *Parser) parseStatements() []ir.Statement {
	var out []ir.Statement
	for !p.at(token.EOF) {
		st, ok := p.parseStatement()
		if st.Data != nil {
			out = append(out, st)
		}
		if !ok {
			p.resyncTop()
		}
	}
	return out
}

func (p *Parser) parseStatement() (ir.Statement, bool) {
	switch tok := p.lx.Peek(); tok.Kind {
	case token.KwFn:
		return p.parseFunction()
	case token.KwPrint:
		return p.parsePrint()
	case token.Invalid:
		// лексер уже отрепортил
		p.advance()
		return ir.Statement{}, false
	default:
		p.report(diag.SynUnexpectedTopLevel, tok.Span, "expected `fn` or `print`, found "+describe(tok))
		return ir.Statement{}, false
	}
}

// resyncTop: восстановление после ошибки: прокручиваем до следующего
// `fn`/`print` или EOF. Сам стартер не съедаем.
func (p *Parser) resyncTop() {
	for !p.lx.Peek().Kind.IsStatementStart() && !p.at(token.EOF) {
		p.advance()
	}
}

// print <expr>
func (p *Parser) parsePrint() (ir.Statement, bool) {
	kw := p.advance()
	expr, ok := p.parseExpr()
	if !ok {
		return ir.Statement{}, false
	}
	return ir.Statement{
		Span: kw.Span.Cover(expr.Span),
		Data: ir.PrintStmt{Expr: expr},
	}, true
}

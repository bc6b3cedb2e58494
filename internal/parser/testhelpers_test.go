package parser

import (
	"testing"

	"calc/internal/diag"
	"calc/internal/ir"
	"calc/internal/query"
	"calc/internal/source"
)

type parsed struct {
	db    *query.Database
	src   ir.SourceProgram
	prog  ir.Program
	diags []diag.Diagnostic
}

func parseSource(t *testing.T, text string) parsed {
	t.Helper()
	db := query.New()
	src := ir.NewSourceProgram(db, text)
	prog := ParseStatements(db, src)
	return parsed{
		db:    db,
		src:   src,
		prog:  prog,
		diags: query.Accumulated(db, ir.Diagnostics, parseStatements, src),
	}
}

func (p parsed) statements() []ir.Statement {
	return p.prog.Statements(p.db)
}

// onlyPrint parses a single print statement and returns its expression.
func onlyPrint(t *testing.T, text string) (parsed, ir.Expression) {
	t.Helper()
	p := parseSource(t, text)
	if len(p.diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", p.diags)
	}
	stmts := p.statements()
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	pr, ok := stmts[0].Data.(ir.PrintStmt)
	if !ok {
		t.Fatalf("statement is %T, want PrintStmt", stmts[0].Data)
	}
	return p, pr.Expr
}

func wantBinary(t *testing.T, e ir.Expression, op ir.Op) ir.BinaryExpr {
	t.Helper()
	b, ok := e.Data.(ir.BinaryExpr)
	if !ok {
		t.Fatalf("expression is %T, want BinaryExpr", e.Data)
	}
	if b.Op != op {
		t.Fatalf("op = %s, want %s", b.Op, op)
	}
	return b
}

func wantNumber(t *testing.T, e ir.Expression, v float64) {
	t.Helper()
	n, ok := e.Data.(ir.NumberExpr)
	if !ok {
		t.Fatalf("expression is %T, want NumberExpr", e.Data)
	}
	if float64(n.Value) != v {
		t.Fatalf("number = %s, want %g", n.Value, v)
	}
}

func span(start, end int) source.Span {
	return source.SpanOf(start, end)
}

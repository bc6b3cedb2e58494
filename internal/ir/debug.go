package ir

import (
	"fmt"
	"strings"

	"calc/internal/query"
)

// Dump renders program as an indented tree with names resolved and spans shown.
func Dump(db *query.Database, program Program) string {
	var b strings.Builder
	b.WriteString("Program\n")
	for _, st := range program.Statements(db) {
		dumpStatement(&b, db, st)
	}
	return b.String()
}

func dumpStatement(b *strings.Builder, db *query.Database, st Statement) {
	switch d := st.Data.(type) {
	case FunctionStmt:
		fn := d.Function
		params := make([]string, 0, len(fn.Params(db)))
		for _, p := range fn.Params(db) {
			params = append(params, p.Text(db))
		}
		fmt.Fprintf(b, "  Function %s(%s) @%s name@%s\n",
			fn.Name(db).Text(db), strings.Join(params, ", "), st.Span, fn.NameSpan(db))
		dumpExpr(b, db, fn.Body(db), 2)
	case PrintStmt:
		fmt.Fprintf(b, "  Print @%s\n", st.Span)
		dumpExpr(b, db, d.Expr, 2)
	}
}

func dumpExpr(b *strings.Builder, db *query.Database, e Expression, depth int) {
	indent := strings.Repeat("  ", depth)
	switch d := e.Data.(type) {
	case BinaryExpr:
		fmt.Fprintf(b, "%sBinary %s @%s\n", indent, d.Op, e.Span)
		dumpExpr(b, db, d.Left, depth+1)
		dumpExpr(b, db, d.Right, depth+1)
	case NumberExpr:
		fmt.Fprintf(b, "%sNumber %s @%s\n", indent, d.Value, e.Span)
	case VariableExpr:
		fmt.Fprintf(b, "%sVariable %s @%s\n", indent, d.Name.Text(db), e.Span)
	case CallExpr:
		fmt.Fprintf(b, "%sCall %s @%s\n", indent, d.Name.Text(db), e.Span)
		for _, arg := range d.Args {
			dumpExpr(b, db, arg, depth+1)
		}
	case ErrorExpr:
		fmt.Fprintf(b, "%sError @%s\n", indent, e.Span)
	default:
		fmt.Fprintf(b, "%s<invalid> @%s\n", indent, e.Span)
	}
}

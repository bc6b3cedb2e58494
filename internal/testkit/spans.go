// Package testkit holds checks shared by tests of several packages.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"calc/internal/ir"
	"calc/internal/query"
	"calc/internal/source"
)

// CheckSpanInvariants verifies the spans of a parsed program:
// 1) every statement span is non-empty and lies within the text
// 2) statements appear in source order and do not overlap
// 3) every expression span lies within its parent, and a function's
// name and body lie within the function statement
func CheckSpanInvariants(db *query.Database, prog ir.Program, text string) error {
	size, err := safecast.Conv[uint32](len(text))
	if err != nil {
		return fmt.Errorf("text length overflow: %w", err)
	}
	var prevEnd uint32
	for i, st := range prog.Statements(db) {
		sp := st.Span
		if sp.Empty() {
			return fmt.Errorf("statement %d: empty span %v", i, sp)
		}
		if sp.End > size {
			return fmt.Errorf("statement %d: span %v beyond text end %d", i, sp, size)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("statement %d: span %v overlaps previous statement ending at %d", i, sp, prevEnd)
		}
		prevEnd = sp.End

		switch data := st.Data.(type) {
		case ir.PrintStmt:
			if err := checkExpr(sp, data.Expr); err != nil {
				return fmt.Errorf("statement %d: %w", i, err)
			}
		case ir.FunctionStmt:
			fn := data.Function
			if name := fn.NameSpan(db); !sp.Contains(name) {
				return fmt.Errorf("statement %d: name span %v outside %v", i, name, sp)
			}
			if err := checkExpr(sp, fn.Body(db)); err != nil {
				return fmt.Errorf("statement %d: %w", i, err)
			}
		default:
			return fmt.Errorf("statement %d: unknown statement %T", i, st.Data)
		}
	}
	return nil
}

func checkExpr(parent source.Span, e ir.Expression) error {
	if e.Data == nil {
		return fmt.Errorf("expression at %v has no data", e.Span)
	}
	if _, isErr := e.Data.(ir.ErrorExpr); e.Span.Empty() && !isErr {
		return fmt.Errorf("empty expression span %v", e.Span)
	}
	if !parent.Contains(e.Span) {
		return fmt.Errorf("expression span %v outside parent %v", e.Span, parent)
	}
	switch d := e.Data.(type) {
	case ir.BinaryExpr:
		if err := checkExpr(e.Span, d.Left); err != nil {
			return err
		}
		if err := checkExpr(e.Span, d.Right); err != nil {
			return err
		}
		if d.Left.Span.End > d.Right.Span.Start {
			return fmt.Errorf("operands %v and %v out of order", d.Left.Span, d.Right.Span)
		}
	case ir.CallExpr:
		for _, arg := range d.Args {
			if err := checkExpr(e.Span, arg); err != nil {
				return err
			}
		}
	}
	return nil
}

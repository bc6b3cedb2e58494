package ir

import "calc/internal/source"

// Statement is one top-level item of a program.
type Statement struct {
	Span source.Span
	Data StatementData
}

// StatementData is implemented by FunctionStmt and PrintStmt.
type StatementData interface {
	isStatementData()
}

// FunctionStmt declares a function; its contents live in the tracked Function.
type FunctionStmt struct {
	Function Function
}

// PrintStmt prints the value of an expression.
type PrintStmt struct {
	Expr Expression
}

func (FunctionStmt) isStatementData() {}
func (PrintStmt) isStatementData()    {}

// Equal compares statements structurally. Functions compare by identity;
// their fields are tracked separately.
func (s Statement) Equal(other Statement) bool {
	if s.Span != other.Span {
		return false
	}
	switch a := s.Data.(type) {
	case FunctionStmt:
		b, ok := other.Data.(FunctionStmt)
		return ok && a.Function == b.Function
	case PrintStmt:
		b, ok := other.Data.(PrintStmt)
		return ok && a.Expr.Equal(b.Expr)
	default:
		panic("ir: unknown statement variant")
	}
}

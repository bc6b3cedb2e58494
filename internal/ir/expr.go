package ir

import (
	"cmp"
	"slices"
	"strconv"

	"calc/internal/source"
)

// Op is a binary arithmetic operator. Not evaluated at this layer.
type Op uint8

const (
	OpAdd Op = iota
	OpSubtract
	OpMultiply
	OpDivide
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	default:
		return "Op(" + strconv.Itoa(int(op)) + ")"
	}
}

// Number is a float literal with a total order: NaN equals NaN and -0 equals 0,
// so expressions stay comparable.
type Number float64

func (n Number) Compare(other Number) int {
	return cmp.Compare(float64(n), float64(other))
}

func (n Number) Equal(other Number) bool {
	return n.Compare(other) == 0
}

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

// Expression pairs a source span with one of the expression variants.
type Expression struct {
	Span source.Span
	Data ExprData
}

// ExprData is implemented by BinaryExpr, NumberExpr, VariableExpr, CallExpr
// and ErrorExpr.
type ExprData interface {
	isExprData()
}

type BinaryExpr struct {
	Op    Op
	Left  Expression
	Right Expression
}

type NumberExpr struct {
	Value Number
}

type VariableExpr struct {
	Name VariableID
}

type CallExpr struct {
	Name FunctionID
	Args []Expression
}

// ErrorExpr stands in for a function body that failed to parse. The
// function stays declared so its callers still resolve; the syntax error
// has already been reported.
type ErrorExpr struct{}

func (BinaryExpr) isExprData()   {}
func (NumberExpr) isExprData()   {}
func (VariableExpr) isExprData() {}
func (CallExpr) isExprData()     {}
func (ErrorExpr) isExprData()    {}

// Equal compares two expression trees structurally, spans included.
func (e Expression) Equal(other Expression) bool {
	if e.Span != other.Span {
		return false
	}
	switch a := e.Data.(type) {
	case BinaryExpr:
		b, ok := other.Data.(BinaryExpr)
		return ok && a.Op == b.Op && a.Left.Equal(b.Left) && a.Right.Equal(b.Right)
	case NumberExpr:
		b, ok := other.Data.(NumberExpr)
		return ok && a.Value.Equal(b.Value)
	case VariableExpr:
		b, ok := other.Data.(VariableExpr)
		return ok && a.Name == b.Name
	case CallExpr:
		b, ok := other.Data.(CallExpr)
		return ok && a.Name == b.Name && slices.EqualFunc(a.Args, b.Args, Expression.Equal)
	case ErrorExpr:
		_, ok := other.Data.(ErrorExpr)
		return ok
	case nil:
		return other.Data == nil
	default:
		panic("ir: unknown expression variant")
	}
}

// Walk calls visit for e and then for each sub-expression, left to right.
func (e Expression) Walk(visit func(Expression)) {
	visit(e)
	switch d := e.Data.(type) {
	case BinaryExpr:
		d.Left.Walk(visit)
		d.Right.Walk(visit)
	case CallExpr:
		for _, arg := range d.Args {
			arg.Walk(visit)
		}
	}
}

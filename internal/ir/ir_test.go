package ir

import (
	"math"
	"strings"
	"testing"

	"calc/internal/diag"
	"calc/internal/query"
	"calc/internal/source"
)

func TestInterningIsIdentity(t *testing.T) {
	db := query.New()
	foo := InternFunction(db, "foo")
	if foo != InternFunction(db, "foo") {
		t.Error("intern(foo) must be stable")
	}
	if foo == InternFunction(db, "bar") {
		t.Error("intern(foo) and intern(bar) must differ")
	}
	if got := foo.Text(db); got != "foo" {
		t.Errorf("Text = %q", got)
	}
	// variable and function tables are separate
	if v := InternVariable(db, "foo"); v.Text(db) != "foo" {
		t.Errorf("variable Text = %q", v.Text(db))
	}
}

func TestNumberTotalOrder(t *testing.T) {
	nan := Number(math.NaN())
	if !nan.Equal(nan) {
		t.Error("NaN must equal NaN")
	}
	if !Number(0).Equal(Number(math.Copysign(0, -1))) {
		t.Error("0 must equal -0")
	}
	if Number(1).Compare(Number(2)) >= 0 {
		t.Error("1 must sort before 2")
	}
}

func num(start, end int, v float64) Expression {
	return Expression{Span: source.SpanOf(start, end), Data: NumberExpr{Value: Number(v)}}
}

func TestExpressionEqual(t *testing.T) {
	a := Expression{Span: source.SpanOf(0, 5), Data: BinaryExpr{Op: OpAdd, Left: num(0, 1, 1), Right: num(4, 5, 2)}}
	b := Expression{Span: source.SpanOf(0, 5), Data: BinaryExpr{Op: OpAdd, Left: num(0, 1, 1), Right: num(4, 5, 2)}}
	if !a.Equal(b) {
		t.Error("identical trees must be equal")
	}
	c := Expression{Span: source.SpanOf(0, 5), Data: BinaryExpr{Op: OpSubtract, Left: num(0, 1, 1), Right: num(4, 5, 2)}}
	if a.Equal(c) {
		t.Error("different operators must not be equal")
	}
	d := Expression{Span: source.SpanOf(0, 5), Data: CallExpr{Name: 1, Args: []Expression{num(2, 3, 1)}}}
	if a.Equal(d) || d.Equal(a) {
		t.Error("different variants must not be equal")
	}
}

func TestExpressionWalkOrder(t *testing.T) {
	e := Expression{Span: source.SpanOf(0, 9), Data: CallExpr{Args: []Expression{
		num(2, 3, 1),
		{Span: source.SpanOf(5, 8), Data: BinaryExpr{Op: OpMultiply, Left: num(5, 6, 2), Right: num(7, 8, 3)}},
	}}}
	var starts []uint32
	e.Walk(func(x Expression) { starts = append(starts, x.Span.Start) })
	want := []uint32{0, 2, 5, 5, 7}
	if len(starts) != len(want) {
		t.Fatalf("visited %v, want %v", starts, want)
	}
	for i := range want {
		if starts[i] != want[i] {
			t.Fatalf("visited %v, want %v", starts, want)
		}
	}
}

var buildProgram = query.NewQuery("build_program", func(db *query.Database, src SourceProgram) Program {
	f := InternFunction(db, "double")
	x := InternVariable(db, "x")
	body := Expression{Span: source.SpanOf(15, 20), Data: BinaryExpr{
		Op:    OpMultiply,
		Left:  Expression{Span: source.SpanOf(15, 16), Data: VariableExpr{Name: x}},
		Right: num(19, 20, 2),
	}}
	fn := NewFunction(db, f, source.SpanOf(3, 9), []VariableID{x}, body)
	text := src.Text(db)
	Diagnostics.Push(db, diag.NewError(diag.SynUnexpectedToken, source.SpanOf(0, len(text)), text))
	return NewProgram(db, []Statement{{Span: source.SpanOf(0, len(text)), Data: FunctionStmt{Function: fn}}})
})

func TestDumpRendersNames(t *testing.T) {
	db := query.New()
	src := NewSourceProgram(db, "fn double(x) = x * 2")
	program := buildProgram.Get(db, src)

	out := Dump(db, program)
	for _, want := range []string{
		"Function double(x) @0..20 name@3..9",
		"    Binary * @15..20",
		"      Variable x @15..16",
		"      Number 2 @19..20",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
	if got := query.Accumulated(db, Diagnostics, buildProgram, src); len(got) != 1 || got[0].Message != "fn double(x) = x * 2" {
		t.Errorf("accumulated = %v", got)
	}
}

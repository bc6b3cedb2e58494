package check

import (
	"fmt"

	"calc/internal/diag"
	"calc/internal/ir"
	"calc/internal/query"
)

type functionKey struct {
	Fn      ir.Function
	Program ir.Program
}

func (k functionKey) String() string { return fmt.Sprintf("%s in %s", k.Fn, k.Program) }

var typeCheckProgram = query.NewQuery("type_check_program", func(db *query.Database, program ir.Program) struct{} {
	for _, st := range program.Statements(db) {
		switch d := st.Data.(type) {
		case ir.FunctionStmt:
			TypeCheckFunction(db, d.Function, program)
		case ir.PrintStmt:
			checkExpr(db, program, d.Expr)
		default:
			panic(fmt.Sprintf("check: unexpected statement %T", st.Data))
		}
	}
	return struct{}{}
})

var typeCheckFunction = query.NewQuery("type_check_function", func(db *query.Database, k functionKey) struct{} {
	checkExpr(db, k.Program, k.Fn.Body(db))
	return struct{}{}
})

// TypeCheckProgram checks every statement of program. Each function is
// checked by its own query.
func TypeCheckProgram(db *query.Database, program ir.Program) {
	typeCheckProgram.Get(db, program)
}

// TypeCheckFunction checks the calls in the body of fn against program.
func TypeCheckFunction(db *query.Database, fn ir.Function, program ir.Program) {
	typeCheckFunction.Get(db, functionKey{Fn: fn, Program: program})
}

// checkExpr validates every call inside e, reporting one diagnostic per bad call site.
func checkExpr(db *query.Database, program ir.Program, e ir.Expression) {
	e.Walk(func(x ir.Expression) {
		call, ok := x.Data.(ir.CallExpr)
		if !ok {
			return
		}
		checkCall(db, program, x, call)
	})
}

func checkCall(db *query.Database, program ir.Program, at ir.Expression, call ir.CallExpr) {
	rep := ir.Reporter{DB: db}
	name := call.Name.Text(db)

	ar := FunctionArity(db, program, call.Name)
	if !ar.Found {
		diag.ReportError(rep, diag.SemaUndefinedFunction, at.Span,
			fmt.Sprintf("undefined function `%s`", name))
		return
	}
	if len(call.Args) == ar.Params {
		return
	}
	rep.Report(diag.SemaArityMismatch, diag.SevError, at.Span,
		fmt.Sprintf("function `%s` expects %s, but %s given",
			name, plural(ar.Params, "argument"), wasWere(len(call.Args))),
		[]diag.Note{{Span: ar.Fn.NameSpan(db), Msg: fmt.Sprintf("`%s` is declared here", name)}})
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func wasWere(n int) string {
	if n == 1 {
		return "1 was"
	}
	return fmt.Sprintf("%d were", n)
}

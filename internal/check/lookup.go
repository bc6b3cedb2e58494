package check

import (
	"fmt"

	"calc/internal/ir"
	"calc/internal/query"
)

type lookupKey struct {
	Program ir.Program
	Name    ir.FunctionID
}

func (k lookupKey) String() string { return fmt.Sprintf("%s, %s", k.Program, k.Name) }

type lookupResult struct {
	Fn    ir.Function
	Found bool
}

// Arity describes the function a call site resolves to.
type Arity struct {
	Fn     ir.Function
	Params int
	Found  bool
}

var findFunction = query.NewQuery("find_function", func(db *query.Database, k lookupKey) lookupResult {
	for _, st := range k.Program.Statements(db) {
		fs, ok := st.Data.(ir.FunctionStmt)
		if !ok {
			continue
		}
		// при дубликатах побеждает первое определение
		if fs.Function.Name(db) == k.Name {
			return lookupResult{Fn: fs.Function, Found: true}
		}
	}
	return lookupResult{}
})

var functionArity = query.NewQuery("function_arity", func(db *query.Database, k lookupKey) Arity {
	res := findFunction.Get(db, k)
	if !res.Found {
		return Arity{}
	}
	return Arity{Fn: res.Fn, Params: len(res.Fn.Params(db)), Found: true}
})

// FindFunction returns the first top-level function of program named name,
// in statement order.
func FindFunction(db *query.Database, program ir.Program, name ir.FunctionID) (ir.Function, bool) {
	res := findFunction.Get(db, lookupKey{Program: program, Name: name})
	return res.Fn, res.Found
}

// FunctionArity resolves name like FindFunction and reports its parameter
// count. The result only changes when the resolved function or its arity
// does, so callers survive unrelated edits.
func FunctionArity(db *query.Database, program ir.Program, name ir.FunctionID) Arity {
	return functionArity.Get(db, lookupKey{Program: program, Name: name})
}

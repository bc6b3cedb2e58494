package driver

import (
	"calc/internal/check"
	"calc/internal/diag"
	"calc/internal/ir"
	"calc/internal/parser"
	"calc/internal/query"
)

var compile = query.NewQuery("compile", func(db *query.Database, src ir.SourceProgram) ir.Program {
	program := parser.ParseStatements(db, src)
	check.TypeCheckProgram(db, program)
	return program
})

// Compile parses and checks src, returning the parsed program.
func Compile(db *query.Database, src ir.SourceProgram) ir.Program {
	return compile.Get(db, src)
}

// Diagnostics returns everything reported while compiling src: parser
// diagnostics first, then checker diagnostics, in execution order.
func Diagnostics(db *query.Database, src ir.SourceProgram) []diag.Diagnostic {
	return query.Accumulated(db, ir.Diagnostics, compile, src)
}

package ir

import (
	"fmt"
	"slices"

	"calc/internal/query"
	"calc/internal/source"
)

var sourcePrograms = query.NewInput[string]("SourceProgram")

// SourceProgram is the input holding the raw program text.
type SourceProgram struct {
	id query.ID
}

// NewSourceProgram registers text as a new input. Call it from the host, not from a query.
func NewSourceProgram(db *query.Database, text string) SourceProgram {
	return SourceProgram{id: sourcePrograms.New(db, text)}
}

// Text reads the program text, recording a dependency.
func (s SourceProgram) Text(db *query.Database) string {
	return sourcePrograms.Get(db, s.id)
}

// SetText replaces the program text and starts a new revision.
func (s SourceProgram) SetText(db *query.Database, text string) {
	sourcePrograms.Set(db, s.id, text)
}

func (s SourceProgram) String() string { return fmt.Sprintf("SourceProgram#%d", s.id) }

type programFields struct {
	statements []Statement
}

var programs = query.NewTracked("Program", func(a, b programFields) bool {
	return slices.EqualFunc(a.statements, b.statements, Statement.Equal)
})

// Program is the parsed statement list of one source program.
type Program struct {
	id query.ID
}

// NewProgram creates the program of the executing query. A query creates at most one.
func NewProgram(db *query.Database, statements []Statement) Program {
	return Program{id: programs.New(db, nil, programFields{statements: statements})}
}

// Statements returns the statements in source order. The slice must not be modified.
func (p Program) Statements(db *query.Database) []Statement {
	return programs.Get(db, p.id).statements
}

func (p Program) String() string { return fmt.Sprintf("Program#%d", p.id) }

type functionFields struct {
	name     FunctionID
	nameSpan source.Span
	params   []VariableID
	body     Expression
}

var functions = query.NewTracked("Function", func(a, b functionFields) bool {
	return a.name == b.name &&
		a.nameSpan == b.nameSpan &&
		slices.Equal(a.params, b.params) &&
		a.body.Equal(b.body)
})

// Function is a function definition. It is identified by its name within the
// creating parse, so edits elsewhere in the source keep its identity.
type Function struct {
	id query.ID
}

// NewFunction creates a function inside the executing query.
func NewFunction(db *query.Database, name FunctionID, nameSpan source.Span, params []VariableID, body Expression) Function {
	return Function{id: functions.New(db, name, functionFields{
		name:     name,
		nameSpan: nameSpan,
		params:   params,
		body:     body,
	})}
}

func (f Function) Name(db *query.Database) FunctionID {
	return functions.Get(db, f.id).name
}

func (f Function) NameSpan(db *query.Database) source.Span {
	return functions.Get(db, f.id).nameSpan
}

// Params returns the parameters in declaration order. The slice must not be modified.
func (f Function) Params(db *query.Database) []VariableID {
	return functions.Get(db, f.id).params
}

func (f Function) Body(db *query.Database) Expression {
	return functions.Get(db, f.id).body
}

func (f Function) String() string { return fmt.Sprintf("Function#%d", f.id) }

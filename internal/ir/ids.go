package ir

import (
	"fmt"

	"calc/internal/query"
	"calc/internal/source"
)

var (
	variableNames = query.NewInternTable("VariableId")
	functionNames = query.NewInternTable("FunctionId")
)

// VariableID is an interned variable name.
type VariableID source.StringID

// FunctionID is an interned function name.
type FunctionID source.StringID

// InternVariable returns the token for text; equal text gives equal tokens.
func InternVariable(db *query.Database, text string) VariableID {
	return VariableID(variableNames.Intern(db, text))
}

// InternFunction returns the token for text; equal text gives equal tokens.
func InternFunction(db *query.Database, text string) FunctionID {
	return FunctionID(functionNames.Intern(db, text))
}

// Text resolves the name behind id.
func (id VariableID) Text(db *query.Database) string {
	return variableNames.Lookup(db, source.StringID(id))
}

// Text resolves the name behind id.
func (id FunctionID) Text(db *query.Database) string {
	return functionNames.Lookup(db, source.StringID(id))
}

func (id VariableID) String() string { return fmt.Sprintf("var#%d", uint32(id)) }

func (id FunctionID) String() string { return fmt.Sprintf("fn#%d", uint32(id)) }

// Package ir holds the intermediate representation of calc programs.
//
// Everything here lives inside a query.Database: SourceProgram is an input,
// Program and Function are tracked structs created by the parser, and the
// identifier types are interned per database. Statement and Expression are
// plain values compared structurally.
package ir

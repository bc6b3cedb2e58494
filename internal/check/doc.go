// Package check validates call sites of a parsed program.
//
// The only rule is arity: every call must name a top-level function and pass
// as many arguments as it declares parameters. Problems go to ir.Diagnostics.
// Checking is split into per-function queries so that editing one function
// re-checks that function alone.
package check

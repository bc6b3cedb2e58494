// Package diag defines the diagnostic model shared by the lexer, parser and
// type checker.
//
// A Diagnostic is a plain value: severity, a stable numeric Code, a short
// human oriented Message and the Primary span it points at. Optional Notes
// add secondary spans ("function declared here").
//
// Producers never format or print. They emit through a Reporter; BagReporter
// collects into a Bag for hosts that want a capped list, and the query layer
// adapts Reporter onto its accumulator so diagnostics travel with the query
// that produced them.
//
// Rendering lives in internal/diagfmt.
package diag

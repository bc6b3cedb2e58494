// Package query is a demand-driven, memoizing computation engine.
//
// A Database owns every piece of state: input values, memoized query
// results, tracked structs, interned strings and accumulated side outputs.
// Descriptors (Input, Query, Tracked, Accumulator, InternTable) are plain
// package-level values; the storage behind each descriptor is created lazily
// per Database, so independent databases never share state.
//
// # Revisions
//
// Every input write advances the database revision. Each memo remembers the
// revision it was last verified at and the revision its value last changed
// at. A memo from an older revision is reused after deep verification:
// every dependency recorded during its last execution is brought up to date
// and asked whether it changed after the memo was verified. Only if one did
// is the query function re-run.
//
// # Backdating
//
// When a re-run produces a value equal to the previous one, the memo keeps
// its old changedAt revision. Dependents therefore see "unchanged" and skip
// their own re-execution. This is what confines the work after an edit to
// the queries whose inputs really differ.
//
// # Accumulators
//
// Accumulator values are side outputs attached to the execution that pushed
// them. Accumulated walks the dependency tree of a query invocation and
// returns the values in execution order. Memo hits never re-emit values and
// re-executions replace them.
//
// A Database is not safe for concurrent use.
package query

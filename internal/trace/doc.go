// Package trace records what the compiler does and when.
//
// Enable tracing via command-line flags:
//
//	calc check --trace=- --trace-level=detail prog.calc
//
// Implementations:
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: immediate write to a file or stderr (text or ndjson)
//   - RingTracer: keeps the last N events for crash dumps
//   - MultiTracer: fans out to several tracers
//
// Levels map onto event scopes: phase shows driver and pass boundaries,
// detail adds per-query executions, debug adds memo hits and verifications.
package trace

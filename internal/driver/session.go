package driver

import (
	"context"
	"fmt"

	"calc/internal/diag"
	"calc/internal/ir"
	"calc/internal/observ"
	"calc/internal/query"
	"calc/internal/source"
	"calc/internal/trace"
)

// Session owns one database and one source program, and recompiles it on demand.
type Session struct {
	db   *query.Database
	src  ir.SourceProgram
	file *source.File
}

// Result is the outcome of one Session.Run.
type Result struct {
	Program     ir.Program
	Diagnostics []diag.Diagnostic
	// Queries holds query counters accumulated during this run only.
	Queries query.Snapshot
	Timing  observ.Report
}

// NewSession starts a session for text; path is used for display only.
func NewSession(path, text string) *Session {
	db := query.New()
	file := source.NewFile(path, []byte(text))
	return &Session{
		db:   db,
		src:  ir.NewSourceProgram(db, file.Text()),
		file: file,
	}
}

// Edit replaces the source text. The next Run recomputes only what depends on the change.
func (s *Session) Edit(text string) {
	s.file = source.NewFile(s.file.Path, []byte(text))
	s.src.SetText(s.db, s.file.Text())
}

// Run compiles the current text. The tracer from ctx receives engine events.
func (s *Session) Run(ctx context.Context) Result {
	tracer := trace.FromContext(ctx)
	s.db.SetTracer(tracer)
	span := trace.Begin(tracer, trace.ScopeDriver, "session", 0).WithExtra("path", s.file.Path)

	before := s.db.TakeSnapshot()
	timer := observ.NewTimer()
	var res Result
	s.phase(timer, tracer, span.ID(), "compile", func() string {
		res.Program = Compile(s.db, s.src)
		return fmt.Sprintf("r%d", s.db.Revision())
	})
	s.phase(timer, tracer, span.ID(), "diagnostics", func() string {
		res.Diagnostics = Diagnostics(s.db, s.src)
		return fmt.Sprintf("%d found", len(res.Diagnostics))
	})
	res.Queries = s.db.Since(before)
	res.Timing = timer.Report()

	span.End(fmt.Sprintf("%d diagnostics", len(res.Diagnostics)))
	return res
}

// phase times fn and mirrors it as a pass span under parent.
func (s *Session) phase(timer *observ.Timer, tracer trace.Tracer, parent uint64, name string, fn func() string) {
	timer.Measure(name, func() string {
		pass := trace.BeginAt(tracer, trace.ScopePass, name, parent, uint64(s.db.Revision()))
		note := fn()
		pass.End(note)
		return note
	})
}

// File returns the current text with its line index, for rendering.
func (s *Session) File() *source.File {
	return s.file
}

// DB exposes the session database to hosts that query it directly.
func (s *Session) DB() *query.Database {
	return s.db
}

// Source returns the program input of the session.
func (s *Session) Source() ir.SourceProgram {
	return s.src
}

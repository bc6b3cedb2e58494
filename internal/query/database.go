package query

import (
	"fmt"

	"calc/internal/trace"
)

// Revision numbers database generations. Every input write starts a new one.
type Revision uint64

// ID is a handle into a descriptor's storage within one Database.
type ID uint32

// dep identifies one slot of one ingredient.
type dep struct {
	ing  uint32
	slot uint32
}

type accEntry struct {
	acc   any // *Accumulator[T]
	value any
	at    int // number of deps recorded when the value was pushed
}

// ingredient is the per-database storage behind a descriptor.
type ingredient interface {
	debugName(slot uint32) string
	// changedAfter brings slot up to date and reports whether its value
	// changed after rev.
	changedAfter(db *Database, slot uint32, rev Revision) bool
	// running reports whether slot is currently executing.
	running(slot uint32) bool
	// edges returns the dependencies and own accumulations of slot.
	edges(slot uint32) ([]dep, []accEntry)
}

type frame struct {
	key     dep
	deps    []dep
	seen    map[dep]struct{}
	acc     []accEntry
	created map[createdKey]int
	span    *trace.Span
}

type createdKey struct {
	ing   uint32
	disam any
}

// Database holds all inputs, memos and interned data of one compilation session.
type Database struct {
	rev         Revision
	ingredients []ingredient
	index       map[any]uint32
	stack       []*frame
	stats       map[string]*QueryStats
	tracer      trace.Tracer
}

// New creates an empty database at revision 1.
func New() *Database {
	return &Database{
		rev:    1,
		index:  make(map[any]uint32),
		stats:  make(map[string]*QueryStats),
		tracer: trace.Nop,
	}
}

// Revision returns the current revision.
func (db *Database) Revision() Revision {
	return db.rev
}

// SetTracer routes engine events to t; nil restores the no-op tracer.
func (db *Database) SetTracer(t trace.Tracer) {
	if t == nil {
		t = trace.Nop
	}
	db.tracer = t
}

// Tracer returns the tracer engine events go to.
func (db *Database) Tracer() trace.Tracer {
	return db.tracer
}

// Stats returns execution counters for the named query.
func (db *Database) Stats(name string) QueryStats {
	if st, ok := db.stats[name]; ok {
		return *st
	}
	return QueryStats{}
}

// AllStats returns a copy of the counters of every query that ran.
func (db *Database) AllStats() map[string]QueryStats {
	out := make(map[string]QueryStats, len(db.stats))
	for name, st := range db.stats {
		out[name] = *st
	}
	return out
}

func (db *Database) statsFor(name string) *QueryStats {
	st, ok := db.stats[name]
	if !ok {
		st = &QueryStats{}
		db.stats[name] = st
	}
	return st
}

// register returns the ingredient index of desc, creating storage with mk on first use.
func register[S ingredient](db *Database, desc any, mk func(idx uint32) S) (S, uint32) {
	if idx, ok := db.index[desc]; ok {
		s, ok := db.ingredients[idx].(S)
		if !ok {
			panic(fmt.Sprintf("query: descriptor %p registered with storage %T", desc, db.ingredients[idx]))
		}
		return s, idx
	}
	idx := uint32(len(db.ingredients))
	s := mk(idx)
	db.ingredients = append(db.ingredients, s)
	db.index[desc] = idx
	return s, idx
}

func (db *Database) top() *frame {
	if len(db.stack) == 0 {
		return nil
	}
	return db.stack[len(db.stack)-1]
}

func (db *Database) push(key dep, span *trace.Span) *frame {
	fr := &frame{key: key, seen: make(map[dep]struct{}), span: span}
	db.stack = append(db.stack, fr)
	return fr
}

func (db *Database) pop(fr *frame) {
	if db.top() != fr {
		panic("query: unbalanced execution stack")
	}
	db.stack = db.stack[:len(db.stack)-1]
}

// recordRead adds d to the dependencies of the executing query, if any.
func (db *Database) recordRead(d dep) {
	fr := db.top()
	if fr == nil {
		return
	}
	if _, ok := fr.seen[d]; ok {
		return
	}
	fr.seen[d] = struct{}{}
	fr.deps = append(fr.deps, d)
}

func (db *Database) requireOutsideQuery(op string) {
	if len(db.stack) > 0 {
		panic(fmt.Sprintf("query: %s called while %s is executing", op, db.describe(db.top().key)))
	}
}

func (db *Database) describe(d dep) string {
	return db.ingredients[d.ing].debugName(d.slot)
}

func (db *Database) parentSpanID() uint64 {
	if fr := db.top(); fr != nil && fr.span != nil {
		return fr.span.ID()
	}
	return 0
}

// walk visits accumulated values below d in execution order, each memo once.
func (db *Database) walk(d dep, visited map[dep]struct{}, visit func(accEntry)) {
	if _, ok := visited[d]; ok {
		return
	}
	visited[d] = struct{}{}
	deps, acc := db.ingredients[d.ing].edges(d.slot)
	ai := 0
	for i, child := range deps {
		for ai < len(acc) && acc[ai].at <= i {
			visit(acc[ai])
			ai++
		}
		db.walk(child, visited, visit)
	}
	for ; ai < len(acc); ai++ {
		visit(acc[ai])
	}
}

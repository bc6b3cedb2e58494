package query

import "fmt"

// Accumulator describes a side-output channel. Values pushed while a query
// executes belong to that execution.
type Accumulator[T any] struct {
	name string
}

// NewAccumulator returns an accumulator descriptor. Like queries, it is
// declared once at package level and shared by every Database.
func NewAccumulator[T any](name string) *Accumulator[T] {
	return &Accumulator[T]{name: name}
}

// Push appends v to the executing query's accumulated values.
func (a *Accumulator[T]) Push(db *Database, v T) {
	fr := db.top()
	if fr == nil {
		panic(fmt.Sprintf("query: accumulator %s pushed outside of a query", a.name))
	}
	fr.acc = append(fr.acc, accEntry{acc: a, value: v, at: len(fr.deps)})
}

// Accumulated returns every value of a accumulated by q(k) and the queries it
// depends on, in execution order. q(k) is brought up to date first.
func Accumulated[T any, K comparable, V any](db *Database, a *Accumulator[T], q *Query[K, V], k K) []T {
	q.Get(db, k)
	s := q.storage(db)
	root := dep{ing: s.idx, slot: s.slots[k]}

	var out []T
	db.walk(root, make(map[dep]struct{}), func(e accEntry) {
		if e.acc != any(a) {
			return
		}
		out = append(out, e.value.(T))
	})
	return out
}

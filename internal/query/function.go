package query

import (
	"fmt"

	"calc/internal/trace"
)

// Query describes a memoized pure function of the database and a key.
type Query[K comparable, V any] struct {
	name string
	fn   func(*Database, K) V
	eq   func(a, b V) bool
}

// NewQuery declares a query whose results compare with ==.
func NewQuery[K comparable, V comparable](name string, fn func(*Database, K) V) *Query[K, V] {
	return &Query[K, V]{name: name, fn: fn, eq: func(a, b V) bool { return a == b }}
}

// NewQueryFunc declares a query with a custom result equality used for backdating.
func NewQueryFunc[K comparable, V any](name string, fn func(*Database, K) V, eq func(a, b V) bool) *Query[K, V] {
	return &Query[K, V]{name: name, fn: fn, eq: eq}
}

// Name returns the query name used in stats and traces.
func (q *Query[K, V]) Name() string {
	return q.name
}

type memo[V any] struct {
	value      V
	hasValue   bool
	deps       []dep
	acc        []accEntry
	verifiedAt Revision
	changedAt  Revision
	inProgress bool
}

type queryStorage[K comparable, V any] struct {
	idx   uint32
	q     *Query[K, V]
	slots map[K]uint32
	keys  []K
	memos []*memo[V]
}

func (q *Query[K, V]) storage(db *Database) *queryStorage[K, V] {
	s, _ := register(db, q, func(idx uint32) *queryStorage[K, V] {
		return &queryStorage[K, V]{idx: idx, q: q, slots: make(map[K]uint32)}
	})
	return s
}

// Get returns the value of the query for k, reusing the memo when it is still valid.
func (q *Query[K, V]) Get(db *Database, k K) V {
	s := q.storage(db)
	slot := s.slotFor(k)
	s.fetch(db, slot)
	db.recordRead(dep{ing: s.idx, slot: slot})
	return s.memos[slot].value
}

func (s *queryStorage[K, V]) slotFor(k K) uint32 {
	if slot, ok := s.slots[k]; ok {
		return slot
	}
	slot := uint32(len(s.keys))
	s.slots[k] = slot
	s.keys = append(s.keys, k)
	s.memos = append(s.memos, &memo[V]{})
	return slot
}

// fetch makes the memo in slot valid for the current revision.
func (s *queryStorage[K, V]) fetch(db *Database, slot uint32) {
	m := s.memos[slot]
	if m.inProgress {
		panic(db.cycle(dep{ing: s.idx, slot: slot}))
	}
	if m.hasValue {
		if m.verifiedAt == db.rev {
			db.statsFor(s.q.name).Hits++
			trace.PointAt(db.tracer, trace.ScopeNode, "query:"+s.q.name, "memo hit "+s.keyString(slot), uint64(db.rev))
			return
		}
		if s.deepVerify(db, slot, m) {
			m.verifiedAt = db.rev
			db.statsFor(s.q.name).Verified++
			trace.PointAt(db.tracer, trace.ScopeNode, "query:"+s.q.name, "verified "+s.keyString(slot), uint64(db.rev))
			return
		}
	}
	s.execute(db, slot, m)
}

func (s *queryStorage[K, V]) deepVerify(db *Database, slot uint32, m *memo[V]) bool {
	m.inProgress = true
	defer func() { m.inProgress = false }()
	for _, d := range m.deps {
		if d.ing == s.idx && d.slot == slot {
			panic(db.cycle(d))
		}
		if db.ingredients[d.ing].changedAfter(db, d.slot, m.verifiedAt) {
			return false
		}
	}
	return true
}

func (s *queryStorage[K, V]) execute(db *Database, slot uint32, m *memo[V]) {
	key := dep{ing: s.idx, slot: slot}
	span := trace.BeginAt(db.tracer, trace.ScopeQuery, "query:"+s.q.name, db.parentSpanID(), uint64(db.rev))
	fr := db.push(key, span)
	m.inProgress = true
	defer func() {
		// панику пропускаем дальше, но стек и флаг приводим в порядок
		m.inProgress = false
		if db.top() == fr {
			db.pop(fr)
		}
	}()

	v := s.q.fn(db, s.keys[slot])

	st := db.statsFor(s.q.name)
	st.Executions++
	detail := "changed"
	if m.hasValue && s.q.eq(m.value, v) {
		st.Backdated++
		detail = "backdated"
	} else {
		m.value = v
		m.changedAt = db.rev
	}
	m.hasValue = true
	m.deps = fr.deps
	m.acc = fr.acc
	m.verifiedAt = db.rev
	span.WithExtra("key", s.keyString(slot)).End(detail)
}

func (s *queryStorage[K, V]) keyString(slot uint32) string {
	return fmt.Sprint(s.keys[slot])
}

func (s *queryStorage[K, V]) debugName(slot uint32) string {
	return fmt.Sprintf("%s(%s)", s.q.name, s.keyString(slot))
}

func (s *queryStorage[K, V]) changedAfter(db *Database, slot uint32, rev Revision) bool {
	m := s.memos[slot]
	if !m.hasValue {
		return true
	}
	if m.verifiedAt != db.rev {
		s.fetch(db, slot)
	}
	return m.changedAt > rev
}

func (s *queryStorage[K, V]) running(slot uint32) bool {
	return s.memos[slot].inProgress
}

func (s *queryStorage[K, V]) edges(slot uint32) ([]dep, []accEntry) {
	m := s.memos[slot]
	return m.deps, m.acc
}

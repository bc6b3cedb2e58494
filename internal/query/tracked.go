package query

import (
	"fmt"
)

// Tracked describes structs created by queries. A tracked struct keeps its
// ID across re-executions of its creating query as long as it is created
// with the same disambiguator, so readers can depend on its fields instead
// of on the whole query result.
type Tracked[F any] struct {
	name string
	eq   func(a, b F) bool
}

// NewTracked declares a tracked struct kind; eq decides whether re-created
// fields count as a change.
func NewTracked[F any](name string, eq func(a, b F) bool) *Tracked[F] {
	return &Tracked[F]{name: name, eq: eq}
}

type trackedKey struct {
	creator    dep
	disam      any
	occurrence int
}

type trackedSlot[F any] struct {
	fields    F
	changedAt Revision
	creator   dep
	key       trackedKey
}

type trackedStorage[F any] struct {
	idx   uint32
	t     *Tracked[F]
	slots []trackedSlot[F]
	ids   map[trackedKey]uint32
}

func (t *Tracked[F]) storage(db *Database) *trackedStorage[F] {
	s, _ := register(db, t, func(idx uint32) *trackedStorage[F] {
		return &trackedStorage[F]{idx: idx, t: t, ids: make(map[trackedKey]uint32)}
	})
	return s
}

// New creates (or re-creates) a tracked struct inside the executing query.
// disam must be comparable; structs created with the same disambiguator by
// the same query are told apart by creation order.
func (t *Tracked[F]) New(db *Database, disam any, fields F) ID {
	fr := db.top()
	if fr == nil {
		panic(fmt.Sprintf("query: tracked %s created outside of a query", t.name))
	}
	s := t.storage(db)
	if fr.created == nil {
		fr.created = make(map[createdKey]int)
	}
	ck := createdKey{ing: s.idx, disam: disam}
	key := trackedKey{creator: fr.key, disam: disam, occurrence: fr.created[ck]}
	fr.created[ck]++

	if slot, ok := s.ids[key]; ok {
		cur := &s.slots[slot]
		if !t.eq(cur.fields, fields) {
			cur.fields = fields
			cur.changedAt = db.rev
		}
		return ID(slot)
	}
	slot := uint32(len(s.slots))
	s.slots = append(s.slots, trackedSlot[F]{fields: fields, changedAt: db.rev, creator: fr.key, key: key})
	s.ids[key] = slot
	return ID(slot)
}

// Get reads the fields of a tracked struct, recording a dependency.
func (t *Tracked[F]) Get(db *Database, id ID) F {
	s := t.storage(db)
	if int(id) >= len(s.slots) {
		panic(fmt.Sprintf("query: unknown tracked %s #%d", t.name, id))
	}
	sl := &s.slots[id]
	// создатель не зависит от собственных структур
	if fr := db.top(); fr == nil || fr.key != sl.creator {
		db.recordRead(dep{ing: s.idx, slot: uint32(id)})
	}
	return sl.fields
}

func (s *trackedStorage[F]) debugName(slot uint32) string {
	return fmt.Sprintf("%s#%d", s.t.name, slot)
}

func (s *trackedStorage[F]) changedAfter(db *Database, slot uint32, rev Revision) bool {
	c := s.slots[slot].creator
	if creator := db.ingredients[c.ing]; !creator.running(c.slot) {
		// creator re-runs first if its inputs moved, refreshing our fields
		creator.changedAfter(db, c.slot, rev)
	}
	return s.slots[slot].changedAt > rev
}

func (s *trackedStorage[F]) running(uint32) bool { return false }

func (s *trackedStorage[F]) edges(uint32) ([]dep, []accEntry) { return nil, nil }

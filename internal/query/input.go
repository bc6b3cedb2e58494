package query

import (
	"fmt"

	"calc/internal/trace"
)

// Input describes a host-settable value. Writing an input starts a new revision.
type Input[F any] struct {
	name string
}

// NewInput declares an input kind.
func NewInput[F any](name string) *Input[F] {
	return &Input[F]{name: name}
}

type inputSlot[F any] struct {
	value     F
	changedAt Revision
}

type inputStorage[F any] struct {
	name  string
	slots []inputSlot[F]
}

func (in *Input[F]) storage(db *Database) (*inputStorage[F], uint32) {
	return register(db, in, func(uint32) *inputStorage[F] {
		return &inputStorage[F]{name: in.name}
	})
}

// New creates an input holding v. Must not be called from inside a query.
func (in *Input[F]) New(db *Database, v F) ID {
	db.requireOutsideQuery("Input.New")
	s, _ := in.storage(db)
	id := ID(len(s.slots))
	s.slots = append(s.slots, inputSlot[F]{value: v, changedAt: db.rev})
	return id
}

// Get reads the input, recording a dependency for the executing query.
func (in *Input[F]) Get(db *Database, id ID) F {
	s, idx := in.storage(db)
	s.check(id)
	db.recordRead(dep{ing: idx, slot: uint32(id)})
	return s.slots[id].value
}

// Set replaces the input value and advances the revision.
func (in *Input[F]) Set(db *Database, id ID, v F) {
	db.requireOutsideQuery("Input.Set")
	s, _ := in.storage(db)
	s.check(id)
	db.rev++
	s.slots[id] = inputSlot[F]{value: v, changedAt: db.rev}
	trace.PointAt(db.tracer, trace.ScopeNode, "input:"+in.name, fmt.Sprintf("set #%d", id), uint64(db.rev))
}

func (s *inputStorage[F]) check(id ID) {
	if int(id) >= len(s.slots) {
		panic(fmt.Sprintf("query: unknown %s input #%d", s.name, id))
	}
}

func (s *inputStorage[F]) debugName(slot uint32) string {
	return fmt.Sprintf("%s#%d", s.name, slot)
}

func (s *inputStorage[F]) changedAfter(_ *Database, slot uint32, rev Revision) bool {
	return s.slots[slot].changedAt > rev
}

func (s *inputStorage[F]) running(uint32) bool { return false }

func (s *inputStorage[F]) edges(uint32) ([]dep, []accEntry) { return nil, nil }

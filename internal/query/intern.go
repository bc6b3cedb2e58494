package query

import (
	"calc/internal/source"
)

// InternTable describes a string interning table. Interned IDs are stable
// for the lifetime of the database and never invalidate anything.
type InternTable struct {
	name string
}

// NewInternTable returns a table descriptor named name for debug output.
// Declare one per kind of name, at package level.
func NewInternTable(name string) *InternTable {
	return &InternTable{name: name}
}

type internStorage struct {
	name string
	*source.Interner
}

func (t *InternTable) storage(db *Database) *internStorage {
	s, _ := register(db, t, func(uint32) *internStorage {
		return &internStorage{name: t.name, Interner: source.NewInterner()}
	})
	return s
}

// Intern returns the ID of text, allocating one on first sight.
func (t *InternTable) Intern(db *Database, text string) source.StringID {
	return t.storage(db).Intern(text)
}

// Lookup returns the text behind id.
func (t *InternTable) Lookup(db *Database, id source.StringID) string {
	return t.storage(db).MustLookup(id)
}

func (s *internStorage) debugName(slot uint32) string { return s.name }

func (s *internStorage) changedAfter(*Database, uint32, Revision) bool { return false }

func (s *internStorage) running(uint32) bool { return false }

func (s *internStorage) edges(uint32) ([]dep, []accEntry) { return nil, nil }

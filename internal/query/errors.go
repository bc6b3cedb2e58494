package query

import "strings"

// CycleError is the panic value raised when a query (transitively) depends on itself.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "query cycle: " + strings.Join(e.Path, " -> ")
}

func (db *Database) cycle(d dep) *CycleError {
	path := make([]string, 0, len(db.stack)+1)
	start := -1
	for i, fr := range db.stack {
		if fr.key == d {
			start = i
			break
		}
	}
	if start < 0 {
		start = 0
	}
	for _, fr := range db.stack[start:] {
		path = append(path, db.describe(fr.key))
	}
	path = append(path, db.describe(d))
	return &CycleError{Path: path}
}

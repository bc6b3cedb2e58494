package query

import (
	"fmt"
	"slices"
	"strings"
)

// QueryStats counts what happened to invocations of one query.
type QueryStats struct {
	Executions int // query function ran
	Hits       int // memo reused without verification work
	Verified   int // memo reused after deep verification
	Backdated  int // re-run produced an equal value
}

func (s QueryStats) String() string {
	return fmt.Sprintf("exec=%d hit=%d verified=%d backdated=%d", s.Executions, s.Hits, s.Verified, s.Backdated)
}

// Snapshot is a point-in-time copy of all query counters.
type Snapshot map[string]QueryStats

// TakeSnapshot copies the current counters.
func (db *Database) TakeSnapshot() Snapshot {
	return Snapshot(db.AllStats())
}

// Since returns the per-query difference between the current counters and s.
func (db *Database) Since(s Snapshot) Snapshot {
	out := make(Snapshot)
	for name, cur := range db.AllStats() {
		prev := s[name]
		out[name] = QueryStats{
			Executions: cur.Executions - prev.Executions,
			Hits:       cur.Hits - prev.Hits,
			Verified:   cur.Verified - prev.Verified,
			Backdated:  cur.Backdated - prev.Backdated,
		}
	}
	return out
}

// Format renders the snapshot one query per line, sorted by name.
func (s Snapshot) Format() string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	slices.Sort(names)
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "  %-22s %s\n", name, s[name])
	}
	return b.String()
}

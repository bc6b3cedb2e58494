package query

import (
	"slices"
	"strings"
	"testing"
)

var (
	textInput = NewInput[string]("Text")
	notes     = NewAccumulator[string]("notes")

	wordCount = NewQuery("word_count", func(db *Database, id ID) int {
		words := strings.Fields(textInput.Get(db, id))
		if len(words) == 0 {
			notes.Push(db, "empty text")
		}
		return len(words)
	})

	doubled = NewQuery("doubled", func(db *Database, id ID) int {
		notes.Push(db, "doubling")
		n := wordCount.Get(db, id) * 2
		notes.Push(db, "doubled")
		return n
	})
)

func TestQueryMemoizes(t *testing.T) {
	db := New()
	id := textInput.New(db, "a b c")

	if got := doubled.Get(db, id); got != 6 {
		t.Fatalf("doubled = %d, want 6", got)
	}
	if got := doubled.Get(db, id); got != 6 {
		t.Fatalf("doubled = %d, want 6", got)
	}
	if st := db.Stats("doubled"); st.Executions != 1 || st.Hits != 1 {
		t.Errorf("doubled stats = %s", st)
	}
	if st := db.Stats("word_count"); st.Executions != 1 {
		t.Errorf("word_count stats = %s", st)
	}
}

func TestInputChangeInvalidates(t *testing.T) {
	db := New()
	id := textInput.New(db, "a b")
	doubled.Get(db, id)

	rev := db.Revision()
	textInput.Set(db, id, "a b c d")
	if db.Revision() != rev+1 {
		t.Fatalf("revision = %d, want %d", db.Revision(), rev+1)
	}
	if got := doubled.Get(db, id); got != 8 {
		t.Fatalf("doubled = %d, want 8", got)
	}
	if st := db.Stats("doubled"); st.Executions != 2 {
		t.Errorf("doubled stats = %s", st)
	}
}

func TestBackdatingSkipsDependents(t *testing.T) {
	db := New()
	id := textInput.New(db, "a b")
	doubled.Get(db, id)

	// same word count, different text
	textInput.Set(db, id, "x   y")
	if got := doubled.Get(db, id); got != 4 {
		t.Fatalf("doubled = %d, want 4", got)
	}
	wc := db.Stats("word_count")
	if wc.Executions != 2 || wc.Backdated != 1 {
		t.Errorf("word_count stats = %s", wc)
	}
	if st := db.Stats("doubled"); st.Executions != 1 || st.Verified != 1 {
		t.Errorf("doubled must be verified, not re-run: %s", st)
	}
}

func TestAccumulatedOrderAndNoReemission(t *testing.T) {
	db := New()
	id := textInput.New(db, "")

	want := []string{"doubling", "empty text", "doubled"}
	for range 2 {
		got := Accumulated(db, notes, doubled, id)
		if !slices.Equal(got, want) {
			t.Fatalf("accumulated = %q, want %q", got, want)
		}
	}
	if st := db.Stats("doubled"); st.Executions != 1 {
		t.Errorf("doubled stats = %s", st)
	}

	textInput.Set(db, id, "word")
	got := Accumulated(db, notes, doubled, id)
	if want := []string{"doubling", "doubled"}; !slices.Equal(got, want) {
		t.Errorf("after edit accumulated = %q, want %q", got, want)
	}
}

func TestAccumulatedFreshAfterBackdate(t *testing.T) {
	db := New()
	id := textInput.New(db, "one")
	other := textInput.New(db, "")

	if got := Accumulated(db, notes, wordCount, other); len(got) != 1 {
		t.Fatalf("accumulated = %q", got)
	}
	// a re-run with an equal result still replaces its notes
	textInput.Set(db, other, "  ")
	if got := Accumulated(db, notes, wordCount, other); len(got) != 1 {
		t.Fatalf("accumulated after rewrite = %q", got)
	}
	wordCount.Get(db, id)
	if st := db.Stats("word_count"); st.Executions != 3 || st.Backdated != 1 {
		t.Errorf("word_count stats = %s", st)
	}
}

func TestCycleIsFatal(t *testing.T) {
	var cyc *Query[int, int]
	cyc = NewQuery("cyc", func(db *Database, k int) int {
		return cyc.Get(db, (k+1)%2)
	})
	db := New()
	defer func() {
		r := recover()
		ce, ok := r.(*CycleError)
		if !ok {
			t.Fatalf("recovered %v, want *CycleError", r)
		}
		if len(ce.Path) != 3 || ce.Path[0] != "cyc(0)" || ce.Path[2] != "cyc(0)" {
			t.Errorf("cycle path = %v", ce.Path)
		}
		if len(db.stack) != 0 {
			t.Error("execution stack must unwind after a panic")
		}
	}()
	cyc.Get(db, 0)
}

func TestSetInsideQueryPanics(t *testing.T) {
	db := New()
	id := textInput.New(db, "a")
	bad := NewQuery("bad", func(db *Database, id ID) int {
		textInput.Set(db, id, "b")
		return 0
	})
	defer func() {
		if recover() == nil {
			t.Error("Set inside a query must panic")
		}
	}()
	bad.Get(db, id)
}

func TestDatabasesAreIndependent(t *testing.T) {
	db1, db2 := New(), New()
	id1 := textInput.New(db1, "a b c")
	id2 := textInput.New(db2, "a")
	if wordCount.Get(db1, id1) != 3 || wordCount.Get(db2, id2) != 1 {
		t.Fatal("databases leaked state")
	}
	if db1.Stats("word_count").Executions != 1 || db2.Stats("word_count").Executions != 1 {
		t.Error("stats must be per database")
	}
}

type wordFields struct {
	text string
	pos  int
}

var (
	words = NewTracked("Word", func(a, b wordFields) bool { return a == b })

	splitWords = NewQueryFunc("split_words", func(db *Database, id ID) []ID {
		var out []ID
		for i, w := range strings.Fields(textInput.Get(db, id)) {
			out = append(out, words.New(db, i, wordFields{text: w, pos: i}))
		}
		return out
	}, func(a, b []ID) bool { return slices.Equal(a, b) })

	wordLen = NewQuery("word_len", func(db *Database, w ID) int {
		return len(words.Get(db, w).text)
	})
)

func TestTrackedStructsKeepIdentity(t *testing.T) {
	db := New()
	id := textInput.New(db, "alpha beta")

	first := splitWords.Get(db, id)
	for _, w := range first {
		wordLen.Get(db, w)
	}

	textInput.Set(db, id, "alpha gamma")
	second := splitWords.Get(db, id)
	if !slices.Equal(first, second) {
		t.Fatalf("tracked IDs changed: %v -> %v", first, second)
	}
	before := db.TakeSnapshot()
	if got := wordLen.Get(db, second[0]); got != 5 {
		t.Fatalf("word_len(alpha) = %d", got)
	}
	if got := wordLen.Get(db, second[1]); got != 5 {
		t.Fatalf("word_len(gamma) = %d", got)
	}
	delta := db.Since(before)["word_len"]
	if delta.Executions != 1 || delta.Verified != 1 {
		t.Errorf("only the edited word must re-run: %s", delta)
	}
}

func TestTrackedReadWithoutCreatorRefresh(t *testing.T) {
	db := New()
	id := textInput.New(db, "one two")
	ws := splitWords.Get(db, id)
	wordLen.Get(db, ws[1])

	// word_len is asked first; the creator must be refreshed through the dependency
	textInput.Set(db, id, "one three")
	if got := wordLen.Get(db, ws[1]); got != 5 {
		t.Errorf("word_len = %d, want 5", got)
	}
}

var labels = NewInternTable("labels")

func TestInternTable(t *testing.T) {
	db := New()
	a := labels.Intern(db, "foo")
	if a != labels.Intern(db, "foo") {
		t.Error("same text must intern to the same ID")
	}
	if a == labels.Intern(db, "bar") {
		t.Error("different text must intern to different IDs")
	}
	if labels.Lookup(db, a) != "foo" {
		t.Errorf("Lookup = %q", labels.Lookup(db, a))
	}
}

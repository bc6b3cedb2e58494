package source

import "testing"

func TestInternerBasic(t *testing.T) {
	interner := NewInterner()

	// NoStringID зарезервирован под пустую строку
	if s, ok := interner.Lookup(NoStringID); !ok || s != "" {
		t.Errorf("NoStringID должен возвращать пустую строку, получили: %q, ok=%v", s, ok)
	}

	id1 := interner.Intern("foo")
	if id1 == NoStringID {
		t.Fatal("Intern must not return NoStringID for a non-empty string")
	}
	if id2 := interner.Intern("foo"); id1 != id2 {
		t.Errorf("same text must intern to the same ID: %d != %d", id1, id2)
	}
	if id3 := interner.Intern("bar"); id3 == id1 {
		t.Error("different text must intern to different IDs")
	}
	for range 3 {
		if s := interner.MustLookup(id1); s != "foo" {
			t.Fatalf("MustLookup(%d) = %q, want foo", id1, s)
		}
	}
	if interner.Len() != 3 { // "", "foo", "bar"
		t.Errorf("Len = %d, want 3", interner.Len())
	}
}

func TestInternerCopiesInput(t *testing.T) {
	interner := NewInterner()
	buf := []byte("abc")
	id := interner.Intern(string(buf[:2]))
	buf[0] = 'z'
	if s := interner.MustLookup(id); s != "ab" {
		t.Errorf("interned text changed with source buffer: %q", s)
	}
}

func TestInternerLookupInvalid(t *testing.T) {
	interner := NewInterner()
	if _, ok := interner.Lookup(StringID(42)); ok {
		t.Error("Lookup of unknown ID must fail")
	}
	defer func() {
		if recover() == nil {
			t.Error("MustLookup of unknown ID must panic")
		}
	}()
	interner.MustLookup(StringID(42))
}

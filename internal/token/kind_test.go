package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
		ok   bool
	}{
		{"fn", KwFn, true},
		{"print", KwPrint, true},
		{"Print", Invalid, false},
		{"fnx", Invalid, false},
	}
	for _, tt := range tests {
		k, ok := LookupKeyword(tt.in)
		if ok != tt.ok || (ok && k != tt.kind) {
			t.Errorf("LookupKeyword(%q) = %v, %v", tt.in, k, ok)
		}
	}
}

func TestKindString(t *testing.T) {
	for k := Invalid; k <= Assign; k++ {
		if k.String() == "" || k.String() == "Unknown" {
			t.Errorf("kind %d has no name", k)
		}
	}
	if !KwPrint.IsStatementStart() || Ident.IsStatementStart() {
		t.Error("IsStatementStart misclassifies kinds")
	}
}

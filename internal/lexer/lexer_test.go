package lexer

import (
	"testing"

	"calc/internal/diag"
	"calc/internal/source"
	"calc/internal/token"
)

func lexAll(t *testing.T, input string) ([]token.Token, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(0)
	lx := New([]byte(input), Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx.All(), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexStatements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{"fn", "fn f(a, b) = a + b", []token.Kind{
			token.KwFn, token.Ident, token.LParen, token.Ident, token.Comma, token.Ident,
			token.RParen, token.Assign, token.Ident, token.Plus, token.Ident, token.EOF,
		}},
		{"print", "print 1 * (2 - 3) / 4", []token.Kind{
			token.KwPrint, token.Number, token.Star, token.LParen, token.Number, token.Minus,
			token.Number, token.RParen, token.Slash, token.Number, token.EOF,
		}},
		{"comments", "// header\nprint x // tail\n", []token.Kind{token.KwPrint, token.Ident, token.EOF}},
		{"empty", "", []token.Kind{token.EOF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, bag := lexAll(t, tt.input)
			got := kinds(toks)
			if len(got) != len(tt.want) {
				t.Fatalf("kinds = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("kinds = %v, want %v", got, tt.want)
				}
			}
			if bag.Len() != 0 {
				t.Errorf("unexpected diagnostics: %v", bag.Items())
			}
		})
	}
}

func TestLexSpans(t *testing.T) {
	toks, _ := lexAll(t, "print  foo(12.5)")
	want := []source.Span{{Start: 0, End: 5}, {Start: 7, End: 10}, {Start: 10, End: 11}, {Start: 11, End: 15}, {Start: 15, End: 16}}
	for i, sp := range want {
		if toks[i].Span != sp {
			t.Errorf("token %d (%s) span = %v, want %v", i, toks[i].Text, toks[i].Span, sp)
		}
	}
}

func TestLexNumbers(t *testing.T) {
	for _, in := range []string{"0", "42", "3.14", ".5", "1e3", "2.5E-4"} {
		toks, bag := lexAll(t, in)
		if toks[0].Kind != token.Number || toks[0].Text != in || bag.Len() != 0 {
			t.Errorf("%q lexed as %v %q (%d diags)", in, toks[0].Kind, toks[0].Text, bag.Len())
		}
	}
	toks, bag := lexAll(t, "1e+")
	if toks[0].Kind != token.Invalid || bag.Len() != 1 || bag.Items()[0].Code != diag.LexBadNumber {
		t.Errorf("bad exponent: kind=%v diags=%v", toks[0].Kind, bag.Items())
	}
}

func TestLexUnknownChar(t *testing.T) {
	toks, bag := lexAll(t, "print 1 $ 2 €")
	if bag.Len() != 2 {
		t.Fatalf("diagnostics = %d, want 2", bag.Len())
	}
	euro := bag.Items()[1]
	if euro.Code != diag.LexUnknownChar || euro.Primary.Len() != 3 {
		t.Errorf("euro diagnostic = %+v", euro)
	}
	if toks[2].Kind != token.Invalid || toks[3].Kind != token.Number {
		t.Errorf("lexing must continue after unknown char: %v", kinds(toks))
	}
}

func TestLexUnicodeIdentNormalized(t *testing.T) {
	// "é" as a precomposed rune and as e + combining acute
	toks, bag := lexAll(t, "caf\u00e9 cafe\u0301")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if toks[0].Kind != token.Ident || toks[1].Kind != token.Ident {
		t.Fatalf("kinds = %v", kinds(toks))
	}
	if toks[0].Text != toks[1].Text {
		t.Errorf("NFC forms differ: %q vs %q", toks[0].Text, toks[1].Text)
	}
	if toks[1].Span.Len() != 6 {
		t.Errorf("span must cover source bytes, got %v", toks[1].Span)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx := New([]byte("fn g"), Options{})
	if lx.Peek().Kind != token.KwFn || lx.Peek().Kind != token.KwFn {
		t.Fatal("Peek must be idempotent")
	}
	if lx.Next().Kind != token.KwFn || lx.Next().Kind != token.Ident || lx.Next().Kind != token.EOF || lx.Next().Kind != token.EOF {
		t.Error("unexpected token sequence")
	}
}

func TestLexKeepsRawOffsets(t *testing.T) {
	src := "\ufeffprint a\r\nprint b"
	toks, bag := lexAll(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := []token.Kind{token.KwPrint, token.Ident, token.KwPrint, token.Ident, token.EOF}
	if got := kinds(toks); len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for _, tok := range toks[:4] {
		if got := src[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Errorf("src[%s] = %q, want %q", tok.Span, got, tok.Text)
		}
	}
	if toks[0].Span.Start != 3 {
		t.Errorf("first token must start after the BOM, got %v", toks[0].Span)
	}
}

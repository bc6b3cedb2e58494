package source

import "testing"

func TestFileResolve(t *testing.T) {
	f := NewFile("mem.calc", []byte("fn f(a) = a\nprint f(1)\n"))

	tests := []struct {
		name  string
		span  Span
		start LineCol
		end   LineCol
	}{
		{"first_line", Span{Start: 0, End: 2}, LineCol{Line: 1, Col: 1}, LineCol{Line: 1, Col: 3}},
		{"second_line", Span{Start: 18, End: 22}, LineCol{Line: 2, Col: 7}, LineCol{Line: 2, Col: 11}},
		{"newline_char", Span{Start: 11, End: 11}, LineCol{Line: 1, Col: 12}, LineCol{Line: 1, Col: 12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := f.Resolve(tt.span)
			if start != tt.start || end != tt.end {
				t.Errorf("Resolve(%s) = %v..%v, want %v..%v", tt.span, start, end, tt.start, tt.end)
			}
		})
	}
}

func TestFileGetLine(t *testing.T) {
	f := NewFile("mem.calc", []byte("one\r\ntwo\nthree"))
	want := []string{"", "one", "two", "three", ""}
	for i, w := range want {
		if got := f.GetLine(uint32(i)); got != w {
			t.Errorf("GetLine(%d) = %q, want %q", i, got, w)
		}
	}
	if got := f.Slice(Span{Start: 5, End: 8}); got != "two" {
		t.Errorf("Slice = %q, want two", got)
	}
}

func TestFileKeepsRawBytes(t *testing.T) {
	text := "\ufeffprint 1\r\nprint g(1)"
	f := NewFile("crlf.calc", []byte(text))
	if f.Text() != text {
		t.Fatalf("Text() = %q, want the input unchanged", f.Text())
	}
	sp := Span{Start: 20, End: 24}
	if got := f.Slice(sp); got != "g(1)" {
		t.Fatalf("Slice = %q, want g(1)", got)
	}
	start, end := f.Resolve(sp)
	if start != (LineCol{Line: 2, Col: 7}) || end != (LineCol{Line: 2, Col: 11}) {
		t.Errorf("Resolve = %v..%v, want 2:7..2:11", start, end)
	}
	if got := f.GetLine(1); got != "\ufeffprint 1" {
		t.Errorf("GetLine(1) = %q", got)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{Start: 4, End: 6}
	b := Span{Start: 1, End: 5}
	if got := a.Cover(b); got != (Span{Start: 1, End: 6}) {
		t.Errorf("Cover = %v", got)
	}
	if !a.Cover(b).Contains(a) {
		t.Error("cover must contain both operands")
	}
}

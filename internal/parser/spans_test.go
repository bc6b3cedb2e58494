package parser

import (
	"testing"

	"calc/internal/testkit"
)

func TestSpanInvariants(t *testing.T) {
	sources := []string{
		"fn area_rectangle(w, h) = w * h\nfn area_circle(r) = 3.14 * r * r\nprint area_rectangle(3, 4)\nprint area_circle(1)\nprint 11 * 2\n",
		"print ((1 + 2) * (3 - 4)) / 5",
		"fn f(a, b, c) = g(a, h(b, c), 1.5e3)\n",
		"print 1 +\nprint 2\nfn g(x) = (x",
		"fn (a) = a\nprint 1 $ 2\n1 + 2\nprint 3",
		"\ufefffn f(a) = a +\r\nprint f(1)\r\n",
		"",
	}
	for _, src := range sources {
		p := parseSource(t, src)
		if err := testkit.CheckSpanInvariants(p.db, p.prog, src); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

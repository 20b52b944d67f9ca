package repl

import "testing"

func TestBlockNotEndCount(t *testing.T) {
	tests := []struct {
		block string
		want  int
	}{
		{"var a = 1;", 0},
		{"if (a) {", 1},
		{"if (a) {\n  f();\n}", 0},
		{"while (a) { if (b) {", 2},
		{"each(xs) { |x|", 1},
		{`var s = "{";`, 0},
		{`var s = '}';`, 0},
		{"var q = `{`;", 0},
		{`var s = "a\"{";`, 0},
		{`waitfor { a(); } or { b(); }`, 0},
	}
	for idx := range tests {
		got := _blockNotEndCount(tests[idx].block)
		if got != tests[idx].want {
			t.Fatalf("%q: count = %d, want %d", tests[idx].block, got, tests[idx].want)
		}
	}
}

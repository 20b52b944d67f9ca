package compiler

import (
	"strings"
	"testing"
)

func stringify(t *testing.T, src string) string {
	t.Helper()
	out, err := Stringify(src, Settings{})
	if err != nil {
		t.Fatalf("%q: %v", src, err)
	}
	return out
}

func minify(t *testing.T, src string) string {
	t.Helper()
	out, err := Minify(src, Settings{})
	if err != nil {
		t.Fatalf("%q: %v", src, err)
	}
	return out
}

func translate(t *testing.T, src string) string {
	t.Helper()
	out, err := Translate(src, Settings{})
	if err != nil {
		t.Fatalf("%q: %v", src, err)
	}
	return out
}

func TestSexp(t *testing.T) {
	cases := []struct{ src, want string }{
		{"1+2*3", "(+ 1 (* 2 3))"},
		{"a=b=c", "(= a (= b c))"},
	}
	for _, c := range cases {
		out, err := Sexp(c.src, Settings{})
		if err != nil {
			t.Fatalf("%q: %v", c.src, err)
		}
		if out != c.want {
			t.Fatalf("%q: got %q, want %q", c.src, out, c.want)
		}
	}
}

func TestStringifyRoundTrip(t *testing.T) {
	cases := []struct{ src, want string }{
		{"1+2*3", "1 + 2 * 3;"},
		{"a=b=c", "a = b = c;"},
		{"if(a)b;else c;", "if (a) b; else c;"},
		{"while (a) { f() }", "while (a) { f(); }"},
		{"try{f()}catch(e){g()}", "try { f(); } catch (e) { g(); }"},
		{"try{f()}catchall(e){g()}", "try { f(); } catchall (e) { g(); }"},
		{"each(xs){|x|f(x)}", "each(xs) { |x| f(x); }"},
		{"waitfor{a()}or{b()}", "waitfor { a(); } or { b(); }"},
		{"using(var c=open()){c.read()}", "using (var c = open()) { c.read(); }"},
		{"using(f)g()", "using (f) g();"},
		{"x=/ab+/gi", "x = /ab+/gi;"},
		{"spawn f()", "spawn f();"},
		{"spawn f()+1", "spawn f() + 1;"},
	}
	for _, c := range cases {
		if got := stringify(t, c.src); got != c.want {
			t.Fatalf("%q\n got %q\nwant %q", c.src, got, c.want)
		}
	}
}

func TestMinify(t *testing.T) {
	cases := []struct{ src, want string }{
		{"1 + 2 * 3", "1+2*3;"},
		{"1 + +2", "1+ +2;"},
		{"a - -b", "a- -b;"},
		{"1 .. f", "1 ..f;"},
		{"a .. f", "a..f;"},
		{"a in b", "a in b;"},
		{"if (a) b; else c;", "if(a)b;else c;"},
		{"var a = 1, b = 2;", "var a=1,b=2;"},
	}
	for _, c := range cases {
		if got := minify(t, c.src); got != c.want {
			t.Fatalf("%q\n got %q\nwant %q", c.src, got, c.want)
		}
	}
}

func TestAutomaticSemicolons(t *testing.T) {
	if got := stringify(t, "x\n++y"); got != "x; ++y;" {
		t.Fatalf("asi %q", got)
	}
	if got := stringify(t, "x++\ny"); got != "x++; y;" {
		t.Fatalf("postfix %q", got)
	}
	out, err := Stringify("function f() { return\n1 }", Settings{})
	if err != nil {
		t.Fatalf("return arg: %v", err)
	}
	if out != "function f() { return; 1; }" {
		t.Fatalf("restricted return %q", out)
	}
}

func TestStringCoalescing(t *testing.T) {
	if got := stringify(t, "\"a\nb\""); got != "\"a\\nb\";" {
		t.Fatalf("istr %q", got)
	}
	if got := stringify(t, `"x#{1}y"`); got != `"x#{1}y";` {
		t.Fatalf("interp %q", got)
	}
}

func TestKeeplines(t *testing.T) {
	src := "var a = 1\n\nvar b = 2\n"
	out, err := Stringify(src, Settings{Keeplines: true})
	if err != nil {
		t.Fatalf("keeplines: %v", err)
	}
	if strings.Count(out, "\n") != strings.Count(src, "\n") {
		t.Fatalf("line count %q", out)
	}
	if out != "var a = 1;\n\nvar b = 2;\n" {
		t.Fatalf("keeplines %q", out)
	}
}

func TestGlobalReturn(t *testing.T) {
	if _, err := Stringify("return 1", Settings{}); err == nil {
		t.Fatalf("toplevel return allowed")
	}
	out, err := Stringify("return 1", Settings{GlobalReturn: true})
	if err != nil {
		t.Fatalf("global return: %v", err)
	}
	if out != "return 1;" {
		t.Fatalf("global return %q", out)
	}
}

func TestRuntimeLowering(t *testing.T) {
	cases := []struct{ src, want string }{
		{"a .. b(c)", "b(a, c);"},
		{"f(x) { |y| g(y); }", "f(x, __oni_rt.Blocklambda(function(y) { g(y); }));"},
		{"spawn f()", "__oni_rt.Spawn(function() { return f(); });"},
		{"spawn f() + 1", "__oni_rt.Spawn(function() { return f() + 1; });"},
		{`x = "a#{b}c"`, `x = "a" + (b) + "c";`},
		{"waitfor { a(); } or { b(); }", "__oni_rt.WaitforOr([function() { a(); }, function() { b(); }]);"},
		{"waitfor { a(); } and { b(); }", "__oni_rt.WaitforAnd([function() { a(); }, function() { b(); }]);"},
		{"using (var c = open()) { c.read(); }", "__oni_rt.Using(open(), function(c) { c.read(); });"},
		{"using (f) g();", "__oni_rt.Using(f, function() { g(); });"},
		{"waitfor (var x) { go(resume); }",
			"var x; __oni_rt.Suspend(function(resume) { go(resume); }, function(__v0) { (x = __v0); });"},
		{"try { a(); } retract { r(); }", "__oni_rt.Try(function() { a(); }, { r: function() { r(); } });"},
		{"try { a(); } catchall (e) { g(e); }", "__oni_rt.Try(function() { a(); }, { a: function(e) { g(e); } });"},
		{"@log.info(1)", "__oni_altns.log.info(1);"},
		{"f = x -> x + 1", "f = function(x) { return x + 1; };"},
		{"q = `a ${x}`", `q = __oni_rt.Quasi("a ", (x));`},
		{"__js { a(); b(); }", "a(); b();"},
	}
	for _, c := range cases {
		if got := translate(t, c.src); got != c.want {
			t.Fatalf("%q\n got %q\nwant %q", c.src, got, c.want)
		}
	}
}

func TestErrorKinds(t *testing.T) {
	cases := []struct {
		src  string
		kind int
	}{
		{"'abc", KindLexical},
		{"/* open", KindLexical},
		{"a +", KindSyntax},
		{"throw\nx", KindSyntax},
		{"try { f(); }", KindStructural},
		{"waitfor { f(); }", KindStructural},
		{"break;", KindStructural},
	}
	for _, c := range cases {
		_, err := Stringify(c.src, Settings{})
		if err == nil {
			t.Fatalf("%q: no error", c.src)
		}
		ce, ok := err.(*CompileError)
		if !ok {
			t.Fatalf("%q: %T", c.src, err)
		}
		if ce.Kind != c.kind {
			t.Fatalf("%q: kind %d msg %s", c.src, ce.Kind, ce.Msg)
		}
	}
	if _, err := Compile("x", Settings{Kernel: "wasm"}); err == nil {
		t.Fatalf("unknown kernel accepted")
	} else if err.(*CompileError).Kind != KindInternal {
		t.Fatalf("unknown kernel kind: %v", err)
	}
}

func TestErrorMessageFormat(t *testing.T) {
	_, err := Stringify("try { f(); }", Settings{})
	want := "input:1: structural error: try needs a catch, retract or finally clause"
	if err == nil || err.Error() != want {
		t.Fatalf("msg %v", err)
	}

	_, err = Stringify("var x = 1\n'abc", Settings{Filename: "demo.sjs"})
	ce := err.(*CompileError)
	if ce.Line != 2 || !strings.HasPrefix(ce.Msg, "demo.sjs:2: lexical error:") {
		t.Fatalf("msg %q line %d", ce.Msg, ce.Line)
	}
}

func TestFirstErrorAborts(t *testing.T) {
	_, err := Stringify("a +\nb -", Settings{})
	ce := err.(*CompileError)
	if ce.Line != 2 {
		t.Fatalf("line %d msg %q", ce.Line, ce.Msg)
	}
}

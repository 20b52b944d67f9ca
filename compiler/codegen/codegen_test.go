package codegen

import (
	"strings"
	"testing"
)

func TestKernelRegistry(t *testing.T) {
	for _, name := range []string{"", "stringify", "minify", "runtime", "sexp"} {
		if _, err := New(name); err != nil {
			t.Fatalf("kernel %q: %v", name, err)
		}
	}
	if _, err := New("wasm"); err == nil {
		t.Fatalf("expect error for unknown kernel")
	}
}

func TestCatSeparators(t *testing.T) {
	m := &textKernel{compact: true}
	cases := []struct {
		parts []string
		want  string
	}{
		{[]string{"1", "+", "+2"}, "1+ +2"},
		{[]string{"1", "-", "-2"}, "1- -2"},
		{[]string{"a", "in", "b"}, "a in b"},
		{[]string{"1", "..", "f"}, "1 ..f"},
		{[]string{"a", "..", "f"}, "a..f"},
		{[]string{"a", "/", "/b/.test(x)"}, "a/ /b/.test(x)"},
		{[]string{"x", "<", "<y"}, "x< <y"},
		{[]string{"typeof", "x"}, "typeof x"},
		{[]string{"f", "(x)"}, "f(x)"},
	}
	for _, c := range cases {
		if got := m.cat(c.parts...); got != c.want {
			t.Fatalf("cat%v = %q", c.parts, got)
		}
	}
}

func TestTextStatements(t *testing.T) {
	k := &textKernel{}
	b := k.ExprStmt(atom("b"))
	c := k.ExprStmt(atom("c"))
	if got := k.If(atom("a"), b, c).Code; got != "if (a) b; else c;" {
		t.Fatalf("if %q", got)
	}
	body := k.Block([]*Frag{k.ExprStmt(atom("f()"))})
	if got := k.DoWhile(body, atom("x")).Code; got != "do { f(); } while (x);" {
		t.Fatalf("do %q", got)
	}
	crf := CRF{CatchParam: "e", Catch: k.Block([]*Frag{k.ExprStmt(atom("g()"))})}
	if got := k.Try(body, crf).Code; got != "try { f(); } catch (e) { g(); }" {
		t.Fatalf("try %q", got)
	}
	if got := k.Label("lab", k.While(atom("1"), body)).Code; got != "lab: while (1) { f(); }" {
		t.Fatalf("label %q", got)
	}
	blocks := []*Frag{body, k.Block([]*Frag{k.ExprStmt(atom("g()"))})}
	want := "waitfor { f(); } and { g(); }"
	if got := k.WaitforAnd(blocks, CRF{}).Code; got != want {
		t.Fatalf("waitfor %q", got)
	}
}

func TestMinifyStatements(t *testing.T) {
	m := &textKernel{compact: true}
	b := m.ExprStmt(atom("b"))
	c := m.ExprStmt(atom("c"))
	if got := m.If(atom("a"), b, c).Code; got != "if(a)b;else c;" {
		t.Fatalf("if %q", got)
	}
	body := m.Block([]*Frag{m.ExprStmt(atom("f()"))})
	crf := CRF{CatchParam: "e", Catch: m.Block([]*Frag{m.ExprStmt(atom("g()"))})}
	if got := m.Try(body, crf).Code; got != "try{f();}catch(e){g();}" {
		t.Fatalf("try %q", got)
	}
	if got := m.Blocklambda(nil, nil).Code; got != "{||}" {
		t.Fatalf("blocklambda %q", got)
	}
}

func TestTextObjectLit(t *testing.T) {
	k := &textKernel{}
	ret := k.Block([]*Frag{k.Return(atom("1"))})
	entries := []ObjEntry{
		{Kind: ObjPlain, Key: "a", Val: atom("1")},
		{Kind: ObjShorthand, Key: "b"},
		{Kind: ObjGetter, Key: "v", Val: ret},
	}
	want := "{ a: 1, b, get v() { return 1; } }"
	if got := k.ObjectLit(entries).Code; got != want {
		t.Fatalf("object %q", got)
	}
}

func TestRuntimeNamespace(t *testing.T) {
	r := &runtimeKernel{}
	if got := r.AtName("").Code; got != "__oni_altns" {
		t.Fatalf("bare at %q", got)
	}
	if got := r.AtName("http").Code; got != "__oni_altns.http" {
		t.Fatalf("at name %q", got)
	}
}

func TestRuntimeArrow(t *testing.T) {
	r := &runtimeKernel{}
	if got := r.Arrow(atom("x"), atom("x + 1"), false).Code; got != "function(x) { return x + 1; }" {
		t.Fatalf("thin arrow %q", got)
	}
	params := r.Group(atom(""))
	want := "(function() { return this.x; }).bind(this)"
	if got := r.Arrow(params, atom("this.x"), true).Code; got != want {
		t.Fatalf("fat arrow %q", got)
	}
}

func TestRuntimeGrafting(t *testing.T) {
	r := &runtimeKernel{}
	call := r.Call(atom("b"), []*Frag{atom("c")})
	if got := r.DoubleDot(atom("a"), call).Code; got != "b(a, c)" {
		t.Fatalf("doubledot %q", got)
	}
	if got := r.DoubleDot(atom("a"), atom("f")).Code; got != "f(a)" {
		t.Fatalf("doubledot plain %q", got)
	}
	left := r.Call(atom("f"), []*Frag{atom("x")})
	if got := r.DoubleColon(left, atom("g")).Code; got != "f(x, g)" {
		t.Fatalf("doublecolon %q", got)
	}
	bl := atom("BL")
	if got := r.CallBlock(left, bl).Code; got != "f(x, BL)" {
		t.Fatalf("callblock %q", got)
	}
	if got := r.CallBlock(atom("run"), bl).Code; got != "run(BL)" {
		t.Fatalf("callblock plain %q", got)
	}
}

func TestRuntimeStrings(t *testing.T) {
	r := &runtimeKernel{}
	parts := []StrPart{{Lit: "a"}, {Exp: atom("b")}, {Lit: "c"}}
	if got := r.InterpString(parts).Code; got != `"a" + (b) + "c"` {
		t.Fatalf("istr %q", got)
	}
	lead := []StrPart{{Exp: atom("x")}, {Lit: "b"}}
	if got := r.InterpString(lead).Code; got != `"" + (x) + "b"` {
		t.Fatalf("istr pad %q", got)
	}
	if got := r.Quasi(lead).Code; got != `__oni_rt.Quasi("", (x), "b")` {
		t.Fatalf("quasi %q", got)
	}
}

func TestRuntimeSuspend(t *testing.T) {
	r := &runtimeKernel{}
	body := r.Block([]*Frag{r.ExprStmt(atom("go(resume)"))})
	got := r.WaitforSuspend(true, []*Frag{atom("x")}, body, CRF{}).Code
	want := "var x; __oni_rt.Suspend(function(resume) { go(resume); }, function(__v0) { (x = __v0); });"
	if got != want {
		t.Fatalf("suspend %q", got)
	}
	got = r.WaitforSuspend(false, nil, body, CRF{}).Code
	if !strings.HasSuffix(got, "function() {});") {
		t.Fatalf("empty settle %q", got)
	}
}

func TestRuntimeTry(t *testing.T) {
	r := &runtimeKernel{}
	body := r.Block([]*Frag{r.ExprStmt(atom("a()"))})
	rb := r.Block([]*Frag{r.ExprStmt(atom("r()"))})
	got := r.Try(body, CRF{Retract: rb}).Code
	want := "__oni_rt.Try(function() { a(); }, { r: function() { r(); } });"
	if got != want {
		t.Fatalf("try retract %q", got)
	}
	crf := CRF{CatchParam: "e", Catch: r.Block([]*Frag{r.ExprStmt(atom("b()"))})}
	if got := r.Try(body, crf).Code; got != "try { a(); } catch (e) { b(); }" {
		t.Fatalf("try native %q", got)
	}
}

func TestRuntimeObjectLit(t *testing.T) {
	r := &runtimeKernel{}
	ret := r.Block([]*Frag{r.Return(atom("1"))})
	entries := []ObjEntry{
		{Kind: ObjShorthand, Key: "a"},
		{Kind: ObjMethod, Key: "m", Val: ret},
	}
	want := "{ a: a, m: function() { return 1; } }"
	if got := r.ObjectLit(entries).Code; got != want {
		t.Fatalf("object %q", got)
	}
}

func TestSexpEmptyParams(t *testing.T) {
	s := &sexpKernel{}
	params := s.Group(s.Atom(""))
	if got := s.Arrow(params, atom("x"), true).Code; got != "(=> () x)" {
		t.Fatalf("arrow %q", got)
	}
}

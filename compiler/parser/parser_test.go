package parser

import (
	"strings"
	"testing"

	"github.com/elbow-jason/stratifiedjs/compiler/codegen"
)

func sexp(t *testing.T, src string) string {
	t.Helper()
	kern, err := codegen.New("sexp")
	if err != nil {
		t.Fatalf("kernel: %v", err)
	}
	return Translate(src, kern, Options{Filename: "test"})
}

func sexpGlobal(t *testing.T, src string) string {
	t.Helper()
	kern, _ := codegen.New("sexp")
	return Translate(src, kern, Options{GlobalReturn: true})
}

func parseErr(t *testing.T, src string) (err *Error) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("no error for %q", src)
		}
		e, ok := r.(*Error)
		if !ok {
			t.Fatalf("unexpected panic %v", r)
		}
		err = e
	}()
	kern, _ := codegen.New("sexp")
	Translate(src, kern, Options{})
	return
}

func check(t *testing.T, src, want string) {
	t.Helper()
	if got := sexp(t, src); got != want {
		t.Fatalf("%q\n got %s\nwant %s", src, got, want)
	}
}

func TestPrecedence(t *testing.T) {
	check(t, "1+2*3", "(+ 1 (* 2 3))")
	check(t, "1*2+3", "(+ (* 1 2) 3)")
	check(t, "(1+2)*3", "(* (+ 1 2) 3)")
	check(t, "a || b && c", "(|| a (&& b c))")
	check(t, "a < b == c", "(== (< a b) c)")
	check(t, "-a * b", "(* (- a) b)")
	check(t, "typeof a.b", "(typeof (. a b))")
	check(t, "a + b .. c", "(.. (+ a b) c)")
}

func TestRightAssociativity(t *testing.T) {
	check(t, "a = b = c", "(= a (= b c))")
	check(t, "a += b -= c", "(+= a (-= b c))")
	check(t, "a ? b : c ? d : e", "(?: a b (?: c d e))")
	check(t, "f :: g :: h", "(:: f (:: g h))")
}

func TestLeftAssociativity(t *testing.T) {
	check(t, "a - b - c", "(- (- a b) c)")
	check(t, "a .. b .. c", "(.. (.. a b) c)")
	check(t, "a.b.c", "(. (. a b) c)")
}

func TestPostfixNewlineRestriction(t *testing.T) {
	check(t, "x++", "(post++ x)")
	check(t, "x\n++y", "x (++ y)")
	check(t, "x++\ny", "(post++ x) y")
}

func TestNewExpressions(t *testing.T) {
	check(t, "new A", "(new A)")
	check(t, "new A(1, 2)", "(new A 1 2)")
	check(t, "new A.B(1)", "(new (. A B) 1)")
	check(t, "new A(1).b", "(. (new A 1) b)")
	check(t, "new A()()", "(call (new A))")
	check(t, "new new A()()", "(new (new A))")
	check(t, "new (f())(x)", "(new (call f) x)")
}

func TestCallsAndIndexing(t *testing.T) {
	check(t, "f(1)(2)", "(call (call f 1) 2)")
	check(t, "a[i+1]", "(at a (+ i 1))")
	check(t, "o.m(x)", "(call (. o m) x)")
	check(t, "@ns.run(1)", "(call (. @ns run) 1)")
}

func TestRegexAndDivision(t *testing.T) {
	check(t, "x = /ab/g", "(= x /ab/g)")
	check(t, "a / b / c", "(/ (/ a b) c)")
	check(t, "f(/re/)", "(call f /re/)")
}

func TestArrowFunctions(t *testing.T) {
	check(t, "x -> x + 1", "(-> x (+ x 1))")
	check(t, "(a, b) -> a + b", "(-> (, a b) (+ a b))")
	check(t, "() => this.x", "(=> () (. this x))")
	check(t, "f = -> 0", "(= f (-> () 0))")
}

func TestBlocklambdas(t *testing.T) {
	check(t, "each(xs) { |x| f(x) }", "(call each xs (blocklambda (x) (call f x)))")
	check(t, "run { || g() }", "(call run (blocklambda () (call g)))")
	check(t, "xs .. map(f)", "(.. xs (call map f))")
}

func TestStringsAndQuasis(t *testing.T) {
	check(t, `s = "a#{1+2}b"`, `(= s (istr "a" (+ 1 2) "b"))`)
	check(t, "q = `hi ${x}`", "(= q (quasi \"hi \" x))")
	check(t, "q = `v $f(1)`", "(= q (quasi \"v \" (call f 1)))")
	check(t, "\"a\nb\"", "(istr \"a\\nb\")")
}

func TestObjectLiterals(t *testing.T) {
	check(t, "x = {a: 1, b}", "(= x (object (a 1) (b)))")
	check(t, "x = {get v() { return 1 }}", "(= x (object (get v (block (return 1)))))")
	check(t, "x = {set v(n) { w = n }}", "(= x (object (set v (n) (block (= w n)))))")
	check(t, "x = {f(a) { return a }}", "(= x (object (method f (a) (block (return a)))))")
	check(t, "x = {'k': 1}", "(= x (object ('k' 1)))")
}

func TestDestructuring(t *testing.T) {
	check(t, "var [a, b] = p", "(var ((array a b) p))")
	check(t, "var {x, y: z} = p", "(var ((object (x) (y z)) p))")
	check(t, "function f([a], {b}) {}", "(function f ((array a) (object (b))) (block))")
}

func TestStatements(t *testing.T) {
	check(t, "if (a) b; else c;", "(if a b c)")
	check(t, "while (a) { b() }", "(while a (block (call b)))")
	check(t, "do { a() } while (b)", "(do-while (block (call a)) b)")
	check(t, "for (var i = 0; i < n; i++) { f(i) }",
		"(for (var (i 0)) (< i n) (post++ i) (block (call f i)))")
	check(t, "for (k in o) { f(k) }", "(for-in k o (block (call f k)))")
	check(t, "switch (x) { case 1: a(); break; default: b(); }",
		"(switch x (case 1 (call a) (break)) (default (call b)))")
	check(t, "lab: while (1) { break lab; }", "(label lab (while 1 (block (break lab))))")
	check(t, "function f(a) { return a; }", "(function f (a) (block (return a)))")
}

func TestForHeadInRestriction(t *testing.T) {
	check(t, "if (a in b) c;", "(if (in a b) c)")
	check(t, "for (x = (a in b); y; z) f();",
		"(for (= x (in a b)) y z (call f))")
}

func TestTryForms(t *testing.T) {
	check(t, "try { a() } catch (e) { b() }",
		"(try (block (call a)) (catch e (block (call b))))")
	check(t, "try { a() } retract { b() } finally { c() }",
		"(try (block (call a)) (retract (block (call b))) (finally (block (call c))))")
	check(t, "try { a() } catchall (e) { b() }",
		"(try (block (call a)) (catchall e (block (call b))))")
}

func TestWaitforComposite(t *testing.T) {
	check(t, "waitfor { a() } and { b() }",
		"(waitfor-and (block (call a)) (block (call b)))")
	check(t, "waitfor { a() } or { b() } or { c() }",
		"(waitfor-or (block (call a)) (block (call b)) (block (call c)))")
	check(t, "try { a() } and { b() } finally { c() }",
		"(waitfor-and (block (call a)) (block (call b)) (finally (block (call c))))")
	check(t, "waitfor { collapse; } or { b() }",
		"(waitfor-or (block (collapse)) (block (call b)))")
	check(t, "try { collapse; } or { b() }",
		"(waitfor-or (block (collapse)) (block (call b)))")
	check(t, "try { try { collapse; } catch (e) {} } and { b() }",
		"(waitfor-and (block (try (block (collapse)) (catch e (block)))) (block (call b)))")
}

func TestWaitforSuspend(t *testing.T) {
	check(t, "waitfor (var x) { go(resume); } retract { stop(); }",
		"(waitfor (x) (block (call go resume)) (retract (block (call stop))))")
	check(t, "waitfor () { go(resume); }", "(waitfor () (block (call go resume)))")
}

func TestUsingAndJs(t *testing.T) {
	check(t, "using (var c = open()) { c.read(); }",
		"(using (c (call open)) (block (call (. c read))))")
	check(t, "using (var c = open()) c.read();",
		"(using (c (call open)) (call (. c read)))")
	check(t, "using (f) g();", "(using f (call g))")
	check(t, "__js { a(); b(); }", "(js (block (call a) (call b)))")
}

func TestSpawnOperand(t *testing.T) {
	check(t, "spawn f()", "(spawn (call f))")
	check(t, "spawn f() + 1", "(spawn (+ (call f) 1))")
	check(t, "x = spawn f(1) .. g", "(= x (spawn (.. (call f 1) g)))")
	check(t, "f(spawn g(), 1)", "(call f (spawn (call g)) 1)")
}

func TestGlobalReturnOption(t *testing.T) {
	if got := sexpGlobal(t, "return 1"); got != "(return 1)" {
		t.Fatalf("global return %s", got)
	}
}

func TestStructuralErrors(t *testing.T) {
	cases := []struct {
		src, frag string
	}{
		{"try { a(); }", "try needs"},
		{"try { a() } catch (e) {} catch (f) {}", "duplicate catch"},
		{"try { a() } catch (e) {} catchall (f) {}", "duplicate catch"},
		{"try { a() } finally {} finally {}", "duplicate finally"},
		{"waitfor { a(); }", "at least two"},
		{"try { a() } and { b() } or { c() }", "cannot mix"},
		{"waitfor { a() } or { b() } and { c() }", "cannot mix"},
		{"return 1", "return outside"},
		{"for (var a, b in xs) {}", "more than one declaration"},
		{"for (var a = 1 in xs) {}", "cannot take an initializer"},
		{"break;", "break outside"},
		{"continue;", "continue outside"},
		{"collapse;", "collapse outside"},
		{"try { collapse; } catch (e) {}", "collapse outside"},
		{"while (1) { break lab; }", "undefined label"},
		{"lab: { lab: x; }", "already declared"},
	}
	for _, c := range cases {
		err := parseErr(t, c.src)
		if err.Kind != KindStructural {
			t.Fatalf("%q kind %d", c.src, err.Kind)
		}
		if !strings.Contains(err.Msg, c.frag) {
			t.Fatalf("%q msg %q", c.src, err.Msg)
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	for _, src := range []string{
		"a +",
		"1 2",
		"if (a",
		"x = ()",
		"f(,)",
		"throw\nx",
		"__js { waitfor { a() } and { b() } }",
		"__js { spawn f() }",
		"{|a b| 1}",
	} {
		if err := parseErr(t, src); err.Kind != KindSyntax {
			t.Fatalf("%q kind %d msg %q", src, err.Kind, err.Msg)
		}
	}
}

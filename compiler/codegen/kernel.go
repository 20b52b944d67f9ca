package codegen

import "fmt"

// Kernel turns parse events into output fragments. The parser calls
// one method per recognized production, innermost first, and never
// inspects what comes back beyond passing it to enclosing productions.
type Kernel interface {
	// expression position
	Atom(text string) *Frag
	AtName(name string) *Frag
	Group(inner *Frag) *Frag
	Infix(op string, l, r *Frag) *Frag
	Prefix(op string, r *Frag) *Frag
	Postfix(op string, l *Frag) *Frag
	Ternary(cond, yes, no *Frag) *Frag
	Arrow(params, body *Frag, fat bool) *Frag
	Call(callee *Frag, args []*Frag) *Frag
	CallBlock(call, block *Frag) *Frag
	New(callee *Frag, args []*Frag, called bool) *Frag
	Member(obj *Frag, name string) *Frag
	Index(obj, index *Frag) *Frag
	DoubleDot(l, r *Frag) *Frag
	DoubleColon(l, r *Frag) *Frag
	ArrayLit(elems []*Frag) *Frag
	ObjectLit(entries []ObjEntry) *Frag
	FunctionExpr(name string, params []*Frag, body *Frag) *Frag
	Blocklambda(params []*Frag, body []*Frag) *Frag
	InterpString(parts []StrPart) *Frag
	Quasi(parts []StrPart) *Frag
	SpawnExpr(e *Frag) *Frag

	// statement position
	Raw(text string) *Frag
	Empty() *Frag
	ExprStmt(e *Frag) *Frag
	VarDecls(decls []Decl) *Frag
	VarStmt(decls []Decl) *Frag
	Block(body []*Frag) *Frag
	If(cond, then, els *Frag) *Frag
	While(cond, body *Frag) *Frag
	DoWhile(body, cond *Frag) *Frag
	ForC(init, cond, update, body *Frag) *Frag
	ForIn(decl bool, lhs, obj, body *Frag) *Frag
	Switch(subject *Frag, clauses []SwitchClause) *Frag
	Return(e *Frag) *Frag
	Break(label string) *Frag
	Continue(label string) *Frag
	Throw(e *Frag) *Frag
	Label(name string, stmt *Frag) *Frag
	FunctionDecl(name string, params []*Frag, body *Frag) *Frag
	Try(block *Frag, crf CRF) *Frag
	WaitforAnd(blocks []*Frag, crf CRF) *Frag
	WaitforOr(blocks []*Frag, crf CRF) *Frag
	WaitforSuspend(decl bool, vars []*Frag, body *Frag, crf CRF) *Frag
	Using(decl bool, lhs, init, body *Frag) *Frag
	Collapse() *Frag
	JsBlock(body *Frag) *Frag

	Script(body []*Frag) string
}

// New returns the kernel registered under name.
func New(name string) (Kernel, error) {
	switch name {
	case "", "stringify":
		return &textKernel{}, nil
	case "minify":
		return &textKernel{compact: true}, nil
	case "runtime":
		return &runtimeKernel{}, nil
	case "sexp":
		return &sexpKernel{}, nil
	}
	return nil, fmt.Errorf("unknown kernel %q", name)
}

package codegen

import "strings"

// sexpKernel renders prefix forms that make grouping visible. Only
// the tests use it.
type sexpKernel struct{}

func sx(parts ...string) *Frag {
	return atom("(" + strings.Join(parts, " ") + ")")
}

func (self *sexpKernel) list(frags []*Frag) []string {
	codes := make([]string, len(frags))
	for i, f := range frags {
		codes[i] = f.Code
	}
	return codes
}

func (self *sexpKernel) Atom(text string) *Frag { return atom(text) }

func (self *sexpKernel) AtName(name string) *Frag { return atom("@" + name) }

func (self *sexpKernel) Group(inner *Frag) *Frag {
	return &Frag{Code: inner.Code, Kind: FragGroup, Inner: inner}
}

func (self *sexpKernel) Infix(op string, l, r *Frag) *Frag {
	return sx(op, l.Code, r.Code)
}

func (self *sexpKernel) Prefix(op string, r *Frag) *Frag {
	return sx(op, r.Code)
}

func (self *sexpKernel) Postfix(op string, l *Frag) *Frag {
	return sx("post"+op, l.Code)
}

func (self *sexpKernel) Ternary(cond, yes, no *Frag) *Frag {
	return sx("?:", cond.Code, yes.Code, no.Code)
}

func (self *sexpKernel) Arrow(params, body *Frag, fat bool) *Frag {
	op := "->"
	if fat {
		op = "=>"
	}
	p := "()"
	if params != nil && params.Code != "" {
		p = params.Code
	}
	return sx(op, p, body.Code)
}

func (self *sexpKernel) Call(callee *Frag, args []*Frag) *Frag {
	f := sx(append([]string{"call", callee.Code}, self.list(args)...)...)
	f.Kind = FragCall
	f.Callee = callee
	f.Args = args
	return f
}

func (self *sexpKernel) CallBlock(call, block *Frag) *Frag {
	if call.Kind == FragCall && call.Callee != nil {
		return self.Call(call.Callee, append(append([]*Frag{}, call.Args...), block))
	}
	return self.Call(call, []*Frag{block})
}

func (self *sexpKernel) New(callee *Frag, args []*Frag, called bool) *Frag {
	return sx(append([]string{"new", callee.Code}, self.list(args)...)...)
}

func (self *sexpKernel) Member(obj *Frag, name string) *Frag {
	return sx(".", obj.Code, name)
}

func (self *sexpKernel) Index(obj, index *Frag) *Frag {
	return sx("at", obj.Code, index.Code)
}

func (self *sexpKernel) DoubleDot(l, r *Frag) *Frag {
	return sx("..", l.Code, r.Code)
}

func (self *sexpKernel) DoubleColon(l, r *Frag) *Frag {
	return sx("::", l.Code, r.Code)
}

func (self *sexpKernel) ArrayLit(elems []*Frag) *Frag {
	return sx(append([]string{"array"}, self.list(elems)...)...)
}

func (self *sexpKernel) ObjectLit(entries []ObjEntry) *Frag {
	parts := []string{"object"}
	for _, e := range entries {
		switch e.Kind {
		case ObjShorthand:
			parts = append(parts, "("+e.Key+")")
		case ObjGetter:
			parts = append(parts, "(get "+e.Key+" "+e.Val.Code+")")
		case ObjSetter:
			parts = append(parts, "(set "+e.Key+" ("+strings.Join(self.list(e.Params), " ")+") "+e.Val.Code+")")
		case ObjMethod:
			parts = append(parts, "(method "+e.Key+" ("+strings.Join(self.list(e.Params), " ")+") "+e.Val.Code+")")
		default:
			parts = append(parts, "("+e.Key+" "+e.Val.Code+")")
		}
	}
	return sx(parts...)
}

func (self *sexpKernel) FunctionExpr(name string, params []*Frag, body *Frag) *Frag {
	parts := []string{"function"}
	if name != "" {
		parts = append(parts, name)
	}
	parts = append(parts, "("+strings.Join(self.list(params), " ")+")", body.Code)
	return sx(parts...)
}

func (self *sexpKernel) Blocklambda(params []*Frag, body []*Frag) *Frag {
	return sx(append([]string{"blocklambda", "(" + strings.Join(self.list(params), " ") + ")"},
		self.list(body)...)...)
}

func (self *sexpKernel) InterpString(parts []StrPart) *Frag {
	out := []string{"istr"}
	for _, p := range parts {
		if p.Exp != nil {
			out = append(out, p.Exp.Code)
		} else {
			out = append(out, `"`+p.Lit+`"`)
		}
	}
	return sx(out...)
}

func (self *sexpKernel) Quasi(parts []StrPart) *Frag {
	out := []string{"quasi"}
	for _, p := range parts {
		if p.Exp != nil {
			out = append(out, p.Exp.Code)
		} else {
			out = append(out, `"`+p.Lit+`"`)
		}
	}
	return sx(out...)
}

func (self *sexpKernel) SpawnExpr(e *Frag) *Frag { return sx("spawn", e.Code) }

func (self *sexpKernel) Raw(string) *Frag { return atom("") }

func (self *sexpKernel) Empty() *Frag { return sx("empty") }

func (self *sexpKernel) ExprStmt(e *Frag) *Frag { return e }

func (self *sexpKernel) VarDecls(decls []Decl) *Frag {
	parts := []string{"var"}
	for _, d := range decls {
		if d.Init != nil {
			parts = append(parts, "("+d.Lhs.Code+" "+d.Init.Code+")")
		} else {
			parts = append(parts, "("+d.Lhs.Code+")")
		}
	}
	return sx(parts...)
}

func (self *sexpKernel) VarStmt(decls []Decl) *Frag { return self.VarDecls(decls) }

func (self *sexpKernel) Block(body []*Frag) *Frag {
	f := sx(append([]string{"block"}, self.list(body)...)...)
	f.Inner = atom(strings.Join(self.list(body), " "))
	return f
}

func (self *sexpKernel) If(cond, then, els *Frag) *Frag {
	if els == nil {
		return sx("if", cond.Code, then.Code)
	}
	return sx("if", cond.Code, then.Code, els.Code)
}

func (self *sexpKernel) While(cond, body *Frag) *Frag {
	return sx("while", cond.Code, body.Code)
}

func (self *sexpKernel) DoWhile(body, cond *Frag) *Frag {
	return sx("do-while", body.Code, cond.Code)
}

func (self *sexpKernel) ForC(init, cond, update, body *Frag) *Frag {
	return sx("for", code(init), code(cond), code(update), body.Code)
}

func (self *sexpKernel) ForIn(decl bool, lhs, obj, body *Frag) *Frag {
	return sx("for-in", lhs.Code, obj.Code, body.Code)
}

func (self *sexpKernel) Switch(subject *Frag, clauses []SwitchClause) *Frag {
	parts := []string{"switch", subject.Code}
	for _, c := range clauses {
		if c.Cond == nil {
			parts = append(parts, "(default "+strings.Join(self.list(c.Body), " ")+")")
		} else {
			parts = append(parts, "(case "+c.Cond.Code+" "+strings.Join(self.list(c.Body), " ")+")")
		}
	}
	return sx(parts...)
}

func (self *sexpKernel) Return(e *Frag) *Frag {
	if e == nil {
		return sx("return")
	}
	return sx("return", e.Code)
}

func (self *sexpKernel) Break(label string) *Frag {
	if label == "" {
		return sx("break")
	}
	return sx("break", label)
}

func (self *sexpKernel) Continue(label string) *Frag {
	if label == "" {
		return sx("continue")
	}
	return sx("continue", label)
}

func (self *sexpKernel) Throw(e *Frag) *Frag { return sx("throw", e.Code) }

func (self *sexpKernel) Label(name string, stmt *Frag) *Frag {
	return sx("label", name, stmt.Code)
}

func (self *sexpKernel) FunctionDecl(name string, params []*Frag, body *Frag) *Frag {
	return self.FunctionExpr(name, params, body)
}

func (self *sexpKernel) crf(crf CRF) []string {
	var parts []string
	if crf.Catch != nil {
		kw := "catch"
		if crf.CatchAll {
			kw = "catchall"
		}
		parts = append(parts, "("+kw+" "+crf.CatchParam+" "+crf.Catch.Code+")")
	}
	if crf.Retract != nil {
		parts = append(parts, "(retract "+crf.Retract.Code+")")
	}
	if crf.Finally != nil {
		parts = append(parts, "(finally "+crf.Finally.Code+")")
	}
	return parts
}

func (self *sexpKernel) Try(block *Frag, crf CRF) *Frag {
	return sx(append([]string{"try", block.Code}, self.crf(crf)...)...)
}

func (self *sexpKernel) WaitforAnd(blocks []*Frag, crf CRF) *Frag {
	return sx(append(append([]string{"waitfor-and"}, self.list(blocks)...), self.crf(crf)...)...)
}

func (self *sexpKernel) WaitforOr(blocks []*Frag, crf CRF) *Frag {
	return sx(append(append([]string{"waitfor-or"}, self.list(blocks)...), self.crf(crf)...)...)
}

func (self *sexpKernel) WaitforSuspend(decl bool, vars []*Frag, body *Frag, crf CRF) *Frag {
	head := "(" + strings.Join(self.list(vars), " ") + ")"
	return sx(append([]string{"waitfor", head, body.Code}, self.crf(crf)...)...)
}

func (self *sexpKernel) Using(decl bool, lhs, init, body *Frag) *Frag {
	if init == nil {
		return sx("using", lhs.Code, body.Code)
	}
	return sx("using", "("+lhs.Code+" "+init.Code+")", body.Code)
}

func (self *sexpKernel) Collapse() *Frag { return sx("collapse") }

func (self *sexpKernel) JsBlock(body *Frag) *Frag {
	return sx("js", body.Code)
}

func (self *sexpKernel) Script(body []*Frag) string {
	var parts []string
	for _, f := range body {
		if f.Code != "" {
			parts = append(parts, f.Code)
		}
	}
	return strings.Join(parts, " ")
}

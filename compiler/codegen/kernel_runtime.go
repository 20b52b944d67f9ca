package codegen

import (
	"fmt"
	"strings"
)

// runtimeKernel lowers the dialect constructs onto the __oni_rt
// helper namespace and leaves plain JS untouched. The helpers live in
// the bundled oni-rt.js shim.
type runtimeKernel struct {
	textKernel
}

func paramsOf(f *Frag) string {
	if f == nil {
		return ""
	}
	if f.Kind == FragGroup && f.Inner != nil {
		return f.Inner.Code
	}
	return f.Code
}

func (self *runtimeKernel) AtName(name string) *Frag {
	if name == "" {
		return atom("__oni_altns")
	}
	return atom("__oni_altns." + name)
}

func (self *runtimeKernel) Arrow(params, body *Frag, fat bool) *Frag {
	code := "function(" + paramsOf(params) + ") { return " + body.Code + "; }"
	if fat {
		return atom("(" + code + ").bind(this)")
	}
	return atom(code)
}

func (self *runtimeKernel) Blocklambda(params []*Frag, body []*Frag) *Frag {
	return atom("__oni_rt.Blocklambda(function(" + self.list(params) + ") " +
		self.block(self.seq(body)) + ")")
}

// ObjectLit expands the shorthand entry forms the output language
// does not have.
func (self *runtimeKernel) ObjectLit(entries []ObjEntry) *Frag {
	parts := make([]string, len(entries))
	for i, e := range entries {
		switch e.Kind {
		case ObjShorthand:
			parts[i] = e.Key + ": " + e.Key
		case ObjMethod:
			parts[i] = e.Key + ": function(" + self.list(e.Params) + ") " + e.Val.Code
		case ObjGetter:
			parts[i] = "get " + e.Key + "() " + e.Val.Code
		case ObjSetter:
			parts[i] = "set " + e.Key + "(" + self.list(e.Params) + ") " + e.Val.Code
		default:
			parts[i] = e.Key + ": " + e.Val.Code
		}
	}
	return atom(self.block(strings.Join(parts, self.comma())))
}

func (self *runtimeKernel) CallBlock(call, block *Frag) *Frag {
	if call.Kind == FragCall && call.Callee != nil {
		args := append(append([]*Frag{}, call.Args...), block)
		return self.Call(call.Callee, args)
	}
	return self.Call(call, []*Frag{block})
}

func (self *runtimeKernel) DoubleDot(l, r *Frag) *Frag {
	if r.Kind == FragCall && r.Callee != nil {
		args := append([]*Frag{l}, r.Args...)
		return self.Call(r.Callee, args)
	}
	return self.Call(r, []*Frag{l})
}

func (self *runtimeKernel) DoubleColon(l, r *Frag) *Frag {
	if l.Kind == FragCall && l.Callee != nil {
		args := append(append([]*Frag{}, l.Args...), r)
		return self.Call(l.Callee, args)
	}
	return self.Call(l, []*Frag{r})
}

func (self *runtimeKernel) InterpString(parts []StrPart) *Frag {
	var pieces []string
	for _, p := range parts {
		if p.Exp != nil {
			pieces = append(pieces, "("+p.Exp.Code+")")
		} else {
			pieces = append(pieces, `"`+p.Lit+`"`)
		}
	}
	if len(pieces) == 0 {
		return atom(`""`)
	}
	if len(pieces) > 0 && pieces[0][0] == '(' {
		pieces = append([]string{`""`}, pieces...)
	}
	return atom(strings.Join(pieces, " + "))
}

func (self *runtimeKernel) Quasi(parts []StrPart) *Frag {
	// arguments alternate literal, expression, literal, ...
	var args []string
	lit := true
	for _, p := range parts {
		if p.Exp != nil {
			if lit {
				args = append(args, `""`)
			}
			args = append(args, "("+p.Exp.Code+")")
			lit = true
			continue
		}
		args = append(args, `"`+p.Lit+`"`)
		lit = false
	}
	return atom("__oni_rt.Quasi(" + strings.Join(args, ", ") + ")")
}

func (self *runtimeKernel) SpawnExpr(e *Frag) *Frag {
	return atom("__oni_rt.Spawn(function() { return " + e.Code + "; })")
}

func (self *runtimeKernel) handlers(crf CRF) string {
	var parts []string
	if crf.Catch != nil {
		key := "c"
		if crf.CatchAll {
			key = "a"
		}
		parts = append(parts, key+": function("+crf.CatchParam+") "+crf.Catch.Code)
	}
	if crf.Retract != nil {
		parts = append(parts, "r: function() "+crf.Retract.Code)
	}
	if crf.Finally != nil {
		parts = append(parts, "f: function() "+crf.Finally.Code)
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func (self *runtimeKernel) Try(block *Frag, crf CRF) *Frag {
	// retract and catchall observe abandonment, which a native
	// try/catch cannot see; those go through the runtime helper.
	if crf.Retract == nil && !crf.CatchAll {
		code := self.cat("try", self.sp(), block.Code)
		if c := self.crf(crf); c != "" {
			code = self.cat(code, self.sp(), c)
		}
		return atom(code)
	}
	return atom("__oni_rt.Try(function() " + block.Code + ", " + self.handlers(crf) + ");")
}

func (self *runtimeKernel) waitforRace(fn string, blocks []*Frag, crf CRF) *Frag {
	thunks := make([]string, len(blocks))
	for i, b := range blocks {
		thunks[i] = "function() " + b.Code
	}
	code := "__oni_rt." + fn + "([" + strings.Join(thunks, ", ") + "]"
	if !crf.Empty() {
		code += ", " + self.handlers(crf)
	}
	return atom(code + ");")
}

func (self *runtimeKernel) WaitforAnd(blocks []*Frag, crf CRF) *Frag {
	return self.waitforRace("WaitforAnd", blocks, crf)
}

func (self *runtimeKernel) WaitforOr(blocks []*Frag, crf CRF) *Frag {
	return self.waitforRace("WaitforOr", blocks, crf)
}

func (self *runtimeKernel) WaitforSuspend(decl bool, vars []*Frag, body *Frag, crf CRF) *Frag {
	var b strings.Builder
	if decl && len(vars) > 0 {
		b.WriteString("var " + self.list(vars) + "; ")
	}
	b.WriteString("__oni_rt.Suspend(function(resume) " + body.Code + ", function(")
	settle := make([]string, len(vars))
	for i := range vars {
		name := fmt.Sprintf("__v%d", i)
		settle[i] = "(" + vars[i].Code + " = " + name + ");"
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
	}
	if len(settle) == 0 {
		b.WriteString(") {}")
	} else {
		b.WriteString(") { " + strings.Join(settle, " ") + " }")
	}
	if !crf.Empty() {
		b.WriteString(", " + self.handlers(crf))
	}
	b.WriteString(");")
	return atom(b.String())
}

func (self *runtimeKernel) Using(decl bool, lhs, init, body *Frag) *Frag {
	resource, binder := lhs.Code, ""
	if decl {
		binder = lhs.Code
		resource = "null"
		if init != nil {
			resource = init.Code
		}
	}
	code := body.Code
	if body.Inner == nil {
		// a bare statement body still splices in as a function body
		code = self.block(code)
	}
	return atom("__oni_rt.Using(" + resource + ", function(" + binder + ") " + code + ");")
}

func (self *runtimeKernel) Collapse() *Frag {
	return atom("__oni_rt.collapse();")
}

func (self *runtimeKernel) JsBlock(body *Frag) *Frag {
	if body.Inner != nil {
		return atom(body.Inner.Code)
	}
	return atom(body.Code)
}

package codegen

import "strings"

// textKernel re-emits dialect source. With compact set it drops the
// cosmetic whitespace and relies on cat's separator rule to keep the
// output tokenizing the same way.
type textKernel struct {
	compact bool
}

// cat joins pre-rendered pieces, inserting a space wherever the
// abutting bytes would fuse into a different token.
func (self *textKernel) cat(parts ...string) string {
	var b strings.Builder
	var last byte
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 && needsSep(last, p[0]) {
			b.WriteByte(' ')
		}
		b.WriteString(p)
		last = p[len(p)-1]
	}
	return b.String()
}

func needsSep(a, b byte) bool {
	if isWordByte(a) && isWordByte(b) {
		return true
	}
	if a >= '0' && a <= '9' && b == '.' {
		return true
	}
	if a == '.' && b >= '0' && b <= '9' {
		return true
	}
	switch string([]byte{a, b}) {
	case "++", "--", "//", "/*", "<<", ">>", "..", "::":
		return true
	}
	return false
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '_' || c == '$'
}

func (self *textKernel) bin(l, op, r string) string {
	if self.compact {
		return self.cat(l, op, r)
	}
	return l + " " + op + " " + r
}

func (self *textKernel) comma() string {
	if self.compact {
		return ","
	}
	return ", "
}

func (self *textKernel) list(frags []*Frag) string {
	codes := make([]string, len(frags))
	for i, f := range frags {
		codes[i] = f.Code
	}
	return strings.Join(codes, self.comma())
}

// seq joins statement fragments. Line markers from keepline mode pass
// through untouched and suppress the cosmetic space around them.
func (self *textKernel) seq(body []*Frag) string {
	if self.compact {
		codes := make([]string, len(body))
		for i, f := range body {
			codes[i] = f.Code
		}
		return self.cat(codes...)
	}
	var b strings.Builder
	prev := ""
	for _, f := range body {
		if f.Code == "" {
			continue
		}
		if b.Len() > 0 && !strings.HasSuffix(prev, "\n") && !strings.HasPrefix(f.Code, "\n") {
			b.WriteByte(' ')
		}
		b.WriteString(f.Code)
		prev = f.Code
	}
	return b.String()
}

func (self *textKernel) block(body string) string {
	if body == "" {
		return "{}"
	}
	if self.compact {
		return self.cat("{", body, "}")
	}
	return "{ " + body + " }"
}

func (self *textKernel) head(kw, cond string) string {
	if self.compact {
		return kw + "(" + cond + ")"
	}
	return kw + " (" + cond + ") "
}

func (self *textKernel) Atom(text string) *Frag {
	return atom(text)
}

func (self *textKernel) AtName(name string) *Frag {
	return atom("@" + name)
}

func (self *textKernel) Group(inner *Frag) *Frag {
	return &Frag{Code: "(" + inner.Code + ")", Kind: FragGroup, Inner: inner}
}

func (self *textKernel) Infix(op string, l, r *Frag) *Frag {
	if op == "," {
		return atom(l.Code + self.comma() + r.Code)
	}
	return atom(self.bin(l.Code, op, r.Code))
}

func (self *textKernel) Prefix(op string, r *Frag) *Frag {
	return atom(self.cat(op, r.Code))
}

func (self *textKernel) Postfix(op string, l *Frag) *Frag {
	return atom(self.cat(l.Code, op))
}

func (self *textKernel) Ternary(cond, yes, no *Frag) *Frag {
	if self.compact {
		return atom(self.cat(cond.Code, "?", yes.Code, ":", no.Code))
	}
	return atom(cond.Code + " ? " + yes.Code + " : " + no.Code)
}

func (self *textKernel) Arrow(params, body *Frag, fat bool) *Frag {
	op := "->"
	if fat {
		op = "=>"
	}
	if params == nil {
		return atom(self.cat(op, body.Code))
	}
	return atom(self.bin(params.Code, op, body.Code))
}

func (self *textKernel) Call(callee *Frag, args []*Frag) *Frag {
	return &Frag{
		Code:   callee.Code + "(" + self.list(args) + ")",
		Kind:   FragCall,
		Callee: callee,
		Args:   args,
	}
}

func (self *textKernel) CallBlock(call, block *Frag) *Frag {
	f := &Frag{Code: self.cat(call.Code, self.sp(), block.Code), Kind: FragCall}
	if call.Kind == FragCall {
		f.Callee = call.Callee
		f.Args = append(append([]*Frag{}, call.Args...), block)
	} else {
		f.Callee = call
		f.Args = []*Frag{block}
	}
	return f
}

func (self *textKernel) New(callee *Frag, args []*Frag, called bool) *Frag {
	code := self.cat("new", callee.Code)
	if called {
		code += "(" + self.list(args) + ")"
	}
	return &Frag{Code: code, Kind: FragCall, Callee: callee, Args: args}
}

func (self *textKernel) Member(obj *Frag, name string) *Frag {
	return atom(self.cat(obj.Code, ".", name))
}

func (self *textKernel) Index(obj, index *Frag) *Frag {
	return atom(obj.Code + "[" + index.Code + "]")
}

func (self *textKernel) DoubleDot(l, r *Frag) *Frag {
	return atom(self.bin(l.Code, "..", r.Code))
}

func (self *textKernel) DoubleColon(l, r *Frag) *Frag {
	return atom(self.bin(l.Code, "::", r.Code))
}

func (self *textKernel) ArrayLit(elems []*Frag) *Frag {
	return atom("[" + self.list(elems) + "]")
}

func (self *textKernel) ObjectLit(entries []ObjEntry) *Frag {
	parts := make([]string, len(entries))
	for i, e := range entries {
		switch e.Kind {
		case ObjShorthand:
			parts[i] = e.Key
		case ObjGetter:
			parts[i] = self.cat("get", e.Key, "()", self.sp(), e.Val.Code)
		case ObjSetter:
			parts[i] = self.cat("set", e.Key, "("+self.list(e.Params)+")", self.sp(), e.Val.Code)
		case ObjMethod:
			parts[i] = self.cat(e.Key, "("+self.list(e.Params)+")", self.sp(), e.Val.Code)
		default:
			if self.compact {
				parts[i] = self.cat(e.Key, ":", e.Val.Code)
			} else {
				parts[i] = e.Key + ": " + e.Val.Code
			}
		}
	}
	return atom(self.block(strings.Join(parts, self.comma())))
}

func (self *textKernel) sp() string {
	if self.compact {
		return ""
	}
	return " "
}

func (self *textKernel) fn(name string, params []*Frag, body *Frag) string {
	return self.cat("function", name, "("+self.list(params)+")", self.sp(), body.Code)
}

func (self *textKernel) FunctionExpr(name string, params []*Frag, body *Frag) *Frag {
	return atom(self.fn(name, params, body))
}

func (self *textKernel) Blocklambda(params []*Frag, body []*Frag) *Frag {
	inner := self.cat("|"+self.list(params)+"|", self.sp(), self.seq(body))
	return atom(self.block(inner))
}

func (self *textKernel) InterpString(parts []StrPart) *Frag {
	var b strings.Builder
	b.WriteByte('"')
	for _, p := range parts {
		if p.Exp != nil {
			b.WriteString("#{" + p.Exp.Code + "}")
		} else {
			b.WriteString(p.Lit)
		}
	}
	b.WriteByte('"')
	return atom(b.String())
}

func (self *textKernel) Quasi(parts []StrPart) *Frag {
	var b strings.Builder
	b.WriteByte('`')
	for _, p := range parts {
		if p.Exp != nil {
			b.WriteString("${" + p.Exp.Code + "}")
		} else {
			b.WriteString(p.Lit)
		}
	}
	b.WriteByte('`')
	return atom(b.String())
}

func (self *textKernel) SpawnExpr(e *Frag) *Frag {
	return atom(self.cat("spawn", e.Code))
}

func (self *textKernel) Raw(text string) *Frag {
	return atom(text)
}

func (self *textKernel) Empty() *Frag {
	return atom(";")
}

func (self *textKernel) ExprStmt(e *Frag) *Frag {
	return atom(e.Code + ";")
}

func (self *textKernel) VarDecls(decls []Decl) *Frag {
	parts := make([]string, len(decls))
	for i, d := range decls {
		if d.Init != nil {
			parts[i] = self.bin(d.Lhs.Code, "=", d.Init.Code)
		} else {
			parts[i] = d.Lhs.Code
		}
	}
	return atom(self.cat("var", strings.Join(parts, self.comma())))
}

func (self *textKernel) VarStmt(decls []Decl) *Frag {
	return atom(self.VarDecls(decls).Code + ";")
}

func (self *textKernel) Block(body []*Frag) *Frag {
	inner := self.seq(body)
	return &Frag{Code: self.block(inner), Inner: atom(inner)}
}

func (self *textKernel) If(cond, then, els *Frag) *Frag {
	code := self.cat(self.head("if", cond.Code), then.Code)
	if els != nil {
		code = self.cat(code, self.sp(), "else", self.sp(), els.Code)
	}
	return atom(code)
}

func (self *textKernel) While(cond, body *Frag) *Frag {
	return atom(self.cat(self.head("while", cond.Code), body.Code))
}

func (self *textKernel) DoWhile(body, cond *Frag) *Frag {
	if self.compact {
		return atom(self.cat("do", body.Code, "while", "("+cond.Code+")", ";"))
	}
	return atom("do " + body.Code + " while (" + cond.Code + ");")
}

func (self *textKernel) ForC(init, cond, update, body *Frag) *Frag {
	h := code(init) + ";" + self.sp() + code(cond) + ";" + self.sp() + code(update)
	return atom(self.cat(self.head("for", h), body.Code))
}

func (self *textKernel) ForIn(decl bool, lhs, obj, body *Frag) *Frag {
	h := lhs.Code
	if decl {
		h = self.cat("var", h)
	}
	h = self.cat(h, "in", obj.Code)
	return atom(self.cat(self.head("for", h), body.Code))
}

func (self *textKernel) Switch(subject *Frag, clauses []SwitchClause) *Frag {
	var parts []string
	for _, c := range clauses {
		if c.Cond == nil {
			parts = append(parts, self.cat("default:", self.seq(c.Body)))
		} else {
			parts = append(parts, self.cat("case", c.Cond.Code+":", self.seq(c.Body)))
		}
	}
	body := self.cat(parts...)
	if !self.compact {
		body = strings.Join(parts, " ")
	}
	return atom(self.cat(self.head("switch", subject.Code), self.block(body)))
}

func (self *textKernel) Return(e *Frag) *Frag {
	if e == nil {
		return atom("return;")
	}
	return atom(self.cat("return", e.Code) + ";")
}

func (self *textKernel) Break(label string) *Frag {
	return atom(self.cat("break", label) + ";")
}

func (self *textKernel) Continue(label string) *Frag {
	return atom(self.cat("continue", label) + ";")
}

func (self *textKernel) Throw(e *Frag) *Frag {
	return atom(self.cat("throw", e.Code) + ";")
}

func (self *textKernel) Label(name string, stmt *Frag) *Frag {
	if self.compact {
		return atom(self.cat(name+":", stmt.Code))
	}
	return atom(name + ": " + stmt.Code)
}

func (self *textKernel) FunctionDecl(name string, params []*Frag, body *Frag) *Frag {
	return atom(self.fn(name, params, body))
}

func (self *textKernel) crf(crf CRF) string {
	var parts []string
	if crf.Catch != nil {
		kw := "catch"
		if crf.CatchAll {
			kw = "catchall"
		}
		parts = append(parts, self.cat(kw, self.sp(), "("+crf.CatchParam+")", self.sp(), crf.Catch.Code))
	}
	if crf.Retract != nil {
		parts = append(parts, self.cat("retract", self.sp(), crf.Retract.Code))
	}
	if crf.Finally != nil {
		parts = append(parts, self.cat("finally", self.sp(), crf.Finally.Code))
	}
	if self.compact {
		return self.cat(parts...)
	}
	return strings.Join(parts, " ")
}

func (self *textKernel) Try(block *Frag, crf CRF) *Frag {
	code := self.cat("try", self.sp(), block.Code)
	if c := self.crf(crf); c != "" {
		code = self.cat(code, self.sp(), c)
	}
	return atom(code)
}

func (self *textKernel) waitforJoin(kw string, blocks []*Frag, crf CRF) *Frag {
	code := self.cat("waitfor", self.sp(), blocks[0].Code)
	for _, b := range blocks[1:] {
		code = self.cat(code, self.sp(), kw, self.sp(), b.Code)
	}
	if c := self.crf(crf); c != "" {
		code = self.cat(code, self.sp(), c)
	}
	return atom(code)
}

func (self *textKernel) WaitforAnd(blocks []*Frag, crf CRF) *Frag {
	return self.waitforJoin("and", blocks, crf)
}

func (self *textKernel) WaitforOr(blocks []*Frag, crf CRF) *Frag {
	return self.waitforJoin("or", blocks, crf)
}

func (self *textKernel) WaitforSuspend(decl bool, vars []*Frag, body *Frag, crf CRF) *Frag {
	h := self.list(vars)
	if decl {
		h = self.cat("var", h)
	}
	code := self.cat(self.head("waitfor", h), body.Code)
	if c := self.crf(crf); c != "" {
		code = self.cat(code, self.sp(), c)
	}
	return atom(code)
}

func (self *textKernel) Using(decl bool, lhs, init, body *Frag) *Frag {
	h := lhs.Code
	if decl {
		h = self.cat("var", h)
	}
	if init != nil {
		h = self.bin(h, "=", init.Code)
	}
	return atom(self.cat(self.head("using", h), body.Code))
}

func (self *textKernel) Collapse() *Frag {
	return atom("collapse;")
}

func (self *textKernel) JsBlock(body *Frag) *Frag {
	return atom(self.cat("__js", self.sp(), body.Code))
}

func (self *textKernel) Script(body []*Frag) string {
	return self.seq(body)
}

func code(f *Frag) string {
	if f == nil {
		return ""
	}
	return f.Code
}

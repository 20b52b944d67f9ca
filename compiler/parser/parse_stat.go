package parser

import (
	"github.com/elbow-jason/stratifiedjs/compiler/codegen"
	"github.com/elbow-jason/stratifiedjs/compiler/lexer"
)

func (self *parseCtx) statement() *codegen.Frag {
	t, sem := self.tok, self.sem
	if sem.stmt != nil {
		self.advance()
		return sem.stmt(self, t)
	}
	if t.Kind == lexer.TOKEN_ID && sem == table["<id>"] && self.lx.ColonAhead() {
		return self.labelStatement()
	}
	e := self.expr(bpNone)
	self.semi()
	return self.kern.ExprStmt(e)
}

func (self *parseCtx) labelStatement() *codegen.Frag {
	name, line := self.tok.Text, self.tok.Line
	self.advance()
	self.expectM(":", lexer.ModeSA)
	self.declareLabel(name, line)
	stmt := self.statement()
	self.dropLabel(name)
	return self.kern.Label(name, stmt)
}

// braceBlock parses '{' statements '}' as a block fragment. endMode
// picks the tokenizer state after the closing brace.
func (self *parseCtx) braceBlock(endMode int) *codegen.Frag {
	self.expect("{")
	var body []*codegen.Frag
	for !self.at("}") {
		if self.atEOF() {
			self.errSyntax(self.tok.Line, "unexpected end of input in block")
		}
		body = self.lineMarkers(body)
		body = append(body, self.statement())
	}
	body = self.lineMarkers(body)
	self.expectM("}", endMode)
	return self.kern.Block(body)
}

func stEmpty(self *parseCtx, t lexer.Token) *codegen.Frag {
	return self.kern.Empty()
}

// stBlock is '{' in statement position: a block, unless a parameter
// bar makes it a blocklambda expression statement.
func stBlock(self *parseCtx, t lexer.Token) *codegen.Frag {
	if self.at("|") || self.at("||") {
		e := self.climb(bpNone, self.blocklambdaRest())
		self.semi()
		return self.kern.ExprStmt(e)
	}
	var body []*codegen.Frag
	for !self.at("}") {
		if self.atEOF() {
			self.errSyntax(self.tok.Line, "unexpected end of input in block")
		}
		body = self.lineMarkers(body)
		body = append(body, self.statement())
	}
	body = self.lineMarkers(body)
	self.expectM("}", lexer.ModeSA)
	return self.kern.Block(body)
}

func (self *parseCtx) varDecls() []codegen.Decl {
	var decls []codegen.Decl
	for {
		d := codegen.Decl{Lhs: self.bindTarget()}
		if self.at("=") {
			self.advance()
			d.Init = self.expr(bpComma)
		}
		decls = append(decls, d)
		if !self.at(",") {
			return decls
		}
		self.advance()
	}
}

func stVar(self *parseCtx, t lexer.Token) *codegen.Frag {
	decls := self.varDecls()
	self.semi()
	return self.kern.VarStmt(decls)
}

func stIf(self *parseCtx, t lexer.Token) *codegen.Frag {
	self.expect("(")
	cond := self.expr(bpNone)
	self.expectM(")", lexer.ModeSA)
	then := self.statement()
	var els *codegen.Frag
	if self.at("else") {
		self.advance()
		els = self.statement()
	}
	return self.kern.If(cond, then, els)
}

func stWhile(self *parseCtx, t lexer.Token) *codegen.Frag {
	self.expect("(")
	cond := self.expr(bpNone)
	self.expectM(")", lexer.ModeSA)
	self.enterLoop()
	body := self.statement()
	self.leaveLoop()
	return self.kern.While(cond, body)
}

func stDo(self *parseCtx, t lexer.Token) *codegen.Frag {
	self.enterLoop()
	body := self.statement()
	self.leaveLoop()
	self.expect("while")
	self.expect("(")
	cond := self.expr(bpNone)
	self.expectM(")", lexer.ModeOp)
	self.semi()
	return self.kern.DoWhile(body, cond)
}

func stFor(self *parseCtx, t lexer.Token) *codegen.Frag {
	self.expect("(")
	var init *codegen.Frag
	switch {
	case self.at(";"):
	case self.at("var"):
		self.advance()
		lhs := self.bindTarget()
		if self.at("in") {
			self.advance()
			return self.forInTail(true, lhs)
		}
		d := codegen.Decl{Lhs: lhs}
		if self.at("=") {
			self.advance()
			d.Init = self.exprNoIn(bpComma)
		}
		if self.at("in") {
			self.errStructural(self.tok.Line, "for-in declaration cannot take an initializer")
		}
		decls := []codegen.Decl{d}
		for self.at(",") {
			self.advance()
			d := codegen.Decl{Lhs: self.bindTarget()}
			if self.at("=") {
				self.advance()
				d.Init = self.exprNoIn(bpComma)
			}
			decls = append(decls, d)
		}
		if self.at("in") {
			self.errStructural(self.tok.Line, "more than one declaration in a for-in head")
		}
		init = self.kern.VarDecls(decls)
	default:
		e := self.exprNoIn(bpNone)
		if self.at("in") {
			self.advance()
			return self.forInTail(false, e)
		}
		init = e
	}
	self.expect(";")
	var cond *codegen.Frag
	if !self.at(";") {
		cond = self.expr(bpNone)
	}
	self.expect(";")
	var update *codegen.Frag
	if !self.at(")") {
		update = self.expr(bpNone)
	}
	self.expectM(")", lexer.ModeSA)
	self.enterLoop()
	body := self.statement()
	self.leaveLoop()
	return self.kern.ForC(init, cond, update, body)
}

func (self *parseCtx) forInTail(decl bool, lhs *codegen.Frag) *codegen.Frag {
	obj := self.expr(bpNone)
	self.expectM(")", lexer.ModeSA)
	self.enterLoop()
	body := self.statement()
	self.leaveLoop()
	return self.kern.ForIn(decl, lhs, obj, body)
}

func stSwitch(self *parseCtx, t lexer.Token) *codegen.Frag {
	self.expect("(")
	subject := self.expr(bpNone)
	self.expectM(")", lexer.ModeSA)
	self.expect("{")
	self.enterSwitch()
	var clauses []codegen.SwitchClause
	for !self.at("}") {
		var clause codegen.SwitchClause
		switch {
		case self.at("case"):
			self.advance()
			clause.Cond = self.expr(bpNone)
			self.expectM(":", lexer.ModeSA)
		case self.at("default"):
			self.advance()
			self.expectM(":", lexer.ModeSA)
		default:
			self.errSyntax(self.tok.Line, "expected case or default but got %s", self.tok.Desc())
		}
		for !self.at("case") && !self.at("default") && !self.at("}") {
			if self.atEOF() {
				self.errSyntax(self.tok.Line, "unexpected end of input in switch")
			}
			clause.Body = self.lineMarkers(clause.Body)
			clause.Body = append(clause.Body, self.statement())
		}
		clauses = append(clauses, clause)
	}
	self.leaveSwitch()
	self.expectM("}", lexer.ModeSA)
	return self.kern.Switch(subject, clauses)
}

func stReturn(self *parseCtx, t lexer.Token) *codegen.Frag {
	if !self.scope().returnOK {
		self.errStructural(t.Line, "return outside of a function")
	}
	var e *codegen.Frag
	if !self.at(";") && !self.at("}") && !self.atEOF() && self.tok.Newlines == 0 {
		e = self.expr(bpNone)
	}
	self.semi()
	return self.kern.Return(e)
}

func stBreak(self *parseCtx, t lexer.Token) *codegen.Frag {
	label := ""
	if self.tok.Kind == lexer.TOKEN_ID && self.sem == table["<id>"] && self.tok.Newlines == 0 {
		label = self.tok.Text
		self.checkLabel(label, self.tok.Line)
		self.advance()
	}
	if label == "" {
		sc := self.scope()
		if sc.loops == 0 && sc.switches == 0 {
			self.errStructural(t.Line, "break outside of a loop or switch")
		}
	}
	self.semi()
	return self.kern.Break(label)
}

func stContinue(self *parseCtx, t lexer.Token) *codegen.Frag {
	label := ""
	if self.tok.Kind == lexer.TOKEN_ID && self.sem == table["<id>"] && self.tok.Newlines == 0 {
		label = self.tok.Text
		self.checkLabel(label, self.tok.Line)
		self.advance()
	}
	if label == "" && self.scope().loops == 0 {
		self.errStructural(t.Line, "continue outside of a loop")
	}
	self.semi()
	return self.kern.Continue(label)
}

func stThrow(self *parseCtx, t lexer.Token) *codegen.Frag {
	if self.tok.Newlines > 0 {
		self.errSyntax(t.Line, "illegal newline after throw")
	}
	e := self.expr(bpNone)
	self.semi()
	return self.kern.Throw(e)
}

func stFunction(self *parseCtx, t lexer.Token) *codegen.Frag {
	if self.tok.Kind != lexer.TOKEN_ID || self.sem != table["<id>"] {
		self.errSyntax(self.tok.Line, "expected function name but got %s", self.tok.Desc())
	}
	name := self.tok.Text
	self.advance()
	params := self.paramList()
	body := self.fnBody(lexer.ModeSA)
	return self.kern.FunctionDecl(name, params, body)
}

// crfClauses parses the catch/retract/finally tail shared by try and
// the waitfor forms. Clauses may come in any order, once each.
func (self *parseCtx) crfClauses() codegen.CRF {
	var crf codegen.CRF
	for {
		switch {
		case self.at("catch"), self.at("catchall"):
			if crf.Catch != nil {
				self.errStructural(self.tok.Line, "duplicate catch clause")
			}
			crf.CatchAll = self.tok.Text == "catchall"
			self.advance()
			self.expect("(")
			if self.tok.Kind != lexer.TOKEN_ID {
				self.errSyntax(self.tok.Line, "expected identifier but got %s", self.tok.Desc())
			}
			crf.CatchParam = self.tok.Text
			self.advance()
			self.expectM(")", lexer.ModeSA)
			crf.Catch = self.braceBlock(lexer.ModeSA)
		case self.at("retract"):
			if crf.Retract != nil {
				self.errStructural(self.tok.Line, "duplicate retract clause")
			}
			self.advance()
			crf.Retract = self.braceBlock(lexer.ModeSA)
		case self.at("finally"):
			if crf.Finally != nil {
				self.errStructural(self.tok.Line, "duplicate finally clause")
			}
			self.advance()
			crf.Finally = self.braceBlock(lexer.ModeSA)
		default:
			return crf
		}
	}
}

// waitforBranch parses one branch block of a composite waitfor;
// collapse is legal inside.
func (self *parseCtx) waitforBranch() *codegen.Frag {
	sc := self.scope()
	sc.waitfors++
	b := self.braceBlock(lexer.ModeSA)
	sc.waitfors--
	return b
}

func stTry(self *parseCtx, t lexer.Token) *codegen.Frag {
	sc := self.scope()
	sc.tries++
	saved := sc.tryCollapse
	sc.tryCollapse = 0
	block := self.braceBlock(lexer.ModeSA)
	pending := sc.tryCollapse
	sc.tryCollapse = saved
	sc.tries--
	if self.at("and") || self.at("or") {
		// a try block followed by branch connectives is a composite
		// waitfor written in try form; a collapse inside the block
		// was a branch collapse after all
		return self.waitforTail(t, []*codegen.Frag{block})
	}
	if pending > 0 {
		if sc.tries > 0 {
			// an enclosing try is still undecided, hand it up
			if sc.tryCollapse == 0 {
				sc.tryCollapse = pending
			}
		} else {
			self.errStructural(pending, "collapse outside of a waitfor branch")
		}
	}
	crf := self.crfClauses()
	if crf.Empty() {
		self.errStructural(t.Line, "try needs a catch, retract or finally clause")
	}
	return self.kern.Try(block, crf)
}

// waitforTail parses the and/or branch chain, the CRF tail, and
// closes over blocks already parsed.
func (self *parseCtx) waitforTail(t lexer.Token, blocks []*codegen.Frag) *codegen.Frag {
	kw := ""
	for self.at("and") || self.at("or") {
		if kw == "" {
			kw = self.tok.Text
		} else if self.tok.Text != kw {
			self.errStructural(self.tok.Line, "cannot mix and/or branches in one waitfor")
		}
		self.advance()
		blocks = append(blocks, self.waitforBranch())
	}
	if len(blocks) < 2 {
		self.errStructural(t.Line, "waitfor needs at least two branch blocks")
	}
	crf := self.crfClauses()
	if kw == "or" {
		return self.kern.WaitforOr(blocks, crf)
	}
	return self.kern.WaitforAnd(blocks, crf)
}

func stWaitfor(self *parseCtx, t lexer.Token) *codegen.Frag {
	if self.inJs {
		self.errSyntax(t.Line, "waitfor is not available inside __js")
	}
	switch {
	case self.at("("):
		self.advance()
		decl := false
		if self.at("var") {
			decl = true
			self.advance()
		}
		var vars []*codegen.Frag
		for !self.at(")") {
			vars = append(vars, self.bindTarget())
			if !self.at(",") {
				break
			}
			self.advance()
		}
		self.expectM(")", lexer.ModeSA)
		body := self.braceBlock(lexer.ModeSA)
		crf := self.crfClauses()
		return self.kern.WaitforSuspend(decl, vars, body, crf)
	case self.at("{"):
		blocks := []*codegen.Frag{self.waitforBranch()}
		return self.waitforTail(t, blocks)
	}
	self.errSyntax(self.tok.Line, "expected ( or { after waitfor")
	return nil
}

func stUsing(self *parseCtx, t lexer.Token) *codegen.Frag {
	if self.inJs {
		self.errSyntax(t.Line, "using is not available inside __js")
	}
	self.expect("(")
	decl := false
	var lhs, init *codegen.Frag
	if self.at("var") {
		decl = true
		self.advance()
		lhs = self.bindTarget()
		if self.at("=") {
			self.advance()
			init = self.expr(bpComma)
		}
	} else {
		lhs = self.expr(bpNone)
	}
	self.expectM(")", lexer.ModeSA)
	// the body is any statement, not only a block
	body := self.statement()
	return self.kern.Using(decl, lhs, init, body)
}

func stCollapse(self *parseCtx, t lexer.Token) *codegen.Frag {
	if self.inJs {
		self.errSyntax(t.Line, "collapse is not available inside __js")
	}
	sc := self.scope()
	if sc.waitfors == 0 {
		if sc.tries == 0 {
			self.errStructural(t.Line, "collapse outside of a waitfor branch")
		}
		// inside a try block that may yet turn out to be a waitfor
		// branch; the verdict falls when the block closes
		if sc.tryCollapse == 0 {
			sc.tryCollapse = t.Line
		}
	}
	self.semi()
	return self.kern.Collapse()
}

func stJs(self *parseCtx, t lexer.Token) *codegen.Frag {
	saved := self.inJs
	self.inJs = true
	block := self.braceBlock(lexer.ModeSA)
	self.inJs = saved
	return self.kern.JsBlock(block)
}

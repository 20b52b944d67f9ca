package parser

import (
	"strings"

	"github.com/elbow-jason/stratifiedjs/compiler/codegen"
	"github.com/elbow-jason/stratifiedjs/compiler/lexer"
)

// expr parses one expression, consuming continuations while their
// binding power exceeds min.
func (self *parseCtx) expr(min float64) *codegen.Frag {
	t, sem := self.tok, self.sem
	if sem.exs == nil {
		self.errSyntax(t.Line, "expected expression but got %s", t.Desc())
	}
	self.advance()
	return self.climb(min, sem.exs(self, t))
}

// exprNoIn is the for-head entry: the `in` continuation is off until
// the head is resolved.
func (self *parseCtx) exprNoIn(min float64) *codegen.Frag {
	self.noIn = true
	defer func() { self.noIn = false }()
	return self.expr(min)
}

// enterBracket opens a nested expression context: pending `new` marks
// stop matching and the no-in restriction is lifted until the matching
// leaveBracket.
func (self *parseCtx) enterBracket() bool {
	saved := self.noIn
	self.noIn = false
	self.exprDepth++
	return saved
}

func (self *parseCtx) leaveBracket(saved bool) {
	self.noIn = saved
	self.exprDepth--
}

func (self *parseCtx) climb(min float64, left *codegen.Frag) *codegen.Frag {
	for {
		t, sem := self.tok, self.sem
		if sem.exc == nil || sem.lbp <= min {
			return left
		}
		if self.noIn && t.Kind == lexer.TOKEN_ID && t.Text == "in" {
			return left
		}
		if sem.restricted && t.Newlines > 0 {
			return left
		}
		if sem.id == "{" && !self.lx.PipeAhead() {
			return left
		}
		self.advance()
		left = sem.exc(self, t, left)
	}
}

func exsAt(self *parseCtx, t lexer.Token) *codegen.Frag {
	return self.kern.AtName(strings.TrimPrefix(t.Text, "@"))
}

func excTernary(self *parseCtx, t lexer.Token, left *codegen.Frag) *codegen.Frag {
	yes := self.expr(bpComma)
	self.expectM(":", lexer.ModeSA)
	no := self.expr(bpTernary - rightStep)
	return self.kern.Ternary(left, yes, no)
}

func excDoubleDot(self *parseCtx, t lexer.Token, left *codegen.Frag) *codegen.Frag {
	return self.kern.DoubleDot(left, self.expr(bpDoubleDot))
}

func excDoubleColon(self *parseCtx, t lexer.Token, left *codegen.Frag) *codegen.Frag {
	return self.kern.DoubleColon(left, self.expr(bpDoubleColon-rightStep))
}

func exsArrow(self *parseCtx, t lexer.Token) *codegen.Frag {
	body := self.expr(bpArrow - rightStep)
	return self.kern.Arrow(nil, body, t.Text == "=>")
}

func excArrow(self *parseCtx, t lexer.Token, left *codegen.Frag) *codegen.Frag {
	body := self.expr(bpArrow - rightStep)
	return self.kern.Arrow(left, body, t.Text == "=>")
}

func exsPrefixIncDec(self *parseCtx, t lexer.Token) *codegen.Frag {
	return self.kern.Prefix(t.Text, self.expr(bpUnary))
}

func excPostfix(self *parseCtx, t lexer.Token, left *codegen.Frag) *codegen.Frag {
	return self.kern.Postfix(t.Text, left)
}

// exsSpawn binds looser than any operator, so the whole expression
// after the keyword becomes the strand body.
func exsSpawn(self *parseCtx, t lexer.Token) *codegen.Frag {
	if self.inJs {
		self.errSyntax(t.Line, "spawn is not available inside __js")
	}
	return self.kern.SpawnExpr(self.expr(bpComma))
}

// exsNew marks the current bracket depth; the call continuation at
// the same depth hands its argument list to this `new`.
func exsNew(self *parseCtx, t lexer.Token) *codegen.Frag {
	self.newMarks = append(self.newMarks, self.exprDepth)
	operand := self.expr(bpPostfix)
	if self.pendingNew() {
		self.newMarks = self.newMarks[:len(self.newMarks)-1]
		return self.kern.New(operand, nil, false)
	}
	return operand
}

func (self *parseCtx) pendingNew() bool {
	return len(self.newMarks) > 0 && self.newMarks[len(self.newMarks)-1] == self.exprDepth
}

func excCallParen(self *parseCtx, t lexer.Token, left *codegen.Frag) *codegen.Frag {
	args := self.parseArgs(lexer.ModeOp)
	if self.pendingNew() {
		self.newMarks = self.newMarks[:len(self.newMarks)-1]
		return self.kern.New(left, args, true)
	}
	return self.kern.Call(left, args)
}

// parseArgs reads a comma separated argument list up to ')'. The
// caller has consumed the '('.
func (self *parseCtx) parseArgs(endMode int) []*codegen.Frag {
	saved := self.enterBracket()
	var args []*codegen.Frag
	for !self.at(")") {
		args = append(args, self.expr(bpComma))
		if !self.at(",") {
			break
		}
		self.advance()
	}
	self.leaveBracket(saved)
	self.expectM(")", endMode)
	return args
}

func exsGroup(self *parseCtx, t lexer.Token) *codegen.Frag {
	if self.at(")") {
		// only arrow parameter lists may be empty
		self.expectM(")", lexer.ModeOp)
		if !self.at("->") && !self.at("=>") {
			self.errSyntax(t.Line, "expected expression but got %s", self.tok.Desc())
		}
		return self.kern.Group(self.kern.Atom(""))
	}
	saved := self.enterBracket()
	inner := self.expr(bpNone)
	self.leaveBracket(saved)
	self.expectM(")", lexer.ModeOp)
	return self.kern.Group(inner)
}

func excIndex(self *parseCtx, t lexer.Token, left *codegen.Frag) *codegen.Frag {
	saved := self.enterBracket()
	index := self.expr(bpNone)
	self.leaveBracket(saved)
	self.expectM("]", lexer.ModeOp)
	return self.kern.Index(left, index)
}

func exsArray(self *parseCtx, t lexer.Token) *codegen.Frag {
	saved := self.enterBracket()
	var elems []*codegen.Frag
	for !self.at("]") {
		if self.at(",") {
			elems = append(elems, self.kern.Atom(""))
			self.advance()
			continue
		}
		elems = append(elems, self.expr(bpComma))
		if !self.at(",") {
			break
		}
		self.advance()
	}
	self.leaveBracket(saved)
	self.expectM("]", lexer.ModeOp)
	return self.kern.ArrayLit(elems)
}

func excMember(self *parseCtx, t lexer.Token, left *codegen.Frag) *codegen.Frag {
	if self.tok.Kind != lexer.TOKEN_ID {
		self.errSyntax(self.tok.Line, "expected member name but got %s", self.tok.Desc())
	}
	name := self.tok.Text
	self.advanceM(lexer.ModeOp)
	return self.kern.Member(left, name)
}

// exsBrace resolves '{' in expression position: a blocklambda when a
// parameter bar follows, otherwise an object literal.
func exsBrace(self *parseCtx, t lexer.Token) *codegen.Frag {
	if self.at("|") || self.at("||") {
		return self.blocklambdaRest()
	}
	return self.objectRest()
}

func excCallBlock(self *parseCtx, t lexer.Token, left *codegen.Frag) *codegen.Frag {
	return self.kern.CallBlock(left, self.blocklambdaRest())
}

// blocklambdaRest parses from just inside '{', at the parameter bar.
func (self *parseCtx) blocklambdaRest() *codegen.Frag {
	var params []*codegen.Frag
	if self.at("||") {
		self.advance()
	} else {
		self.expect("|")
		for !self.at("|") {
			params = append(params, self.bindTarget())
			if !self.at(",") {
				break
			}
			self.advance()
		}
		self.expectM("|", lexer.ModeSA)
	}
	saved := self.enterBracket()
	var body []*codegen.Frag
	for !self.at("}") {
		if self.atEOF() {
			self.errSyntax(self.tok.Line, "unexpected end of input in blocklambda")
		}
		body = self.lineMarkers(body)
		body = append(body, self.statement())
	}
	body = self.lineMarkers(body)
	self.leaveBracket(saved)
	self.expectM("}", lexer.ModeOp)
	return self.kern.Blocklambda(params, body)
}

// objectRest parses from just inside '{'.
func (self *parseCtx) objectRest() *codegen.Frag {
	saved := self.enterBracket()
	var entries []codegen.ObjEntry
	for !self.at("}") {
		entries = append(entries, self.objectEntry())
		if !self.at(",") {
			break
		}
		self.advance()
	}
	self.leaveBracket(saved)
	self.expectM("}", lexer.ModeOp)
	return self.kern.ObjectLit(entries)
}

func (self *parseCtx) objectEntry() codegen.ObjEntry {
	key := self.propertyName()

	if (key == "get" || key == "set") && !self.at(":") && !self.at(",") &&
		!self.at("(") && !self.at("}") {
		name := self.propertyName()
		params := self.paramList()
		body := self.fnBody(lexer.ModeOp)
		if key == "get" {
			if len(params) != 0 {
				self.errSyntax(self.tok.Line, "getter takes no parameters")
			}
			return codegen.ObjEntry{Kind: codegen.ObjGetter, Key: name, Val: body}
		}
		if len(params) != 1 {
			self.errSyntax(self.tok.Line, "setter takes exactly one parameter")
		}
		return codegen.ObjEntry{Kind: codegen.ObjSetter, Key: name, Params: params, Val: body}
	}

	switch {
	case self.at(":"):
		self.advance()
		return codegen.ObjEntry{Kind: codegen.ObjPlain, Key: key, Val: self.expr(bpComma)}
	case self.at("("):
		params := self.paramList()
		body := self.fnBody(lexer.ModeOp)
		return codegen.ObjEntry{Kind: codegen.ObjMethod, Key: key, Params: params, Val: body}
	case self.at(",") || self.at("}"):
		return codegen.ObjEntry{Kind: codegen.ObjShorthand, Key: key}
	}
	self.errSyntax(self.tok.Line, "expected %q but got %s", ":", self.tok.Desc())
	return codegen.ObjEntry{}
}

func (self *parseCtx) propertyName() string {
	switch self.tok.Kind {
	case lexer.TOKEN_ID, lexer.TOKEN_STRING, lexer.TOKEN_NUMBER:
		name := self.tok.Text
		self.advanceM(lexer.ModeOp)
		return name
	}
	self.errSyntax(self.tok.Line, "expected property name but got %s", self.tok.Desc())
	return ""
}

func exsFunction(self *parseCtx, t lexer.Token) *codegen.Frag {
	name := ""
	if self.tok.Kind == lexer.TOKEN_ID && self.sem == table["<id>"] {
		name = self.tok.Text
		self.advance()
	}
	params := self.paramList()
	body := self.fnBody(lexer.ModeOp)
	return self.kern.FunctionExpr(name, params, body)
}

func (self *parseCtx) paramList() []*codegen.Frag {
	self.expect("(")
	var params []*codegen.Frag
	for !self.at(")") {
		params = append(params, self.bindTarget())
		if !self.at(",") {
			break
		}
		self.advance()
	}
	self.expectM(")", lexer.ModeSA)
	return params
}

// fnBody parses a braced function body. endMode picks the tokenizer
// state after the closing brace: operator position for expression
// forms, statement position for declarations.
func (self *parseCtx) fnBody(endMode int) *codegen.Frag {
	self.expect("{")
	self.pushScope(true)
	saved := self.enterBracket()
	var body []*codegen.Frag
	for !self.at("}") {
		if self.atEOF() {
			self.errSyntax(self.tok.Line, "unexpected end of input in function body")
		}
		body = self.lineMarkers(body)
		body = append(body, self.statement())
	}
	body = self.lineMarkers(body)
	self.leaveBracket(saved)
	self.popScope()
	self.expectM("}", endMode)
	return self.kern.Block(body)
}

// bindTarget parses a binding position: an identifier or a
// destructuring pattern.
func (self *parseCtx) bindTarget() *codegen.Frag {
	switch {
	case self.at("{"):
		self.advance()
		return self.objectPattern()
	case self.at("["):
		self.advance()
		return self.arrayPattern()
	case self.tok.Kind == lexer.TOKEN_ID:
		f := self.kern.Atom(self.tok.Text)
		self.advanceM(lexer.ModeOp)
		return f
	}
	self.errSyntax(self.tok.Line, "expected identifier or pattern but got %s", self.tok.Desc())
	return nil
}

func (self *parseCtx) objectPattern() *codegen.Frag {
	var entries []codegen.ObjEntry
	for !self.at("}") {
		key := self.propertyName()
		if self.at(":") {
			self.advance()
			entries = append(entries, codegen.ObjEntry{
				Kind: codegen.ObjPlain, Key: key, Val: self.bindTarget(),
			})
		} else {
			entries = append(entries, codegen.ObjEntry{Kind: codegen.ObjShorthand, Key: key})
		}
		if !self.at(",") {
			break
		}
		self.advance()
	}
	self.expectM("}", lexer.ModeOp)
	return self.kern.ObjectLit(entries)
}

func (self *parseCtx) arrayPattern() *codegen.Frag {
	var elems []*codegen.Frag
	for !self.at("]") {
		if self.at(",") {
			elems = append(elems, self.kern.Atom(""))
			self.advance()
			continue
		}
		elems = append(elems, self.bindTarget())
		if !self.at(",") {
			break
		}
		self.advance()
	}
	self.expectM("]", lexer.ModeOp)
	return self.kern.ArrayLit(elems)
}

// exsInterpString parses '"' ... '"' with #{ } escapes. Adjacent
// literal runs coalesce so newline splits do not multiply parts.
func exsInterpString(self *parseCtx, t lexer.Token) *codegen.Frag {
	var parts []codegen.StrPart
	for {
		switch self.tok.Kind {
		case lexer.TOKEN_ISTR_PART:
			parts = appendLit(parts, self.tok.Text)
			self.advance()
		case lexer.TOKEN_ISTR_OPEN:
			self.advance()
			saved := self.enterBracket()
			e := self.expr(bpNone)
			self.leaveBracket(saved)
			self.expectM("}", lexer.ModeIStr)
			parts = append(parts, codegen.StrPart{Exp: e})
		case lexer.TOKEN_ISTR_END:
			self.advance()
			return self.kern.InterpString(parts)
		default:
			self.errInternal(self.tok.Line, "unexpected %s in string literal", self.tok.Desc())
		}
	}
}

func exsQuasi(self *parseCtx, t lexer.Token) *codegen.Frag {
	var parts []codegen.StrPart
	for {
		switch self.tok.Kind {
		case lexer.TOKEN_QUASI_PART:
			parts = appendLit(parts, self.tok.Text)
			self.advance()
		case lexer.TOKEN_QUASI_OPEN:
			self.advance()
			saved := self.enterBracket()
			e := self.expr(bpNone)
			self.leaveBracket(saved)
			self.expectM("}", lexer.ModeQuasi)
			parts = append(parts, codegen.StrPart{Exp: e})
		case lexer.TOKEN_QUASI_VAR:
			e := self.kern.Atom(self.tok.Text)
			if self.lx.LParenAhead() {
				// $name(...) shorthand call
				self.advanceM(lexer.ModeOp)
				self.advance() // consume '('
				args := self.parseArgs(lexer.ModeQuasi)
				e = self.kern.Call(e, args)
			} else {
				self.advanceM(lexer.ModeQuasi)
			}
			parts = append(parts, codegen.StrPart{Exp: e})
		case lexer.TOKEN_QUASI_END:
			self.advance()
			return self.kern.Quasi(parts)
		default:
			self.errInternal(self.tok.Line, "unexpected %s in quasi literal", self.tok.Desc())
		}
	}
}

func appendLit(parts []codegen.StrPart, lit string) []codegen.StrPart {
	if n := len(parts); n > 0 && parts[n-1].Exp == nil {
		parts[n-1].Lit += lit
		return parts
	}
	return append(parts, codegen.StrPart{Lit: lit})
}

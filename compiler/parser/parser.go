package parser

import (
	"fmt"
	"strings"

	"github.com/elbow-jason/stratifiedjs/compiler/codegen"
	"github.com/elbow-jason/stratifiedjs/compiler/lexer"
)

// error kinds
const (
	KindSyntax = iota
	KindStructural
	KindInternal
)

type Error struct {
	Kind int
	Line int
	Msg  string
}

func (self *Error) Error() string {
	return self.Msg
}

type Options struct {
	Filename     string
	Keeplines    bool
	GlobalReturn bool
}

// parseCtx is the single-pass translation state: one token of
// lookahead, its table entry, and the kernel receiving productions.
type parseCtx struct {
	lx   *lexer.Lexer
	kern codegen.Kernel
	opts Options

	tok lexer.Token
	sem *semToken

	scopes    []*scope
	newMarks  []int // exprDepth values with a pending `new`
	exprDepth int
	noIn      bool
	inJs      bool
}

// Translate compiles chunk through kern in one pass. It panics with
// *Error or *lexer.Error; Compile wraps the recovery.
func Translate(chunk string, kern codegen.Kernel, opts Options) string {
	self := &parseCtx{
		lx:   lexer.NewLexer(chunk, opts.Filename),
		kern: kern,
		opts: opts,
		sem:  &semToken{mode: lexer.ModeSA},
	}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		switch r.(type) {
		case *Error, *lexer.Error:
			panic(r)
		}
		// A stray panic is a bug; stamp it with the best known line.
		panic(&Error{Kind: KindInternal, Line: self.tok.Line, Msg: fmt.Sprintf("%v", r)})
	}()
	self.pushScope(opts.GlobalReturn)
	self.next()

	var body []*codegen.Frag
	for self.tok.Kind != lexer.TOKEN_EOF {
		body = self.lineMarkers(body)
		body = append(body, self.statement())
	}
	body = self.lineMarkers(body)
	return kern.Script(body)
}

func (self *parseCtx) next() {
	self.tok = self.lx.NextToken()
	self.sem = lookup(self.tok)
}

// advance consumes the current token; the next one is scanned in the
// mode the current token's table entry names.
func (self *parseCtx) advance() {
	self.lx.SetMode(self.sem.mode)
	self.next()
}

// advanceM consumes the current token with an explicit mode override
// for the scan that follows.
func (self *parseCtx) advanceM(mode int) {
	self.lx.SetMode(mode)
	self.next()
}

func (self *parseCtx) at(text string) bool {
	return (self.tok.Kind == lexer.TOKEN_PUNC || self.tok.Kind == lexer.TOKEN_ID) &&
		self.tok.Text == text
}

func (self *parseCtx) atEOF() bool {
	return self.tok.Kind == lexer.TOKEN_EOF
}

func (self *parseCtx) expect(text string) {
	if !self.at(text) {
		self.errSyntax(self.tok.Line, "expected %q but got %s", text, self.tok.Desc())
	}
	self.advance()
}

func (self *parseCtx) expectM(text string, mode int) {
	if !self.at(text) {
		self.errSyntax(self.tok.Line, "expected %q but got %s", text, self.tok.Desc())
	}
	self.advanceM(mode)
}

func (self *parseCtx) ident() string {
	if self.tok.Kind != lexer.TOKEN_ID {
		self.errSyntax(self.tok.Line, "expected identifier but got %s", self.tok.Desc())
	}
	name := self.tok.Text
	self.advance()
	return name
}

// semi ends a statement: an explicit ';', or automatic insertion at a
// '}', end of input, or a preceding newline.
func (self *parseCtx) semi() {
	if self.at(";") {
		self.advance()
		return
	}
	if self.at("}") || self.atEOF() || self.tok.Newlines > 0 {
		return
	}
	self.errSyntax(self.tok.Line, "expected %q but got %s", ";", self.tok.Desc())
}

// lineMarkers drains newlines seen since the last statement boundary
// and, in keepline mode, re-emits them so line numbers survive.
func (self *parseCtx) lineMarkers(body []*codegen.Frag) []*codegen.Frag {
	n := self.lx.TakeNewlines()
	if self.opts.Keeplines && n > 0 {
		body = append(body, self.kern.Raw(strings.Repeat("\n", n)))
	}
	return body
}

func (self *parseCtx) errSyntax(line int, f string, a ...any) {
	panic(&Error{Kind: KindSyntax, Line: line, Msg: fmt.Sprintf(f, a...)})
}

func (self *parseCtx) errStructural(line int, f string, a ...any) {
	panic(&Error{Kind: KindStructural, Line: line, Msg: fmt.Sprintf(f, a...)})
}

func (self *parseCtx) errInternal(line int, f string, a ...any) {
	panic(&Error{Kind: KindInternal, Line: line, Msg: fmt.Sprintf(f, a...)})
}

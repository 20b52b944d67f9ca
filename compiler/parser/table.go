package parser

import (
	"github.com/elbow-jason/stratifiedjs/compiler/codegen"
	"github.com/elbow-jason/stratifiedjs/compiler/lexer"
)

// binding powers. Right-associative operators re-enter the climb half
// a step below their own power, so equal powers group rightward.
const (
	bpNone           float64 = 0
	bpComma          float64 = 10
	bpAssign         float64 = 20
	bpArrow          float64 = 25
	bpTernary        float64 = 30
	bpOr             float64 = 40
	bpAnd            float64 = 50
	bpBitOr          float64 = 60
	bpBitXor         float64 = 70
	bpBitAnd         float64 = 80
	bpEquality       float64 = 90
	bpRelational     float64 = 100
	bpDoubleColon    float64 = 105
	bpShift          float64 = 110
	bpDoubleDot      float64 = 115
	bpAdditive       float64 = 120
	bpMultiplicative float64 = 130
	bpUnary          float64 = 140
	bpPostfix        float64 = 150
	bpNew            float64 = 160
	bpCall           float64 = 180

	rightStep = 0.5
)

type exsFn func(self *parseCtx, t lexer.Token) *codegen.Frag
type excFn func(self *parseCtx, t lexer.Token, left *codegen.Frag) *codegen.Frag
type stmtFn func(self *parseCtx, t lexer.Token) *codegen.Frag

// semToken is one row of the token table: how a token behaves when it
// starts an expression, continues one, or starts a statement, plus
// the tokenizer mode for whatever follows it.
type semToken struct {
	id         string
	lbp        float64
	mode       int
	restricted bool // continuation must not cross a newline
	exs        exsFn
	exc        excFn
	stmt       stmtFn
}

var table = map[string]*semToken{}

func register(st *semToken) *semToken {
	table[st.id] = st
	return st
}

func punc(id string, mode int) *semToken {
	return register(&semToken{id: id, mode: mode})
}

func infix(id string, bp float64) *semToken {
	st := punc(id, lexer.ModeSA)
	st.lbp = bp
	st.exc = func(self *parseCtx, t lexer.Token, left *codegen.Frag) *codegen.Frag {
		return self.kern.Infix(t.Text, left, self.expr(bp))
	}
	return st
}

func infixR(id string, bp float64) *semToken {
	st := punc(id, lexer.ModeSA)
	st.lbp = bp
	st.exc = func(self *parseCtx, t lexer.Token, left *codegen.Frag) *codegen.Frag {
		return self.kern.Infix(t.Text, left, self.expr(bp-rightStep))
	}
	return st
}

func prefix(st *semToken) *semToken {
	st.exs = func(self *parseCtx, t lexer.Token) *codegen.Frag {
		return self.kern.Prefix(t.Text, self.expr(bpUnary))
	}
	return st
}

func keyword(id string) *semToken {
	return register(&semToken{id: id, mode: lexer.ModeSA})
}

func kindTok(id string, mode int, exs exsFn) *semToken {
	return register(&semToken{id: id, mode: mode, exs: exs})
}

func exsAtom(self *parseCtx, t lexer.Token) *codegen.Frag {
	return self.kern.Atom(t.Text)
}

func init() {
	// literal kinds
	kindTok("<id>", lexer.ModeOp, exsAtom)
	kindTok("<number>", lexer.ModeOp, exsAtom)
	kindTok("<string>", lexer.ModeOp, exsAtom)
	kindTok("<regex>", lexer.ModeOp, exsAtom)
	kindTok("<at>", lexer.ModeOp, exsAt)
	register(&semToken{id: "<eof>", mode: lexer.ModeSA})

	// interpolated string and quasi segments; the openers scan their
	// embedded expression in statement/argument mode
	register(&semToken{id: "<istr-part>", mode: lexer.ModeIStr})
	register(&semToken{id: "<istr-open>", mode: lexer.ModeSA})
	register(&semToken{id: "<istr-end>", mode: lexer.ModeOp})
	register(&semToken{id: "<quasi-part>", mode: lexer.ModeQuasi})
	register(&semToken{id: "<quasi-open>", mode: lexer.ModeSA})
	register(&semToken{id: "<quasi-var>", mode: lexer.ModeQuasi})
	register(&semToken{id: "<quasi-end>", mode: lexer.ModeOp})

	// assignment, right associative
	for _, op := range []string{"=", "+=", "-=", "*=", "/=", "%=", "<<=", ">>=", ">>>=", "&=", "|=", "^="} {
		infixR(op, bpAssign)
	}

	infix(",", bpComma)
	register(&semToken{id: "?", mode: lexer.ModeSA, lbp: bpTernary, exc: excTernary})
	punc(":", lexer.ModeSA)
	infix("||", bpOr)
	infix("&&", bpAnd)
	infix("|", bpBitOr)
	infix("^", bpBitXor)
	infix("&", bpBitAnd)
	infix("==", bpEquality)
	infix("!=", bpEquality)
	infix("===", bpEquality)
	infix("!==", bpEquality)
	infix("<", bpRelational)
	infix(">", bpRelational)
	infix("<=", bpRelational)
	infix(">=", bpRelational)
	infix("<<", bpShift)
	infix(">>", bpShift)
	infix(">>>", bpShift)
	infix("%", bpMultiplicative)
	infix("*", bpMultiplicative)
	infix("/", bpMultiplicative)

	prefix(infix("+", bpAdditive))
	prefix(infix("-", bpAdditive))
	prefix(punc("!", lexer.ModeSA))
	prefix(punc("~", lexer.ModeSA))

	register(&semToken{id: "..", mode: lexer.ModeSA, lbp: bpDoubleDot, exc: excDoubleDot})
	register(&semToken{id: "::", mode: lexer.ModeSA, lbp: bpDoubleColon, exc: excDoubleColon})
	register(&semToken{id: "->", mode: lexer.ModeSA, lbp: bpArrow, exs: exsArrow, exc: excArrow})
	register(&semToken{id: "=>", mode: lexer.ModeSA, lbp: bpArrow, exs: exsArrow, exc: excArrow})

	// ++/-- serve prefix and restricted postfix roles; the follow-up
	// mode is the postfix one, where it matters
	register(&semToken{id: "++", mode: lexer.ModeOp, lbp: bpPostfix, restricted: true,
		exs: exsPrefixIncDec, exc: excPostfix})
	register(&semToken{id: "--", mode: lexer.ModeOp, lbp: bpPostfix, restricted: true,
		exs: exsPrefixIncDec, exc: excPostfix})

	register(&semToken{id: "(", mode: lexer.ModeSA, lbp: bpCall, exs: exsGroup, exc: excCallParen})
	punc(")", lexer.ModeOp)
	register(&semToken{id: "[", mode: lexer.ModeSA, lbp: bpCall, exs: exsArray, exc: excIndex})
	punc("]", lexer.ModeOp)
	register(&semToken{id: "{", mode: lexer.ModeSA, lbp: bpCall, exs: exsBrace, exc: excCallBlock, stmt: stBlock})
	punc("}", lexer.ModeOp)
	register(&semToken{id: ".", mode: lexer.ModeOp, lbp: bpCall, exc: excMember})
	register(&semToken{id: `"`, mode: lexer.ModeIStr, exs: exsInterpString})
	register(&semToken{id: "`", mode: lexer.ModeQuasi, exs: exsQuasi})
	punc(";", lexer.ModeSA).stmt = stEmpty

	// keyword operators
	infix("in", bpRelational)
	infix("instanceof", bpRelational)
	prefix(keyword("typeof"))
	prefix(keyword("void"))
	prefix(keyword("delete"))
	keyword("new").exs = exsNew
	keyword("spawn").exs = exsSpawn
	fn := keyword("function")
	fn.exs = exsFunction
	fn.stmt = stFunction

	// statement keywords
	keyword("var").stmt = stVar
	keyword("if").stmt = stIf
	keyword("while").stmt = stWhile
	keyword("do").stmt = stDo
	keyword("for").stmt = stFor
	keyword("switch").stmt = stSwitch
	keyword("return").stmt = stReturn
	keyword("break").stmt = stBreak
	keyword("continue").stmt = stContinue
	keyword("throw").stmt = stThrow
	keyword("try").stmt = stTry
	keyword("waitfor").stmt = stWaitfor
	keyword("using").stmt = stUsing
	keyword("collapse").stmt = stCollapse
	keyword("__js").stmt = stJs

	// reserved words with no standalone role
	keyword("else")
	keyword("case")
	keyword("default")
	keyword("catch")
	keyword("finally")
}

func lookup(t lexer.Token) *semToken {
	switch t.Kind {
	case lexer.TOKEN_PUNC:
		if st := table[t.Text]; st != nil {
			return st
		}
		return &semToken{id: t.Text, mode: lexer.ModeSA}
	case lexer.TOKEN_ID:
		if st := table[t.Text]; st != nil {
			return st
		}
		return table["<id>"]
	case lexer.TOKEN_NUMBER:
		return table["<number>"]
	case lexer.TOKEN_STRING:
		return table["<string>"]
	case lexer.TOKEN_REGEX:
		return table["<regex>"]
	case lexer.TOKEN_AT:
		return table["<at>"]
	case lexer.TOKEN_ISTR_PART:
		return table["<istr-part>"]
	case lexer.TOKEN_ISTR_OPEN:
		return table["<istr-open>"]
	case lexer.TOKEN_ISTR_END:
		return table["<istr-end>"]
	case lexer.TOKEN_QUASI_PART:
		return table["<quasi-part>"]
	case lexer.TOKEN_QUASI_OPEN:
		return table["<quasi-open>"]
	case lexer.TOKEN_QUASI_VAR:
		return table["<quasi-var>"]
	case lexer.TOKEN_QUASI_END:
		return table["<quasi-end>"]
	}
	return table["<eof>"]
}

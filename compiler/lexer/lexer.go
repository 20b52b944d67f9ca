package lexer

import (
	"fmt"
	"regexp"
	"strings"
)

// tokenizer state; the parser selects one per scan from the previous
// token's syntax entry, or overrides it explicitly.
const (
	ModeSA    = iota // statement/argument position: '/' opens a regex literal
	ModeOp           // operator position: '/' is division
	ModeIStr         // inside an interpolated "..." literal
	ModeQuasi        // inside a `...` quasi literal
)

var reIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*`)
var reAtName = regexp.MustCompile(`^@([A-Za-z_$][A-Za-z0-9_$]*)?`)
var reNumber = regexp.MustCompile(`^(0[xX][0-9a-fA-F]+|([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?)`)
var reRegex = regexp.MustCompile(`^/(\\.|\[(\\.|[^\]\\\r\n])*\]|[^/\\\[\r\n])+/[a-zA-Z]*`)
var rePipeAhead = regexp.MustCompile(`^\s*\|`)
var reColonAhead = regexp.MustCompile(`^[ \t]*:([^:]|$)`)

// operator lexemes, longest first so prefixes never shadow longer forms
var opsCommon = []string{
	">>>=",
	"===", "!==", ">>>", "<<=", ">>=",
	"==", "!=", "<=", ">=", "&&", "||",
	"+=", "-=", "*=", "%=", "&=", "|=", "^=",
	"++", "--", "<<", ">>", "::", "..", "->", "=>",
	"{", "}", "(", ")", "[", "]", ";", ",",
	"<", ">", "+", "-", "*", "%", "&", "|", "^",
	"!", "~", "?", ":", "=", ".", `"`, "`",
}

var opsOp = append([]string{"/="}, append(append([]string{}, opsCommon...), "/")...)

type Lexer struct {
	chunk     string // remaining source
	chunkName string // source name
	line      int    // current line number
	mode      int
	tokNl     int // newlines before the token being scanned
	keepNl    int // undrained newline total (line-preserving output)
}

func NewLexer(chunk, chunkName string) *Lexer {
	return &Lexer{chunk: chunk, chunkName: chunkName, line: 1, mode: ModeSA}
}

func (self *Lexer) Line() int {
	return self.line
}

func (self *Lexer) Mode() int {
	return self.mode
}

func (self *Lexer) SetMode(mode int) {
	self.mode = mode
}

// TakeNewlines drains the newline counter accumulated since the last
// call. Statement boundaries flush it into line markers.
func (self *Lexer) TakeNewlines() int {
	n := self.keepNl
	self.keepNl = 0
	return n
}

// PipeAhead reports whether the unscanned remainder starts with '|',
// i.e. a just-consumed '{' opens a blocklambda rather than a block or
// an object literal.
func (self *Lexer) PipeAhead() bool {
	return rePipeAhead.MatchString(self.chunk)
}

// ColonAhead reports whether a single ':' follows, which marks a
// just-consumed identifier as a statement label.
func (self *Lexer) ColonAhead() bool {
	return reColonAhead.MatchString(self.chunk)
}

// LParenAhead reports whether '(' follows immediately, with no
// whitespace; quasi shorthand escapes use it to spot `$name(...)`.
func (self *Lexer) LParenAhead() bool {
	return strings.HasPrefix(self.chunk, "(")
}

func (self *Lexer) NextToken() Token {
	switch self.mode {
	case ModeIStr:
		return self.scanStrPart()
	case ModeQuasi:
		return self.scanQuasiPart()
	}

	self.tokNl = 0
	self.skipWhiteSpaces()
	nl := self.tokNl

	if len(self.chunk) == 0 {
		return Token{TOKEN_EOF, "", self.line, nl}
	}

	c := self.chunk[0]
	switch {
	case isDigit(c) || (c == '.' && len(self.chunk) > 1 && isDigit(self.chunk[1])):
		return Token{TOKEN_NUMBER, self.scan(reNumber), self.line, nl}
	case isNameStart(c):
		return Token{TOKEN_ID, self.scan(reIdentifier), self.line, nl}
	case c == '@':
		return Token{TOKEN_AT, self.scan(reAtName), self.line, nl}
	case c == '\'':
		line := self.line
		return Token{TOKEN_STRING, self.scanSingleQuoted(), line, nl}
	case c == '/' && self.mode == ModeSA:
		if tok := reRegex.FindString(self.chunk); tok != "" {
			self.next(len(tok))
			return Token{TOKEN_REGEX, tok, self.line, nl}
		}
		self.error("unterminated regex literal near %s", self.near())
	}

	ops := opsCommon
	if self.mode == ModeOp {
		ops = opsOp
	}
	for _, op := range ops {
		if strings.HasPrefix(self.chunk, op) {
			self.next(len(op))
			return Token{TOKEN_PUNC, op, self.line, nl}
		}
	}

	self.error("unexpected character near %s", self.near())
	return Token{}
}

// scanStrPart scans the next piece of an interpolated "..." literal:
// a literal segment, a '#{' escape opener, or the closing quote.
// Literal segments split at raw newlines so lines stay counted; the
// newline itself becomes a `\n` escape in the segment text.
func (self *Lexer) scanStrPart() Token {
	line := self.line
	var i int
	for i < len(self.chunk) {
		switch c := self.chunk[i]; c {
		case '"':
			if i > 0 {
				return self.strPart(TOKEN_ISTR_PART, i, line)
			}
			self.next(1)
			return Token{TOKEN_ISTR_END, `"`, line, 0}
		case '#':
			if i+1 < len(self.chunk) && self.chunk[i+1] == '{' {
				if i > 0 {
					return self.strPart(TOKEN_ISTR_PART, i, line)
				}
				self.next(2)
				return Token{TOKEN_ISTR_OPEN, "#{", line, 0}
			}
			i++
		case '\\':
			if i+1 >= len(self.chunk) {
				self.error("unterminated string literal")
			}
			i += 2
		case '\r', '\n':
			part := self.chunk[:i] + `\n`
			self.next(i)
			self.newline()
			return Token{TOKEN_ISTR_PART, part, line, 0}
		default:
			i++
		}
	}
	self.error("unterminated string literal")
	return Token{}
}

// scanQuasiPart scans the next piece of a `...` quasi literal: a
// literal segment, a '${' escape opener, a '$name' shorthand, or the
// closing backquote.
func (self *Lexer) scanQuasiPart() Token {
	line := self.line
	var i int
	for i < len(self.chunk) {
		switch c := self.chunk[i]; c {
		case '`':
			if i > 0 {
				return self.strPart(TOKEN_QUASI_PART, i, line)
			}
			self.next(1)
			return Token{TOKEN_QUASI_END, "`", line, 0}
		case '$':
			if i+1 < len(self.chunk) && self.chunk[i+1] == '{' {
				if i > 0 {
					return self.strPart(TOKEN_QUASI_PART, i, line)
				}
				self.next(2)
				return Token{TOKEN_QUASI_OPEN, "${", line, 0}
			}
			if name := reIdentifier.FindString(self.chunk[i+1:]); name != "" {
				if i > 0 {
					return self.strPart(TOKEN_QUASI_PART, i, line)
				}
				self.next(1 + len(name))
				return Token{TOKEN_QUASI_VAR, name, line, 0}
			}
			i++
		case '\\':
			if i+1 >= len(self.chunk) {
				self.error("unterminated quasi literal")
			}
			i += 2
		case '\r', '\n':
			part := self.chunk[:i] + `\n`
			self.next(i)
			self.newline()
			return Token{TOKEN_QUASI_PART, part, line, 0}
		default:
			i++
		}
	}
	self.error("unterminated quasi literal")
	return Token{}
}

func (self *Lexer) strPart(kind, n, line int) Token {
	part := self.chunk[:n]
	self.next(n)
	return Token{kind, part, line, 0}
}

// scanSingleQuoted consumes a complete '...' literal. Raw newlines are
// legal in the dialect and canonicalize to `\n` escapes so the token
// re-emits on one line.
func (self *Lexer) scanSingleQuoted() string {
	var b strings.Builder
	b.WriteByte('\'')
	i := 1
	for i < len(self.chunk) {
		switch c := self.chunk[i]; c {
		case '\'':
			b.WriteByte('\'')
			self.next(i + 1)
			return b.String()
		case '\\':
			if i+1 >= len(self.chunk) {
				self.error("unterminated string literal")
			}
			if self.chunk[i+1] == '\n' || self.chunk[i+1] == '\r' {
				// line continuation
				i += 2
				if self.chunk[i-1] == '\r' && i < len(self.chunk) && self.chunk[i] == '\n' {
					i++
				}
				self.newlineKeepChunk()
				continue
			}
			b.WriteByte(c)
			b.WriteByte(self.chunk[i+1])
			i += 2
		case '\n', '\r':
			b.WriteString(`\n`)
			i++
			if c == '\r' && i < len(self.chunk) && self.chunk[i] == '\n' {
				i++
			}
			self.newlineKeepChunk()
		default:
			b.WriteByte(c)
			i++
		}
	}
	self.error("unterminated string literal")
	return ""
}

func (self *Lexer) next(n int) {
	self.chunk = self.chunk[n:]
}

// newline consumes one raw newline at the head of the chunk.
func (self *Lexer) newline() {
	if strings.HasPrefix(self.chunk, "\r\n") || strings.HasPrefix(self.chunk, "\n\r") {
		self.next(2)
	} else {
		self.next(1)
	}
	self.newlineKeepChunk()
}

// newlineKeepChunk counts a newline the caller already consumed.
func (self *Lexer) newlineKeepChunk() {
	self.line++
	self.keepNl++
}

func (self *Lexer) near() string {
	snip := self.chunk
	if len(snip) > 10 {
		snip = snip[:10]
	}
	return fmt.Sprintf("%q", snip)
}

func (self *Lexer) error(f string, a ...any) {
	panic(&Error{Line: self.line, Msg: fmt.Sprintf(f, a...)})
}

func (self *Lexer) skipWhiteSpaces() {
	for len(self.chunk) > 0 {
		if self.test("//") {
			self.skipComment()
		} else if self.test("/*") {
			self.skipLongComment()
		} else if self.test("\r\n") || self.test("\n\r") {
			self.next(2)
			self.line++
			self.tokNl++
			self.keepNl++
		} else if isNewLine(self.chunk[0]) {
			self.next(1)
			self.line++
			self.tokNl++
			self.keepNl++
		} else if isWhiteSpace(self.chunk[0]) {
			self.next(1)
		} else {
			break
		}
	}
}

func (self *Lexer) skipComment() {
	self.next(2) // skip `//`
	for len(self.chunk) > 0 && !isNewLine(self.chunk[0]) {
		self.next(1)
	}
}

func (self *Lexer) skipLongComment() {
	idx := strings.Index(self.chunk, "*/")
	if idx < 0 {
		self.error("unfinished long comment")
	}
	body := self.chunk[:idx]
	n := strings.Count(body, "\n")
	if n == 0 {
		n = strings.Count(body, "\r")
	}
	self.line += n
	self.tokNl += n
	self.keepNl += n
	self.next(idx + 2)
}

func (self *Lexer) scan(re *regexp.Regexp) string {
	if token := re.FindString(self.chunk); token != "" {
		self.next(len(token))
		return token
	}
	panic(&Error{Line: self.line, Msg: "scan matched nothing"})
}

func (self *Lexer) test(s string) bool {
	return strings.HasPrefix(self.chunk, s)
}

func isWhiteSpace(c byte) bool {
	switch c {
	case '\t', '\v', '\f', ' ':
		return true
	}
	return false
}

func isNewLine(c byte) bool {
	return c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c == '$'
}

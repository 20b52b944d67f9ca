package lexer

// token kind
const (
	TOKEN_EOF = iota
	TOKEN_ID          // identifier or keyword
	TOKEN_AT          // @name / bare @
	TOKEN_NUMBER      // numeric literal
	TOKEN_STRING      // complete single-quoted literal, quotes included
	TOKEN_REGEX       // /pattern/flags
	TOKEN_PUNC        // operator or punctuation, text is the lexeme
	TOKEN_ISTR_PART   // literal segment inside "..."
	TOKEN_ISTR_OPEN   // #{
	TOKEN_ISTR_END    // closing "
	TOKEN_QUASI_PART  // literal segment inside `...`
	TOKEN_QUASI_OPEN  // ${
	TOKEN_QUASI_VAR   // $name shorthand, text is the name
	TOKEN_QUASI_END   // closing `
)

var tokenKindNames = map[int]string{
	TOKEN_EOF:        "EOF",
	TOKEN_ID:         "identifier",
	TOKEN_AT:         "namespace identifier",
	TOKEN_NUMBER:     "number literal",
	TOKEN_STRING:     "string literal",
	TOKEN_REGEX:      "regex literal",
	TOKEN_PUNC:       "punctuation",
	TOKEN_ISTR_PART:  "string segment",
	TOKEN_ISTR_OPEN:  "#{",
	TOKEN_ISTR_END:   `"`,
	TOKEN_QUASI_PART: "quasi segment",
	TOKEN_QUASI_OPEN: "${",
	TOKEN_QUASI_VAR:  "quasi variable",
	TOKEN_QUASI_END:  "`",
}

func KindName(kind int) string {
	name, ok := tokenKindNames[kind]
	if !ok {
		return "unknown"
	}
	return name
}

// Token is one scanned lexeme. Tokens are immutable once produced.
type Token struct {
	Kind int
	Text string
	Line int
	// Newlines is the newline run consumed immediately before this
	// token. Non-zero means the token starts a fresh line, which the
	// parser's termination rules care about.
	Newlines int
}

func (t Token) Desc() string {
	switch t.Kind {
	case TOKEN_EOF:
		return "end of input"
	case TOKEN_PUNC, TOKEN_ID:
		return "'" + t.Text + "'"
	}
	return KindName(t.Kind)
}

// Error is a tokenizer failure. It travels by panic; the compile
// entry point recovers and wraps it.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

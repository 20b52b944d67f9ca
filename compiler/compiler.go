// Package compiler translates dialect source to JavaScript in a
// single pass. The tokenizer, token table, parser and output kernels
// live in the sub packages; this is the public entry.
package compiler

import (
	"fmt"

	"github.com/elbow-jason/stratifiedjs/compiler/codegen"
	"github.com/elbow-jason/stratifiedjs/compiler/lexer"
	"github.com/elbow-jason/stratifiedjs/compiler/parser"
)

// CompileError kinds
const (
	KindLexical = iota
	KindSyntax
	KindStructural
	KindInternal
)

var kindNames = map[int]string{
	KindLexical:    "lexical error",
	KindSyntax:     "syntax error",
	KindStructural: "structural error",
	KindInternal:   "internal error",
}

// KindName returns the display name of a CompileError kind.
func KindName(kind int) string {
	return kindNames[kind]
}

// CompileError is the one failure a compile produces; the first error
// aborts the pass. Line is 1-based in the input source.
type CompileError struct {
	Kind   int
	Line   int
	RawMsg string
	Msg    string
}

func (e *CompileError) Error() string {
	return e.Msg
}

type Settings struct {
	Filename     string // used in error messages
	Keeplines    bool   // preserve the source line count in the output
	GlobalReturn bool   // permit return at toplevel
	Kernel       string // output kernel name, empty for stringify
}

// Compile translates src through the configured kernel. On failure
// the returned error is a *CompileError.
func Compile(src string, st Settings) (out string, err error) {
	if st.Filename == "" {
		st.Filename = "input"
	}
	defer func() {
		if r := recover(); r != nil {
			out = ""
			err = normalize(r, st.Filename)
		}
	}()
	kern, kerr := codegen.New(st.Kernel)
	if kerr != nil {
		return "", newError(KindInternal, st.Filename, 0, kerr.Error())
	}
	out = parser.Translate(src, kern, parser.Options{
		Filename:     st.Filename,
		Keeplines:    st.Keeplines,
		GlobalReturn: st.GlobalReturn,
	})
	return out, nil
}

// Stringify re-emits src as equivalent dialect text.
func Stringify(src string, st Settings) (string, error) {
	st.Kernel = "stringify"
	return Compile(src, st)
}

// Minify re-emits src with cosmetic whitespace dropped.
func Minify(src string, st Settings) (string, error) {
	st.Kernel = "minify"
	return Compile(src, st)
}

// Translate lowers src onto the runtime helper namespace.
func Translate(src string, st Settings) (string, error) {
	st.Kernel = "runtime"
	return Compile(src, st)
}

// Sexp dumps the grouping structure of src as S-expressions.
func Sexp(src string, st Settings) (string, error) {
	st.Kernel = "sexp"
	return Compile(src, st)
}

func normalize(r any, fname string) *CompileError {
	switch e := r.(type) {
	case *lexer.Error:
		return newError(KindLexical, fname, e.Line, e.Msg)
	case *parser.Error:
		kind := KindSyntax
		switch e.Kind {
		case parser.KindStructural:
			kind = KindStructural
		case parser.KindInternal:
			kind = KindInternal
		}
		return newError(kind, fname, e.Line, e.Msg)
	}
	return newError(KindInternal, fname, 0, fmt.Sprintf("%v", r))
}

func newError(kind int, fname string, line int, msg string) *CompileError {
	return &CompileError{
		Kind:   kind,
		Line:   line,
		RawMsg: msg,
		Msg:    fmt.Sprintf("%s:%d: %s: %s", fname, line, kindNames[kind], msg),
	}
}

package codegen

// frag kinds
const (
	FragAtom = iota
	FragGroup
	FragCall
)

// Frag is a rendered piece of output. Code is final text; Kind plus
// Callee/Args/Inner keep just enough shape for constructs that graft
// onto calls after the fact (doubledot, doublecolon, call blocks).
type Frag struct {
	Code   string
	Kind   int
	Callee *Frag   // FragCall
	Args   []*Frag // FragCall
	Inner  *Frag   // FragGroup
}

func atom(code string) *Frag {
	return &Frag{Code: code, Kind: FragAtom}
}

// object literal entry kinds
const (
	ObjPlain = iota
	ObjShorthand
	ObjMethod
	ObjGetter
	ObjSetter
)

type ObjEntry struct {
	Kind   int
	Key    string
	Params []*Frag // ObjMethod, ObjSetter
	Val    *Frag   // value, or method/accessor body
}

// Decl is one declarator of a var statement. Lhs is an identifier or
// a destructuring pattern.
type Decl struct {
	Lhs  *Frag
	Init *Frag
}

type SwitchClause struct {
	Cond *Frag // nil for default
	Body []*Frag
}

// CRF is the shared catch/retract/finally tail of try and waitfor.
// CatchAll marks the catchall variant, which also intercepts the
// abandonment of the guarded block.
type CRF struct {
	CatchParam string
	Catch      *Frag
	CatchAll   bool
	Retract    *Frag
	Finally    *Frag
}

func (c CRF) Empty() bool {
	return c.Catch == nil && c.Retract == nil && c.Finally == nil
}

// StrPart is one segment of an interpolated string or quasi: either a
// literal run (Lit set) or an embedded expression.
type StrPart struct {
	Lit string
	Exp *Frag
}

package token

import (
	"strconv"
)

// Kind identifies the variant of a Token.
type Kind int

const (
	KindAny Kind = iota // only meaningful as a placeholder category
	KindNumber
	KindText
	KindBool
	KindSymbol
	KindList
	KindMap
	KindVar
	KindListCapture
	KindMapCapture
)

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindSymbol:
		return "symbol"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindVar:
		return "var"
	case KindListCapture:
		return "list-capture"
	case KindMapCapture:
		return "map-capture"
	default:
		return "unknown"
	}
}

// Token is a single element of a workspace. Tokens are immutable values;
// equality is structural.
type Token interface {
	Kind() Kind
	String() string
	Equal(other Token) bool
	Hash() uint64
}

var (
	_ Token = Number{}
	_ Token = Text("")
	_ Token = Bool(false)
	_ Token = Symbol("")
	_ Token = List{}
	_ Token = Map{}
	_ Token = Var{}
	_ Token = ListCapture{}
	_ Token = MapCapture{}
)

// IsValue reports whether t is a reduced value that placeholders may bind:
// a number, text, boolean, list or map.
func IsValue(t Token) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case KindNumber, KindText, KindBool, KindList, KindMap:
		return true
	}
	return false
}

// IsPlaceholder reports whether t binds a variable when used in a template.
func IsPlaceholder(t Token) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case KindVar, KindListCapture, KindMapCapture:
		return true
	}
	return false
}

// Text is a quoted string value.
type Text string

func (t Text) Kind() Kind     { return KindText }
func (t Text) String() string { return strconv.Quote(string(t)) }
func (t Text) Hash() uint64   { return hashString(KindText, string(t)) }
func (t Text) Equal(other Token) bool {
	o, ok := other.(Text)
	return ok && o == t
}

// Bool is a boolean value.
type Bool bool

func (b Bool) Kind() Kind     { return KindBool }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
func (b Bool) Hash() uint64   { return hashString(KindBool, b.String()) }
func (b Bool) Equal(other Token) bool {
	o, ok := other.(Bool)
	return ok && o == b
}

// Symbol is an operator, bracket or bare word.
type Symbol string

func (s Symbol) Kind() Kind     { return KindSymbol }
func (s Symbol) String() string { return string(s) }
func (s Symbol) Hash() uint64   { return hashString(KindSymbol, string(s)) }
func (s Symbol) Equal(other Token) bool {
	o, ok := other.(Symbol)
	return ok && o == s
}

// Is reports whether t is the symbol s.
func Is(t Token, s Symbol) bool {
	sym, ok := t.(Symbol)
	return ok && sym == s
}

// Package compiler turns "pattern = replacement" definitions into rules.
package compiler

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/gnolang/tcalc/internal/lexer"
	"github.com/gnolang/tcalc/internal/token"
)

// ErrMalformedRule is wrapped by every compilation failure.
var ErrMalformedRule = errors.New("malformed rule definition")

// Error describes why a definition could not be compiled.
type Error struct {
	Definition string
	Reason     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrMalformedRule, e.Definition, e.Reason)
}

func (e *Error) Unwrap() error { return ErrMalformedRule }

// Compile turns "pattern = replacement", already split in two, into a
// rule. Identifiers starting with an upper-case letter are placeholders;
// every other token is literal. In the pattern, bracketed lists and maps
// become structural templates, with "..." introducing the tail of a list
// or the remainder of a map. The replacement is kept as written, with
// placeholders substituted when the rule fires.
func Compile(pat, repl token.Sequence) (*Compiled, error) {
	def := pat.String() + " = " + repl.String()
	fail := func(format string, args ...any) (*Compiled, error) {
		return nil, &Error{Definition: def, Reason: fmt.Sprintf(format, args...)}
	}

	if pat.IsEmpty() {
		return fail("pattern is empty")
	}
	if repl.IsEmpty() {
		return fail("replacement is empty")
	}

	p := &parser{toks: pat.Tokens(), vars: make(map[string]bool)}
	tmpl, err := p.template()
	if err != nil {
		return fail("%v", err)
	}
	if tmpl.Len() == 1 {
		if _, ok := tmpl.At(0).(token.Var); ok {
			return fail("pattern %s would match every value", tmpl)
		}
	}

	body, err := replacement(repl, p.vars)
	if err != nil {
		return fail("%v", err)
	}

	return &Compiled{name: def, template: tmpl, replacement: body}, nil
}

// CompileDefinition lexes a definition and compiles it.
func CompileDefinition(def string) (*Compiled, error) {
	seq, err := lexer.Lex(def)
	if err != nil {
		return nil, &Error{Definition: def, Reason: err.Error()}
	}
	pat, repl, ok := lexer.Definition(seq)
	if !ok {
		return nil, &Error{Definition: def, Reason: "missing '='"}
	}
	return Compile(pat, repl)
}

// IsPlaceholderName reports whether a bare word names a placeholder.
func IsPlaceholderName(s token.Symbol) bool {
	r, _ := utf8.DecodeRuneInString(string(s))
	return unicode.IsUpper(r)
}

var closing = map[token.Symbol]token.Symbol{"(": ")", "[": "]", "{": "}"}

// replacement converts placeholder names into variables and checks that
// brackets are balanced and every variable is bound by the pattern.
func replacement(repl token.Sequence, bound map[string]bool) (token.Sequence, error) {
	out := make([]token.Token, repl.Len())
	var open []token.Symbol
	for i := range out {
		t := repl.At(i)
		out[i] = t

		sym, ok := t.(token.Symbol)
		if !ok {
			continue
		}
		switch {
		case IsPlaceholderName(sym):
			if !bound[string(sym)] {
				return token.Sequence{}, fmt.Errorf("%s is not bound by the pattern", sym)
			}
			out[i] = token.Var{Name: string(sym)}
		case closing[sym] != "":
			open = append(open, closing[sym])
		case sym == ")" || sym == "]" || sym == "}":
			if len(open) == 0 || open[len(open)-1] != sym {
				return token.Sequence{}, fmt.Errorf("unbalanced %q in replacement", sym)
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		return token.Sequence{}, fmt.Errorf("replacement is missing %q", open[len(open)-1])
	}
	return token.NewSequence(out...), nil
}

package builtin

import (
	"strings"

	"github.com/gnolang/tcalc/internal/pattern"
	"github.com/gnolang/tcalc/internal/rule"
	"github.com/gnolang/tcalc/internal/token"
)

// rewrite is a rule whose whole behaviour is an apply function over a
// fixed template.
type rewrite struct {
	name     string
	template token.Sequence
	apply    func(seq token.Sequence, pos int) rule.Outcome
}

var _ rule.Rule = (*rewrite)(nil)

func (r *rewrite) Name() string             { return r.name }
func (r *rewrite) Template() token.Sequence { return r.template }
func (r *rewrite) SubordinateTo() []string  { return nil }

func (r *rewrite) Apply(_ rule.Evaluator, seq token.Sequence, pos int) rule.Outcome {
	return r.apply(seq, pos)
}

// newParenRule drops parentheses around a single value.
func newParenRule() rule.Rule {
	tmpl := token.NewSequence(sym("("), value("X"), sym(")"))
	return &rewrite{
		name:     "()",
		template: tmpl,
		apply: func(seq token.Sequence, pos int) rule.Outcome {
			binds, ok := pattern.First(tmpl, seq, pos)
			if !ok {
				return rule.Fail()
			}
			return rule.Success(seq.ReplaceSpan(pos, pos+3, binds["X"]))
		},
	}
}

// newListRule folds "[a, b, c]" and "[a, b ... L]" into a list once every
// element is a value.
func newListRule() rule.Rule {
	return &rewrite{
		name:     "[]",
		template: token.NewSequence(sym("[")),
		apply: func(seq token.Sequence, pos int) rule.Outcome {
			i := pos + 1
			if i < seq.Len() && token.Is(seq.At(i), "]") {
				return rule.Success(seq.ReplaceSpan(pos, i+1, token.NewList()))
			}
			var elems []token.Token
			for i+1 < seq.Len() && token.IsValue(seq.At(i)) {
				elems = append(elems, seq.At(i))
				switch next := seq.At(i + 1); {
				case token.Is(next, ","):
					i += 2
				case token.Is(next, "]"):
					return rule.Success(seq.ReplaceSpan(pos, i+2, token.NewList(elems...)))
				case token.Is(next, "...") && i+3 < seq.Len() && token.Is(seq.At(i+3), "]"):
					tail, ok := seq.At(i + 2).(token.List)
					if !ok {
						return rule.Fail()
					}
					return rule.Success(seq.ReplaceSpan(pos, i+4, tail.Prepend(elems...)))
				default:
					return rule.Fail()
				}
			}
			return rule.Fail()
		},
	}
}

// newMapRule folds "{k: v, ...}" and "{k: v ... M}" into a map once every
// key and value is a value. Explicit entries override those of M.
func newMapRule() rule.Rule {
	return &rewrite{
		name:     "{}",
		template: token.NewSequence(sym("{")),
		apply: func(seq token.Sequence, pos int) rule.Outcome {
			i := pos + 1
			if i < seq.Len() && token.Is(seq.At(i), "}") {
				return rule.Success(seq.ReplaceSpan(pos, i+1, token.NewMap()))
			}
			var entries []token.Entry
			for i+3 < seq.Len() && token.IsValue(seq.At(i)) && token.Is(seq.At(i+1), ":") && token.IsValue(seq.At(i+2)) {
				entries = append(entries, token.Entry{Key: seq.At(i), Value: seq.At(i + 2)})
				switch next := seq.At(i + 3); {
				case token.Is(next, ","):
					i += 4
				case token.Is(next, "}"):
					return rule.Success(seq.ReplaceSpan(pos, i+4, token.NewMap(entries...)))
				case token.Is(next, "...") && i+5 < seq.Len() && token.Is(seq.At(i+5), "}"):
					rest, ok := seq.At(i + 4).(token.Map)
					if !ok {
						return rule.Fail()
					}
					return rule.Success(seq.ReplaceSpan(pos, i+6, rest.Merge(token.NewMap(entries...))))
				default:
					return rule.Fail()
				}
			}
			return rule.Fail()
		},
	}
}

// aliasRule rewrites a word operator into its symbol.
func aliasRule(words, op string) ruleConstructor {
	return func() rule.Rule {
		fields := strings.Fields(words)
		toks := make([]token.Token, len(fields))
		for i, f := range fields {
			toks[i] = sym(f)
		}
		tmpl := token.NewSequence(toks...)
		return &rewrite{
			name:     words,
			template: tmpl,
			apply: func(seq token.Sequence, pos int) rule.Outcome {
				if _, ok := pattern.First(tmpl, seq, pos); !ok {
					return rule.Fail()
				}
				return rule.Success(seq.ReplaceSpan(pos, pos+tmpl.Len(), sym(op)))
			},
		}
	}
}

// newLookupRule reads a key from a map: get K from M.
func newLookupRule() rule.Rule {
	tmpl := token.NewSequence(sym("get"), value("K"), sym("from"), token.Var{Name: "M", Category: token.KindMap})
	return &rewrite{
		name:     "get",
		template: tmpl,
		apply: func(seq token.Sequence, pos int) rule.Outcome {
			binds, ok := pattern.First(tmpl, seq, pos)
			if !ok {
				return rule.Fail()
			}
			v, ok := binds["M"].(token.Map).Get(binds["K"])
			if !ok {
				return rule.Fail()
			}
			return rule.Success(seq.ReplaceSpan(pos, pos+tmpl.Len(), v))
		},
	}
}

package compiler

import (
	"github.com/gnolang/tcalc/internal/pattern"
	"github.com/gnolang/tcalc/internal/rule"
	"github.com/gnolang/tcalc/internal/token"
)

var _ rule.Rule = (*Compiled)(nil)

// Compiled is a user-defined rule.
type Compiled struct {
	name        string
	template    token.Sequence
	replacement token.Sequence
}

// Name returns the definition the rule was compiled from, unless the rule
// was renamed.
func (c *Compiled) Name() string { return c.name }

// Renamed returns a copy of the rule listed and traced under name.
func (c *Compiled) Renamed(name string) *Compiled {
	cp := *c
	cp.name = name
	return &cp
}

func (c *Compiled) Template() token.Sequence    { return c.template }
func (c *Compiled) Replacement() token.Sequence { return c.replacement }

// SubordinateTo is empty: user rules are always eligible.
func (c *Compiled) SubordinateTo() []string { return nil }

// Apply substitutes the bindings into the replacement, reduces it to
// normal form with ev and splices the result over the matched span.
func (c *Compiled) Apply(ev rule.Evaluator, seq token.Sequence, pos int) rule.Outcome {
	binds, ok := pattern.First(c.template, seq, pos)
	if !ok {
		return rule.Fail()
	}
	return rule.Success(pattern.Instantiate(c.replacement, binds)).
		Bind(func(body token.Sequence) rule.Outcome {
			reduced, err := ev.Reduce(body)
			if err != nil {
				return rule.Abort(err)
			}
			return rule.Success(reduced)
		}).
		Map(func(reduced token.Sequence) token.Sequence {
			return seq.ReplaceSpan(pos, pos+c.template.Len(), reduced.Tokens()...)
		})
}

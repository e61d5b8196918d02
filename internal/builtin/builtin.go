// Package builtin holds the rules every session starts with.
package builtin

import (
	"github.com/ahrtr/gocontainer/set"

	"github.com/gnolang/tcalc/internal/rule"
	"github.com/gnolang/tcalc/internal/token"
)

// Operator groups from tightest to loosest binding. Word aliases sit with
// the symbol they become so that an operator never fires next to an alias
// that has not been rewritten yet.
var (
	powerOps      = []string{"^", "to"}
	productOps    = []string{"*", "/", "times", "multiply", "multiplied", "divide", "divided", "over"}
	sumOps        = []string{"+", "-", "plus", "minus"}
	comparisonOps = []string{"==", "!=", "<", ">", "<=", ">="}
	andOps        = []string{"and"}
	orOps         = []string{"or"}
)

type ruleConstructor func() rule.Rule

// defaultRules lists the built-in rules in registration order. Order only
// matters between rules that can match at the same position.
var defaultRules = []ruleConstructor{
	newParenRule,
	newListRule,
	newMapRule,
	aliasRule("plus", "+"),
	aliasRule("minus", "-"),
	aliasRule("times", "*"),
	aliasRule("multiply", "*"),
	aliasRule("multiplied by", "*"),
	aliasRule("divide", "/"),
	aliasRule("divided by", "/"),
	aliasRule("over", "/"),
	aliasRule("to the power of", "^"),
	newNegateRule,
	arithmetic("^", rightAssoc, token.Number.Pow, nil, powerOps),
	arithmetic("*", leftAssoc, mul, powerOps, productOps),
	arithmetic("/", leftAssoc, token.Number.Quo, powerOps, productOps),
	arithmetic("+", leftAssoc, add, group(powerOps, productOps), sumOps),
	arithmetic("-", leftAssoc, sub, group(powerOps, productOps), sumOps),
	equality("==", true),
	equality("!=", false),
	ordering("<", func(c int) bool { return c < 0 }),
	ordering(">", func(c int) bool { return c > 0 }),
	ordering("<=", func(c int) bool { return c <= 0 }),
	ordering(">=", func(c int) bool { return c >= 0 }),
	newNotRule,
	logical("and", func(a, b bool) bool { return a && b },
		group(powerOps, productOps, sumOps, comparisonOps), andOps),
	logical("or", func(a, b bool) bool { return a || b },
		group(powerOps, productOps, sumOps, comparisonOps, andOps), orOps),
	newConditionalRule,
	newLookupRule,
}

// Rules returns a fresh copy of the built-in rules in registration order.
func Rules() []rule.Rule {
	out := make([]rule.Rule, len(defaultRules))
	for i, newRule := range defaultRules {
		out[i] = newRule()
	}
	return out
}

func group(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func newSet(names []string) set.Interface {
	s := set.New()
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// symbolIn reports whether t is a symbol contained in s.
func symbolIn(t token.Token, s set.Interface) bool {
	sym, ok := t.(token.Symbol)
	return ok && s.Contains(string(sym))
}

func sym(s string) token.Symbol { return token.Symbol(s) }

func num(name string) token.Var { return token.Var{Name: name, Category: token.KindNumber} }

func boolean(name string) token.Var { return token.Var{Name: name, Category: token.KindBool} }

func value(name string) token.Var { return token.Var{Name: name} }

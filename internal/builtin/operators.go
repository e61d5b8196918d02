package builtin

import (
	"github.com/ahrtr/gocontainer/set"

	"github.com/gnolang/tcalc/internal/pattern"
	"github.com/gnolang/tcalc/internal/rule"
	"github.com/gnolang/tcalc/internal/token"
)

type associativity int

const (
	leftAssoc associativity = iota
	rightAssoc
)

// binaryOp rewrites "A op B" to a single value.
type binaryOp struct {
	name        string
	template    token.Sequence
	subordinate []string
	// peers are the operators binding as tightly as this one.
	peers set.Interface
	assoc associativity
	eval  func(a, b token.Token) (token.Token, bool)
}

var _ rule.Rule = (*binaryOp)(nil)

func (o *binaryOp) Name() string             { return o.name }
func (o *binaryOp) Template() token.Sequence { return o.template }
func (o *binaryOp) SubordinateTo() []string  { return o.subordinate }

func (o *binaryOp) Apply(_ rule.Evaluator, seq token.Sequence, pos int) rule.Outcome {
	binds, ok := pattern.First(o.template, seq, pos)
	if !ok || o.yields(seq, pos) {
		return rule.Fail()
	}
	res, ok := o.eval(binds["A"], binds["B"])
	if !ok {
		return rule.Fail()
	}
	return rule.Success(seq.ReplaceSpan(pos, pos+o.template.Len(), res))
}

// yields reports whether a peer operator claims one of the operands first:
// the one on the left for left-associative operators, the one on the
// right otherwise.
func (o *binaryOp) yields(seq token.Sequence, pos int) bool {
	if o.assoc == rightAssoc {
		end := pos + o.template.Len()
		return end < seq.Len() && symbolIn(seq.At(end), o.peers)
	}
	return pos > 0 && symbolIn(seq.At(pos-1), o.peers)
}

func newBinaryOp(op string, a, b token.Var, assoc associativity, tighter, peers []string,
	eval func(a, b token.Token) (token.Token, bool),
) ruleConstructor {
	return func() rule.Rule {
		return &binaryOp{
			name:        op,
			template:    token.NewSequence(a, sym(op), b),
			subordinate: tighter,
			peers:       newSet(peers),
			assoc:       assoc,
			eval:        eval,
		}
	}
}

// arithmetic builds a rule over two numbers. An error from f, such as a
// division by zero, leaves the expression as it is.
func arithmetic(op string, assoc associativity, f func(a, b token.Number) (token.Number, error),
	tighter, peers []string,
) ruleConstructor {
	return newBinaryOp(op, num("A"), num("B"), assoc, tighter, peers,
		func(a, b token.Token) (token.Token, bool) {
			n, err := f(a.(token.Number), b.(token.Number))
			if err != nil {
				return nil, false
			}
			return n, true
		})
}

func add(a, b token.Number) (token.Number, error) { return a.Add(b), nil }
func sub(a, b token.Number) (token.Number, error) { return a.Sub(b), nil }
func mul(a, b token.Number) (token.Number, error) { return a.Mul(b), nil }

var looserThanArithmetic = group(powerOps, productOps, sumOps)

// equality compares any two values structurally.
func equality(op string, want bool) ruleConstructor {
	return newBinaryOp(op, value("A"), value("B"), leftAssoc, looserThanArithmetic, comparisonOps,
		func(a, b token.Token) (token.Token, bool) {
			return token.Bool(a.Equal(b) == want), true
		})
}

func ordering(op string, holds func(cmp int) bool) ruleConstructor {
	return newBinaryOp(op, num("A"), num("B"), leftAssoc, looserThanArithmetic, comparisonOps,
		func(a, b token.Token) (token.Token, bool) {
			return token.Bool(holds(a.(token.Number).Cmp(b.(token.Number)))), true
		})
}

func logical(op string, f func(a, b bool) bool, tighter, peers []string) ruleConstructor {
	return newBinaryOp(op, boolean("A"), boolean("B"), leftAssoc, tighter, peers,
		func(a, b token.Token) (token.Token, bool) {
			return token.Bool(f(bool(a.(token.Bool)), bool(b.(token.Bool)))), true
		})
}

// unaryOp rewrites "op X" to a single value.
type unaryOp struct {
	name        string
	template    token.Sequence
	subordinate []string
	eval        func(x token.Token) token.Token
}

var _ rule.Rule = (*unaryOp)(nil)

func (o *unaryOp) Name() string             { return o.name }
func (o *unaryOp) Template() token.Sequence { return o.template }
func (o *unaryOp) SubordinateTo() []string  { return o.subordinate }

func (o *unaryOp) Apply(_ rule.Evaluator, seq token.Sequence, pos int) rule.Outcome {
	binds, ok := pattern.First(o.template, seq, pos)
	if !ok || (pos > 0 && endsOperand(seq.At(pos-1))) {
		return rule.Fail()
	}
	return rule.Success(seq.ReplaceSpan(pos, pos+o.template.Len(), o.eval(binds["X"])))
}

// endsOperand reports whether t closes an operand, in which case an
// operator after it is binary.
func endsOperand(t token.Token) bool {
	return token.IsValue(t) || token.Is(t, ")") || token.Is(t, "]") || token.Is(t, "}")
}

func newNegateRule() rule.Rule {
	return &unaryOp{
		name:        "negate",
		template:    token.NewSequence(sym("-"), num("X")),
		subordinate: powerOps,
		eval:        func(x token.Token) token.Token { return x.(token.Number).Neg() },
	}
}

func newNotRule() rule.Rule {
	return &unaryOp{
		name:     "not",
		template: token.NewSequence(sym("not"), boolean("X")),
		eval:     func(x token.Token) token.Token { return !x.(token.Bool) },
	}
}

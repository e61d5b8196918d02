package rule

import (
	"github.com/gnolang/tcalc/internal/token"
)

// Evaluator reduces a sequence to normal form. Rules that need their
// replacement fully evaluated before it is spliced back (compiled user
// rules) call it re-entrantly; the evaluation shares the caller's step
// budget.
type Evaluator interface {
	Reduce(seq token.Sequence) (token.Sequence, error)
}

// Rule is a rewrite rule.
type Rule interface {
	// Name identifies the rule in precedence sets, traces and listings.
	Name() string

	// Template describes the tokens the rule starts matching at a position.
	// The engine uses it to screen out positions cheaply and, for rules with
	// a precedence constraint, to find the span the rule would rewrite.
	Template() token.Sequence

	// SubordinateTo lists the structural symbols the rule must not fire
	// beneath. Empty means the rule is always eligible.
	SubordinateTo() []string

	// Apply attempts the full match and rewrite at pos. It must be pure:
	// the same library, sequence and position always produce the same
	// outcome.
	Apply(ev Evaluator, seq token.Sequence, pos int) Outcome
}

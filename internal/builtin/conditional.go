package builtin

import (
	"github.com/gnolang/tcalc/internal/pattern"
	"github.com/gnolang/tcalc/internal/rule"
	"github.com/gnolang/tcalc/internal/token"
)

/*
Conditional

	if C then A else B

The rule fires as soon as C has been reduced to a boolean and splices in
the chosen branch without touching the other one. Since reduction is
leftmost-first, the condition is always reduced before anything inside
the branches, so recursive definitions stop at their base case.

The then-branch runs up to the matching else. The else-branch runs up to
the first ',', '...', ':', 'then' or 'else' outside brackets and nested
conditionals, up to the bracket closing the enclosing structure, or up to
the end of the workspace. A branch of several tokens is wrapped in
parentheses so it stays one operand.
*/

func newConditionalRule() rule.Rule {
	tmpl := token.NewSequence(sym("if"), boolean("C"), sym("then"))
	return &rewrite{
		name:     "if",
		template: tmpl,
		apply: func(seq token.Sequence, pos int) rule.Outcome {
			binds, ok := pattern.First(tmpl, seq, pos)
			if !ok {
				return rule.Fail()
			}
			thenAt := pos + tmpl.Len()
			elseAt, ok := findElse(seq, thenAt)
			if !ok {
				return rule.Fail()
			}
			end := branchEnd(seq, elseAt+1)

			branch := seq.Slice(elseAt+1, end)
			if binds["C"].(token.Bool) {
				branch = seq.Slice(thenAt, elseAt)
			}
			switch branch.Len() {
			case 0:
				return rule.Fail()
			case 1:
				return rule.Success(seq.ReplaceSpan(pos, end, branch.At(0)))
			}
			wrapped := make([]token.Token, 0, branch.Len()+2)
			wrapped = append(wrapped, sym("("))
			wrapped = append(wrapped, branch.Tokens()...)
			wrapped = append(wrapped, sym(")"))
			return rule.Success(seq.ReplaceSpan(pos, end, wrapped...))
		},
	}
}

func opens(t token.Token) bool {
	return token.Is(t, "(") || token.Is(t, "[") || token.Is(t, "{")
}

func closes(t token.Token) bool {
	return token.Is(t, ")") || token.Is(t, "]") || token.Is(t, "}")
}

// findElse returns the position of the else matching a then-branch that
// starts at from.
func findElse(seq token.Sequence, from int) (int, bool) {
	depth, nested := 0, 0
	for i := from; i < seq.Len(); i++ {
		t := seq.At(i)
		switch {
		case opens(t):
			depth++
		case closes(t):
			if depth == 0 {
				return 0, false
			}
			depth--
		case depth > 0:
		case token.Is(t, "if"):
			nested++
		case token.Is(t, "else"):
			if nested == 0 {
				return i, true
			}
			nested--
		}
	}
	return 0, false
}

// branchEnd returns the position just past an else-branch starting at from.
func branchEnd(seq token.Sequence, from int) int {
	depth, nested := 0, 0
	for i := from; i < seq.Len(); i++ {
		t := seq.At(i)
		switch {
		case opens(t):
			depth++
		case closes(t):
			if depth == 0 {
				return i
			}
			depth--
		case depth > 0:
		case token.Is(t, "if"):
			nested++
		case token.Is(t, "else") && nested > 0:
			nested--
		case nested == 0 && (token.Is(t, ",") || token.Is(t, "...") || token.Is(t, ":") ||
			token.Is(t, "then") || token.Is(t, "else")):
			return i
		}
	}
	return seq.Len()
}

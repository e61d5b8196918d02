// Package engine implements the calculator's reduction loop.
//
// A Session owns a rule library, seeded with the built-in rules, and
// reduces token sequences to normal form by repeatedly applying the first
// rule that fits:
//
// Positions are scanned left to right and, at each position, the rules
// that could start there are tried in registration order. A rule is
// skipped when one of the structural symbols around the span it would
// rewrite is in its subordinate-to set, which is how operator precedence
// is expressed. The first rule that succeeds rewrites the workspace and
// the scan starts over. When no rule applies anywhere, the workspace is
// the result.
//
// Every successful rewrite counts as a step. User rules reduce their
// replacements before splicing them in, and those nested reductions share
// the caller's step budget. A user rule's step is counted as soon as it
// starts reducing its replacement, so a definition that recurses forever
// is cut off like any other loop and reported as a BudgetError.
//
// Usage:
//
//	s := engine.NewSession()
//	s.ParseNext("double X = X * 2")
//	out, err := s.ParseNext("double 21") // 42
//	out, err = s.ParseNext("+ 1")        // 43, continues the previous answer
package engine

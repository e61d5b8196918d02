package engine

import (
	"go.uber.org/zap"

	"github.com/gnolang/tcalc/internal/rule"
	"github.com/gnolang/tcalc/internal/token"
)

// StepMessage is the log message of every step written while step dumping
// is on.
const StepMessage = "step"

// reducer runs one top-level reduction. Compiled rules call Reduce again
// for their replacements; those nested reductions share the step count.
// The step of the rule that made the nested call is charged when the call
// starts, so every level of nesting costs at least one step.
type reducer struct {
	lib    *rule.Library
	limit  int
	logger *zap.Logger
	dump   bool

	steps int
	depth int
	// firing holds, per rule application in progress, the step number it
	// was charged, or 0 while it has not been charged yet.
	firing []int
}

var _ rule.Evaluator = (*reducer)(nil)

// Reduce rewrites seq until no rule applies anywhere. The budget is
// exceeded once the step count passes the limit.
func (r *reducer) Reduce(seq token.Sequence) (token.Sequence, error) {
	r.depth++
	defer func() { r.depth-- }()
	r.charge()

	ws := seq
	for {
		if r.steps > r.limit {
			return ws, ErrBudgetExceeded
		}
		next, fired, err := r.step(ws)
		if err != nil {
			return ws, err
		}
		if !fired {
			return ws, nil
		}
		ws = next
	}
}

// charge counts the step of the rule application that called Reduce, once.
func (r *reducer) charge() {
	if n := len(r.firing); n > 0 && r.firing[n-1] == 0 {
		r.steps++
		r.firing[n-1] = r.steps
	}
}

// step applies the first eligible rule, scanning positions left to right
// and rules in registration order.
func (r *reducer) step(ws token.Sequence) (token.Sequence, bool, error) {
	for pos := 0; pos < ws.Len(); pos++ {
		for _, rl := range r.lib.Candidates(ws, pos) {
			if !eligible(rl, ws, pos) {
				continue
			}
			next, n, ok, err := r.apply(rl, ws, pos)
			if err != nil {
				return ws, false, err
			}
			if !ok {
				continue
			}
			if n == 0 {
				r.steps++
				n = r.steps
			}
			r.trace(rl, pos, n, next)
			return next, true, nil
		}
	}
	return ws, false, nil
}

// apply runs rl at pos and reports the step it was charged by a nested
// Reduce, if any.
func (r *reducer) apply(rl rule.Rule, ws token.Sequence, pos int) (token.Sequence, int, bool, error) {
	r.firing = append(r.firing, 0)
	out := rl.Apply(r, ws, pos)
	n := r.firing[len(r.firing)-1]
	r.firing = r.firing[:len(r.firing)-1]

	if err := out.Err(); err != nil {
		return ws, n, false, err
	}
	next, ok := out.Get()
	return next, n, ok, nil
}

// eligible reports whether rl may fire at pos: none of the structural
// symbols around the span it would rewrite is one it is subordinate to.
func eligible(rl rule.Rule, ws token.Sequence, pos int) bool {
	subs := rl.SubordinateTo()
	if len(subs) == 0 {
		return true
	}
	end := min(pos+rl.Template().Len(), ws.Len())
	for _, t := range ws.EnclosingStructure(pos, end) {
		for _, s := range subs {
			if token.Is(t, token.Symbol(s)) {
				return false
			}
		}
	}
	return true
}

func (r *reducer) trace(rl rule.Rule, pos, step int, ws token.Sequence) {
	if !r.dump {
		return
	}
	r.logger.Info(StepMessage,
		zap.Int("step", step),
		zap.Int("depth", r.depth),
		zap.String("rule", rl.Name()),
		zap.Int("pos", pos),
		zap.Stringer("workspace", ws),
	)
}

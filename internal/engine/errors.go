package engine

import (
	"errors"
	"fmt"

	"github.com/gnolang/tcalc/internal/token"
)

// ErrBudgetExceeded reports that a reduction did not reach normal form
// within the step budget, which usually means the rule set loops.
var ErrBudgetExceeded = errors.New("step budget exceeded")

// BudgetError carries the state a reduction was abandoned in.
type BudgetError struct {
	Steps     int
	Limit     int
	Workspace token.Sequence
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("%s: %d steps taken, limit %d, workspace: %s", ErrBudgetExceeded, e.Steps, e.Limit, e.Workspace)
}

func (e *BudgetError) Unwrap() error { return ErrBudgetExceeded }

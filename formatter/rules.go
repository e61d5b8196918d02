package formatter

import (
	"fmt"
	"strings"

	"github.com/gnolang/tcalc/internal/rule"
	"github.com/gnolang/tcalc/internal/token"
)

type rewriter interface {
	Replacement() token.Sequence
}

// FormatRules lists rules in registration order, one per line. User rules
// show their definition when they were given a name of their own, and
// rules with a precedence constraint list the symbols they yield to.
func FormatRules(rules []rule.Rule) string {
	width := len(fmt.Sprint(len(rules)))

	var b strings.Builder
	for i, r := range rules {
		b.WriteString(lineStyle.Sprintf("%*d | ", width, i+1))
		b.WriteString(ruleStyle.Sprint(r.Name()))

		if rw, ok := r.(rewriter); ok && !strings.Contains(r.Name(), " = ") {
			b.WriteString(noStyle.Sprint("  " + r.Template().String() + " = " + rw.Replacement().String()))
		}
		if subs := r.SubordinateTo(); len(subs) > 0 {
			b.WriteString(lineStyle.Sprint("  below " + strings.Join(subs, " ")))
		}
		b.WriteString("\n")
	}
	return b.String()
}

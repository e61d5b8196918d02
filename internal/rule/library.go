package rule

import (
	"github.com/gnolang/tcalc/internal/token"
)

// Library is a registration-ordered collection of rules.
type Library struct {
	rules []Rule
	index *Index
}

// NewLibrary returns a library holding rules in the given order.
func NewLibrary(rules ...Rule) *Library {
	lib := &Library{index: NewIndex()}
	for _, r := range rules {
		lib.Register(r)
	}
	return lib
}

// Register appends r; it ranks after every rule registered before it.
func (l *Library) Register(r Rule) {
	l.index.Insert(r.Template(), len(l.rules))
	l.rules = append(l.rules, r)
}

// Len returns the number of registered rules.
func (l *Library) Len() int { return len(l.rules) }

// Rules returns the rules in registration order.
func (l *Library) Rules() []Rule { return append([]Rule(nil), l.rules...) }

// Candidates returns, in registration order, the rules whose template shape
// fits seq at pos.
func (l *Library) Candidates(seq token.Sequence, pos int) []Rule {
	ids := l.index.Lookup(seq, pos)
	out := make([]Rule, len(ids))
	for i, id := range ids {
		out[i] = l.rules[id]
	}
	return out
}

// IsInfix reports whether some rule uses op as a binary operator, that is,
// has a template starting with a placeholder immediately followed by op.
func (l *Library) IsInfix(op token.Symbol) bool {
	for _, r := range l.rules {
		tmpl := r.Template()
		if tmpl.Len() >= 3 && token.IsPlaceholder(tmpl.At(0)) && token.Is(tmpl.At(1), op) {
			return true
		}
	}
	return false
}

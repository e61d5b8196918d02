package pattern

import (
	"github.com/edwingeng/deque"

	"github.com/gnolang/tcalc/internal/token"
)

// Bindings maps placeholder names to the tokens they matched. A Bindings
// value is never modified after it is handed out; binding a new name copies.
type Bindings map[string]token.Token

func (b Bindings) with(name string, t token.Token) Bindings {
	out := make(Bindings, len(b)+1)
	for k, v := range b {
		out[k] = v
	}
	out[name] = t
	return out
}

// pair is one pending obligation: pat must match val.
type pair struct {
	pat token.Token
	val token.Token
}

// choice is a suspended match attempt: the obligations still to check and
// the bindings made so far.
type choice struct {
	pending []pair
	binds   Bindings
}

// Matches enumerates the ways a template matches at one position. Each
// nondeterministic decision (which map entry a map capture selects) leaves
// the untried alternatives on a stack, so Next resumes exactly where the
// previous attempt gave up.
type Matches struct {
	choices deque.Deque
}

// Match prepares the enumeration of bindings under which tmpl matches the
// tokens of seq starting at pos. Nothing is matched until Next is called.
func Match(tmpl, seq token.Sequence, pos int) *Matches {
	m := &Matches{choices: deque.NewDeque()}
	if tmpl.Len() == 0 || pos < 0 || pos+tmpl.Len() > seq.Len() {
		return m
	}
	pending := make([]pair, tmpl.Len())
	for i := range pending {
		pending[i] = pair{pat: tmpl.At(i), val: seq.At(pos + i)}
	}
	m.choices.PushBack(choice{pending: pending, binds: Bindings{}})
	return m
}

// First returns the first bindings under which tmpl matches at pos.
func First(tmpl, seq token.Sequence, pos int) (Bindings, bool) {
	return Match(tmpl, seq, pos).Next()
}

// Next returns the next successful set of bindings, or false once every
// alternative has been exhausted.
func (m *Matches) Next() (Bindings, bool) {
	for !m.choices.Empty() {
		c := m.choices.PopBack().(choice)
		if binds, ok := m.resume(c); ok {
			return binds, true
		}
	}
	return nil, false
}

func (m *Matches) resume(c choice) (Bindings, bool) {
	pending, binds := c.pending, c.binds
	for len(pending) > 0 {
		p := pending[0]
		pending = pending[1:]

		switch pat := p.pat.(type) {
		case token.Var:
			if !pat.Accepts(p.val) {
				return nil, false
			}
			if prev, bound := binds[pat.Name]; bound {
				if !prev.Equal(p.val) {
					return nil, false
				}
				continue
			}
			binds = binds.with(pat.Name, p.val)

		case token.ListCapture:
			l, ok := p.val.(token.List)
			if !ok || l.Len() == 0 {
				return nil, false
			}
			pending = prepend(pending,
				pair{pat: pat.Head, val: l.At(0)},
				pair{pat: pat.Tail, val: l.Rest()},
			)

		case token.MapCapture:
			mp, ok := p.val.(token.Map)
			if !ok || mp.Len() == 0 {
				return nil, false
			}
			// pushed in reverse so the second entry is resumed first
			for i := mp.Len() - 1; i >= 1; i-- {
				m.choices.PushBack(choice{
					pending: prepend(pending, entryPairs(pat, mp, i)...),
					binds:   binds,
				})
			}
			pending = prepend(pending, entryPairs(pat, mp, 0)...)

		case token.List:
			if !token.HasPlaceholder(pat) {
				if !pat.Equal(p.val) {
					return nil, false
				}
				continue
			}
			l, ok := p.val.(token.List)
			if !ok || l.Len() != pat.Len() {
				return nil, false
			}
			elems := make([]pair, pat.Len())
			for i := range elems {
				elems[i] = pair{pat: pat.At(i), val: l.At(i)}
			}
			pending = prepend(pending, elems...)

		default:
			if !pat.Equal(p.val) {
				return nil, false
			}
		}
	}
	return binds, true
}

func entryPairs(pat token.MapCapture, mp token.Map, i int) []pair {
	e := mp.Entry(i)
	return []pair{
		{pat: pat.Key, val: e.Key},
		{pat: pat.Value, val: e.Value},
		{pat: pat.Rest, val: mp.Without(i)},
	}
}

// prepend returns a fresh slice; pending slices are shared between choices.
func prepend(pending []pair, front ...pair) []pair {
	out := make([]pair, 0, len(front)+len(pending))
	out = append(out, front...)
	return append(out, pending...)
}

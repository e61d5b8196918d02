package pattern

import "github.com/gnolang/tcalc/internal/token"

// Instantiate substitutes bound placeholders in tmpl. Placeholders without
// a binding are left in place. Captures whose parts all resolve are rebuilt
// into the list or map they describe.
func Instantiate(tmpl token.Sequence, b Bindings) token.Sequence {
	out := make([]token.Token, tmpl.Len())
	for i := range out {
		out[i] = substitute(tmpl.At(i), b)
	}
	return token.NewSequence(out...)
}

func substitute(t token.Token, b Bindings) token.Token {
	switch v := t.(type) {
	case token.Var:
		if bound, ok := b[v.Name]; ok {
			return bound
		}
		return v

	case token.ListCapture:
		head, tail := substitute(v.Head, b), substitute(v.Tail, b)
		if l, ok := tail.(token.List); ok && token.IsValue(head) {
			return l.Prepend(head)
		}
		return token.ListCapture{Head: head, Tail: tail}

	case token.MapCapture:
		key, val, rest := substitute(v.Key, b), substitute(v.Value, b), substitute(v.Rest, b)
		if m, ok := rest.(token.Map); ok && token.IsValue(key) && token.IsValue(val) {
			return m.Merge(token.NewMap(token.Entry{Key: key, Value: val}))
		}
		return token.MapCapture{Key: key, Value: val, Rest: rest}

	case token.List:
		if !token.HasPlaceholder(v) {
			return v
		}
		elems := v.Elems()
		for i, e := range elems {
			elems[i] = substitute(e, b)
		}
		return token.NewList(elems...)

	case token.Map:
		if !token.HasPlaceholder(v) {
			return v
		}
		entries := v.Entries()
		for i, e := range entries {
			entries[i] = token.Entry{Key: substitute(e.Key, b), Value: substitute(e.Value, b)}
		}
		return token.NewMap(entries...)
	}
	return t
}

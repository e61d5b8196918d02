package compiler

import (
	"fmt"

	"github.com/gnolang/tcalc/internal/token"
)

// parser builds a template from the tokens of a pattern. It records the
// placeholder names it meets so the replacement can be checked against
// them.
type parser struct {
	toks []token.Token
	pos  int
	vars map[string]bool
}

func (p *parser) eof() bool { return p.pos >= len(p.toks) }

func (p *parser) peekIs(s token.Symbol) bool {
	return !p.eof() && token.Is(p.toks[p.pos], s)
}

func (p *parser) expect(s token.Symbol) error {
	if !p.peekIs(s) {
		return fmt.Errorf("expected %q %s", s, p.where())
	}
	p.pos++
	return nil
}

func (p *parser) where() string {
	if p.eof() {
		return "at end of pattern"
	}
	return fmt.Sprintf("before %s", p.toks[p.pos])
}

// template parses the whole pattern. Parentheses stay literal but must
// balance.
func (p *parser) template() (token.Sequence, error) {
	var out []token.Token
	parens := 0
	for !p.eof() {
		t := p.toks[p.pos]
		switch {
		case token.Is(t, "["), token.Is(t, "{"):
			item, err := p.item()
			if err != nil {
				return token.Sequence{}, err
			}
			out = append(out, item)
			continue
		case token.Is(t, "("):
			parens++
		case token.Is(t, ")"):
			if parens == 0 {
				return token.Sequence{}, fmt.Errorf("unbalanced ')'")
			}
			parens--
		case token.Is(t, "]"), token.Is(t, "}"):
			return token.Sequence{}, fmt.Errorf("unbalanced %q", t)
		case token.Is(t, "..."):
			return token.Sequence{}, fmt.Errorf("'...' is only allowed inside a list or map pattern")
		}
		out = append(out, p.placeholder(t))
		p.pos++
	}
	if parens != 0 {
		return token.Sequence{}, fmt.Errorf("pattern is missing ')'")
	}
	return token.NewSequence(out...), nil
}

func (p *parser) placeholder(t token.Token) token.Token {
	if sym, ok := t.(token.Symbol); ok && IsPlaceholderName(sym) {
		p.vars[string(sym)] = true
		return token.Var{Name: string(sym)}
	}
	return t
}

// item parses one element of a list or map pattern.
func (p *parser) item() (token.Token, error) {
	if p.eof() {
		return nil, fmt.Errorf("pattern ends inside brackets")
	}
	t := p.toks[p.pos]
	switch {
	case token.Is(t, "["):
		p.pos++
		return p.list()
	case token.Is(t, "{"):
		p.pos++
		return p.mapping()
	}
	item := p.placeholder(t)
	if !token.IsPlaceholder(item) && !token.IsValue(item) {
		return nil, fmt.Errorf("unexpected %s inside brackets", t)
	}
	p.pos++
	return item, nil
}

// list parses the rest of "[a, b ... T]" after the opening bracket.
func (p *parser) list() (token.Token, error) {
	if p.peekIs("]") {
		p.pos++
		return token.NewList(), nil
	}
	var elems []token.Token
	for {
		elem, err := p.item()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)

		switch {
		case p.peekIs(","):
			p.pos++
		case p.peekIs("..."):
			p.pos++
			tail, err := p.item()
			if err != nil {
				return nil, err
			}
			if !fitsKind(tail, token.KindList) {
				return nil, fmt.Errorf("tail %s of a list pattern must be a list", tail)
			}
			if err := p.expect("]"); err != nil {
				return nil, err
			}
			for i := len(elems) - 1; i >= 0; i-- {
				tail = token.ListCapture{Head: elems[i], Tail: tail}
			}
			return tail, nil
		default:
			if err := p.expect("]"); err != nil {
				return nil, err
			}
			return token.NewList(elems...), nil
		}
	}
}

// mapping parses the rest of "{k: v, ... R}" after the opening brace.
func (p *parser) mapping() (token.Token, error) {
	if p.peekIs("}") {
		p.pos++
		return token.NewMap(), nil
	}
	var entries []token.Entry
	var rest token.Token = token.NewMap()
	for done := false; !done; {
		key, err := p.item()
		if err != nil {
			return nil, err
		}
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		val, err := p.item()
		if err != nil {
			return nil, err
		}
		entries = append(entries, token.Entry{Key: key, Value: val})

		switch {
		case p.peekIs(","):
			p.pos++
		case p.peekIs("..."):
			p.pos++
			if rest, err = p.item(); err != nil {
				return nil, err
			}
			if !fitsKind(rest, token.KindMap) {
				return nil, fmt.Errorf("remainder %s of a map pattern must be a map", rest)
			}
			done = true
		default:
			done = true
		}
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}

	literal := !token.HasPlaceholder(rest)
	for _, e := range entries {
		literal = literal && !token.HasPlaceholder(e.Key) && !token.HasPlaceholder(e.Value)
	}
	if literal {
		return token.NewMap(entries...).Merge(rest.(token.Map)), nil
	}
	for i := len(entries) - 1; i >= 0; i-- {
		rest = token.MapCapture{Key: entries[i].Key, Value: entries[i].Value, Rest: rest}
	}
	return rest, nil
}

// fitsKind reports whether t can stand for a value of kind k.
func fitsKind(t token.Token, k token.Kind) bool {
	switch t.Kind() {
	case token.KindVar:
		return true
	case token.KindListCapture:
		return k == token.KindList
	case token.KindMapCapture:
		return k == token.KindMap
	}
	return t.Kind() == k
}

package token

import "strings"

// Sequence is an immutable ordered run of tokens. Operations that change a
// sequence return a new one; earlier sequences stay valid.
type Sequence struct {
	toks []Token
}

// NewSequence returns a sequence holding a copy of toks.
func NewSequence(toks ...Token) Sequence {
	return Sequence{toks: append([]Token(nil), toks...)}
}

func (s Sequence) Len() int       { return len(s.toks) }
func (s Sequence) IsEmpty() bool  { return len(s.toks) == 0 }
func (s Sequence) At(i int) Token { return s.toks[i] }

// Tokens returns a copy of the tokens.
func (s Sequence) Tokens() []Token { return append([]Token(nil), s.toks...) }

// Slice returns the tokens in [i, j). The result shares storage with s,
// which is safe because neither is ever written.
func (s Sequence) Slice(i, j int) Sequence {
	return Sequence{toks: s.toks[i:j:j]}
}

// ReplaceSpan returns a new sequence with [start, end) replaced by repl.
func (s Sequence) ReplaceSpan(start, end int, repl ...Token) Sequence {
	out := make([]Token, 0, len(s.toks)-(end-start)+len(repl))
	out = append(out, s.toks[:start]...)
	out = append(out, repl...)
	out = append(out, s.toks[end:]...)
	return Sequence{toks: out}
}

// Concat returns s followed by other.
func (s Sequence) Concat(other Sequence) Sequence {
	return s.ReplaceSpan(len(s.toks), len(s.toks), other.toks...)
}

// EnclosingStructure returns the structural symbols that directly surround
// the span [start, end): the symbol on its left, if any, then the symbol on
// its right, if any. A binary operator whose operands include the span
// appears here, which is what precedence checks rely on.
func (s Sequence) EnclosingStructure(start, end int) []Token {
	var out []Token
	if start > 0 && start <= len(s.toks) {
		if sym, ok := s.toks[start-1].(Symbol); ok {
			out = append(out, sym)
		}
	}
	if end >= 0 && end < len(s.toks) {
		if sym, ok := s.toks[end].(Symbol); ok {
			out = append(out, sym)
		}
	}
	return out
}

func (s Sequence) Equal(other Sequence) bool {
	if len(s.toks) != len(other.toks) {
		return false
	}
	for i := range s.toks {
		if !s.toks[i].Equal(other.toks[i]) {
			return false
		}
	}
	return true
}

func (s Sequence) String() string {
	parts := make([]string, len(s.toks))
	for i, t := range s.toks {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

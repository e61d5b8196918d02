package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gnolang/tcalc/internal/token"
)

// multi-character operators, longest first
var operators = []string{"...", "==", "!=", "<=", ">=", "+", "-", "*", "/", "^", "(", ")", "[", "]", "{", "}", ",", ":", "=", "<", ">"}

// openers are symbols after which a minus sign starts a negative literal.
var openers = map[token.Symbol]bool{
	"+": true, "-": true, "*": true, "/": true, "^": true,
	"(": true, "[": true, "{": true, ",": true, ":": true, "=": true,
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
	"...": true,
}

// Lex splits input into tokens: numbers, quoted strings, booleans, words
// and operator symbols. Brackets are emitted as symbols; folding them into
// lists and maps is left to the rewrite rules.
func Lex(input string) (token.Sequence, error) {
	l := &lexer{input: []rune(input), line: 1, col: 1}
	var toks []token.Token

	for {
		l.skipSpace()
		if l.eof() {
			break
		}
		c := l.peek(0)

		switch {
		case c == '"' || c == '\'':
			s, err := l.lexString(c)
			if err != nil {
				return token.Sequence{}, err
			}
			toks = append(toks, token.Text(s))

		case isDigit(c) || (c == '.' && isDigit(l.peek(1))):
			n, err := l.lexNumber()
			if err != nil {
				return token.Sequence{}, err
			}
			toks = append(toks, n)

		case c == '-' && isDigit(l.peek(1)) && startsOperand(toks):
			l.advance()
			n, err := l.lexNumber()
			if err != nil {
				return token.Sequence{}, err
			}
			// -2^2 is -(2^2): leave the sign to the negate rule
			if l.powerFollows() {
				toks = append(toks, token.Symbol("-"), n)
			} else {
				toks = append(toks, n.Neg())
			}

		case isIdentifierStart(c):
			toks = append(toks, l.lexWord())

		default:
			op, ok := l.lexOperator()
			if !ok {
				return token.Sequence{}, fmt.Errorf("line %d col %d: unexpected character %q", l.line, l.col, c)
			}
			toks = append(toks, op)
		}
	}
	return token.NewSequence(toks...), nil
}

// Definition splits a "pattern = replacement" line at its top-level '='.
// It reports false for a plain expression.
func Definition(seq token.Sequence) (pattern, replacement token.Sequence, ok bool) {
	depth := 0
	for i := 0; i < seq.Len(); i++ {
		switch t := seq.At(i); {
		case token.Is(t, "("), token.Is(t, "["), token.Is(t, "{"):
			depth++
		case token.Is(t, ")"), token.Is(t, "]"), token.Is(t, "}"):
			if depth > 0 {
				depth--
			}
		case depth == 0 && token.Is(t, "="):
			return seq.Slice(0, i), seq.Slice(i+1, seq.Len()), true
		}
	}
	return token.Sequence{}, token.Sequence{}, false
}

type lexer struct {
	input []rune
	pos   int
	line  int
	col   int
}

func (l *lexer) eof() bool { return l.pos >= len(l.input) }

func (l *lexer) peek(offset int) rune {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *lexer) advance() rune {
	c := l.input[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *lexer) skipSpace() {
	for !l.eof() && unicode.IsSpace(l.peek(0)) {
		l.advance()
	}
}

func (l *lexer) lexString(quote rune) (string, error) {
	line, col := l.line, l.col
	l.advance() // opening quote
	var sb strings.Builder
	for {
		if l.eof() {
			return "", fmt.Errorf("line %d col %d: string is not terminated", line, col)
		}
		c := l.advance()
		switch c {
		case quote:
			return sb.String(), nil
		case '\\':
			if l.eof() {
				return "", fmt.Errorf("line %d col %d: '\\' escape is at the end of input", l.line, l.col)
			}
			switch e := l.advance(); e {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			default:
				sb.WriteRune(e)
			}
		default:
			sb.WriteRune(c)
		}
	}
}

func (l *lexer) lexNumber() (token.Number, error) {
	line, col := l.line, l.col
	var sb strings.Builder
	for !l.eof() && isDigit(l.peek(0)) {
		sb.WriteRune(l.advance())
	}
	// a fraction needs a digit after the point so that "1...T" stays intact
	if l.peek(0) == '.' && isDigit(l.peek(1)) {
		if sb.Len() == 0 {
			sb.WriteRune('0')
		}
		sb.WriteRune(l.advance())
		for !l.eof() && isDigit(l.peek(0)) {
			sb.WriteRune(l.advance())
		}
	}
	if c := l.peek(0); c == 'e' || c == 'E' {
		next := l.peek(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peek(2))) {
			sb.WriteRune(l.advance())
			if next == '+' || next == '-' {
				sb.WriteRune(l.advance())
			}
			for !l.eof() && isDigit(l.peek(0)) {
				sb.WriteRune(l.advance())
			}
		}
	}
	n, err := token.ParseNumber(sb.String())
	if err != nil {
		return token.Number{}, fmt.Errorf("line %d col %d: %w", line, col, err)
	}
	return n, nil
}

// powerFollows reports whether the next token is "^" or the word "to".
func (l *lexer) powerFollows() bool {
	i := 0
	for unicode.IsSpace(l.peek(i)) {
		i++
	}
	if l.peek(i) == '^' {
		return true
	}
	return l.peek(i) == 't' && l.peek(i+1) == 'o' && !isIdentifierChar(l.peek(i+2))
}

func (l *lexer) lexWord() token.Token {
	var sb strings.Builder
	for !l.eof() && isIdentifierChar(l.peek(0)) {
		sb.WriteRune(l.advance())
	}
	switch word := sb.String(); word {
	case "true":
		return token.Bool(true)
	case "false":
		return token.Bool(false)
	default:
		return token.Symbol(word)
	}
}

func (l *lexer) lexOperator() (token.Symbol, bool) {
	for _, op := range operators {
		if l.hasPrefix(op) {
			for range op {
				l.advance()
			}
			return token.Symbol(op), true
		}
	}
	return "", false
}

func (l *lexer) hasPrefix(s string) bool {
	i := 0
	for _, r := range s {
		if l.peek(i) != r {
			return false
		}
		i++
	}
	return true
}

// startsOperand reports whether the next token begins an operand, so that
// a minus sign there cannot be a binary operator.
func startsOperand(toks []token.Token) bool {
	if len(toks) == 0 {
		return true
	}
	sym, ok := toks[len(toks)-1].(token.Symbol)
	return ok && openers[sym]
}

func isIdentifierStart(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func isIdentifierChar(c rune) bool {
	return isIdentifierStart(c) || isDigit(c)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

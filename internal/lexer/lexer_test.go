package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/tcalc/internal/token"
)

func TestLex(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected []token.Token
	}{
		{
			name:     "arithmetic",
			input:    "3+5*2",
			expected: []token.Token{token.Int(3), token.Symbol("+"), token.Int(5), token.Symbol("*"), token.Int(2)},
		},
		{
			name:     "leading negative literal",
			input:    "-15+3",
			expected: []token.Token{token.Int(-15), token.Symbol("+"), token.Int(3)},
		},
		{
			name:     "binary minus after operand",
			input:    "4-1",
			expected: []token.Token{token.Int(4), token.Symbol("-"), token.Int(1)},
		},
		{
			name:     "negative exponent",
			input:    "0.5^-2",
			expected: []token.Token{token.Frac(1, 2), token.Symbol("^"), token.Int(-2)},
		},
		{
			name:     "sign before a power stays an operator",
			input:    "-2^2",
			expected: []token.Token{token.Symbol("-"), token.Int(2), token.Symbol("^"), token.Int(2)},
		},
		{
			name:     "negative exponent before a power",
			input:    "2^-3 ^ 2",
			expected: []token.Token{token.Int(2), token.Symbol("^"), token.Symbol("-"), token.Int(3), token.Symbol("^"), token.Int(2)},
		},
		{
			name:     "leading operator kept for previous answer",
			input:    "+1",
			expected: []token.Token{token.Symbol("+"), token.Int(1)},
		},
		{
			name:  "list capture syntax",
			input: "[H ... T]",
			expected: []token.Token{
				token.Symbol("["), token.Symbol("H"), token.Symbol("..."), token.Symbol("T"), token.Symbol("]"),
			},
		},
		{
			name:  "ellipsis right after a number",
			input: "[1...T]",
			expected: []token.Token{
				token.Symbol("["), token.Int(1), token.Symbol("..."), token.Symbol("T"), token.Symbol("]"),
			},
		},
		{
			name:  "map with strings",
			input: `{"blah": 3, 'oaf' : 2}`,
			expected: []token.Token{
				token.Symbol("{"), token.Text("blah"), token.Symbol(":"), token.Int(3), token.Symbol(","),
				token.Text("oaf"), token.Symbol(":"), token.Int(2), token.Symbol("}"),
			},
		},
		{
			name:  "comparison and booleans",
			input: "if 7==5 then true else false",
			expected: []token.Token{
				token.Symbol("if"), token.Int(7), token.Symbol("=="), token.Int(5), token.Symbol("then"),
				token.Bool(true), token.Symbol("else"), token.Bool(false),
			},
		},
		{
			name:     "exponent and leading point",
			input:    "1e3 .25",
			expected: []token.Token{token.Int(1000), token.Frac(1, 4)},
		},
		{
			name:     "escapes",
			input:    `"a\"b\n"`,
			expected: []token.Token{token.Text("a\"b\n")},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Lex(tt.input)
			require.NoError(t, err)
			assert.True(t, token.NewSequence(tt.expected...).Equal(got), "want %v, got %v",
				token.NewSequence(tt.expected...), got)
		})
	}
}

func TestLexErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		err   string
	}{
		{"unterminated string", `"abc`, "line 1 col 1: string is not terminated"},
		{"unknown character", "1 # 2", "line 1 col 3: unexpected character '#'"},
		{"position on second line", "1\n  $", "line 2 col 3: unexpected character '$'"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Lex(tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.err, err.Error())
		})
	}
}

func TestDefinition(t *testing.T) {
	t.Parallel()

	seq, err := Lex("concat [[H ... T1] ... T2] = [H ... concat [T1 ... T2]]")
	require.NoError(t, err)

	pattern, replacement, ok := Definition(seq)
	require.True(t, ok)
	assert.Equal(t, "concat [ [ H ... T1 ] ... T2 ]", pattern.String())
	assert.Equal(t, "[ H ... concat [ T1 ... T2 ] ]", replacement.String())

	seq, err = Lex("if 7==5 then 1 else 0")
	require.NoError(t, err)
	_, _, ok = Definition(seq)
	assert.False(t, ok)
}

package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/tcalc/internal/lexer"
	"github.com/gnolang/tcalc/internal/rule"
	"github.com/gnolang/tcalc/internal/token"
)

func findRule(t *testing.T, name string) rule.Rule {
	t.Helper()
	for _, r := range Rules() {
		if r.Name() == name {
			return r
		}
	}
	require.FailNow(t, "no built-in rule named "+name)
	return nil
}

func lex(t *testing.T, input string) token.Sequence {
	t.Helper()
	seq, err := lexer.Lex(input)
	require.NoError(t, err)
	return seq
}

func TestRuleApply(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		rule  string
		input string
		pos   int
		want  string // empty means the rule must fail
	}{
		{name: "paren around value", rule: "()", input: "( 5 )", want: "5"},
		{name: "paren around expression", rule: "()", input: "( 1 + 2 )"},
		{name: "list literal", rule: "[]", input: "[1, 2, 3]", want: "[1, 2, 3]"},
		{name: "empty list", rule: "[]", input: "[]", want: "[]"},
		{name: "list with pending element", rule: "[]", input: "[1 + 2]"},
		{name: "unclosed list", rule: "[]", input: "[1, 2"},
		{name: "list inside a workspace", rule: "[]", input: "f [1] + 2", pos: 1, want: "f [1] + 2"},
		{name: "map literal", rule: "{}", input: `{"a": 1, "b": 2}`, want: `{"a": 1, "b": 2}`},
		{name: "empty map", rule: "{}", input: "{}", want: "{}"},
		{name: "map missing value", rule: "{}", input: `{"a": }`},
		{name: "add", rule: "+", input: "1 + 2", want: "3"},
		{name: "exact division", rule: "/", input: "6 / 4", want: "3/2"},
		{name: "division by zero stays", rule: "/", input: "1 / 0"},
		{name: "negative power", rule: "^", input: "0.5 ^ -2", want: "4"},
		{name: "power is right associative", rule: "^", input: "2 ^ 3 ^ 2"},
		{name: "power fires on the right first", rule: "^", input: "2 ^ 3 ^ 2", pos: 2, want: "2 ^ 9"},
		{name: "minus is left associative", rule: "-", input: "4 - 1 - 3", pos: 2},
		{name: "addition after subtraction waits", rule: "+", input: "x - 1 + 3", pos: 2},
		{name: "arithmetic needs numbers", rule: "+", input: `"a" + 2`},
		{name: "negate", rule: "negate", input: "- 3", want: "-3"},
		{name: "negate after operator", rule: "negate", input: "2 * - 3", pos: 2, want: "2 * -3"},
		{name: "binary minus is not negation", rule: "negate", input: "2 - 3", pos: 1},
		{name: "equal texts", rule: "==", input: `"a" == "a"`, want: "true"},
		{name: "different texts", rule: "!=", input: `"a" != "b"`, want: "true"},
		{name: "less than", rule: "<", input: "1 < 2", want: "true"},
		{name: "greater or equal", rule: ">=", input: "1 >= 2", want: "false"},
		{name: "and", rule: "and", input: "true and false", want: "false"},
		{name: "or", rule: "or", input: "false or true", want: "true"},
		{name: "not", rule: "not", input: "not false", want: "true"},
		{name: "alias", rule: "multiplied by", input: "2 multiplied by 3", pos: 1, want: "2 * 3"},
		{name: "alias of several words", rule: "to the power of", input: "2 to the power of 3", pos: 1, want: "2 ^ 3"},
		{name: "if picks then", rule: "if", input: "if true then 1 else 2", want: "1"},
		{name: "if wraps a long branch", rule: "if", input: "if false then 1 else 2 + 3", want: "( 2 + 3 )"},
		{name: "else ends at a comma", rule: "if", input: "[if false then 1 else 2, 3]", pos: 1, want: "[ 2 , 3 ]"},
		{
			name:  "nested conditional in else",
			rule:  "if",
			input: "if false then 1 else if true then 2 else 3",
			want:  "( if true then 2 else 3 )",
		},
		{
			name:  "nested conditional in then",
			rule:  "if",
			input: "if true then if false then 1 else 2 else 3",
			want:  "( if false then 1 else 2 )",
		},
		{name: "if waits for a boolean", rule: "if", input: "if 1 < 2 then 1 else 2"},
		{name: "if without else", rule: "if", input: "if true then 1"},
		{name: "lookup needs a folded map", rule: "get", input: `get "blah" from {"blah": 3, "oaf": 2}`},
		{name: "lookup needs a map", rule: "get", input: `get "b" from m`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := findRule(t, tt.rule)
			out := r.Apply(nil, lex(t, tt.input), tt.pos)
			require.NoError(t, out.Err())
			got, ok := out.Get()
			if tt.want == "" {
				assert.False(t, ok, "unexpected rewrite to %s", got)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestStructuredOperands(t *testing.T) {
	t.Parallel()
	one, two, three := token.Int(1), token.Int(2), token.Int(3)

	cons := token.NewSequence(sym("["), one, sym("..."), token.NewList(two, three), sym("]"))
	got, ok := findRule(t, "[]").Apply(nil, cons, 0).Get()
	require.True(t, ok)
	assert.Equal(t, "[1, 2, 3]", got.String())

	rest := token.NewMap(
		token.Entry{Key: token.Text("a"), Value: token.Int(0)},
		token.Entry{Key: token.Text("c"), Value: three},
	)
	merge := token.NewSequence(sym("{"), token.Text("a"), sym(":"), one, sym("..."), rest, sym("}"))
	got, ok = findRule(t, "{}").Apply(nil, merge, 0).Get()
	require.True(t, ok)
	assert.Equal(t, `{"a": 1, "c": 3}`, got.String())

	equal := token.NewSequence(token.NewList(one, two), sym("=="), token.NewList(one, two))
	got, ok = findRule(t, "==").Apply(nil, equal, 0).Get()
	require.True(t, ok)
	assert.Equal(t, "true", got.String())

	m := token.NewMap(
		token.Entry{Key: token.Text("blah"), Value: three},
		token.Entry{Key: token.Text("oaf"), Value: two},
	)
	lookup := token.NewSequence(sym("get"), token.Text("blah"), sym("from"), m)
	got, ok = findRule(t, "get").Apply(nil, lookup, 0).Get()
	require.True(t, ok)
	assert.Equal(t, "3", got.String())

	missing := token.NewSequence(sym("get"), token.Text("nope"), sym("from"), m)
	assert.False(t, findRule(t, "get").Apply(nil, missing, 0).OK())
}

func TestLibrary(t *testing.T) {
	t.Parallel()
	lib := rule.NewLibrary(Rules()...)

	assert.Equal(t, len(defaultRules), lib.Len())
	for _, op := range []token.Symbol{"+", "-", "*", "/", "^", "==", "<", "and", "or"} {
		assert.True(t, lib.IsInfix(op), "%s should be infix", op)
	}
	assert.False(t, lib.IsInfix("not"))
	assert.False(t, lib.IsInfix("("))

	names := make(map[string]bool)
	for _, r := range lib.Rules() {
		assert.False(t, names[r.Name()], "duplicate rule name %s", r.Name())
		names[r.Name()] = true
	}
}

func TestPrecedenceSets(t *testing.T) {
	t.Parallel()

	assert.Empty(t, findRule(t, "^").SubordinateTo())
	assert.ElementsMatch(t, powerOps, findRule(t, "*").SubordinateTo())
	assert.Subset(t, findRule(t, "+").SubordinateTo(), []string{"^", "*", "/", "times", "over"})
	assert.NotContains(t, findRule(t, "+").SubordinateTo(), "-")
	assert.Subset(t, findRule(t, "==").SubordinateTo(), []string{"+", "-", "*"})
	assert.Subset(t, findRule(t, "or").SubordinateTo(), []string{"and", "<"})
	assert.Empty(t, findRule(t, "[]").SubordinateTo())
}

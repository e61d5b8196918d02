package rule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/tcalc/internal/token"
)

type stubRule struct {
	name string
	tmpl token.Sequence
}

func (r stubRule) Name() string { return r.name }
func (r stubRule) Template() token.Sequence { return r.tmpl }
func (r stubRule) SubordinateTo() []string { return nil }
func (r stubRule) Apply(Evaluator, token.Sequence, int) Outcome { return Fail() }

func names(rules []Rule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.Name()
	}
	return out
}

func newTestLibrary() *Library {
	num := token.Var{Name: "A", Category: token.KindNumber}
	return NewLibrary(
		stubRule{"paren", token.NewSequence(token.Symbol("("), token.Var{Name: "X"}, token.Symbol(")"))},
		stubRule{"add", token.NewSequence(num, token.Symbol("+"), num)},
		stubRule{"list", token.NewSequence(token.Symbol("["))},
		stubRule{"inc", token.NewSequence(token.Symbol("inc"), token.ListCapture{Head: token.Var{Name: "H"}, Tail: token.Var{Name: "T"}})},
		stubRule{"generic-add", token.NewSequence(token.Var{Name: "A"}, token.Symbol("+"), token.Var{Name: "B"})},
	)
}

func TestLibraryCandidates(t *testing.T) {
	t.Parallel()
	lib := newTestLibrary()

	tests := []struct {
		name string
		seq  token.Sequence
		pos  int
		want []string
	}{
		{
			name: "numbers around plus",
			seq:  token.NewSequence(token.Int(1), token.Symbol("+"), token.Int(2)),
			want: []string{"add", "generic-add"},
		},
		{
			name: "text only fits the untyped template",
			seq:  token.NewSequence(token.Text("a"), token.Symbol("+"), token.Text("b")),
			want: []string{"generic-add"},
		},
		{
			name: "prefix template",
			seq:  token.NewSequence(token.Symbol("["), token.Int(1), token.Symbol("]")),
			want: []string{"list"},
		},
		{
			name: "position offset",
			seq:  token.NewSequence(token.Symbol("("), token.Int(1), token.Symbol(")")),
			pos:  1,
			want: []string{},
		},
		{
			name: "list capture is screened by kind",
			seq:  token.NewSequence(token.Symbol("inc"), token.NewList(token.Int(1))),
			want: []string{"inc"},
		},
		{
			name: "truncated sequence",
			seq:  token.NewSequence(token.Int(1), token.Symbol("+")),
			want: []string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, names(lib.Candidates(tt.seq, tt.pos)))
		})
	}
}

func TestLibraryRegistrationOrder(t *testing.T) {
	t.Parallel()
	lib := newTestLibrary()
	seq := token.NewSequence(token.Int(1), token.Symbol("+"), token.Int(2))
	assert.Equal(t, []string{"add", "generic-add"}, names(lib.Candidates(seq, 0)))

	lib.Register(stubRule{"late-add", token.NewSequence(token.Var{Name: "X"}, token.Symbol("+"), token.Var{Name: "Y"})})
	assert.Equal(t, []string{"add", "generic-add", "late-add"}, names(lib.Candidates(seq, 0)))
	assert.Equal(t, 6, lib.Len())
}

func TestLibraryIsInfix(t *testing.T) {
	t.Parallel()
	lib := newTestLibrary()

	assert.True(t, lib.IsInfix("+"))
	assert.False(t, lib.IsInfix("("))
	assert.False(t, lib.IsInfix("*"))
}

func TestOutcome(t *testing.T) {
	t.Parallel()
	seq := token.NewSequence(token.Int(1))

	ok := Success(seq)
	got, present := ok.Get()
	require.True(t, present)
	assert.Equal(t, "1", got.String())

	doubled := ok.Map(func(s token.Sequence) token.Sequence { return s.Concat(s) })
	got, _ = doubled.Get()
	assert.Equal(t, "1 1", got.String())

	failed := ok.Bind(func(token.Sequence) Outcome { return Fail() })
	assert.False(t, failed.OK())
	assert.NoError(t, failed.Err())

	boom := errors.New("boom")
	aborted := Abort(boom).Map(func(s token.Sequence) token.Sequence { return s })
	assert.False(t, aborted.OK())
	assert.ErrorIs(t, aborted.Err(), boom)
}

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberArithmetic(t *testing.T) {
	t.Parallel()

	half, err := ParseNumber("0.5")
	require.NoError(t, err)
	assert.True(t, half.IsExact())
	assert.Equal(t, "1/2", half.String())

	tests := []struct {
		name string
		got  func() (Number, error)
		want Number
	}{
		{"add", func() (Number, error) { return Int(2).Add(Int(3)), nil }, Int(5)},
		{"sub", func() (Number, error) { return Int(4).Sub(Int(7)), nil }, Int(-3)},
		{"mul", func() (Number, error) { return Frac(1, 3).Mul(Int(3)), nil }, Int(1)},
		{"quo exact", func() (Number, error) { return Int(6).Quo(Int(4)) }, Frac(3, 2)},
		{"negative power", func() (Number, error) { return half.Pow(Int(-2)) }, Int(4)},
		{"integer power", func() (Number, error) { return Int(-2).Pow(Int(3)) }, Int(-8)},
		{"fractional power", func() (Number, error) { return Int(25).Pow(Frac(1, 2)) }, Real(5)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.got()
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestNumberFailures(t *testing.T) {
	t.Parallel()

	_, err := Int(1).Quo(Int(0))
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = Int(0).Pow(Int(-1))
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = Int(-4).Pow(Frac(1, 2))
	assert.ErrorIs(t, err, ErrNotANumber)
}

func TestPowBoundsExactResults(t *testing.T) {
	t.Parallel()

	big, err := Int(2).Pow(Int(4096))
	require.NoError(t, err)
	assert.True(t, big.IsExact())

	tests := []struct {
		name string
		base Number
		exp  Number
	}{
		{"huge base", big, Int(4096)},
		{"huge exponent", Int(10), Int(5000)},
		{"result too large", Int(1 << 40), Int(4096)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.base.Pow(tt.exp)
			assert.ErrorIs(t, err, ErrNotANumber)
		})
	}
}

func TestNumberEqualityIsByValue(t *testing.T) {
	t.Parallel()

	assert.True(t, Int(5).Equal(Real(5)))
	assert.Equal(t, Int(5).Hash(), Real(5).Hash())
	assert.True(t, Frac(2, 4).Equal(Frac(1, 2)))
	assert.False(t, Real(0.1).Equal(Frac(1, 10)))
	assert.False(t, Int(1).Equal(Text("1")))
}

func TestStructuralEquality(t *testing.T) {
	t.Parallel()

	a := NewList(Int(1), NewList(Text("x")), NewMap(Entry{Int(1), Bool(true)}))
	b := NewList(Int(1), NewList(Text("x")), NewMap(Entry{Int(1), Bool(true)}))
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	c := NewList(Int(1), NewList(Text("y")))
	assert.False(t, a.Equal(c))
}

func TestMapIgnoresInsertionOrder(t *testing.T) {
	t.Parallel()

	m1 := NewMap(Entry{Int(1), Int(3)}, Entry{Int(2), Int(3)})
	m2 := NewMap(Entry{Int(2), Int(3)}, Entry{Int(1), Int(3)})
	assert.True(t, m1.Equal(m2))
	assert.Equal(t, m1.Hash(), m2.Hash())

	v, ok := m1.Get(Int(2))
	require.True(t, ok)
	assert.True(t, Int(3).Equal(v))

	_, ok = m1.Get(Int(9))
	assert.False(t, ok)
}

func TestMapDuplicateKeysAndWithout(t *testing.T) {
	t.Parallel()

	m := NewMap(Entry{Text("a"), Int(1)}, Entry{Text("b"), Int(2)}, Entry{Text("a"), Int(9)})
	require.Equal(t, 2, m.Len())
	v, _ := m.Get(Text("a"))
	assert.True(t, Int(9).Equal(v))

	rest := m.Without(0)
	assert.Equal(t, 1, rest.Len())
	assert.Equal(t, 2, m.Len(), "Without must not modify the receiver")
	_, ok := rest.Get(Text("a"))
	assert.False(t, ok)

	merged := rest.Merge(NewMap(Entry{Text("b"), Int(5)}, Entry{Text("c"), Int(6)}))
	assert.Equal(t, `{"b": 5, "c": 6}`, merged.String())
}

func TestReplaceSpanDoesNotAlias(t *testing.T) {
	t.Parallel()

	orig := NewSequence(Int(1), Symbol("+"), Int(2), Symbol("*"), Int(3))
	next := orig.ReplaceSpan(2, 5, Int(6))

	assert.Equal(t, "1 + 2 * 3", orig.String())
	assert.Equal(t, "1 + 6", next.String())

	sub := orig.Slice(0, 2)
	grown := sub.ReplaceSpan(2, 2, Int(7))
	assert.Equal(t, "1 + 2 * 3", orig.String())
	assert.Equal(t, "1 + 7", grown.String())
}

func TestEnclosingStructure(t *testing.T) {
	t.Parallel()

	seq := NewSequence(Int(3), Symbol("+"), Int(5), Symbol("*"), Int(2))
	assert.Equal(t, []Token{Symbol("*")}, seq.EnclosingStructure(0, 3))
	assert.Equal(t, []Token{Symbol("+")}, seq.EnclosingStructure(2, 5))
	assert.Empty(t, seq.EnclosingStructure(0, 5))
}

func TestVarAccepts(t *testing.T) {
	t.Parallel()

	anyVar := Var{Name: "X"}
	assert.True(t, anyVar.Accepts(Int(1)))
	assert.True(t, anyVar.Accepts(NewList()))
	assert.False(t, anyVar.Accepts(Symbol("+")))

	numVar := Var{Name: "N", Category: KindNumber}
	assert.True(t, numVar.Accepts(Int(1)))
	assert.False(t, numVar.Accepts(Text("1")))
	assert.Equal(t, "N:number", numVar.String())

	assert.True(t, HasPlaceholder(NewList(Int(1), anyVar)))
	assert.False(t, HasPlaceholder(NewList(Int(1))))
}

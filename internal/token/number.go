package token

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrNotANumber     = errors.New("result is not a finite number")
)

// Exact integer powers are bounded both by exponent and by the estimated
// size of the result in bits; beyond either bound they fall back to
// floating point.
const (
	maxExactExponent = 1 << 12
	maxExactPowBits  = 1 << 16
)

// Number is an exact rational or, once an operation leaves the rationals,
// a real approximated by float64.
type Number struct {
	rat  *big.Rat // nil for reals
	real float64
}

// Int returns the exact integer v.
func Int(v int64) Number {
	return Number{rat: new(big.Rat).SetInt64(v)}
}

// Frac returns the exact rational a/b. It panics if b is zero.
func Frac(a, b int64) Number {
	return Number{rat: big.NewRat(a, b)}
}

// Real returns the real approximation f.
func Real(f float64) Number {
	return Number{real: f}
}

// ParseNumber parses a decimal literal such as "42", "0.5" or "1e3".
// Decimal fractions are kept exact.
func ParseNumber(s string) (Number, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Number{}, fmt.Errorf("invalid number literal %q", s)
	}
	return Number{rat: r}, nil
}

func (n Number) Kind() Kind { return KindNumber }

// IsExact reports whether n holds an exact rational.
func (n Number) IsExact() bool { return n.rat != nil }

// IsInt reports whether n is an integer value.
func (n Number) IsInt() bool {
	if n.rat != nil {
		return n.rat.IsInt()
	}
	return !math.IsInf(n.real, 0) && n.real == math.Trunc(n.real)
}

// Float returns the closest float64 to n.
func (n Number) Float() float64 {
	if n.rat != nil {
		f, _ := n.rat.Float64()
		return f
	}
	return n.real
}

// Int64 returns n truncated to an int64 and whether that was lossless.
func (n Number) Int64() (int64, bool) {
	if n.rat != nil {
		if !n.rat.IsInt() || !n.rat.Num().IsInt64() {
			return 0, false
		}
		return n.rat.Num().Int64(), true
	}
	if !n.IsInt() || math.Abs(n.real) > math.MaxInt64 {
		return 0, false
	}
	return int64(n.real), true
}

// toRat converts n to an exact rational; reals are converted exactly.
// It returns nil for NaN and infinities.
func (n Number) toRat() *big.Rat {
	if n.rat != nil {
		return n.rat
	}
	if math.IsNaN(n.real) || math.IsInf(n.real, 0) {
		return nil
	}
	return new(big.Rat).SetFloat64(n.real)
}

func (n Number) String() string {
	if n.rat != nil {
		return n.rat.RatString()
	}
	return strconv.FormatFloat(n.real, 'g', -1, 64)
}

func (n Number) Hash() uint64 {
	if r := n.toRat(); r != nil {
		return hashString(KindNumber, r.RatString())
	}
	return hashString(KindNumber, n.String())
}

func (n Number) Equal(other Token) bool {
	o, ok := other.(Number)
	if !ok {
		return false
	}
	a, b := n.toRat(), o.toRat()
	if a == nil || b == nil {
		return n.real == o.real
	}
	return a.Cmp(b) == 0
}

// Cmp compares n and m by value.
func (n Number) Cmp(m Number) int {
	a, b := n.toRat(), m.toRat()
	if a == nil || b == nil {
		x, y := n.Float(), m.Float()
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	return a.Cmp(b)
}

func (n Number) Add(m Number) Number {
	if n.rat != nil && m.rat != nil {
		return Number{rat: new(big.Rat).Add(n.rat, m.rat)}
	}
	return Real(n.Float() + m.Float())
}

func (n Number) Sub(m Number) Number {
	if n.rat != nil && m.rat != nil {
		return Number{rat: new(big.Rat).Sub(n.rat, m.rat)}
	}
	return Real(n.Float() - m.Float())
}

func (n Number) Mul(m Number) Number {
	if n.rat != nil && m.rat != nil {
		return Number{rat: new(big.Rat).Mul(n.rat, m.rat)}
	}
	return Real(n.Float() * m.Float())
}

func (n Number) Neg() Number {
	if n.rat != nil {
		return Number{rat: new(big.Rat).Neg(n.rat)}
	}
	return Real(-n.real)
}

// Quo returns n/m. Division by zero is an error.
func (n Number) Quo(m Number) (Number, error) {
	if m.Float() == 0 && (m.rat == nil || m.rat.Sign() == 0) {
		return Number{}, ErrDivisionByZero
	}
	if n.rat != nil && m.rat != nil {
		return Number{rat: new(big.Rat).Quo(n.rat, m.rat)}, nil
	}
	return finite(n.Float() / m.Float())
}

// Pow returns n raised to m. Integer exponents keep exact operands exact;
// fractional exponents produce reals.
func (n Number) Pow(m Number) (Number, error) {
	if e, ok := m.Int64(); ok && n.rat != nil && m.rat != nil && abs(e) <= maxExactExponent && n.powBits(e) <= maxExactPowBits {
		return n.exactPow(e)
	}
	return finite(math.Pow(n.Float(), m.Float()))
}

// powBits estimates the bits needed for the numerator and denominator of
// n raised to e.
func (n Number) powBits(e int64) int64 {
	bits := int64(n.rat.Num().BitLen()) + int64(n.rat.Denom().BitLen())
	return bits * abs(e)
}

func (n Number) exactPow(e int64) (Number, error) {
	if e < 0 && n.rat.Sign() == 0 {
		return Number{}, ErrDivisionByZero
	}
	exp := big.NewInt(abs(e))
	num := new(big.Int).Exp(n.rat.Num(), exp, nil)
	den := new(big.Int).Exp(n.rat.Denom(), exp, nil)
	if e < 0 {
		num, den = den, num
	}
	return Number{rat: new(big.Rat).SetFrac(num, den)}, nil
}

func finite(f float64) (Number, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}, ErrNotANumber
	}
	return Real(f), nil
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

package rule

import "github.com/gnolang/tcalc/internal/token"

// Option is a container for a value that may be absent or carry an error.
type Option[T any] struct {
	value T
	ok    bool
	err   error
}

func createOption[T any](value T, ok bool, err error) Option[T] {
	return Option[T]{value: value, ok: ok, err: err}
}

// Get returns the value and whether one is present.
func (o Option[T]) Get() (T, bool) { return o.value, o.ok }

// OK reports whether the option holds a value.
func (o Option[T]) OK() bool { return o.ok }

// Err returns the error carried by the option, if any.
func (o Option[T]) Err() error { return o.err }

// Map applies f to a present value.
func (o Option[T]) Map(f func(T) T) Option[T] {
	if !o.ok || o.err != nil {
		return o
	}
	return createOption(f(o.value), true, nil)
}

// Bind chains another option-producing step onto a present value.
func (o Option[T]) Bind(f func(T) Option[T]) Option[T] {
	if !o.ok || o.err != nil {
		return o
	}
	return f(o.value)
}

// Outcome is the result of Rule.Apply: a rewritten sequence, an ordinary
// failure (the rule does not apply here), or an abort that must stop the
// whole reduction, such as an exhausted step budget.
type Outcome = Option[token.Sequence]

// Success wraps the rewritten sequence.
func Success(seq token.Sequence) Outcome {
	return createOption(seq, true, nil)
}

// Fail reports that the rule does not apply. Structural mismatches and
// rejected operands are both failures.
func Fail() Outcome {
	return Outcome{}
}

// Abort reports an error that must propagate to the caller.
func Abort(err error) Outcome {
	return createOption(token.Sequence{}, false, err)
}

/*
Package maybe provides an optional-value type, used by the collection
packages for lookups that may come up empty, e.g. seq.Seq.First.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package maybe

import "fmt"

// Maybe holds either a value of type T or nothing. The zero value is Nothing.
type Maybe[T any] struct {
	value T
	ok    bool
}

// Just wraps a present value.
func Just[T any](v T) Maybe[T] {
	return Maybe[T]{value: v, ok: true}
}

// Nothing is the absent value.
func Nothing[T any]() Maybe[T] {
	return Maybe[T]{}
}

// IsJust reports whether a value is present.
func (m Maybe[T]) IsJust() bool {
	return m.ok
}

// Value returns the wrapped value in comma-ok form.
func (m Maybe[T]) Value() (T, bool) {
	return m.value, m.ok
}

// WithDefault returns the wrapped value, or def when nothing is present.
func (m Maybe[T]) WithDefault(def T) T {
	if m.ok {
		return m.value
	}
	return def
}

func (m Maybe[T]) String() string {
	if m.ok {
		return fmt.Sprintf("Just(%v)", m.value)
	}
	return "Nothing"
}

// Map applies f to a present value, passing Nothing through unchanged.
func Map[T, S any](f func(T) S, m Maybe[T]) Maybe[S] {
	if v, ok := m.Value(); ok {
		return Just(f(v))
	}
	return Nothing[S]()
}

// AndThen chains a computation that may itself come up empty.
func AndThen[T, S any](f func(T) Maybe[S], m Maybe[T]) Maybe[S] {
	if v, ok := m.Value(); ok {
		return f(v)
	}
	return Nothing[S]()
}

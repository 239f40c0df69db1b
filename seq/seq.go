package seq

import (
	"fmt"
	"iter"
	"strings"

	"github.com/badeend/valuecollections/hashcode"
	"github.com/badeend/valuecollections/maybe"
)

// Seq is an immutable sequence of elements. The zero value is an empty
// sequence, ready to use:
//
//	var s seq.Seq[int]
//	s = seq.Of(1, 2, 3)
//
// A Seq never changes after construction and is safe for unrestricted
// concurrent reads. "Modifying" methods like With return a new Seq.
type Seq[T comparable] struct {
	st *store[T]
}

// Immutable constructs an empty sequence with options, if you need any.
// Use it like this:
//
//	s := seq.Immutable[string](seq.Hasher(myHasher))
func Immutable[T comparable](opts ...Option[T]) Seq[T] {
	c := resolve(opts)
	return Seq[T]{st: newStore(c.hasher, c.capacity)}
}

// Of constructs a sequence holding the given values in order.
func Of[T comparable](values ...T) Seq[T] {
	st := newStore[T](hashcode.Default[T](), len(values))
	st.elems = append(st.elems, values...)
	return Seq[T]{st: st}
}

// Option is a type to help initializing sequences and builders at creation time.
type Option[T comparable] func(config[T]) config[T]

type config[T comparable] struct {
	hasher   hashcode.Hasher[T]
	capacity int
}

// Hasher is an option to supply the hash/equality implementation for the
// element type. The default hashes with hash/maphash and compares with ==.
func Hasher[T comparable](h hashcode.Hasher[T]) Option[T] {
	return func(c config[T]) config[T] { c.hasher = h; return c }
}

// Capacity is an option to pre-allocate backing storage for n elements.
func Capacity[T comparable](n int) Option[T] {
	return func(c config[T]) config[T] { c.capacity = n; return c }
}

func resolve[T comparable](opts []Option[T]) config[T] {
	c := config[T]{hasher: hashcode.Default[T]()}
	for _, option := range opts {
		c = option(c)
	}
	return c
}

// --- API -------------------------------------------------------------------

// Len returns the number of elements.
func (v Seq[T]) Len() int {
	return v.st.len()
}

// At returns the element at index i, panicking if i is out of range.
func (v Seq[T]) At(i int) T {
	assertThat(i >= 0 && i < v.st.len(), "index out of bounds: %d with length %d", i, v.st.len())
	return v.st.elems[i]
}

// Get returns the element at index i, with found=false if i is out of range.
func (v Seq[T]) Get(i int) (T, bool) {
	if i < 0 || i >= v.st.len() {
		var none T
		return none, false
	}
	return v.st.elems[i], true
}

// First returns the first element, or Nothing for an empty sequence.
func (v Seq[T]) First() maybe.Maybe[T] {
	if v.st.len() == 0 {
		return maybe.Nothing[T]()
	}
	return maybe.Just(v.st.elems[0])
}

// Last returns the last element, or Nothing for an empty sequence.
func (v Seq[T]) Last() maybe.Maybe[T] {
	if v.st.len() == 0 {
		return maybe.Nothing[T]()
	}
	return maybe.Just(v.st.elems[v.st.len()-1])
}

// Contains reports whether the sequence holds an element equal to value.
func (v Seq[T]) Contains(value T) bool {
	h := v.hasher()
	for i := 0; i < v.st.len(); i++ {
		if h.Equal(v.st.elems[i], value) {
			return true
		}
	}
	return false
}

// All returns an iterator over the elements in index order. The underlying
// snapshot cannot change, so the iterator is restartable at will.
func (v Seq[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.st.len(); i++ {
			if !yield(v.st.elems[i]) {
				return
			}
		}
	}
}

// Slice returns the elements as a fresh slice, safe for the caller to own.
func (v Seq[T]) Slice() []T {
	if v.st.len() == 0 {
		return nil
	}
	out := make([]T, v.st.len())
	copy(out, v.st.elems)
	return out
}

// Equal reports element-wise equality in order, with equal lengths. Backing
// capacity and construction history never participate.
func (v Seq[T]) Equal(other Seq[T]) bool {
	if v.st.len() != other.st.len() {
		return false
	}
	h := v.hasher()
	for i := 0; i < v.st.len(); i++ {
		if !h.Equal(v.st.elems[i], other.st.elems[i]) {
			return false
		}
	}
	return true
}

// Hash returns the order-sensitive structural hash code of the sequence.
// Equal sequences hash equally. The hash is computed once per snapshot and
// memoized.
func (v Seq[T]) Hash() uint64 {
	if v.st == nil {
		return hashcode.EmptyOrdered()
	}
	return v.st.memoHash(func() uint64 {
		h := v.hasher()
		acc := hashcode.EmptyOrdered()
		for _, e := range v.st.elems {
			acc = hashcode.CombineOrdered(acc, h.Hash(e))
		}
		return acc
	})
}

// Builder returns a new builder seeded with the sequence's contents. The
// backing storage is shared until the builder's first mutation (copy-on-write).
func (v Seq[T]) Builder() *Builder[T] {
	st := v.st
	if st == nil {
		st = newStore(hashcode.Default[T](), 0)
		return &Builder[T]{st: st}
	}
	return &Builder[T]{st: st, shared: true}
}

// With returns a copy of the sequence with the element at index i replaced.
func (v Seq[T]) With(i int, value T) Seq[T] {
	assertThat(i >= 0 && i < v.st.len(), "index out of bounds: %d with length %d", i, v.st.len())
	b := v.Builder()
	b.Set(i, value)
	return b.Freeze()
}

// Appended returns a copy of the sequence with value appended.
func (v Seq[T]) Appended(value T) Seq[T] {
	b := v.Builder()
	b.Add(value)
	return b.Freeze()
}

func (v Seq[T]) String() string {
	b := strings.Builder{}
	b.WriteByte('[')
	for i := 0; i < v.st.len(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%v", v.st.elems[i])
	}
	b.WriteByte(']')
	return b.String()
}

func (v Seq[T]) hasher() hashcode.Hasher[T] {
	if v.st == nil || v.st.hasher == nil {
		return hashcode.Default[T]()
	}
	return v.st.hasher
}

// seqStore implements Source.
func (v Seq[T]) seqStore() *store[T] {
	return v.st
}

package hashset

import (
	"fmt"
	"iter"
	"strings"

	"github.com/badeend/valuecollections/hashcode"
	"github.com/badeend/valuecollections/internal/table"
)

// unit is the value type of the backing table; sets only care about keys.
type unit = struct{}

// anyUnit makes every duplicate insert a content no-op (see table.New).
func anyUnit(unit, unit) bool { return true }

// Set is an immutable hash set. The zero value is an empty set, ready to use.
// A Set never changes after construction and is safe for unrestricted
// concurrent reads. "Modifying" methods like With return a new Set.
type Set[T comparable] struct {
	t *table.Table[T, unit]
}

// Immutable constructs an empty set with options, if you need any.
// Use it like this:
//
//	s := hashset.Immutable[string](hashset.Hasher(myHasher))
func Immutable[T comparable](opts ...Option[T]) Set[T] {
	c := resolve(opts)
	return Set[T]{t: table.New[T, unit](c.hasher, anyUnit, c.capacity)}
}

// Of constructs a set holding the given values. Duplicates collapse.
func Of[T comparable](values ...T) Set[T] {
	t := table.New[T, unit](hashcode.Default[T](), anyUnit, len(values))
	for _, v := range values {
		t.Put(v, unit{})
	}
	return Set[T]{t: t}
}

// Option is a type to help initializing sets and builders at creation time.
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
func (v Set[T]) Len() int {
	if v.t == nil {
		return 0
	}
	return v.t.Len()
}

// Contains reports whether value is an element of the set.
func (v Set[T]) Contains(value T) bool {
	if v.t == nil {
		return false
	}
	return v.t.Contains(value)
}

// All returns an iterator over the elements, in unspecified order. The
// underlying snapshot cannot change, so the iterator is restartable at will.
func (v Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if v.t == nil {
			return
		}
		for i := v.t.Scan(0); i >= 0; i = v.t.Scan(i + 1) {
			e, _ := v.t.At(i)
			if !yield(e) {
				return
			}
		}
	}
}

// Slice returns the elements as a fresh slice, in unspecified order.
func (v Set[T]) Slice() []T {
	if v.Len() == 0 {
		return nil
	}
	out := make([]T, 0, v.Len())
	for e := range v.All() {
		out = append(out, e)
	}
	return out
}

// Equal reports whether both sets hold the same elements. Cardinality plus
// one-sided containment suffices, since sets never hold duplicates. Backing
// capacity, insertion order and tombstone history never participate.
func (v Set[T]) Equal(other Set[T]) bool {
	if v.Len() != other.Len() {
		return false
	}
	for e := range v.All() {
		if !other.Contains(e) {
			return false
		}
	}
	return true
}

// Hash returns the order-insensitive structural hash code of the set. Equal
// sets hash equally, no matter how they were built. The hash is computed
// once per snapshot and memoized.
func (v Set[T]) Hash() uint64 {
	if v.t == nil {
		return 0
	}
	return v.t.MemoHash(func() uint64 {
		h := v.t.Hasher()
		var acc uint64
		for e := range v.All() {
			acc = hashcode.CombineUnordered(acc, h.Hash(e))
		}
		return acc
	})
}

// Builder returns a new builder seeded with the set's contents. The backing
// storage is shared until the builder's first mutation (copy-on-write).
func (v Set[T]) Builder() *Builder[T] {
	if v.t == nil {
		return NewBuilder[T]()
	}
	return &Builder[T]{t: v.t, shared: true}
}

// With returns a copy of the set with value added.
func (v Set[T]) With(value T) Set[T] {
	if v.Contains(value) {
		return v
	}
	b := v.Builder()
	b.Add(value)
	return b.Freeze()
}

// Without returns a copy of the set with value removed.
func (v Set[T]) Without(value T) Set[T] {
	if !v.Contains(value) {
		return v
	}
	b := v.Builder()
	b.Remove(value)
	return b.Freeze()
}

func (v Set[T]) String() string {
	b := strings.Builder{}
	b.WriteByte('{')
	first := true
	for e := range v.All() {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&b, "%v", e)
	}
	b.WriteByte('}')
	return b.String()
}

// setTable implements Source.
func (v Set[T]) setTable() *table.Table[T, unit] {
	return v.t
}

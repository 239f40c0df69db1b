package hashmap

import (
	"fmt"
	"iter"
	"strings"

	"github.com/badeend/valuecollections/hashcode"
	"github.com/badeend/valuecollections/internal/table"
)

// Entry is a single key/value pair, used by the bulk constructor.
type Entry[K, V comparable] struct {
	Key   K
	Value V
}

// Map is an immutable hash map. The zero value is an empty map, ready to
// use. A Map never changes after construction and is safe for unrestricted
// concurrent reads. "Modifying" methods like With return a new Map.
type Map[K, V comparable] struct {
	t  *table.Table[K, V]
	vh hashcode.Hasher[V]
}

// Immutable constructs an empty map with options, if you need any.
// Use it like this:
//
//	m := hashmap.Immutable[string, int](hashmap.Hasher[string, int](myHasher))
func Immutable[K, V comparable](opts ...Option[K, V]) Map[K, V] {
	c := resolve(opts)
	return Map[K, V]{t: table.New[K, V](c.kh, c.vh.Equal, c.capacity), vh: c.vh}
}

// Of constructs a map from the given entries. Later entries win on duplicate
// keys.
func Of[K, V comparable](entries ...Entry[K, V]) Map[K, V] {
	c := resolve[K, V](nil)
	t := table.New[K, V](c.kh, c.vh.Equal, len(entries))
	for _, e := range entries {
		t.Put(e.Key, e.Value)
	}
	return Map[K, V]{t: t, vh: c.vh}
}

// FromMap constructs a Map holding a snapshot of the entries of m.
func FromMap[K, V comparable](m map[K]V) Map[K, V] {
	c := resolve[K, V](nil)
	t := table.New[K, V](c.kh, c.vh.Equal, len(m))
	for k, v := range m {
		t.Put(k, v)
	}
	return Map[K, V]{t: t, vh: c.vh}
}

// Option is a type to help initializing maps and builders at creation time.
type Option[K, V comparable] func(config[K, V]) config[K, V]

type config[K, V comparable] struct {
	kh       hashcode.Hasher[K]
	vh       hashcode.Hasher[V]
	capacity int
}

// Hasher is an option to supply the hash/equality implementation for the key
// type. The default hashes with hash/maphash and compares with ==.
func Hasher[K, V comparable](h hashcode.Hasher[K]) Option[K, V] {
	return func(c config[K, V]) config[K, V] { c.kh = h; return c }
}

// ValueHasher is an option to supply the hash/equality implementation for
// the value type, which participates in map equality and hashing.
func ValueHasher[K, V comparable](h hashcode.Hasher[V]) Option[K, V] {
	return func(c config[K, V]) config[K, V] { c.vh = h; return c }
}

// Capacity is an option to pre-allocate backing storage for n entries.
func Capacity[K, V comparable](n int) Option[K, V] {
	return func(c config[K, V]) config[K, V] { c.capacity = n; return c }
}

func resolve[K, V comparable](opts []Option[K, V]) config[K, V] {
	c := config[K, V]{kh: hashcode.Default[K](), vh: hashcode.Default[V]()}
	for _, option := range opts {
		c = option(c)
	}
	return c
}

// --- API -------------------------------------------------------------------

// Len returns the number of entries.
func (v Map[K, V]) Len() int {
	if v.t == nil {
		return 0
	}
	return v.t.Len()
}

// Get returns the value mapped to key, with found=false if key is absent.
func (v Map[K, V]) Get(key K) (V, bool) {
	if v.t == nil {
		var none V
		return none, false
	}
	return v.t.Lookup(key)
}

// At returns the value mapped to key, panicking if key is absent.
func (v Map[K, V]) At(key K) V {
	value, ok := v.Get(key)
	if !ok {
		panic(fmt.Sprintf("hashmap: key not found: %v", key))
	}
	return value
}

// Contains reports whether key is present.
func (v Map[K, V]) Contains(key K) bool {
	if v.t == nil {
		return false
	}
	return v.t.Contains(key)
}

// All returns an iterator over the entries, in unspecified order. The
// underlying snapshot cannot change, so the iterator is restartable at will.
func (v Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if v.t == nil {
			return
		}
		for i := v.t.Scan(0); i >= 0; i = v.t.Scan(i + 1) {
			k, val := v.t.At(i)
			if !yield(k, val) {
				return
			}
		}
	}
}

// Keys returns an iterator over the keys, in unspecified order.
func (v Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range v.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns an iterator over the values, in unspecified order.
func (v Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, val := range v.All() {
			if !yield(val) {
				return
			}
		}
	}
}

// ToMap returns the entries as a fresh Go map, safe for the caller to own.
func (v Map[K, V]) ToMap() map[K]V {
	out := make(map[K]V, v.Len())
	for k, val := range v.All() {
		out[k] = val
	}
	return out
}

// Equal reports whether both maps hold the same keys mapped to equal values.
// Backing capacity, insertion order and tombstone history never participate.
func (v Map[K, V]) Equal(other Map[K, V]) bool {
	if v.Len() != other.Len() {
		return false
	}
	vh := v.valueHasher()
	for k, val := range v.All() {
		o, ok := other.Get(k)
		if !ok || !vh.Equal(val, o) {
			return false
		}
	}
	return true
}

// Hash returns the order-insensitive structural hash code of the map. Equal
// maps hash equally, no matter how they were built. The hash is computed
// once per snapshot and memoized.
func (v Map[K, V]) Hash() uint64 {
	if v.t == nil {
		return 0
	}
	return v.t.MemoHash(func() uint64 {
		kh := v.t.Hasher()
		vh := v.valueHasher()
		var acc uint64
		for k, val := range v.All() {
			acc = hashcode.CombineUnordered(acc, hashcode.Pair(kh.Hash(k), vh.Hash(val)))
		}
		return acc
	})
}

// Builder returns a new builder seeded with the map's contents. The backing
// storage is shared until the builder's first mutation (copy-on-write).
func (v Map[K, V]) Builder() *Builder[K, V] {
	if v.t == nil {
		return NewBuilder[K, V]()
	}
	return &Builder[K, V]{t: v.t, vh: v.valueHasher(), shared: true}
}

// With returns a copy of the map with key set to value.
func (v Map[K, V]) With(key K, value V) Map[K, V] {
	if existing, ok := v.Get(key); ok && v.valueHasher().Equal(existing, value) {
		return v
	}
	b := v.Builder()
	b.Set(key, value)
	return b.Freeze()
}

// Without returns a copy of the map with key removed.
func (v Map[K, V]) Without(key K) Map[K, V] {
	if !v.Contains(key) {
		return v
	}
	b := v.Builder()
	b.Remove(key)
	return b.Freeze()
}

func (v Map[K, V]) String() string {
	b := strings.Builder{}
	b.WriteByte('{')
	first := true
	for k, val := range v.All() {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&b, "%v:%v", k, val)
	}
	b.WriteByte('}')
	return b.String()
}

func (v Map[K, V]) valueHasher() hashcode.Hasher[V] {
	if v.vh == nil {
		return hashcode.Default[V]()
	}
	return v.vh
}

// mapTable implements Source.
func (v Map[K, V]) mapTable() *table.Table[K, V] {
	return v.t
}

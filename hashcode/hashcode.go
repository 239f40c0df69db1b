package hashcode

import (
	"hash/maphash"
	"math/bits"
)

// seed is shared by every default Hasher in the process, so that equal
// elements hash equally across unrelated collections.
var seed = maphash.MakeSeed()

// Hasher hashes and compares elements of type T. Implementations must be
// consistent: Equal(a, b) implies Hash(a) == Hash(b).
type Hasher[T comparable] interface {
	Hash(v T) uint64
	Equal(a, b T) bool
}

// Default returns the Hasher used when a collection is constructed without
// an explicit one. It hashes with maphash.Comparable under a per-process
// random seed and compares with ==.
func Default[T comparable]() Hasher[T] {
	return comparableHasher[T]{}
}

type comparableHasher[T comparable] struct{}

func (comparableHasher[T]) Hash(v T) uint64 {
	return maphash.Comparable(seed, v)
}

func (comparableHasher[T]) Equal(a, b T) bool {
	return a == b
}

// --- Aggregate combination --------------------------------------------------

// emptyOrdered is the aggregate hash of an empty sequence; a non-zero start
// value keeps prefixes of zero-hash elements distinguishable by length.
const emptyOrdered uint64 = 0x9e3779b97f4a7c15

// CombineOrdered folds an element hash into an order-sensitive aggregate.
// Start from EmptyOrdered() and fold element hashes in sequence order.
func CombineOrdered(acc, h uint64) uint64 {
	acc = bits.RotateLeft64(acc, 5) ^ h
	return acc * 0x00000100000001b3 // FNV prime, spreads the combined bits
}

// EmptyOrdered returns the aggregate hash of an empty ordered collection.
func EmptyOrdered() uint64 {
	return emptyOrdered
}

// CombineUnordered folds an element hash into an order-insensitive aggregate.
// Addition is commutative and associative, so any fold order over the same
// multiset of hashes yields the same aggregate. Start from 0.
func CombineUnordered(acc, h uint64) uint64 {
	return acc + h
}

// Pair mixes a key hash and a value hash into a single entry hash, sensitive
// to which is which, for use with CombineUnordered over map entries.
func Pair(kh, vh uint64) uint64 {
	return bits.RotateLeft64(kh, 23) ^ vh
}

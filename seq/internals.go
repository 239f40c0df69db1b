package seq

import (
	"fmt"
	"sync"

	"github.com/badeend/valuecollections/hashcode"
)

// store is the contiguous backing buffer of a sequence. A frozen Seq and a
// Builder seeded from it share one store until the builder's first mutation;
// the shared flag on the builder side decides who has to copy.
type store[T comparable] struct {
	hasher  hashcode.Hasher[T]
	elems   []T
	version uint64

	hashOnce sync.Once // aggregate-hash memo, used on frozen stores only
	hashMemo uint64
}

func newStore[T comparable](hasher hashcode.Hasher[T], capacity int) *store[T] {
	st := &store[T]{hasher: hasher}
	if capacity > 0 {
		st.elems = make([]T, 0, capacity)
	}
	return st
}

// clone gives a builder its private copy of a shared store. The version
// carries over: the logical contents are unchanged, so enumerations that
// captured it stay valid.
func (st *store[T]) clone() *store[T] {
	c := &store[T]{hasher: st.hasher, version: st.version}
	if len(st.elems) > 0 {
		c.elems = make([]T, len(st.elems))
		copy(c.elems, st.elems)
	}
	return c
}

func (st *store[T]) len() int {
	if st == nil {
		return 0
	}
	return len(st.elems)
}

func (st *store[T]) memoHash(f func() uint64) uint64 {
	st.hashOnce.Do(func() { st.hashMemo = f() })
	return st.hashMemo
}

// Source is anything a bulk copy can read elements from: a frozen Seq, a
// *Builder, or a pass-through View. The unexported accessor lets bulk
// operations resolve the source's backing storage identity, which is how
// self-referential copies are caught.
type Source[T comparable] interface {
	Len() int
	seqStore() *store[T]
}

// --- Helpers -----------------------------------------------------------------

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		panic(fmt.Sprintf("seq: "+msg, msgargs...))
	}
}

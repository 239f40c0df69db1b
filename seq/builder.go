package seq

import (
	"iter"

	vc "github.com/badeend/valuecollections"
)

// Builder is a mutable staging object that produces immutable sequences.
// A builder is single-owner: it is not safe for simultaneous use from
// multiple goroutines without external synchronization. Mutation is
// O(1)-amortized for Add and O(n) for positional inserts and removals.
//
// While an enumeration over the builder is active (a Cursor, or a range loop
// over All or View().All), every structural mutation except Cursor.Remove
// panics with valuecollections.ConcurrentMutationError.
type Builder[T comparable] struct {
	st     *store[T]
	shared bool // storage is also referenced by a frozen Seq
	iters  int  // number of active enumerations
}

// NewBuilder constructs an empty builder.
func NewBuilder[T comparable](opts ...Option[T]) *Builder[T] {
	c := resolve(opts)
	return &Builder[T]{st: newStore(c.hasher, c.capacity)}
}

// Len returns the number of elements currently staged.
func (b *Builder[T]) Len() int {
	return b.st.len()
}

// At returns the element at index i, panicking if i is out of range.
func (b *Builder[T]) At(i int) T {
	assertThat(i >= 0 && i < b.st.len(), "index out of bounds: %d with length %d", i, b.st.len())
	return b.st.elems[i]
}

// Get returns the element at index i, with found=false if i is out of range.
func (b *Builder[T]) Get(i int) (T, bool) {
	if i < 0 || i >= b.st.len() {
		var none T
		return none, false
	}
	return b.st.elems[i], true
}

// Contains reports whether the builder holds an element equal to value.
func (b *Builder[T]) Contains(value T) bool {
	for i := 0; i < b.st.len(); i++ {
		if b.st.hasher.Equal(b.st.elems[i], value) {
			return true
		}
	}
	return false
}

// Add appends value.
func (b *Builder[T]) Add(value T) {
	b.guard("Add")
	b.ensureOwned()
	b.st.elems = append(b.st.elems, value)
	b.st.version++
}

// Set replaces the element at index i. Replacing an element with an equal
// value is a no-op and does not count as a mutation.
func (b *Builder[T]) Set(i int, value T) {
	assertThat(i >= 0 && i < b.st.len(), "index out of bounds: %d with length %d", i, b.st.len())
	if b.st.hasher.Equal(b.st.elems[i], value) {
		return
	}
	b.guard("Set")
	b.ensureOwned()
	b.st.elems[i] = value
	b.st.version++
}

// InsertAt inserts value at index i, shifting the suffix right. i may equal
// Len(), which appends.
func (b *Builder[T]) InsertAt(i int, value T) {
	assertThat(i >= 0 && i <= b.st.len(), "insertion index out of bounds: %d with length %d", i, b.st.len())
	b.guard("InsertAt")
	b.ensureOwned()
	var none T
	b.st.elems = append(b.st.elems, none)
	copy(b.st.elems[i+1:], b.st.elems[i:])
	b.st.elems[i] = value
	b.st.version++
}

// RemoveAt removes and returns the element at index i, shifting the suffix left.
func (b *Builder[T]) RemoveAt(i int) T {
	assertThat(i >= 0 && i < b.st.len(), "index out of bounds: %d with length %d", i, b.st.len())
	b.guard("RemoveAt")
	b.ensureOwned()
	value := b.st.elems[i]
	b.st.elems = append(b.st.elems[:i], b.st.elems[i+1:]...)
	b.st.version++
	return value
}

// RemoveWhere removes every element the predicate matches and returns how
// many were removed. The predicate runs under the enumeration guard: a
// structural mutation from inside it panics with
// valuecollections.ConcurrentMutationError. Matching nothing is a no-op and
// does not count as a mutation.
func (b *Builder[T]) RemoveWhere(pred func(T) bool) int {
	out, removed := b.sift(pred)
	if removed == 0 {
		return 0
	}
	b.guard("RemoveWhere")
	if b.shared {
		b.st = &store[T]{hasher: b.st.hasher, elems: out, version: b.st.version + 1}
		b.shared = false
		return removed
	}
	b.st.elems = out
	b.st.version++
	return removed
}

// sift partitions the current elements into kept and removed, invoking the
// predicate exactly once per element. It counts as an active enumeration, and
// the kept elements land in a fresh slice (nil until the first match), so the
// builder's storage is never written while the predicate can observe it.
func (b *Builder[T]) sift(pred func(T) bool) (out []T, removed int) {
	b.iters++
	defer b.exitIteration()
	version := b.st.version
	for i, e := range b.st.elems {
		if b.st.version != version {
			panic(vc.ConcurrentMutationError{Container: "seq", Op: "RemoveWhere"})
		}
		if pred(e) {
			if out == nil {
				out = append(make([]T, 0, b.st.len()-1), b.st.elems[:i]...)
			}
			removed++
			continue
		}
		if out != nil {
			out = append(out, e)
		}
	}
	return out, removed
}

// Clear removes all elements. Clearing an empty builder is a no-op.
func (b *Builder[T]) Clear() {
	if b.st.len() == 0 {
		return
	}
	b.guard("Clear")
	if b.shared {
		// no point copying elements we are about to drop
		b.st = &store[T]{hasher: b.st.hasher, version: b.st.version + 1}
		b.shared = false
		return
	}
	b.st.elems = b.st.elems[:0]
	b.st.version++
}

// AddAll appends every element of src, in src's order.
func (b *Builder[T]) AddAll(src Source[T]) {
	b.InsertAllAt(b.st.len(), src)
}

// InsertAllAt inserts every element of src at index i, shifting the suffix
// right. The source's backing storage must not be the builder's own: bulk
// copying a sequence into itself (directly, or through a pass-through View)
// panics with valuecollections.SelfReferentialMutationError and leaves the
// builder unchanged.
func (b *Builder[T]) InsertAllAt(i int, src Source[T]) {
	assertThat(i >= 0 && i <= b.st.len(), "insertion index out of bounds: %d with length %d", i, b.st.len())
	b.guard("InsertAllAt")
	n := src.Len()
	if n == 0 {
		return
	}
	b.ensureOwned()
	if src.seqStore() == b.st {
		panic(vc.SelfReferentialMutationError{Container: "seq", Op: "InsertAllAt"})
	}
	tracer().Debugf("bulk insert of %d elements at %d", n, i)
	var none T
	for k := 0; k < n; k++ {
		b.st.elems = append(b.st.elems, none)
	}
	copy(b.st.elems[i+n:], b.st.elems[i:])
	copy(b.st.elems[i:i+n], src.seqStore().elems)
	b.st.version++
}

// All returns an iterator over the builder's current elements. The builder
// counts as enumerated for the duration of the range loop, so structural
// mutations inside the loop panic.
func (b *Builder[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		b.iters++
		defer b.exitIteration()
		version := b.st.version
		for i := 0; i < b.st.len(); i++ {
			if b.st.version != version {
				panic(vc.ConcurrentMutationError{Container: "seq", Op: "All"})
			}
			if !yield(b.st.elems[i]) {
				return
			}
		}
	}
}

// View returns a read-only pass-through view over the builder's live
// contents. Unlike Freeze, a View tracks subsequent builder mutations.
func (b *Builder[T]) View() View[T] {
	return View[T]{b: b}
}

// Cursor starts an enumeration that supports removing the element currently
// being visited. The caller must exhaust the cursor or Close it.
func (b *Builder[T]) Cursor() *Cursor[T] {
	b.iters++
	return &Cursor[T]{b: b, pos: -1, version: b.st.version, open: true}
}

// Freeze converts the builder's current contents into an immutable Seq.
// The storage is handed over without copying; the builder stays usable, and
// its next mutation triggers a private copy (copy-on-write).
func (b *Builder[T]) Freeze() Seq[T] {
	tracer().Debugf("freezing builder with %d elements", b.st.len())
	b.shared = true
	return Seq[T]{st: b.st}
}

// guard rejects structural mutation while an enumeration is active. It runs
// before any state is touched, so a panicking call leaves the builder as it
// was.
func (b *Builder[T]) guard(op string) {
	if b.iters > 0 {
		panic(vc.ConcurrentMutationError{Container: "seq", Op: op})
	}
}

// ensureOwned makes the builder the exclusive owner of its storage,
// copying it if a frozen Seq still references it.
func (b *Builder[T]) ensureOwned() {
	if !b.shared {
		return
	}
	tracer().Debugf("copy-on-write: cloning shared storage of %d elements", b.st.len())
	b.st = b.st.clone()
	b.shared = false
}

func (b *Builder[T]) exitIteration() {
	b.iters--
	assertThat(b.iters >= 0, "iteration depth went negative")
}

// seqStore implements Source. Bulk operations re-fetch it from the builder
// rather than caching the slice, so copy-on-write cannot leave them reading
// a stale buffer.
func (b *Builder[T]) seqStore() *store[T] {
	return b.st
}

// --- View --------------------------------------------------------------------

// View is a read-only wrapper over a builder's live contents. It is a
// pass-through: reads always reflect the builder's current state, and using
// a View as the source of a bulk copy back into its own builder is detected
// and rejected.
type View[T comparable] struct {
	b *Builder[T]
}

// Len returns the current number of elements in the underlying builder.
func (w View[T]) Len() int { return w.b.st.len() }

// At returns the element at index i, panicking if i is out of range.
func (w View[T]) At(i int) T { return w.b.At(i) }

// Get returns the element at index i, with found=false if i is out of range.
func (w View[T]) Get(i int) (T, bool) { return w.b.Get(i) }

// All returns an iterator over the underlying builder's current elements,
// with the same enumeration guard as Builder.All.
func (w View[T]) All() iter.Seq[T] { return w.b.All() }

func (w View[T]) seqStore() *store[T] { return w.b.st }

// --- Cursor ------------------------------------------------------------------

// Cursor enumerates a builder's elements in index order. It is the one place
// where mutation during enumeration is sanctioned: Remove deletes the element
// the cursor currently points at and keeps the traversal consistent, never
// skipping or revisiting an element.
//
// A cursor captures the storage version when it starts. If the builder's
// contents change underneath it through any other door (for example a second
// cursor's Remove), the next cursor operation detects the stale snapshot and
// panics with valuecollections.ConcurrentMutationError.
type Cursor[T comparable] struct {
	b       *Builder[T]
	pos     int
	version uint64
	open    bool
	removed bool
}

// Next advances to the next element, reporting false when the enumeration is
// exhausted. Exhaustion closes the cursor.
func (c *Cursor[T]) Next() bool {
	if !c.open {
		return false
	}
	c.check("Next")
	c.removed = false
	if c.pos+1 >= c.b.st.len() {
		c.close()
		return false
	}
	c.pos++
	return true
}

// Value returns the element the cursor currently points at.
func (c *Cursor[T]) Value() T {
	assertThat(c.open && c.pos >= 0, "cursor is not positioned on an element")
	assertThat(!c.removed, "current element has been removed")
	c.check("Value")
	return c.b.st.elems[c.pos]
}

// Index returns the index of the element the cursor currently points at.
func (c *Cursor[T]) Index() int {
	assertThat(c.open && c.pos >= 0, "cursor is not positioned on an element")
	return c.pos
}

// Remove deletes the element the cursor currently points at. This is the
// sanctioned mutation during enumeration: the cursor adjusts so that the
// following Next visits the element after the removed one, and the cursor's
// own version snapshot advances in lock-step with the storage. Any other
// open cursor over the same builder will detect the change and panic.
func (c *Cursor[T]) Remove() T {
	assertThat(c.open && c.pos >= 0, "cursor is not positioned on an element")
	assertThat(!c.removed, "element already removed at this position")
	c.check("Remove")
	b := c.b
	b.ensureOwned() // the builder may have been frozen mid-enumeration
	st := b.st
	value := st.elems[c.pos]
	st.elems = append(st.elems[:c.pos], st.elems[c.pos+1:]...)
	st.version++
	c.version = st.version
	c.pos--
	c.removed = true
	return value
}

// Close ends the enumeration. Closing an exhausted or already-closed cursor
// is a no-op; the builder's iteration depth never goes negative.
func (c *Cursor[T]) Close() {
	if c.open {
		c.close()
	}
}

func (c *Cursor[T]) check(op string) {
	if c.b.st.version != c.version {
		panic(vc.ConcurrentMutationError{Container: "seq", Op: op})
	}
}

func (c *Cursor[T]) close() {
	c.open = false
	c.b.exitIteration()
}

// every sequence flavor can feed a bulk copy
var (
	_ Source[int] = Seq[int]{}
	_ Source[int] = (*Builder[int])(nil)
	_ Source[int] = View[int]{}
)

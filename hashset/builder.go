package hashset

import (
	"iter"

	vc "github.com/badeend/valuecollections"
	"github.com/badeend/valuecollections/internal/table"
)

// Builder is a mutable staging object that produces immutable sets. A builder
// is single-owner: it is not safe for simultaneous use from multiple
// goroutines without external synchronization.
//
// While an enumeration over the builder is active, every structural mutation
// except Cursor.Remove panics with valuecollections.ConcurrentMutationError.
// Adding an element that is already present does not count as a mutation.
type Builder[T comparable] struct {
	t      *table.Table[T, unit]
	shared bool // storage is also referenced by a frozen Set
	iters  int  // number of active enumerations
}

// NewBuilder constructs an empty builder.
func NewBuilder[T comparable](opts ...Option[T]) *Builder[T] {
	c := resolve(opts)
	return &Builder[T]{t: table.New[T, unit](c.hasher, anyUnit, c.capacity)}
}

// Source is anything a bulk AddAll can read elements from: a frozen Set, a
// *Builder, or a pass-through View.
type Source[T comparable] interface {
	Len() int
	All() iter.Seq[T]
	setTable() *table.Table[T, unit]
}

// Len returns the number of elements currently staged.
func (b *Builder[T]) Len() int {
	return b.t.Len()
}

// Contains reports whether value is currently an element.
func (b *Builder[T]) Contains(value T) bool {
	return b.t.Contains(value)
}

// Add inserts value. Inserting an element that is already present is a
// no-op: it reports false, does not advance the storage version, and is
// allowed during enumeration.
func (b *Builder[T]) Add(value T) bool {
	if b.t.Contains(value) {
		return false
	}
	b.guard("Add")
	b.ensureOwned()
	return b.t.Put(value, unit{})
}

// Remove deletes value, reporting whether it was present.
func (b *Builder[T]) Remove(value T) bool {
	if !b.t.Contains(value) {
		return false
	}
	b.guard("Remove")
	b.ensureOwned()
	_, ok := b.t.Delete(value)
	return ok
}

// RemoveWhere removes every element the predicate matches and returns how
// many were removed. The predicate runs under the enumeration guard: a
// structural mutation from inside it panics with
// valuecollections.ConcurrentMutationError. Matching nothing is a no-op and
// does not count as a mutation.
func (b *Builder[T]) RemoveWhere(pred func(T) bool) int {
	doomed := b.doomed(pred)
	if len(doomed) == 0 {
		return 0
	}
	b.guard("RemoveWhere")
	b.ensureOwned()
	for _, e := range doomed {
		b.t.Delete(e)
	}
	return len(doomed)
}

// doomed collects the elements the predicate matches. The scan counts as an
// active enumeration and nothing is deleted until it completes.
func (b *Builder[T]) doomed(pred func(T) bool) []T {
	b.iters++
	defer b.exitIteration()
	var doomed []T
	version := b.t.Version()
	for i := b.t.Scan(0); i >= 0; i = b.t.Scan(i + 1) {
		if b.t.Version() != version {
			panic(vc.ConcurrentMutationError{Container: "hashset", Op: "RemoveWhere"})
		}
		e, _ := b.t.At(i)
		if pred(e) {
			doomed = append(doomed, e)
		}
	}
	return doomed
}

// Clear removes all elements. Clearing an empty builder is a no-op.
func (b *Builder[T]) Clear() {
	if b.t.Len() == 0 {
		return
	}
	b.guard("Clear")
	if b.shared {
		b.t = table.New[T, unit](b.t.Hasher(), anyUnit, 0)
		b.shared = false
		return
	}
	b.t.Clear()
}

// AddAll inserts every element of src. Elements already present are skipped.
// The source's backing storage must not be the builder's own: bulk copying a
// set into itself through a pass-through View panics with
// valuecollections.SelfReferentialMutationError and leaves the builder
// unchanged.
func (b *Builder[T]) AddAll(src Source[T]) int {
	b.guard("AddAll")
	if src.Len() == 0 {
		return 0
	}
	b.ensureOwned()
	if src.setTable() == b.t {
		panic(vc.SelfReferentialMutationError{Container: "hashset", Op: "AddAll"})
	}
	tracer().Debugf("bulk insert of up to %d elements", src.Len())
	added := 0
	st := src.setTable()
	for i := st.Scan(0); i >= 0; i = st.Scan(i + 1) {
		e, _ := st.At(i)
		if b.t.Put(e, unit{}) {
			added++
		}
	}
	return added
}

// All returns an iterator over the builder's current elements, in
// unspecified order. The builder counts as enumerated for the duration of
// the range loop, so structural mutations inside the loop panic.
func (b *Builder[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		b.iters++
		defer b.exitIteration()
		version := b.t.Version()
		for i := b.t.Scan(0); i >= 0; i = b.t.Scan(i + 1) {
			if b.t.Version() != version {
				panic(vc.ConcurrentMutationError{Container: "hashset", Op: "All"})
			}
			e, _ := b.t.At(i)
			if !yield(e) {
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
	return &Cursor[T]{b: b, slot: -1, version: b.t.Version(), open: true}
}

// Freeze converts the builder's current contents into an immutable Set.
// The storage is handed over without copying; the builder stays usable, and
// its next mutation triggers a private copy (copy-on-write).
func (b *Builder[T]) Freeze() Set[T] {
	tracer().Debugf("freezing builder with %d elements", b.t.Len())
	b.shared = true
	return Set[T]{t: b.t}
}

func (b *Builder[T]) guard(op string) {
	if b.iters > 0 {
		panic(vc.ConcurrentMutationError{Container: "hashset", Op: op})
	}
}

func (b *Builder[T]) ensureOwned() {
	if !b.shared {
		return
	}
	tracer().Debugf("copy-on-write: cloning shared table of %d elements", b.t.Len())
	b.t = b.t.Clone()
	b.shared = false
}

func (b *Builder[T]) exitIteration() {
	b.iters--
	if b.iters < 0 {
		panic("hashset: iteration depth went negative")
	}
}

// setTable implements Source; re-fetched from the builder on every use so
// copy-on-write cannot leave a bulk copy reading a stale table.
func (b *Builder[T]) setTable() *table.Table[T, unit] {
	return b.t
}

// --- View --------------------------------------------------------------------

// View is a read-only wrapper over a builder's live contents.
type View[T comparable] struct {
	b *Builder[T]
}

// Len returns the current number of elements in the underlying builder.
func (w View[T]) Len() int { return w.b.t.Len() }

// Contains reports whether value is currently an element of the builder.
func (w View[T]) Contains(value T) bool { return w.b.t.Contains(value) }

// All returns an iterator over the underlying builder's current elements,
// with the same enumeration guard as Builder.All.
func (w View[T]) All() iter.Seq[T] { return w.b.All() }

func (w View[T]) setTable() *table.Table[T, unit] { return w.b.t }

// --- Cursor ------------------------------------------------------------------

// Cursor enumerates a builder's elements in unspecified order. Remove deletes
// the element the cursor currently points at by tombstoning its slot; the
// traversal neither skips nor revisits elements, and removal never triggers
// a rehash. Any other open cursor over the same builder detects the change
// through its stale version snapshot and panics.
type Cursor[T comparable] struct {
	b       *Builder[T]
	slot    int
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
	next := c.b.t.Scan(c.slot + 1)
	if next < 0 {
		c.close()
		return false
	}
	c.slot = next
	return true
}

// Value returns the element the cursor currently points at.
func (c *Cursor[T]) Value() T {
	if !c.open || c.slot < 0 {
		panic("hashset: cursor is not positioned on an element")
	}
	if c.removed {
		panic("hashset: current element has been removed")
	}
	c.check("Value")
	e, _ := c.b.t.At(c.slot)
	return e
}

// Remove deletes the element the cursor currently points at. This is the
// sanctioned mutation during enumeration.
func (c *Cursor[T]) Remove() T {
	if !c.open || c.slot < 0 {
		panic("hashset: cursor is not positioned on an element")
	}
	if c.removed {
		panic("hashset: element already removed at this position")
	}
	c.check("Remove")
	b := c.b
	b.ensureOwned() // the builder may have been frozen mid-enumeration
	e, _ := b.t.At(c.slot)
	b.t.DeleteSlot(c.slot)
	c.version = b.t.Version()
	c.removed = true
	return e
}

// Close ends the enumeration. Closing an exhausted or already-closed cursor
// is a no-op; the builder's iteration depth never goes negative.
func (c *Cursor[T]) Close() {
	if c.open {
		c.close()
	}
}

func (c *Cursor[T]) check(op string) {
	if c.b.t.Version() != c.version {
		panic(vc.ConcurrentMutationError{Container: "hashset", Op: op})
	}
}

func (c *Cursor[T]) close() {
	c.open = false
	c.b.exitIteration()
}

// every set flavor can feed a bulk copy
var (
	_ Source[int] = Set[int]{}
	_ Source[int] = (*Builder[int])(nil)
	_ Source[int] = View[int]{}
)

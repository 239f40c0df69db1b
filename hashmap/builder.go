package hashmap

import (
	"iter"

	vc "github.com/badeend/valuecollections"
	"github.com/badeend/valuecollections/hashcode"
	"github.com/badeend/valuecollections/internal/table"
)

// Builder is a mutable staging object that produces immutable maps. A builder
// is single-owner: it is not safe for simultaneous use from multiple
// goroutines without external synchronization.
//
// While an enumeration over the builder is active, every structural mutation
// except Cursor.Remove panics with valuecollections.ConcurrentMutationError.
// Setting a key to the value it already maps to does not count as a mutation.
type Builder[K, V comparable] struct {
	t      *table.Table[K, V]
	vh     hashcode.Hasher[V]
	shared bool // storage is also referenced by a frozen Map
	iters  int  // number of active enumerations
}

// NewBuilder constructs an empty builder.
func NewBuilder[K, V comparable](opts ...Option[K, V]) *Builder[K, V] {
	c := resolve(opts)
	return &Builder[K, V]{t: table.New[K, V](c.kh, c.vh.Equal, c.capacity), vh: c.vh}
}

// Source is anything a bulk SetAll can read entries from: a frozen Map, a
// *Builder, or a pass-through View.
type Source[K, V comparable] interface {
	Len() int
	All() iter.Seq2[K, V]
	mapTable() *table.Table[K, V]
}

// Len returns the number of entries currently staged.
func (b *Builder[K, V]) Len() int {
	return b.t.Len()
}

// Get returns the value mapped to key, with found=false if key is absent.
func (b *Builder[K, V]) Get(key K) (V, bool) {
	return b.t.Lookup(key)
}

// Contains reports whether key is currently present.
func (b *Builder[K, V]) Contains(key K) bool {
	return b.t.Contains(key)
}

// Set maps key to value, reporting whether the contents changed. Setting a
// key to the value it already maps to is a no-op: it reports false, does not
// advance the storage version, and is allowed during enumeration.
func (b *Builder[K, V]) Set(key K, value V) bool {
	if existing, ok := b.t.Lookup(key); ok && b.vh.Equal(existing, value) {
		return false
	}
	b.guard("Set")
	b.ensureOwned()
	return b.t.Put(key, value)
}

// Remove deletes the entry for key, returning its value and whether it was
// present.
func (b *Builder[K, V]) Remove(key K) (V, bool) {
	if !b.t.Contains(key) {
		var none V
		return none, false
	}
	b.guard("Remove")
	b.ensureOwned()
	return b.t.Delete(key)
}

// RemoveWhere removes every entry the predicate matches and returns how many
// were removed. The predicate runs under the enumeration guard: a structural
// mutation from inside it panics with
// valuecollections.ConcurrentMutationError. Matching nothing is a no-op and
// does not count as a mutation.
func (b *Builder[K, V]) RemoveWhere(pred func(K, V) bool) int {
	doomed := b.doomed(pred)
	if len(doomed) == 0 {
		return 0
	}
	b.guard("RemoveWhere")
	b.ensureOwned()
	for _, k := range doomed {
		b.t.Delete(k)
	}
	return len(doomed)
}

// doomed collects the keys of the entries the predicate matches. The scan
// counts as an active enumeration and nothing is deleted until it completes.
func (b *Builder[K, V]) doomed(pred func(K, V) bool) []K {
	b.iters++
	defer b.exitIteration()
	var doomed []K
	version := b.t.Version()
	for i := b.t.Scan(0); i >= 0; i = b.t.Scan(i + 1) {
		if b.t.Version() != version {
			panic(vc.ConcurrentMutationError{Container: "hashmap", Op: "RemoveWhere"})
		}
		k, v := b.t.At(i)
		if pred(k, v) {
			doomed = append(doomed, k)
		}
	}
	return doomed
}

// Clear removes all entries. Clearing an empty builder is a no-op.
func (b *Builder[K, V]) Clear() {
	if b.t.Len() == 0 {
		return
	}
	b.guard("Clear")
	if b.shared {
		b.t = table.New[K, V](b.t.Hasher(), b.vh.Equal, 0)
		b.shared = false
		return
	}
	b.t.Clear()
}

// SetAll copies every entry of src into the builder, src winning on key
// collisions. The source's backing storage must not be the builder's own:
// bulk copying a map into itself through a pass-through View panics with
// valuecollections.SelfReferentialMutationError and leaves the builder
// unchanged.
func (b *Builder[K, V]) SetAll(src Source[K, V]) int {
	b.guard("SetAll")
	if src.Len() == 0 {
		return 0
	}
	b.ensureOwned()
	if src.mapTable() == b.t {
		panic(vc.SelfReferentialMutationError{Container: "hashmap", Op: "SetAll"})
	}
	tracer().Debugf("bulk insert of up to %d entries", src.Len())
	changed := 0
	st := src.mapTable()
	for i := st.Scan(0); i >= 0; i = st.Scan(i + 1) {
		k, v := st.At(i)
		if b.t.Put(k, v) {
			changed++
		}
	}
	return changed
}

// All returns an iterator over the builder's current entries, in unspecified
// order. The builder counts as enumerated for the duration of the range
// loop, so structural mutations inside the loop panic.
func (b *Builder[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		b.iters++
		defer b.exitIteration()
		version := b.t.Version()
		for i := b.t.Scan(0); i >= 0; i = b.t.Scan(i + 1) {
			if b.t.Version() != version {
				panic(vc.ConcurrentMutationError{Container: "hashmap", Op: "All"})
			}
			k, v := b.t.At(i)
			if !yield(k, v) {
				return
			}
		}
	}
}

// View returns a read-only pass-through view over the builder's live
// contents. Unlike Freeze, a View tracks subsequent builder mutations.
func (b *Builder[K, V]) View() View[K, V] {
	return View[K, V]{b: b}
}

// Cursor starts an enumeration that supports removing the entry currently
// being visited. The caller must exhaust the cursor or Close it.
func (b *Builder[K, V]) Cursor() *Cursor[K, V] {
	b.iters++
	return &Cursor[K, V]{b: b, slot: -1, version: b.t.Version(), open: true}
}

// Freeze converts the builder's current contents into an immutable Map.
// The storage is handed over without copying; the builder stays usable, and
// its next mutation triggers a private copy (copy-on-write).
func (b *Builder[K, V]) Freeze() Map[K, V] {
	tracer().Debugf("freezing builder with %d entries", b.t.Len())
	b.shared = true
	return Map[K, V]{t: b.t, vh: b.vh}
}

func (b *Builder[K, V]) guard(op string) {
	if b.iters > 0 {
		panic(vc.ConcurrentMutationError{Container: "hashmap", Op: op})
	}
}

func (b *Builder[K, V]) ensureOwned() {
	if !b.shared {
		return
	}
	tracer().Debugf("copy-on-write: cloning shared table of %d entries", b.t.Len())
	b.t = b.t.Clone()
	b.shared = false
}

func (b *Builder[K, V]) exitIteration() {
	b.iters--
	if b.iters < 0 {
		panic("hashmap: iteration depth went negative")
	}
}

// mapTable implements Source; re-fetched from the builder on every use so
// copy-on-write cannot leave a bulk copy reading a stale table.
func (b *Builder[K, V]) mapTable() *table.Table[K, V] {
	return b.t
}

// --- View --------------------------------------------------------------------

// View is a read-only wrapper over a builder's live contents.
type View[K, V comparable] struct {
	b *Builder[K, V]
}

// Len returns the current number of entries in the underlying builder.
func (w View[K, V]) Len() int { return w.b.t.Len() }

// Get returns the value mapped to key, with found=false if key is absent.
func (w View[K, V]) Get(key K) (V, bool) { return w.b.t.Lookup(key) }

// Contains reports whether key is currently present in the builder.
func (w View[K, V]) Contains(key K) bool { return w.b.t.Contains(key) }

// All returns an iterator over the underlying builder's current entries,
// with the same enumeration guard as Builder.All.
func (w View[K, V]) All() iter.Seq2[K, V] { return w.b.All() }

func (w View[K, V]) mapTable() *table.Table[K, V] { return w.b.t }

// --- Cursor ------------------------------------------------------------------

// Cursor enumerates a builder's entries in unspecified order. Remove deletes
// the entry the cursor currently points at by tombstoning its slot; the
// traversal neither skips nor revisits entries, and removal never triggers a
// rehash. Any other open cursor over the same builder detects the change
// through its stale version snapshot and panics.
type Cursor[K, V comparable] struct {
	b       *Builder[K, V]
	slot    int
	version uint64
	open    bool
	removed bool
}

// Next advances to the next entry, reporting false when the enumeration is
// exhausted. Exhaustion closes the cursor.
func (c *Cursor[K, V]) Next() bool {
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

// Key returns the key of the entry the cursor currently points at.
func (c *Cursor[K, V]) Key() K {
	k, _ := c.entry("Key")
	return k
}

// Value returns the value of the entry the cursor currently points at.
func (c *Cursor[K, V]) Value() V {
	_, v := c.entry("Value")
	return v
}

func (c *Cursor[K, V]) entry(op string) (K, V) {
	if !c.open || c.slot < 0 {
		panic("hashmap: cursor is not positioned on an entry")
	}
	if c.removed {
		panic("hashmap: current entry has been removed")
	}
	c.check(op)
	return c.b.t.At(c.slot)
}

// Remove deletes the entry the cursor currently points at. This is the
// sanctioned mutation during enumeration.
func (c *Cursor[K, V]) Remove() (K, V) {
	if !c.open || c.slot < 0 {
		panic("hashmap: cursor is not positioned on an entry")
	}
	if c.removed {
		panic("hashmap: entry already removed at this position")
	}
	c.check("Remove")
	b := c.b
	b.ensureOwned() // the builder may have been frozen mid-enumeration
	k, v := b.t.At(c.slot)
	b.t.DeleteSlot(c.slot)
	c.version = b.t.Version()
	c.removed = true
	return k, v
}

// Close ends the enumeration. Closing an exhausted or already-closed cursor
// is a no-op; the builder's iteration depth never goes negative.
func (c *Cursor[K, V]) Close() {
	if c.open {
		c.close()
	}
}

func (c *Cursor[K, V]) check(op string) {
	if c.b.t.Version() != c.version {
		panic(vc.ConcurrentMutationError{Container: "hashmap", Op: op})
	}
}

func (c *Cursor[K, V]) close() {
	c.open = false
	c.b.exitIteration()
}

// every map flavor can feed a bulk copy
var (
	_ Source[int, int] = Map[int, int]{}
	_ Source[int, int] = (*Builder[int, int])(nil)
	_ Source[int, int] = View[int, int]{}
)

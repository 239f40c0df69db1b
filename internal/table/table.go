package table

import (
	"fmt"
	"sync"

	"github.com/badeend/valuecollections/hashcode"
)

// State tags a slot as free, holding an entry, or vacated by a deletion.
type State uint8

const (
	Empty State = iota
	Occupied
	Tombstone
)

// minCapacity is the slot count of the first allocation. Power of two, so
// growth by doubling keeps the masking arithmetic trivial.
const minCapacity = 8

// Slot is a single bucket of a Table. The entry's hash is kept alongside the
// key so that growth can redistribute slots without rehashing keys.
type Slot[K comparable, V any] struct {
	hash  uint64
	state State
	key   K
	val   V
}

// Table is an open-addressing hash table with linear probing and tombstone
// deletion. It is the storage core shared by hashset and hashmap; all
// iteration-safety and copy-on-write discipline lives in the builders on top,
// the table only keeps the bookkeeping honest.
type Table[K comparable, V any] struct {
	hasher  hashcode.Hasher[K]
	valEq   func(a, b V) bool // nil means any value replaces; see Put
	slots   []Slot[K, V]
	count   int // occupied slots
	used    int // occupied + tombstone slots
	version uint64

	hashOnce sync.Once // aggregate-hash memo for frozen tables
	hashMemo uint64
}

// New creates an empty table. valEq decides whether Put with an existing key
// is a content change; passing nil makes every Put on an existing key a
// replacement. capacity is a hint and may be 0.
func New[K comparable, V any](hasher hashcode.Hasher[K], valEq func(a, b V) bool, capacity int) *Table[K, V] {
	t := &Table[K, V]{hasher: hasher, valEq: valEq}
	if capacity > 0 {
		t.slots = make([]Slot[K, V], ceilPow2(capacity*4/3+1))
	}
	return t
}

// Len returns the number of occupied slots.
func (t *Table[K, V]) Len() int { return t.count }

// SlotCount returns the capacity of the slot array.
func (t *Table[K, V]) SlotCount() int { return len(t.slots) }

// Version returns the structural version counter. It changes exactly when
// the table's logical contents or capacity change.
func (t *Table[K, V]) Version() uint64 { return t.version }

// Hasher returns the hasher the table was built with.
func (t *Table[K, V]) Hasher() hashcode.Hasher[K] { return t.hasher }

// Lookup finds the value stored under key.
func (t *Table[K, V]) Lookup(key K) (V, bool) {
	if i := t.find(key); i >= 0 {
		return t.slots[i].val, true
	}
	var none V
	return none, false
}

// Contains reports whether key is present.
func (t *Table[K, V]) Contains(key K) bool {
	return t.find(key) >= 0
}

// find returns the slot index of key, or -1.
func (t *Table[K, V]) find(key K) int {
	if t.count == 0 {
		return -1
	}
	mask := uint64(len(t.slots) - 1)
	h := t.hasher.Hash(key)
	for i := h & mask; ; i = (i + 1) & mask {
		s := &t.slots[i]
		switch s.state {
		case Empty:
			return -1
		case Occupied:
			if s.hash == h && t.hasher.Equal(s.key, key) {
				return int(i)
			}
		}
		// tombstones keep the probe running
	}
}

// Put stores value under key. The return value reports whether the table's
// contents changed: inserting a fresh key, or replacing the value of an
// existing key with one that valEq considers different. A Put that changes
// nothing does not advance the version counter.
func (t *Table[K, V]) Put(key K, value V) bool {
	if i := t.find(key); i >= 0 {
		if t.valEq != nil && t.valEq(t.slots[i].val, value) {
			return false // already present, benign re-insert
		}
		t.slots[i].val = value
		t.version++
		return true
	}
	if t.needsGrow() {
		t.grow()
	}
	h := t.hasher.Hash(key)
	i := t.probeInsert(h)
	reused := t.slots[i].state == Tombstone
	t.slots[i] = Slot[K, V]{hash: h, state: Occupied, key: key, val: value}
	t.count++
	if !reused {
		t.used++
	}
	t.version++
	return true
}

// probeInsert locates the slot a fresh entry with hash h goes into: the first
// tombstone on the probe path, or the terminating empty slot.
func (t *Table[K, V]) probeInsert(h uint64) int {
	mask := uint64(len(t.slots) - 1)
	grave := -1
	for i := h & mask; ; i = (i + 1) & mask {
		switch t.slots[i].state {
		case Empty:
			if grave >= 0 {
				return grave
			}
			return int(i)
		case Tombstone:
			if grave < 0 {
				grave = int(i)
			}
		}
	}
}

// Delete removes key, leaving a tombstone so probe sequences over the
// deletion point stay intact.
func (t *Table[K, V]) Delete(key K) (V, bool) {
	var none V
	i := t.find(key)
	if i < 0 {
		return none, false
	}
	val := t.slots[i].val
	t.DeleteSlot(i)
	return val, true
}

// DeleteSlot tombstones the occupied slot at index i. Used by cursors for the
// sanctioned remove-current operation; never grows or compacts.
func (t *Table[K, V]) DeleteSlot(i int) {
	assertThat(i >= 0 && i < len(t.slots), "slot index %d out of range", i)
	assertThat(t.slots[i].state == Occupied, "attempt to delete a non-occupied slot")
	var noneK K
	var noneV V
	t.slots[i] = Slot[K, V]{state: Tombstone, key: noneK, val: noneV}
	t.count--
	t.version++
}

// Clear removes all entries, keeping the capacity. A Clear of an empty table
// is a no-op and does not advance the version.
func (t *Table[K, V]) Clear() {
	if t.count == 0 && t.used == 0 {
		return
	}
	clear(t.slots)
	t.count = 0
	t.used = 0
	t.version++
}

// needsGrow reports whether one more entry would push the table past a 3/4
// load factor, counting tombstones as load.
func (t *Table[K, V]) needsGrow() bool {
	return len(t.slots) == 0 || (t.used+1)*4 > len(t.slots)*3
}

// grow replaces the slot array, redistributing occupied slots and dropping
// tombstones. The version advances even though the contents are unchanged:
// the backing buffer is new, so every outstanding slot index is invalid.
func (t *Table[K, V]) grow() {
	newCap := minCapacity
	if len(t.slots) > 0 {
		newCap = len(t.slots) * 2
	}
	tracer().Debugf("growing table %d -> %d slots (%d occupied, %d tombstones)",
		len(t.slots), newCap, t.count, t.used-t.count)
	old := t.slots
	t.slots = make([]Slot[K, V], newCap)
	t.used = t.count
	mask := uint64(newCap - 1)
	for _, s := range old {
		if s.state != Occupied {
			continue
		}
		i := s.hash & mask
		for t.slots[i].state == Occupied {
			i = (i + 1) & mask
		}
		t.slots[i] = s
	}
	t.version++
}

// Clone returns a table with identical contents, capacity and version, but
// its own slot array. The aggregate-hash memo is not carried over.
func (t *Table[K, V]) Clone() *Table[K, V] {
	c := &Table[K, V]{
		hasher:  t.hasher,
		valEq:   t.valEq,
		count:   t.count,
		used:    t.used,
		version: t.version,
	}
	if t.slots != nil {
		c.slots = make([]Slot[K, V], len(t.slots))
		copy(c.slots, t.slots)
	}
	return c
}

// Scan returns the index of the first occupied slot at or after i, or -1 when
// the rest of the table is free. Cursors drive their traversal with it.
func (t *Table[K, V]) Scan(i int) int {
	for ; i < len(t.slots); i++ {
		if t.slots[i].state == Occupied {
			return i
		}
	}
	return -1
}

// At returns the entry in the occupied slot at index i.
func (t *Table[K, V]) At(i int) (K, V) {
	assertThat(i >= 0 && i < len(t.slots), "slot index %d out of range", i)
	assertThat(t.slots[i].state == Occupied, "attempt to read a non-occupied slot")
	return t.slots[i].key, t.slots[i].val
}

// MemoHash returns the memoized aggregate hash, computing it once via f.
// Only call on tables that no builder will mutate again.
func (t *Table[K, V]) MemoHash(f func() uint64) uint64 {
	t.hashOnce.Do(func() { t.hashMemo = f() })
	return t.hashMemo
}

// --- Helpers -----------------------------------------------------------------

func ceilPow2(n int) int {
	c := minCapacity
	for c < n {
		c *= 2
	}
	return c
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		panic(fmt.Sprintf("table: "+msg, msgargs...))
	}
}

package hashmap

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"

	vc "github.com/badeend/valuecollections"
)

func entriesOf(pairs ...int) []Entry[int, int] {
	var out []Entry[int, int]
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Entry[int, int]{Key: pairs[i], Value: pairs[i+1]})
	}
	return out
}

func TestMapZeroValue(t *testing.T) {
	var m Map[string, int]
	if m.Len() != 0 {
		t.Errorf("expected zero Map to be empty, has %d entries", m.Len())
	}
	if _, ok := m.Get("x"); ok {
		t.Error("expected Get on zero Map to report not-found, didn't")
	}
}

func TestMapOfAndGet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "value.map")
	defer teardown()
	//
	m := Of(entriesOf(1, 10, 2, 20, 3, 30)...)
	if m.Len() != 3 {
		t.Fatalf("expected 3 entries, have %d", m.Len())
	}
	if v, ok := m.Get(2); !ok || v != 20 {
		t.Errorf("expected Get(2) to yield 20, is %d/%v", v, ok)
	}
	if _, ok := m.Get(9); ok {
		t.Error("expected Get(9) to report not-found, didn't")
	}
	if m.At(3) != 30 {
		t.Errorf("expected At(3) to be 30, is %d", m.At(3))
	}
}

func TestMapAtMissingKeyPanics(t *testing.T) {
	var r interface{}
	func() {
		defer func() { r = recover() }()
		Of(entriesOf(1, 10)...).At(2)
	}()
	if r == nil {
		t.Error("expected At on a missing key to panic, didn't")
	}
}

func TestMapOfLaterEntriesWin(t *testing.T) {
	m := Of(entriesOf(1, 10, 1, 11)...)
	if m.Len() != 1 {
		t.Fatalf("expected duplicate keys to collapse, have %d entries", m.Len())
	}
	if m.At(1) != 11 {
		t.Errorf("expected the later entry to win, got %d", m.At(1))
	}
}

func TestMapFromMapRoundTrip(t *testing.T) {
	src := map[string]int{"a": 1, "b": 2, "c": 3}
	m := FromMap(src)
	require.Equal(t, src, m.ToMap())
	src["a"] = 99 // the Map took a snapshot
	if m.At("a") != 1 {
		t.Error("expected FromMap to snapshot the source, tracked it instead")
	}
}

func TestMapEqualIsOrderInsensitive(t *testing.T) {
	a := Of(entriesOf(1, 10, 2, 20, 3, 30)...)
	b := Of(entriesOf(3, 30, 1, 10, 2, 20)...)
	if !a.Equal(b) {
		t.Error("expected maps built in different orders to be equal, aren't")
	}
	if a.Equal(Of(entriesOf(1, 10, 2, 20)...)) {
		t.Error("expected maps with different key sets to be unequal, aren't")
	}
	if a.Equal(Of(entriesOf(1, 10, 2, 20, 3, 31)...)) {
		t.Error("expected maps with a differing value to be unequal, aren't")
	}
}

func TestMapHashAgreesWithEqual(t *testing.T) {
	a := Of(entriesOf(1, 10, 2, 20)...)
	b := Of(entriesOf(2, 20, 1, 10)...)
	if !a.Equal(b) {
		t.Fatal("expected equal maps, aren't")
	}
	if a.Hash() != b.Hash() {
		t.Error("expected equal maps to hash equally, don't")
	}
	if a.Hash() == Of(entriesOf(10, 1, 20, 2)...).Hash() {
		t.Error("expected swapped keys/values to hash differently, don't")
	}
}

func TestMapWithAndWithout(t *testing.T) {
	m := Of(entriesOf(1, 10)...)
	w := m.With(2, 20)
	if m.Len() != 1 {
		t.Error("expected With to leave the original unchanged, didn't")
	}
	if !w.Equal(Of(entriesOf(1, 10, 2, 20)...)) {
		t.Errorf("expected {1:10 2:20}, is %s", w)
	}
	if !m.With(1, 10).Equal(m) {
		t.Error("expected With of an identical entry to be a no-op, isn't")
	}
	if !w.Without(2).Equal(m) {
		t.Errorf("expected Without(2) to restore {1:10}, is %s", w.Without(2))
	}
}

// --- Builder -------------------------------------------------------------------

func TestMapBuilderSetRemove(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "value.map")
	defer teardown()
	//
	b := NewBuilder[string, int]()
	if !b.Set("a", 1) {
		t.Error("expected Set of a fresh key to report a change, didn't")
	}
	if b.Set("a", 1) {
		t.Error("expected Set to the same value to be a no-op, wasn't")
	}
	if !b.Set("a", 2) {
		t.Error("expected Set to a new value to report a change, didn't")
	}
	if v, ok := b.Remove("a"); !ok || v != 2 {
		t.Errorf("expected Remove to yield 2, is %d/%v", v, ok)
	}
	if _, ok := b.Remove("a"); ok {
		t.Error("expected second Remove to report absent, didn't")
	}
}

func TestMapRemoveWhereMutatingPredicatePanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "value.map")
	defer teardown()
	//
	b := NewBuilder[int, int]()
	b.SetAll(Of(entriesOf(1, 10, 2, 20, 3, 30)...))
	var r any
	func() {
		defer func() { r = recover() }()
		b.RemoveWhere(func(k, v int) bool {
			b.Set(99, 990)
			return v > 10
		})
	}()
	if _, ok := r.(vc.ConcurrentMutationError); !ok {
		t.Fatalf("expected mutation inside predicate to panic with ConcurrentMutationError, got %v", r)
	}
	if !b.Freeze().Equal(Of(entriesOf(1, 10, 2, 20, 3, 30)...)) {
		t.Error("expected builder unchanged after panic, isn't")
	}
}

func TestMapRemoveWhere(t *testing.T) {
	b := NewBuilder[int, int]()
	b.SetAll(Of(entriesOf(1, 10, 2, 20, 3, 30)...))
	for range b.All() {
		if n := b.RemoveWhere(func(k, v int) bool { return v > 100 }); n != 0 {
			t.Fatalf("expected no matches during enumeration, removed %d", n)
		}
		break
	}
	if n := b.RemoveWhere(func(k, v int) bool { return v >= 20 }); n != 2 {
		t.Errorf("expected 2 entries removed, removed %d", n)
	}
	if !b.Freeze().Equal(Of(entriesOf(1, 10)...)) {
		t.Error("expected builder to hold {1:10}, doesn't")
	}
}

func TestMapBuilderNoOpSetKeepsVersion(t *testing.T) {
	// white-box: re-setting an entry to its current value is not a mutation
	b := NewBuilder[int, int]()
	b.Set(1, 10)
	before := b.t.Version()
	b.Set(1, 10)
	if b.t.Version() != before {
		t.Error("expected no-op Set not to advance the version, did")
	}
}

func TestMapCopyOnWrite(t *testing.T) {
	m := Of(entriesOf(1, 10, 2, 20)...)
	b := m.Builder()
	if b.t != m.t {
		t.Error("expected seeded builder to share the table until first mutation, doesn't")
	}
	b.Set(1, 10) // no-op
	if b.t != m.t {
		t.Error("expected no-op Set not to trigger copy-on-write, did")
	}
	b.Set(1, 11)
	if b.t == m.t {
		t.Error("expected first real mutation to trigger a private copy, didn't")
	}
	if m.At(1) != 10 {
		t.Errorf("expected seed Map to keep 1:10, has 1:%d", m.At(1))
	}
}

func TestMapFreezeIsOhOne(t *testing.T) {
	b := NewBuilder[int, int]()
	b.Set(1, 10)
	tab := b.t
	if m := b.Freeze(); m.t != tab {
		t.Error("expected freeze to transfer storage ownership, copied instead")
	}
}

func TestMapCursorRemoveCurrent(t *testing.T) {
	b := NewBuilder[int, int]()
	b.SetAll(Of(entriesOf(1, 1, 2, 4, 3, 9, 4, 16)...))
	initial := b.Len()
	removed := 0
	cur := b.Cursor()
	for cur.Next() {
		if cur.Key()%2 == 0 {
			cur.Remove()
			removed++
		}
	}
	if b.Len() != initial-removed {
		t.Errorf("expected %d entries after %d removals, have %d", initial-removed, removed, b.Len())
	}
	if !b.Freeze().Equal(Of(entriesOf(1, 1, 3, 9)...)) {
		t.Errorf("expected {1:1 3:9}, is %s", b.Freeze())
	}
}

func TestMapSetDuringCursorPanics(t *testing.T) {
	b := NewBuilder[int, int]()
	b.SetAll(Of(entriesOf(1, 10, 2, 20)...))
	before := b.Len()
	cur := b.Cursor()
	defer cur.Close()
	cur.Next()
	var r interface{}
	func() {
		defer func() { r = recover() }()
		b.Set(3, 30)
	}()
	if _, ok := r.(vc.ConcurrentMutationError); !ok {
		t.Fatalf("expected ConcurrentMutationError, got %v", r)
	}
	if b.Len() != before {
		t.Errorf("expected count unchanged after rejected Set, was %d, is %d", before, b.Len())
	}
}

func TestMapValueReplaceDuringCursorPanics(t *testing.T) {
	// replacing a value is a mutation; only remove-current is sanctioned
	b := NewBuilder[int, int]()
	b.Set(1, 10)
	cur := b.Cursor()
	defer cur.Close()
	cur.Next()
	var r interface{}
	func() {
		defer func() { r = recover() }()
		b.Set(1, 11)
	}()
	if _, ok := r.(vc.ConcurrentMutationError); !ok {
		t.Fatalf("expected ConcurrentMutationError, got %v", r)
	}
	if b.t.Version() != cur.version {
		t.Error("expected rejected Set to leave the version untouched, didn't")
	}
}

func TestMapNoOpSetDuringCursorIsAllowed(t *testing.T) {
	b := NewBuilder[int, int]()
	b.Set(1, 10)
	cur := b.Cursor()
	defer cur.Close()
	cur.Next()
	if b.Set(1, 10) {
		t.Error("expected no-op Set to report false, didn't")
	}
}

func TestMapSetAllSelfViewPanics(t *testing.T) {
	b := NewBuilder[int, int]()
	b.SetAll(Of(entriesOf(1, 10, 2, 20)...))
	var r interface{}
	func() {
		defer func() { r = recover() }()
		b.SetAll(b.View())
	}()
	if _, ok := r.(vc.SelfReferentialMutationError); !ok {
		t.Fatalf("expected SelfReferentialMutationError, got %v", r)
	}
	if b.Len() != 2 {
		t.Errorf("expected builder unchanged with 2 entries, has %d", b.Len())
	}
}

func TestMapRebuildFromEnumeration(t *testing.T) {
	x := Of(entriesOf(1, 10, 2, 20, 3, 30)...)
	var entries []Entry[int, int]
	for k, v := range x.All() {
		entries = append(entries, Entry[int, int]{Key: k, Value: v})
	}
	y := Of(entries...)
	if !x.Equal(y) {
		t.Error("expected a Map rebuilt from its enumeration to be equal, isn't")
	}
	if x.Hash() != y.Hash() {
		t.Error("expected rebuilt Map to hash equally, doesn't")
	}
}

func TestMapKeysAndValues(t *testing.T) {
	m := Of(entriesOf(1, 10, 2, 20)...)
	keys := 0
	for k := range m.Keys() {
		if !m.Contains(k) {
			t.Errorf("Keys() yielded unknown key %d", k)
		}
		keys++
	}
	if keys != 2 {
		t.Errorf("expected 2 keys, saw %d", keys)
	}
	sum := 0
	for v := range m.Values() {
		sum += v
	}
	if sum != 30 {
		t.Errorf("expected values to sum to 30, is %d", sum)
	}
}

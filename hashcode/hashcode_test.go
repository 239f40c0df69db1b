package hashcode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultHasherConsistency(t *testing.T) {
	h := Default[string]()
	require.True(t, h.Equal("galaxy", "galaxy"))
	require.False(t, h.Equal("galaxy", "universe"))
	require.Equal(t, h.Hash("galaxy"), h.Hash("galaxy"), "equal values must hash equally")
}

func TestDefaultHasherSharesSeed(t *testing.T) {
	// two independently created hashers of the same type must agree, or
	// hashes could never be compared across collections
	a := Default[int]()
	b := Default[int]()
	if a.Hash(42) != b.Hash(42) {
		t.Error("expected all default hashers to share the process seed, don't")
	}
}

func TestCombineOrderedIsOrderSensitive(t *testing.T) {
	h := Default[int]()
	h1, h2 := h.Hash(1), h.Hash(2)
	ab := CombineOrdered(CombineOrdered(EmptyOrdered(), h1), h2)
	ba := CombineOrdered(CombineOrdered(EmptyOrdered(), h2), h1)
	if ab == ba {
		t.Error("expected ordered combination to depend on order, doesn't")
	}
}

func TestCombineOrderedLengthMatters(t *testing.T) {
	// a prefix must not hash like the full sequence
	h := Default[int]()
	one := CombineOrdered(EmptyOrdered(), h.Hash(1))
	two := CombineOrdered(one, h.Hash(2))
	if one == two {
		t.Error("expected sequences of different lengths to hash differently, don't")
	}
	if one == EmptyOrdered() {
		t.Error("expected a one-element hash to differ from the empty hash, doesn't")
	}
}

func TestCombineUnorderedIsCommutative(t *testing.T) {
	h := Default[string]()
	hashes := []uint64{h.Hash("a"), h.Hash("b"), h.Hash("c")}
	var fwd, rev uint64
	for _, x := range hashes {
		fwd = CombineUnordered(fwd, x)
	}
	for i := len(hashes) - 1; i >= 0; i-- {
		rev = CombineUnordered(rev, hashes[i])
	}
	require.Equal(t, fwd, rev, "unordered combination must be order-free")
}

func TestPairIsAsymmetric(t *testing.T) {
	h := Default[int]()
	kh, vh := h.Hash(1), h.Hash(2)
	if Pair(kh, vh) == Pair(vh, kh) {
		t.Error("expected Pair to distinguish key from value position, doesn't")
	}
}

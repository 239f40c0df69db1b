/*
Package valuecollections is the root of a family of immutable collection types
with value semantics: sequences, sets and maps that are compared and hashed by
content, never by identity.

The collection types live in sub-packages:

	seq      an immutable sequence, the value-semantics sibling of a slice
	hashset  an immutable hash set
	hashmap  an immutable hash map

Each collection kind comes in two flavors. The immutable view (seq.Seq,
hashset.Set, hashmap.Map) is a frozen snapshot: it has no mutating methods,
it is safe for unrestricted concurrent reads, and two views are equal exactly
when their contents are. The builder (e.g. seq.Builder) is a mutable,
single-owner staging object with O(1)-amortized mutation; freezing a builder
produces an immutable view, and seeding a builder from a view is copy-on-write.

Builders defend against mutation during enumeration: any structural change
attempted while an enumeration over the builder is active fails loudly with
ConcurrentMutationError instead of corrupting the backing storage, and bulk
copies whose source turns out to be the destination's own storage fail with
SelfReferentialMutationError. This package holds those shared error types.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package valuecollections

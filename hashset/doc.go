/*
Package hashset implements an immutable hash set with value semantics.

A Set is a frozen snapshot: it exposes no mutating methods, two sets are
equal exactly when they hold equal elements regardless of insertion order or
deletion history, and a Set is safe for unrestricted concurrent reads.
Enumeration order is unspecified. Modification goes through a Builder;
freezing a Builder yields a Set, seeding a Builder from a Set is
copy-on-write.

Builders defend against mutation during enumeration the same way package seq
does: structural changes while a cursor or range loop is active panic with
valuecollections.ConcurrentMutationError, with Cursor.Remove as the one
sanctioned exception. Adding an element that is already present is a no-op,
not a mutation, and is therefore always allowed.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package hashset

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'value.set'.
func tracer() tracing.Trace {
	return tracing.Select("value.set")
}

/*
Package hashmap implements an immutable hash map with value semantics.

A Map is a frozen snapshot: it exposes no mutating methods, two maps are
equal exactly when they hold the same keys mapped to equal values regardless
of insertion order or deletion history, and a Map is safe for unrestricted
concurrent reads. Enumeration order is unspecified. Modification goes through
a Builder; freezing a Builder yields a Map, seeding a Builder from a Map is
copy-on-write.

Builders defend against mutation during enumeration the same way package seq
does: structural changes while a cursor or range loop is active panic with
valuecollections.ConcurrentMutationError, with Cursor.Remove as the one
sanctioned exception. Setting a key to the value it already maps to is a
no-op, not a mutation, and is therefore always allowed.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package hashmap

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'value.map'.
func tracer() tracing.Trace {
	return tracing.Select("value.map")
}

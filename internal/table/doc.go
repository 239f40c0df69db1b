/*
Package table implements the open-addressing slot storage backing the hashset
and hashmap packages.

A Table owns a flat array of slots, each of which is empty, occupied, or a
tombstone left behind by a deletion to keep probe sequences intact. The table
maintains a version counter that changes exactly when the logical contents or
the capacity change: inserts, deletes, clears and growth all advance it, while
failed lookups and duplicate inserts do not. Collection builders rely on the
version counter to detect stale enumerations.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package table

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'value.table'.
func tracer() tracing.Trace {
	return tracing.Select("value.table")
}

/*
Package seq implements an immutable sequence with value semantics, designed
for use-cases similar to Go slices.

A Seq is a frozen snapshot: it exposes no mutating methods, two sequences are
equal exactly when they hold equal elements in the same order, and a Seq is
safe for unrestricted concurrent reads. Modification goes through a Builder,
a mutable single-owner staging object with O(1)-amortized mutation. Freezing
a Builder yields a Seq; seeding a Builder from a Seq is copy-on-write, so
neither direction copies until the builder actually mutates.

Builders detect mutation during enumeration. Any structural change attempted
while a cursor or range loop over the builder is active panics with
valuecollections.ConcurrentMutationError; the one sanctioned exception is
Cursor.Remove, which removes the element currently being visited. Bulk
inserts whose source resolves to the builder's own backing storage panic
with valuecollections.SelfReferentialMutationError.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package seq

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'value.seq'.
func tracer() tracing.Trace {
	return tracing.Select("value.seq")
}

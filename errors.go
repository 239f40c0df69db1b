package valuecollections

import "fmt"

// ConcurrentMutationError reports a structural mutation of a builder while an
// enumeration over that same builder was active. Builders raise it by
// panicking: mutating a collection you are iterating over is a programming
// error, not a runtime condition to recover from. The builder's bookkeeping
// is still intact when the panic is raised; the offending operation has not
// modified anything.
type ConcurrentMutationError struct {
	Container string // "seq", "hashset" or "hashmap"
	Op        string // the operation that was rejected
}

func (e ConcurrentMutationError) Error() string {
	return fmt.Sprintf("%s: %s during active enumeration", e.Container, e.Op)
}

// SelfReferentialMutationError reports a bulk-copy operation whose source
// resolves to the destination builder's own backing storage, such as
// inserting a range of a sequence into itself. Like ConcurrentMutationError
// it is raised by panicking and leaves the destination unchanged.
type SelfReferentialMutationError struct {
	Container string
	Op        string
}

func (e SelfReferentialMutationError) Error() string {
	return fmt.Sprintf("%s: %s from the collection's own storage", e.Container, e.Op)
}

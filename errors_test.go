package valuecollections

import "testing"

func TestErrorMessages(t *testing.T) {
	e := ConcurrentMutationError{Container: "seq", Op: "Add"}
	if e.Error() != "seq: Add during active enumeration" {
		t.Errorf("unexpected message: %q", e.Error())
	}
	s := SelfReferentialMutationError{Container: "hashset", Op: "AddAll"}
	if s.Error() != "hashset: AddAll from the collection's own storage" {
		t.Errorf("unexpected message: %q", s.Error())
	}
}

func TestErrorsAreErrors(t *testing.T) {
	var _ error = ConcurrentMutationError{}
	var _ error = SelfReferentialMutationError{}
}

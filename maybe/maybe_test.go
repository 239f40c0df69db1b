package maybe_test

import (
	"testing"

	. "github.com/badeend/valuecollections/maybe"
)

func TestMaybeSimple(t *testing.T) {
	x := Just(7) // infers type
	if v, ok := x.Value(); !ok || v != 7 {
		t.Errorf("expected Just(7) to hold 7, is %v/%v", v, ok)
	}
	y := Nothing[int]()
	if y.IsJust() {
		t.Error("expected Nothing not to hold a value, does")
	}
	if v, ok := y.Value(); ok || v != 0 {
		t.Errorf("expected Nothing to yield the zero value, is %v/%v", v, ok)
	}
}

func TestMaybeWithDefault(t *testing.T) {
	x := Just(7)
	if xx := x.WithDefault(100); xx != 7 {
		t.Logf("x = %d", xx)
		t.Error("expected Just(7) to have value 7, isn't")
	}
	y := Nothing[int]()
	if yy := y.WithDefault(100); yy != 100 {
		t.Logf("y = %d", yy)
		t.Error("expected Nothing to default to 100, isn't")
	}
}

func TestMaybeMap(t *testing.T) {
	xx := Map(func(n int) int { return n * 2 }, Just(10))
	if v, _ := xx.Value(); v != 20 {
		t.Logf("x * 2 = %d", v)
		t.Error("expected Map(…, Just 10) to return 20, didn't")
	}
	yy := Map(func(n int) int { return n * 2 }, Nothing[int]())
	if yy.IsJust() {
		t.Error("expected Nothing.Map(…) to stay Nothing, didn't")
	}
}

func TestMaybeAndThen(t *testing.T) {
	gt0 := func(n int) Maybe[bool] {
		if n > 0 {
			return Just(true)
		}
		return Nothing[bool]()
	}
	gt := AndThen(gt0, Just(7))
	if isGreater, ok := gt.Value(); !ok || !isGreater {
		t.Error("expected Just(7) |> andThen(gt0) to be true, isn't")
	}
	none := AndThen(gt0, Just(-7))
	if none.IsJust() {
		t.Error("expected Just(-7) |> andThen(gt0) to be Nothing, isn't")
	}
}

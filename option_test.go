package weir_test

import (
	"testing"

	"github.com/foldstream/weir"
)

func TestUnitOption(t *testing.T) {
	some := weir.Some(7)
	if !some.IsSome() || some.IsNone() {
		t.Errorf("unexpected option: %+v", some)
	}
	if v, ok := some.Get(); !ok || v != 7 {
		t.Errorf("want (7, true), got (%d, %v)", v, ok)
	}
	if got := some.GetOrElse(0); got != 7 {
		t.Errorf("want 7, got %d", got)
	}

	none := weir.None[int]()
	if none.IsSome() || !none.IsNone() {
		t.Errorf("unexpected option: %+v", none)
	}
	if got := none.GetOrElse(42); got != 42 {
		t.Errorf("want 42, got %d", got)
	}
}

package weir_test

import (
	"context"
	"errors"
	"testing"

	"github.com/foldstream/weir"
)

func TestUnitForeachVisitsEveryElement(t *testing.T) {
	var got []int
	err := weir.Foreach(context.Background(), weir.Range(0, 4), func(_ context.Context, v int) error {
		got = append(got, v)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSlicesEqual(t, []int{0, 1, 2, 3, 4}, got)
}

func TestUnitForeachPropagatesCallbackError(t *testing.T) {
	err := weir.Foreach(context.Background(), weir.Range(0, 4), func(_ context.Context, v int) error {
		if v == 2 {
			return errTest
		}
		return nil
	})
	if !errors.Is(err, errTest) {
		t.Errorf("unexpected error: %v, want: %v", err, errTest)
	}
}

package weir_test

import (
	"context"
	"testing"

	"github.com/foldstream/weir"
)

func TestUnitFoldPureMatchesFold(t *testing.T) {
	sp := weir.RangePure(0, 4)

	pureSum := weir.FoldPure(sp, 0, func(acc, v int) weir.Step[int] {
		return weir.Cont(acc + v)
	})

	effectfulSum, err := weir.FoldLeft(context.Background(), sp.Stream, 0, func(acc, v int) int {
		return acc + v
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pureSum.Extract() != effectfulSum {
		t.Errorf("pure fold (%d) disagrees with effectful fold (%d)", pureSum.Extract(), effectfulSum)
	}
}

func TestUnitFoldPureStopsEarly(t *testing.T) {
	sp := weir.FromSlicePure(1, 2, 3, 4, 5)
	st := weir.FoldPure(sp, 0, func(acc, v int) weir.Step[int] {
		if v == 3 {
			return weir.Stop(acc)
		}
		return weir.Cont(acc + v)
	})
	if !st.IsStop() {
		t.Error("expected the fold to stop")
	}
	if st.Extract() != 3 {
		t.Errorf("want 3, got %d", st.Extract())
	}
}

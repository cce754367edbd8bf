package weir_test

import (
	"context"
	"testing"

	"github.com/foldstream/weir"
	"github.com/stretchr/testify/require"
)

func TestUnitRunWithListSink(t *testing.T) {
	got, err := weir.Run(context.Background(), weir.Range(1, 5), weir.ListSink[int]())
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3, 4, 5}, got)
}

func TestUnitRunWithCountSink(t *testing.T) {
	got, err := weir.Run(context.Background(), weir.Range(1, 100), weir.CountSink[int]())
	require.NoError(t, err)
	require.EqualValues(t, 100, got)
}

func TestUnitRunStopsPullingOnceSinkIsDone(t *testing.T) {
	pulled := 0
	counter := weir.Unfold(0, func(n int) weir.Option[weir.Unfolded[int, int]] {
		pulled++
		return weir.Some(weir.Unfolded[int, int]{Value: n, Next: n + 1})
	})
	got, err := weir.Run(context.Background(), counter, weir.CollectSink[int](3))
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, got)
	require.Equal(t, 3, pulled, "want exactly 3 pulls from an infinite source")
}

func TestUnitTransduceGroupsIntoFixedSizeBatches(t *testing.T) {
	batches := weir.Transduce(weir.Range(0, 9), weir.CollectSink[int](3))
	got, err := weir.ToSlice(context.Background(), batches)
	require.NoError(t, err)
	require.Equal(t, [][]int{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}}, got)
	// 9 discarded: ten elements do not divide evenly into batches of 3, and
	// Transduce drops the dangling partial sink state on exhaustion.
}

func TestUnitTransduceFlushEmitsThePartialTail(t *testing.T) {
	batches := weir.TransduceFlush(weir.Range(0, 9), weir.CollectSink[int](3))
	got, err := weir.ToSlice(context.Background(), batches)
	require.NoError(t, err)
	require.Equal(t, [][]int{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, {9}}, got)
}

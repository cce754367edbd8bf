package weir_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/foldstream/weir"
)

func TestUnitMergeIsAMultisetUnion(t *testing.T) {
	a := weir.Range(0, 4)
	b := weir.Range(5, 9)

	got, err := weir.ToSlice(context.Background(), weir.Merge(a, b, 4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sort.Ints(got)
	assertSlicesEqual(t, intRange(10), got)
}

func TestUnitMergeEitherTagsBySource(t *testing.T) {
	a := weir.FromSlice(1, 2)
	b := weir.FromSlice("x", "y")

	got, err := weir.ToSlice(context.Background(), weir.MergeEither[int, string](a, b, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var lefts []int
	var rights []string
	for _, e := range got {
		if l, ok := e.Left(); ok {
			lefts = append(lefts, l)
		}
		if r, ok := e.Right(); ok {
			rights = append(rights, r)
		}
	}
	sort.Ints(lefts)
	sort.Strings(rights)
	assertSlicesEqual(t, []int{1, 2}, lefts)
	assertSlicesEqual(t, []string{"x", "y"}, rights)
}

func TestUnitMergeFailsFastOnEitherSide(t *testing.T) {
	failing := weir.MapM(weir.Range(0, 4), func(_ context.Context, v int) (int, error) {
		if v == 2 {
			return 0, errTest
		}
		return v, nil
	})
	ok := weir.Repeat(context.Background(), weir.IO[int](func(context.Context) (int, error) { return 1, nil }), weir.Spaced(0))

	_, err := weir.ToSlice(context.Background(), weir.Merge(failing, ok, 1))
	if !errors.Is(err, errTest) {
		t.Errorf("unexpected error: %v, want: %v", err, errTest)
	}
}

func TestUnitZipTruncatesToShorterSide(t *testing.T) {
	a := weir.Range(0, 4)
	b := weir.FromSlice("a", "b")

	got, err := weir.ToSlice(context.Background(), weir.Zip[int, string](a, b, 1, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 pairs, got %d: %v", len(got), got)
	}
	if got[0].First != 0 || got[0].Second != "a" {
		t.Errorf("unexpected first pair: %+v", got[0])
	}
	if got[1].First != 1 || got[1].Second != "b" {
		t.Errorf("unexpected second pair: %+v", got[1])
	}
}

func TestUnitZipWithAppliesCombiner(t *testing.T) {
	a := weir.Range(1, 3)
	b := weir.Range(10, 12)
	sums := weir.ZipWith(a, b, func(oa, ob weir.Option[int]) weir.Option[int] {
		av, aok := oa.Get()
		bv, bok := ob.Get()
		if !aok || !bok {
			return weir.None[int]()
		}
		return weir.Some(av + bv)
	}, 1, 1)

	got, err := weir.ToSlice(context.Background(), sums)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSlicesEqual(t, []int{11, 13, 15}, got)
}

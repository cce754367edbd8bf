//go:build go1.23

package weir_test

import (
	"context"
	"errors"
	"maps"
	"slices"
	"testing"

	"github.com/foldstream/weir"
)

func TestUnitFromSeq(t *testing.T) {
	vals := []int{1, 2, 3, 4, 5}
	s := weir.FromSeq(slices.Values(vals))
	got, err := weir.ToSlice(context.Background(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSlicesEqual(t, vals, got)
}

func TestUnitFromSeq2PropagatesError(t *testing.T) {
	vals := map[int]error{1: nil, 2: nil, 3: errTest}
	s := weir.FromSeq2(maps.All(vals))
	_, err := weir.ToSlice(context.Background(), s)
	if !errors.Is(err, errTest) {
		t.Errorf("unexpected error: %v, want: %v", err, errTest)
	}
}

func TestUnitAllRoundTrips(t *testing.T) {
	vals := []int{1, 2, 3, 4, 5}
	s := weir.FromSlice(vals...)

	var got []int
	for v, err := range weir.All(context.Background(), s) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, v)
	}
	assertSlicesEqual(t, vals, got)
}

func TestUnitAllStopsEarly(t *testing.T) {
	s := weir.FromSlice(1, 2, 3, 4, 5)
	var got []int
	for v, err := range weir.All(context.Background(), s) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, v)
		if v == 2 {
			break
		}
	}
	assertSlicesEqual(t, []int{1, 2}, got)
}

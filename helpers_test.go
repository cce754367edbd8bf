package weir_test

import (
	"errors"
	"testing"
)

var errTest = errors.New("test error")

func intRange(length int) []int {
	result := make([]int, length)
	for i := 0; i < length; i++ {
		result[i] = i
	}
	return result
}

func assertSlicesEqual[T comparable](t *testing.T, expected, actual []T) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Errorf("slices have different lengths: %d != %d, want %v, got %v", len(expected), len(actual), expected, actual)
		return
	}
	for i, v := range expected {
		if actual[i] != v {
			t.Errorf("slices differ at index %d: %v != %v", i, v, actual[i])
			return
		}
	}
}

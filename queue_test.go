package weir_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/foldstream/weir"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestUnitQueueOfferTake(t *testing.T) {
	q := weir.NewQueue[int](2)
	ctx := context.Background()
	if err := q.Offer(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := q.Take(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Errorf("want 1, got %d", got)
	}
}

func TestUnitQueueOfferRespectsCancellation(t *testing.T) {
	q := weir.NewQueue[int](0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := q.Offer(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("unexpected error: %v, want: %v", err, context.Canceled)
	}
}

func TestUnitPromiseSucceedsOnce(t *testing.T) {
	p := weir.NewPromise[int]()
	if !p.Succeed(1) {
		t.Error("first Succeed should report true")
	}
	if p.Succeed(2) {
		t.Error("second Succeed should report false")
	}
	got, err := p.Await(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Errorf("want 1, got %d", got)
	}
}

func TestUnitToQueueBridgesStream(t *testing.T) {
	err := weir.ToQueue(context.Background(), weir.Range(0, 4), 2, func(ctx context.Context, q *weir.Queue[weir.Take[int]]) error {
		var got []int
		for {
			take, err := q.Take(ctx)
			if err != nil {
				return err
			}
			if take.IsEnd() {
				break
			}
			got = append(got, take.Value())
		}
		assertSlicesEqual(t, []int{0, 1, 2, 3, 4}, got)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUnitFromQueueTake(t *testing.T) {
	err := weir.ToQueue(context.Background(), weir.Range(0, 9), 4, func(ctx context.Context, q *weir.Queue[weir.Take[int]]) error {
		s := weir.FromQueueTake(q)
		got, err := weir.ToSlice(ctx, weir.Take(s, 10))
		if err != nil {
			return err
		}
		sort.Ints(got)
		assertSlicesEqual(t, intRange(10), got)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUnitToQueuePropagatesUpstreamFailure(t *testing.T) {
	failing := weir.Concat(weir.Range(0, 2), func() weir.Stream[int] {
		return weir.MapM(weir.Point(0), func(context.Context, int) (int, error) {
			return 0, errTest
		})
	})
	err := weir.ToQueue(context.Background(), failing, 1, func(ctx context.Context, q *weir.Queue[weir.Take[int]]) error {
		for {
			take, err := q.Take(ctx)
			if err != nil {
				return err
			}
			if take.IsFail() {
				return take.Err()
			}
			if take.IsEnd() {
				return nil
			}
		}
	})
	if !errors.Is(err, errTest) {
		t.Errorf("unexpected error: %v, want: %v", err, errTest)
	}
}

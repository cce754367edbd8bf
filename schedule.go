package weir

import (
	"context"
	"time"
)

// Schedule decides, given how many times it has already recurred, whether
// to recur again and after what delay. It is a function type rather than
// an interface, matching this package's preference for option/strategy
// values expressed as funcs over small hierarchies.
type Schedule func(n int) (delay time.Duration, again bool)

// Recurs produces a Schedule that fires exactly n more times, back to
// back with no delay.
func Recurs(n int) Schedule {
	return func(count int) (time.Duration, bool) {
		return 0, count < n
	}
}

// Spaced produces a Schedule that recurs indefinitely with a fixed delay
// between each recurrence.
func Spaced(d time.Duration) Schedule {
	return func(int) (time.Duration, bool) {
		return d, true
	}
}

// sleep waits out d, honoring ctx cancellation.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Repeat runs io repeatedly per sched, collecting every result, until
// sched decides not to recur again or io fails. n passed to sched is the
// count of results already emitted, so Recurs(k) yields exactly k results.
func Repeat[A any](ctx context.Context, io IO[A], sched Schedule) Stream[A] {
	return UnfoldM(0, func(ctx context.Context, n int) (Option[Unfolded[int, A]], error) {
		if n > 0 {
			d, again := sched(n)
			if !again {
				return Option[Unfolded[int, A]]{}, nil
			}
			if err := sleep(ctx, d); err != nil {
				return Option[Unfolded[int, A]]{}, err
			}
		}
		a, err := io(ctx)
		if err != nil {
			return Option[Unfolded[int, A]]{}, err
		}
		return Some(Unfolded[int, A]{Value: a, Next: n + 1}), nil
	})
}

// RepeatStream repeats the elements of s according to sched: once s is
// exhausted, if sched allows another recurrence the whole of s is folded
// again from the start, and so on. This is spec's "repeat": the schedule
// governs reruns of the whole stream, not individual elements; see
// RepeatElems for the per-element variant.
func RepeatStream[A any](s Stream[A], sched Schedule) Stream[A] {
	return Stream[A]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, A) (rawStep, error)) (rawStep, error) {
			cur := rawCont(s0)
			for n := 0; ; n++ {
				if n > 0 {
					d, again := sched(n - 1)
					if !again {
						return cur, nil
					}
					if err := sleep(ctx, d); err != nil {
						return rawStep{}, err
					}
				}
				r, err := s.fold(ctx, cur.s, step)
				if err != nil {
					return rawStep{}, err
				}
				cur = r
				if cur.stop {
					return cur, nil
				}
			}
		},
	}
}

// RepeatElems repeats each element of s in place, per sched: as soon as a
// is emitted, sched is consulted to decide how many additional times to
// re-emit a (after the prescribed delay) before moving on to the next
// upstream element. Recurs(1) duplicates every element once, so
// FromSlice(1, 2, 3).RepeatElems(Recurs(1)) yields 1, 1, 2, 2, 3, 3.
func RepeatElems[A any](s Stream[A], sched Schedule) Stream[A] {
	return FlatMap(s, func(a A) Stream[A] {
		return Stream[A]{
			fold: func(ctx context.Context, s0 any, step func(context.Context, any, A) (rawStep, error)) (rawStep, error) {
				cur, err := step(ctx, s0, a)
				if err != nil || cur.stop {
					return cur, err
				}
				for n := 0; ; n++ {
					d, again := sched(n)
					if !again {
						return cur, nil
					}
					if err := sleep(ctx, d); err != nil {
						return rawStep{}, err
					}
					cur, err = step(ctx, cur.s, a)
					if err != nil || cur.stop {
						return cur, err
					}
				}
			},
		}
	})
}

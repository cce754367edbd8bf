package weir

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// mergeItem tags a Take arriving on the shared merge queue with which
// source fed it.
type mergeItem[A, B any] struct {
	left bool
	a    Take[A]
	b    Take[B]
}

// MergeWith interleaves two sources into one, mapping left elements
// through l and right elements through r. Each source's internal order is
// preserved; the interleaving between sources is whatever order the
// shared queue delivers them in - non-deterministic. The first failure on
// either side wins and interrupts the other fiber.
func MergeWith[A, B, C any](a Stream[A], b Stream[B], l func(A) C, r func(B) C, capacity int) Stream[C] {
	return Stream[C]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, C) (rawStep, error)) (rawStep, error) {
			q := NewQueue[mergeItem[A, B]](capacity)
			fctx, cancel := context.WithCancel(ctx)
			defer cancel()
			eg, gctx := errgroup.WithContext(fctx)

			forkProducer[A](gctx, eg, a, func(ctx context.Context, t Take[A]) error {
				return q.Offer(ctx, mergeItem[A, B]{left: true, a: t})
			})
			forkProducer[B](gctx, eg, b, func(ctx context.Context, t Take[B]) error {
				return q.Offer(ctx, mergeItem[A, B]{b: t})
			})

			leftDone, rightDone := false, false
			cur := rawCont(s0)
			var loopErr error
		loop:
			for !(leftDone && rightDone) {
				item, err := q.Take(gctx)
				if err != nil {
					loopErr = err
					break loop
				}
				if item.left {
					switch {
					case item.a.IsFail():
						loopErr = item.a.Err()
						break loop
					case item.a.IsEnd():
						leftDone = true
					default:
						next, err := step(ctx, cur.s, l(item.a.Value()))
						if err != nil {
							loopErr = err
							break loop
						}
						cur = next
						if cur.stop {
							break loop
						}
					}
					continue
				}
				switch {
				case item.b.IsFail():
					loopErr = item.b.Err()
					break loop
				case item.b.IsEnd():
					rightDone = true
				default:
					next, err := step(ctx, cur.s, r(item.b.Value()))
					if err != nil {
						loopErr = err
						break loop
					}
					cur = next
					if cur.stop {
						break loop
					}
				}
			}

			cancel()
			waitErr := eg.Wait()
			if loopErr != nil {
				return rawStep{}, loopErr
			}
			if waitErr != nil && !errors.Is(waitErr, context.Canceled) {
				return rawStep{}, waitErr
			}
			return cur, nil
		},
	}
}

// Merge interleaves two streams of the same element type.
func Merge[A any](a, b Stream[A], capacity int) Stream[A] {
	return MergeWith(a, b, identity[A], identity[A], capacity)
}

// MergeEither interleaves two streams, tagging each element with which
// source produced it.
func MergeEither[A, B any](a Stream[A], b Stream[B], capacity int) Stream[Either[A, B]] {
	return MergeWith(a, b, LeftOf[A, B], RightOf[A, B], capacity)
}

func identity[A any](a A) A { return a }

// JoinWith is the base of the zip family: per tick it calls f0 with two
// pull functions, one per source's own bounded queue, and lets f0 decide
// which side(s) to pull and in what order. f0 returning None ends the
// joined stream. Both producer fibers are interrupted on any exit -
// downstream Stop, a pull failure, or f0 ending the join.
func JoinWith[A, B, C any](
	a Stream[A], b Stream[B],
	f0 func(ctx context.Context, pullLeft func(context.Context) (Option[A], error), pullRight func(context.Context) (Option[B], error)) (Option[C], error),
	lc, rc int,
) Stream[C] {
	return Stream[C]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, C) (rawStep, error)) (rawStep, error) {
			lq := NewQueue[Take[A]](lc)
			rq := NewQueue[Take[B]](rc)
			fctx, cancel := context.WithCancel(ctx)
			defer cancel()
			eg, gctx := errgroup.WithContext(fctx)

			forkProducer[A](gctx, eg, a, lq.Offer)
			forkProducer[B](gctx, eg, b, rq.Offer)

			pullLeft := func(ctx context.Context) (Option[A], error) { return TakeOption(ctx, lq.Take) }
			pullRight := func(ctx context.Context) (Option[B], error) { return TakeOption(ctx, rq.Take) }

			cur := rawCont(s0)
			var loopErr error
			for {
				oc, err := f0(gctx, pullLeft, pullRight)
				if err != nil {
					loopErr = err
					break
				}
				cv, ok := oc.Get()
				if !ok {
					break
				}
				next, err := step(ctx, cur.s, cv)
				if err != nil {
					loopErr = err
					break
				}
				cur = next
				if cur.stop {
					break
				}
			}

			cancel()
			waitErr := eg.Wait()
			if loopErr != nil {
				return rawStep{}, loopErr
			}
			if waitErr != nil && !errors.Is(waitErr, context.Canceled) {
				return rawStep{}, waitErr
			}
			return cur, nil
		},
	}
}

// ZipWith pulls one element from each side's queue per tick and combines
// them with f0; None ends the zipped stream. Queue capacities lc, rc
// default to 1 when passed as 0, bounding per-side buffering.
func ZipWith[A, B, C any](a Stream[A], b Stream[B], f0 func(Option[A], Option[B]) Option[C], lc, rc int) Stream[C] {
	lc, rc = defaultCap(lc), defaultCap(rc)
	return JoinWith(a, b, func(ctx context.Context, pullLeft func(context.Context) (Option[A], error), pullRight func(context.Context) (Option[B], error)) (Option[C], error) {
		oa, err := pullLeft(ctx)
		if err != nil {
			return Option[C]{}, err
		}
		ob, err := pullRight(ctx)
		if err != nil {
			return Option[C]{}, err
		}
		return f0(oa, ob), nil
	}, lc, rc)
}

// Zip pairs elements positionally from each source's arrival order,
// producing min(|a|,|b|) pairs: the zipped stream ends the moment either
// side is exhausted.
func Zip[A, B any](a Stream[A], b Stream[B], lc, rc int) Stream[Pair[A, B]] {
	return ZipWith(a, b, func(oa Option[A], ob Option[B]) Option[Pair[A, B]] {
		av, aok := oa.Get()
		bv, bok := ob.Get()
		if !aok || !bok {
			return None[Pair[A, B]]()
		}
		return Some(Pair[A, B]{First: av, Second: bv})
	}, lc, rc)
}

func defaultCap(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

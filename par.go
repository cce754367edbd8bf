package weir

import (
	"container/heap"
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// ParFilterMap is like Collect, but runs the mapping/filtering callback
// concurrently across num goroutines pulling from one shared input queue,
// fed by a single traversal of s. Output order is undefined - callers
// that need to preserve order should use ParMapN instead.
func ParFilterMap[A, B any](s Stream[A], num int, callback func(context.Context, A) (B, bool, error), capacity int) Stream[B] {
	return Stream[B]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, B) (rawStep, error)) (rawStep, error) {
			in := NewQueue[Take[A]](capacity)
			out := NewQueue[Take[B]](capacity)
			fctx, cancel := context.WithCancel(ctx)
			defer cancel()
			outerEg, octx := errgroup.WithContext(fctx)

			forkProducer[A](octx, outerEg, s, in.Offer)

			outerEg.Go(func() error {
				innerEg, ictx := errgroup.WithContext(octx)
				for i := 0; i < num; i++ {
					innerEg.Go(func() error {
						for {
							t, err := in.Take(ictx)
							if err != nil {
								return err
							}
							if t.IsFail() {
								return t.Err()
							}
							if t.IsEnd() {
								return nil
							}
							mapped, ok, err := callback(ictx, t.Value())
							if err != nil {
								return err
							}
							if !ok {
								continue
							}
							if err := out.Offer(ictx, TakeValue(mapped)); err != nil {
								return err
							}
						}
					})
				}
				err := innerEg.Wait()
				if err != nil {
					return out.Offer(octx, TakeFail[B](err))
				}
				for {
					if ferr := out.Offer(octx, TakeEnd[B]()); ferr != nil {
						return nil
					}
				}
			})

			r, err := FromQueueTake(out).fold(ctx, s0, step)
			cancel()
			_ = outerEg.Wait()
			return r, err
		},
	}
}

// ParMap is ParFilterMap specialized to a total mapper.
func ParMap[A, B any](s Stream[A], num int, mapper func(context.Context, A) (B, error), capacity int) Stream[B] {
	return ParFilterMap(s, num, func(ctx context.Context, a A) (B, bool, error) {
		b, err := mapper(ctx, a)
		return b, true, err
	}, capacity)
}

// ParFilter is ParFilterMap specialized to a predicate.
func ParFilter[A any](s Stream[A], num int, pred func(context.Context, A) (bool, error), capacity int) Stream[A] {
	return ParFilterMap(s, num, func(ctx context.Context, a A) (A, bool, error) {
		ok, err := pred(ctx, a)
		return a, ok, err
	}, capacity)
}

type indexed[A any] struct {
	i int
	a A
}

type reorderHeap[B any] []indexed[B]

func (h reorderHeap[B]) Len() int            { return len(h) }
func (h reorderHeap[B]) Less(i, j int) bool  { return h[i].i < h[j].i }
func (h reorderHeap[B]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *reorderHeap[B]) Push(x any)         { *h = append(*h, x.(indexed[B])) }
func (h *reorderHeap[B]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// ParMapN maps f over s with at most maxConcurrency invocations in flight
// at once, bounded by a weighted semaphore, while preserving input order
// in the output - the supplemented sibling of ParMap for callers who need
// both concurrency and ordering. Results that complete out of order are
// buffered in a small reorder heap and released only once the
// next-expected index becomes available.
func ParMapN[A, B any](s Stream[A], maxConcurrency int64, f func(context.Context, A) (B, error)) Stream[B] {
	return Stream[B]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, B) (rawStep, error)) (rawStep, error) {
			out := NewQueue[Take[indexed[B]]](int(maxConcurrency))
			fctx, cancel := context.WithCancel(ctx)
			defer cancel()
			eg, gctx := errgroup.WithContext(fctx)
			sem := semaphore.NewWeighted(maxConcurrency)

			eg.Go(func() error {
				idx := 0
				innerEg, ictx := errgroup.WithContext(gctx)
				err := Foreach(ictx, s, func(ctx context.Context, a A) error {
					if err := sem.Acquire(ctx, 1); err != nil {
						return err
					}
					i := idx
					idx++
					innerEg.Go(func() error {
						defer sem.Release(1)
						b, err := f(ictx, a)
						if err != nil {
							return err
						}
						return out.Offer(ictx, TakeValue(indexed[B]{i: i, a: b}))
					})
					return nil
				})
				if err == nil {
					err = innerEg.Wait()
				} else {
					_ = innerEg.Wait()
				}
				if err != nil {
					return out.Offer(gctx, TakeFail[indexed[B]](err))
				}
				for {
					if ferr := out.Offer(gctx, TakeEnd[indexed[B]]()); ferr != nil {
						return nil
					}
				}
			})

			h := &reorderHeap[B]{}
			heap.Init(h)
			next := 0
			cur := rawCont(s0)
			var loopErr error
		drain:
			for {
				for h.Len() > 0 && (*h)[0].i == next {
					item := heap.Pop(h).(indexed[B])
					next++
					r, err := step(ctx, cur.s, item.a)
					if err != nil {
						loopErr = err
						break drain
					}
					cur = r
					if cur.stop {
						break drain
					}
				}
				t, err := out.Take(gctx)
				if err != nil {
					loopErr = err
					break drain
				}
				if t.IsFail() {
					loopErr = t.Err()
					break drain
				}
				if t.IsEnd() {
					if h.Len() == 0 {
						break drain
					}
					continue drain
				}
				heap.Push(h, t.Value())
			}

			cancel()
			_ = eg.Wait()
			if loopErr != nil {
				return rawStep{}, loopErr
			}
			return cur, nil
		},
	}
}

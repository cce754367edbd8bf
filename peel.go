package weir

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Peel runs sink against the head of s until the sink completes, then
// hands the extracted value and the remaining stream (sink leftover
// followed by whatever s had not yet produced) to use. It is the
// queue-bridge stand-in for a true coroutine handoff: a background fiber
// drives s into a bounded queue, the sink consumes from that queue one
// element at a time, and once the sink is Done the tail stream is built
// by prepending the sink's leftover to a Stream reading the same queue
// onward. The producer fiber is interrupted on every exit path, whether
// the sink never completes (upstream exhaustion), the sink fails, or use
// returns.
func Peel[S, A, B any](ctx context.Context, s Stream[A], sink Sink[S, A, B], use func(context.Context, B, Stream[A]) error) error {
	q := NewQueue[Take[A]](1)
	fctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, gctx := errgroup.WithContext(fctx)
	forkProducer[A](gctx, eg, s, q.Offer)

	state := sink.Initial
	var b B
	var tail Stream[A]
	runErr := func() error {
		for {
			t, err := q.Take(gctx)
			if err != nil {
				return err
			}
			if t.IsFail() {
				return t.Err()
			}
			if t.IsEnd() {
				extracted, err := sink.Extract(state)
				if err != nil {
					return err
				}
				b = extracted
				tail = Empty[A]()
				return nil
			}
			res, err := sink.Step(gctx, state, Chunk[A]{t.Value()})
			if err != nil {
				return err
			}
			if res.IsDone() {
				extracted, err := sink.Extract(res.state)
				if err != nil {
					return err
				}
				b = extracted
				tail = Concat(FromChunk(res.leftover), func() Stream[A] { return FromQueueTake(q) })
				return nil
			}
			state = res.state
		}
	}()

	if runErr != nil {
		cancel()
		_ = eg.Wait()
		return runErr
	}

	err := use(ctx, b, tail)

	cancel()
	waitErr := eg.Wait()
	if err == nil && waitErr != nil && !errors.Is(waitErr, context.Canceled) {
		err = waitErr
	}
	return err
}

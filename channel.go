package weir

import (
	"context"
	"time"
)

// FromChannel wraps an existing channel as a Stream, ending when ch is
// closed. Useful for bridging code that already communicates over plain
// channels into the fold protocol without going through a Queue.
func FromChannel[A any](ch <-chan A) Stream[A] {
	return Stream[A]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, A) (rawStep, error)) (rawStep, error) {
			cur := rawCont(s0)
			for {
				select {
				case <-ctx.Done():
					return rawStep{}, ctx.Err()
				case a, ok := <-ch:
					if !ok {
						return cur, nil
					}
					next, err := step(ctx, cur.s, a)
					if err != nil {
						return rawStep{}, err
					}
					cur = next
					if cur.stop {
						return cur, nil
					}
				}
			}
		},
	}
}

// BatchTimeout groups elements of s into chunks of at most maxSize,
// flushing whatever has accumulated whenever d elapses since the first
// element of the current batch arrived, whichever comes first. A batch is
// never empty: the timer only flushes when there is something pending.
func BatchTimeout[A any](s Stream[A], maxSize int, d time.Duration) Stream[Chunk[A]] {
	return Stream[Chunk[A]]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, Chunk[A]) (rawStep, error)) (rawStep, error) {
			cur := rawCont(s0)
			err := ToQueue(ctx, s, maxSize, func(ctx context.Context, q *Queue[Take[A]]) error {
				type taken struct {
					t   Take[A]
					err error
				}
				pull := func(ctx context.Context) <-chan taken {
					ch := make(chan taken, 1)
					go func() {
						t, err := q.Take(ctx)
						ch <- taken{t: t, err: err}
					}()
					return ch
				}

				batch := make(Chunk[A], 0, maxSize)
				var timer *time.Timer
				var timerC <-chan time.Time

				stopTimer := func() {
					if timer != nil {
						timer.Stop()
						timer = nil
					}
					timerC = nil
				}
				defer stopTimer()

				flush := func() error {
					if len(batch) == 0 {
						return nil
					}
					next, err := step(ctx, cur.s, append(Chunk[A](nil), batch...))
					batch = batch[:0]
					stopTimer()
					if err != nil {
						return err
					}
					cur = next
					return nil
				}

				next := pull(ctx)
				for {
					if timerC == nil && len(batch) > 0 {
						timer = time.NewTimer(d)
						timerC = timer.C
					}
					select {
					case <-ctx.Done():
						return ctx.Err()
					case <-timerC:
						if err := flush(); err != nil {
							return err
						}
						if cur.stop {
							return nil
						}
						continue
					case r := <-next:
						if r.err != nil {
							return r.err
						}
						t := r.t
						if t.IsFail() {
							return t.Err()
						}
						if t.IsEnd() {
							return flush()
						}
						batch = append(batch, t.Value())
						if cur.stop {
							return nil
						}
						if len(batch) >= maxSize {
							if err := flush(); err != nil {
								return err
							}
							if cur.stop {
								return nil
							}
						}
						next = pull(ctx)
					}
				}
			})
			if err != nil {
				return rawStep{}, err
			}
			return cur, nil
		},
	}
}

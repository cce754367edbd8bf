package weir

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrQueueClosed is returned by Offer/Take once a Queue has been closed.
var ErrQueueClosed = errors.New("weir: queue closed")

// Queue is a bounded asynchronous FIFO: Offer may suspend when full, Take
// suspends when empty. It is the stand-in this library uses for the
// effect runtime's Queue[A] collaborator, backed by a buffered channel.
type Queue[A any] struct {
	ch     chan A
	closed chan struct{}
	once   sync.Once
}

// NewQueue creates a Queue with the given buffer capacity.
func NewQueue[A any](capacity int) *Queue[A] {
	if capacity < 0 {
		capacity = 0
	}
	return &Queue[A]{
		ch:     make(chan A, capacity),
		closed: make(chan struct{}),
	}
}

// Offer enqueues a, suspending if the queue is full. It returns an error
// if ctx is done or the queue has been closed first.
func (q *Queue[A]) Offer(ctx context.Context, a A) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-q.closed:
		return ErrQueueClosed
	default:
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-q.closed:
		return ErrQueueClosed
	case q.ch <- a:
		return nil
	}
}

// Take dequeues the next value, suspending while the queue is empty.
func (q *Queue[A]) Take(ctx context.Context) (A, error) {
	select {
	case <-ctx.Done():
		var zero A
		return zero, ctx.Err()
	case a := <-q.ch:
		return a, nil
	}
}

// Close marks the queue inert: every pending and future Offer fails with
// ErrQueueClosed. Safe to call more than once.
func (q *Queue[A]) Close() {
	q.once.Do(func() { close(q.closed) })
}

// Promise is a single-assignment cell: Succeed may be called at most
// once, Await suspends until a value has been set or ctx is done.
type Promise[A any] struct {
	ch   chan A
	once sync.Once
}

// NewPromise creates an unset Promise.
func NewPromise[A any]() *Promise[A] {
	return &Promise[A]{ch: make(chan A, 1)}
}

// Succeed completes the promise with a, returning true if this call was
// the one that set it.
func (p *Promise[A]) Succeed(a A) bool {
	set := false
	p.once.Do(func() {
		p.ch <- a
		set = true
	})
	return set
}

// Await suspends until the promise is completed or ctx is done.
func (p *Promise[A]) Await(ctx context.Context) (A, error) {
	select {
	case <-ctx.Done():
		var zero A
		return zero, ctx.Err()
	case a := <-p.ch:
		return a, nil
	}
}

// forkProducer runs s to completion on its own fiber, translating every
// element, failure, and end-of-stream signal into offer(Take). Per the
// End.forever idiom (spec §9), it keeps re-offering TakeEnd after the
// source completes rather than offering it once, so a late reader that
// arrives after completion observes End instead of suspending forever.
// ctx cancellation (scope exit, consumer Stop, or failure elsewhere)
// interrupts the offer loop.
func forkProducer[A any](ctx context.Context, eg *errgroup.Group, s Stream[A], offer func(context.Context, Take[A]) error) {
	eg.Go(func() error {
		err := Foreach(ctx, s, func(ctx context.Context, a A) error {
			return offer(ctx, TakeValue(a))
		})
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				_ = offer(ctx, TakeFail[A](err))
			}
			return nil
		}
		for {
			if ferr := offer(ctx, TakeEnd[A]()); ferr != nil {
				return nil
			}
		}
	})
}

// ToQueue runs s on a background fiber that copies every element into a
// bounded queue of Take, and passes that queue to use for the duration of
// the scope. On return from use (normal or error), the producer fiber is
// interrupted and the queue becomes inert - the scoped-resource pattern
// every concurrent combinator in this package builds on.
func ToQueue[A any](ctx context.Context, s Stream[A], capacity int, use func(context.Context, *Queue[Take[A]]) error) error {
	q := NewQueue[Take[A]](capacity)
	fctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, gctx := errgroup.WithContext(fctx)
	forkProducer[A](gctx, eg, s, q.Offer)

	err := use(ctx, q)
	cancel()
	q.Close()
	if waitErr := eg.Wait(); err == nil && waitErr != nil && !errors.Is(waitErr, context.Canceled) {
		err = waitErr
	}
	return err
}

// FromQueueTake bridges a Take queue back into a Stream: Value elements
// are emitted, End ends the stream normally, Fail aborts the fold with
// that error.
func FromQueueTake[A any](q *Queue[Take[A]]) Stream[A] {
	return Stream[A]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, A) (rawStep, error)) (rawStep, error) {
			cur := rawCont(s0)
			for {
				t, err := q.Take(ctx)
				if err != nil {
					return rawStep{}, err
				}
				if t.IsFail() {
					return rawStep{}, t.Err()
				}
				if t.IsEnd() {
					return cur, nil
				}
				cur, err = step(ctx, cur.s, t.Value())
				if err != nil {
					return rawStep{}, err
				}
				if cur.stop {
					return cur, nil
				}
			}
		},
	}
}

// FromQueue is the infinite stream of values taken from q, one per pull,
// built from UnfoldM exactly as spec §4.6 defines it.
func FromQueue[A any](q *Queue[A]) Stream[A] {
	return UnfoldM(struct{}{}, func(ctx context.Context, _ struct{}) (Option[Unfolded[struct{}, A]], error) {
		a, err := q.Take(ctx)
		if err != nil {
			return Option[Unfolded[struct{}, A]]{}, err
		}
		return Some(Unfolded[struct{}, A]{Value: a, Next: struct{}{}}), nil
	})
}

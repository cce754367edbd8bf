package weir

import "context"

// Empty is the stream with no elements.
func Empty[A any]() Stream[A] {
	return NewStreamPure(func(s0 any, _ func(any, A) rawStep) rawStep {
		return rawCont(s0)
	}).Stream
}

// Point is the single-element stream containing a.
func Point[A any](a A) Stream[A] {
	return PointPure(a).Stream
}

// PointPure is Point, exposing the StreamPure fast path.
func PointPure[A any](a A) StreamPure[A] {
	return NewStreamPure(func(s0 any, step func(any, A) rawStep) rawStep {
		return step(s0, a)
	})
}

// EmptyPure is Empty, exposing the StreamPure fast path.
func EmptyPure[A any]() StreamPure[A] {
	return NewStreamPure(func(s0 any, _ func(any, A) rawStep) rawStep {
		return rawCont(s0)
	})
}

// FromSlice builds a stream from the given values, synchronously.
func FromSlice[A any](values ...A) Stream[A] {
	return FromSlicePure(values...).Stream
}

// FromSlicePure is FromSlice, exposing the StreamPure fast path.
func FromSlicePure[A any](values ...A) StreamPure[A] {
	return NewStreamPure(func(s0 any, step func(any, A) rawStep) rawStep {
		cur := rawCont(s0)
		for _, a := range values {
			cur = step(cur.s, a)
			if cur.stop {
				return cur
			}
		}
		return cur
	})
}

// Chunk is a small indexed buffer, as produced by a Sink's leftovers or
// consumed by FromChunk.
type Chunk[A any] []A

// FromChunk traverses a Chunk by index.
func FromChunk[A any](c Chunk[A]) Stream[A] {
	return FromChunkPure(c).Stream
}

// FromChunkPure is FromChunk, exposing the StreamPure fast path.
func FromChunkPure[A any](c Chunk[A]) StreamPure[A] {
	return NewStreamPure(func(s0 any, step func(any, A) rawStep) rawStep {
		cur := rawCont(s0)
		for _, a := range c {
			cur = step(cur.s, a)
			if cur.stop {
				return cur
			}
		}
		return cur
	})
}

// IO is an effectful computation yielding an A or a failure, the minimal
// stand-in this library uses for the external effect runtime's IO[E,A].
type IO[A any] func(context.Context) (A, error)

// Lift awaits io once and passes its result through step exactly once.
func Lift[A any](io IO[A]) Stream[A] {
	return Stream[A]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, A) (rawStep, error)) (rawStep, error) {
			a, err := io(ctx)
			if err != nil {
				return rawStep{}, err
			}
			return step(ctx, s0, a)
		},
	}
}

// Unwrap awaits a stream-producing effect and delegates folding to it.
func Unwrap[A any](io IO[Stream[A]]) Stream[A] {
	return Stream[A]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, A) (rawStep, error)) (rawStep, error) {
			s, err := io(ctx)
			if err != nil {
				return rawStep{}, err
			}
			return s.fold(ctx, s0, step)
		},
	}
}

// Flatten is FlatMap with the identity function: a stream of streams
// becomes the concatenation of its elements.
func Flatten[A any](ss Stream[Stream[A]]) Stream[A] {
	return FlatMap(ss, func(s Stream[A]) Stream[A] { return s })
}

// Unfolded is the (value, next-seed) pair returned by an Unfold/UnfoldM
// step function.
type Unfolded[S, A any] struct {
	Value A
	Next  S
}

// UnfoldM is the effectful corecursion constructor: repeatedly calls f on
// the current seed; None ends the stream, Some(a, next) emits a and
// continues with next.
func UnfoldM[S, A any](s0 S, f func(context.Context, S) (Option[Unfolded[S, A]], error)) Stream[A] {
	return Stream[A]{
		fold: func(ctx context.Context, out0 any, step func(context.Context, any, A) (rawStep, error)) (rawStep, error) {
			cur := s0
			out := rawCont(out0)
			for {
				if err := ctx.Err(); err != nil {
					return rawStep{}, err
				}
				next, err := f(ctx, cur)
				if err != nil {
					return rawStep{}, err
				}
				pair, ok := next.Get()
				if !ok {
					return out, nil
				}
				out, err = step(ctx, out.s, pair.Value)
				if err != nil {
					return rawStep{}, err
				}
				if out.stop {
					return out, nil
				}
				cur = pair.Next
			}
		},
	}
}

// Unfold is the pure corecursion constructor: standard unfold, None ends
// the stream.
func Unfold[S, A any](s0 S, f func(S) Option[Unfolded[S, A]]) Stream[A] {
	return UnfoldPure(s0, f).Stream
}

// UnfoldPure is Unfold, exposing the StreamPure fast path.
func UnfoldPure[S, A any](s0 S, f func(S) Option[Unfolded[S, A]]) StreamPure[A] {
	return NewStreamPure(func(out0 any, step func(any, A) rawStep) rawStep {
		cur := s0
		out := rawCont(out0)
		for {
			next := f(cur)
			pair, ok := next.Get()
			if !ok {
				return out
			}
			out = step(out.s, pair.Value)
			if out.stop {
				return out
			}
			cur = pair.Next
		}
	})
}

// Range is the inclusive integer range [min, max], built via Unfold.
func Range(min, max int) Stream[int] {
	return RangePure(min, max).Stream
}

// RangePure is Range, exposing the StreamPure fast path.
func RangePure(min, max int) StreamPure[int] {
	return UnfoldPure(min, func(i int) Option[Unfolded[int, int]] {
		if i > max {
			return None[Unfolded[int, int]]()
		}
		return Some(Unfolded[int, int]{Value: i, Next: i + 1})
	})
}

// Bracket is a scoped acquisition: acquire runs once, read is pulled
// repeatedly (None ends the stream), and release is guaranteed to run on
// every exit - Stop, source exhaustion, failure, or context cancellation.
func Bracket[R, A any](acquire IO[R], release func(context.Context, R) error, read func(context.Context, R) (Option[A], error)) Stream[A] {
	return Stream[A]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, A) (rawStep, error)) (rawStep, error) {
			r, err := acquire(ctx)
			if err != nil {
				return rawStep{}, err
			}
			defer func() { _ = release(ctx, r) }()

			out := rawCont(s0)
			for {
				if err := ctx.Err(); err != nil {
					return rawStep{}, err
				}
				next, err := read(ctx, r)
				if err != nil {
					return rawStep{}, err
				}
				a, ok := next.Get()
				if !ok {
					return out, nil
				}
				out, err = step(ctx, out.s, a)
				if err != nil {
					return rawStep{}, err
				}
				if out.stop {
					return out, nil
				}
			}
		},
	}
}

// Managed is a scoped resource with guaranteed release on every exit,
// modeling the effect runtime's Managed[E,A] collaborator.
type Managed[R any] struct {
	acquire func(context.Context) (R, error)
	release func(context.Context, R) error
}

// NewManaged builds a Managed resource from its acquire/release pair.
func NewManaged[R any](acquire func(context.Context) (R, error), release func(context.Context, R) error) Managed[R] {
	return Managed[R]{acquire: acquire, release: release}
}

// Use runs body with the acquired resource, guaranteeing release
// afterwards regardless of how body exits.
func (m Managed[R]) Use(ctx context.Context, body func(context.Context, R) error) error {
	r, err := m.acquire(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = m.release(ctx, r) }()
	return body(ctx, r)
}

// ManagedStream builds a Stream from a Managed resource the same way
// Bracket does, for callers that already hold a Managed value.
func ManagedStream[R, A any](m Managed[R], read func(context.Context, R) (Option[A], error)) Stream[A] {
	return Bracket(m.acquire, m.release, read)
}

package weir

import "context"

// foldPureFunc is the erased shape of a pure fold: synchronous, no error
// channel, no suspension.
type foldPureFunc[A any] func(s0 any, step func(any, A) rawStep) rawStep

// StreamPure refines Stream with a synchronous fold variant, foldPure,
// guaranteed to produce the same element sequence as Fold (with the
// effectful step wrapping a now/pure constructor), with no suspension and
// no failure. Consumers that only need a pure producer (fromSlice, range,
// unfold, ...) can fold it directly and skip the effect runtime entirely -
// useful for tests and for optimizing hot, allocation-sensitive paths.
type StreamPure[A any] struct {
	Stream[A]
	foldPure foldPureFunc[A]
}

// FoldPure drives a StreamPure synchronously. It must produce the same
// Step sequence as Fold(ctx, s, s0, step) would, for any ctx, given a step
// function that never fails.
func FoldPure[S, A any](s StreamPure[A], s0 S, step func(S, A) Step[S]) Step[S] {
	r := s.foldPure(s0, func(carrier any, a A) rawStep {
		st := step(carrier.(S), a)
		return rawStep{stop: st.stop, s: st.s}
	})
	return Step[S]{stop: r.stop, s: r.s.(S)}
}

// asStream derives the effectful Stream.fold wrapper shared by every pure
// constructor: it replays foldPure's result through the effectful step
// function, which never suspends because the underlying computation is
// synchronous. ctx cancellation is still observed between elements so a
// pure producer composed into a larger pipeline remains cancellable.
func asStream[A any](foldPure foldPureFunc[A]) foldFunc[A] {
	return func(ctx context.Context, s0 any, step func(context.Context, any, A) (rawStep, error)) (rawStep, error) {
		var outErr error
		r := foldPure(s0, func(carrier any, a A) rawStep {
			if err := ctx.Err(); err != nil {
				outErr = err
				return rawStep{stop: true, s: carrier}
			}
			next, err := step(ctx, carrier, a)
			if err != nil {
				outErr = err
				return rawStep{stop: true, s: carrier}
			}
			return next
		})
		if outErr != nil {
			return rawStep{}, outErr
		}
		return r, nil
	}
}

// NewStreamPure builds a StreamPure from its synchronous fold.
func NewStreamPure[A any](foldPure foldPureFunc[A]) StreamPure[A] {
	return StreamPure[A]{
		Stream:   Stream[A]{fold: asStream(foldPure)},
		foldPure: foldPure,
	}
}

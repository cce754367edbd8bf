package weir

import "context"

// Sink is an incremental consumer: an initial state, a step that folds one
// input chunk at a time (signalling Cont to keep accumulating or Done with
// any unconsumed leftover), and an extract that produces the final result
// from a Done state.
type Sink[S, A, B any] struct {
	Initial S
	Step    func(context.Context, S, Chunk[A]) (SinkResult[S, A], error)
	Extract func(S) (B, error)
}

// SinkResult is a Sink.Step outcome: either Cont(state) to keep
// accumulating, or Done(state, leftover) once the sink has enough input.
type SinkResult[S, A any] struct {
	done     bool
	state    S
	leftover Chunk[A]
}

// SinkCont signals the sink should keep accumulating with the given state.
func SinkCont[S, A any](state S) SinkResult[S, A] {
	return SinkResult[S, A]{state: state}
}

// SinkDone signals the sink is ready to extract, with any input it did
// not consume returned as leftover.
func SinkDone[S, A any](state S, leftover Chunk[A]) SinkResult[S, A] {
	return SinkResult[S, A]{done: true, state: state, leftover: leftover}
}

// IsCont reports whether the sink wants more input.
func (r SinkResult[S, A]) IsCont() bool { return !r.done }

// IsDone reports whether the sink is ready to extract.
func (r SinkResult[S, A]) IsDone() bool { return r.done }

// Run folds s through sink until the sink signals Done or the stream is
// exhausted, then extracts the result. Folding uses FoldLazy with
// cont = Sink.Step.IsCont, so it stops pulling upstream elements as soon
// as the sink has enough.
func Run[S, A, B any](ctx context.Context, s Stream[A], sink Sink[S, A, B]) (B, error) {
	final, err := FoldLazy(ctx, s, SinkResult[S, A]{state: sink.Initial}, func(r SinkResult[S, A]) bool {
		return r.IsCont()
	}, func(ctx context.Context, r SinkResult[S, A], a A) (SinkResult[S, A], error) {
		return sink.Step(ctx, r.state, Chunk[A]{a})
	})
	if err != nil {
		var zero B
		return zero, err
	}
	return sink.Extract(final.state)
}

// ListSink accumulates every element into a slice. It is the sink behind
// the "run(toList)" idiom used throughout the testable-properties scenarios.
func ListSink[A any]() Sink[[]A, A, []A] {
	return Sink[[]A, A, []A]{
		Initial: nil,
		Step: func(_ context.Context, acc []A, c Chunk[A]) (SinkResult[[]A, A], error) {
			return SinkCont[[]A, A](append(acc, c...)), nil
		},
		Extract: func(acc []A) ([]A, error) { return acc, nil },
	}
}

// CountSink counts the number of elements.
func CountSink[A any]() Sink[int64, A, int64] {
	return Sink[int64, A, int64]{
		Initial: 0,
		Step: func(_ context.Context, n int64, c Chunk[A]) (SinkResult[int64, A], error) {
			return SinkCont[int64, A](n + int64(len(c))), nil
		},
		Extract: func(n int64) (int64, error) { return n, nil },
	}
}

// CollectSink accumulates exactly n elements, then signals Done, leaving
// any additional input in a single-element chunk as leftover. It is the
// sink used to demonstrate Transduce's "k elements per output" contract.
func CollectSink[A any](n int) Sink[[]A, A, []A] {
	return Sink[[]A, A, []A]{
		Initial: make([]A, 0, n),
		Step: func(_ context.Context, acc []A, c Chunk[A]) (SinkResult[[]A, A], error) {
			for i, a := range c {
				if len(acc) == n {
					return SinkDone[[]A, A](acc, Chunk[A](c[i:])), nil
				}
				acc = append(acc, a)
			}
			if len(acc) == n {
				return SinkDone[[]A, A](acc, nil), nil
			}
			return SinkCont[[]A, A](acc), nil
		},
		Extract: func(acc []A) ([]A, error) { return acc, nil },
	}
}

type transduceState[S, A any] struct {
	sinkState S
	pending   []A
	dirty     bool
}

type transduceCarrier[S, A any] struct {
	ts    transduceState[S, A]
	inner any
}

// Transduce runs sink repeatedly over s, emitting one output element per
// sink completion. For each upstream element, it is fed to the sink as a
// one-element chunk; while the sink signals Cont, input accumulates. Once
// Done, the sink is extracted, the result emitted downstream, and a fresh
// sink instance is seeded with any leftover before continuing.
//
// Upstream exhaustion ends transduction without a final extract: an
// in-progress sink's partially accumulated state is discarded. See
// TransduceFlush for a variant that flushes the tail.
func Transduce[S, A, C any](s Stream[A], sink Sink[S, A, C]) Stream[C] {
	return transduce(s, sink, false)
}

// TransduceFlush is Transduce, but performs one additional Extract on
// upstream exhaustion if the sink has consumed any input since its last
// Done, emitting that final, possibly partial, result downstream.
func TransduceFlush[S, A, C any](s Stream[A], sink Sink[S, A, C]) Stream[C] {
	return transduce(s, sink, true)
}

func transduce[S, A, C any](s Stream[A], sink Sink[S, A, C], flush bool) Stream[C] {
	return Stream[C]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, C) (rawStep, error)) (rawStep, error) {
			init := transduceCarrier[S, A]{ts: transduceState[S, A]{sinkState: sink.Initial}, inner: s0}
			r, err := s.fold(ctx, init, func(ctx context.Context, carrier any, a A) (rawStep, error) {
				tc := carrier.(transduceCarrier[S, A])
				tc.ts.pending = append(tc.ts.pending, a)
				for len(tc.ts.pending) > 0 {
					head := tc.ts.pending[0]
					res, err := sink.Step(ctx, tc.ts.sinkState, Chunk[A]{head})
					if err != nil {
						return rawStep{}, err
					}
					if res.IsCont() {
						tc.ts.sinkState = res.state
						tc.ts.pending = tc.ts.pending[1:]
						tc.ts.dirty = true
						break
					}

					c, err := sink.Extract(res.state)
					if err != nil {
						return rawStep{}, err
					}
					next, err := step(ctx, tc.inner, c)
					if err != nil {
						return rawStep{}, err
					}
					if next.stop {
						return rawStop(transduceCarrier[S, A]{ts: tc.ts, inner: next.s}), nil
					}
					tc.inner = next.s
					tc.ts.sinkState = sink.Initial
					tc.ts.dirty = false
					rest := tc.ts.pending[1:]
					tc.ts.pending = append(append([]A(nil), res.leftover...), rest...)
				}
				return rawCont(tc), nil
			})
			if err != nil {
				return rawStep{}, err
			}
			if r.stop {
				return rawStep{stop: true, s: r.s.(transduceCarrier[S, A]).inner}, nil
			}

			tc := r.s.(transduceCarrier[S, A])
			if !flush || !tc.ts.dirty {
				return rawCont(tc.inner), nil
			}
			c, err := sink.Extract(tc.ts.sinkState)
			if err != nil {
				return rawStep{}, err
			}
			return step(ctx, tc.inner, c)
		},
	}
}

// Package weir is an effectful, pull-based stream combinator library.
//
// A Stream[A] describes a finite or infinite, possibly failing sequence of
// values of type A. Streams are composed declaratively (Map, Filter,
// FlatMap, Merge, Zip, Transduce, Repeat, Take, Drop, Scan, ...) and then run
// against a sink or a fold to obtain a result.
//
// Every combinator, from the simplest Map to the concurrent Merge/Zip
// bridges, is implemented in terms of a single primitive: an effectful fold
// with early-exit semantics (see fold.go). A Stream cannot be inspected
// except by folding it.
package weir

import "context"

// foldFunc is the erased shape of a Stream's primitive fold: given a seed
// carrier and a step function, drive the stream's elements through step in
// emission order, stopping as soon as step signals Stop, and return the
// final carrier. See step.go for why the carrier is erased to any.
type foldFunc[A any] func(ctx context.Context, s0 any, step func(context.Context, any, A) (rawStep, error)) (rawStep, error)

// Stream is an immutable description of an effectful element sequence. It
// answers exactly one request: fold me with this seed and this step
// function. Every other operation on a Stream, including every combinator
// in this package, is built on top of that one request.
type Stream[A any] struct {
	fold foldFunc[A]
}

// Fold drives s with seed s0. For each produced element a, it invokes
// step(current, a); the returned Step determines whether folding
// continues or stops early. Resource acquisitions made by s to emit
// elements are released on every exit: early Stop, source exhaustion,
// failure, or context cancellation - that guarantee is made by each
// constructor and concurrent combinator individually, not by Fold itself.
func Fold[S, A any](ctx context.Context, s Stream[A], s0 S, step func(context.Context, S, A) (Step[S], error)) (Step[S], error) {
	r, err := s.fold(ctx, s0, func(ctx context.Context, carrier any, a A) (rawStep, error) {
		st, err := step(ctx, carrier.(S), a)
		if err != nil {
			return rawStep{}, err
		}
		return rawStep{stop: st.stop, s: st.s}, nil
	})
	if err != nil {
		var zero S
		return Step[S]{s: zero}, err
	}
	return Step[S]{stop: r.stop, s: r.s.(S)}, nil
}

// FoldLazy is the early-exit variant of Fold: emission continues only
// while cont(current) holds. The moment cont returns false, emission
// stops and the current carrier is returned. It is derived from Fold by
// wrapping step to return Stop as soon as cont fails, either before or
// immediately after consuming an element.
func FoldLazy[S, A any](ctx context.Context, s Stream[A], s0 S, cont func(S) bool, step func(context.Context, S, A) (S, error)) (S, error) {
	st, err := Fold(ctx, s, s0, func(ctx context.Context, carrier S, a A) (Step[S], error) {
		if !cont(carrier) {
			return Stop(carrier), nil
		}
		ns, err := step(ctx, carrier, a)
		if err != nil {
			var zero S
			return Step[S]{s: zero}, err
		}
		if !cont(ns) {
			return Stop(ns), nil
		}
		return Cont(ns), nil
	})
	if err != nil {
		var zero S
		return zero, err
	}
	return st.Extract(), nil
}

// FoldLeft is the non-failing, pure-combine fold: it is FoldLazy with
// cont always true, i.e. it always runs to source exhaustion.
func FoldLeft[S, A any](ctx context.Context, s Stream[A], s0 S, f func(S, A) S) (S, error) {
	return FoldLazy(ctx, s, s0, func(S) bool { return true }, func(_ context.Context, acc S, a A) (S, error) {
		return f(acc, a), nil
	})
}

package weir

import "context"

// MapM transforms a Stream[A] into a Stream[B] via an effectful function,
// emitting f(a) for every upstream element in order.
func MapM[A, B any](s Stream[A], f func(context.Context, A) (B, error)) Stream[B] {
	return Stream[B]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, B) (rawStep, error)) (rawStep, error) {
			return s.fold(ctx, s0, func(ctx context.Context, carrier any, a A) (rawStep, error) {
				b, err := f(ctx, a)
				if err != nil {
					return rawStep{}, err
				}
				return step(ctx, carrier, b)
			})
		},
	}
}

// Map transforms a Stream[A] into a Stream[B], emitting f(a) for every
// upstream element in order. Total.
func Map[A, B any](s Stream[A], f func(A) B) Stream[B] {
	return MapM(s, func(_ context.Context, a A) (B, error) { return f(a), nil })
}

// Filter emits only the upstream elements for which p(a) is true.
func Filter[A any](s Stream[A], p func(A) bool) Stream[A] {
	return Stream[A]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, A) (rawStep, error)) (rawStep, error) {
			return s.fold(ctx, s0, func(ctx context.Context, carrier any, a A) (rawStep, error) {
				if !p(a) {
					return rawCont(carrier), nil
				}
				return step(ctx, carrier, a)
			})
		},
	}
}

// FilterNot emits only the upstream elements for which p(a) is false.
func FilterNot[A any](s Stream[A], p func(A) bool) Stream[A] {
	return Filter(s, func(a A) bool { return !p(a) })
}

// Collect acts as Filter+Map with a single partial projection: pf returns
// the mapped value and whether the element should be included.
func Collect[A, B any](s Stream[A], pf func(A) (B, bool)) Stream[B] {
	return Stream[B]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, B) (rawStep, error)) (rawStep, error) {
			return s.fold(ctx, s0, func(ctx context.Context, carrier any, a A) (rawStep, error) {
				b, ok := pf(a)
				if !ok {
					return rawCont(carrier), nil
				}
				return step(ctx, carrier, b)
			})
		},
	}
}

// MapConcat emits f(a) for each upstream element, in order, honoring Stop
// between inner elements.
func MapConcat[A, B any](s Stream[A], f func(A) []B) Stream[B] {
	return Stream[B]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, B) (rawStep, error)) (rawStep, error) {
			return s.fold(ctx, s0, func(ctx context.Context, carrier any, a A) (rawStep, error) {
				cur := rawCont(carrier)
				for _, b := range f(a) {
					var err error
					cur, err = step(ctx, cur.s, b)
					if err != nil {
						return rawStep{}, err
					}
					if cur.stop {
						return cur, nil
					}
				}
				return cur, nil
			})
		},
	}
}

// FlatMap concatenates f(a) for every upstream element. Inner streams run
// to completion or to their own Stop.
func FlatMap[A, B any](s Stream[A], f func(A) Stream[B]) Stream[B] {
	return Stream[B]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, B) (rawStep, error)) (rawStep, error) {
			return s.fold(ctx, s0, func(ctx context.Context, carrier any, a A) (rawStep, error) {
				inner := f(a)
				return inner.fold(ctx, carrier, step)
			})
		},
	}
}

// Concat emits the elements of a, then the elements of that(). A Stop in
// a short-circuits that entirely. that is evaluated lazily, only once a's
// fold completes without stopping.
func Concat[A any](a Stream[A], that func() Stream[A]) Stream[A] {
	return Stream[A]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, A) (rawStep, error)) (rawStep, error) {
			r, err := a.fold(ctx, s0, step)
			if err != nil || r.stop {
				return r, err
			}
			b := that()
			return b.fold(ctx, r.s, step)
		},
	}
}

type dropWhileState struct {
	dropping bool
	inner    any
}

// DropWhile threads a "still dropping" flag: once p(a) is false for some
// a, every later element passes through, even if p would hold again.
func DropWhile[A any](s Stream[A], p func(A) bool) Stream[A] {
	return Stream[A]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, A) (rawStep, error)) (rawStep, error) {
			r, err := s.fold(ctx, dropWhileState{dropping: true, inner: s0}, func(ctx context.Context, carrier any, a A) (rawStep, error) {
				ds := carrier.(dropWhileState)
				if ds.dropping && p(a) {
					return rawCont(dropWhileState{dropping: true, inner: ds.inner}), nil
				}
				next, err := step(ctx, ds.inner, a)
				if err != nil {
					return rawStep{}, err
				}
				return rawStep{stop: next.stop, s: dropWhileState{dropping: false, inner: next.s}}, nil
			})
			if err != nil {
				return rawStep{}, err
			}
			return rawStep{stop: r.stop, s: r.s.(dropWhileState).inner}, nil
		},
	}
}

// TakeWhile emits upstream elements while p(a) holds. On the first
// element with !p(a), it returns Stop without invoking step for that
// element.
func TakeWhile[A any](s Stream[A], p func(A) bool) Stream[A] {
	return Stream[A]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, A) (rawStep, error)) (rawStep, error) {
			return s.fold(ctx, s0, func(ctx context.Context, carrier any, a A) (rawStep, error) {
				if !p(a) {
					return rawStop(carrier), nil
				}
				return step(ctx, carrier, a)
			})
		},
	}
}

// Indexed pairs a zero-based position with a value, as produced by
// ZipWithIndex.
type Indexed[A any] struct {
	Index int64
	Value A
}

type indexState struct {
	idx   int64
	inner any
}

// ZipWithIndex emits (a, i) with i starting at 0 and incrementing after
// each emission.
func ZipWithIndex[A any](s Stream[A]) Stream[Indexed[A]] {
	return Stream[Indexed[A]]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, Indexed[A]) (rawStep, error)) (rawStep, error) {
			r, err := s.fold(ctx, indexState{inner: s0}, func(ctx context.Context, carrier any, a A) (rawStep, error) {
				is := carrier.(indexState)
				next, err := step(ctx, is.inner, Indexed[A]{Index: is.idx, Value: a})
				if err != nil {
					return rawStep{}, err
				}
				return rawStep{stop: next.stop, s: indexState{idx: is.idx + 1, inner: next.s}}, nil
			})
			if err != nil {
				return rawStep{}, err
			}
			return rawStep{stop: r.stop, s: r.s.(indexState).inner}, nil
		},
	}
}

// Take emits the first n elements. n <= 0 yields an empty stream.
//
// The source this was distilled from defines take(n) via
// takeWhile(index == n-1), which taken literally would emit only the
// single element at index n-1. That is inconsistent with every
// documented use (range(0,9).take(3) == [0,1,2]) and is implemented here
// as the evidently intended semantics: the first n elements, via
// zipWithIndex.takeWhile(index < n).
func Take[A any](s Stream[A], n int) Stream[A] {
	if n <= 0 {
		return Empty[A]()
	}
	indexed := ZipWithIndex(s)
	limited := TakeWhile(indexed, func(iv Indexed[A]) bool { return iv.Index < int64(n) })
	return Map(limited, func(iv Indexed[A]) A { return iv.Value })
}

// Drop skips the first n elements. n <= 0 drops none.
func Drop[A any](s Stream[A], n int) Stream[A] {
	indexed := ZipWithIndex(s)
	filtered := Filter(indexed, func(iv Indexed[A]) bool { return iv.Index > int64(n-1) })
	return Map(filtered, func(iv Indexed[A]) A { return iv.Value })
}

type scanState struct {
	acc   any
	inner any
}

// ScanM is the effectful variant of Scan.
func ScanM[Acc, A, B any](s Stream[A], acc0 Acc, f func(context.Context, Acc, A) (Acc, B, error)) Stream[B] {
	return Stream[B]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, B) (rawStep, error)) (rawStep, error) {
			r, err := s.fold(ctx, scanState{acc: acc0, inner: s0}, func(ctx context.Context, carrier any, a A) (rawStep, error) {
				ss := carrier.(scanState)
				nacc, b, err := f(ctx, ss.acc.(Acc), a)
				if err != nil {
					return rawStep{}, err
				}
				next, err := step(ctx, ss.inner, b)
				if err != nil {
					return rawStep{}, err
				}
				return rawStep{stop: next.stop, s: scanState{acc: nacc, inner: next.s}}, nil
			})
			if err != nil {
				return rawStep{}, err
			}
			return rawStep{stop: r.stop, s: r.s.(scanState).inner}, nil
		},
	}
}

// Scan carries an accumulator s1, emitting b from (s1', b) = f(s1, a) for
// every upstream element.
func Scan[Acc, A, B any](s Stream[A], acc0 Acc, f func(Acc, A) (Acc, B)) Stream[B] {
	return ScanM(s, acc0, func(_ context.Context, acc Acc, a A) (Acc, B, error) {
		nacc, b := f(acc, a)
		return nacc, b, nil
	})
}

// Forever re-folds from the returned continuation seed indefinitely; a
// Stop from step terminates it. ctx cancellation between re-folds keeps
// an infinite Forever loop interruptible.
func Forever[A any](s Stream[A]) Stream[A] {
	return Stream[A]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, A) (rawStep, error)) (rawStep, error) {
			cur := s0
			for {
				if err := ctx.Err(); err != nil {
					return rawStep{}, err
				}
				r, err := s.fold(ctx, cur, step)
				if err != nil {
					return rawStep{}, err
				}
				if r.stop {
					return r, nil
				}
				cur = r.s
			}
		},
	}
}

// WithEffect runs g(a) for its side effect before each element is passed
// downstream.
func WithEffect[A any](s Stream[A], g func(context.Context, A) error) Stream[A] {
	return Stream[A]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, A) (rawStep, error)) (rawStep, error) {
			return s.fold(ctx, s0, func(ctx context.Context, carrier any, a A) (rawStep, error) {
				if err := g(ctx, a); err != nil {
					return rawStep{}, err
				}
				return step(ctx, carrier, a)
			})
		},
	}
}

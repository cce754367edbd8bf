//go:build go1.23

package weir

import (
	"context"
	"iter"
)

// FromSeq2 adapts a Go 1.23 value/error iterator into a Stream. A non-nil
// error from seq ends the fold with that error; ctx cancellation between
// elements does the same.
func FromSeq2[A any](seq iter.Seq2[A, error]) Stream[A] {
	return Stream[A]{
		fold: func(ctx context.Context, s0 any, step func(context.Context, any, A) (rawStep, error)) (rawStep, error) {
			cur := rawCont(s0)
			var outErr error
			seq(func(a A, seqErr error) bool {
				if seqErr != nil {
					outErr = seqErr
					return false
				}
				if err := ctx.Err(); err != nil {
					outErr = err
					return false
				}
				next, err := step(ctx, cur.s, a)
				if err != nil {
					outErr = err
					return false
				}
				cur = next
				return !cur.stop
			})
			if outErr != nil {
				return rawStep{}, outErr
			}
			return cur, nil
		},
	}
}

// FromSeq adapts a plain Go 1.23 value iterator into a Stream.
func FromSeq[A any](seq iter.Seq[A]) Stream[A] {
	return FromSeq2(func(yield func(A, error) bool) {
		seq(func(a A) bool {
			return yield(a, nil)
		})
	})
}

// All drives s to completion and exposes it as a Go 1.23 value/error
// iterator. A failure during the fold is surfaced as the error half of
// the final pair delivered to the range loop.
func All[A any](ctx context.Context, s Stream[A]) iter.Seq2[A, error] {
	return func(yield func(A, error) bool) {
		_, err := Fold(ctx, s, struct{}{}, func(ctx context.Context, _ struct{}, a A) (Step[struct{}], error) {
			if !yield(a, nil) {
				return Stop(struct{}{}), nil
			}
			return Cont(struct{}{}), nil
		})
		if err != nil {
			var zero A
			yield(zero, err)
		}
	}
}

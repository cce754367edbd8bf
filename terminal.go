package weir

import "context"

// Foreach drives s to completion, invoking f for every element. It never
// exits early; an error from f aborts the whole fold with that error. Use
// Foreach0 for a short-circuiting variant.
func Foreach[A any](ctx context.Context, s Stream[A], f func(context.Context, A) error) error {
	_, err := Fold(ctx, s, struct{}{}, func(ctx context.Context, _ struct{}, a A) (Step[struct{}], error) {
		if err := f(ctx, a); err != nil {
			return Step[struct{}]{}, err
		}
		return Cont(struct{}{}), nil
	})
	return err
}

// Foreach0 drives s, invoking f for every element until f returns
// (false, nil), at which point folding stops early without error.
func Foreach0[A any](ctx context.Context, s Stream[A], f func(context.Context, A) (bool, error)) error {
	_, err := Fold(ctx, s, struct{}{}, func(ctx context.Context, _ struct{}, a A) (Step[struct{}], error) {
		cont, err := f(ctx, a)
		if err != nil {
			return Step[struct{}]{}, err
		}
		if !cont {
			return Stop(struct{}{}), nil
		}
		return Cont(struct{}{}), nil
	})
	return err
}

// ToSlice drives s to completion and collects every element into a slice,
// in emission order.
func ToSlice[A any](ctx context.Context, s Stream[A]) ([]A, error) {
	return FoldLeft(ctx, s, []A(nil), func(acc []A, a A) []A {
		return append(acc, a)
	})
}

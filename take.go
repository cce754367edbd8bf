package weir

import "context"

// Take shuttles a per-element outcome through a queue for the concurrent
// combinators (merge, zip, joinWith, toQueue): a background fiber copies
// every upstream value, failure, or end-of-stream signal into a Take so a
// separate consumer fiber can read it off a channel.
type Take[A any] struct {
	kind takeKind
	v    A
	err  error
}

type takeKind uint8

const (
	takeValueKind takeKind = iota
	takeFailKind
	takeEndKind
)

// TakeValue wraps a produced element.
func TakeValue[A any](a A) Take[A] {
	return Take[A]{kind: takeValueKind, v: a}
}

// TakeFail wraps a failure. The producer fiber stops after offering it.
func TakeFail[A any](err error) Take[A] {
	return Take[A]{kind: takeFailKind, err: err}
}

// TakeEnd signals the source has no more elements.
func TakeEnd[A any]() Take[A] {
	return Take[A]{kind: takeEndKind}
}

// IsValue reports whether this Take carries a value.
func (t Take[A]) IsValue() bool { return t.kind == takeValueKind }

// IsFail reports whether this Take carries a failure.
func (t Take[A]) IsFail() bool { return t.kind == takeFailKind }

// IsEnd reports whether this Take signals end-of-stream.
func (t Take[A]) IsEnd() bool { return t.kind == takeEndKind }

// Value returns the wrapped value. Only meaningful when IsValue is true.
func (t Take[A]) Value() A { return t.v }

// Err returns the wrapped failure. Only meaningful when IsFail is true.
func (t Take[A]) Err() error { return t.err }

// TakeOption translates a Take-producing effect into an Option-producing
// one: End becomes None, Value becomes Some, and Fail aborts with that
// error.
func TakeOption[A any](ctx context.Context, take func(context.Context) (Take[A], error)) (Option[A], error) {
	t, err := take(ctx)
	if err != nil {
		return Option[A]{}, err
	}
	switch {
	case t.IsEnd():
		return None[A](), nil
	case t.IsFail():
		return Option[A]{}, t.Err()
	default:
		return Some(t.Value()), nil
	}
}

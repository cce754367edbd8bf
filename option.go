package weir

// Option is a value that may or may not be present. It is used across the
// library wherever a source can end: unfold's next-state function, zip's
// per-side elements once one side is exhausted, bracket's per-pull read.
type Option[A any] struct {
	ok bool
	v  A
}

// Some wraps a present value.
func Some[A any](a A) Option[A] {
	return Option[A]{ok: true, v: a}
}

// None is the absent value.
func None[A any]() Option[A] {
	return Option[A]{}
}

// IsSome reports whether a value is present.
func (o Option[A]) IsSome() bool { return o.ok }

// IsNone reports whether a value is absent.
func (o Option[A]) IsNone() bool { return !o.ok }

// Get returns the wrapped value and whether it was present.
func (o Option[A]) Get() (A, bool) { return o.v, o.ok }

// GetOrElse returns the wrapped value, or fallback if absent.
func (o Option[A]) GetOrElse(fallback A) A {
	if o.ok {
		return o.v
	}
	return fallback
}

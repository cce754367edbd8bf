package weir

// Either holds one of two typed values, used by MergeEither to tag each
// emitted element with the source it came from.
type Either[A, B any] struct {
	isRight bool
	left    A
	right   B
}

// LeftOf wraps a left value.
func LeftOf[A, B any](a A) Either[A, B] {
	return Either[A, B]{left: a}
}

// RightOf wraps a right value.
func RightOf[A, B any](b B) Either[A, B] {
	return Either[A, B]{isRight: true, right: b}
}

// IsLeft reports whether this is a left value.
func (e Either[A, B]) IsLeft() bool { return !e.isRight }

// IsRight reports whether this is a right value.
func (e Either[A, B]) IsRight() bool { return e.isRight }

// Left returns the left value and whether it was present.
func (e Either[A, B]) Left() (A, bool) { return e.left, !e.isRight }

// Right returns the right value and whether it was present.
func (e Either[A, B]) Right() (B, bool) { return e.right, e.isRight }

// Pair is an ordered pair of two values, as produced by Zip.
type Pair[A, B any] struct {
	First  A
	Second B
}

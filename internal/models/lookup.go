package models

// Lookup is the outcome of a resolution step: a found value or nothing.
// NotFound is a routine result, never an error.
type Lookup[T any] struct {
	value T
	found bool
}

// Found wraps a resolved value
func Found[T any](value T) Lookup[T] {
	return Lookup[T]{value: value, found: true}
}

// NotFound returns an empty lookup
func NotFound[T any]() Lookup[T] {
	return Lookup[T]{}
}

// Get returns the value and whether it was found
func (l Lookup[T]) Get() (T, bool) {
	return l.value, l.found
}

// IsFound reports whether the lookup holds a value
func (l Lookup[T]) IsFound() bool {
	return l.found
}

// OrElse returns the value, or fallback when nothing was found
func (l Lookup[T]) OrElse(fallback T) T {
	if l.found {
		return l.value
	}
	return fallback
}

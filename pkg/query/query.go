package query

import "github.com/pkg/errors"

// Filter returns the elements of s for which pred holds, in their original order.
func Filter[T any](s []T, pred func(T) bool) []T {
	result := make([]T, 0, len(s))
	for _, v := range s {
		if pred(v) {
			result = append(result, v)
		}
	}
	return result
}

// Map projects every element of s through fn. The result has the same length
// and order as s.
func Map[T any, R any](s []T, fn func(T) R) []R {
	result := make([]R, len(s))
	for i, v := range s {
		result[i] = fn(v)
	}
	return result
}

// SelectMany projects every element of s to zero or more results and flattens
// them, keeping outer order first and then the order fn produced.
func SelectMany[T any, R any](s []T, fn func(T) []R) []R {
	result := make([]R, 0, len(s))
	for _, v := range s {
		result = append(result, fn(v)...)
	}
	return result
}

// Take returns the first n elements of s, or all of them when s is shorter.
func Take[T any](s []T, n int) ([]T, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "take: count must not be negative, got %d", n)
	}
	if n > len(s) {
		n = len(s)
	}
	result := make([]T, n)
	copy(result, s[:n])
	return result, nil
}

// Skip returns the elements of s after the first n.
func Skip[T any](s []T, n int) ([]T, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "skip: count must not be negative, got %d", n)
	}
	if n > len(s) {
		n = len(s)
	}
	result := make([]T, len(s)-n)
	copy(result, s[n:])
	return result, nil
}

// Distinct removes repeated values, keeping the first occurrence of each.
func Distinct[T comparable](s []T) []T {
	return DistinctBy(s, func(v T) T { return v })
}

// DistinctBy removes elements whose key was already seen, keeping the first
// occurrence of each key.
func DistinctBy[T any, K comparable](s []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(s))
	result := make([]T, 0, len(s))
	for _, v := range s {
		k := key(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, v)
	}
	return result
}

// First returns the first element satisfying pred.
func First[T any](s []T, pred func(T) bool) (T, bool) {
	for _, v := range s {
		if pred(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Contains reports whether v is an element of s.
func Contains[T comparable](s []T, v T) bool {
	return Any(s, func(x T) bool { return x == v })
}

// All reports whether every element satisfies pred. It is true for an empty s.
func All[T any](s []T, pred func(T) bool) bool {
	for _, v := range s {
		if !pred(v) {
			return false
		}
	}
	return true
}

// Any reports whether at least one element satisfies pred. It is false for an empty s.
func Any[T any](s []T, pred func(T) bool) bool {
	for _, v := range s {
		if pred(v) {
			return true
		}
	}
	return false
}

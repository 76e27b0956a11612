package query

import (
	"cmp"

	"github.com/pkg/errors"
)

// Number is the set of types Sum and Average accept.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Count returns the number of elements in s.
func Count[T any](s []T) int {
	return len(s)
}

// CountFunc returns the number of elements satisfying pred.
func CountFunc[T any](s []T, pred func(T) bool) int {
	n := 0
	for _, v := range s {
		if pred(v) {
			n++
		}
	}
	return n
}

// Sum adds the selected values. It returns zero for an empty s.
func Sum[T any, N Number](s []T, sel func(T) N) N {
	var total N
	for _, v := range s {
		total += sel(v)
	}
	return total
}

// Average returns the arithmetic mean of the selected values.
func Average[T any, N Number](s []T, sel func(T) N) (float64, error) {
	if len(s) == 0 {
		return 0, errors.Wrap(ErrEmptyInput, "average")
	}
	var total float64
	for _, v := range s {
		total += float64(sel(v))
	}
	return total / float64(len(s)), nil
}

// Min returns the smallest selected value.
func Min[T any, K cmp.Ordered](s []T, sel func(T) K) (K, error) {
	v, err := MinFunc(s, sel, cmp.Compare[K])
	return v, errors.WithMessage(err, "min")
}

// Max returns the largest selected value.
func Max[T any, K cmp.Ordered](s []T, sel func(T) K) (K, error) {
	v, err := MaxFunc(s, sel, cmp.Compare[K])
	return v, errors.WithMessage(err, "max")
}

// MinFunc is Min for keys compared with compare.
func MinFunc[T any, K any](s []T, sel func(T) K, compare func(a, b K) int) (K, error) {
	return extreme(s, sel, func(a, b K) bool { return compare(a, b) < 0 })
}

// MaxFunc is Max for keys compared with compare.
func MaxFunc[T any, K any](s []T, sel func(T) K, compare func(a, b K) int) (K, error) {
	return extreme(s, sel, func(a, b K) bool { return compare(a, b) > 0 })
}

// extreme scans s for the best selected value. Ties keep the earliest element.
func extreme[T any, K any](s []T, sel func(T) K, better func(a, b K) bool) (K, error) {
	if len(s) == 0 {
		var zero K
		return zero, ErrEmptyInput
	}
	best := sel(s[0])
	for _, v := range s[1:] {
		if k := sel(v); better(k, best) {
			best = k
		}
	}
	return best, nil
}

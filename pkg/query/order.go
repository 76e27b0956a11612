package query

import (
	"cmp"
	"slices"
)

// Direction selects the sort order used by OrderBy.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// OrderBy returns a copy of s sorted by the extracted key. The sort is stable:
// elements with equal keys keep their relative order in either direction.
func OrderBy[T any, K cmp.Ordered](s []T, key func(T) K, dir Direction) []T {
	return OrderByFunc(s, key, cmp.Compare[K], dir)
}

// OrderByFunc is OrderBy for keys that are not cmp.Ordered, such as
// decimal.Decimal or time.Time. compare follows the cmp.Compare convention.
func OrderByFunc[T any, K any](s []T, key func(T) K, compare func(a, b K) int, dir Direction) []T {
	result := slices.Clone(s)
	if result == nil {
		result = []T{}
	}
	slices.SortStableFunc(result, func(a, b T) int {
		c := compare(key(a), key(b))
		if dir == Descending {
			return -c
		}
		return c
	})
	return result
}

// ThenBy chains comparators: the first non-zero result wins. It is used with
// OrderByFunc and an identity key to order by several keys.
func ThenBy[T any](comparators ...func(a, b T) int) func(a, b T) int {
	return func(a, b T) int {
		for _, c := range comparators {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return 0
	}
}

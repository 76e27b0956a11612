package query

// Join performs an inner equi-join. For every outer element, in order, it emits
// one result per inner element with an equal key, in inner order. Elements
// without a match on the other side are dropped.
func Join[O any, I any, K comparable, R any](
	outer []O,
	inner []I,
	outerKey func(O) K,
	innerKey func(I) K,
	result func(O, I) R,
) []R {
	lookup := ToLookup(inner, innerKey)
	joined := make([]R, 0, len(outer))
	for _, o := range outer {
		for _, i := range lookup[outerKey(o)] {
			joined = append(joined, result(o, i))
		}
	}
	return joined
}

// Group is one partition produced by GroupBy.
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// Len returns the number of elements in the group.
func (g Group[K, T]) Len() int {
	return len(g.Items)
}

// GroupBy partitions s by key. Groups appear in the order their key is first
// seen, and each group keeps the input order of its elements.
func GroupBy[T any, K comparable](s []T, key func(T) K) []Group[K, T] {
	index := make(map[K]int)
	groups := make([]Group[K, T], 0)
	for _, v := range s {
		k := key(v)
		pos, ok := index[k]
		if !ok {
			pos = len(groups)
			index[k] = pos
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[pos].Items = append(groups[pos].Items, v)
	}
	return groups
}

// ToLookup indexes s by key. Each slice keeps the input order.
func ToLookup[T any, K comparable](s []T, key func(T) K) map[K][]T {
	lookup := make(map[K][]T)
	for _, v := range s {
		k := key(v)
		lookup[k] = append(lookup[k], v)
	}
	return lookup
}

package internal

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// IterSortedFunc iterates over a map, ordered by a comparison of its entries.
func IterSortedFunc[K comparable, V any](m map[K]V, compare func(k1 K, v1 V, k2 K, v2 V) int) iter.Seq2[K, V] {
	keys := slices.SortedFunc(maps.Keys(m), func(a, b K) int {
		return compare(a, m[a], b, m[b])
	})

	return func(yield func(K, V) bool) {
		for _, key := range keys {
			if !yield(key, m[key]) {
				return // Stop if the consumer stops
			}
		}
	}
}

// IterSorted iterates over a map in key order.
func IterSorted[K cmp.Ordered, V any](m map[K]V) iter.Seq2[K, V] {
	return IterSortedFunc(m, func(k1 K, _ V, k2 K, _ V) int {
		return cmp.Compare(k1, k2)
	})
}

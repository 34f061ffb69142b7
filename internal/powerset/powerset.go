// Package powerset enumerates every subset of a finite set.
package powerset

// MaxElements is the largest set Of accepts. The subset count must fit in a uint64.
const MaxElements = 62

// Count returns the number of subsets of an n-element set.
func Count(n int) uint64 {
	return 1 << uint(n)
}

// Of returns all 2^n subsets of set, each exactly once.
//
// Duplicate elements are collapsed first (first occurrence wins). Subset k
// holds the elements whose position bit is set in k, so the empty set comes
// first and the full set last; elements keep their input order inside every
// subset. Of panics if the deduplicated set has more than MaxElements
// elements.
func Of[T comparable](set []T) [][]T {
	elems := dedupe(set)
	n := len(elems)
	if n > MaxElements {
		panic("powerset: set too large to enumerate")
	}

	total := Count(n)
	subsets := make([][]T, 0, total)
	for mask := uint64(0); mask < total; mask++ {
		subset := make([]T, 0, n)
		for i, e := range elems {
			if mask&(1<<uint(i)) != 0 {
				subset = append(subset, e)
			}
		}
		subsets = append(subsets, subset)
	}
	return subsets
}

func dedupe[T comparable](set []T) []T {
	seen := make(map[T]struct{}, len(set))
	out := make([]T, 0, len(set))
	for _, e := range set {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

package attr

// MaxEnumerable is the largest universe NonEmptySubsets accepts. The
// enumeration is a bitmask over the sorted attribute order, so it is
// bounded by the mask width.
const MaxEnumerable = 63

// NonEmptySubsets yields every non-empty subset of s exactly once, in
// bitmask order over the sorted attributes. The result is deterministic
// for a given set. Universes larger than MaxEnumerable return nil.
func NonEmptySubsets(s Set) []Set {
	names := s.Sorted()
	n := len(names)
	if n == 0 || n > MaxEnumerable {
		return nil
	}

	subsets := make([]Set, 0, (1<<uint(n))-1)
	for mask := uint64(1); mask < 1<<uint(n); mask++ {
		sub := make(Set)
		for i := 0; i < n; i++ {
			if mask&(1<<uint(i)) != 0 {
				sub[names[i]] = struct{}{}
			}
		}
		subsets = append(subsets, sub)
	}
	return subsets
}

package norm

import (
	"github.com/relnorm/relnorm/internal/attr"
	"github.com/relnorm/relnorm/internal/fd"
)

// CandidateKeys returns every minimal superkey of R(attrs, fds), each
// exactly once, sorted by (size ascending, canonical serialization
// ascending). An empty universe yields an empty list.
//
// The search enumerates all non-empty subsets of the universe, so it is
// Θ(2^|A|); see attr.MaxEnumerable for the hard bound on |A|.
func CandidateKeys(attrs attr.Set, fds []fd.FD) []attr.Set {
	if attrs.Empty() {
		return nil
	}

	var superkeys []attr.Set
	for _, sub := range attr.NonEmptySubsets(attrs) {
		if Closure(sub, fds).Equal(attrs) {
			superkeys = append(superkeys, sub)
		}
	}

	// A superkey is minimal iff no other collected superkey is a proper
	// subset of it; the collection holds all superkeys, so this test is
	// equivalent to checking every proper subset directly.
	seen := make(map[string]bool)
	var keys []attr.Set
	for _, k := range superkeys {
		minimal := true
		for _, other := range superkeys {
			if other.ProperSubsetOf(k) {
				minimal = false
				break
			}
		}
		if !minimal {
			continue
		}
		canon := k.Canonical()
		if seen[canon] {
			continue
		}
		seen[canon] = true
		keys = append(keys, k)
	}

	attr.SortSets(keys)
	return keys
}

// PrimeAttributes returns the union of the given candidate keys.
func PrimeAttributes(keys []attr.Set) attr.Set {
	prime := make(attr.Set)
	for _, k := range keys {
		for a := range k {
			prime.Add(a)
		}
	}
	return prime
}

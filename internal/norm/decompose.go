package norm

import (
	"fmt"

	"github.com/relnorm/relnorm/internal/attr"
	"github.com/relnorm/relnorm/internal/fd"
)

// Decompose3NF synthesizes a lossless-join, dependency-preserving 3NF
// decomposition from a minimal cover of fds: one fragment L ∪ R per
// cover dependency (merged by LHS), plus a candidate-key fragment when
// no emitted fragment already contains one. The key repair is reported
// as a diagnostic.
func Decompose3NF(attrs attr.Set, fds []fd.FD, keys []attr.Set) ([]attr.Set, []string) {
	if attrs.Empty() {
		return nil, nil
	}
	if len(fds) == 0 {
		return []attr.Set{attrs.Clone()}, nil
	}

	cover := MergeByLHS(MinimalCover(fds))
	fragments := make([]attr.Set, 0, len(cover)+1)
	for _, f := range cover {
		fragments = append(fragments, f.LHS.Union(f.RHS))
	}

	var diags []string
	if len(keys) > 0 && !containsKey(fragments, keys) {
		fragments = append(fragments, keys[0].Clone())
		diags = append(diags, fmt.Sprintf("3NF synthesis: no fragment covered a candidate key; appended key fragment %s", keys[0]))
	}

	return finishDecomposition(fragments), diags
}

// Decompose2NF removes partial dependencies: for each dependency whose
// determinant is a proper subset of some candidate key and whose RHS
// touches non-prime attributes, the non-prime part moves into its own
// fragment; the remaining attributes stay together with a full candidate
// key. Lossless by construction, not necessarily dependency-preserving.
func Decompose2NF(attrs attr.Set, fds []fd.FD, keys []attr.Set) []attr.Set {
	if attrs.Empty() {
		return nil
	}
	if len(fds) == 0 || len(keys) == 0 {
		return []attr.Set{attrs.Clone()}
	}

	prime := PrimeAttributes(keys)
	moved := make(attr.Set)
	var fragments []attr.Set

	for _, f := range fds {
		rhs := f.RHS.Diff(f.LHS)
		nonprime := rhs.Diff(prime)
		if nonprime.Empty() {
			continue
		}
		partial := false
		for _, k := range keys {
			if f.LHS.ProperSubsetOf(k) {
				partial = true
				break
			}
		}
		if !partial {
			continue
		}
		fragments = append(fragments, f.LHS.Union(nonprime))
		for a := range nonprime {
			moved.Add(a)
		}
	}

	remaining := attrs.Diff(moved).Union(keys[0])
	fragments = append(fragments, remaining)

	return finishDecomposition(fragments)
}

// DecomposeBCNF splits R on BCNF-violating dependencies until every
// fragment is in BCNF, using a work-list with a visited set so fragments
// reachable along multiple split paths are processed once. The result is
// lossless-join; dependency preservation is not guaranteed.
func DecomposeBCNF(attrs attr.Set, fds []fd.FD) []attr.Set {
	if attrs.Empty() {
		return nil
	}
	if len(fds) == 0 {
		return []attr.Set{attrs.Clone()}
	}

	worklist := []attr.Set{attrs.Clone()}
	visited := make(map[string]bool)
	var emitted []attr.Set

	for len(worklist) > 0 {
		s := worklist[0]
		worklist = worklist[1:]

		canon := s.Canonical()
		if visited[canon] {
			continue
		}
		visited[canon] = true

		violated := false
		for _, f := range fds {
			if !f.LHS.SubsetOf(s) || !f.RHS.SubsetOf(s) || f.RHS.SubsetOf(f.LHS) {
				continue
			}
			if Closure(f.LHS, fds).Intersect(s).Equal(s) {
				continue // determinant is a superkey of this fragment
			}

			// Each split strictly shrinks both halves: the violation is
			// non-trivial and the determinant is not a superkey of s.
			s1 := f.LHS.Union(f.RHS).Intersect(s)
			s2 := f.LHS.Union(s.Diff(f.RHS))
			if !s1.Empty() {
				worklist = append(worklist, s1)
			}
			if !s2.Empty() && !s2.Equal(s1) {
				worklist = append(worklist, s2)
			}
			violated = true
			break
		}

		if !violated {
			emitted = append(emitted, s)
		}
	}

	return finishDecomposition(emitted)
}

// finishDecomposition deduplicates fragments, removes any fragment that
// is a subset of another, and orders the result by (size descending,
// canonical serialization ascending).
func finishDecomposition(fragments []attr.Set) []attr.Set {
	seen := make(map[string]bool, len(fragments))
	unique := make([]attr.Set, 0, len(fragments))
	for _, f := range fragments {
		canon := f.Canonical()
		if seen[canon] || f.Empty() {
			continue
		}
		seen[canon] = true
		unique = append(unique, f)
	}

	var out []attr.Set
	for _, f := range unique {
		subsumed := false
		for _, other := range unique {
			if f.ProperSubsetOf(other) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			out = append(out, f)
		}
	}

	attr.SortSetsBySizeDesc(out)
	return out
}

func containsKey(fragments []attr.Set, keys []attr.Set) bool {
	for _, frag := range fragments {
		for _, k := range keys {
			if k.SubsetOf(frag) {
				return true
			}
		}
	}
	return false
}

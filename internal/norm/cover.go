package norm

import (
	"sort"

	"github.com/relnorm/relnorm/internal/attr"
	"github.com/relnorm/relnorm/internal/fd"
)

// MinimalCover computes a canonical cover of fds: every dependency has a
// singleton RHS, no LHS attribute is extraneous, and no dependency is
// redundant. The result is equivalent to the input (same closure for
// every attribute set).
//
// A minimal cover is not unique; the reduction passes depend on
// processing order. For run-to-run determinism the working set is sorted
// by (canonical LHS, canonical RHS) before the reduction phases.
func MinimalCover(fds []fd.FD) []fd.FD {
	// Phase 1: decompose each RHS into singletons.
	var g []fd.FD
	for _, f := range fds {
		for _, a := range f.RHS.Sorted() {
			g = append(g, fd.FD{LHS: f.LHS.Clone(), RHS: attr.NewSet(a)})
		}
	}

	sortFDs(g)

	// Phase 2: drop extraneous LHS attributes. An attribute x of L is
	// removable iff the RHS is still derivable from L \ {x} under the
	// current working set, dependency under reduction included. Each
	// successful removal updates the working set before the next try.
	for i := range g {
		target := g[i].RHS.Sorted()[0]
		for _, x := range g[i].LHS.Sorted() {
			if g[i].LHS.Len() == 1 {
				break
			}
			reduced := g[i].LHS.Diff(attr.NewSet(x))
			if Closure(reduced, g).Contains(target) {
				g[i] = fd.FD{LHS: reduced, RHS: g[i].RHS}
			}
		}
	}

	// Phase 3: drop redundant dependencies. A dependency is redundant
	// iff its RHS is derivable from its LHS under the working set with
	// that dependency excluded.
	for i := 0; i < len(g); {
		rest := make([]fd.FD, 0, len(g)-1)
		rest = append(rest, g[:i]...)
		rest = append(rest, g[i+1:]...)
		target := g[i].RHS.Sorted()[0]
		if Closure(g[i].LHS, rest).Contains(target) {
			g = rest
			continue
		}
		i++
	}

	return g
}

// MergeByLHS consolidates dependencies sharing a left-hand side into a
// single dependency with the union of right-hand sides. This is a
// presentation step; consumers needing singleton RHSs must re-split.
// Output order is by canonical LHS.
func MergeByLHS(fds []fd.FD) []fd.FD {
	byLHS := make(map[string]*fd.FD)
	var order []string
	for _, f := range fds {
		canon := f.LHS.Canonical()
		if merged, ok := byLHS[canon]; ok {
			merged.RHS = merged.RHS.Union(f.RHS)
			continue
		}
		clone := f.Clone()
		byLHS[canon] = &clone
		order = append(order, canon)
	}
	sort.Strings(order)

	out := make([]fd.FD, 0, len(order))
	for _, canon := range order {
		out = append(out, *byLHS[canon])
	}
	return out
}

func sortFDs(fds []fd.FD) {
	sort.Slice(fds, func(i, j int) bool {
		li, lj := fds[i].LHS.Canonical(), fds[j].LHS.Canonical()
		if li != lj {
			return li < lj
		}
		return fds[i].RHS.Canonical() < fds[j].RHS.Canonical()
	})
}

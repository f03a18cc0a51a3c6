// Package norm implements the normalization kernel: attribute closures,
// candidate keys, normal-form classification, minimal covers, and the
// 2NF/3NF/BCNF decomposition algorithms.
package norm

import (
	"github.com/relnorm/relnorm/internal/attr"
	"github.com/relnorm/relnorm/internal/fd"
)

// Closure computes X⁺ under F: the smallest superset Y of x such that
// every dependency whose LHS is contained in Y also has its RHS in Y.
//
// The fixed point is reached by repeated full passes over F; it is
// unique regardless of iteration order, and the loop terminates because
// Y only grows and is bounded by the attributes mentioned in F. The
// input set and dependency list are never mutated.
func Closure(x attr.Set, fds []fd.FD) attr.Set {
	y := x.Clone()
	for changed := true; changed; {
		changed = false
		for _, f := range fds {
			if !f.LHS.SubsetOf(y) {
				continue
			}
			for a := range f.RHS {
				if !y.Contains(a) {
					y.Add(a)
					changed = true
				}
			}
		}
	}
	return y
}

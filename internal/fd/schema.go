package fd

import (
	"fmt"

	"github.com/relnorm/relnorm/internal/attr"
)

// Schema is a relation schema R(A, F): a universe of attributes and a
// set of admitted functional dependencies. The universe always covers
// every attribute mentioned by a dependency.
type Schema struct {
	Attrs attr.Set
	FDs   []FD
}

// NewSchema builds a schema from a user-supplied universe and admitted
// dependencies. The universe is normalized to include every attribute
// appearing in F, and F is deduplicated by (LHS, RHS) set equality,
// preserving first-seen order.
func NewSchema(attrs attr.Set, fds []FD) (*Schema, error) {
	universe := attrs.Clone()
	seen := make(map[string]bool, len(fds))
	var admitted []FD
	for _, f := range fds {
		if f.LHS.Empty() || f.RHS.Empty() {
			return nil, fmt.Errorf("schema contains unadmitted dependency %s", f)
		}
		for a := range f.LHS {
			universe.Add(a)
		}
		for a := range f.RHS {
			universe.Add(a)
		}
		key := f.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		admitted = append(admitted, f.Clone())
	}
	return &Schema{Attrs: universe, FDs: admitted}, nil
}

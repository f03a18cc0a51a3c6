// Package fd defines functional dependencies and relation schemas, and
// the admission rules that keep them well formed.
package fd

import (
	"encoding/json"
	"fmt"

	"github.com/relnorm/relnorm/internal/attr"
)

// FD is a functional dependency LHS → RHS over attribute sets.
//
// Admission (New) guarantees: LHS and RHS are non-empty, RHS ∩ LHS = ∅,
// and both sets are owned by the FD (callers may keep mutating their
// inputs).
type FD struct {
	LHS attr.Set
	RHS attr.Set
}

// New admits a functional dependency. Attributes of the RHS that also
// appear on the LHS are stripped; if nothing remains the dependency is
// trivial and rejected.
func New(lhs, rhs attr.Set) (FD, error) {
	if lhs.Empty() {
		return FD{}, fmt.Errorf("functional dependency has empty left-hand side")
	}
	if rhs.Empty() {
		return FD{}, fmt.Errorf("functional dependency has empty right-hand side")
	}
	stripped := rhs.Diff(lhs)
	if stripped.Empty() {
		return FD{}, fmt.Errorf("trivial functional dependency %s -> %s rejected", lhs, rhs)
	}
	return FD{LHS: lhs.Clone(), RHS: stripped}, nil
}

// Clone returns a deep copy of the dependency.
func (f FD) Clone() FD {
	return FD{LHS: f.LHS.Clone(), RHS: f.RHS.Clone()}
}

// Equal reports whether both sides are set-equal.
func (f FD) Equal(other FD) bool {
	return f.LHS.Equal(other.LHS) && f.RHS.Equal(other.RHS)
}

// Key returns a canonical string identifying the dependency, usable as
// a map key for deduplication.
func (f FD) Key() string {
	return f.LHS.Canonical() + " -> " + f.RHS.Canonical()
}

// String renders the dependency as "{A, B} -> {C}".
func (f FD) String() string {
	return f.LHS.String() + " -> " + f.RHS.String()
}

type fdJSON struct {
	LHS attr.Set `json:"lhs"`
	RHS attr.Set `json:"rhs"`
}

// MarshalJSON encodes the dependency as {"lhs": [...], "rhs": [...]}.
func (f FD) MarshalJSON() ([]byte, error) {
	return json.Marshal(fdJSON{LHS: f.LHS, RHS: f.RHS})
}

// UnmarshalJSON decodes and re-admits the dependency.
func (f *FD) UnmarshalJSON(data []byte) error {
	var raw fdJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	admitted, err := New(raw.LHS, raw.RHS)
	if err != nil {
		return err
	}
	*f = admitted
	return nil
}

// CloneAll deep-copies a dependency list.
func CloneAll(fds []FD) []FD {
	out := make([]FD, len(fds))
	for i, f := range fds {
		out[i] = f.Clone()
	}
	return out
}

package norm

import (
	"github.com/relnorm/relnorm/internal/attr"
	"github.com/relnorm/relnorm/internal/fd"
)

// Violations lists the dependencies that break each normal form.
type Violations struct {
	BCNF     []fd.FD `json:"BCNF"`
	ThirdNF  []fd.FD `json:"3NF"`
	SecondNF []fd.FD `json:"2NF"`
}

// Classification reports which normal forms R satisfies, with the
// violating dependencies per form.
type Classification struct {
	IsBCNF     bool       `json:"isBCNF"`
	Is3NF      bool       `json:"is3NF"`
	Is2NF      bool       `json:"is2NF"`
	Violations Violations `json:"violations"`
}

// Classify determines which of 2NF, 3NF, and BCNF hold for R(attrs, fds)
// given its candidate keys. Dependencies are evaluated in input order;
// trivial ones are skipped. The tests cascade: an FD is checked against
// 3NF only when it breaks BCNF, and against 2NF only when it breaks 3NF.
//
// Degenerate inputs: an empty universe or empty dependency set is
// trivially in BCNF. A non-empty universe with no keys leaves the
// classification undefined; all flags come back false alongside a
// diagnostic.
func Classify(attrs attr.Set, fds []fd.FD, keys []attr.Set) (Classification, []string) {
	if attrs.Empty() || len(fds) == 0 {
		return Classification{IsBCNF: true, Is3NF: true, Is2NF: true}, nil
	}
	if len(keys) == 0 {
		diag := "classification undefined: no candidate keys for a non-empty universe"
		return Classification{}, []string{diag}
	}

	prime := PrimeAttributes(keys)
	var v Violations

	for _, f := range fds {
		rhs := f.RHS.Diff(f.LHS)
		if rhs.Empty() {
			continue
		}

		// BCNF: the determinant must be a superkey.
		if Closure(f.LHS, fds).Equal(attrs) {
			continue
		}
		v.BCNF = append(v.BCNF, f)

		// 3NF: every determined attribute must be prime.
		if rhs.SubsetOf(prime) {
			continue
		}
		v.ThirdNF = append(v.ThirdNF, f)

		// 2NF: partial dependency of a non-prime attribute on a key.
		for _, k := range keys {
			if f.LHS.ProperSubsetOf(k) && !rhs.Diff(prime).Empty() {
				v.SecondNF = append(v.SecondNF, f)
				break
			}
		}
	}

	return Classification{
		IsBCNF:     len(v.BCNF) == 0,
		Is3NF:      len(v.ThirdNF) == 0,
		Is2NF:      len(v.SecondNF) == 0,
		Violations: v,
	}, nil
}

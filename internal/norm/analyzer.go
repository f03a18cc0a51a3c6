package norm

import (
	"github.com/relnorm/relnorm/internal/attr"
	"github.com/relnorm/relnorm/internal/fd"
)

// DefaultClosureCap is the largest universe for which the analyzer
// includes the closure of every non-empty attribute subset in the
// report. It gates only that exhaustive display, never key discovery.
const DefaultClosureCap = 8

// Report is the full analysis of one relation schema.
//
// Presence rules: SubsetClosures is set iff the universe is within the
// closure cap; Decomposition2NF iff the schema is not in 2NF;
// Decomposition3NF and DecompositionBCNF iff it is not in BCNF.
type Report struct {
	Universe          attr.Set            `json:"universe"`
	ClosureOfAll      attr.Set            `json:"closureOfAll"`
	SubsetClosures    map[string]attr.Set `json:"subsetClosures,omitempty"`
	CandidateKeys     []attr.Set          `json:"candidateKeys"`
	MinimalCover      []fd.FD             `json:"minimalCover"`
	NormalForms       Classification      `json:"normalForms"`
	Decomposition2NF  []attr.Set          `json:"decomposition2NF,omitempty"`
	Decomposition3NF  []attr.Set          `json:"decomposition3NF,omitempty"`
	DecompositionBCNF []attr.Set          `json:"decompositionBCNF,omitempty"`
	Diagnostics       []string            `json:"diagnostics,omitempty"`
}

// Analyzer runs the normalization pipeline. The zero value uses
// DefaultClosureCap; it is stateless per call and safe for concurrent
// use from multiple goroutines.
type Analyzer struct {
	// ClosureCap bounds the all-subset-closures display; 0 means
	// DefaultClosureCap, negative disables the display entirely.
	ClosureCap int
}

// Analyze computes every derived object for sch: the attribute closure
// of the universe, subset closures (capped), candidate keys, minimal
// cover, normal-form classification, and whichever decompositions the
// classification calls for.
func (an Analyzer) Analyze(sch *fd.Schema) *Report {
	attrs, fds := sch.Attrs, sch.FDs

	rep := &Report{
		Universe:     attrs.Clone(),
		ClosureOfAll: Closure(attrs, fds),
		MinimalCover: MergeByLHS(MinimalCover(fds)),
	}

	limit := an.ClosureCap
	if limit == 0 {
		limit = DefaultClosureCap
	}
	if n := attrs.Len(); n > 0 && n <= limit {
		rep.SubsetClosures = make(map[string]attr.Set)
		for _, sub := range attr.NonEmptySubsets(attrs) {
			rep.SubsetClosures[sub.Canonical()] = Closure(sub, fds)
		}
	}

	rep.CandidateKeys = CandidateKeys(attrs, fds)
	if len(rep.CandidateKeys) == 0 && !attrs.Empty() {
		// A⁺ ⊇ A always, so this happens only when the universe exceeds
		// attr.MaxEnumerable and no subsets are enumerated.
		rep.CandidateKeys = []attr.Set{attrs.Clone()}
		rep.Diagnostics = append(rep.Diagnostics, "key discovery found no superkey; falling back to the full universe")
	}

	cls, diags := Classify(attrs, fds, rep.CandidateKeys)
	rep.NormalForms = cls
	rep.Diagnostics = append(rep.Diagnostics, diags...)

	if !cls.Is2NF {
		rep.Decomposition2NF = Decompose2NF(attrs, fds, rep.CandidateKeys)
	}
	if !cls.IsBCNF {
		frags, synthDiags := Decompose3NF(attrs, fds, rep.CandidateKeys)
		rep.Decomposition3NF = frags
		rep.Diagnostics = append(rep.Diagnostics, synthDiags...)
		rep.DecompositionBCNF = DecomposeBCNF(attrs, fds)
	}

	return rep
}

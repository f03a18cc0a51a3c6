// Package render writes normalization reports in text, mermaid, and
// JSON form. All output is deterministic: collections are sorted before
// writing and canonical serializations break ties.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/relnorm/relnorm/internal/attr"
	"github.com/relnorm/relnorm/internal/fd"
	"github.com/relnorm/relnorm/internal/norm"
)

// WriteText writes a text summary of the report to w.
func WriteText(w io.Writer, name string, rep *norm.Report) error {
	fmt.Fprintf(w, "Relation: %s\n", name)
	fmt.Fprintf(w, "Universe: %s\n", rep.Universe)
	fmt.Fprintf(w, "Closure of universe: %s\n\n", rep.ClosureOfAll)

	for _, diag := range rep.Diagnostics {
		fmt.Fprintf(w, "WARNING: %s\n", diag)
	}
	if len(rep.Diagnostics) > 0 {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Candidate keys (%d):\n", len(rep.CandidateKeys))
	for i, k := range rep.CandidateKeys {
		fmt.Fprintf(w, "  %d. %s\n", i+1, k)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Minimal cover (%d):\n", len(rep.MinimalCover))
	for _, f := range rep.MinimalCover {
		fmt.Fprintf(w, "  %s\n", f)
	}
	fmt.Fprintln(w)

	nf := rep.NormalForms
	fmt.Fprintf(w, "Normal forms: 2NF=%s 3NF=%s BCNF=%s\n",
		yesNo(nf.Is2NF), yesNo(nf.Is3NF), yesNo(nf.IsBCNF))
	writeViolations(w, "BCNF", nf.Violations.BCNF)
	writeViolations(w, "3NF", nf.Violations.ThirdNF)
	writeViolations(w, "2NF", nf.Violations.SecondNF)
	fmt.Fprintln(w)

	if rep.SubsetClosures != nil {
		fmt.Fprintf(w, "Subset closures (%d):\n", len(rep.SubsetClosures))
		for _, canon := range sortedClosureKeys(rep.SubsetClosures) {
			fmt.Fprintf(w, "  {%s}+ = %s\n", canon, rep.SubsetClosures[canon])
		}
		fmt.Fprintln(w)
	}

	writeDecomposition(w, "2NF decomposition", rep.Decomposition2NF)
	writeDecomposition(w, "3NF decomposition", rep.Decomposition3NF)
	writeDecomposition(w, "BCNF decomposition", rep.DecompositionBCNF)

	return nil
}

func writeViolations(w io.Writer, form string, fds []fd.FD) {
	if len(fds) == 0 {
		return
	}
	fmt.Fprintf(w, "%s violations:\n", form)
	for _, f := range fds {
		fmt.Fprintf(w, "  %s\n", f)
	}
}

func writeDecomposition(w io.Writer, title string, fragments []attr.Set) {
	if fragments == nil {
		return
	}
	fmt.Fprintf(w, "%s (%d fragments):\n", title, len(fragments))
	for i, frag := range fragments {
		fmt.Fprintf(w, "  R%d%s\n", i+1, frag)
	}
	fmt.Fprintln(w)
}

// sortedClosureKeys orders subset-closure map keys by (attribute count,
// canonical string), matching the candidate-key ordering.
func sortedClosureKeys(m map[string]attr.Set) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni := strings.Count(keys[i], attr.Separator)
		nj := strings.Count(keys[j], attr.Separator)
		if ni != nj {
			return ni < nj
		}
		return keys[i] < keys[j]
	})
	return keys
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/relnorm/relnorm/internal/attr"
	"github.com/relnorm/relnorm/internal/fd"
	"github.com/relnorm/relnorm/internal/norm"
)

// WriteMermaid writes the report as a Mermaid graph to w. When a BCNF
// decomposition is present each fragment is a subgraph with its own
// node namespace (an attribute may live in several fragments); otherwise
// the relation is a single subgraph. Minimal-cover dependencies are
// drawn as labeled edges from each determinant attribute to each
// determined attribute, restricted to edges whose dependency fits
// entirely inside the fragment.
func WriteMermaid(w io.Writer, name string, rep *norm.Report) error {
	fmt.Fprintln(w, "graph TD")

	fragments := rep.DecompositionBCNF
	if fragments == nil {
		fragments = []attr.Set{rep.Universe}
	}

	for i, frag := range fragments {
		label := name
		if len(fragments) > 1 {
			label = fmt.Sprintf("%s_%d", name, i+1)
		}
		fmt.Fprintf(w, "    subgraph %s\n", mermaidID(label))

		prefix := fmt.Sprintf("f%d_", i+1)
		linked := make(map[string]bool)
		for _, f := range rep.MinimalCover {
			if !f.LHS.SubsetOf(frag) || !f.RHS.SubsetOf(frag) {
				continue
			}
			writeFDEdges(w, prefix, f, linked)
		}

		// Attributes not touched by any in-fragment dependency still
		// appear as standalone nodes.
		for _, a := range frag.Sorted() {
			if !linked[a] {
				fmt.Fprintf(w, "        %s[%s]\n", mermaidID(prefix+a), a)
			}
		}

		fmt.Fprintln(w, "    end")
		if i < len(fragments)-1 {
			fmt.Fprintln(w)
		}
	}

	return nil
}

func writeFDEdges(w io.Writer, prefix string, f fd.FD, linked map[string]bool) {
	label := f.LHS.Canonical()
	for _, from := range f.LHS.Sorted() {
		for _, to := range f.RHS.Sorted() {
			fmt.Fprintf(w, "        %s[%s] -->|%s| %s[%s]\n",
				mermaidID(prefix+from), from, label, mermaidID(prefix+to), to)
			linked[from] = true
			linked[to] = true
		}
	}
}

// mermaidID converts a name to a Mermaid-safe node ID.
func mermaidID(name string) string {
	r := strings.NewReplacer(".", "_", " ", "_", ",", "_")
	return r.Replace(name)
}

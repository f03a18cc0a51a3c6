package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relnorm/relnorm/internal/attr"
	"github.com/relnorm/relnorm/internal/fd"
	"github.com/relnorm/relnorm/internal/norm"
)

func textbookReport(t *testing.T) *norm.Report {
	t.Helper()
	fds := make([]fd.FD, 0, 3)
	for _, s := range []string{"A -> B, C", "B -> D", "A, E -> C"} {
		f, err := fd.ParseFD(s)
		require.NoError(t, err)
		fds = append(fds, f)
	}
	sch, err := fd.NewSchema(attr.NewSet("A", "B", "C", "D", "E"), fds)
	require.NoError(t, err)
	return norm.Analyzer{}.Analyze(sch)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, "orders", textbookReport(t)))
	out := buf.String()

	assert.Contains(t, out, "Relation: orders")
	assert.Contains(t, out, "Universe: {A, B, C, D, E}")
	assert.Contains(t, out, "Candidate keys (1):")
	assert.Contains(t, out, "1. {A, E}")
	assert.Contains(t, out, "{A} -> {B, C}")
	assert.Contains(t, out, "Normal forms: 2NF=no 3NF=no BCNF=no")
	assert.Contains(t, out, "BCNF violations:")
	assert.Contains(t, out, "BCNF decomposition")
	assert.Contains(t, out, "{A}+ = {A, B, C, D}")
}

func TestWriteTextBCNFSchema(t *testing.T) {
	f, err := fd.ParseFD("A -> B")
	require.NoError(t, err)
	sch, err := fd.NewSchema(attr.NewSet("A", "B"), []fd.FD{f})
	require.NoError(t, err)
	rep := norm.Analyzer{}.Analyze(sch)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, "simple", rep))
	out := buf.String()

	assert.Contains(t, out, "Normal forms: 2NF=yes 3NF=yes BCNF=yes")
	assert.NotContains(t, out, "violations")
	assert.NotContains(t, out, "decomposition")
}

func TestWriteTextDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, WriteText(&a, "orders", textbookReport(t)))
	require.NoError(t, WriteText(&b, "orders", textbookReport(t)))
	assert.Equal(t, a.String(), b.String())
}

func TestWriteMermaid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMermaid(&buf, "orders", textbookReport(t)))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	// The textbook schema decomposes into two BCNF fragments.
	assert.Contains(t, out, "subgraph orders_1")
	assert.Contains(t, out, "subgraph orders_2")
	// The A -> B edge lands in the fragment containing both ends.
	assert.Contains(t, out, "f1_A[A] -->|A| f1_B[B]")
}

func TestWriteMermaidSingleFragment(t *testing.T) {
	f, err := fd.ParseFD("A -> B")
	require.NoError(t, err)
	sch, err := fd.NewSchema(attr.NewSet("A", "B"), []fd.FD{f})
	require.NoError(t, err)
	rep := norm.Analyzer{}.Analyze(sch)

	var buf bytes.Buffer
	require.NoError(t, WriteMermaid(&buf, "simple", rep))
	out := buf.String()

	assert.Contains(t, out, "subgraph simple")
	assert.NotContains(t, out, "simple_1")
	assert.Contains(t, out, "f1_A[A] -->|A| f1_B[B]")
}

func TestWriteMermaidDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, WriteMermaid(&a, "orders", textbookReport(t)))
	require.NoError(t, WriteMermaid(&b, "orders", textbookReport(t)))
	assert.Equal(t, a.String(), b.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, "orders", textbookReport(t)))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "orders", decoded["relation"])
	assert.Equal(t, []any{"A", "B", "C", "D", "E"}, decoded["universe"])

	nf, ok := decoded["normalForms"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, nf["isBCNF"])

	violations, ok := nf["violations"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, violations, "BCNF")
	assert.Contains(t, violations, "3NF")
	assert.Contains(t, violations, "2NF")

	// Presence rules carry into the JSON encoding.
	assert.Contains(t, decoded, "decompositionBCNF")
}

func TestWriteJSONOmitsAbsentSections(t *testing.T) {
	f, err := fd.ParseFD("A -> B")
	require.NoError(t, err)
	sch, err := fd.NewSchema(attr.NewSet("A", "B"), []fd.FD{f})
	require.NoError(t, err)
	rep := norm.Analyzer{}.Analyze(sch)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, "simple", rep))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.NotContains(t, decoded, "decomposition2NF")
	assert.NotContains(t, decoded, "decomposition3NF")
	assert.NotContains(t, decoded, "decompositionBCNF")
	assert.NotContains(t, decoded, "diagnostics")
}

func TestMermaidID(t *testing.T) {
	assert.Equal(t, "public_orders", mermaidID("public.orders"))
	assert.Equal(t, "a_b_c", mermaidID("a b,c"))
}

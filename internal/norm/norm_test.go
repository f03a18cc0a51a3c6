package norm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relnorm/relnorm/internal/attr"
	"github.com/relnorm/relnorm/internal/fd"
)

// mustFDs parses arrow-form dependencies for fixtures.
func mustFDs(t *testing.T, specs ...string) []fd.FD {
	t.Helper()
	fds := make([]fd.FD, 0, len(specs))
	for _, s := range specs {
		f, err := fd.ParseFD(s)
		require.NoError(t, err, "fixture dependency %q", s)
		fds = append(fds, f)
	}
	return fds
}

func set(names ...string) attr.Set {
	return attr.NewSet(names...)
}

func canonicals(sets []attr.Set) []string {
	out := make([]string, len(sets))
	for i, s := range sets {
		out[i] = s.Canonical()
	}
	return out
}

func fdKeys(fds []fd.FD) []string {
	out := make([]string, len(fds))
	for i, f := range fds {
		out[i] = f.Key()
	}
	return out
}

// fixture is a reusable schema corpus for property tests.
type fixture struct {
	name  string
	attrs attr.Set
	fds   []fd.FD
}

func corpus(t *testing.T) []fixture {
	t.Helper()
	return []fixture{
		{
			name:  "textbook",
			attrs: set("A", "B", "C", "D", "E"),
			fds:   mustFDs(t, "A -> B, C", "B -> D", "A, E -> C"),
		},
		{
			name:  "already-bcnf",
			attrs: set("A", "B"),
			fds:   mustFDs(t, "A -> B"),
		},
		{
			name:  "3nf-not-bcnf",
			attrs: set("S", "J", "T"),
			fds:   mustFDs(t, "S, J -> T", "T -> J"),
		},
		{
			name:  "reducible-cover",
			attrs: set("A", "B", "C", "D"),
			fds:   mustFDs(t, "A, B -> C", "A -> B", "B -> C", "A -> D"),
		},
		{
			name:  "cycle",
			attrs: set("A", "B", "C"),
			fds:   mustFDs(t, "A -> B", "B -> C", "C -> A"),
		},
		{
			name:  "no-fds",
			attrs: set("A", "B", "C"),
			fds:   nil,
		},
	}
}

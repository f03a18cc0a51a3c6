package norm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relnorm/relnorm/internal/attr"
)

func TestClosure(t *testing.T) {
	fds := mustFDs(t, "A -> B, C", "B -> D", "A, E -> C")

	tests := []struct {
		x    attr.Set
		want string
	}{
		{set("A"), "A, B, C, D"},
		{set("B"), "B, D"},
		{set("E"), "E"},
		{set("A", "E"), "A, B, C, D, E"},
		{set("D"), "D"},
	}
	for _, tt := range tests {
		got := Closure(tt.x, fds)
		assert.Equal(t, tt.want, got.Canonical(), "closure of %s", tt.x)
	}
}

func TestClosureEmptyInput(t *testing.T) {
	fds := mustFDs(t, "A -> B")
	assert.True(t, Closure(set(), fds).Empty())
}

func TestClosureNoFDs(t *testing.T) {
	assert.Equal(t, "A, B", Closure(set("A", "B"), nil).Canonical())
}

func TestClosureTransitiveChain(t *testing.T) {
	fds := mustFDs(t, "A -> B", "B -> C", "C -> D", "D -> E")
	assert.Equal(t, "A, B, C, D, E", Closure(set("A"), fds).Canonical())
}

func TestClosureCycle(t *testing.T) {
	fds := mustFDs(t, "A -> B", "B -> C", "C -> A")
	assert.Equal(t, "A, B, C", Closure(set("B"), fds).Canonical())
}

func TestClosureDoesNotMutateInputs(t *testing.T) {
	fds := mustFDs(t, "A -> B")
	x := set("A")
	_ = Closure(x, fds)
	assert.Equal(t, "A", x.Canonical())
	assert.Equal(t, "A", fds[0].LHS.Canonical())
	assert.Equal(t, "B", fds[0].RHS.Canonical())
}

// Properties: X ⊆ X⁺, monotonicity, idempotence, and augmentation
// (R ⊆ L⁺ for every dependency).
func TestClosureProperties(t *testing.T) {
	for _, fx := range corpus(t) {
		t.Run(fx.name, func(t *testing.T) {
			subsets := attr.NonEmptySubsets(fx.attrs)
			for _, x := range subsets {
				cl := Closure(x, fx.fds)
				require.True(t, x.SubsetOf(cl), "%s ⊄ its closure", x)

				again := Closure(cl, fx.fds)
				require.True(t, again.Equal(cl), "closure not idempotent for %s", x)
			}

			// Monotonicity over pairs.
			for _, x := range subsets {
				for _, y := range subsets {
					if !x.SubsetOf(y) {
						continue
					}
					cx, cy := Closure(x, fx.fds), Closure(y, fx.fds)
					require.True(t, cx.SubsetOf(cy), "closure not monotone: %s ⊆ %s", x, y)
				}
			}

			for _, f := range fx.fds {
				cl := Closure(f.LHS, fx.fds)
				require.True(t, f.RHS.SubsetOf(cl), "augmentation fails for %s", f)
			}
		})
	}
}

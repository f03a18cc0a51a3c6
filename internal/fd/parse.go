package fd

import (
	"fmt"
	"strings"

	"github.com/relnorm/relnorm/internal/attr"
)

// ParseAttrList parses a comma-separated attribute list such as
// "A, B, C" into a set. Blank entries are skipped.
func ParseAttrList(s string) attr.Set {
	set := make(attr.Set)
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		set.Add(name)
	}
	return set
}

// ParseFD parses a dependency written as "A, B -> C, D" and admits it.
func ParseFD(s string) (FD, error) {
	sides := strings.SplitN(s, "->", 2)
	if len(sides) != 2 {
		return FD{}, fmt.Errorf("dependency %q: expected form \"LHS -> RHS\"", s)
	}
	return New(ParseAttrList(sides[0]), ParseAttrList(sides[1]))
}

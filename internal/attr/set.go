// Package attr implements the attribute-set algebra the normalization
// engine is built on. An attribute is an opaque, case-sensitive symbol;
// a Set is an unordered collection of distinct attributes with the usual
// algebraic operations and a canonical serialization used for map keys
// and deterministic output.
package attr

import (
	"encoding/json"
	"sort"
	"strings"
)

// Separator joins sorted attributes in the canonical serialization.
const Separator = ", "

// Set is an unordered collection of distinct attribute names.
type Set map[string]struct{}

// NewSet constructs a set from the given attribute names. Duplicates collapse.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Add inserts name into the set.
func (s Set) Add(name string) {
	s[name] = struct{}{}
}

// Contains reports whether name is a member of the set.
func (s Set) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of attributes in the set.
func (s Set) Len() int { return len(s) }

// Empty reports whether the set has no members.
func (s Set) Empty() bool { return len(s) == 0 }

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for a := range s {
		c[a] = struct{}{}
	}
	return c
}

// Union returns a new set with all members of s and other.
func (s Set) Union(other Set) Set {
	u := make(Set, len(s)+len(other))
	for a := range s {
		u[a] = struct{}{}
	}
	for a := range other {
		u[a] = struct{}{}
	}
	return u
}

// Intersect returns a new set with the members common to s and other.
func (s Set) Intersect(other Set) Set {
	r := make(Set)
	for a := range s {
		if other.Contains(a) {
			r[a] = struct{}{}
		}
	}
	return r
}

// Diff returns a new set with the members of s not in other.
func (s Set) Diff(other Set) Set {
	r := make(Set)
	for a := range s {
		if !other.Contains(a) {
			r[a] = struct{}{}
		}
	}
	return r
}

// Equal reports whether s and other have exactly the same members.
func (s Set) Equal(other Set) bool {
	return len(s) == len(other) && s.SubsetOf(other)
}

// SubsetOf reports whether every member of s is in other.
func (s Set) SubsetOf(other Set) bool {
	if len(s) > len(other) {
		return false
	}
	for a := range s {
		if !other.Contains(a) {
			return false
		}
	}
	return true
}

// ProperSubsetOf reports whether s ⊊ other.
func (s Set) ProperSubsetOf(other Set) bool {
	return len(s) < len(other) && s.SubsetOf(other)
}

// SupersetOf reports whether every member of other is in s.
func (s Set) SupersetOf(other Set) bool {
	return other.SubsetOf(s)
}

// ProperSupersetOf reports whether s ⊋ other.
func (s Set) ProperSupersetOf(other Set) bool {
	return other.ProperSubsetOf(s)
}

// Sorted returns the attributes in byte-wise lexicographic order.
func (s Set) Sorted() []string {
	names := make([]string, 0, len(s))
	for a := range s {
		names = append(names, a)
	}
	sort.Strings(names)
	return names
}

// Canonical returns the canonical serialization: attributes sorted
// lexicographically and joined by ", ". Two sets are equal iff their
// canonical forms are equal, so the result is usable as a map key.
func (s Set) Canonical() string {
	return strings.Join(s.Sorted(), Separator)
}

// String renders the set in brace notation, e.g. "{A, B}".
func (s Set) String() string {
	return "{" + s.Canonical() + "}"
}

// MarshalJSON encodes the set as a sorted JSON array of attribute names.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes a JSON array of attribute names.
func (s *Set) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = NewSet(names...)
	return nil
}

// SortSets orders sets by (size ascending, canonical serialization
// ascending), the ordering exposed for candidate keys.
func SortSets(sets []Set) {
	sort.Slice(sets, func(i, j int) bool {
		if sets[i].Len() != sets[j].Len() {
			return sets[i].Len() < sets[j].Len()
		}
		return sets[i].Canonical() < sets[j].Canonical()
	})
}

// SortSetsBySizeDesc orders sets by (size descending, canonical
// serialization ascending), the ordering exposed for decompositions.
func SortSetsBySizeDesc(sets []Set) {
	sort.Slice(sets, func(i, j int) bool {
		if sets[i].Len() != sets[j].Len() {
			return sets[i].Len() > sets[j].Len()
		}
		return sets[i].Canonical() < sets[j].Canonical()
	})
}

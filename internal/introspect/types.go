// Package introspect derives relation schemas from a live PostgreSQL
// database: each table's columns form the attribute universe, and each
// PRIMARY KEY or UNIQUE constraint contributes a functional dependency
// from its columns to the rest of the table.
package introspect

import (
	"fmt"

	"github.com/relnorm/relnorm/internal/attr"
	"github.com/relnorm/relnorm/internal/fd"
)

// KeyConstraint is a PRIMARY KEY or UNIQUE constraint on a table.
type KeyConstraint struct {
	Name    string
	Primary bool
	Columns []string
}

// TableInfo holds the catalog facts needed to derive a relation schema.
type TableInfo struct {
	Schema  string
	Name    string
	Columns []string // ordinal order
	Keys    []KeyConstraint
}

// FullName returns the schema-qualified table name.
func (t *TableInfo) FullName() string {
	return t.Schema + "." + t.Name
}

// BuildSchema derives the relation schema R(A, F) for the table. Every
// column is an attribute; each key constraint over columns K yields the
// dependency K → (A \ K). A constraint covering every column determines
// nothing beyond itself and contributes no dependency.
func (t *TableInfo) BuildSchema() (*fd.Schema, error) {
	universe := attr.NewSet(t.Columns...)

	var fds []fd.FD
	for _, k := range t.Keys {
		lhs := attr.NewSet(k.Columns...)
		rhs := universe.Diff(lhs)
		if rhs.Empty() {
			continue
		}
		d, err := fd.New(lhs, rhs)
		if err != nil {
			return nil, fmt.Errorf("table %s: constraint %s: %w", t.FullName(), k.Name, err)
		}
		fds = append(fds, d)
	}

	sch, err := fd.NewSchema(universe, fds)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", t.FullName(), err)
	}
	return sch, nil
}

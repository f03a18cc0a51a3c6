package introspect

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Introspect queries PostgreSQL catalogs and returns every table in the
// given schemas with its columns and key constraints, sorted by
// qualified name.
func Introspect(ctx context.Context, pool *pgxpool.Pool, schemas []string) ([]*TableInfo, error) {
	tables, err := queryColumns(ctx, pool, schemas)
	if err != nil {
		return nil, fmt.Errorf("querying tables and columns: %w", err)
	}

	if err := queryKeyConstraints(ctx, pool, schemas, tables); err != nil {
		return nil, fmt.Errorf("querying key constraints: %w", err)
	}

	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*TableInfo, 0, len(names))
	for _, name := range names {
		out = append(out, tables[name])
	}
	return out, nil
}

func queryColumns(ctx context.Context, pool *pgxpool.Pool, schemas []string) (map[string]*TableInfo, error) {
	query := `
		SELECT
			n.nspname AS schema_name,
			c.relname AS table_name,
			a.attname AS column_name
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		JOIN pg_attribute a ON a.attrelid = c.oid
		WHERE c.relkind = 'r'
			AND a.attnum > 0
			AND NOT a.attisdropped
			AND n.nspname = ANY($1)
		ORDER BY n.nspname, c.relname, a.attnum
	`

	rows, err := pool.Query(ctx, query, schemas)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := make(map[string]*TableInfo)
	for rows.Next() {
		var schemaName, tableName, colName string
		if err := rows.Scan(&schemaName, &tableName, &colName); err != nil {
			return nil, err
		}

		key := schemaName + "." + tableName
		tbl, ok := tables[key]
		if !ok {
			tbl = &TableInfo{
				Schema: schemaName,
				Name:   tableName,
			}
			tables[key] = tbl
		}
		tbl.Columns = append(tbl.Columns, colName)
	}

	return tables, rows.Err()
}

func queryKeyConstraints(ctx context.Context, pool *pgxpool.Pool, schemas []string, tables map[string]*TableInfo) error {
	query := `
		SELECT
			n.nspname AS schema_name,
			c.relname AS table_name,
			con.conname AS constraint_name,
			con.contype = 'p' AS is_primary,
			a.attname AS column_name,
			u.ord AS key_position
		FROM pg_constraint con
		JOIN pg_class c ON c.oid = con.conrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		CROSS JOIN LATERAL unnest(con.conkey) WITH ORDINALITY AS u(attnum, ord)
		JOIN pg_attribute a ON a.attrelid = c.oid AND a.attnum = u.attnum
		WHERE con.contype IN ('p', 'u')
			AND n.nspname = ANY($1)
		ORDER BY n.nspname, c.relname, con.conname, u.ord
	`

	rows, err := pool.Query(ctx, query, schemas)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var schemaName, tableName, conName, colName string
		var isPrimary bool
		var keyPos int
		if err := rows.Scan(&schemaName, &tableName, &conName, &isPrimary, &colName, &keyPos); err != nil {
			return err
		}

		key := schemaName + "." + tableName
		tbl, ok := tables[key]
		if !ok {
			continue
		}

		if n := len(tbl.Keys); n > 0 && tbl.Keys[n-1].Name == conName {
			tbl.Keys[n-1].Columns = append(tbl.Keys[n-1].Columns, colName)
			continue
		}
		tbl.Keys = append(tbl.Keys, KeyConstraint{
			Name:    conName,
			Primary: isPrimary,
			Columns: []string{colName},
		})
	}

	return rows.Err()
}

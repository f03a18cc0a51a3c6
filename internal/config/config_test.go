package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRelations(t *testing.T) {
	path := writeConfig(t, `
relations:
  - name: orders
    attributes: [A, B, C, D, E]
    fds:
      - lhs: [A]
        rhs: [B, C]
      - "B -> D"
      - "A, E -> C"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.ValidateForAnalyze())

	require.Len(t, cfg.Relations, 1)
	rel := cfg.Relations[0]
	assert.Equal(t, "orders", rel.Name)
	require.Len(t, rel.FDs, 3)
	assert.Equal(t, []string{"A"}, rel.FDs[0].LHS)
	assert.Equal(t, []string{"B", "C"}, rel.FDs[0].RHS)
	assert.Equal(t, []string{"B"}, rel.FDs[1].LHS)
	assert.Equal(t, []string{"D"}, rel.FDs[1].RHS)
	assert.Equal(t, []string{"A", "E"}, rel.FDs[2].LHS)
	assert.Equal(t, []string{"C"}, rel.FDs[2].RHS)
}

func TestLoadRejectsBadArrowFD(t *testing.T) {
	path := writeConfig(t, `
relations:
  - name: broken
    attributes: [A]
    fds:
      - "A, B"
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
relations:
  - name: r
    attributes: [A]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Engine.ClosureCap)
	assert.Equal(t, 4, cfg.Engine.Concurrency)
	assert.Equal(t, []string{"public"}, cfg.Schemas)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidateForAnalyze(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.ValidateForAnalyze())

	cfg.Relations = []Relation{{Attributes: []string{"A"}}}
	assert.Error(t, cfg.ValidateForAnalyze(), "relation name is required")

	cfg.Relations = []Relation{{Name: "r"}}
	assert.Error(t, cfg.ValidateForAnalyze(), "attributes or fds required")

	cfg.Relations = []Relation{{Name: "r", Attributes: []string{"A"}}}
	assert.NoError(t, cfg.ValidateForAnalyze())
}

func TestValidateForInspect(t *testing.T) {
	cfg := &Config{Connection: Connection{
		Host:     "localhost",
		Database: "app",
		User:     "app",
	}}
	require.NoError(t, cfg.ValidateForInspect())
	assert.Equal(t, 5432, cfg.Connection.Port)
	assert.Equal(t, "disable", cfg.Connection.SSLMode)

	bad := &Config{}
	assert.Error(t, bad.ValidateForInspect())
}

func TestEnvFallback(t *testing.T) {
	t.Setenv("PGHOST", "db.internal")
	t.Setenv("PGPORT", "6432")
	t.Setenv("PGDATABASE", "warehouse")
	t.Setenv("PGUSER", "reader")

	path := writeConfig(t, `
connection:
  user: explicit
relations:
  - name: r
    attributes: [A]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Connection.Host)
	assert.Equal(t, 6432, cfg.Connection.Port)
	assert.Equal(t, "warehouse", cfg.Connection.Database)
	assert.Equal(t, "explicit", cfg.Connection.User, "YAML takes precedence over env")
}

func TestDSN(t *testing.T) {
	c := Connection{Host: "h", Port: 5432, Database: "d", User: "u", Password: "p", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5432 dbname=d user=u password=p sslmode=disable", c.DSN())
}

func TestBuildSchema(t *testing.T) {
	rel := Relation{
		Name:       "orders",
		Attributes: []string{"A", "E"},
		FDs: []FDSpec{
			{LHS: []string{"A"}, RHS: []string{"B", "C"}},
			{LHS: []string{"B"}, RHS: []string{"D"}},
		},
	}
	sch, err := rel.BuildSchema()
	require.NoError(t, err)
	assert.Equal(t, "A, B, C, D, E", sch.Attrs.Canonical())
	require.Len(t, sch.FDs, 2)
}

func TestBuildSchemaRejectsTrivialFD(t *testing.T) {
	rel := Relation{
		Name:       "bad",
		Attributes: []string{"A", "B"},
		FDs:        []FDSpec{{LHS: []string{"A", "B"}, RHS: []string{"A"}}},
	}
	_, err := rel.BuildSchema()
	assert.Error(t, err)
}

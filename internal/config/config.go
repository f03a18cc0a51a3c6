package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/relnorm/relnorm/internal/attr"
	"github.com/relnorm/relnorm/internal/fd"
)

// Config represents the top-level YAML configuration.
type Config struct {
	Connection Connection `yaml:"connection"`
	Schemas    []string   `yaml:"schemas"`
	Relations  []Relation `yaml:"relations"`
	Engine     Engine     `yaml:"engine"`
}

// Connection holds database connection parameters.
type Connection struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// Relation declares a relation schema to analyze: its attribute universe
// and functional dependencies.
type Relation struct {
	Name       string   `yaml:"name"`
	Attributes []string `yaml:"attributes"`
	FDs        []FDSpec `yaml:"fds"`
}

// FDSpec is one functional dependency in the config. It accepts either
// the mapping form
//
//	- lhs: [A, B]
//	  rhs: [C]
//
// or the arrow shorthand
//
//	- "A, B -> C"
type FDSpec struct {
	LHS []string `yaml:"lhs"`
	RHS []string `yaml:"rhs"`
}

// UnmarshalYAML decodes either form of FDSpec.
func (f *FDSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var arrow string
		if err := node.Decode(&arrow); err != nil {
			return err
		}
		parsed, err := fd.ParseFD(arrow)
		if err != nil {
			return err
		}
		f.LHS = parsed.LHS.Sorted()
		f.RHS = parsed.RHS.Sorted()
		return nil
	}

	type plain FDSpec
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*f = FDSpec(p)
	return nil
}

// Engine holds tuning knobs for the normalization engine.
type Engine struct {
	// ClosureCap bounds the all-subset-closures display (never key
	// discovery). Defaults to 8.
	ClosureCap int `yaml:"closure_cap"`
	// Concurrency bounds concurrent per-table analyses during inspect.
	Concurrency int `yaml:"concurrency"`
}

// DSN builds a PostgreSQL connection string.
func (c *Connection) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Database, c.User, c.Password, c.SSLMode,
	)
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	return &cfg, nil
}

// applyEnv fills in empty Connection fields from environment variables.
// YAML values take precedence; env vars are used only as fallback.
func (c *Config) applyEnv() {
	conn := &c.Connection
	if conn.Host == "" {
		conn.Host = envOr("PGHOST", "POSTGRES_HOST")
	}
	if conn.Port == 0 {
		if s := envOr("PGPORT", "POSTGRES_PORT"); s != "" {
			if p, err := strconv.Atoi(s); err == nil {
				conn.Port = p
			}
		}
	}
	if conn.Database == "" {
		conn.Database = envOr("PGDATABASE", "POSTGRES_DB")
	}
	if conn.User == "" {
		conn.User = envOr("PGUSER", "POSTGRES_USER")
	}
	if conn.Password == "" {
		conn.Password = envOr("PGPASSWORD", "POSTGRES_PASSWORD")
	}
	if conn.SSLMode == "" {
		conn.SSLMode = envOr("PGSSLMODE")
	}
}

// envOr returns the first non-empty value from the given env var names.
func envOr(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

func (c *Config) applyDefaults() {
	if c.Engine.ClosureCap == 0 {
		c.Engine.ClosureCap = 8
	}
	if c.Engine.Concurrency == 0 {
		c.Engine.Concurrency = 4
	}
	if len(c.Schemas) == 0 {
		c.Schemas = []string{"public"}
	}
}

// ValidateForAnalyze checks the fields required to analyze declared relations.
func (c *Config) ValidateForAnalyze() error {
	if len(c.Relations) == 0 {
		return fmt.Errorf("at least one relation must be declared in config")
	}
	for i, r := range c.Relations {
		if r.Name == "" {
			return fmt.Errorf("relations[%d].name is required", i)
		}
		if len(r.Attributes) == 0 && len(r.FDs) == 0 {
			return fmt.Errorf("relations[%d] (%s): attributes or fds required", i, r.Name)
		}
	}
	return nil
}

// ValidateForInspect checks the connection fields required for live
// database inspection.
func (c *Config) ValidateForInspect() error {
	if c.Connection.Host == "" {
		return fmt.Errorf("connection.host is required")
	}
	if c.Connection.Port == 0 {
		c.Connection.Port = 5432
	}
	if c.Connection.Database == "" {
		return fmt.Errorf("connection.database is required")
	}
	if c.Connection.User == "" {
		return fmt.Errorf("connection.user is required")
	}
	if c.Connection.SSLMode == "" {
		c.Connection.SSLMode = "disable"
	}
	return nil
}

// BuildSchema admits a declared relation into a relation schema.
func (r *Relation) BuildSchema() (*fd.Schema, error) {
	var fds []fd.FD
	for i, spec := range r.FDs {
		d, err := fd.New(attr.NewSet(spec.LHS...), attr.NewSet(spec.RHS...))
		if err != nil {
			return nil, fmt.Errorf("relation %s: fds[%d]: %w", r.Name, i, err)
		}
		fds = append(fds, d)
	}
	sch, err := fd.NewSchema(attr.NewSet(r.Attributes...), fds)
	if err != nil {
		return nil, fmt.Errorf("relation %s: %w", r.Name, err)
	}
	return sch, nil
}

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/relnorm/relnorm/internal/db"
	"github.com/relnorm/relnorm/internal/introspect"
	"github.com/relnorm/relnorm/internal/norm"
)

var inspectFormat string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect a live PostgreSQL database and analyze every table",
	Long: `Connects to the database, derives each table's relation schema from its
columns and key constraints, and runs the normalization analysis on every
table. Tables are analyzed concurrently; output order is deterministic.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := cfg.ValidateForInspect(); err != nil {
			return err
		}

		write, err := writerFor(inspectFormat)
		if err != nil {
			return err
		}

		pool, err := db.NewPool(ctx, &cfg.Connection)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()

		tables, err := introspect.Introspect(ctx, pool, cfg.Schemas)
		if err != nil {
			return fmt.Errorf("introspecting schema: %w", err)
		}
		if len(tables) == 0 {
			return fmt.Errorf("no tables found in schemas %v", cfg.Schemas)
		}

		analyzer := norm.Analyzer{ClosureCap: cfg.Engine.ClosureCap}

		// The kernel is pure, so per-table analyses run concurrently.
		// Each goroutine renders into its own buffer; buffers are
		// flushed in table order afterwards.
		reports := make([]*norm.Report, len(tables))
		bufs := make([]bytes.Buffer, len(tables))

		var g errgroup.Group
		g.SetLimit(cfg.Engine.Concurrency)
		for i, tbl := range tables {
			i, tbl := i, tbl
			g.Go(func() error {
				sch, err := tbl.BuildSchema()
				if err != nil {
					return err
				}
				reports[i] = analyzer.Analyze(sch)
				return write(&bufs[i], tbl.FullName(), reports[i])
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i := range bufs {
			if i > 0 && inspectFormat == "text" {
				fmt.Println()
			}
			if _, err := bufs[i].WriteTo(os.Stdout); err != nil {
				return err
			}
		}

		inBCNF := 0
		for _, rep := range reports {
			if rep.NormalForms.IsBCNF {
				inBCNF++
			}
		}
		fmt.Fprintf(os.Stderr, "Inspected %d tables: %d in BCNF, %d need decomposition\n",
			len(tables), inBCNF, len(tables)-inBCNF)

		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "text", "output format: text, mermaid, or json")
	rootCmd.AddCommand(inspectCmd)
}

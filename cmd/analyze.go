package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/relnorm/relnorm/internal/norm"
	"github.com/relnorm/relnorm/internal/render"
)

var (
	analyzeFormat   string
	analyzeRelation string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze relations declared in the config file",
	Long:  `Builds each declared relation schema, runs the normalization analysis, and writes the reports in the specified format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateForAnalyze(); err != nil {
			return err
		}

		write, err := writerFor(analyzeFormat)
		if err != nil {
			return err
		}

		analyzer := norm.Analyzer{ClosureCap: cfg.Engine.ClosureCap}

		written := 0
		for _, rel := range cfg.Relations {
			if analyzeRelation != "" && rel.Name != analyzeRelation {
				continue
			}

			sch, err := rel.BuildSchema()
			if err != nil {
				return err
			}
			rep := analyzer.Analyze(sch)

			if written > 0 && analyzeFormat == "text" {
				fmt.Println()
			}
			if err := write(os.Stdout, rel.Name, rep); err != nil {
				return fmt.Errorf("writing report for %s: %w", rel.Name, err)
			}
			written++
		}

		if written == 0 {
			return fmt.Errorf("relation %q not found in config", analyzeRelation)
		}
		return nil
	},
}

func writerFor(format string) (func(io.Writer, string, *norm.Report) error, error) {
	switch format {
	case "text":
		return render.WriteText, nil
	case "mermaid":
		return render.WriteMermaid, nil
	case "json":
		return render.WriteJSON, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (supported: text, mermaid, json)", format)
	}
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "text", "output format: text, mermaid, or json")
	analyzeCmd.Flags().StringVar(&analyzeRelation, "relation", "", "analyze only the named relation")
	rootCmd.AddCommand(analyzeCmd)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/relnorm/relnorm/internal/config"
)

var (
	cfgPath string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "relnorm",
	Short: "Classify and normalize relational schemas",
	Long: `relnorm analyzes relation schemas given their functional dependencies:
it computes attribute closures, candidate keys, and a minimal cover,
classifies the schema against 2NF/3NF/BCNF, and produces lossless
decompositions into each target form. Relations come from a YAML config
(analyze) or from a live PostgreSQL database (inspect).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgPath == "" {
			return fmt.Errorf("--config is required")
		}
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file (required)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

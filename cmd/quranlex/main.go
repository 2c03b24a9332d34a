package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Tameem1/quranlex/internal/config"
	"github.com/Tameem1/quranlex/internal/logging"
	"github.com/Tameem1/quranlex/pkg/engine"
)

var (
	// Global flags
	cfgPath string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "quranlex",
	Short: "quranlex - Qur'anic vocabulary retrieval tooling",
	Long: `quranlex maintains and queries the Qur'anic morphology corpus.

It covers the corpus lifecycle end to end: ingesting the raw morphology and
Lisan al-Arab sources into JSONL, packing the JSONL corpora into a single
SQLite snapshot, and running lookups against a loaded engine.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, cfg.Logging.Development)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// newEngine loads the corpora named in the config and wires the retrieval
// components.
func newEngine(cmd *cobra.Command) (*engine.Engine, error) {
	return engine.New(cmd.Context(), cfg, logger)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "quranlex.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(lookupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

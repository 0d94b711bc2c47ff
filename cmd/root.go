package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/ksnavely/dmp/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg    *cfgpkg.Global
	cfgErr error
)

var rootCmd = &cobra.Command{
	Use:   "dmp",
	Short: "Rank NY deer management units by harvest density and permit odds",
	Long: `dmp joins the DEC deer management permit table (dmp.csv) with the harvest
totals table (total_taken.csv), drops units that are out of range or not worth
applying for, scores the rest and prints three ranked reports.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRank,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.dmp/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	addRankFlags(rootCmd)
}

// loadConfig records the load error; commands report it through currentConfig.
func loadConfig() {
	cfg, cfgErr = cfgpkg.Load(cfgFile)
}

// currentConfig returns the loaded config, loading it when OnInitialize did not run.
func currentConfig() (*cfgpkg.Global, error) {
	if cfg == nil && cfgErr == nil {
		loadConfig()
	}
	if cfgErr != nil {
		return nil, fmt.Errorf("load config: %w", cfgErr)
	}
	return cfg, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

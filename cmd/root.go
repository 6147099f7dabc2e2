package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/riskprep-cli/internal/config"
	"github.com/KaramelBytes/riskprep-cli/internal/dataset"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile     string
	debug       bool
	flagVariant string

	// Loaded configuration
	cfg *cfgpkg.Global
	// Process-wide log sink, built once from config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "riskprep",
	Short: "riskprep: load, validate and clean loan-applicant datasets",
	Long: `riskprep loads a JSON loan-applicant dataset, checks that every required column is present,
forward-fills missing values and, in the encoded variant, label-encodes categorical columns
so the result can be fed to a risk model.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.riskprep/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagVariant, "variant", "", "pipeline variant: encoded | training (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{Variant: string(dataset.VariantEncoded), LogLevel: "info", OutputFormat: "json", OutputOrient: "records", PreviewRows: 5}
	}
	cfg = c

	// Apply CLI overrides if provided
	if rootCmd.PersistentFlags().Changed("variant") {
		cfg.Variant = flagVariant
	}
	level, _ := cfgpkg.ParseLevel(cfg.LogLevel)
	if debug {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(rootCmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// newLoader builds a dataset loader from the effective configuration.
func newLoader() (*dataset.Loader, error) {
	v, err := dataset.ParseVariant(cfg.Variant)
	if err != nil {
		return nil, err
	}
	return dataset.NewLoader(dataset.Options{Variant: v, Logger: logger}), nil
}

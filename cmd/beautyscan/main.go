package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/winzyu/beauty-product-analysis/internal/config"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "beautyscan",
		Short: "beautyscan — makeup price comparison across Target, Rite Aid, and Ulta",
		Long: `beautyscan collects makeup product listings from Target, Rite Aid, and
Ulta, normalizes them into comparable records, and reports the cheapest
way to assemble a full makeup routine.

Commands:
  fetch   pull live listings into the raw data tree
  run     normalize the raw data tree and build price reports`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("beautyscan %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Pricing:\n")
			fmt.Printf("  Unparseable Policy: %s\n", cfg.Pricing.UnparseablePolicy)
			fmt.Printf("  Sentinel Value:     %.1f\n", cfg.Pricing.SentinelValue)
			fmt.Printf("\nCategories:          %v\n", cfg.Categories)
			fmt.Printf("\nStores:\n")
			fmt.Printf("  Target store ID:    %s (zip %s, max %d pages)\n",
				cfg.Stores.Target.StoreID, cfg.Stores.Target.ZipCode, cfg.Stores.Target.MaxPages)
			fmt.Printf("  Rite Aid base URL:  %s (max %d pages)\n",
				cfg.Stores.RiteAid.BaseURL, cfg.Stores.RiteAid.MaxPages)
			fmt.Printf("  Ulta base URL:      %s (browser: %v)\n",
				cfg.Stores.Ulta.BaseURL, cfg.Stores.Ulta.UseBrowser)
			fmt.Printf("\nData:\n")
			fmt.Printf("  Raw Dir:            %s\n", cfg.Data.RawDir)
			fmt.Printf("\nStorage:\n")
			fmt.Printf("  Type:               %s\n", cfg.Storage.Type)
			fmt.Printf("  Output Path:        %s\n", cfg.Storage.OutputPath)
			fmt.Printf("\nReport:\n")
			fmt.Printf("  Output Dir:         %s\n", cfg.Report.OutputDir)
			fmt.Printf("  HTML:               %v\n", cfg.Report.HTML)
			fmt.Printf("\nMetrics:\n")
			fmt.Printf("  Enabled:            %v\n", cfg.Metrics.Enabled)
			fmt.Printf("  Port:               %d\n", cfg.Metrics.Port)
			return nil
		},
	}
}

// setupLogger creates a structured logger.
func setupLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	} else {
		switch cfg.Logging.Level {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

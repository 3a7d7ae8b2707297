package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/winzyu/beauty-product-analysis/internal/aggregate"
	"github.com/winzyu/beauty-product-analysis/internal/config"
	"github.com/winzyu/beauty-product-analysis/internal/ingest"
	"github.com/winzyu/beauty-product-analysis/internal/normalize"
	"github.com/winzyu/beauty-product-analysis/internal/observability"
	"github.com/winzyu/beauty-product-analysis/internal/pipeline"
	"github.com/winzyu/beauty-product-analysis/internal/report"
	"github.com/winzyu/beauty-product-analysis/internal/storage"
)

var (
	runDataDir    string
	runOutputPath string
	runOutputType string
	runPolicy     string
	runReportDir  string
)

// runCmd creates the "run" subcommand.
func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Normalize raw data and build price reports",
		Long: `Load every raw listing file under the data tree, clean and normalize
the products into comparable records, and write the cheapest-routine
analysis to the report directory.`,
		RunE: runAnalysis,
	}

	cmd.Flags().StringVar(&runDataDir, "data-dir", "", "raw data tree root (data/<store>/<category>/*.json)")
	cmd.Flags().StringVarP(&runOutputPath, "output", "o", "", "normalized records output directory")
	cmd.Flags().StringVarP(&runOutputType, "format", "f", "", "output format: json, jsonl, csv, mongodb")
	cmd.Flags().StringVar(&runPolicy, "unparseable-policy", "", "price policy: exclude or sentinel")
	cmd.Flags().StringVar(&runReportDir, "report-dir", "", "report output directory")

	return cmd
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyRunOverrides(cfg)

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := setupLogger(cfg)
	metrics := observability.NewMetrics(logger)
	if cfg.Metrics.Enabled {
		if err := metrics.StartServer(cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
			logger.Warn("failed to start metrics server", "error", err)
		}
	}

	start := time.Now()
	logger.Info("starting analysis",
		"data_dir", cfg.Data.RawDir,
		"policy", cfg.Pricing.UnparseablePolicy,
		"categories", len(cfg.Categories),
	)

	// Load raw items from the data tree.
	loader := ingest.NewLoader(cfg.Data.RawDir, metrics, logger)
	items, err := loader.Load()
	if err != nil {
		return fmt.Errorf("load raw data: %w", err)
	}

	// Clean every item through the shared middleware chain.
	pipe := pipeline.Default(pipeline.New(logger))
	cleaned := items[:0]
	for _, item := range items {
		out, err := pipe.Process(item)
		if err != nil {
			logger.Warn("pipeline error, item skipped", "error", err)
			continue
		}
		if out != nil {
			cleaned = append(cleaned, out)
		}
	}

	// Normalize into comparable records.
	normalizer := normalize.New(cfg.Pricing.Policy(), metrics, logger)
	records := normalizer.Batch(cleaned)

	// Group, dedupe, and pick the cheapest options.
	collection := aggregate.Aggregate(records, cfg.Categories, metrics, logger)
	analysis := report.Build(collection, logger)

	// Persist normalized records.
	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("create storage: %w", err)
	}
	all := collection.All()
	if err := store.Store(all); err != nil {
		store.Close()
		return fmt.Errorf("store records: %w", err)
	}
	metrics.RecordsStored.Add(int64(len(all)))
	if err := store.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}

	// Write reports.
	if err := analysis.Save(cfg.Report.OutputDir, cfg.Report.HTML); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}

	elapsed := time.Since(start)
	snap := metrics.Snapshot()
	logger.Info("analysis complete",
		"elapsed", elapsed,
		"items", snap["items_ingested"],
		"records", snap["records_normalized"],
		"duplicates", snap["duplicates_dropped"],
		"unparseable_prices", snap["prices_unparseable"],
	)

	fmt.Printf("\nAnalysis complete in %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("   Items:      %d loaded, %d rejected\n", snap["items_ingested"], snap["records_rejected"])
	fmt.Printf("   Records:    %d normalized, %d duplicates dropped\n", snap["records_normalized"], snap["duplicates_dropped"])
	fmt.Printf("   Output:     %s (%s)\n", cfg.Storage.OutputPath, store.Name())
	fmt.Printf("   Reports:    %s\n", cfg.Report.OutputDir)

	if analysis.Optimal.Total > 0 {
		fmt.Printf("\nOptimal routine: $%.2f across %d categories\n",
			analysis.Optimal.Total, len(analysis.Optimal.Items))
		for _, saving := range analysis.Savings {
			fmt.Printf("   saves $%.2f (%.1f%%) vs %s\n",
				saving.Amount, saving.Percent, saving.Strategy)
		}
	}
	return nil
}

// applyRunOverrides applies command-line flag values to the config.
func applyRunOverrides(cfg *config.Config) {
	if runDataDir != "" {
		cfg.Data.RawDir = runDataDir
	}
	if runOutputPath != "" {
		cfg.Storage.OutputPath = runOutputPath
	}
	if runOutputType != "" {
		cfg.Storage.Type = strings.ToLower(runOutputType)
	}
	if runPolicy != "" {
		cfg.Pricing.UnparseablePolicy = strings.ToLower(runPolicy)
	}
	if runReportDir != "" {
		cfg.Report.OutputDir = runReportDir
	}
}

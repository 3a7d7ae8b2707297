package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/winzyu/beauty-product-analysis/internal/config"
	"github.com/winzyu/beauty-product-analysis/internal/fetch"
	"github.com/winzyu/beauty-product-analysis/internal/ingest"
	"github.com/winzyu/beauty-product-analysis/internal/types"
)

var (
	fetchStores     string
	fetchDataDir    string
	fetchUltaLog    string
	fetchRANotebook string
)

// fetchCmd creates the "fetch" subcommand.
func fetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Pull live listings into the raw data tree",
		Long: `Fetch current listings for every configured category and write them
under the raw data tree as data/<store>/<category>/fetched.json, ready
for the run command.

Target uses the Redsky search API and Rite Aid the catalog search
pages. Ulta listings come from scraper log files (--ulta-log); older
Rite Aid runs can be imported from notebook text dumps
(--riteaid-notebook).`,
		RunE: runFetch,
	}

	cmd.Flags().StringVar(&fetchStores, "stores", "target,riteaid", "comma-separated stores to fetch")
	cmd.Flags().StringVar(&fetchDataDir, "data-dir", "", "raw data tree root")
	cmd.Flags().StringVar(&fetchUltaLog, "ulta-log", "", "import an Ulta scraper log file")
	cmd.Flags().StringVar(&fetchRANotebook, "riteaid-notebook", "", "import a Rite Aid notebook text dump")

	return cmd
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if fetchDataDir != "" {
		cfg.Data.RawDir = fetchDataDir
	}

	logger := setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if fetchUltaLog != "" {
		if err := importUltaLog(cfg, logger); err != nil {
			return err
		}
	}
	if fetchRANotebook != "" {
		if err := importRiteAidNotebook(cfg, logger); err != nil {
			return err
		}
	}

	stores := map[string]bool{}
	for _, s := range strings.Split(fetchStores, ",") {
		stores[strings.TrimSpace(s)] = true
	}

	if stores["ulta"] && cfg.Stores.Ulta.UseBrowser {
		if err := captureUltaPages(ctx, cfg, logger); err != nil {
			logger.Error("ulta capture failed", "error", err)
		}
	}
	if !stores["target"] && !stores["riteaid"] {
		return nil
	}

	httpFetcher, err := fetch.NewHTTPFetcher(&cfg.Fetch, logger)
	if err != nil {
		return fmt.Errorf("create fetcher: %w", err)
	}
	defer httpFetcher.Close()

	targetClient := fetch.NewTargetClient(httpFetcher, &cfg.Stores.Target, &cfg.Fetch, logger)
	riteAidClient := fetch.NewRiteAidClient(httpFetcher, &cfg.Stores.RiteAid, &cfg.Fetch, logger)

	for _, category := range cfg.Categories {
		term := strings.ReplaceAll(category, "_", " ")

		if stores["target"] {
			items, err := targetClient.SearchAll(ctx, term, category)
			if err != nil {
				logger.Error("target fetch failed", "category", category, "error", err)
			} else if err := writeRawItems(cfg.Data.RawDir, types.StoreTarget, category, items); err != nil {
				return err
			}
		}
		if stores["riteaid"] {
			items, err := riteAidClient.SearchAll(ctx, term, category)
			if err != nil {
				logger.Error("riteaid fetch failed", "category", category, "error", err)
			} else if err := writeRawItems(cfg.Data.RawDir, types.StoreRiteAid, category, items); err != nil {
				return err
			}
		}

		if ctx.Err() != nil {
			logger.Info("fetch interrupted")
			return nil
		}
	}

	fmt.Printf("Raw listings written under %s\n", cfg.Data.RawDir)
	return nil
}

// captureUltaPages renders each category's listing page in a headless
// browser and snapshots the HTML next to the raw JSON. Ulta builds its
// product grid client-side, so a plain GET returns an empty shell; the
// snapshots feed the log-producing scraper run.
func captureUltaPages(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	browser, err := fetch.NewBrowserFetcher(&cfg.Fetch, logger)
	if err != nil {
		return fmt.Errorf("create browser fetcher: %w", err)
	}
	defer browser.Close()

	for _, category := range cfg.Categories {
		term := strings.ReplaceAll(category, "_", " ")
		pageURL := cfg.Stores.Ulta.BaseURL + "/shop?search=" + strings.ReplaceAll(term, " ", "+")

		html, err := browser.Fetch(ctx, pageURL)
		if err != nil {
			logger.Error("ulta page fetch failed", "category", category, "error", err)
			continue
		}

		dir := filepath.Join(cfg.Data.RawDir, string(types.StoreUlta), category)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "listing.html"), html, 0o644); err != nil {
			return fmt.Errorf("write ulta snapshot: %w", err)
		}
		logger.Info("ulta listing captured", "category", category, "bytes", len(html))

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return nil
}

// importUltaLog converts a scraper log into raw data files.
func importUltaLog(cfg *config.Config, logger *slog.Logger) error {
	data, err := os.ReadFile(fetchUltaLog)
	if err != nil {
		return fmt.Errorf("read ulta log: %w", err)
	}
	items, err := ingest.NewUltaParser(logger).ParseLog(string(data))
	if err != nil {
		return fmt.Errorf("parse ulta log: %w", err)
	}
	return writeByCategory(cfg.Data.RawDir, types.StoreUlta, items)
}

// importRiteAidNotebook converts a notebook text dump into raw data files.
func importRiteAidNotebook(cfg *config.Config, logger *slog.Logger) error {
	data, err := os.ReadFile(fetchRANotebook)
	if err != nil {
		return fmt.Errorf("read riteaid notebook: %w", err)
	}
	items, err := ingest.NewRiteAidParser(logger).ParseNotebook(string(data))
	if err != nil {
		return fmt.Errorf("parse riteaid notebook: %w", err)
	}
	return writeByCategory(cfg.Data.RawDir, types.StoreRiteAid, items)
}

func writeByCategory(root string, store types.Store, items []*types.RawItem) error {
	byCategory := map[string][]*types.RawItem{}
	for _, item := range items {
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}
	for category, categoryItems := range byCategory {
		if err := writeRawItems(root, store, category, categoryItems); err != nil {
			return err
		}
	}
	return nil
}

// writeRawItems saves the items' raw fields as one JSON array in the
// data tree, the same shape the loader reads back.
func writeRawItems(root string, store types.Store, category string, items []*types.RawItem) error {
	if len(items) == 0 {
		return nil
	}

	dir := filepath.Join(root, string(store), category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	fields := make([]map[string]any, len(items))
	for i, item := range items {
		fields[i] = item.Fields
	}

	f, err := os.Create(filepath.Join(dir, "fetched.json"))
	if err != nil {
		return fmt.Errorf("create data file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fields); err != nil {
		return fmt.Errorf("encode data file: %w", err)
	}
	return nil
}

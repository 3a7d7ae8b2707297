package config

import (
	"fmt"

	"github.com/winzyu/beauty-product-analysis/internal/types"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if !cfg.Pricing.Policy().Valid() {
		return fmt.Errorf("pricing.unparseable_policy must be 'exclude' or 'sentinel', got %q (no implicit default)", cfg.Pricing.UnparseablePolicy)
	}
	if cfg.Pricing.SentinelValue <= 0 {
		return fmt.Errorf("pricing.sentinel_value must be > 0, got %v", cfg.Pricing.SentinelValue)
	}

	if len(cfg.Categories) == 0 {
		return fmt.Errorf("categories must not be empty")
	}
	for _, c := range cfg.Categories {
		if types.NormalizeCategory(c) != c {
			return fmt.Errorf("category %q is not normalized (want %q)", c, types.NormalizeCategory(c))
		}
	}

	if cfg.Stores.Target.MaxPages < 1 {
		return fmt.Errorf("stores.target.max_pages must be >= 1, got %d", cfg.Stores.Target.MaxPages)
	}
	if cfg.Stores.RiteAid.MaxPages < 1 {
		return fmt.Errorf("stores.riteaid.max_pages must be >= 1, got %d", cfg.Stores.RiteAid.MaxPages)
	}

	if cfg.Fetch.RequestTimeout <= 0 {
		return fmt.Errorf("fetch.request_timeout must be > 0")
	}
	if cfg.Fetch.PolitenessDelay < 0 {
		return fmt.Errorf("fetch.politeness_delay must be >= 0")
	}
	if cfg.Fetch.MaxRetries < 0 {
		return fmt.Errorf("fetch.max_retries must be >= 0, got %d", cfg.Fetch.MaxRetries)
	}
	if cfg.Fetch.MaxBodySize <= 0 {
		return fmt.Errorf("fetch.max_body_size must be > 0")
	}
	if cfg.Fetch.MaxRedirects < 0 {
		return fmt.Errorf("fetch.max_redirects must be >= 0")
	}

	validStorageTypes := map[string]bool{
		"json": true, "jsonl": true, "csv": true, "mongodb": true,
	}
	if !validStorageTypes[cfg.Storage.Type] {
		return fmt.Errorf("storage.type %q is not supported (valid: json, jsonl, csv, mongodb)", cfg.Storage.Type)
	}
	if cfg.Storage.Type == "mongodb" && cfg.Storage.MongoURI == "" {
		return fmt.Errorf("storage.mongo_uri is required for mongodb storage")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.Port < 1 || cfg.Metrics.Port > 65535 {
			return fmt.Errorf("metrics.port must be 1-65535, got %d", cfg.Metrics.Port)
		}
	}

	return nil
}

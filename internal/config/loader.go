package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file, environment, and CLI flags.
// Priority (highest to lowest): CLI flags > env vars > config file > defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	// Set defaults from struct
	setDefaults(v, cfg)

	// Environment variable support
	v.SetEnvPrefix("BEAUTYSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Search default locations
		v.SetConfigName("beautyscan")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".beautyscan"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if not explicitly specified
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers default values in viper.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("pricing.unparseable_policy", cfg.Pricing.UnparseablePolicy)
	v.SetDefault("pricing.sentinel_value", cfg.Pricing.SentinelValue)

	v.SetDefault("categories", cfg.Categories)

	v.SetDefault("stores.target.api_key", cfg.Stores.Target.APIKey)
	v.SetDefault("stores.target.store_id", cfg.Stores.Target.StoreID)
	v.SetDefault("stores.target.zip_code", cfg.Stores.Target.ZipCode)
	v.SetDefault("stores.target.max_pages", cfg.Stores.Target.MaxPages)
	v.SetDefault("stores.riteaid.base_url", cfg.Stores.RiteAid.BaseURL)
	v.SetDefault("stores.riteaid.max_pages", cfg.Stores.RiteAid.MaxPages)
	v.SetDefault("stores.ulta.base_url", cfg.Stores.Ulta.BaseURL)
	v.SetDefault("stores.ulta.use_browser", cfg.Stores.Ulta.UseBrowser)

	v.SetDefault("fetch.request_timeout", cfg.Fetch.RequestTimeout)
	v.SetDefault("fetch.politeness_delay", cfg.Fetch.PolitenessDelay)
	v.SetDefault("fetch.max_retries", cfg.Fetch.MaxRetries)
	v.SetDefault("fetch.retry_delay", cfg.Fetch.RetryDelay)
	v.SetDefault("fetch.max_body_size", cfg.Fetch.MaxBodySize)
	v.SetDefault("fetch.follow_redirects", cfg.Fetch.FollowRedirects)
	v.SetDefault("fetch.max_redirects", cfg.Fetch.MaxRedirects)
	v.SetDefault("fetch.idle_conn_timeout", cfg.Fetch.IdleConnTimeout)
	v.SetDefault("fetch.max_idle_conns", cfg.Fetch.MaxIdleConns)
	v.SetDefault("fetch.user_agents", cfg.Fetch.UserAgents)

	v.SetDefault("data.raw_dir", cfg.Data.RawDir)

	v.SetDefault("storage.type", cfg.Storage.Type)
	v.SetDefault("storage.output_path", cfg.Storage.OutputPath)
	v.SetDefault("storage.mongo_uri", cfg.Storage.MongoURI)
	v.SetDefault("storage.mongo_database", cfg.Storage.MongoDatabase)
	v.SetDefault("storage.mongo_collection", cfg.Storage.MongoCollection)

	v.SetDefault("report.output_dir", cfg.Report.OutputDir)
	v.SetDefault("report.html", cfg.Report.HTML)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)

	v.SetDefault("metrics.enabled", cfg.Metrics.Enabled)
	v.SetDefault("metrics.port", cfg.Metrics.Port)
	v.SetDefault("metrics.path", cfg.Metrics.Path)
}

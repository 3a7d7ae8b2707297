package config

import (
	"time"

	"github.com/winzyu/beauty-product-analysis/internal/price"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for beautyscan.
type Config struct {
	Pricing    PricingConfig    `mapstructure:"pricing"    yaml:"pricing"`
	Categories []string         `mapstructure:"categories" yaml:"categories"`
	Stores     StoresConfig     `mapstructure:"stores"     yaml:"stores"`
	Fetch      FetchConfig      `mapstructure:"fetch"      yaml:"fetch"`
	Data       DataConfig       `mapstructure:"data"       yaml:"data"`
	Storage    StorageConfig    `mapstructure:"storage"    yaml:"storage"`
	Report     ReportConfig     `mapstructure:"report"     yaml:"report"`
	Logging    LoggingConfig    `mapstructure:"logging"    yaml:"logging"`
	Metrics    MetricsConfig    `mapstructure:"metrics"    yaml:"metrics"`
}

// PricingConfig controls how unparseable prices are handled. There is
// no default policy: the caller must choose one explicitly.
type PricingConfig struct {
	UnparseablePolicy string  `mapstructure:"unparseable_policy" yaml:"unparseable_policy"`
	SentinelValue     float64 `mapstructure:"sentinel_value"     yaml:"sentinel_value"`
}

// Policy returns the configured policy as a price.Policy.
func (p PricingConfig) Policy() price.Policy {
	return price.Policy(p.UnparseablePolicy)
}

// StoresConfig holds per-retailer settings.
type StoresConfig struct {
	Target  TargetConfig  `mapstructure:"target"  yaml:"target"`
	RiteAid RiteAidConfig `mapstructure:"riteaid" yaml:"riteaid"`
	Ulta    UltaConfig    `mapstructure:"ulta"    yaml:"ulta"`
}

// TargetConfig configures the Redsky API client.
type TargetConfig struct {
	APIKey   string `mapstructure:"api_key"  yaml:"api_key"`
	StoreID  string `mapstructure:"store_id" yaml:"store_id"`
	ZipCode  string `mapstructure:"zip_code" yaml:"zip_code"`
	MaxPages int    `mapstructure:"max_pages" yaml:"max_pages"`
}

// RiteAidConfig configures the catalog search scraper.
type RiteAidConfig struct {
	BaseURL  string `mapstructure:"base_url"  yaml:"base_url"`
	MaxPages int    `mapstructure:"max_pages" yaml:"max_pages"`
}

// UltaConfig configures the browser-rendered page fetcher.
type UltaConfig struct {
	BaseURL    string `mapstructure:"base_url"    yaml:"base_url"`
	UseBrowser bool   `mapstructure:"use_browser" yaml:"use_browser"`
}

// FetchConfig controls the shared HTTP client.
type FetchConfig struct {
	RequestTimeout  time.Duration `mapstructure:"request_timeout"  yaml:"request_timeout"`
	PolitenessDelay time.Duration `mapstructure:"politeness_delay" yaml:"politeness_delay"`
	MaxRetries      int           `mapstructure:"max_retries"      yaml:"max_retries"`
	RetryDelay      time.Duration `mapstructure:"retry_delay"      yaml:"retry_delay"`
	MaxBodySize     int64         `mapstructure:"max_body_size"    yaml:"max_body_size"`
	FollowRedirects bool          `mapstructure:"follow_redirects" yaml:"follow_redirects"`
	MaxRedirects    int           `mapstructure:"max_redirects"    yaml:"max_redirects"`
	TLSInsecure     bool          `mapstructure:"tls_insecure"     yaml:"tls_insecure"`
	IdleConnTimeout time.Duration `mapstructure:"idle_conn_timeout" yaml:"idle_conn_timeout"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"   yaml:"max_idle_conns"`
	UserAgents      []string      `mapstructure:"user_agents"      yaml:"user_agents"`
}

// DataConfig locates the raw scraped data tree (data/<store>/<category>/*.json).
type DataConfig struct {
	RawDir string `mapstructure:"raw_dir" yaml:"raw_dir"`
}

// StorageConfig controls the normalized record sink.
type StorageConfig struct {
	Type       string `mapstructure:"type"        yaml:"type"`
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`

	MongoURI        string `mapstructure:"mongo_uri"        yaml:"mongo_uri"`
	MongoDatabase   string `mapstructure:"mongo_database"   yaml:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection" yaml:"mongo_collection"`
}

// ReportConfig controls report generation.
type ReportConfig struct {
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	HTML      bool   `mapstructure:"html"       yaml:"html"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// MetricsConfig controls the metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Port    int    `mapstructure:"port"    yaml:"port"`
	Path    string `mapstructure:"path"    yaml:"path"`
}

// DefaultConfig returns a Config with sensible defaults. The pricing
// policy is deliberately left empty; Validate rejects a config that
// does not choose one.
func DefaultConfig() *Config {
	return &Config{
		Pricing: PricingConfig{
			SentinelValue: price.Sentinel,
		},
		Categories: []string{
			"blush", "concealer", "eyebrow_gel", "foundation",
			"lip_gloss", "powder", "primer", "setting_spray",
		},
		Stores: StoresConfig{
			Target: TargetConfig{
				StoreID:  "3132",
				ZipCode:  "95616",
				MaxPages: 2,
			},
			RiteAid: RiteAidConfig{
				BaseURL:  "https://www.riteaid.com",
				MaxPages: 2,
			},
			Ulta: UltaConfig{
				BaseURL:    "https://www.ulta.com",
				UseBrowser: false,
			},
		},
		Fetch: FetchConfig{
			RequestTimeout:  10 * time.Second,
			PolitenessDelay: 2 * time.Second,
			MaxRetries:      3,
			RetryDelay:      2 * time.Second,
			MaxBodySize:     10 * 1024 * 1024, // 10MB
			FollowRedirects: true,
			MaxRedirects:    10,
			IdleConnTimeout: 90 * time.Second,
			MaxIdleConns:    100,
			UserAgents: []string{
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
				"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			},
		},
		Data: DataConfig{
			RawDir: "./data",
		},
		Storage: StorageConfig{
			Type:       "json",
			OutputPath: "./output",
		},
		Report: ReportConfig{
			OutputDir: "./reports",
			HTML:      true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
			Path:    "/metrics",
		},
	}
}

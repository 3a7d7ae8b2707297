package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Pricing.UnparseablePolicy = "exclude"
	return cfg
}

func TestValidateRequiresExplicitPolicy(t *testing.T) {
	cfg := DefaultConfig()
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected error: defaults leave the pricing policy unset")
	}
	if !strings.Contains(err.Error(), "unparseable_policy") {
		t.Errorf("error = %v, want mention of unparseable_policy", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid exclude", func(c *Config) {}, false},
		{"valid sentinel", func(c *Config) { c.Pricing.UnparseablePolicy = "sentinel" }, false},
		{"bad policy", func(c *Config) { c.Pricing.UnparseablePolicy = "guess" }, true},
		{"no categories", func(c *Config) { c.Categories = nil }, true},
		{"unnormalized category", func(c *Config) { c.Categories = []string{"Lip Gloss"} }, true},
		{"bad storage type", func(c *Config) { c.Storage.Type = "parquet" }, true},
		{"mongodb without uri", func(c *Config) { c.Storage.Type = "mongodb" }, true},
		{"mongodb with uri", func(c *Config) {
			c.Storage.Type = "mongodb"
			c.Storage.MongoURI = "mongodb://localhost:27017"
		}, false},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }, true},
		{"zero target pages", func(c *Config) { c.Stores.Target.MaxPages = 0 }, true},
		{"bad metrics port", func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.Port = 0
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Pricing.UnparseablePolicy != "" {
		t.Errorf("policy = %q, want empty (caller must choose)", cfg.Pricing.UnparseablePolicy)
	}
	if len(cfg.Categories) != 8 {
		t.Errorf("categories = %d, want 8", len(cfg.Categories))
	}
	if cfg.Stores.Target.StoreID != "3132" {
		t.Errorf("store id = %q", cfg.Stores.Target.StoreID)
	}
}

package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/winzyu/beauty-product-analysis/internal/config"
	"github.com/winzyu/beauty-product-analysis/internal/ingest"
	"github.com/winzyu/beauty-product-analysis/internal/types"
)

// RiteAidClient walks catalog search result pages for a term.
type RiteAidClient struct {
	fetcher  Fetcher
	parser   *ingest.RiteAidParser
	cfg      *config.RiteAidConfig
	fetchCfg *config.FetchConfig
	logger   *slog.Logger
}

// NewRiteAidClient creates a catalog search client.
func NewRiteAidClient(fetcher Fetcher, cfg *config.RiteAidConfig, fetchCfg *config.FetchConfig, logger *slog.Logger) *RiteAidClient {
	return &RiteAidClient{
		fetcher:  fetcher,
		parser:   ingest.NewRiteAidParser(logger),
		cfg:      cfg,
		fetchCfg: fetchCfg,
		logger:   logger.With("component", "riteaid_client"),
	}
}

// SearchAll pages through /shop/catalogsearch/result/?q=<term>&p=<page>
// until a page comes back empty or the page limit is reached.
func (c *RiteAidClient) SearchAll(ctx context.Context, term, category string) ([]*types.RawItem, error) {
	var items []*types.RawItem

	for page := 1; ; page++ {
		if c.cfg.MaxPages > 0 && page > c.cfg.MaxPages {
			break
		}

		pageURL := c.searchURL(term, page)
		body, err := WithRetry(ctx, c.fetcher, pageURL, c.fetchCfg.MaxRetries, c.fetchCfg.RetryDelay, c.logger)
		if err != nil {
			if len(items) > 0 {
				c.logger.Warn("stopping pagination on error", "term", term, "page", page, "error", err)
				break
			}
			return nil, err
		}

		pageItems, err := c.parser.ParseHTML(body, category, c.cfg.BaseURL)
		if err != nil {
			return items, err
		}
		if len(pageItems) == 0 {
			break
		}
		items = append(items, pageItems...)

		select {
		case <-ctx.Done():
			return items, ctx.Err()
		case <-time.After(RandomDelay(c.fetchCfg.PolitenessDelay)):
		}
	}

	c.logger.Info("riteaid search complete", "term", term, "items", len(items))
	return items, nil
}

func (c *RiteAidClient) searchURL(term string, page int) string {
	return fmt.Sprintf("%s/shop/catalogsearch/result/?q=%s&p=%d",
		c.cfg.BaseURL, url.QueryEscape(term), page)
}

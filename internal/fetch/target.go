package fetch

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/winzyu/beauty-product-analysis/internal/config"
	"github.com/winzyu/beauty-product-analysis/internal/ingest"
	"github.com/winzyu/beauty-product-analysis/internal/types"
)

const redskySearchURL = "https://redsky.target.com/redsky_aggregations/v1/web/plp_search_v1"

// TargetClient searches Target's Redsky API for a category term and
// pages through the results.
type TargetClient struct {
	fetcher   Fetcher
	parser    *ingest.TargetParser
	cfg       *config.TargetConfig
	fetchCfg  *config.FetchConfig
	baseURL   string
	visitorID string
	logger    *slog.Logger
}

// NewTargetClient creates a Redsky search client.
func NewTargetClient(fetcher Fetcher, cfg *config.TargetConfig, fetchCfg *config.FetchConfig, logger *slog.Logger) *TargetClient {
	return &TargetClient{
		fetcher:   fetcher,
		parser:    ingest.NewTargetParser(logger),
		cfg:       cfg,
		fetchCfg:  fetchCfg,
		baseURL:   redskySearchURL,
		visitorID: newVisitorID(),
		logger:    logger.With("component", "target_client"),
	}
}

// SearchPage fetches one page of search results for the term.
func (c *TargetClient) SearchPage(ctx context.Context, term, category string, page int) (*ingest.TargetPayload, error) {
	body, err := WithRetry(ctx, c.fetcher, c.searchURL(term, page), c.fetchCfg.MaxRetries, c.fetchCfg.RetryDelay, c.logger)
	if err != nil {
		return nil, err
	}
	return c.parser.Parse(body, category)
}

// SearchAll pages through every result for the term up to the
// configured page limit, pausing between pages.
func (c *TargetClient) SearchAll(ctx context.Context, term, category string) ([]*types.RawItem, error) {
	var items []*types.RawItem

	for page := 0; ; page++ {
		if c.cfg.MaxPages > 0 && page >= c.cfg.MaxPages {
			break
		}

		payload, err := c.SearchPage(ctx, term, category, page)
		if err != nil {
			if len(items) > 0 {
				c.logger.Warn("stopping pagination on error", "term", term, "page", page, "error", err)
				break
			}
			return nil, err
		}
		if len(payload.Items) == 0 {
			break
		}
		items = append(items, payload.Items...)

		if page+1 >= payload.TotalPages {
			break
		}
		select {
		case <-ctx.Done():
			return items, ctx.Err()
		case <-time.After(RandomDelay(c.fetchCfg.PolitenessDelay)):
		}
	}

	c.logger.Info("target search complete", "term", term, "items", len(items))
	return items, nil
}

func (c *TargetClient) searchURL(term string, page int) string {
	params := url.Values{}
	params.Set("key", c.cfg.APIKey)
	params.Set("channel", "WEB")
	params.Set("keyword", term)
	params.Set("count", "24")
	params.Set("offset", strconv.Itoa(page*24))
	params.Set("page", "/s/"+url.PathEscape(term))
	params.Set("pricing_store_id", c.cfg.StoreID)
	params.Set("zip", c.cfg.ZipCode)
	params.Set("visitor_id", c.visitorID)
	return c.baseURL + "?" + params.Encode()
}

// newVisitorID generates the 32-character uppercase hex token the
// Redsky API expects.
func newVisitorID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return strings.Repeat("0", 32)
	}
	return strings.ToUpper(hex.EncodeToString(buf))
}

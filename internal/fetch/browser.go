package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/winzyu/beauty-product-analysis/internal/config"
	"github.com/winzyu/beauty-product-analysis/internal/types"
)

// BrowserFetcher renders pages in headless Chromium via Rod. Ulta's
// listing pages build their product grid with JavaScript, so a plain
// HTTP GET returns an empty shell.
type BrowserFetcher struct {
	browser *rod.Browser
	cfg     *config.FetchConfig
	logger  *slog.Logger
	mu      sync.Mutex
	page    *rod.Page
}

// NewBrowserFetcher launches a headless browser and connects to it.
func NewBrowserFetcher(cfg *config.FetchConfig, logger *slog.Logger) (*BrowserFetcher, error) {
	launchURL, err := launcher.New().
		Headless(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(launchURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	bf := &BrowserFetcher{
		browser: browser,
		cfg:     cfg,
		logger:  logger.With("component", "browser_fetcher"),
	}
	bf.logger.Info("browser fetcher ready")
	return bf, nil
}

// Fetch navigates to the URL and returns the rendered HTML once the
// page settles.
func (bf *BrowserFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	bf.mu.Lock()
	defer bf.mu.Unlock()

	page, err := bf.getPage()
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: err, Retryable: true}
	}
	page = page.Context(ctx)

	timeout := bf.cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	if err := page.Timeout(timeout).Navigate(url); err != nil {
		return nil, &types.FetchError{URL: url, Err: err, Retryable: true}
	}
	if err := page.Timeout(timeout).WaitStable(300 * time.Millisecond); err != nil {
		bf.logger.Warn("page stability timeout, continuing", "url", url, "error", err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: err, Retryable: true}
	}

	bf.logger.Debug("browser fetch complete", "url", url, "size", len(html))
	return []byte(html), nil
}

func (bf *BrowserFetcher) getPage() (*rod.Page, error) {
	if bf.page != nil {
		return bf.page, nil
	}
	page, err := bf.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	bf.page = page
	return page, nil
}

// Close shuts down the browser.
func (bf *BrowserFetcher) Close() error {
	if bf.page != nil {
		_ = bf.page.Close()
	}
	return bf.browser.Close()
}

// Name returns the fetcher identifier.
func (bf *BrowserFetcher) Name() string {
	return "browser"
}

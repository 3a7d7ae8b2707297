package ingest

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/winzyu/beauty-product-analysis/internal/types"
)

// UltaParser reconstructs products from the scraper's own log output.
// Ulta runs emit one "Starting <category> scraper" section per category
// with a fixed set of "Found ..." lines per product.
type UltaParser struct {
	logger *slog.Logger

	startRe   *regexp.Regexp
	brandRe   *regexp.Regexp
	nameRe    *regexp.Regexp
	priceRe   *regexp.Regexp
	reviewsRe *regexp.Regexp
	colorsRe  *regexp.Regexp
}

// NewUltaParser creates an Ulta log parser.
func NewUltaParser(logger *slog.Logger) *UltaParser {
	return &UltaParser{
		logger:    logger.With("component", "ulta_parser"),
		startRe:   regexp.MustCompile(`Starting (.+?) scraper`),
		brandRe:   regexp.MustCompile(`Found brand:\s*(.+)`),
		nameRe:    regexp.MustCompile(`Found product name:\s*(.+)`),
		priceRe:   regexp.MustCompile(`Found price:\s*\$([0-9.]+)`),
		reviewsRe: regexp.MustCompile(`Found review count:\s*(\d+)`),
		colorsRe:  regexp.MustCompile(`Found color options:\s*(\d+)`),
	}
}

// ParseLog walks the log text line by line and emits one raw item per
// product. A product is flushed when the next brand line or the next
// category section begins.
func (p *UltaParser) ParseLog(text string) ([]*types.RawItem, error) {
	var (
		items    []*types.RawItem
		category string
		current  *types.RawItem
	)

	flush := func() {
		if current == nil {
			return
		}
		brand := current.GetString("brand")
		name := current.GetString("product_name")
		if name != "" {
			// Listing titles read "<brand> <name>".
			title := strings.TrimSpace(brand + " " + name)
			current.Set("title", title)
			items = append(items, current)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if m := p.startRe.FindStringSubmatch(line); m != nil {
			flush()
			category = types.NormalizeCategory(m[1])
			continue
		}
		if category == "" {
			continue
		}

		if m := p.brandRe.FindStringSubmatch(line); m != nil {
			flush()
			current = types.NewRawItem(types.StoreUlta, category)
			current.Set("brand", strings.TrimSpace(m[1]))
			continue
		}
		if current == nil {
			continue
		}

		switch {
		case p.nameRe.MatchString(line):
			m := p.nameRe.FindStringSubmatch(line)
			current.Set("product_name", strings.TrimSpace(m[1]))
		case p.priceRe.MatchString(line):
			m := p.priceRe.FindStringSubmatch(line)
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				current.Set("price", v)
			}
		case p.reviewsRe.MatchString(line):
			m := p.reviewsRe.FindStringSubmatch(line)
			if v, err := strconv.Atoi(m[1]); err == nil {
				current.Set("review_count", v)
			}
		case p.colorsRe.MatchString(line):
			m := p.colorsRe.FindStringSubmatch(line)
			if v, err := strconv.Atoi(m[1]); err == nil {
				current.Set("color_options", v)
			}
		case strings.Contains(line, "Product is exclusive"):
			current.Set("exclusive", true)
		}
	}
	flush()

	if len(items) == 0 {
		return nil, &types.IngestError{Source: "ulta", Err: types.ErrEmptyPayload}
	}

	p.logger.Debug("ulta log parsed", "items", len(items))
	return items, nil
}

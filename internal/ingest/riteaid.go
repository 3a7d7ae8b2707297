package ingest

import (
	"bytes"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/winzyu/beauty-product-analysis/internal/types"
)

// RiteAidParser extracts products from catalogsearch result pages and
// from the notebook-extracted text dumps of older scrape runs.
type RiteAidParser struct {
	logger *slog.Logger

	blockRe *regexp.Regexp
	lineRe  *regexp.Regexp
	sizeRe  *regexp.Regexp
}

// NewRiteAidParser creates a Rite Aid parser.
func NewRiteAidParser(logger *slog.Logger) *RiteAidParser {
	return &RiteAidParser{
		logger:  logger.With("component", "riteaid_parser"),
		blockRe: regexp.MustCompile(`(?m)^([\w ]+)\s+\((\d+)\s+items?\):\s*$`),
		lineRe:  regexp.MustCompile(`^(.*?)\s+-\s+\$([0-9.]+)$`),
		sizeRe:  regexp.MustCompile(`^(.*?),\s+[\d.]+\s+[a-zA-Z. ]+$`),
	}
}

// ParseHTML extracts products from a search result page. CSS selectors
// are tried first; when the markup has shifted enough that they find
// nothing, an XPath fallback runs over the same document.
func (p *RiteAidParser) ParseHTML(data []byte, category, baseURL string) ([]*types.RawItem, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, &types.IngestError{Source: "riteaid", Err: err}
	}

	items := p.parseCSS(doc, category, baseURL)
	if len(items) == 0 {
		items, err = p.parseXPath(data, category, baseURL)
		if err != nil {
			return nil, err
		}
	}

	p.logger.Debug("riteaid page parsed", "category", category, "items", len(items))
	return items, nil
}

func (p *RiteAidParser) parseCSS(doc *goquery.Document, category, baseURL string) []*types.RawItem {
	var items []*types.RawItem

	doc.Find(".item.product.product-item").Each(func(_ int, sel *goquery.Selection) {
		nameEl := sel.Find(".product-item-link").First()
		name := strings.TrimSpace(nameEl.Text())
		if name == "" {
			return
		}

		item := types.NewRawItem(types.StoreRiteAid, category)
		item.Set("title", name)
		if href, ok := nameEl.Attr("href"); ok {
			item.Set("url", resolveURL(baseURL, href))
			item.SourceURL = item.GetString("url")
		}

		if priceText := strings.TrimSpace(sel.Find(".price").First().Text()); priceText != "" {
			item.Set("price_text", priceText)
		}
		if old := strings.TrimSpace(sel.Find(".old-price .price").First().Text()); old != "" {
			item.Set("regular_price_text", old)
			item.Set("on_sale", true)
		} else {
			item.Set("on_sale", false)
		}

		if src, ok := sel.Find(".product-image-photo").First().Attr("src"); ok {
			item.Set("image_url", src)
		}
		if brand := strings.TrimSpace(sel.Find(".product-brand").First().Text()); brand != "" {
			item.Set("brand", brand)
		}
		item.Set("in_stock", sel.Find(".stock.unavailable").Length() == 0)

		items = append(items, item)
	})

	return items
}

// parseXPath is the fallback extraction path via htmlquery.
func (p *RiteAidParser) parseXPath(data []byte, category, baseURL string) ([]*types.RawItem, error) {
	doc, err := htmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &types.IngestError{Source: "riteaid", Err: err}
	}

	nodes, err := htmlquery.QueryAll(doc, `//li[contains(@class,'product-item')]`)
	if err != nil {
		return nil, &types.IngestError{Source: "riteaid", Err: err}
	}

	var items []*types.RawItem
	for _, node := range nodes {
		link := htmlquery.FindOne(node, `.//a[contains(@class,'product-item-link')]`)
		if link == nil {
			continue
		}
		name := strings.TrimSpace(htmlquery.InnerText(link))
		if name == "" {
			continue
		}

		item := types.NewRawItem(types.StoreRiteAid, category)
		item.Set("title", name)
		if href := htmlquery.SelectAttr(link, "href"); href != "" {
			item.Set("url", resolveURL(baseURL, href))
			item.SourceURL = item.GetString("url")
		}
		if priceNode := htmlquery.FindOne(node, `.//span[contains(@class,'price')]`); priceNode != nil {
			item.Set("price_text", strings.TrimSpace(htmlquery.InnerText(priceNode)))
		}
		if img := htmlquery.FindOne(node, `.//img[contains(@class,'product-image-photo')]`); img != nil {
			item.Set("image_url", htmlquery.SelectAttr(img, "src"))
		}
		item.Set("in_stock", findClass(node, "unavailable") == nil)

		items = append(items, item)
	}
	return items, nil
}

// ParseNotebook converts the notebook-extracted text format into raw
// items. Blocks look like:
//
//	Eyebrow Gel (12 items):
//	------------
//	Maybelline Brow Gel, 0.11 oz - $8.79
func (p *RiteAidParser) ParseNotebook(text string) ([]*types.RawItem, error) {
	matches := p.blockRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil, &types.IngestError{Source: "riteaid", Err: types.ErrEmptyPayload}
	}

	var items []*types.RawItem
	seen := make(map[string]struct{})

	for i, m := range matches {
		category := types.NormalizeCategory(text[m[2]:m[3]])
		if _, done := seen[category]; done {
			continue
		}
		seen[category] = struct{}{}

		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := text[m[1]:end]

		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "-") {
				continue
			}
			lm := p.lineRe.FindStringSubmatch(line)
			if lm == nil {
				continue
			}
			name := strings.TrimSpace(lm[1])
			// Trim a trailing size suffix like ", 1.5 oz"
			if sm := p.sizeRe.FindStringSubmatch(name); sm != nil {
				name = strings.TrimSpace(sm[1])
			}

			item := types.NewRawItem(types.StoreRiteAid, category)
			item.Set("name", name)
			item.Set("price_text", "$"+lm[2])
			items = append(items, item)
		}
	}

	p.logger.Debug("riteaid notebook parsed", "categories", len(seen), "items", len(items))
	return items, nil
}

// findClass returns the first descendant node whose class attribute
// contains the given token.
func findClass(node *html.Node, token string) *html.Node {
	n, _ := htmlquery.Query(node, `.//*[contains(@class,'`+token+`')]`)
	return n
}

// resolveURL makes href absolute against the store base URL.
func resolveURL(baseURL, href string) string {
	if href == "" {
		return ""
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// Package ingest parses each store's raw scraped output (API payloads,
// listing HTML, notebook-extracted text) into RawItems.
package ingest

import (
	"encoding/json"
	"log/slog"

	"github.com/winzyu/beauty-product-analysis/internal/types"
)

// Redsky search pages are 24 items long.
const targetPageSize = 24

// TargetPayload is one parsed Redsky plp_search_v1 response.
type TargetPayload struct {
	Items        []*types.RawItem
	TotalResults int
	TotalPages   int
}

// TargetParser parses Target's Redsky API JSON payloads.
type TargetParser struct {
	logger *slog.Logger
}

// NewTargetParser creates a Target payload parser.
func NewTargetParser(logger *slog.Logger) *TargetParser {
	return &TargetParser{logger: logger.With("component", "target_parser")}
}

// Parse extracts the products array from a Redsky search response.
// Each product keeps its full nested map so the normalizer's field
// table can resolve paths like item.product_description.title.
func (p *TargetParser) Parse(data []byte, category string) (*TargetPayload, error) {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, &types.IngestError{Source: "target", Err: err}
	}

	search, ok := dig(root, "data", "search")
	if !ok {
		return nil, &types.IngestError{Source: "target", Err: types.ErrEmptyPayload}
	}
	searchMap, _ := search.(map[string]any)

	payload := &TargetPayload{}
	if v, ok := searchMap["total_results"].(float64); ok {
		payload.TotalResults = int(v)
		payload.TotalPages = (payload.TotalResults + targetPageSize - 1) / targetPageSize
	}

	rawProducts, _ := searchMap["products"].([]any)
	for _, rp := range rawProducts {
		product, ok := rp.(map[string]any)
		if !ok {
			continue
		}
		item := types.NewRawItem(types.StoreTarget, category)
		item.Fields = product
		payload.Items = append(payload.Items, item)
	}

	p.logger.Debug("target payload parsed",
		"category", category,
		"items", len(payload.Items),
		"total_results", payload.TotalResults,
	)
	return payload, nil
}

// dig walks nested maps by key.
func dig(m map[string]any, keys ...string) (any, bool) {
	var current any = m
	for _, key := range keys {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = cm[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

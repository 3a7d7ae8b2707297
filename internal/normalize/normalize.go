// Package normalize maps per-store raw extraction output into the
// canonical product schema through declarative field tables.
package normalize

import (
	"log/slog"
	"strings"

	"github.com/winzyu/beauty-product-analysis/internal/observability"
	"github.com/winzyu/beauty-product-analysis/internal/price"
	"github.com/winzyu/beauty-product-analysis/internal/types"
)

// Normalizer turns raw items into ProductRecords. It is a pure
// transform: no I/O, no state besides the injected metric counters.
type Normalizer struct {
	tables  map[types.Store]FieldTable
	policy  price.Policy
	metrics *observability.Metrics
	logger  *slog.Logger
}

// New creates a Normalizer with the built-in store tables and the
// caller's unparseable-price policy.
func New(policy price.Policy, metrics *observability.Metrics, logger *slog.Logger) *Normalizer {
	return &Normalizer{
		tables:  DefaultTables(),
		policy:  policy,
		metrics: metrics,
		logger:  logger.With("component", "normalizer"),
	}
}

// RegisterTable installs or replaces the field table for a store.
func (n *Normalizer) RegisterTable(store types.Store, table FieldTable) {
	n.tables[store] = table
}

// Normalize builds a canonical record from one raw item. The category
// comes from the item's ingest context, never from item text.
//
// Error cases, all non-fatal and all counted:
//   - no field table for the item's store (types.ErrUnknownStore)
//   - no resolvable name (types.ErrMissingName); the record is rejected
//     rather than constructed with an empty name
func (n *Normalizer) Normalize(item *types.RawItem) (types.ProductRecord, error) {
	table, ok := n.tables[item.Store]
	if !ok {
		n.metrics.UnknownStores.Add(1)
		return types.ProductRecord{}, &types.NormalizeError{
			Store: item.Store,
			Err:   types.ErrUnknownStore,
		}
	}

	name := strings.TrimSpace(resolveString(item, table[FieldName]))
	if name == "" {
		n.metrics.RecordsRejected.Add(1)
		return types.ProductRecord{}, &types.NormalizeError{
			Store: item.Store,
			Field: FieldName,
			Err:   types.ErrMissingName,
		}
	}

	rec := types.ProductRecord{
		Store:     item.Store,
		Category:  types.NormalizeCategory(item.Category),
		Name:      name,
		PriceText: resolveString(item, table[FieldPriceText]),
		URL:       resolveString(item, table[FieldURL]),
		ImageURL:  resolveString(item, table[FieldImageURL]),
		Brand:     resolveString(item, table[FieldBrand]),
	}

	raw, found := resolve(item, table[FieldPrice])
	value, parsed := price.Parse(raw)
	if found && !parsed {
		n.metrics.PricesUnparseable.Add(1)
		n.logger.Debug("unparseable price", "store", item.Store, "name", name, "raw", raw)
	}
	rec.Price = price.Resolve(value, parsed, n.policy)

	// Regular price is descriptive only; no sentinel substitution.
	if raw, ok := resolve(item, table[FieldRegularPrice]); ok {
		if v, ok := price.Parse(raw); ok {
			rec.RegularPrice = &v
		}
	}

	if v, ok := resolveBool(item, table[FieldInStock]); ok {
		rec.InStock = &v
	}
	if v, ok := resolveBool(item, table[FieldOnSale]); ok {
		rec.OnSale = &v
	}

	n.metrics.RecordsNormalized.Add(1)
	return rec, nil
}

// Batch normalizes a slice of raw items, skipping rejects. The rejects
// are counted in the metrics; callers that need the number can diff
// len(items) against len(records).
func (n *Normalizer) Batch(items []*types.RawItem) []types.ProductRecord {
	records := make([]types.ProductRecord, 0, len(items))
	for _, item := range items {
		rec, err := n.Normalize(item)
		if err != nil {
			n.logger.Debug("record skipped", "store", item.Store, "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records
}

// resolve walks the candidate paths and returns the first non-empty value.
func resolve(item *types.RawItem, paths []string) (any, bool) {
	for _, path := range paths {
		v, ok := item.Lookup(path)
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

func resolveString(item *types.RawItem, paths []string) string {
	v, ok := resolve(item, paths)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func resolveBool(item *types.RawItem, paths []string) (bool, bool) {
	v, ok := resolve(item, paths)
	if !ok {
		return false, false
	}
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1", "yes":
			return true, true
		case "false", "0", "no":
			return false, true
		}
	}
	return false, false
}

package aggregate

import "github.com/winzyu/beauty-product-analysis/internal/types"

// CheapestPerGroup selects, for each (store, category) group, the record
// with the minimum parsed price. Records without a price are skipped;
// ties keep the first-seen record. Groups with no priced records are
// absent from the result, never present with a sentinel entry.
func CheapestPerGroup(c *Collection) map[GroupKey]types.ProductRecord {
	result := make(map[GroupKey]types.ProductRecord)
	for _, key := range c.Keys() {
		if best, ok := cheapestOf(c.Group(key)); ok {
			result[key] = best
		}
	}
	return result
}

// CheapestOverall selects, per category, the single cheapest record
// across all stores (the "optimal routine"). Only categories in the
// configured comparison set participate; unknown categories are
// preserved in the collection but never matched here.
func CheapestOverall(c *Collection) map[string]types.ProductRecord {
	result := make(map[string]types.ProductRecord)
	for _, key := range c.Keys() {
		if !c.Comparable(key.Category) {
			continue
		}
		best, ok := cheapestOf(c.Group(key))
		if !ok {
			continue
		}
		current, exists := result[key.Category]
		if !exists || *best.Price < *current.Price {
			result[key.Category] = best
		}
	}
	return result
}

// cheapestOf scans one group in insertion order, so equal prices keep
// the earliest record.
func cheapestOf(records []types.ProductRecord) (types.ProductRecord, bool) {
	var best types.ProductRecord
	found := false
	for _, rec := range records {
		if !rec.HasPrice() {
			continue
		}
		if !found || *rec.Price < *best.Price {
			best = rec
			found = true
		}
	}
	return best, found
}

// Package aggregate merges normalized records across stores and
// categories and computes per-group and overall price minimums.
package aggregate

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/winzyu/beauty-product-analysis/internal/observability"
	"github.com/winzyu/beauty-product-analysis/internal/types"
)

// GroupKey identifies one (store, category) group.
type GroupKey struct {
	Store    types.Store
	Category string
}

// Collection is a flat set of normalized records grouped by
// (store, category). Records are added once and read back in insertion
// order within a group; duplicates by (store, name) are dropped with
// first-wins semantics.
type Collection struct {
	groups  map[GroupKey][]types.ProductRecord
	keys    []GroupKey
	seen    map[string]struct{}
	known   map[string]struct{}
	metrics *observability.Metrics
	logger  *slog.Logger
}

// New creates an empty Collection. knownCategories is the closed set
// used for cross-store comparison; records in other categories are kept
// but excluded from CheapestOverall.
func New(knownCategories []string, metrics *observability.Metrics, logger *slog.Logger) *Collection {
	known := make(map[string]struct{}, len(knownCategories))
	for _, c := range knownCategories {
		known[types.NormalizeCategory(c)] = struct{}{}
	}
	return &Collection{
		groups:  make(map[GroupKey][]types.ProductRecord),
		seen:    make(map[string]struct{}),
		known:   known,
		metrics: metrics,
		logger:  logger.With("component", "aggregator"),
	}
}

// Aggregate builds a Collection from a record sequence.
func Aggregate(records []types.ProductRecord, knownCategories []string, metrics *observability.Metrics, logger *slog.Logger) *Collection {
	c := New(knownCategories, metrics, logger)
	for _, rec := range records {
		c.Add(rec)
	}
	return c
}

// Add inserts a record, applying first-wins de-duplication on
// (store, name). Returns false when the record was a duplicate.
func (c *Collection) Add(rec types.ProductRecord) bool {
	dedupKey := string(rec.Store) + "\x00" + strings.ToLower(rec.Name)
	if _, dup := c.seen[dedupKey]; dup {
		c.metrics.DuplicatesDropped.Add(1)
		c.logger.Debug("duplicate dropped", "store", rec.Store, "name", rec.Name)
		return false
	}
	c.seen[dedupKey] = struct{}{}

	key := GroupKey{Store: rec.Store, Category: rec.Category}
	if _, exists := c.groups[key]; !exists {
		c.keys = append(c.keys, key)
	}
	c.groups[key] = append(c.groups[key], rec)

	if !c.Comparable(rec.Category) {
		c.metrics.UnknownCategories.Add(1)
	}
	return true
}

// Comparable reports whether a category is in the configured set used
// for cross-store comparison.
func (c *Collection) Comparable(category string) bool {
	_, ok := c.known[category]
	return ok
}

// Group returns the records of one (store, category) group in insertion
// order. The returned slice is shared; callers must not mutate it.
func (c *Collection) Group(key GroupKey) []types.ProductRecord {
	return c.groups[key]
}

// Keys returns all group keys, sorted by store then category for
// deterministic iteration.
func (c *Collection) Keys() []GroupKey {
	keys := make([]GroupKey, len(c.keys))
	copy(keys, c.keys)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Store != keys[j].Store {
			return keys[i].Store < keys[j].Store
		}
		return keys[i].Category < keys[j].Category
	})
	return keys
}

// Stores returns the distinct stores present, sorted.
func (c *Collection) Stores() []types.Store {
	set := make(map[types.Store]struct{})
	for _, key := range c.keys {
		set[key.Store] = struct{}{}
	}
	stores := make([]types.Store, 0, len(set))
	for s := range set {
		stores = append(stores, s)
	}
	sort.Slice(stores, func(i, j int) bool { return stores[i] < stores[j] })
	return stores
}

// Len returns the total record count across all groups.
func (c *Collection) Len() int {
	total := 0
	for _, recs := range c.groups {
		total += len(recs)
	}
	return total
}

// All returns every record, grouped in key order.
func (c *Collection) All() []types.ProductRecord {
	out := make([]types.ProductRecord, 0, c.Len())
	for _, key := range c.Keys() {
		out = append(out, c.groups[key]...)
	}
	return out
}

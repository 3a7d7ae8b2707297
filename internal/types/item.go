package types

import (
	"encoding/json"
	"strings"
	"time"
)

// RawItem is a single loosely-typed extraction result from one store's
// page or API payload, before normalization. Fields keeps the source's
// own key names and nesting; the normalizer resolves them through its
// per-store field tables.
type RawItem struct {
	// Fields stores the extracted key-value data, possibly nested.
	Fields map[string]any

	// Store is the retailer tag assigned by the ingest layer.
	Store Store

	// Category is the category context the item was found in
	// (directory name, search term), not inferred from item text.
	Category string

	// SourceURL is the page or endpoint this item was extracted from.
	SourceURL string

	// FetchedAt is when the raw data was collected.
	FetchedAt time.Time
}

// NewRawItem creates an empty RawItem for a store and category context.
func NewRawItem(store Store, category string) *RawItem {
	return &RawItem{
		Fields:    make(map[string]any),
		Store:     store,
		Category:  NormalizeCategory(category),
		FetchedAt: time.Now(),
	}
}

// Set sets a field value.
func (i *RawItem) Set(key string, value any) {
	i.Fields[key] = value
}

// Get retrieves a top-level field value.
func (i *RawItem) Get(key string) (any, bool) {
	v, ok := i.Fields[key]
	return v, ok
}

// GetString retrieves a top-level field value as a string.
func (i *RawItem) GetString(key string) string {
	v, ok := i.Fields[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// Has returns true if the field exists.
func (i *RawItem) Has(key string) bool {
	_, ok := i.Fields[key]
	return ok
}

// Delete removes a field.
func (i *RawItem) Delete(key string) {
	delete(i.Fields, key)
}

// Keys returns all top-level field names.
func (i *RawItem) Keys() []string {
	keys := make([]string, 0, len(i.Fields))
	for k := range i.Fields {
		keys = append(keys, k)
	}
	return keys
}

// Lookup resolves a dot-separated path through nested maps, e.g.
// "item.product_description.title" or "price.current_retail".
// Returns false when any segment is missing or not a map.
func (i *RawItem) Lookup(path string) (any, bool) {
	segments := strings.Split(path, ".")
	var current any = i.Fields
	for _, seg := range segments {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// LookupString resolves a path and returns its string value, or "".
func (i *RawItem) LookupString(path string) string {
	v, ok := i.Lookup(path)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// ToJSON serializes the raw item to JSON bytes.
func (i *RawItem) ToJSON() ([]byte, error) {
	return json.Marshal(struct {
		Fields    map[string]any `json:"fields"`
		Store     Store          `json:"store"`
		Category  string         `json:"category,omitempty"`
		SourceURL string         `json:"source_url,omitempty"`
		FetchedAt time.Time      `json:"fetched_at"`
	}{
		Fields:    i.Fields,
		Store:     i.Store,
		Category:  i.Category,
		SourceURL: i.SourceURL,
		FetchedAt: i.FetchedAt,
	})
}

// Clone creates a shallow copy of the item with its own field map.
func (i *RawItem) Clone() *RawItem {
	clone := &RawItem{
		Fields:    make(map[string]any, len(i.Fields)),
		Store:     i.Store,
		Category:  i.Category,
		SourceURL: i.SourceURL,
		FetchedAt: i.FetchedAt,
	}
	for k, v := range i.Fields {
		clone.Fields[k] = v
	}
	return clone
}

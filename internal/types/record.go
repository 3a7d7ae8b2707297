package types

import "strings"

// Store identifies which retailer a record came from.
type Store string

const (
	StoreTarget  Store = "target"
	StoreRiteAid Store = "riteaid"
	StoreUlta    Store = "ulta"
)

// KnownStores lists the retailers with built-in field tables.
func KnownStores() []Store {
	return []Store{StoreTarget, StoreRiteAid, StoreUlta}
}

// ParseStore maps a raw store tag ("Target", "Rite Aid", "riteaid") to a Store.
// Returns false for tags outside the known set.
func ParseStore(s string) (Store, bool) {
	normalized := strings.ToLower(strings.Join(strings.Fields(s), ""))
	switch normalized {
	case "target":
		return StoreTarget, true
	case "riteaid":
		return StoreRiteAid, true
	case "ulta", "ultabeauty":
		return StoreUlta, true
	}
	return Store(normalized), false
}

// NormalizeCategory lowercases a category identifier and collapses
// whitespace and hyphen separators to underscores ("Eyebrow Gel" -> "eyebrow_gel").
func NormalizeCategory(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), "_")
}

// ProductRecord is the canonical store-agnostic product schema used for
// cross-store comparison. Records are constructed once by the normalizer
// and never mutated afterwards.
type ProductRecord struct {
	// Store is the retailer this record belongs to.
	Store Store `json:"store" bson:"store"`

	// Category is the normalized product category (e.g. "eyebrow_gel").
	Category string `json:"category" bson:"category"`

	// Name is the display title. Always non-empty; records without a
	// name are rejected by the normalizer.
	Name string `json:"name" bson:"name"`

	// Price is the normalized amount, nil when unparseable.
	Price *float64 `json:"price,omitempty" bson:"price,omitempty"`

	// PriceText preserves the source's price string for display.
	PriceText string `json:"price_text,omitempty" bson:"price_text,omitempty"`

	// RegularPrice is the pre-sale price when the source reports one.
	RegularPrice *float64 `json:"regular_price,omitempty" bson:"regular_price,omitempty"`

	URL      string `json:"url,omitempty" bson:"url,omitempty"`
	ImageURL string `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Brand    string `json:"brand,omitempty" bson:"brand,omitempty"`

	// InStock and OnSale are tri-state: nil means the source did not say.
	InStock *bool `json:"in_stock,omitempty" bson:"in_stock,omitempty"`
	OnSale  *bool `json:"on_sale,omitempty" bson:"on_sale,omitempty"`
}

// HasPrice reports whether the record carries a parsed price.
func (r ProductRecord) HasPrice() bool {
	return r.Price != nil
}

// PriceValue returns the parsed price, or 0 when absent.
func (r ProductRecord) PriceValue() float64 {
	if r.Price == nil {
		return 0
	}
	return *r.Price
}

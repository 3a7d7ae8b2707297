package normalize

import "github.com/winzyu/beauty-product-analysis/internal/types"

// Canonical attribute names resolved by a FieldTable.
const (
	FieldName         = "name"
	FieldPrice        = "price"
	FieldPriceText    = "price_text"
	FieldRegularPrice = "regular_price"
	FieldURL          = "url"
	FieldImageURL     = "image_url"
	FieldBrand        = "brand"
	FieldInStock      = "in_stock"
	FieldOnSale       = "on_sale"
)

// FieldTable is a declarative mapping from canonical attributes to
// ordered candidate paths in a store's raw items. Paths are
// dot-separated for nested payloads; the first path that resolves to a
// non-empty value wins. Adding a store means adding a table, not code.
type FieldTable map[string][]string

// DefaultTables returns the built-in field tables for the known stores.
//
// Target items may arrive either pre-flattened (from saved result files)
// or as raw Redsky API product objects, so each attribute lists both
// shapes. Rite Aid and Ulta items are flat.
func DefaultTables() map[types.Store]FieldTable {
	return map[types.Store]FieldTable{
		types.StoreTarget: {
			FieldName:         {"title", "name", "item.product_description.title"},
			// price.current_retail must come before the bare "price"
			// key: on raw Redsky objects "price" is a nested map, not
			// a number.
			FieldPrice:        {"price.current_retail", "price", "price_text"},
			FieldPriceText:    {"price_text", "price.formatted_current_price"},
			FieldRegularPrice: {"regular_price", "price.reg_retail"},
			FieldURL:          {"url", "item.enrichment.buy_url"},
			FieldImageURL:     {"image_url", "item.enrichment.images.primary_image_url"},
			FieldBrand:        {"brand", "item.product_brand.brand"},
			FieldInStock:      {"in_stock"},
			FieldOnSale:       {"on_sale", "price.is_current_price_type_sale"},
		},
		types.StoreRiteAid: {
			FieldName:         {"title", "name"},
			FieldPrice:        {"price", "price_text"},
			FieldPriceText:    {"price_text"},
			FieldRegularPrice: {"regular_price", "regular_price_text"},
			FieldURL:          {"url"},
			FieldImageURL:     {"image_url"},
			FieldBrand:        {"brand"},
			FieldInStock:      {"in_stock"},
			FieldOnSale:       {"on_sale"},
		},
		types.StoreUlta: {
			FieldName:      {"title", "name"},
			FieldPrice:     {"price"},
			FieldPriceText: {"price_text"},
			FieldURL:       {"url"},
			FieldImageURL:  {"image_url"},
			FieldBrand:     {"brand"},
			FieldInStock:   {"in_stock"},
			FieldOnSale:    {"on_sale"},
		},
	}
}

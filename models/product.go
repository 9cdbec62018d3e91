package models

import "time"

type Product struct {
	ID            int            `json:"id"`
	Slug          string         `json:"slug"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	CategoryID    int            `json:"category_id"`
	Price         float64        `json:"price"`
	SalePrice     float64        `json:"sale_price"`
	Stock         int            `json:"stock"`
	TaxClass      string         `json:"tax_class"`
	ImageURL      string         `json:"image_url"`
	SeoScore      int            `json:"seo_score"`
	IsActive      bool           `json:"is_active"`
	AttributeSets []AttributeSet `json:"attribute_sets,omitempty"`
	Variants      []Variant      `json:"variants,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// AttributeSet is one configurable axis of a product (e.g. Color with
// values Red, Blue). Sets flagged UseForVariants feed variant generation.
type AttributeSet struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Values         []string `json:"values"`
	UseForVariants bool     `json:"use_for_variants"`
}

// Variant is one concrete combination of attribute values. ID is a stable
// content hash of the attributes, so admin-entered overrides survive
// regeneration when the attribute sets change.
type Variant struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Attributes    map[string]string `json:"attributes"`
	SKU           string            `json:"sku,omitempty"`
	PriceOverride *float64          `json:"price_override,omitempty"`
	StockOverride *int              `json:"stock_override,omitempty"`
}

// Discount is derived from the regular and sale price, never stored.
type Discount struct {
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"`
}

package product

// UnitOfMeasure is nested inside Product; present or absent as one unit.
type UnitOfMeasure struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Type     string   `json:"uom_type"`
	Rounding *float64 `json:"rounding"`
	Factor   *float64 `json:"factor"`
}

// Product is the full catalog shape served by the listing endpoint. It is
// materialized fresh from store rows on every request; identity is the
// catalog's own template id.
type Product struct {
	ID          int64          `json:"id"`
	ProductID   int64          `json:"product_id"`
	Name        string         `json:"name"`
	Barcode     string         `json:"barcode"`
	SKU         *string        `json:"sku"`
	ListPrice   float64        `json:"list_price"`
	Description *string        `json:"description"`
	Volume      float64        `json:"volume"`
	Weight      float64        `json:"weight"`
	Active      bool           `json:"active"`
	UOM         *UnitOfMeasure `json:"uom_id"`
	Category    *string        `json:"category"`
	CategoryID  *int64         `json:"category_id"`
	LastUpdated *string        `json:"last_updated"`
	TaxRate     float64        `json:"tax_rate"`
}

// Change is the reduced shape delivered on the delta feed.
type Change struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	Name        string  `json:"name"`
	Barcode     string  `json:"barcode"`
	ListPrice   float64 `json:"list_price"`
	Description *string `json:"description"`
	Active      bool    `json:"active"`
	Category    *string `json:"category"`
	TaxRate     float64 `json:"tax_rate"`
}

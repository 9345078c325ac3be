package loyalty

// Program types. DISCOUNT takes its percentage from the rule; everything
// else falls back to BOGO.
const (
	TypeDiscount = "DISCOUNT"
	TypeBOGO     = "BOGO"
)

// ProductStub is the minimal product embedded inside a program, not the
// full catalog form.
type ProductStub struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Barcode *string `json:"barcode"`
	Price   float64 `json:"price"`
}

// Program is one loyalty program folded out of the rule × eligible ×
// reward join fan-out. EligibleProducts is an ordered set: first
// occurrence wins, no duplicate ids.
type Program struct {
	ProgramID        int64         `json:"program_id"`
	Name             string        `json:"name"`
	Type             string        `json:"type"`
	Active           bool          `json:"active"`
	BuyQuantity      int           `json:"buy_quantity"`
	FreeQuantity     int           `json:"free_quantity"`
	DiscountPercent  float64       `json:"discount_percent"`
	DiscountCode     *string       `json:"discount_code"`
	MinQuantity      float64       `json:"min_quantity"`
	MinAmount        float64       `json:"min_amount"`
	MainProduct      *ProductStub  `json:"main_product"`
	EligibleProducts []ProductStub `json:"eligible_products"`
	RewardProduct    *ProductStub  `json:"reward_product"`
	LastUpdated      *string       `json:"last_updated"`
}

// ProgramChange is the flattened delta shape: barcodes only, not nested
// product stubs.
type ProgramChange struct {
	ProgramID              int64   `json:"program_id"`
	Name                   string  `json:"name"`
	Active                 bool    `json:"active"`
	DiscountCode           *string `json:"discount_code"`
	MinQuantity            float64 `json:"min_quantity"`
	MinAmount              float64 `json:"min_amount"`
	DiscountPercent        float64 `json:"discount_percent"`
	MainProductBarcode     *string `json:"main_product_barcode"`
	EligibleProductBarcode *string `json:"eligible_product_barcode"`
	RewardProductBarcode   *string `json:"reward_product_barcode"`
}

// Promotion is the flat projection of discount-type programs served to
// the POS promotion engine.
type Promotion struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	DiscountCode   *string `json:"discount_code"`
	DiscountType   string  `json:"discount_type"`
	DiscountValue  float64 `json:"discount_value"`
	MinQuantity    float64 `json:"min_quantity"`
	MinAmount      float64 `json:"min_amount"`
	ProductBarcode *string `json:"product_barcode"`
	Category       *string `json:"category"`
	Active         bool    `json:"active"`
	LastUpdated    *string `json:"last_updated"`
}

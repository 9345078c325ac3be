package promotions

import (
	"context"

	"github.com/glad47/pos-sync-service/internal/db"
	"github.com/glad47/pos-sync-service/internal/domain/loyalty"
	"github.com/glad47/pos-sync-service/internal/normalize"
)

type Repo struct {
	src       db.RowSource
	preferred string
	fallback  string
}

func NewRepo(src db.RowSource, preferred, fallback string) *Repo {
	return &Repo{src: src, preferred: preferred, fallback: fallback}
}

// Discount-type programs only: an active rule with a positive discount.
// The eligible-product join still fans out, hence the dedup below.
const allQuery = `
	SELECT
		lp.id AS promotion_id,
		lp.name,
		lr.code AS discount_code,
		lr.minimum_qty AS min_quantity,
		lr.minimum_amount AS min_amount,
		lr.discount AS discount_value,
		COALESCE(pp.barcode, pp_eligible.barcode) AS product_barcode,
		pc.name AS category_name,
		lp.active,
		lp.write_date AS last_updated

	FROM loyalty_program lp
	LEFT JOIN loyalty_rule lr ON lr.program_id = lp.id
	LEFT JOIN product_product pp ON pp.id = lp.product_id
	LEFT JOIN product_template pt ON pt.id = pp.product_tmpl_id
	LEFT JOIN product_category pc ON pc.id = pt.categ_id
	LEFT JOIN loyalty_rule_product_product_rel lrp ON lrp.loyalty_rule_id = lr.id
	LEFT JOIN product_product pp_eligible ON pp_eligible.id = lrp.product_product_id

	WHERE lp.active = TRUE
	AND lr.active = TRUE
	AND lr.discount IS NOT NULL
	AND lr.discount > 0
	ORDER BY lp.id
`

// All returns the flat promotion projection, one record per program id,
// first row wins.
func (r *Repo) All(ctx context.Context) ([]loyalty.Promotion, error) {
	rows, err := r.src.FetchRows(ctx, allQuery)
	if err != nil {
		return nil, err
	}

	out := []loyalty.Promotion{}
	seen := make(map[int64]struct{})
	for _, row := range rows {
		id := normalize.Int64(row["promotion_id"])
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		p, err := r.buildPromotion(id, row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *Repo) buildPromotion(id int64, row db.Row) (loyalty.Promotion, error) {
	value, err := normalize.FloatOrDefault(row["discount_value"], 0)
	if err != nil {
		return loyalty.Promotion{}, err
	}
	minQty, err := normalize.FloatOrDefault(row["min_quantity"], 0)
	if err != nil {
		return loyalty.Promotion{}, err
	}
	minAmount, err := normalize.FloatOrDefault(row["min_amount"], 0)
	if err != nil {
		return loyalty.Promotion{}, err
	}

	p := loyalty.Promotion{
		ID:             id,
		Name:           normalize.Localized(row["name"], r.preferred, r.fallback),
		DiscountCode:   normalize.StringPtr(row["discount_code"]),
		DiscountType:   "PERCENTAGE",
		DiscountValue:  value,
		MinQuantity:    minQty,
		MinAmount:      minAmount,
		ProductBarcode: normalize.StringPtr(row["product_barcode"]),
		Active:         normalize.Bool(row["active"]),
		LastUpdated:    normalize.ISOTime(row["last_updated"]),
	}
	if row["category_name"] != nil {
		name := normalize.Localized(row["category_name"], r.preferred, r.fallback)
		p.Category = &name
	}
	return p, nil
}

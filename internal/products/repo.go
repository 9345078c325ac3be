package products

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/glad47/pos-sync-service/internal/change"
	"github.com/glad47/pos-sync-service/internal/db"
	"github.com/glad47/pos-sync-service/internal/domain/product"
	"github.com/glad47/pos-sync-service/internal/normalize"
	"github.com/glad47/pos-sync-service/internal/tax"
)

type Repo struct {
	src       db.RowSource
	taxes     tax.Policy
	preferred string
	fallback  string
}

func NewRepo(src db.RowSource, taxes tax.Policy, preferred, fallback string) *Repo {
	return &Repo{src: src, taxes: taxes, preferred: preferred, fallback: fallback}
}

// All returns every POS-available product with a barcode, ordered by
// name. Each row is one (template, variant) pair and maps to exactly one
// product; no grouping needed.
func (r *Repo) All(ctx context.Context, categoryID *int64) ([]product.Product, error) {
	qb := squirrel.
		Select(
			"pt.id",
			"pt.name",
			"pt.list_price",
			"pt.volume",
			"pt.weight",
			"pt.active",
			"pt.description_sale AS description",
			"pp.barcode",
			"pp.id AS product_id",
			"pp.default_code AS sku",
			"uom.id AS uom_id",
			"uom.name AS uom_name",
			"uom.uom_type",
			"uom.rounding AS uom_rounding",
			"uom.factor AS uom_factor",
			"pc.id AS category_id",
			"pc.name AS category_name",
			"pt.write_date AS last_updated",
		).
		From("product_template pt").
		LeftJoin("product_product pp ON pp.product_tmpl_id = pt.id").
		LeftJoin("uom_uom uom ON uom.id = pt.uom_id").
		LeftJoin("product_category pc ON pc.id = pt.categ_id").
		Where("pt.available_in_pos = TRUE").
		Where("pp.barcode IS NOT NULL AND pp.barcode != ''").
		Where("pt.active = TRUE").
		OrderBy("pt.name").
		PlaceholderFormat(squirrel.Dollar)
	if categoryID != nil {
		qb = qb.Where(squirrel.Eq{"pc.id": *categoryID})
	}

	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building products query: %w", err)
	}

	rows, err := r.src.FetchRows(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	out := []product.Product{}
	for _, row := range rows {
		p, err := r.buildProduct(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

const changedQuery = `
	SELECT
		pt.id,
		pt.name,
		pt.list_price,
		pt.active,
		pt.description_sale AS description,
		pp.barcode,
		pp.id AS product_id,
		pc.name AS category_name,
		pt.create_date,
		pt.write_date
	FROM product_template pt
	LEFT JOIN product_product pp ON pp.product_tmpl_id = pt.id
	LEFT JOIN product_category pc ON pc.id = pt.categ_id
	WHERE pt.available_in_pos = TRUE
	AND pp.barcode IS NOT NULL
	AND pp.barcode != ''
	AND (pt.create_date > $1 OR pt.write_date > $1)
	ORDER BY pt.id
`

// Changed returns the delta feed relative to the exclusive watermark.
// Classification happens per row here because each row is one variant.
func (r *Repo) Changed(ctx context.Context, since time.Time) (change.Set[product.Change], error) {
	set := change.NewSet[product.Change]()

	rows, err := r.src.FetchRows(ctx, changedQuery, since)
	if err != nil {
		return set, err
	}

	for _, row := range rows {
		ch, err := r.buildChange(row)
		if err != nil {
			return change.NewSet[product.Change](), err
		}
		t := change.Classify(normalize.Time(row["create_date"]), normalize.Time(row["write_date"]), since)
		set.Add(t, ch)
	}
	return set, nil
}

package products

import (
	"github.com/glad47/pos-sync-service/internal/db"
	"github.com/glad47/pos-sync-service/internal/domain/product"
	"github.com/glad47/pos-sync-service/internal/normalize"
)

// buildProduct normalizes one flat row into the full catalog shape.
func (r *Repo) buildProduct(row db.Row) (product.Product, error) {
	listPrice, err := normalize.FloatOrDefault(row["list_price"], 0)
	if err != nil {
		return product.Product{}, err
	}
	volume, err := normalize.FloatOrDefault(row["volume"], 0)
	if err != nil {
		return product.Product{}, err
	}
	weight, err := normalize.FloatOrDefault(row["weight"], 0)
	if err != nil {
		return product.Product{}, err
	}

	uom, err := r.buildUOM(row)
	if err != nil {
		return product.Product{}, err
	}

	p := product.Product{
		ID:          normalize.Int64(row["id"]),
		ProductID:   normalize.Int64(row["product_id"]),
		Name:        normalize.Localized(row["name"], r.preferred, r.fallback),
		Barcode:     normalize.String(row["barcode"]),
		SKU:         normalize.StringPtr(row["sku"]),
		ListPrice:   listPrice,
		Description: normalize.StringPtr(row["description"]),
		Volume:      volume,
		Weight:      weight,
		Active:      normalize.Bool(row["active"]),
		UOM:         uom,
		CategoryID:  normalize.Int64Ptr(row["category_id"]),
		LastUpdated: normalize.ISOTime(row["last_updated"]),
		TaxRate:     r.taxes.Rate(),
	}
	if row["category_name"] != nil {
		name := normalize.Localized(row["category_name"], r.preferred, r.fallback)
		p.Category = &name
	}
	return p, nil
}

// buildUOM returns the nested unit-of-measure, or nil when the row has
// none. Present or absent as one unit, never partially filled.
func (r *Repo) buildUOM(row db.Row) (*product.UnitOfMeasure, error) {
	if row["uom_id"] == nil {
		return nil, nil
	}
	rounding, err := floatPtr(row["uom_rounding"])
	if err != nil {
		return nil, err
	}
	factor, err := floatPtr(row["uom_factor"])
	if err != nil {
		return nil, err
	}
	return &product.UnitOfMeasure{
		ID:       normalize.Int64(row["uom_id"]),
		Name:     normalize.Localized(row["uom_name"], r.preferred, r.fallback),
		Type:     normalize.String(row["uom_type"]),
		Rounding: rounding,
		Factor:   factor,
	}, nil
}

func (r *Repo) buildChange(row db.Row) (product.Change, error) {
	listPrice, err := normalize.FloatOrDefault(row["list_price"], 0)
	if err != nil {
		return product.Change{}, err
	}
	ch := product.Change{
		ID:          normalize.Int64(row["id"]),
		ProductID:   normalize.Int64(row["product_id"]),
		Name:        normalize.Localized(row["name"], r.preferred, r.fallback),
		Barcode:     normalize.String(row["barcode"]),
		ListPrice:   listPrice,
		Description: normalize.StringPtr(row["description"]),
		Active:      normalize.Bool(row["active"]),
		TaxRate:     r.taxes.Rate(),
	}
	if row["category_name"] != nil {
		name := normalize.Localized(row["category_name"], r.preferred, r.fallback)
		ch.Category = &name
	}
	return ch, nil
}

func floatPtr(v any) (*float64, error) {
	if v == nil {
		return nil, nil
	}
	f, err := normalize.FloatOrDefault(v, 0)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

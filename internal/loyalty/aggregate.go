package loyalty

import (
	"github.com/glad47/pos-sync-service/internal/db"
	"github.com/glad47/pos-sync-service/internal/domain/loyalty"
	"github.com/glad47/pos-sync-service/internal/normalize"
)

// programBuilder folds the rule × eligible × reward join fan-out back
// into one program per id. A program with 3 eligible products and 2
// rewards arrives as 6 rows; the builder reconstructs the 1-program/
// 3-products shape without double counting. One builder per request,
// discarded with it.
type programBuilder struct {
	preferred string
	fallback  string

	order    []int64
	programs map[int64]*loyalty.Program
	eligible map[int64]map[int64]struct{}
}

func newProgramBuilder(preferred, fallback string) *programBuilder {
	return &programBuilder{
		preferred: preferred,
		fallback:  fallback,
		programs:  make(map[int64]*loyalty.Program),
		eligible:  make(map[int64]map[int64]struct{}),
	}
}

// Consume folds one flat row in. The first row seen for a program builds
// the header; every row may contribute one eligible product, first
// occurrence of an id wins.
func (b *programBuilder) Consume(row db.Row) error {
	pid := normalize.Int64(row["program_id"])

	if _, ok := b.programs[pid]; !ok {
		p, err := b.buildHeader(pid, row)
		if err != nil {
			return err
		}
		b.programs[pid] = p
		b.eligible[pid] = make(map[int64]struct{})
		b.order = append(b.order, pid)
	}

	if row["eligible_product_id"] == nil {
		return nil
	}
	eid := normalize.Int64(row["eligible_product_id"])
	if _, dup := b.eligible[pid][eid]; dup {
		return nil
	}
	price, err := normalize.FloatOrDefault(row["eligible_product_price"], 0)
	if err != nil {
		return err
	}
	b.eligible[pid][eid] = struct{}{}
	p := b.programs[pid]
	p.EligibleProducts = append(p.EligibleProducts, loyalty.ProductStub{
		ID:      eid,
		Name:    normalize.Localized(row["eligible_product_name"], b.preferred, b.fallback),
		Barcode: normalize.StringPtr(row["eligible_product_barcode"]),
		Price:   price,
	})
	return nil
}

func (b *programBuilder) buildHeader(pid int64, row db.Row) (*loyalty.Program, error) {
	ruleDiscount, err := normalize.FloatOrDefault(row["rule_discount"], 0)
	if err != nil {
		return nil, err
	}
	minQty, err := normalize.FloatOrDefault(row["rule_min_qty"], 0)
	if err != nil {
		return nil, err
	}
	minAmount, err := normalize.FloatOrDefault(row["rule_min_amount"], 0)
	if err != nil {
		return nil, err
	}

	// Type tag: a positive rule discount marks a DISCOUNT program, a
	// reward product marks BOGO, anything else degrades to BOGO at 0%.
	programType := loyalty.TypeBOGO
	discountPercent := 0.0
	if ruleDiscount > 0 {
		programType = loyalty.TypeDiscount
		discountPercent = ruleDiscount
	}

	buyQty := int(minQty)
	if buyQty == 0 {
		buyQty = 1
	}

	p := &loyalty.Program{
		ProgramID:        pid,
		Name:             normalize.Localized(row["program_name"], b.preferred, b.fallback),
		Type:             programType,
		Active:           normalize.Bool(row["program_active"]) && normalize.Bool(row["rule_active"]),
		BuyQuantity:      buyQty,
		FreeQuantity:     1,
		DiscountPercent:  discountPercent,
		DiscountCode:     normalize.StringPtr(row["discount_code"]),
		MinQuantity:      minQty,
		MinAmount:        minAmount,
		EligibleProducts: []loyalty.ProductStub{},
		LastUpdated:      normalize.ISOTime(row["program_write_date"]),
	}

	// The source coalesces the rule's own product with the first eligible
	// product; zero means neither exists.
	if mainID := normalize.Int64(row["main_product_id"]); mainID != 0 {
		name := normalize.Localized(row["main_product_name"], b.preferred, b.fallback)
		if name == "" {
			name = normalize.Localized(row["eligible_product_name"], b.preferred, b.fallback)
		}
		if name == "" {
			name = "Unknown"
		}
		price, err := normalize.FloatOrDefault(row["main_product_price"], 0)
		if err != nil {
			return nil, err
		}
		p.MainProduct = &loyalty.ProductStub{
			ID:      mainID,
			Name:    name,
			Barcode: normalize.StringPtr(row["main_product_barcode"]),
			Price:   price,
		}
	}

	if row["reward_product_id"] != nil {
		price, err := normalize.FloatOrDefault(row["reward_product_price"], 0)
		if err != nil {
			return nil, err
		}
		p.RewardProduct = &loyalty.ProductStub{
			ID:      normalize.Int64(row["reward_product_id"]),
			Name:    normalize.Localized(row["reward_product_name"], b.preferred, b.fallback),
			Barcode: normalize.StringPtr(row["reward_product_barcode"]),
			Price:   price,
		}
	}
	return p, nil
}

// Programs emits the folded programs in first-seen row order.
func (b *programBuilder) Programs() []loyalty.Program {
	out := make([]loyalty.Program, 0, len(b.order))
	for _, pid := range b.order {
		out = append(out, *b.programs[pid])
	}
	return out
}

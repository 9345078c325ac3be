package loyalty

import (
	"context"
	"time"

	"github.com/glad47/pos-sync-service/internal/change"
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

// One row per (rule × eligible product × reward) combination. Ordering
// matters: the builder keys off the first row per program, and eligible
// products keep arrival order.
const allQuery = `
	SELECT
		lp.id AS program_id,
		lp.name AS program_name,
		lp.active AS program_active,
		lp.create_date AS program_create_date,
		lp.write_date AS program_write_date,

		lr.id AS rule_id,
		lr.active AS rule_active,
		lr.code AS discount_code,
		lr.minimum_qty AS rule_min_qty,
		lr.minimum_amount AS rule_min_amount,
		lr.discount AS rule_discount,

		COALESCE(pp_main.id, pp_eligible.id, 0) AS main_product_id,
		pt_main.name AS main_product_name,
		COALESCE(pp_main.barcode, pp_eligible.barcode) AS main_product_barcode,
		COALESCE(pt_main.list_price, pt_eligible.list_price, 0) AS main_product_price,

		pp_eligible.id AS eligible_product_id,
		pt_eligible.name AS eligible_product_name,
		pp_eligible.barcode AS eligible_product_barcode,
		pt_eligible.list_price AS eligible_product_price,

		pp_reward.id AS reward_product_id,
		pt_reward.name AS reward_product_name,
		pp_reward.barcode AS reward_product_barcode,
		pt_reward.list_price AS reward_product_price

	FROM loyalty_program lp
	LEFT JOIN loyalty_rule lr ON lr.program_id = lp.id

	LEFT JOIN product_product pp_main ON pp_main.id = lp.product_id
	LEFT JOIN product_template pt_main ON pt_main.id = pp_main.product_tmpl_id

	LEFT JOIN loyalty_rule_product_product_rel lrp ON lrp.loyalty_rule_id = lr.id
	LEFT JOIN product_product pp_eligible ON pp_eligible.id = lrp.product_product_id
	LEFT JOIN product_template pt_eligible ON pt_eligible.id = pp_eligible.product_tmpl_id

	LEFT JOIN loyalty_reward lrw ON lrw.program_id = lp.id
	LEFT JOIN product_product pp_reward ON pp_reward.id = lrw.reward_product_id
	LEFT JOIN product_template pt_reward ON pt_reward.id = pp_reward.product_tmpl_id

	WHERE lp.active = TRUE
	ORDER BY lp.id, lr.id, pp_eligible.id
`

// All returns every active program, nested shape, aggregated out of the
// join fan-out in row order.
func (r *Repo) All(ctx context.Context) ([]loyalty.Program, error) {
	rows, err := r.src.FetchRows(ctx, allQuery)
	if err != nil {
		return nil, err
	}

	b := newProgramBuilder(r.preferred, r.fallback)
	for _, row := range rows {
		if err := b.Consume(row); err != nil {
			return nil, err
		}
	}
	return b.Programs(), nil
}

const changedQuery = `
	SELECT
		lp.id AS program_id,
		lp.name AS program_name,
		lp.active AS program_active,
		lp.create_date AS program_create_date,
		lp.write_date AS program_write_date,
		lr.active AS rule_active,
		lr.code AS discount_code,
		lr.minimum_qty AS rule_min_qty,
		lr.minimum_amount AS rule_min_amount,
		lr.discount AS rule_discount,

		COALESCE(pp_main.barcode, pp_eligible.barcode) AS main_product_barcode,
		pp_eligible.barcode AS eligible_product_barcode,
		pp_reward.barcode AS reward_product_barcode

	FROM loyalty_program lp
	LEFT JOIN loyalty_rule lr ON lr.program_id = lp.id
	LEFT JOIN product_product pp_main ON pp_main.id = lp.product_id
	LEFT JOIN loyalty_rule_product_product_rel lrp ON lrp.loyalty_rule_id = lr.id
	LEFT JOIN product_product pp_eligible ON pp_eligible.id = lrp.product_product_id
	LEFT JOIN loyalty_reward lrw ON lrw.program_id = lp.id
	LEFT JOIN product_product pp_reward ON pp_reward.id = lrw.reward_product_id

	WHERE lp.active = TRUE
	AND (lp.create_date > $1 OR lp.write_date > $1)
	ORDER BY lp.id
`

// Changed returns the flattened delta feed. The join still fans out, so
// the first row per program wins and classification happens exactly once
// per id.
func (r *Repo) Changed(ctx context.Context, since time.Time) (change.Set[loyalty.ProgramChange], error) {
	set := change.NewSet[loyalty.ProgramChange]()

	rows, err := r.src.FetchRows(ctx, changedQuery, since)
	if err != nil {
		return set, err
	}

	seen := make(map[int64]struct{})
	for _, row := range rows {
		pid := normalize.Int64(row["program_id"])
		if _, dup := seen[pid]; dup {
			continue
		}
		seen[pid] = struct{}{}

		ch, err := r.buildProgramChange(pid, row)
		if err != nil {
			return change.NewSet[loyalty.ProgramChange](), err
		}
		t := change.Classify(
			normalize.Time(row["program_create_date"]),
			normalize.Time(row["program_write_date"]),
			since,
		)
		set.Add(t, ch)
	}
	return set, nil
}

func (r *Repo) buildProgramChange(pid int64, row db.Row) (loyalty.ProgramChange, error) {
	minQty, err := normalize.FloatOrDefault(row["rule_min_qty"], 0)
	if err != nil {
		return loyalty.ProgramChange{}, err
	}
	minAmount, err := normalize.FloatOrDefault(row["rule_min_amount"], 0)
	if err != nil {
		return loyalty.ProgramChange{}, err
	}
	discount, err := normalize.FloatOrDefault(row["rule_discount"], 0)
	if err != nil {
		return loyalty.ProgramChange{}, err
	}
	return loyalty.ProgramChange{
		ProgramID:              pid,
		Name:                   normalize.Localized(row["program_name"], r.preferred, r.fallback),
		Active:                 normalize.Bool(row["program_active"]) && normalize.Bool(row["rule_active"]),
		DiscountCode:           normalize.StringPtr(row["discount_code"]),
		MinQuantity:            minQty,
		MinAmount:              minAmount,
		DiscountPercent:        discount,
		MainProductBarcode:     normalize.StringPtr(row["main_product_barcode"]),
		EligibleProductBarcode: normalize.StringPtr(row["eligible_product_barcode"]),
		RewardProductBarcode:   normalize.StringPtr(row["reward_product_barcode"]),
	}, nil
}

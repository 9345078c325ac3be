package loyalty

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glad47/pos-sync-service/internal/db"
	"github.com/glad47/pos-sync-service/internal/domain/loyalty"
)

var programWriteDate = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// programRow is one flat join row with sane defaults; tests mutate what
// they care about.
func programRow(pid int64, mutate ...func(db.Row)) db.Row {
	row := db.Row{
		"program_id":               pid,
		"program_name":             map[string]any{"ar_001": "عرض", "en_US": "Deal"},
		"program_active":           true,
		"program_create_date":      time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		"program_write_date":       programWriteDate,
		"rule_id":                  int64(1),
		"rule_active":              true,
		"discount_code":            nil,
		"rule_min_qty":             nil,
		"rule_min_amount":          nil,
		"rule_discount":            nil,
		"main_product_id":          int64(0),
		"main_product_name":        nil,
		"main_product_barcode":     nil,
		"main_product_price":       float64(0),
		"eligible_product_id":      nil,
		"eligible_product_name":    nil,
		"eligible_product_barcode": nil,
		"eligible_product_price":   nil,
		"reward_product_id":        nil,
		"reward_product_name":      nil,
		"reward_product_barcode":   nil,
		"reward_product_price":     nil,
	}
	for _, m := range mutate {
		m(row)
	}
	return row
}

func withEligible(id int64, name, barcode string, price float64) func(db.Row) {
	return func(row db.Row) {
		row["eligible_product_id"] = id
		row["eligible_product_name"] = map[string]any{"en_US": name}
		row["eligible_product_barcode"] = barcode
		row["eligible_product_price"] = price
		if row["main_product_id"] == int64(0) {
			// the query coalesces the first eligible product in
			row["main_product_id"] = id
			row["main_product_barcode"] = barcode
			row["main_product_price"] = price
		}
	}
}

func withReward(id int64, name, barcode string) func(db.Row) {
	return func(row db.Row) {
		row["reward_product_id"] = id
		row["reward_product_name"] = map[string]any{"en_US": name}
		row["reward_product_barcode"] = barcode
		row["reward_product_price"] = float64(0)
	}
}

func aggregate(t *testing.T, rows []db.Row) []loyalty.Program {
	t.Helper()
	b := newProgramBuilder("ar_001", "en_US")
	for _, row := range rows {
		require.NoError(t, b.Consume(row))
	}
	return b.Programs()
}

func TestAggregateFanOutDedup(t *testing.T) {
	// 3 eligible products × 2 rewards = 6 rows, one logical program.
	var rows []db.Row
	for _, rewardID := range []int64{91, 92} {
		for _, eligibleID := range []int64{10, 11, 12} {
			rows = append(rows, programRow(1,
				withEligible(eligibleID, "P", "bc", 2.5),
				withReward(rewardID, "R", "rbc"),
			))
		}
	}

	programs := aggregate(t, rows)
	require.Len(t, programs, 1)

	var ids []int64
	for _, stub := range programs[0].EligibleProducts {
		ids = append(ids, stub.ID)
	}
	assert.Equal(t, []int64{10, 11, 12}, ids, "first occurrence wins, arrival order kept")
}

func TestProgramTypeClassification(t *testing.T) {
	testCases := []struct {
		name        string
		mutate      func(db.Row)
		wantType    string
		wantPercent float64
	}{
		{
			"positive rule discount means DISCOUNT",
			func(row db.Row) { row["rule_discount"] = 15.0 },
			loyalty.TypeDiscount, 15.0,
		},
		{
			"reward without discount means BOGO",
			func(row db.Row) { withReward(42, "Free Mug", "999")(row) },
			loyalty.TypeBOGO, 0,
		},
		{
			"neither defaults to BOGO at zero",
			func(db.Row) {},
			loyalty.TypeBOGO, 0,
		},
		{
			"zero discount is not DISCOUNT",
			func(row db.Row) { row["rule_discount"] = 0.0 },
			loyalty.TypeBOGO, 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			programs := aggregate(t, []db.Row{programRow(1, tc.mutate)})
			require.Len(t, programs, 1)
			assert.Equal(t, tc.wantType, programs[0].Type)
			assert.Equal(t, tc.wantPercent, programs[0].DiscountPercent)
		})
	}
}

func TestMainProductCoalesce(t *testing.T) {
	t.Run("absent when id is zero", func(t *testing.T) {
		programs := aggregate(t, []db.Row{programRow(1)})
		require.Len(t, programs, 1)
		assert.Nil(t, programs[0].MainProduct)
	})

	t.Run("falls back to first eligible product", func(t *testing.T) {
		programs := aggregate(t, []db.Row{programRow(1, withEligible(10, "Cola", "111", 3.5))})
		require.Len(t, programs, 1)
		main := programs[0].MainProduct
		require.NotNil(t, main)
		assert.Equal(t, int64(10), main.ID)
		assert.Equal(t, "Cola", main.Name)
		assert.Equal(t, 3.5, main.Price)
	})

	t.Run("unnamed main product reads Unknown", func(t *testing.T) {
		programs := aggregate(t, []db.Row{programRow(1, func(row db.Row) {
			row["main_product_id"] = int64(5)
		})})
		require.Len(t, programs, 1)
		require.NotNil(t, programs[0].MainProduct)
		assert.Equal(t, "Unknown", programs[0].MainProduct.Name)
	})
}

func TestProgramHeaderFields(t *testing.T) {
	rows := []db.Row{programRow(7, func(row db.Row) {
		row["rule_min_qty"] = 2.0
		row["rule_min_amount"] = 100.0
		row["discount_code"] = "SUMMER15"
		row["rule_discount"] = 15.0
	})}

	programs := aggregate(t, rows)
	require.Len(t, programs, 1)
	p := programs[0]

	assert.Equal(t, int64(7), p.ProgramID)
	assert.Equal(t, "عرض", p.Name, "preferred locale wins")
	assert.Equal(t, 2, p.BuyQuantity)
	assert.Equal(t, 1, p.FreeQuantity)
	assert.Equal(t, 2.0, p.MinQuantity)
	assert.Equal(t, 100.0, p.MinAmount)
	require.NotNil(t, p.DiscountCode)
	assert.Equal(t, "SUMMER15", *p.DiscountCode)
	require.NotNil(t, p.LastUpdated)
	assert.Equal(t, "2024-03-01T10:00:00Z", *p.LastUpdated)
}

func TestBuyQuantityDefaultsToOne(t *testing.T) {
	programs := aggregate(t, []db.Row{programRow(1)})
	require.Len(t, programs, 1)
	assert.Equal(t, 1, programs[0].BuyQuantity)
	assert.Equal(t, 0.0, programs[0].MinQuantity)
}

func TestActiveRequiresProgramAndRule(t *testing.T) {
	programs := aggregate(t, []db.Row{programRow(1, func(row db.Row) {
		row["rule_active"] = false
	})})
	require.Len(t, programs, 1)
	assert.False(t, programs[0].Active)
}

func TestProgramsKeepFirstSeenOrder(t *testing.T) {
	rows := []db.Row{programRow(2), programRow(1), programRow(2)}
	programs := aggregate(t, rows)
	require.Len(t, programs, 2)
	assert.Equal(t, int64(2), programs[0].ProgramID)
	assert.Equal(t, int64(1), programs[1].ProgramID)
}

func TestHeaderNotReclassifiedOnLaterRows(t *testing.T) {
	// A later row carrying a discount must not flip a program that was
	// first seen without one.
	rows := []db.Row{
		programRow(1, withEligible(10, "A", "1", 1)),
		programRow(1, func(row db.Row) {
			withEligible(11, "B", "2", 1)(row)
			row["rule_discount"] = 20.0
		}),
	}
	programs := aggregate(t, rows)
	require.Len(t, programs, 1)
	assert.Equal(t, loyalty.TypeBOGO, programs[0].Type)
	assert.Equal(t, 0.0, programs[0].DiscountPercent)
	assert.Len(t, programs[0].EligibleProducts, 2)
}

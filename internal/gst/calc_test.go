package gst

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func catalogLine(id int64, rate string, slab int64) LineItem {
	r := dec(rate)
	unitGST := r.Mul(decimal.NewFromInt(slab)).Div(decimal.NewFromInt(100)).Round(2)
	return LineItem{
		ItemID:   snowflake.ID(id),
		Type:     ItemTypeGoods,
		HSNCode:  "8471",
		Rate:     r,
		GSTSlab:  slab,
		UnitIGST: unitGST,
	}
}

func TestAddOrUpdateLine_AppendsAndComputes(t *testing.T) {
	lines := AddOrUpdateLine(nil, catalogLine(1, "1000.00", 18), 1)
	require.Len(t, lines, 1)

	line := lines[0]
	assert.True(t, line.TaxableAmount.Equal(dec("1000.00")), "taxable: %s", line.TaxableAmount)
	assert.True(t, line.GSTAmount.Equal(dec("180.00")), "gst: %s", line.GSTAmount)
	assert.True(t, line.CGST.Equal(dec("90.00")))
	assert.True(t, line.SGST.Equal(dec("90.00")))
	assert.True(t, line.IGST.Equal(dec("180.00")))
	assert.True(t, line.Total.Equal(dec("1180.00")))
}

func TestAddOrUpdateLine_GSTFromCatalogNotSlab(t *testing.T) {
	// On first add the catalog's per-unit IGST is used verbatim, even when
	// it disagrees with the slab and even for quantity > 1.
	candidate := catalogLine(1, "1000.00", 18)
	candidate.UnitIGST = dec("150.00")

	lines := AddOrUpdateLine(nil, candidate, 2)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].TaxableAmount.Equal(dec("2000.00")))
	assert.True(t, lines[0].GSTAmount.Equal(dec("150.00")), "catalog path must not re-derive from slab")

	// A quantity change switches to the slab-derived path.
	updated := UpdateQuantity(lines[0], 2)
	assert.True(t, updated.GSTAmount.Equal(dec("360.00")))
}

func TestAddOrUpdateLine_LastWriteWins(t *testing.T) {
	lines := AddOrUpdateLine(nil, catalogLine(1, "1000.00", 18), 1)
	lines = AddOrUpdateLine(lines, catalogLine(2, "50.00", 5), 1)
	lines = AddOrUpdateLine(lines, catalogLine(1, "1000.00", 18), 3)

	require.Len(t, lines, 2)
	assert.EqualValues(t, 3, lines[0].Quantity, "quantity replaces, never accumulates")
	assert.EqualValues(t, snowflake.ID(1), lines[0].ItemID)
}

func TestAddOrUpdateLine_DoesNotMutateInput(t *testing.T) {
	original := AddOrUpdateLine(nil, catalogLine(1, "1000.00", 18), 1)
	_ = AddOrUpdateLine(original, catalogLine(1, "1000.00", 18), 5)
	assert.EqualValues(t, 1, original[0].Quantity)
}

func TestUpdateQuantity_FullRecomputeFromSlab(t *testing.T) {
	lines := AddOrUpdateLine(nil, catalogLine(1, "1000.00", 18), 1)
	line := UpdateQuantity(lines[0], 2)

	assert.True(t, line.TaxableAmount.Equal(dec("2000.00")))
	assert.True(t, line.GSTAmount.Equal(dec("360.00")))
	assert.True(t, line.CGST.Equal(dec("180.00")))
	assert.True(t, line.SGST.Equal(dec("180.00")))
	assert.True(t, line.IGST.Equal(dec("360.00")))
	assert.True(t, line.Total.Equal(dec("2360.00")))
}

func TestRemoveLine(t *testing.T) {
	lines := AddOrUpdateLine(nil, catalogLine(1, "1000.00", 18), 1)
	lines = AddOrUpdateLine(lines, catalogLine(2, "50.00", 5), 1)

	lines = RemoveLine(lines, snowflake.ID(1))
	require.Len(t, lines, 1)
	assert.EqualValues(t, snowflake.ID(2), lines[0].ItemID)

	assert.Empty(t, RemoveLine(lines, snowflake.ID(2)))
}

func TestRecompute_WholeRupeeAdjustment(t *testing.T) {
	lines := []LineItem{UpdateQuantity(catalogLine(1, "1000.00", 18), 2)}

	tests := []struct {
		name       string
		shipping   string
		wantAdjust string
		wantTotal  string
	}{
		{"no fraction", "50.00", "0.00", "2410.00"},
		{"fraction below half rounds down", "50.30", "-0.30", "2410.00"},
		{"fraction above half rounds up", "50.70", "0.30", "2411.00"},
		{"exactly half rounds down", "50.50", "-0.50", "2410.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := Recompute(lines, Adjustments{
				ShippingCharges: dec(tt.shipping),
				PaymentMode:     PaymentModeFull,
			})
			assert.True(t, totals.OtherAdjustments.Equal(dec(tt.wantAdjust)),
				"adjustment: %s", totals.OtherAdjustments)
			assert.True(t, totals.Total.Equal(dec(tt.wantTotal)),
				"total: %s", totals.Total)
			assert.True(t, totals.Total.Mod(decimal.NewFromInt(1)).IsZero(),
				"auto-adjusted total must land on a whole rupee")
		})
	}
}

func TestRecompute_ManualAdjustmentOverride(t *testing.T) {
	lines := []LineItem{UpdateQuantity(catalogLine(1, "1000.00", 18), 2)}
	manual := dec("5.25")

	totals := Recompute(lines, Adjustments{
		ShippingCharges:  dec("50.30"),
		ManualAdjustment: &manual,
		PaymentMode:      PaymentModeFull,
	})
	assert.True(t, totals.OtherAdjustments.Equal(dec("5.25")))
	assert.True(t, totals.Total.Equal(dec("2415.55")))
}

func TestRecompute_TaxSplitSymmetry(t *testing.T) {
	lines := []LineItem{
		UpdateQuantity(catalogLine(1, "999.99", 18), 1),
		UpdateQuantity(catalogLine(2, "123.45", 12), 3),
	}
	totals := Recompute(lines, Adjustments{PaymentMode: PaymentModeFull})

	assert.True(t, totals.CGST.Equal(totals.SGST))
	assert.True(t, totals.CGST.Equal(totals.GSTAmount.Div(decimal.NewFromInt(2)).Round(2)))
	assert.True(t, totals.IGST.Equal(totals.GSTAmount))
}

func TestRecompute_FullPaymentZeroes(t *testing.T) {
	lines := []LineItem{UpdateQuantity(catalogLine(1, "1000.00", 18), 2)}
	totals := Recompute(lines, Adjustments{
		PaymentMode:   PaymentModeFull,
		AdvanceAmount: dec("1000.00"), // ignored in full mode
	})
	assert.True(t, totals.AdvanceAmount.IsZero())
	assert.True(t, totals.BalanceDue.IsZero())
}

func TestRecompute_PartialPaymentBalance(t *testing.T) {
	lines := []LineItem{UpdateQuantity(catalogLine(1, "1000.00", 18), 2)}
	totals := Recompute(lines, Adjustments{
		ShippingCharges: dec("50.00"),
		PaymentMode:     PaymentModePartial,
		AdvanceAmount:   dec("1000.00"),
	})
	assert.True(t, totals.Total.Equal(dec("2410.00")))
	assert.True(t, totals.BalanceDue.Equal(dec("1410.00")))
}

func TestRecompute_NegativeBalanceDueIsKept(t *testing.T) {
	// An advance above the total is customer credit; the calculator does
	// not clamp it.
	lines := []LineItem{UpdateQuantity(catalogLine(1, "100.00", 18), 1)}
	totals := Recompute(lines, Adjustments{
		PaymentMode:   PaymentModePartial,
		AdvanceAmount: dec("500.00"),
	})
	assert.True(t, totals.BalanceDue.IsNegative())
	assert.True(t, totals.BalanceDue.Equal(dec("-382.00")))
}

func TestRecompute_EmptyLines(t *testing.T) {
	totals := Recompute(nil, Adjustments{PaymentMode: PaymentModeFull})
	assert.True(t, totals.TaxableAmount.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestRecompute_Idempotent(t *testing.T) {
	lines := []LineItem{
		UpdateQuantity(catalogLine(1, "1000.00", 18), 2),
		UpdateQuantity(catalogLine(2, "33.33", 5), 7),
	}
	adj := Adjustments{
		ShippingCharges: dec("12.34"),
		Discount:        dec("5.00"),
		PaymentMode:     PaymentModePartial,
		AdvanceAmount:   dec("100.00"),
	}
	first := Recompute(lines, adj)
	second := Recompute(lines, adj)
	assert.Equal(t, first, second)
}

func TestDetermineTaxSplit(t *testing.T) {
	assert.Equal(t, SplitModeIntra, DetermineTaxSplit("karnataka", "Karnataka"))
	assert.Equal(t, SplitModeIntra, DetermineTaxSplit("Karnataka", "  KARNATAKA  "))
	assert.Equal(t, SplitModeInter, DetermineTaxSplit("karnataka", "maharashtra"))
	assert.Equal(t, SplitModeInter, DetermineTaxSplit("karnataka", ""))
}

package gst

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	half    = decimal.RequireFromString("0.5")
	hundred = decimal.NewFromInt(100)
)

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// AddOrUpdateLine returns a new line list with the candidate added. A line
// with the same item id is replaced wholesale (last write wins); quantities
// do not accumulate. The input slice is never mutated.
//
// On this path the line's GST amount is the catalog's precomputed per-unit
// IGST, NOT derived from the slab. UpdateQuantity derives from the slab.
// The two paths intentionally stay distinct.
func AddOrUpdateLine(lines []LineItem, candidate LineItem, quantity int64) []LineItem {
	line := candidate
	line.Quantity = quantity
	line.TaxableAmount = round2(line.Rate.Mul(decimal.NewFromInt(quantity)))
	line.GSTAmount = round2(candidate.UnitIGST)
	line.CGST = round2(line.GSTAmount.Div(two))
	line.SGST = line.CGST
	line.IGST = round2(line.GSTAmount)
	line.Total = round2(line.TaxableAmount.Add(line.GSTAmount))

	out := make([]LineItem, 0, len(lines)+1)
	replaced := false
	for _, existing := range lines {
		if existing.ItemID == line.ItemID {
			out = append(out, line)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, line)
	}
	return out
}

// UpdateQuantity recomputes a line fully from its slab for the new quantity.
// Zero or negative quantities are not rejected here; callers validate.
func UpdateQuantity(line LineItem, quantity int64) LineItem {
	line.Quantity = quantity
	line.TaxableAmount = round2(line.Rate.Mul(decimal.NewFromInt(quantity)))
	line.GSTAmount = round2(line.TaxableAmount.Mul(decimal.NewFromInt(line.GSTSlab)).Div(hundred))
	line.CGST = round2(line.GSTAmount.Div(two))
	line.SGST = line.CGST
	line.IGST = round2(line.GSTAmount)
	line.Total = round2(line.TaxableAmount.Add(line.GSTAmount))
	return line
}

// RemoveLine returns a new line list without the given item.
func RemoveLine(lines []LineItem, itemID snowflake.ID) []LineItem {
	out := make([]LineItem, 0, len(lines))
	for _, line := range lines {
		if line.ItemID == itemID {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Recompute aggregates all lines plus adjustments into Totals. It is total
// over its numeric domain: it never fails, and identical inputs always
// produce identical output.
//
// The auto rounding adjustment pushes the payable total to a whole rupee:
// a fractional part above 0.50 rounds up, anything else rounds down. A
// manual adjustment, when supplied, is used verbatim instead.
//
// BalanceDue is NOT clamped at zero: an advance above the total yields a
// negative balance, which records customer credit.
func Recompute(lines []LineItem, adj Adjustments) Totals {
	var taxable, gstAmount decimal.Decimal
	for _, line := range lines {
		taxable = taxable.Add(line.TaxableAmount)
		gstAmount = gstAmount.Add(line.GSTAmount)
	}
	taxable = round2(taxable)
	gstAmount = round2(gstAmount)

	totals := Totals{
		TaxableAmount:   taxable,
		GSTAmount:       gstAmount,
		CGST:            round2(gstAmount.Div(two)),
		SGST:            round2(gstAmount.Div(two)),
		IGST:            round2(gstAmount),
		ShippingCharges: round2(adj.ShippingCharges),
		Discount:        round2(adj.Discount),
		PaymentMode:     adj.PaymentMode,
	}

	baseTotal := taxable.Add(gstAmount).Add(totals.ShippingCharges).Sub(totals.Discount)
	if adj.ManualAdjustment != nil {
		totals.OtherAdjustments = round2(*adj.ManualAdjustment)
	} else {
		totals.OtherAdjustments = autoAdjustment(baseTotal)
	}
	totals.Total = round2(baseTotal.Add(totals.OtherAdjustments))

	switch adj.PaymentMode {
	case PaymentModePartial:
		totals.AdvanceAmount = round2(adj.AdvanceAmount)
		totals.BalanceDue = round2(totals.Total.Sub(totals.AdvanceAmount))
	default:
		totals.AdvanceAmount = decimal.Zero.Round(2)
		totals.BalanceDue = decimal.Zero.Round(2)
	}

	return totals
}

func autoAdjustment(baseTotal decimal.Decimal) decimal.Decimal {
	decimalPart := round2(baseTotal.Mod(one))
	if decimalPart.GreaterThan(half) {
		return round2(one.Sub(decimalPart))
	}
	return round2(decimalPart.Neg())
}

// DetermineTaxSplit decides which tax pair is active for an order from a
// case-insensitive comparison of the customer's place of supply against
// the seller's configured home state.
func DetermineTaxSplit(homeState, placeOfSupply string) SplitMode {
	if strings.EqualFold(strings.TrimSpace(homeState), strings.TrimSpace(placeOfSupply)) {
		return SplitModeIntra
	}
	return SplitModeInter
}

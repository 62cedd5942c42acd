// Package gst implements per-line GST splitting and invoice total
// reconciliation. Everything here is pure computation: no I/O, no stored
// state, safe to call from both interactive order entry and server-side
// verification with identical results.
package gst

import (
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// ItemType distinguishes goods (HSN) from services (SAC).
type ItemType string

const (
	ItemTypeGoods   ItemType = "goods"
	ItemTypeService ItemType = "service"
)

// PaymentMode controls how the advance/balance fields are derived.
type PaymentMode string

const (
	PaymentModeFull    PaymentMode = "full"
	PaymentModePartial PaymentMode = "partial"
)

// SplitMode says which tax pair is legally active for an order.
// Both pairs are always computed and stored; the mode only selects
// which one is displayed and reported.
type SplitMode string

const (
	SplitModeIntra SplitMode = "intra" // CGST + SGST
	SplitModeInter SplitMode = "inter" // IGST
)

// LineItem is one product or service line on an order.
//
// TaxableAmount, GSTAmount and the three splits are derived fields; the
// calculator owns them and callers should treat them as read-only.
type LineItem struct {
	ItemID      snowflake.ID    `json:"item_id"`
	Type        ItemType        `json:"type"`
	HSNCode     string          `json:"hsn_code"`
	Description string          `json:"description"`
	Rate        decimal.Decimal `json:"rate"`
	Quantity    int64           `json:"quantity"`
	GSTSlab     int64           `json:"gst_slab"` // percent: 0, 5, 12, 18 or 28

	// UnitIGST is the catalog's precomputed per-unit GST amount. It is
	// consumed verbatim on first add (see AddOrUpdateLine) and ignored
	// on quantity changes.
	UnitIGST decimal.Decimal `json:"unit_igst"`

	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	GSTAmount     decimal.Decimal `json:"gst_amount"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	IGST          decimal.Decimal `json:"igst"`
	Total         decimal.Decimal `json:"total"`
}

// Adjustments are the order-level inputs that sit outside the line list.
type Adjustments struct {
	ShippingCharges decimal.Decimal
	Discount        decimal.Decimal

	// ManualAdjustment, when non-nil, overrides the auto-derived rounding
	// adjustment verbatim.
	ManualAdjustment *decimal.Decimal

	PaymentMode   PaymentMode
	AdvanceAmount decimal.Decimal
}

// Totals is the aggregate of all lines plus adjustments.
type Totals struct {
	TaxableAmount    decimal.Decimal `json:"taxable_amount"`
	GSTAmount        decimal.Decimal `json:"gst_amount"`
	CGST             decimal.Decimal `json:"cgst"`
	SGST             decimal.Decimal `json:"sgst"`
	IGST             decimal.Decimal `json:"igst"`
	ShippingCharges  decimal.Decimal `json:"shipping_charges"`
	Discount         decimal.Decimal `json:"discount"`
	OtherAdjustments decimal.Decimal `json:"other_adjustments"`
	Total            decimal.Decimal `json:"total"`
	PaymentMode      PaymentMode     `json:"payment_mode"`
	AdvanceAmount    decimal.Decimal `json:"advance_amount"`
	BalanceDue       decimal.Decimal `json:"balance_due"`
}

package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/gstbooks/internal/gst"
	"gorm.io/datatypes"
)

// SaleKind separates tax invoices from cash memos.
type SaleKind string

const (
	SaleKindGST  SaleKind = "GST"  // customer on record, jurisdiction-split taxes
	SaleKindCash SaleKind = "CASH" // walk-in, always intra-state
)

// SaleStatus tracks payment lifecycle.
type SaleStatus string

const (
	SaleStatusOpen SaleStatus = "OPEN"
	SaleStatusPaid SaleStatus = "PAID"
)

// Sale is a persisted invoice with its reconciled totals. Totals are
// written only after the service has re-run the calculator over the
// submitted lines and confirmed they match.
type Sale struct {
	ID    snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID snowflake.ID `gorm:"column:org_id;not null;index;uniqueIndex:ux_sale_number" json:"organization_id"`
	Kind  SaleKind     `gorm:"type:text;not null;uniqueIndex:ux_sale_number" json:"kind"`

	InvoiceNumber string    `gorm:"column:invoice_number;not null;uniqueIndex:ux_sale_number" json:"invoice_number"`
	InvoiceDate   time.Time `gorm:"column:invoice_date;not null" json:"invoice_date"`

	CustomerID    *snowflake.ID `gorm:"column:customer_id;index" json:"customer_id,omitempty"`
	CustomerName  string        `gorm:"column:customer_name;not null" json:"customer_name"`
	CustomerGSTIN string        `gorm:"column:customer_gstin;type:text" json:"customer_gstin,omitempty"`
	PlaceOfSupply string        `gorm:"column:place_of_supply;type:text" json:"place_of_supply,omitempty"`
	SplitMode     gst.SplitMode `gorm:"column:split_mode;type:text;not null" json:"split_mode"`

	TaxableAmount    decimal.Decimal `gorm:"column:taxable_amount;type:decimal(20,2);not null" json:"taxable_amount"`
	GSTAmount        decimal.Decimal `gorm:"column:gst_amount;type:decimal(20,2);not null" json:"gst_amount"`
	CGST             decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"cgst"`
	SGST             decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"sgst"`
	IGST             decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"igst"`
	ShippingCharges  decimal.Decimal `gorm:"column:shipping_charges;type:decimal(20,2);not null" json:"shipping_charges"`
	Discount         decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"discount"`
	OtherAdjustments decimal.Decimal `gorm:"column:other_adjustments;type:decimal(20,2);not null" json:"other_adjustments"`
	Total            decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"total"`

	PaymentMode   gst.PaymentMode `gorm:"column:payment_mode;type:text;not null" json:"payment_mode"`
	AdvanceAmount decimal.Decimal `gorm:"column:advance_amount;type:decimal(20,2);not null" json:"advance_amount"`
	BalanceDue    decimal.Decimal `gorm:"column:balance_due;type:decimal(20,2);not null" json:"balance_due"`
	Status        SaleStatus      `gorm:"type:text;not null;default:'OPEN'" json:"status"`

	Items []SaleItem `gorm:"-" json:"items,omitempty"`

	Metadata  datatypes.JSONMap `gorm:"type:json;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Sale) TableName() string { return "sales" }

// SaleItem is one persisted invoice line.
type SaleItem struct {
	ID     snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID  snowflake.ID `gorm:"column:org_id;not null;index" json:"organization_id"`
	SaleID snowflake.ID `gorm:"column:sale_id;not null;index" json:"sale_id"`
	ItemID snowflake.ID `gorm:"column:item_id;not null" json:"item_id"`

	Type        gst.ItemType `gorm:"type:text;not null" json:"type"`
	HSNCode     string       `gorm:"column:hsn_code;type:text" json:"hsn_code"`
	Description string       `gorm:"type:text" json:"description"`

	Rate     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"rate"`
	Quantity int64           `gorm:"not null" json:"quantity"`
	GSTSlab  int64           `gorm:"column:gst_slab;not null" json:"gst_slab"`

	TaxableAmount decimal.Decimal `gorm:"column:taxable_amount;type:decimal(20,2);not null" json:"taxable_amount"`
	GSTAmount     decimal.Decimal `gorm:"column:gst_amount;type:decimal(20,2);not null" json:"gst_amount"`
	CGST          decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"cgst"`
	SGST          decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"sgst"`
	IGST          decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"igst"`
	Total         decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"total"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (SaleItem) TableName() string { return "sale_items" }

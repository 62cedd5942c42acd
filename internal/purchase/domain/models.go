package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/gstbooks/internal/gst"
)

// Purchase is an expense or supplier bill. Totals are entered, not
// reconciled line by line; the service only checks the arithmetic of the
// three amount fields.
type Purchase struct {
	ID    snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID snowflake.ID `gorm:"column:org_id;not null;index" json:"organization_id"`

	SupplierName  string    `gorm:"column:supplier_name;not null" json:"supplier_name"`
	SupplierGSTIN string    `gorm:"column:supplier_gstin;type:text" json:"supplier_gstin,omitempty"`
	BillNumber    string    `gorm:"column:bill_number;not null" json:"bill_number"`
	BillDate      time.Time `gorm:"column:bill_date;not null" json:"bill_date"`
	Category      string    `gorm:"type:text" json:"category,omitempty"`
	Description   string    `gorm:"type:text" json:"description,omitempty"`

	TaxableAmount decimal.Decimal `gorm:"column:taxable_amount;type:decimal(20,2);not null" json:"taxable_amount"`
	GSTAmount     decimal.Decimal `gorm:"column:gst_amount;type:decimal(20,2);not null" json:"gst_amount"`
	Total         decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"total"`

	PaymentMode gst.PaymentMode `gorm:"column:payment_mode;type:text;not null" json:"payment_mode"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Purchase) TableName() string { return "purchases" }

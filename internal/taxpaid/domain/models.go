package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// TaxPayment is a GST challan record: tax remitted to the department for
// a filing period.
type TaxPayment struct {
	ID    snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID snowflake.ID `gorm:"column:org_id;not null;index" json:"organization_id"`

	Period        string          `gorm:"not null" json:"period"` // e.g. 2026-08 for August 2026
	ChallanNumber string          `gorm:"column:challan_number;not null" json:"challan_number"`
	PaidOn        time.Time       `gorm:"column:paid_on;not null" json:"paid_on"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Mode          string          `gorm:"type:text" json:"mode,omitempty"` // netbanking, cheque, cash
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (TaxPayment) TableName() string { return "tax_payments" }

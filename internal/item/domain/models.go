package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/gstbooks/internal/gst"
)

// Item is a catalog entry for a good or service.
//
// GSTAmount and the split columns are the precomputed per-unit tax at the
// item's slab. The order-entry first-add path consumes them verbatim, so
// they are kept in sync on every create and update.
type Item struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID   snowflake.ID `gorm:"column:org_id;not null;index" json:"organization_id"`
	Name    string       `gorm:"not null" json:"name"`
	Type    gst.ItemType `gorm:"type:text;not null" json:"type"`
	HSNCode string       `gorm:"column:hsn_code;type:text" json:"hsn_code"`

	Rate    decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"rate"`
	GSTSlab int64           `gorm:"column:gst_slab;not null" json:"gst_slab"`

	GSTAmount decimal.Decimal `gorm:"column:gst_amount;type:decimal(20,2);not null" json:"gst_amount"`
	CGST      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"cgst"`
	SGST      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"sgst"`
	IGST      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"igst"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Item) TableName() string { return "items" }

// GSTSlabs are the recognized GST percentages.
var GSTSlabs = map[int64]bool{0: true, 5: true, 12: true, 18: true, 28: true}

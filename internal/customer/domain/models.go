package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Customer struct {
	ID    snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID snowflake.ID `gorm:"column:org_id;not null;index" json:"organization_id"`
	Name  string       `gorm:"not null" json:"name"`
	Email string       `gorm:"not null" json:"email"`
	Phone string       `gorm:"type:text" json:"phone,omitempty"`

	GSTIN          string `gorm:"column:gstin;type:text" json:"gstin,omitempty"`
	PlaceOfSupply  string `gorm:"column:place_of_supply;type:text;not null" json:"place_of_supply"`
	BillingAddress string `gorm:"column:billing_address;type:text" json:"billing_address,omitempty"`
	Notes          string `gorm:"type:text" json:"notes,omitempty"`

	Metadata  datatypes.JSONMap `gorm:"type:json;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }

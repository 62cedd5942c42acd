package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Summary(ctx context.Context, db *gorm.DB, orgID snowflake.ID, from, to time.Time) (*Summary, error)
	MonthlySeries(ctx context.Context, db *gorm.DB, orgID snowflake.ID, from, to time.Time) ([]MonthlyPoint, error)
	TopCustomers(ctx context.Context, db *gorm.DB, orgID snowflake.ID, from, to time.Time, limit int) ([]TopCustomer, error)
}

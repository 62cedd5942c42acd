package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/gstbooks/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, payment *TaxPayment) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*TaxPayment, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, req ListTaxPaymentRequest, page pagination.Pagination) ([]*TaxPayment, error)
	Update(ctx context.Context, db *gorm.DB, payment *TaxPayment) error
	Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) error
}

package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/gstbooks/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, sale *Sale) error
	InsertItems(ctx context.Context, db *gorm.DB, items []SaleItem) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Sale, error)
	FindItems(ctx context.Context, db *gorm.DB, orgID, saleID snowflake.ID) ([]SaleItem, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListSaleFilter, page pagination.Pagination) ([]*Sale, error)
	Update(ctx context.Context, db *gorm.DB, sale *Sale) error
	DeleteItems(ctx context.Context, db *gorm.DB, orgID, saleID snowflake.ID) error
	Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) error
}

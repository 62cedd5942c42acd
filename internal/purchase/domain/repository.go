package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/gstbooks/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, purchase *Purchase) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Purchase, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListPurchaseFilter, page pagination.Pagination) ([]*Purchase, error)
	Update(ctx context.Context, db *gorm.DB, purchase *Purchase) error
	Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) error
}

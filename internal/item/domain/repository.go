package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/gstbooks/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, item *Item) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Item, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListItemFilter, page pagination.Pagination) ([]*Item, error)
	Update(ctx context.Context, db *gorm.DB, item *Item) error
	Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) error
}

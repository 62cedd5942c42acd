package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/gstbooks/internal/item/domain"
	"github.com/smallbiznis/gstbooks/pkg/db/option"
	"github.com/smallbiznis/gstbooks/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, item *domain.Item) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO items (id, org_id, name, type, hsn_code, rate, gst_slab, gst_amount, cgst, sgst, igst, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.OrgID,
		item.Name,
		item.Type,
		item.HSNCode,
		item.Rate,
		item.GSTSlab,
		item.GSTAmount,
		item.CGST,
		item.SGST,
		item.IGST,
		item.CreatedAt,
		item.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*domain.Item, error) {
	var item domain.Item
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_id, name, type, hsn_code, rate, gst_slab, gst_amount, cgst, sgst, igst, created_at, updated_at
		 FROM items WHERE org_id = ? AND id = ?`,
		orgID,
		id,
	).Scan(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter domain.ListItemFilter, page pagination.Pagination) ([]*domain.Item, error) {
	var items []*domain.Item
	stmt := db.WithContext(ctx).
		Model(&domain.Item{}).
		Where("org_id = ?", orgID)
	if filter.Search != "" {
		stmt = stmt.Where("name LIKE ?", filter.Search+"%")
	}
	if filter.Type != "" {
		stmt = stmt.Where("type = ?", filter.Type)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, item *domain.Item) error {
	return db.WithContext(ctx).Exec(
		`UPDATE items
		 SET name = ?, hsn_code = ?, rate = ?, gst_slab = ?, gst_amount = ?, cgst = ?, sgst = ?, igst = ?, updated_at = ?
		 WHERE org_id = ? AND id = ?`,
		item.Name,
		item.HSNCode,
		item.Rate,
		item.GSTSlab,
		item.GSTAmount,
		item.CGST,
		item.SGST,
		item.IGST,
		item.UpdatedAt,
		item.OrgID,
		item.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM items WHERE org_id = ? AND id = ?`,
		orgID,
		id,
	).Error
}

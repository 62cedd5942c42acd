package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/gstbooks/internal/purchase/domain"
	"github.com/smallbiznis/gstbooks/pkg/db/option"
	"github.com/smallbiznis/gstbooks/pkg/db/pagination"
	"gorm.io/gorm"
)

// sortColumns are the columns a caller may order the purchase list by.
var sortColumns = map[string]bool{
	"created_at":    true,
	"bill_date":     true,
	"total":         true,
	"supplier_name": true,
}

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, purchase *domain.Purchase) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO purchases (
			id, org_id, supplier_name, supplier_gstin, bill_number, bill_date,
			category, description, taxable_amount, gst_amount, total, payment_mode,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		purchase.ID,
		purchase.OrgID,
		purchase.SupplierName,
		purchase.SupplierGSTIN,
		purchase.BillNumber,
		purchase.BillDate,
		purchase.Category,
		purchase.Description,
		purchase.TaxableAmount,
		purchase.GSTAmount,
		purchase.Total,
		purchase.PaymentMode,
		purchase.CreatedAt,
		purchase.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*domain.Purchase, error) {
	var purchase domain.Purchase
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM purchases WHERE org_id = ? AND id = ?`,
		orgID,
		id,
	).Scan(&purchase).Error
	if err != nil {
		return nil, err
	}
	if purchase.ID == 0 {
		return nil, nil
	}
	return &purchase, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter domain.ListPurchaseFilter, page pagination.Pagination) ([]*domain.Purchase, error) {
	var purchases []*domain.Purchase
	stmt := db.WithContext(ctx).
		Model(&domain.Purchase{}).
		Where("org_id = ?", orgID)
	if filter.SupplierName != "" {
		stmt = stmt.Where("supplier_name LIKE ?", filter.SupplierName+"%")
	}
	if filter.Category != "" {
		stmt = stmt.Where("category = ?", filter.Category)
	}
	if filter.DateFrom != nil {
		stmt = stmt.Where("bill_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		stmt = stmt.Where("bill_date <= ?", *filter.DateTo)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	stmt = option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, sortColumns)).Apply(stmt)
	err := stmt.
		Order("id desc").
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, purchase *domain.Purchase) error {
	return db.WithContext(ctx).Exec(
		`UPDATE purchases
		 SET supplier_name = ?, supplier_gstin = ?, bill_number = ?, bill_date = ?,
		     category = ?, description = ?, taxable_amount = ?, gst_amount = ?, total = ?,
		     payment_mode = ?, updated_at = ?
		 WHERE org_id = ? AND id = ?`,
		purchase.SupplierName,
		purchase.SupplierGSTIN,
		purchase.BillNumber,
		purchase.BillDate,
		purchase.Category,
		purchase.Description,
		purchase.TaxableAmount,
		purchase.GSTAmount,
		purchase.Total,
		purchase.PaymentMode,
		purchase.UpdatedAt,
		purchase.OrgID,
		purchase.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM purchases WHERE org_id = ? AND id = ?`,
		orgID,
		id,
	).Error
}

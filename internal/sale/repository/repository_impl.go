package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/gstbooks/internal/sale/domain"
	"github.com/smallbiznis/gstbooks/pkg/db/option"
	"github.com/smallbiznis/gstbooks/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, sale *domain.Sale) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO sales (
			id, org_id, kind, invoice_number, invoice_date,
			customer_id, customer_name, customer_gstin, place_of_supply, split_mode,
			taxable_amount, gst_amount, cgst, sgst, igst,
			shipping_charges, discount, other_adjustments, total,
			payment_mode, advance_amount, balance_due, status,
			metadata, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sale.ID,
		sale.OrgID,
		sale.Kind,
		sale.InvoiceNumber,
		sale.InvoiceDate,
		sale.CustomerID,
		sale.CustomerName,
		sale.CustomerGSTIN,
		sale.PlaceOfSupply,
		sale.SplitMode,
		sale.TaxableAmount,
		sale.GSTAmount,
		sale.CGST,
		sale.SGST,
		sale.IGST,
		sale.ShippingCharges,
		sale.Discount,
		sale.OtherAdjustments,
		sale.Total,
		sale.PaymentMode,
		sale.AdvanceAmount,
		sale.BalanceDue,
		sale.Status,
		sale.Metadata,
		sale.CreatedAt,
		sale.UpdatedAt,
	).Error
}

func (r *repo) InsertItems(ctx context.Context, db *gorm.DB, items []domain.SaleItem) error {
	for i := range items {
		err := db.WithContext(ctx).Exec(
			`INSERT INTO sale_items (
				id, org_id, sale_id, item_id, type, hsn_code, description,
				rate, quantity, gst_slab,
				taxable_amount, gst_amount, cgst, sgst, igst, total, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			items[i].ID,
			items[i].OrgID,
			items[i].SaleID,
			items[i].ItemID,
			items[i].Type,
			items[i].HSNCode,
			items[i].Description,
			items[i].Rate,
			items[i].Quantity,
			items[i].GSTSlab,
			items[i].TaxableAmount,
			items[i].GSTAmount,
			items[i].CGST,
			items[i].SGST,
			items[i].IGST,
			items[i].Total,
			items[i].CreatedAt,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*domain.Sale, error) {
	var sale domain.Sale
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM sales WHERE org_id = ? AND id = ?`,
		orgID,
		id,
	).Scan(&sale).Error
	if err != nil {
		return nil, err
	}
	if sale.ID == 0 {
		return nil, nil
	}
	return &sale, nil
}

func (r *repo) FindItems(ctx context.Context, db *gorm.DB, orgID, saleID snowflake.ID) ([]domain.SaleItem, error) {
	var items []domain.SaleItem
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM sale_items WHERE org_id = ? AND sale_id = ? ORDER BY id ASC`,
		orgID,
		saleID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter domain.ListSaleFilter, page pagination.Pagination) ([]*domain.Sale, error) {
	var sales []*domain.Sale
	stmt := db.WithContext(ctx).
		Model(&domain.Sale{}).
		Where("org_id = ?", orgID)
	if filter.Kind != "" {
		stmt = stmt.Where("kind = ?", filter.Kind)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.CustomerID != "" {
		stmt = stmt.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.InvoiceNumber != "" {
		stmt = stmt.Where("invoice_number LIKE ?", filter.InvoiceNumber+"%")
	}
	if filter.DateFrom != nil {
		stmt = stmt.Where("invoice_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		stmt = stmt.Where("invoice_date <= ?", *filter.DateTo)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, sale *domain.Sale) error {
	return db.WithContext(ctx).Exec(
		`UPDATE sales
		 SET invoice_number = ?, invoice_date = ?,
		     taxable_amount = ?, gst_amount = ?, cgst = ?, sgst = ?, igst = ?,
		     shipping_charges = ?, discount = ?, other_adjustments = ?, total = ?,
		     payment_mode = ?, advance_amount = ?, balance_due = ?, status = ?, updated_at = ?
		 WHERE org_id = ? AND id = ?`,
		sale.InvoiceNumber,
		sale.InvoiceDate,
		sale.TaxableAmount,
		sale.GSTAmount,
		sale.CGST,
		sale.SGST,
		sale.IGST,
		sale.ShippingCharges,
		sale.Discount,
		sale.OtherAdjustments,
		sale.Total,
		sale.PaymentMode,
		sale.AdvanceAmount,
		sale.BalanceDue,
		sale.Status,
		sale.UpdatedAt,
		sale.OrgID,
		sale.ID,
	).Error
}

func (r *repo) DeleteItems(ctx context.Context, db *gorm.DB, orgID, saleID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM sale_items WHERE org_id = ? AND sale_id = ?`,
		orgID,
		saleID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM sales WHERE org_id = ? AND id = ?`,
		orgID,
		id,
	).Error
}

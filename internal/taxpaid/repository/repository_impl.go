package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/gstbooks/internal/taxpaid/domain"
	"github.com/smallbiznis/gstbooks/pkg/db/option"
	"github.com/smallbiznis/gstbooks/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, payment *domain.TaxPayment) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO tax_payments (
			id, org_id, period, challan_number, paid_on, amount, mode, notes,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID,
		payment.OrgID,
		payment.Period,
		payment.ChallanNumber,
		payment.PaidOn,
		payment.Amount,
		payment.Mode,
		payment.Notes,
		payment.CreatedAt,
		payment.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*domain.TaxPayment, error) {
	var payment domain.TaxPayment
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM tax_payments WHERE org_id = ? AND id = ?`,
		orgID,
		id,
	).Scan(&payment).Error
	if err != nil {
		return nil, err
	}
	if payment.ID == 0 {
		return nil, nil
	}
	return &payment, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, req domain.ListTaxPaymentRequest, page pagination.Pagination) ([]*domain.TaxPayment, error) {
	var payments []*domain.TaxPayment
	stmt := db.WithContext(ctx).
		Model(&domain.TaxPayment{}).
		Where("org_id = ?", orgID)
	if req.Period != "" {
		stmt = stmt.Where("period = ?", req.Period)
	}
	if req.From != nil {
		stmt = stmt.Where("paid_on >= ?", *req.From)
	}
	if req.To != nil {
		stmt = stmt.Where("paid_on <= ?", *req.To)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("paid_on desc, id desc").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, payment *domain.TaxPayment) error {
	return db.WithContext(ctx).Exec(
		`UPDATE tax_payments
		 SET period = ?, challan_number = ?, paid_on = ?, amount = ?, mode = ?, notes = ?, updated_at = ?
		 WHERE org_id = ? AND id = ?`,
		payment.Period,
		payment.ChallanNumber,
		payment.PaidOn,
		payment.Amount,
		payment.Mode,
		payment.Notes,
		payment.UpdatedAt,
		payment.OrgID,
		payment.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM tax_payments WHERE org_id = ? AND id = ?`,
		orgID,
		id,
	).Error
}

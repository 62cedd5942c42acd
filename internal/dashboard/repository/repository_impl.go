package repository

import (
	"context"
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/gstbooks/internal/dashboard/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Summary(ctx context.Context, db *gorm.DB, orgID snowflake.ID, from, to time.Time) (*domain.Summary, error) {
	var sales struct {
		Count        int64
		Total        decimal.Decimal
		TaxCollected decimal.Decimal
		Outstanding  decimal.Decimal
	}
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) AS count,
		        COALESCE(SUM(total), 0) AS total,
		        COALESCE(SUM(gst_amount), 0) AS tax_collected,
		        COALESCE(SUM(CASE WHEN status = 'OPEN' THEN balance_due ELSE 0 END), 0) AS outstanding
		 FROM sales
		 WHERE org_id = ? AND invoice_date >= ? AND invoice_date <= ?`,
		orgID, from, to,
	).Scan(&sales).Error
	if err != nil {
		return nil, err
	}

	var purchases struct {
		Count int64
		Total decimal.Decimal
		Tax   decimal.Decimal
	}
	err = db.WithContext(ctx).Raw(
		`SELECT COUNT(*) AS count,
		        COALESCE(SUM(total), 0) AS total,
		        COALESCE(SUM(gst_amount), 0) AS tax
		 FROM purchases
		 WHERE org_id = ? AND bill_date >= ? AND bill_date <= ?`,
		orgID, from, to,
	).Scan(&purchases).Error
	if err != nil {
		return nil, err
	}

	var paid struct {
		Amount decimal.Decimal
	}
	err = db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(amount), 0) AS amount
		 FROM tax_payments
		 WHERE org_id = ? AND paid_on >= ? AND paid_on <= ?`,
		orgID, from, to,
	).Scan(&paid).Error
	if err != nil {
		return nil, err
	}

	return &domain.Summary{
		SalesCount:     sales.Count,
		SalesTotal:     sales.Total,
		TaxCollected:   sales.TaxCollected,
		PurchasesCount: purchases.Count,
		PurchasesTotal: purchases.Total,
		TaxOnPurchases: purchases.Tax,
		TaxPaid:        paid.Amount,
		OutstandingDue: sales.Outstanding,
	}, nil
}

// MonthlySeries buckets sales and purchases by calendar month in Go so the
// query stays identical across the mysql, postgres and sqlite dialects.
func (r *repo) MonthlySeries(ctx context.Context, db *gorm.DB, orgID snowflake.ID, from, to time.Time) ([]domain.MonthlyPoint, error) {
	type dated struct {
		Day    time.Time
		Total  decimal.Decimal
		Tax    decimal.Decimal
		Source string
	}

	var rows []dated
	err := db.WithContext(ctx).Raw(
		`SELECT invoice_date AS day, total, gst_amount AS tax, 'sale' AS source
		 FROM sales
		 WHERE org_id = ? AND invoice_date >= ? AND invoice_date <= ?
		 UNION ALL
		 SELECT bill_date AS day, total, gst_amount AS tax, 'purchase' AS source
		 FROM purchases
		 WHERE org_id = ? AND bill_date >= ? AND bill_date <= ?`,
		orgID, from, to,
		orgID, from, to,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]*domain.MonthlyPoint)
	for _, row := range rows {
		month := row.Day.Format("2006-01")
		point, ok := byMonth[month]
		if !ok {
			point = &domain.MonthlyPoint{Month: month}
			byMonth[month] = point
		}
		switch row.Source {
		case "sale":
			point.SalesTotal = point.SalesTotal.Add(row.Total)
			point.TaxCollected = point.TaxCollected.Add(row.Tax)
		case "purchase":
			point.PurchasesTotal = point.PurchasesTotal.Add(row.Total)
			point.TaxOnPurchases = point.TaxOnPurchases.Add(row.Tax)
		}
	}

	months := make([]domain.MonthlyPoint, 0, len(byMonth))
	for _, point := range byMonth {
		months = append(months, *point)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })
	return months, nil
}

func (r *repo) TopCustomers(ctx context.Context, db *gorm.DB, orgID snowflake.ID, from, to time.Time, limit int) ([]domain.TopCustomer, error) {
	var customers []domain.TopCustomer
	err := db.WithContext(ctx).Raw(
		`SELECT s.customer_id AS customer_id,
		        c.name AS customer_name,
		        COUNT(*) AS invoice_count,
		        COALESCE(SUM(s.total), 0) AS total
		 FROM sales s
		 JOIN customers c ON c.id = s.customer_id
		 WHERE s.org_id = ? AND s.customer_id IS NOT NULL
		   AND s.invoice_date >= ? AND s.invoice_date <= ?
		 GROUP BY s.customer_id, c.name
		 ORDER BY total DESC
		 LIMIT ?`,
		orgID, from, to, limit,
	).Scan(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidDateRange    = errors.New("invalid_date_range")
)

// Summary aggregates a date range into the figures the home screen shows.
type Summary struct {
	SalesCount     int64           `json:"sales_count"`
	SalesTotal     decimal.Decimal `json:"sales_total"`
	TaxCollected   decimal.Decimal `json:"tax_collected"`
	PurchasesCount int64           `json:"purchases_count"`
	PurchasesTotal decimal.Decimal `json:"purchases_total"`
	TaxOnPurchases decimal.Decimal `json:"tax_on_purchases"`
	TaxPaid        decimal.Decimal `json:"tax_paid"`
	OutstandingDue decimal.Decimal `json:"outstanding_due"`
}

// MonthlyPoint is one month of a time series, keyed YYYY-MM.
type MonthlyPoint struct {
	Month          string          `json:"month"`
	SalesTotal     decimal.Decimal `json:"sales_total"`
	TaxCollected   decimal.Decimal `json:"tax_collected"`
	PurchasesTotal decimal.Decimal `json:"purchases_total"`
	TaxOnPurchases decimal.Decimal `json:"tax_on_purchases"`
}

type TopCustomer struct {
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	InvoiceCount int64           `json:"invoice_count"`
	Total        decimal.Decimal `json:"total"`
}

type SummaryRequest struct {
	From time.Time
	To   time.Time
}

type MonthlyRequest struct {
	From time.Time
	To   time.Time
}

type MonthlyResponse struct {
	Months       []MonthlyPoint `json:"months"`
	TopCustomers []TopCustomer  `json:"top_customers"`
}

type Service interface {
	Summary(ctx context.Context, req SummaryRequest) (*Summary, error)
	Monthly(ctx context.Context, req MonthlyRequest) (*MonthlyResponse, error)
}

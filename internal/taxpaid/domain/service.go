package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"

	"github.com/smallbiznis/gstbooks/pkg/db/pagination"
)

var (
	ErrInvalidOrganization  = errors.New("invalid_organization")
	ErrTaxPaymentNotFound   = errors.New("tax_payment_not_found")
	ErrInvalidPeriod        = errors.New("invalid_period")
	ErrInvalidChallanNumber = errors.New("invalid_challan_number")
	ErrInvalidPaidOn        = errors.New("invalid_paid_on")
	ErrInvalidAmount        = errors.New("invalid_amount")
)

type CreateTaxPaymentRequest struct {
	Period        string          `json:"period" binding:"required"`
	ChallanNumber string          `json:"challan_number" binding:"required"`
	PaidOn        time.Time       `json:"paid_on" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Mode          string          `json:"mode"`
	Notes         string          `json:"notes"`
}

type UpdateTaxPaymentRequest struct {
	Period        *string          `json:"period"`
	ChallanNumber *string          `json:"challan_number"`
	PaidOn        *time.Time       `json:"paid_on"`
	Amount        *decimal.Decimal `json:"amount"`
	Mode          *string          `json:"mode"`
	Notes         *string          `json:"notes"`
}

type ListTaxPaymentRequest struct {
	pagination.Pagination
	Period string `form:"period"`
	From   *time.Time
	To     *time.Time
}

type ListTaxPaymentResponse struct {
	Payments []TaxPayment        `json:"tax_payments"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

type Service interface {
	Create(ctx context.Context, req CreateTaxPaymentRequest) (*TaxPayment, error)
	List(ctx context.Context, req ListTaxPaymentRequest) (*ListTaxPaymentResponse, error)
	GetByID(ctx context.Context, id snowflake.ID) (*TaxPayment, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateTaxPaymentRequest) (*TaxPayment, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

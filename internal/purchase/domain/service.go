package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/gstbooks/internal/gst"
	"github.com/smallbiznis/gstbooks/pkg/db/pagination"
)

type CreatePurchaseRequest struct {
	SupplierName  string          `json:"supplier_name"`
	SupplierGSTIN string          `json:"supplier_gstin"`
	BillNumber    string          `json:"bill_number"`
	BillDate      time.Time       `json:"bill_date"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	GSTAmount     decimal.Decimal `json:"gst_amount"`
	Total         decimal.Decimal `json:"total"`
	PaymentMode   gst.PaymentMode `json:"payment_mode"`
}

type UpdatePurchaseRequest struct {
	ID            string           `json:"id"`
	SupplierName  *string          `json:"supplier_name,omitempty"`
	SupplierGSTIN *string          `json:"supplier_gstin,omitempty"`
	BillNumber    *string          `json:"bill_number,omitempty"`
	BillDate      *time.Time       `json:"bill_date,omitempty"`
	Category      *string          `json:"category,omitempty"`
	Description   *string          `json:"description,omitempty"`
	TaxableAmount *decimal.Decimal `json:"taxable_amount,omitempty"`
	GSTAmount     *decimal.Decimal `json:"gst_amount,omitempty"`
	Total         *decimal.Decimal `json:"total,omitempty"`
	PaymentMode   *gst.PaymentMode `json:"payment_mode,omitempty"`
}

type ListPurchaseRequest struct {
	PageToken    string
	PageSize     int32
	SupplierName string
	Category     string
	DateFrom     *time.Time
	DateTo       *time.Time
	SortBy       string
	OrderBy      string
}

type ListPurchaseFilter struct {
	SupplierName string
	Category     string
	DateFrom     *time.Time
	DateTo       *time.Time
	SortBy       string
	OrderBy      string
}

type ListPurchaseResponse struct {
	pagination.PageInfo
	Purchases []Purchase `json:"purchases"`
}

type GetPurchaseRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreatePurchaseRequest) (Purchase, error)
	List(context.Context, ListPurchaseRequest) (ListPurchaseResponse, error)
	GetByID(context.Context, GetPurchaseRequest) (Purchase, error)
	Update(context.Context, UpdatePurchaseRequest) (Purchase, error)
	Delete(context.Context, GetPurchaseRequest) error
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidSupplier     = errors.New("invalid_supplier")
	ErrInvalidBillNumber   = errors.New("invalid_bill_number")
	ErrInvalidBillDate     = errors.New("invalid_bill_date")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrInvalidPaymentMode  = errors.New("invalid_payment_mode")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)

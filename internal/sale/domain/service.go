package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/gstbooks/internal/gst"
	"github.com/smallbiznis/gstbooks/pkg/db/pagination"
)

// SaleLineInput is one submitted invoice line with its client-computed
// derived fields. The service re-derives and compares; it never trusts.
type SaleLineInput struct {
	ItemID      string          `json:"item_id"`
	Type        gst.ItemType    `json:"type"`
	HSNCode     string          `json:"hsn_code"`
	Description string          `json:"description"`
	Rate        decimal.Decimal `json:"rate"`
	Quantity    int64           `json:"quantity"`
	GSTSlab     int64           `json:"gst_slab"`

	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	GSTAmount     decimal.Decimal `json:"gst_amount"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	IGST          decimal.Decimal `json:"igst"`
	Total         decimal.Decimal `json:"total"`
}

// SaleTotalsInput is the submitted totals block.
type SaleTotalsInput struct {
	TaxableAmount    decimal.Decimal `json:"taxable_amount"`
	GSTAmount        decimal.Decimal `json:"gst_amount"`
	CGST             decimal.Decimal `json:"cgst"`
	SGST             decimal.Decimal `json:"sgst"`
	IGST             decimal.Decimal `json:"igst"`
	ShippingCharges  decimal.Decimal `json:"shipping_charges"`
	Discount         decimal.Decimal `json:"discount"`
	OtherAdjustments decimal.Decimal `json:"other_adjustments"`
	Total            decimal.Decimal `json:"total"`
	AdvanceAmount    decimal.Decimal `json:"advance_amount"`
	BalanceDue       decimal.Decimal `json:"balance_due"`
}

type CreateSaleRequest struct {
	Kind          SaleKind        `json:"kind"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	CustomerID    string          `json:"customer_id"`   // required for GST sales
	CustomerName  string          `json:"customer_name"` // required for cash sales
	PaymentMode   gst.PaymentMode `json:"payment_mode"`
	Items         []SaleLineInput `json:"items"`
	Totals        SaleTotalsInput `json:"totals"`
}

type UpdateSaleRequest struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	PaymentMode   gst.PaymentMode `json:"payment_mode"`
	Items         []SaleLineInput `json:"items"`
	Totals        SaleTotalsInput `json:"totals"`
}

type ListSaleRequest struct {
	PageToken     string
	PageSize      int32
	Kind          SaleKind
	Status        SaleStatus
	CustomerID    string
	InvoiceNumber string
	DateFrom      *time.Time
	DateTo        *time.Time
}

type ListSaleFilter struct {
	Kind          SaleKind
	Status        SaleStatus
	CustomerID    string
	InvoiceNumber string
	DateFrom      *time.Time
	DateTo        *time.Time
}

type ListSaleResponse struct {
	pagination.PageInfo
	Sales []Sale `json:"sales"`
}

type GetSaleRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateSaleRequest) (Sale, error)
	Update(context.Context, UpdateSaleRequest) (Sale, error)
	List(context.Context, ListSaleRequest) (ListSaleResponse, error)
	GetByID(context.Context, GetSaleRequest) (Sale, error)
	Delete(context.Context, GetSaleRequest) error
	MarkPaid(context.Context, GetSaleRequest) (Sale, error)
}

var (
	ErrInvalidOrganization    = errors.New("invalid_organization")
	ErrInvalidKind            = errors.New("invalid_kind")
	ErrInvalidInvoiceNumber   = errors.New("invalid_invoice_number")
	ErrDuplicateInvoiceNumber = errors.New("duplicate_invoice_number")
	ErrInvalidInvoiceDate     = errors.New("invalid_invoice_date")
	ErrInvalidCustomer        = errors.New("invalid_customer")
	ErrInvalidPaymentMode     = errors.New("invalid_payment_mode")
	ErrEmptyItems             = errors.New("empty_items")
	ErrInvalidQuantity        = errors.New("invalid_quantity")
	ErrInvalidGSTSlab         = errors.New("invalid_gst_slab")
	ErrInvalidID              = errors.New("invalid_id")
	ErrNotFound               = errors.New("not_found")
	ErrLineMismatch           = errors.New("line_mismatch")
	ErrTotalsMismatch         = errors.New("totals_mismatch")
	ErrAlreadyPaid            = errors.New("already_paid")
)

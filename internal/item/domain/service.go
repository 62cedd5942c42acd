package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/gstbooks/internal/gst"
	"github.com/smallbiznis/gstbooks/pkg/db/pagination"
)

type CreateItemRequest struct {
	Name    string          `json:"name"`
	Type    gst.ItemType    `json:"type"`
	HSNCode string          `json:"hsn_code"`
	Rate    decimal.Decimal `json:"rate"`
	GSTSlab int64           `json:"gst_slab"`
}

type UpdateItemRequest struct {
	ID      string           `json:"id"`
	Name    *string          `json:"name,omitempty"`
	HSNCode *string          `json:"hsn_code,omitempty"`
	Rate    *decimal.Decimal `json:"rate,omitempty"`
	GSTSlab *int64           `json:"gst_slab,omitempty"`
}

type ListItemRequest struct {
	PageToken string
	PageSize  int32
	Search    string
	Type      gst.ItemType
}

type ListItemFilter struct {
	Search string
	Type   gst.ItemType
}

type ListItemResponse struct {
	pagination.PageInfo
	Items []Item `json:"items"`
}

type GetItemRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateItemRequest) (Item, error)
	List(context.Context, ListItemRequest) (ListItemResponse, error)
	GetByID(context.Context, GetItemRequest) (Item, error)
	Update(context.Context, UpdateItemRequest) (Item, error)
	Delete(context.Context, GetItemRequest) error
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidType         = errors.New("invalid_type")
	ErrInvalidRate         = errors.New("invalid_rate")
	ErrInvalidGSTSlab      = errors.New("invalid_gst_slab")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)

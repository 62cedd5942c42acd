package domain

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/gstbooks/pkg/db/pagination"
)

type ListCustomerRequest struct {
	PageToken     string
	PageSize      int32
	Name          string
	Email         string
	PlaceOfSupply string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

type ListCustomerFilter struct {
	Name          string
	Email         string
	PlaceOfSupply string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

type ListCustomerResponse struct {
	pagination.PageInfo
	Customers []Customer `json:"customers"`
}

type CreateCustomerRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	GSTIN          string `json:"gstin"`
	PlaceOfSupply  string `json:"place_of_supply"`
	BillingAddress string `json:"billing_address"`
	Notes          string `json:"notes"`
}

type UpdateCustomerRequest struct {
	ID             string  `json:"id"`
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	GSTIN          *string `json:"gstin,omitempty"`
	PlaceOfSupply  *string `json:"place_of_supply,omitempty"`
	BillingAddress *string `json:"billing_address,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

type GetCustomerRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateCustomerRequest) (Customer, error)
	List(context.Context, ListCustomerRequest) (ListCustomerResponse, error)
	GetByID(context.Context, GetCustomerRequest) (Customer, error)
	Update(context.Context, UpdateCustomerRequest) (Customer, error)
	Delete(context.Context, GetCustomerRequest) error
}

var (
	ErrInvalidOrganization  = errors.New("invalid_organization")
	ErrInvalidName          = errors.New("invalid_name")
	ErrInvalidEmail         = errors.New("invalid_email")
	ErrInvalidGSTIN         = errors.New("invalid_gstin")
	ErrInvalidPlaceOfSupply = errors.New("invalid_place_of_supply")
	ErrInvalidID            = errors.New("invalid_id")
	ErrNotFound             = errors.New("not_found")
)

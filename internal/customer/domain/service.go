package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/plantdesk/pkg/db/pagination"
)

type ListCustomerRequest struct {
	PageToken string
	PageSize  int32
	Name      string
	Activity  Activity
}

type ListCustomerFilter struct {
	Name        string
	Activity    Activity
	ActiveSince time.Time
}

type ListCustomerResponse struct {
	pagination.PageInfo
	Customers []ListedCustomer `json:"customers"`
}

type CreateCustomerRequest struct {
	Name      string `json:"name" validate:"max=200"`
	TaxNumber string `json:"tax_number" validate:"max=32"`
	TaxOffice string `json:"tax_office" validate:"max=120"`
	Phone     string `json:"phone" validate:"max=32"`
	Fax       string `json:"fax" validate:"max=32"`
	Address   string `json:"address" validate:"max=500"`
	City      string `json:"city" validate:"max=120"`
	District  string `json:"district" validate:"max=120"`
}

// UpdateCustomerRequest overwrites only the fields that are set.
type UpdateCustomerRequest struct {
	ID        string  `json:"-"`
	Name      *string `json:"name" validate:"omitempty,max=200"`
	TaxNumber *string `json:"tax_number" validate:"omitempty,max=32"`
	TaxOffice *string `json:"tax_office" validate:"omitempty,max=120"`
	Phone     *string `json:"phone" validate:"omitempty,max=32"`
	Fax       *string `json:"fax" validate:"omitempty,max=32"`
	Address   *string `json:"address" validate:"omitempty,max=500"`
	City      *string `json:"city" validate:"omitempty,max=120"`
	District  *string `json:"district" validate:"omitempty,max=120"`
}

type GetCustomerRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateCustomerRequest) (Customer, error)
	Update(context.Context, UpdateCustomerRequest) (Customer, error)
	List(context.Context, ListCustomerRequest) (ListCustomerResponse, error)
	GetByID(context.Context, GetCustomerRequest) (Customer, error)
	Activity(context.Context, GetCustomerRequest) (CustomerActivity, error)
	Count(context.Context) (int64, error)
}

// ParseID parses a customer id as sent by clients.
func ParseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidActivity = errors.New("invalid_activity")
	ErrNotFound        = errors.New("not_found")
)

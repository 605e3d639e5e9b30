package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/plantdesk/pkg/db/pagination"
)

type CreateOrderRequest struct {
	Name          string          `json:"name" validate:"max=200"`
	CustomerID    string          `json:"customer_id"`
	SiteID        string          `json:"site_id"`
	RecipeID      string          `json:"recipe_id"`
	ServiceTypeID string          `json:"service_type_id"`
	Pump          string          `json:"pump" validate:"max=120"`
	PumpOperator  string          `json:"pump_operator" validate:"max=120"`
	Quantity      decimal.Decimal `json:"quantity"`
	Status        string          `json:"status"`
}

type TransitionStatusRequest struct {
	OrderID string `json:"-"`
	Status  string `json:"status"`
}

type UpdateQuantityRequest struct {
	OrderID  string          `json:"-"`
	Quantity decimal.Decimal `json:"quantity"`
}

type ListOrderRequest struct {
	PageToken  string
	PageSize   int32
	CustomerID string
	Status     string
}

type ListOrderFilter struct {
	CustomerID snowflake.ID
	Status     Status
}

type ListOrderResponse struct {
	pagination.PageInfo
	Orders []OrderView `json:"orders"`
}

type Service interface {
	Create(ctx context.Context, req CreateOrderRequest) (OrderView, error)
	TransitionStatus(ctx context.Context, req TransitionStatusRequest) (OrderView, error)
	UpdateQuantity(ctx context.Context, req UpdateQuantityRequest) (OrderView, error)
	GetByID(ctx context.Context, id string) (OrderView, error)
	List(ctx context.Context, req ListOrderRequest) (ListOrderResponse, error)
}

// ParseID parses an order id as sent by clients.
func ParseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// QuantityScale is the number of fractional digits a planned volume keeps.
const QuantityScale = 3

// maxQuantity is the first volume that no longer fits numeric(14,3).
var maxQuantity = decimal.New(1, 14-QuantityScale)

// ValidQuantity reports whether q can be stored unchanged as a planned volume.
func ValidQuantity(q decimal.Decimal) bool {
	if q.IsNegative() || q.GreaterThanOrEqual(maxQuantity) {
		return false
	}
	return q.Equal(q.Round(QuantityScale))
}

var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidQuantity   = errors.New("invalid_quantity")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrInvalidTransition = errors.New("invalid_transition")
	ErrInvalidCustomer   = errors.New("invalid_customer")
	ErrInvalidRecipe     = errors.New("invalid_recipe")
	ErrCustomerNotFound  = errors.New("customer_not_found")
	ErrNotFound          = errors.New("not_found")
)

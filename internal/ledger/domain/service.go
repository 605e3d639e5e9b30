package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type RecordEntryRequest struct {
	CustomerID string          `json:"-"`
	Kind       string          `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note" validate:"max=500"`
	OccurredAt *time.Time      `json:"occurred_at"`
}

type Service interface {
	Record(ctx context.Context, req RecordEntryRequest) (LedgerEntry, error)
	ListEntries(ctx context.Context, customerID string) ([]LedgerEntry, error)
	Balance(ctx context.Context, customerID string) (Balance, error)
	Balances(ctx context.Context) ([]Balance, error)
}

var (
	ErrCustomerNotFound       = errors.New("customer_not_found")
	ErrInvalidKind            = errors.New("invalid_kind")
	ErrInvalidAmount          = errors.New("invalid_amount")
	ErrInvalidAmountPrecision = errors.New("invalid_amount_precision")
)

package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository has no update or delete: the ledger is append-only.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *LedgerEntry) error
	ListByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]LedgerEntry, error)
	Totals(ctx context.Context, db *gorm.DB, customerID snowflake.ID) (Totals, error)
	AllTotals(ctx context.Context, db *gorm.DB) ([]CustomerTotals, error)
}

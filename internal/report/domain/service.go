package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/smallbiznis/plantdesk/internal/customer/domain"
	"gorm.io/gorm"
)

// Kind names an exportable report.
type Kind string

const (
	KindCustomers  Kind = "customers"
	KindBalances   Kind = "balances"
	KindStatement  Kind = "statement"
	KindProduction Kind = "production"
	KindOrders     Kind = "orders"
)

type Service interface {
	CustomerDirectory(ctx context.Context, activity customerdomain.Activity) (CustomerDirectory, error)
	BalanceReport(ctx context.Context) (BalanceReport, error)
	CustomerStatement(ctx context.Context, customerID string) (CustomerStatement, error)
	ProductionReport(ctx context.Context) (ProductionReport, error)
	OrderBoard(ctx context.Context) (OrderBoard, error)
}

// DirectoryEntry is the contact part of a directory row.
type DirectoryEntry struct {
	ID        snowflake.ID `gorm:"column:id"`
	Name      string       `gorm:"column:name"`
	Phone     string       `gorm:"column:phone"`
	TaxNumber string       `gorm:"column:tax_number"`
	Active    bool         `gorm:"column:active"`
}

type Repository interface {
	// ListDirectory returns every customer ordered by name, flagged active when
	// it has an order placed at or after since.
	ListDirectory(ctx context.Context, db *gorm.DB, since time.Time) ([]DirectoryEntry, error)
}

package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/plantdesk/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *Order) error
	InsertStatus(ctx context.Context, db *gorm.DB, status *OrderStatus) error
	// UpsertStatus overwrites the status row of the order, creating it when absent.
	UpsertStatus(ctx context.Context, db *gorm.DB, status *OrderStatus) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*OrderView, error)
	List(ctx context.Context, db *gorm.DB, filter ListOrderFilter, page pagination.Pagination) ([]*OrderView, error)
	SetCompleted(ctx context.Context, db *gorm.DB, id snowflake.ID, completed bool) error
	UpdateQuantity(ctx context.Context, db *gorm.DB, id snowflake.ID, quantity string) error
}

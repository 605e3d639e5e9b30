package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, plan *ProductionPlan) error
	FindByOrderID(ctx context.Context, db *gorm.DB, orderID snowflake.ID) (*ProductionPlan, error)
	// UpdateStatus mirrors status onto the plan. With finalize the produced
	// quantity is set to the planned quantity.
	UpdateStatus(ctx context.Context, db *gorm.DB, orderID snowflake.ID, status string, finalize bool) error
	UpdatePlanned(ctx context.Context, db *gorm.DB, orderID snowflake.ID, planned decimal.Decimal, producedFollows bool) error
	List(ctx context.Context, db *gorm.DB) ([]ProductionPlan, error)
}

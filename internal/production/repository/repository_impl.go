package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/plantdesk/internal/production/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, plan *domain.ProductionPlan) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO production_plans (id, order_id, recipe_name, planned_quantity, produced_quantity, status, planned_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		plan.ID,
		plan.OrderID,
		plan.RecipeName,
		plan.PlannedQuantity,
		plan.ProducedQuantity,
		plan.Status,
		plan.PlannedAt,
	).Error
}

func (r *repo) FindByOrderID(ctx context.Context, db *gorm.DB, orderID snowflake.ID) (*domain.ProductionPlan, error) {
	var plans []domain.ProductionPlan
	err := db.WithContext(ctx).Raw(
		`SELECT id, order_id, recipe_name, planned_quantity, produced_quantity, status, planned_at
		 FROM production_plans WHERE order_id = ?`,
		orderID,
	).Scan(&plans).Error
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, nil
	}
	return &plans[0], nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, orderID snowflake.ID, status string, finalize bool) error {
	if finalize {
		return db.WithContext(ctx).Exec(
			`UPDATE production_plans SET status = ?, produced_quantity = planned_quantity WHERE order_id = ?`,
			status,
			orderID,
		).Error
	}
	return db.WithContext(ctx).Exec(
		`UPDATE production_plans SET status = ? WHERE order_id = ?`,
		status,
		orderID,
	).Error
}

func (r *repo) UpdatePlanned(ctx context.Context, db *gorm.DB, orderID snowflake.ID, planned decimal.Decimal, producedFollows bool) error {
	if producedFollows {
		return db.WithContext(ctx).Exec(
			`UPDATE production_plans SET planned_quantity = ?, produced_quantity = ? WHERE order_id = ?`,
			planned,
			planned,
			orderID,
		).Error
	}
	return db.WithContext(ctx).Exec(
		`UPDATE production_plans SET planned_quantity = ? WHERE order_id = ?`,
		planned,
		orderID,
	).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.ProductionPlan, error) {
	var plans []domain.ProductionPlan
	err := db.WithContext(ctx).Raw(
		`SELECT id, order_id, recipe_name, planned_quantity, produced_quantity, status, planned_at
		 FROM production_plans
		 ORDER BY planned_at DESC, id DESC`,
	).Scan(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

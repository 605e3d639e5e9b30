package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/plantdesk/internal/order/domain"
	"github.com/smallbiznis/plantdesk/pkg/db/option"
	"github.com/smallbiznis/plantdesk/pkg/db/pagination"
	"gorm.io/gorm"
)

// effectiveStatus falls back to the completed flag for orders without a status row.
const effectiveStatus = `COALESCE(s.status, CASE WHEN o.completed THEN 'completed' ELSE 'pending' END)`

const viewColumns = `o.id, o.name, o.ordered_at, o.customer_id, o.customer_name, o.site_id, o.site_name,
	o.recipe_id, o.recipe_name, o.service_type_id, o.service_type_name, o.pump, o.pump_operator,
	o.quantity, o.total_quantity, o.completed, o.created_at, ` + effectiveStatus + ` AS status`

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO orders (id, name, ordered_at, customer_id, customer_name, site_id, site_name,
			recipe_id, recipe_name, service_type_id, service_type_name, pump, pump_operator,
			quantity, total_quantity, completed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID,
		order.Name,
		order.OrderedAt,
		order.CustomerID,
		order.CustomerName,
		order.SiteID,
		order.SiteName,
		order.RecipeID,
		order.RecipeName,
		order.ServiceTypeID,
		order.ServiceTypeName,
		order.Pump,
		order.PumpOperator,
		order.Quantity,
		order.TotalQuantity,
		order.Completed,
		order.CreatedAt,
	).Error
}

func (r *repo) InsertStatus(ctx context.Context, db *gorm.DB, status *domain.OrderStatus) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO order_statuses (id, order_id, status, updated_at) VALUES (?, ?, ?, ?)`,
		status.ID,
		status.OrderID,
		status.Status,
		status.UpdatedAt,
	).Error
}

func (r *repo) UpsertStatus(ctx context.Context, db *gorm.DB, status *domain.OrderStatus) error {
	res := db.WithContext(ctx).Exec(
		`UPDATE order_statuses SET status = ?, updated_at = ? WHERE order_id = ?`,
		status.Status,
		status.UpdatedAt,
		status.OrderID,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	return r.InsertStatus(ctx, db, status)
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.OrderView, error) {
	var rows []domain.OrderView
	err := db.WithContext(ctx).Raw(
		`SELECT `+viewColumns+`
		 FROM orders o
		 LEFT JOIN order_statuses s ON s.order_id = o.id
		 WHERE o.id = ?`,
		id,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListOrderFilter, page pagination.Pagination) ([]*domain.OrderView, error) {
	var orders []*domain.OrderView
	stmt := db.WithContext(ctx).
		Table("orders o").
		Select(viewColumns).
		Joins("LEFT JOIN order_statuses s ON s.order_id = o.id")
	if filter.CustomerID != 0 {
		stmt = stmt.Where("o.customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		stmt = stmt.Where(effectiveStatus+" = ?", filter.Status)
	}
	stmt = option.ApplyPaginationOn("o.id", page).Apply(stmt)
	err := stmt.
		Order("o.id desc").
		Scan(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) SetCompleted(ctx context.Context, db *gorm.DB, id snowflake.ID, completed bool) error {
	return db.WithContext(ctx).Exec(
		`UPDATE orders SET completed = ? WHERE id = ?`,
		completed,
		id,
	).Error
}

func (r *repo) UpdateQuantity(ctx context.Context, db *gorm.DB, id snowflake.ID, quantity string) error {
	return db.WithContext(ctx).Exec(
		`UPDATE orders SET quantity = ?, total_quantity = ? WHERE id = ?`,
		quantity,
		quantity,
		id,
	).Error
}

package repository

import (
	"context"
	"time"

	"github.com/smallbiznis/plantdesk/internal/report/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListDirectory(ctx context.Context, db *gorm.DB, since time.Time) ([]domain.DirectoryEntry, error) {
	var rows []domain.DirectoryEntry
	err := db.WithContext(ctx).Raw(
		`SELECT c.id, c.name, c.phone, c.tax_number,
			EXISTS (SELECT 1 FROM orders o WHERE o.customer_id = c.id AND o.ordered_at >= ?) AS active
		 FROM customers c
		 ORDER BY c.name, c.id`,
		since,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

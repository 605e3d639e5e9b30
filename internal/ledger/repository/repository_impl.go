package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/plantdesk/internal/ledger/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, entry *domain.LedgerEntry) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO ledger_entries (id, customer_id, kind, amount_minor, note, occurred_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.CustomerID,
		entry.Kind,
		entry.AmountMinor,
		entry.Note,
		entry.OccurredAt,
		entry.CreatedAt,
	).Error
}

func (r *repo) ListByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	err := db.WithContext(ctx).Raw(
		`SELECT id, customer_id, kind, amount_minor, note, occurred_at, created_at
		 FROM ledger_entries
		 WHERE customer_id = ?
		 ORDER BY occurred_at DESC, id DESC`,
		customerID,
	).Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repo) Totals(ctx context.Context, db *gorm.DB, customerID snowflake.ID) (domain.Totals, error) {
	var totals domain.Totals
	err := db.WithContext(ctx).Raw(
		`SELECT
			COALESCE(SUM(CASE WHEN kind = ? THEN amount_minor ELSE 0 END), 0) AS debit_minor,
			COALESCE(SUM(CASE WHEN kind = ? THEN amount_minor ELSE 0 END), 0) AS credit_minor
		 FROM ledger_entries
		 WHERE customer_id = ?`,
		domain.KindDebit,
		domain.KindCredit,
		customerID,
	).Scan(&totals).Error
	return totals, err
}

func (r *repo) AllTotals(ctx context.Context, db *gorm.DB) ([]domain.CustomerTotals, error) {
	var rows []domain.CustomerTotals
	err := db.WithContext(ctx).Raw(
		`SELECT
			c.id AS customer_id,
			c.name AS customer_name,
			COALESCE(SUM(CASE WHEN e.kind = ? THEN e.amount_minor ELSE 0 END), 0) AS debit_minor,
			COALESCE(SUM(CASE WHEN e.kind = ? THEN e.amount_minor ELSE 0 END), 0) AS credit_minor
		 FROM customers c
		 LEFT JOIN ledger_entries e ON e.customer_id = c.id
		 GROUP BY c.id, c.name
		 ORDER BY c.name, c.id`,
		domain.KindDebit,
		domain.KindCredit,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

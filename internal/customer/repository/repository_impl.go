package repository

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/plantdesk/internal/customer/domain"
	"github.com/smallbiznis/plantdesk/pkg/db/option"
	"github.com/smallbiznis/plantdesk/pkg/db/pagination"
	"gorm.io/gorm"
)

const recentOrderClause = `EXISTS (SELECT 1 FROM orders o WHERE o.customer_id = customers.id AND o.ordered_at >= ?)`

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO customers (id, name, tax_number, tax_office, phone, fax, address, city, district, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		customer.ID,
		customer.Name,
		customer.TaxNumber,
		customer.TaxOffice,
		customer.Phone,
		customer.Fax,
		customer.Address,
		customer.City,
		customer.District,
		customer.CreatedAt,
		customer.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Exec(
		`UPDATE customers
		 SET name = ?, tax_number = ?, tax_office = ?, phone = ?, fax = ?, address = ?, city = ?, district = ?, updated_at = ?
		 WHERE id = ?`,
		customer.Name,
		customer.TaxNumber,
		customer.TaxOffice,
		customer.Phone,
		customer.Fax,
		customer.Address,
		customer.City,
		customer.District,
		customer.UpdatedAt,
		customer.ID,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, tax_number, tax_office, phone, fax, address, city, district, created_at, updated_at
		 FROM customers WHERE id = ?`,
		id,
	).Scan(&customer).Error
	if err != nil {
		return nil, err
	}
	if customer.ID == 0 {
		return nil, nil
	}
	return &customer, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListCustomerFilter, page pagination.Pagination) ([]*domain.ListedCustomer, error) {
	var customers []*domain.ListedCustomer
	stmt := db.WithContext(ctx).
		Table("customers").
		Select("customers.*, "+recentOrderClause+" AS active", filter.ActiveSince)
	if name := strings.ToLower(strings.TrimSpace(filter.Name)); name != "" {
		stmt = stmt.Where("LOWER(customers.name) LIKE ?", "%"+name+"%")
	}
	switch filter.Activity {
	case domain.ActivityActive:
		stmt = stmt.Where(recentOrderClause, filter.ActiveSince)
	case domain.ActivityInactive:
		stmt = stmt.Where("NOT "+recentOrderClause, filter.ActiveSince)
	}
	stmt = option.ApplyPaginationOn("customers.id", page).Apply(stmt)
	err := stmt.
		Order("customers.id desc").
		Scan(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repo) LastOrderAt(ctx context.Context, db *gorm.DB, id snowflake.ID) (*time.Time, error) {
	var rows []struct {
		OrderedAt time.Time `gorm:"column:ordered_at"`
	}
	err := db.WithContext(ctx).Raw(
		`SELECT ordered_at FROM orders WHERE customer_id = ? ORDER BY ordered_at DESC LIMIT 1`,
		id,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	last := rows[0].OrderedAt.UTC()
	return &last, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM customers`).Scan(&count).Error
	return count, err
}

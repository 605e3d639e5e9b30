package option

import (
	"strconv"
	"strings"

	"github.com/smallbiznis/plantdesk/pkg/db/pagination"
	"gorm.io/gorm"
)

// QueryOption mutates a gorm statement before execution.
type QueryOption interface {
	Apply(db *gorm.DB) *gorm.DB
}

type QueryOptionFunc func(db *gorm.DB) *gorm.DB

func (f QueryOptionFunc) Apply(db *gorm.DB) *gorm.DB {
	return f(db)
}

func WithOrder(order string) QueryOption {
	return QueryOptionFunc(func(db *gorm.DB) *gorm.DB {
		return db.Order(order)
	})
}

func WithLimit(limit int) QueryOption {
	return QueryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Limit(limit)
	})
}

// ApplyPagination restricts the statement to rows after the page token and
// fetches one extra row so callers can detect a following page. Rows must be
// ordered by id descending.
func ApplyPagination(page pagination.Pagination) QueryOption {
	return ApplyPaginationOn("id", page)
}

// ApplyPaginationOn is ApplyPagination for joined statements where the key
// column has to be qualified.
func ApplyPaginationOn(column string, page pagination.Pagination) QueryOption {
	return QueryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if token := strings.TrimSpace(page.PageToken); token != "" {
			if cursor, err := pagination.DecodeCursor(token); err == nil {
				if id, err := strconv.ParseInt(cursor.ID, 10, 64); err == nil && id > 0 {
					db = db.Where(column+" < ?", id)
				}
			}
		}
		return db.Limit(page.Size() + 1)
	})
}

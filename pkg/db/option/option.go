package option

import (
	"fmt"
	"strings"

	"github.com/smallbiznis/gstbooks/pkg/db/pagination"
	"gorm.io/gorm"
)

// Option mutates a gorm statement before execution.
type Option interface {
	Apply(stmt *gorm.DB) *gorm.DB
}

type optionFunc func(stmt *gorm.DB) *gorm.DB

func (f optionFunc) Apply(stmt *gorm.DB) *gorm.DB { return f(stmt) }

// ApplyPagination applies cursor pagination: rows strictly older than the
// cursor, fetching one extra row so callers can detect a next page.
func ApplyPagination(page pagination.Pagination) Option {
	return optionFunc(func(stmt *gorm.DB) *gorm.DB {
		if page.PageToken != "" {
			cursor, err := pagination.DecodeCursor(page.PageToken)
			if err == nil && cursor != nil && cursor.CreatedAt != "" {
				stmt = stmt.Where(
					"(created_at < ?) OR (created_at = ? AND id < ?)",
					cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
				)
			}
		}
		size := page.PageSize
		if size <= 0 {
			size = 10
		}
		return stmt.Limit(size + 1)
	})
}

// SortSpec is a validated order-by clause.
type SortSpec struct {
	Column string
	Desc   bool
}

// WithQuerySortBy validates a user-supplied sort column against the allowed
// set and falls back to created_at desc.
func WithQuerySortBy(sortBy, orderBy string, allowed map[string]bool) SortSpec {
	column := strings.TrimSpace(strings.ToLower(sortBy))
	if column == "" || !allowed[column] {
		column = "created_at"
	}
	desc := strings.EqualFold(strings.TrimSpace(orderBy), "desc") || strings.TrimSpace(orderBy) == ""
	return SortSpec{Column: column, Desc: desc}
}

// WithSortBy applies the validated sort spec.
func WithSortBy(spec SortSpec) Option {
	return optionFunc(func(stmt *gorm.DB) *gorm.DB {
		direction := "asc"
		if spec.Desc {
			direction = "desc"
		}
		return stmt.Order(fmt.Sprintf("%s %s", spec.Column, direction))
	})
}

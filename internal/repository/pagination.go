package repository

import (
	"github.com/souq-next/internal/constants"

	"gorm.io/gorm"
)

// applyPagination applies normalized page/size limits to a query.
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}

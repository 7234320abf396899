package repository

import (
	"strings"

	"github.com/fazli/printshop-api/pkg/pagination"
	"gorm.io/gorm"
)

// Paginate applies offset/limit for page-based listing.
func Paginate(params *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params == nil {
			return db
		}
		params.Validate()
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}

// ContainsFold matches rows where any of the columns contains term, ignoring case.
// LOWER/LIKE keeps the query portable between PostgreSQL and SQLite.
func ContainsFold(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"

		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clauses[i] = "LOWER(" + col + ") LIKE ? ESCAPE '\\'"
			args[i] = pattern
		}
		return db.Where(strings.Join(clauses, " OR "), args...)
	}
}

// DateRange bounds a column inclusively. Empty bounds are open.
func DateRange(column string, from, to interface{}) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !isZero(from) {
			db = db.Where(column+" >= ?", from)
		}
		if !isZero(to) {
			db = db.Where(column+" <= ?", to)
		}
		return db
	}
}

func isZero(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	}
	return false
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

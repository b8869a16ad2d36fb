package database

import (
	"errors"
	"strings"

	"forum/internal/core/errs"

	"gorm.io/gorm"
)

// notFound maps gorm's missing-row error onto the domain one.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}
	return err
}

// duplicateKey reports a unique index violation. Dialectors that do not
// translate errors are matched on their driver messages.
func duplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}

// updateColumn sets one column on the rows matched by query. MySQL counts
// unchanged rows as unaffected, so a zero count is confirmed with a lookup.
func updateColumn(db *gorm.DB, model any, column string, value any, query string, args ...any) error {
	res := db.Model(model).Where(query, args...).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := db.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

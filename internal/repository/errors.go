package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrNotFound          = errors.New("запись не найдена")
	ErrDuplicateText     = errors.New("пост с таким текстом уже существует")
	ErrDuplicateSlug     = errors.New("категория с таким идентификатором уже существует")
	ErrDuplicateUsername = errors.New("пользователь с таким именем уже существует")
)

const uniqueViolationCode = "23505"

// isUniqueViolation matches a Postgres unique violation on the named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == uniqueViolationCode && pqErr.Constraint == constraint
}

// checkRowsAffected reports ErrNotFound, prefixed with what, when nothing was touched.
func checkRowsAffected(result sql.Result, what string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке затронутых строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}

	return nil
}

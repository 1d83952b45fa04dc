// Package repository contains the data access layer.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation is the Postgres error code for unique constraint violations.
const pgUniqueViolation = "23505"

// isDuplicate reports whether err is a unique-constraint violation. GORM's
// TranslateError covers most drivers; the pgconn check catches raw Postgres
// errors that escape translation (e.g. inside raw SQL).
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

package repo

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"wishshare/internal/domain"
)

const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == codeUniqueViolation
}

// mapWriteError downgrades storage-level conflicts to the retryable
// domain.ErrConflictWrite. Exclusive row locking should prevent these,
// but the storage layer may still report them.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerializationFailure, codeDeadlockDetected:
			return domain.ErrConflictWrite
		}
	}
	return err
}

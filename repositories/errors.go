package repositories

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// SQLSTATE class 23503, foreign_key_violation.
const pgForeignKeyViolation = "23503"

// IsForeignKeyViolation reports whether err is a referential-integrity
// violation from the store. The structured SQLSTATE is checked first; the
// message substrings remain as a fallback for errors that reach us already
// flattened to text (e.g. out of the privileged delete routine).
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "foreign key constraint") ||
		strings.Contains(msg, "fkey") ||
		strings.Contains(msg, "violates foreign key")
}

// PgErrorCode extracts the SQLSTATE code when available, for echoing to the
// client alongside the error message.
func PgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

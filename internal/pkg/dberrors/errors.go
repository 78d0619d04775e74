package dberrors

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique constraint violation from
// either PostgreSQL (SQLSTATE 23505) or SQLite (SQLITE_CONSTRAINT_UNIQUE).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}

// ConflictingColumn returns the column a unique violation was raised for, or
// "" when the driver does not expose it.
//
// Postgres reports the constraint name (users_email_key), SQLite reports
// "UNIQUE constraint failed: users.email".
func ConflictingColumn(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		name := strings.TrimSuffix(pgErr.ConstraintName, "_key")
		if pgErr.TableName != "" {
			name = strings.TrimPrefix(name, pgErr.TableName+"_")
		}
		return name
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		msg := liteErr.Error()
		if i := strings.LastIndex(msg, "."); i >= 0 && strings.Contains(msg, "UNIQUE constraint failed") {
			return strings.TrimSpace(msg[i+1:])
		}
	}

	return ""
}

// IsNoRows reports whether err means the query matched nothing.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/yigit/studybuddy/internal/config"
)

// NewSQLiteDB opens the SQLite database at path. ":memory:" gives a private
// in-memory database, which is only consistent over a single connection.
func NewSQLiteDB(ctx context.Context, path string) (*Database, error) {
	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&_foreign_keys=1&_busy_timeout=5000"
	} else {
		dsn += "?_foreign_keys=1&_busy_timeout=5000"
	}

	sqlDB, err := sql.Open(config.DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// SQLite serializes writers anyway; one connection keeps :memory: coherent
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	return &Database{
		SQL:    sqlDB,
		Driver: config.DriverSQLite,
	}, nil
}

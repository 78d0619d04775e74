package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/studybuddy/internal/config"
)

// Database is an open connection to one of the supported drivers, exposed
// through database/sql so repositories stay driver agnostic.
type Database struct {
	SQL    *sql.DB
	Driver string

	pool *pgxpool.Pool
}

// Open connects to the database selected by cfg.Database.Driver.
func Open(ctx context.Context, cfg *config.Config) (*Database, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		return NewPostgresDB(ctx, cfg)
	case config.DriverSQLite:
		return NewSQLiteDB(ctx, cfg.Database.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// Placeholder returns the bind-variable style for the driver.
func (d *Database) Placeholder() squirrel.PlaceholderFormat {
	if d.Driver == config.DriverPostgres {
		return squirrel.Dollar
	}
	return squirrel.Question
}

// Builder returns a squirrel statement builder using the driver's placeholder style.
func (d *Database) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(d.Placeholder())
}

// Ping checks that the database answers.
func (d *Database) Ping(ctx context.Context) error {
	return d.SQL.PingContext(ctx)
}

// Close releases the connection pool
func (d *Database) Close() error {
	err := d.SQL.Close()
	if d.pool != nil {
		d.pool.Close()
	}
	return err
}

package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/rs/zerolog"
)

//go:embed sql
var migrationFiles embed.FS

// Migrator applies the embedded schema for one SQL dialect
type Migrator struct {
	db      *sql.DB
	dialect string
	builder squirrel.StatementBuilderType
	logger  zerolog.Logger
}

// NewMigrator creates a new migrator. dialect names a directory under sql/
// ("postgres" or "sqlite3").
func NewMigrator(db *sql.DB, dialect string, placeholder squirrel.PlaceholderFormat, logger zerolog.Logger) *Migrator {
	return &Migrator{
		db:      db,
		dialect: dialect,
		builder: squirrel.StatementBuilder.PlaceholderFormat(placeholder),
		logger:  logger,
	}
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := m.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// isMigrationApplied checks if a specific migration has already been applied
func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	query, args, err := m.builder.Select("count(*)").From("schema_migrations").
		Where(squirrel.Eq{"version": version}).ToSql()
	if err != nil {
		return false, err
	}

	var count int
	if err := m.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return count > 0, nil
}

// apply runs one migration file and records it, both inside a transaction
func (m *Migrator) apply(ctx context.Context, name, content, version string) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, content); err != nil {
		return fmt.Errorf("error occurred during SQL migration %s: %w", name, err)
	}

	query, args, err := m.builder.Insert("schema_migrations").
		Columns("version", "applied_at").
		Values(version, time.Now().UTC()).ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Migrate applies every pending embedded migration in file name order.
func (m *Migrator) Migrate(ctx context.Context) error {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	dir := path.Join("sql", m.dialect)
	entries, err := fs.ReadDir(migrationFiles, dir)
	if err != nil {
		return fmt.Errorf("no migrations for dialect %q: %w", m.dialect, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		// "001_init.sql" => "001"
		version := strings.SplitN(name, "_", 2)[0]

		applied, err := m.isMigrationApplied(ctx, version)
		if err != nil {
			return err
		}
		if applied {
			m.logger.Debug().Str("migration", name).Msg("Migration already applied, skipping")
			continue
		}

		content, err := fs.ReadFile(migrationFiles, path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to read migration file: %w", err)
		}

		if err := m.apply(ctx, name, string(content), version); err != nil {
			return err
		}
		m.logger.Info().Str("migration", name).Msg("Migration applied")
	}

	return nil
}

package postgres

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	migrate "github.com/rubenv/sql-migrate"
)

// DB wraps the database connection
type DB struct {
	*sqlx.DB
}

// NewDB creates a new database connection and applies pending migrations.
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=petri sslmode=disable"
func NewDB(connectionString string) (*DB, error) {
	db, err := sqlx.Connect("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DB{DB: db}, nil
}

// runMigrations applies the SQL migrations shipped with the repository.
func runMigrations(db *sqlx.DB) error {
	migrations := &migrate.FileMigrationSource{
		Dir: "internal/adapter/repository/postgres/migrations",
	}

	if _, err := migrate.Exec(db.DB, "postgres", migrations, migrate.Up); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/DucQuyen199/quanlybongda/db"
	"github.com/jmoiron/sqlx"
)

// Executor is implemented by *sqlx.DB and *sqlx.Tx. Every statement is written
// with named parameters and bound for the executor's driver.
type Executor interface {
	sqlx.ExtContext
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}

// namedGet binds a named query and scans exactly one row into dest.
func namedGet(ctx context.Context, exec Executor, dest interface{}, query string, arg interface{}) error {
	boundQuery, args, err := exec.BindNamed(query, arg)
	if err != nil {
		return fmt.Errorf("failed to bind query parameters: %w", err)
	}
	return sqlx.GetContext(ctx, exec, dest, boundQuery, args...)
}

func namedSelect(ctx context.Context, exec Executor, dest interface{}, query string, arg interface{}) error {
	boundQuery, args, err := exec.BindNamed(query, arg)
	if err != nil {
		return fmt.Errorf("failed to bind query parameters: %w", err)
	}
	return sqlx.SelectContext(ctx, exec, dest, boundQuery, args...)
}

// lockClause returns the row-lock suffix for drivers that support it. SQLite
// serializes writers on its own.
func lockClause(exec Executor, forUpdate bool) string {
	if !forUpdate {
		return ""
	}
	if db.IsPostgres(exec.DriverName()) {
		return " FOR UPDATE"
	}
	return ""
}

// byID is the named argument for single-key lookups.
type byID struct {
	ID string `db:"id"`
}

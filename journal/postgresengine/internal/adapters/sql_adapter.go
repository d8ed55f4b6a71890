package adapters

import (
	"context"
	"database/sql"
)

// stdDB is the part of database/sql the journal needs. Both *sql.DB and *sqlx.DB provide it.
type stdDB interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// StdAdapter runs journal SQL on a database/sql compatible handle.
type StdAdapter struct {
	db stdDB
}

// NewSQLAdapter wraps a plain sql.DB opened with the lib/pq driver.
func NewSQLAdapter(db *sql.DB) *StdAdapter {
	return &StdAdapter{db: db}
}

func (a *StdAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdRows{rows: rows}, nil
}

func (a *StdAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	result, err := a.db.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return result, nil
}

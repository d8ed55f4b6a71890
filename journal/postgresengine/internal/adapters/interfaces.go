package adapters

import "context"

// DBAdapter is what the journal engine runs its generated SQL through.
// Query serves journal reads and Exec serves the conditional append.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
}

// DBRows iterates journal rows. Err reports iteration failures after Next returned false.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult tells the engine whether a conditional append wrote any rows.
type DBResult interface {
	RowsAffected() (int64, error)
}

package adapters

import (
	"github.com/jmoiron/sqlx"
)

// NewSQLXAdapter wraps a sqlx.DB. sqlx embeds sql.DB, so the journal shares StdAdapter with
// the plain database/sql path and only the caller's handle type differs.
func NewSQLXAdapter(db *sqlx.DB) *StdAdapter {
	return &StdAdapter{db: db}
}

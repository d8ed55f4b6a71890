// Package adapters lets the PostgreSQL journal engine run on pgxpool.Pool, sql.DB or sqlx.DB.
// The pgx path has its own adapter, while sql.DB and sqlx.DB share StdAdapter.
package adapters

// Package postgresengine provides a PostgreSQL implementation of the journal.Journal port.
//
// Events are stored in one table with JSONB payload and metadata. Predicates of a
// journal.Filter are translated into JSONB containment checks, so a GIN index on the
// payload column serves history queries.
//
// Supported connection types are pgxpool.Pool, sql.DB (lib/pq) and sqlx.DB.
//
// Usage:
//
//	db, _ := pgxpool.New(ctx, dsn)
//	j, _ := postgresengine.NewJournalFromPGXPool(db, postgresengine.WithTableName("lending_journal"))
//	_ = j.EnsureTable(ctx)
//	err := j.Append(ctx, events...)
package postgresengine

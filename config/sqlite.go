package config

import (
	"context"
	"database/sql"
	"errors"
	"net/url"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
)

// SQLiteDSN returns a go-sqlite3 DSN for the database file at path, with WAL mode and a busy timeout.
func SQLiteDSN(path string) string {
	query := url.Values{}
	query.Set("_journal_mode", "WAL")
	query.Set("_busy_timeout", "5000")

	return "file:" + path + "?" + query.Encode()
}

// SQLiteDB opens the SQLite database for dsn and pings it.
// SQLite serializes writers, so the pool holds a single connection.
func SQLiteDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	db.SetMaxOpenConns(1)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, errors.Join(ErrOpeningDatabaseFailed, pingErr)
	}

	return db, nil
}

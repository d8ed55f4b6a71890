// Package config loads the YAML configuration of the lending library and builds what it describes.
//
// Besides the Config type it contains the connection factories for the journal databases
// (pgx.Pool, sql.DB with lib/pq, sqlx.DB and SQLite via go-sqlite3), the slog logger factory
// and OpenJournal, which turns a JournalConfig into a ready journal.Journal.
package config

package postgresengine

import (
	"regexp"

	"github.com/AntonStoeckl/lending-library-go/journal"
)

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Option defines a functional option for configuring the Journal.
type Option func(*Journal) error

// WithTableName sets the journal table name. It must be a plain SQL identifier.
func WithTableName(tableName string) Option {
	return func(j *Journal) error {
		if tableName == "" {
			return journal.ErrEmptyTableNameSupplied
		}

		if !tableNamePattern.MatchString(tableName) {
			return ErrInvalidTableName
		}

		j.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Journal.
//
// Debug level: SQL statements with execution timing
// Info level: event counts and durations
// Warn level: cleanup failures
// Error level: failures that make an operation fail.
func WithLogger(logger journal.Logger) Option {
	return func(j *Journal) error {
		j.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger, it takes precedence over WithLogger.
func WithContextualLogger(logger journal.ContextualLogger) Option {
	return func(j *Journal) error {
		j.contextualLogger = logger
		return nil
	}
}

package journal

import (
	"context"
	"errors"
)

var (
	// ErrEmptyTableNameSupplied is returned by engine options when an empty table name is configured.
	ErrEmptyTableNameSupplied = errors.New("empty journal table name supplied")

	// ErrNilDatabaseConnection is returned by engine constructors that receive a nil connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrBuildingQueryFailed wraps SQL builder failures.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrQueryingEventsFailed wraps failures of the query execution.
	ErrQueryingEventsFailed = errors.New("querying events failed")

	// ErrScanningDBRowFailed wraps failures while scanning a result row.
	ErrScanningDBRowFailed = errors.New("scanning db row failed")

	// ErrBuildingStorableEventFailed wraps failures while rebuilding a StorableEvent from a result row.
	ErrBuildingStorableEventFailed = errors.New("building storable event failed")

	// ErrAppendingEventFailed wraps failures of the insert execution.
	ErrAppendingEventFailed = errors.New("appending event failed")

	// ErrCreatingTableFailed wraps failures while creating the journal table.
	ErrCreatingTableFailed = errors.New("creating journal table failed")
)

// MaxSequenceNumberUint is the highest sequence number among the events a query returned.
type MaxSequenceNumberUint = uint

// Journal is the port the lending service appends committed domain events to.
//
// Append stores all events atomically in the given order.
// Query returns the matching events ordered by sequence number.
type Journal interface {
	Append(ctx context.Context, events ...StorableEvent) error
	Query(ctx context.Context, filter Filter) (StorableEvents, MaxSequenceNumberUint, error)
}

// Logger is the logging port of the journal engines, *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger is the context-aware logging port of the journal engines.
// When configured, engines prefer it over Logger so trace correlation can be added.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// Package sqliteengine provides a SQLite implementation of the journal.Journal port.
//
// It keeps the journal in a single table with TEXT JSON columns and evaluates filter
// predicates with json_extract. Open the database with the mattn/go-sqlite3 driver,
// config.SQLiteDB does that.
package sqliteengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // dialect registration

	"github.com/AntonStoeckl/lending-library-go/journal"
)

const (
	defaultTableName      = "lending_journal"
	dialectSQLite         = "sqlite3"
	colSequenceNumber     = "sequence_number"
	colEventType          = "event_type"
	colOccurredAt         = "occurred_at"
	colPayload            = "payload"
	colMetadata           = "metadata"
	jsonExtractEquals     = "json_extract(" + colPayload + ", ?) = ?"
	occurredAtLayout      = time.RFC3339Nano
	logMsgSQLExecuted     = "executed sql for: "
	logMsgOperation       = "journal operation: "
	logMsgQueryCompleted  = "query completed"
	logMsgEventsAppended  = "events appended"
	logMsgStatementFailed = "sqlite statement failed"
	logMsgCloseRowsFailed = "failed to close database rows"
	logAttrError          = "error"
	logAttrQuery          = "query"
	logAttrEventCount     = "event_count"
	logAttrDurationMS     = "duration_ms"
	logActionQuery        = "query"
	logActionAppend       = "append"
	logActionCreateTable  = "create table"
)

// Journal is the SQLite journal engine.
type Journal struct {
	db        *sql.DB
	tableName string
	logger    journal.Logger
}

// Option defines a functional option for configuring the Journal.
type Option func(*Journal) error

// WithTableName sets the journal table name.
func WithTableName(tableName string) Option {
	return func(j *Journal) error {
		if tableName == "" {
			return journal.ErrEmptyTableNameSupplied
		}

		j.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger. SQL is logged at debug level, operations at info level.
func WithLogger(logger journal.Logger) Option {
	return func(j *Journal) error {
		j.logger = logger
		return nil
	}
}

// NewJournal creates a Journal on an open SQLite database.
func NewJournal(db *sql.DB, options ...Option) (*Journal, error) {
	if db == nil {
		return nil, journal.ErrNilDatabaseConnection
	}

	j := &Journal{db: db, tableName: defaultTableName}

	for _, option := range options {
		if err := option(j); err != nil {
			return nil, err
		}
	}

	return j, nil
}

// EnsureTable creates the journal table if it does not exist.
func (j *Journal) EnsureTable(ctx context.Context) error {
	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %q (
	%s INTEGER PRIMARY KEY AUTOINCREMENT,
	%s TEXT NOT NULL,
	%s TEXT NOT NULL,
	%s TEXT NOT NULL,
	%s TEXT NOT NULL
)`, j.tableName, colSequenceNumber, colEventType, colOccurredAt, colPayload, colMetadata),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %q ON %q (%s)`, j.tableName+"_event_type_idx", j.tableName, colEventType),
	}

	for _, statement := range statements {
		if _, execErr := j.exec(ctx, statement, logActionCreateTable); execErr != nil {
			return errors.Join(journal.ErrCreatingTableFailed, execErr)
		}
	}

	return nil
}

// Append inserts all events with one multi-row INSERT.
func (j *Journal) Append(ctx context.Context, events ...journal.StorableEvent) error {
	if len(events) == 0 {
		return nil
	}

	records := make([]any, 0, len(events))
	for _, event := range events {
		records = append(records, goqu.Record{
			colEventType:  event.EventType,
			colOccurredAt: event.OccurredAt.UTC().Format(occurredAtLayout),
			colPayload:    string(event.PayloadJSON),
			colMetadata:   string(event.MetadataJSON),
		})
	}

	sqlQuery, _, err := goqu.Dialect(dialectSQLite).Insert(j.tableName).Rows(records...).ToSQL()
	if err != nil {
		return errors.Join(journal.ErrBuildingQueryFailed, err)
	}

	duration, err := j.exec(ctx, sqlQuery, logActionAppend)
	if err != nil {
		return errors.Join(journal.ErrAppendingEventFailed, err)
	}

	j.logOperation(logMsgEventsAppended, logAttrEventCount, len(events), logAttrDurationMS, toMilliseconds(duration))

	return nil
}

// Query returns the events matching filter ordered by sequence number.
func (j *Journal) Query(ctx context.Context, filter journal.Filter) (
	journal.StorableEvents,
	journal.MaxSequenceNumberUint,
	error,
) {

	selectStmt := goqu.Dialect(dialectSQLite).
		From(j.tableName).
		Select(colSequenceNumber, colEventType, colOccurredAt, colPayload, colMetadata).
		Order(goqu.I(colSequenceNumber).Asc())

	if !filter.IsEmpty() {
		selectStmt = selectStmt.Where(whereClause(filter))
	}

	sqlQuery, _, err := selectStmt.ToSQL()
	if err != nil {
		return nil, 0, errors.Join(journal.ErrBuildingQueryFailed, err)
	}

	start := time.Now()
	rows, err := j.db.QueryContext(ctx, sqlQuery)
	duration := time.Since(start)
	j.logQueryWithDuration(sqlQuery, logActionQuery, duration)

	if err != nil {
		j.logError(err, logAttrQuery, sqlQuery)

		return nil, 0, errors.Join(journal.ErrQueryingEventsFailed, err)
	}

	defer func() {
		if closeErr := rows.Close(); closeErr != nil && j.logger != nil {
			j.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}()

	events := make(journal.StorableEvents, 0)
	maxSequenceNumber := journal.MaxSequenceNumberUint(0)

	for rows.Next() {
		var (
			sequenceNumber int64
			eventType      string
			occurredAt     string
			payload        string
			metadata       string
		)

		if scanErr := rows.Scan(&sequenceNumber, &eventType, &occurredAt, &payload, &metadata); scanErr != nil {
			j.logError(scanErr)

			return nil, 0, errors.Join(journal.ErrScanningDBRowFailed, scanErr)
		}

		occurredAtTime, parseErr := time.Parse(occurredAtLayout, occurredAt)
		if parseErr != nil {
			return nil, 0, errors.Join(journal.ErrBuildingStorableEventFailed, parseErr)
		}

		event, buildErr := journal.BuildStorableEvent(eventType, occurredAtTime, []byte(payload), []byte(metadata))
		if buildErr != nil {
			return nil, 0, errors.Join(journal.ErrBuildingStorableEventFailed, buildErr)
		}

		events = append(events, event.WithSequenceNumber(uint(sequenceNumber)))
		maxSequenceNumber = uint(sequenceNumber)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, errors.Join(journal.ErrScanningDBRowFailed, err)
	}

	j.logOperation(logMsgQueryCompleted, logAttrEventCount, len(events), logAttrDurationMS, toMilliseconds(duration))

	return events, maxSequenceNumber, nil
}

func (j *Journal) exec(ctx context.Context, statement string, action string) (time.Duration, error) {
	start := time.Now()
	_, err := j.db.ExecContext(ctx, statement)
	duration := time.Since(start)
	j.logQueryWithDuration(statement, action, duration)

	if err != nil {
		j.logError(err, logAttrQuery, statement)
	}

	return duration, err
}

func whereClause(filter journal.Filter) goqu.Expression {
	itemExpressions := make([]goqu.Expression, 0, len(filter.Items()))

	for _, item := range filter.Items() {
		parts := make([]goqu.Expression, 0, 2)

		if len(item.EventTypes()) > 0 {
			parts = append(parts, goqu.C(colEventType).In(item.EventTypes()))
		}

		if len(item.Predicates()) > 0 {
			predicateExpressions := make([]goqu.Expression, 0, len(item.Predicates()))
			for _, predicate := range item.Predicates() {
				path := "$." + strconv.Quote(predicate.Key())
				predicateExpressions = append(predicateExpressions, goqu.L(jsonExtractEquals, path, predicate.Val()))
			}

			if item.AllPredicatesMustMatch() {
				parts = append(parts, goqu.And(predicateExpressions...))
			} else {
				parts = append(parts, goqu.Or(predicateExpressions...))
			}
		}

		if len(parts) > 0 {
			itemExpressions = append(itemExpressions, goqu.And(parts...))
		}
	}

	return goqu.Or(itemExpressions...)
}

func (j *Journal) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if j.logger != nil {
		j.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

func (j *Journal) logOperation(action string, args ...any) {
	if j.logger != nil {
		j.logger.Info(logMsgOperation+action, args...)
	}
}

func (j *Journal) logError(err error, args ...any) {
	if j.logger != nil {
		j.logger.Error(logMsgStatementFailed, append([]any{logAttrError, err.Error()}, args...)...)
	}
}

func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

var _ journal.Journal = (*Journal)(nil)

package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/lending-library-go/journal"
	"github.com/AntonStoeckl/lending-library-go/journal/postgresengine/internal/adapters"
)

const (
	defaultTableName               = "lending_journal"
	logMsgBuildSelectQueryFailed   = "failed to build select query"
	logMsgBuildInsertQueryFailed   = "failed to build insert query"
	logMsgDBQueryFailed            = "database query execution failed"
	logMsgDBExecFailed             = "database execution failed during event append"
	logMsgCloseRowsFailed          = "failed to close database rows"
	logMsgScanRowFailed            = "failed to scan database row"
	logMsgBuildStorableEventFailed = "failed to build storable event from database row"
	logMsgCreateTableFailed        = "failed to create journal table"
	logMsgQueryCompleted           = "query completed"
	logMsgEventsAppended           = "events appended"
	logMsgTableEnsured             = "table ensured"
	logMsgSQLExecuted              = "executed sql for: "
	logMsgOperation                = "journal operation: "
	logAttrError                   = "error"
	logAttrQuery                   = "query"
	logAttrEventType               = "event_type"
	logAttrEventCount              = "event_count"
	logAttrDurationMS              = "duration_ms"
	logAttrTable                   = "table"
	logActionQuery                 = "query"
	logActionAppend                = "append"
	logActionCreateTable           = "create table"
	colSequenceNumber              = "sequence_number"
	colEventType                   = "event_type"
	colOccurredAt                  = "occurred_at"
	colPayload                     = "payload"
	colMetadata                    = "metadata"
	dialectPostgres                = "postgres"
	castJsonb                      = "?::jsonb"
	payloadContains                = colPayload + " @> ?::jsonb"
)

// ErrInvalidTableName is returned by WithTableName for names that are not plain SQL identifiers.
var ErrInvalidTableName = errors.New("journal table name must be a plain sql identifier")

// Journal is the PostgreSQL journal engine.
type Journal struct {
	db               adapters.DBAdapter
	tableName        string
	logger           journal.Logger
	contextualLogger journal.ContextualLogger
}

// NewJournalFromPGXPool creates a Journal on a pgx pool.
func NewJournalFromPGXPool(db *pgxpool.Pool, options ...Option) (*Journal, error) {
	if db == nil {
		return nil, journal.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewPGXAdapter(db), options...)
}

// NewJournalFromSQLDB creates a Journal on a sql.DB, e.g. one opened with the lib/pq driver.
func NewJournalFromSQLDB(db *sql.DB, options ...Option) (*Journal, error) {
	if db == nil {
		return nil, journal.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewSQLAdapter(db), options...)
}

// NewJournalFromSQLX creates a Journal on a sqlx.DB.
func NewJournalFromSQLX(db *sqlx.DB, options ...Option) (*Journal, error) {
	if db == nil {
		return nil, journal.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewSQLXAdapter(db), options...)
}

func newJournal(db adapters.DBAdapter, options ...Option) (*Journal, error) {
	j := &Journal{
		db:        db,
		tableName: defaultTableName,
	}

	for _, option := range options {
		if err := option(j); err != nil {
			return nil, err
		}
	}

	return j, nil
}

// TableName returns the configured journal table name.
func (j *Journal) TableName() string {
	return j.tableName
}

// EnsureTable creates the journal table and its indexes if they do not exist.
func (j *Journal) EnsureTable(ctx context.Context) error {
	for _, statement := range j.schemaStatements() {
		start := time.Now()
		_, err := j.db.Exec(ctx, statement)
		j.logQueryWithDuration(ctx, statement, logActionCreateTable, time.Since(start))

		if err != nil {
			j.logError(ctx, logMsgCreateTableFailed, err, logAttrTable, j.tableName)

			return errors.Join(journal.ErrCreatingTableFailed, err)
		}
	}

	j.logOperation(ctx, logMsgTableEnsured, logAttrTable, j.tableName)

	return nil
}

func (j *Journal) schemaStatements() []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	%s BIGSERIAL PRIMARY KEY,
	%s TEXT NOT NULL,
	%s TIMESTAMPTZ NOT NULL,
	%s JSONB NOT NULL,
	%s JSONB NOT NULL
)`, j.tableName, colSequenceNumber, colEventType, colOccurredAt, colPayload, colMetadata),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_event_type_idx ON %s (%s)`, j.tableName, j.tableName, colEventType),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_payload_idx ON %s USING GIN (%s jsonb_path_ops)`, j.tableName, j.tableName, colPayload),
	}
}

// Append inserts all events with one INSERT statement, so they are stored atomically.
func (j *Journal) Append(ctx context.Context, events ...journal.StorableEvent) error {
	if len(events) == 0 {
		return nil
	}

	sqlQuery, buildErr := j.buildInsertQuery(events)
	if buildErr != nil {
		j.logError(ctx, logMsgBuildInsertQueryFailed, buildErr, logAttrEventCount, len(events))

		return buildErr
	}

	start := time.Now()
	_, execErr := j.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	j.logQueryWithDuration(ctx, sqlQuery, logActionAppend, duration)

	if execErr != nil {
		j.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)

		return errors.Join(journal.ErrAppendingEventFailed, execErr)
	}

	j.logOperation(ctx, logMsgEventsAppended, logAttrEventCount, len(events), logAttrDurationMS, toMilliseconds(duration))

	return nil
}

// Query returns the events matching filter ordered by sequence number.
func (j *Journal) Query(ctx context.Context, filter journal.Filter) (
	journal.StorableEvents,
	journal.MaxSequenceNumberUint,
	error,
) {

	sqlQuery, buildErr := j.buildSelectQuery(filter)
	if buildErr != nil {
		j.logError(ctx, logMsgBuildSelectQueryFailed, buildErr)

		return nil, 0, buildErr
	}

	start := time.Now()
	rows, queryErr := j.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	j.logQueryWithDuration(ctx, sqlQuery, logActionQuery, duration)

	if queryErr != nil {
		j.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)

		return nil, 0, errors.Join(journal.ErrQueryingEventsFailed, queryErr)
	}

	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			j.logWarn(ctx, logMsgCloseRowsFailed, closeErr)
		}
	}()

	events, maxSequenceNumber, scanErr := j.processQueryResults(ctx, rows)
	if scanErr != nil {
		return nil, 0, scanErr
	}

	j.logOperation(ctx, logMsgQueryCompleted, logAttrEventCount, len(events), logAttrDurationMS, toMilliseconds(duration))

	return events, maxSequenceNumber, nil
}

func (j *Journal) processQueryResults(ctx context.Context, rows adapters.DBRows) (
	journal.StorableEvents,
	journal.MaxSequenceNumberUint,
	error,
) {

	events := make(journal.StorableEvents, 0)
	maxSequenceNumber := journal.MaxSequenceNumberUint(0)

	for rows.Next() {
		var (
			sequenceNumber int64
			eventType      string
			occurredAt     time.Time
			payload        []byte
			metadata       []byte
		)

		if err := rows.Scan(&sequenceNumber, &eventType, &occurredAt, &payload, &metadata); err != nil {
			j.logError(ctx, logMsgScanRowFailed, err)

			return nil, 0, errors.Join(journal.ErrScanningDBRowFailed, err)
		}

		event, err := journal.BuildStorableEvent(eventType, occurredAt.UTC(), payload, metadata)
		if err != nil {
			j.logError(ctx, logMsgBuildStorableEventFailed, err, logAttrEventType, eventType)

			return nil, 0, errors.Join(journal.ErrBuildingStorableEventFailed, err)
		}

		events = append(events, event.WithSequenceNumber(uint(sequenceNumber)))
		maxSequenceNumber = uint(sequenceNumber)
	}

	if err := rows.Err(); err != nil {
		j.logError(ctx, logMsgScanRowFailed, err)

		return nil, 0, errors.Join(journal.ErrScanningDBRowFailed, err)
	}

	return events, maxSequenceNumber, nil
}

func (j *Journal) buildInsertQuery(events journal.StorableEvents) (string, error) {
	records := make([]any, 0, len(events))

	for _, event := range events {
		records = append(records, goqu.Record{
			colEventType:  event.EventType,
			colOccurredAt: event.OccurredAt.UTC(),
			colPayload:    goqu.L(castJsonb, string(event.PayloadJSON)),
			colMetadata:   goqu.L(castJsonb, string(event.MetadataJSON)),
		})
	}

	sqlQuery, _, err := goqu.Dialect(dialectPostgres).
		Insert(j.tableName).
		Rows(records...).
		ToSQL()

	if err != nil {
		return "", errors.Join(journal.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

func (j *Journal) buildSelectQuery(filter journal.Filter) (string, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(j.tableName).
		Select(colSequenceNumber, colEventType, colOccurredAt, colPayload, colMetadata).
		Order(goqu.I(colSequenceNumber).Asc())

	if !filter.IsEmpty() {
		whereExpression, err := whereClause(filter)
		if err != nil {
			return "", errors.Join(journal.ErrBuildingQueryFailed, err)
		}

		selectStmt = selectStmt.Where(whereExpression)
	}

	sqlQuery, _, err := selectStmt.ToSQL()
	if err != nil {
		return "", errors.Join(journal.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

// whereClause translates the filter, predicates become JSONB containment checks with escaped literals.
func whereClause(filter journal.Filter) (goqu.Expression, error) {
	itemExpressions := make([]goqu.Expression, 0, len(filter.Items()))

	for _, item := range filter.Items() {
		parts := make([]goqu.Expression, 0, 2)

		if len(item.EventTypes()) > 0 {
			parts = append(parts, goqu.C(colEventType).In(item.EventTypes()))
		}

		if len(item.Predicates()) > 0 {
			predicateExpressions := make([]goqu.Expression, 0, len(item.Predicates()))

			for _, predicate := range item.Predicates() {
				containment, err := jsoniter.ConfigFastest.Marshal(map[string]string{predicate.Key(): predicate.Val()})
				if err != nil {
					return nil, err
				}

				predicateExpressions = append(predicateExpressions, goqu.L(payloadContains, string(containment)))
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

	return goqu.Or(itemExpressions...), nil
}

var _ journal.Journal = (*Journal)(nil)

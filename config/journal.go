package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AntonStoeckl/lending-library-go/journal"
	"github.com/AntonStoeckl/lending-library-go/journal/memoryengine"
	"github.com/AntonStoeckl/lending-library-go/journal/postgresengine"
	"github.com/AntonStoeckl/lending-library-go/journal/sqliteengine"
)

// ErrOpeningJournalFailed is returned by OpenJournal when the engine can't be set up.
var ErrOpeningJournalFailed = errors.New("opening journal failed")

// tableEnsurer is implemented by the SQL engines.
type tableEnsurer interface {
	EnsureTable(ctx context.Context) error
}

// OpenJournal builds the journal engine described by cfg and makes sure its table exists.
// The returned close function releases the database connection and is never nil.
// A nil logger disables journal logging.
func OpenJournal(ctx context.Context, cfg JournalConfig, logger *slog.Logger) (journal.Journal, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Engine {
	case EngineMemory, "":
		var options []memoryengine.Option
		if logger != nil {
			options = append(options, memoryengine.WithLogger(logger))
		}

		return memoryengine.NewJournal(options...), noop, nil

	case EnginePostgres:
		j, closeFn, err := openPostgresJournal(ctx, cfg, logger)
		if err != nil {
			return nil, noop, errors.Join(ErrOpeningJournalFailed, err)
		}

		return j, closeFn, nil

	case EngineSQLite:
		j, closeFn, err := openSQLiteJournal(ctx, cfg, logger)
		if err != nil {
			return nil, noop, errors.Join(ErrOpeningJournalFailed, err)
		}

		return j, closeFn, nil

	default:
		return nil, noop, errors.Join(ErrOpeningJournalFailed, fmt.Errorf("unknown journal engine %q", cfg.Engine))
	}
}

func openPostgresJournal(ctx context.Context, cfg JournalConfig, logger *slog.Logger) (journal.Journal, func() error, error) {
	options := []postgresengine.Option{postgresengine.WithTableName(tableOrDefault(cfg.Table))}
	if logger != nil {
		options = append(options, postgresengine.WithContextualLogger(logger))
	}

	var (
		j       *postgresengine.Journal
		closeFn func() error
		err     error
	)

	switch cfg.Driver {
	case DriverSQL:
		db, openErr := PostgresSQLDB(ctx, cfg.DSN)
		if openErr != nil {
			return nil, nil, openErr
		}

		closeFn = db.Close
		j, err = postgresengine.NewJournalFromSQLDB(db, options...)

	case DriverSQLX:
		db, openErr := PostgresSQLX(ctx, cfg.DSN)
		if openErr != nil {
			return nil, nil, openErr
		}

		closeFn = db.Close
		j, err = postgresengine.NewJournalFromSQLX(db, options...)

	case DriverPGX, "":
		pool, openErr := PostgresPGXPool(ctx, cfg.DSN)
		if openErr != nil {
			return nil, nil, openErr
		}

		closeFn = func() error {
			pool.Close()
			return nil
		}
		j, err = postgresengine.NewJournalFromPGXPool(pool, options...)

	default:
		return nil, nil, fmt.Errorf("unknown postgres driver %q", cfg.Driver)
	}

	return ensured(ctx, j, err, closeFn)
}

func openSQLiteJournal(ctx context.Context, cfg JournalConfig, logger *slog.Logger) (journal.Journal, func() error, error) {
	db, err := SQLiteDB(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, err
	}

	options := []sqliteengine.Option{sqliteengine.WithTableName(tableOrDefault(cfg.Table))}
	if logger != nil {
		options = append(options, sqliteengine.WithLogger(logger))
	}

	j, err := sqliteengine.NewJournal(db, options...)

	return ensured(ctx, j, err, db.Close)
}

// ensured creates the table of a freshly built SQL journal, the connection is closed on any failure.
func ensured[J interface {
	journal.Journal
	tableEnsurer
}](ctx context.Context, j J, buildErr error, closeFn func() error) (journal.Journal, func() error, error) {
	if buildErr != nil {
		_ = closeFn()
		return nil, nil, buildErr
	}

	if err := j.EnsureTable(ctx); err != nil {
		_ = closeFn()
		return nil, nil, err
	}

	return j, closeFn, nil
}

func tableOrDefault(table string) string {
	if table == "" {
		return defaultJournalTable
	}

	return table
}

package adapters_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-library-go/journal/postgresengine/internal/adapters"
)

func givenDatabase(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err, "error in arranging test data")
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE journal (sequence_number INTEGER PRIMARY KEY, event_type TEXT)`)
	require.NoError(t, err, "error in arranging test data")

	return db
}

func Test_SQL_And_SQLX_Adapters_Append_And_Read_Rows(t *testing.T) {
	db := givenDatabase(t)

	testCases := []struct {
		name    string
		adapter adapters.DBAdapter
	}{
		{name: "sql.DB", adapter: adapters.NewSQLAdapter(db)},
		{name: "sqlx.DB", adapter: adapters.NewSQLXAdapter(sqlx.NewDb(db, "sqlite3"))},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			ctx := context.Background()
			_, err := tc.adapter.Exec(ctx, `DELETE FROM journal`)
			require.NoError(t, err, "error in arranging test data")

			// act
			result, execErr := tc.adapter.Exec(ctx, `INSERT INTO journal (event_type) VALUES ('ItemCheckedOut'), ('ItemReturned')`)
			rows, queryErr := tc.adapter.Query(ctx, `SELECT event_type FROM journal ORDER BY sequence_number`)

			// assert
			require.NoError(t, execErr)
			require.NoError(t, queryErr)
			affected, err := result.RowsAffected()
			require.NoError(t, err)
			assert.Equal(t, int64(2), affected)

			var eventTypes []string
			for rows.Next() {
				var eventType string
				require.NoError(t, rows.Scan(&eventType))
				eventTypes = append(eventTypes, eventType)
			}
			assert.NoError(t, rows.Err())
			assert.NoError(t, rows.Close())
			assert.Equal(t, []string{"ItemCheckedOut", "ItemReturned"}, eventTypes)
		})
	}
}

func Test_SQL_Adapter_Reports_Query_Errors(t *testing.T) {
	// arrange
	adapter := adapters.NewSQLAdapter(givenDatabase(t))

	// act
	rows, err := adapter.Query(context.Background(), `SELECT * FROM missing_table`)

	// assert
	assert.Error(t, err)
	assert.Nil(t, rows)
}

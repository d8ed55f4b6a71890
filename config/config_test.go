package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-library-go/config"
	"github.com/AntonStoeckl/lending-library-go/lending"
)

func Test_Default_MatchesTheDefaultLoanPolicy(t *testing.T) {
	// act
	cfg := config.Default()

	// assert
	assert.Equal(t, lending.DefaultLoanPolicy(), cfg.Policy.LoanPolicy())
	assert.Equal(t, config.EngineMemory, cfg.Journal.Engine)
	assert.Equal(t, "lending_journal", cfg.Journal.Table)
	assert.Equal(t, config.FormatText, cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func Test_Load_OverridesDefaults(t *testing.T) {
	// arrange
	path := givenConfigFile(t, `
policy:
  max_books_per_borrower: 5
journal:
  engine: postgres
  driver: sqlx
  dsn: postgres://u:p@db:5432/lending?sslmode=disable
log:
  level: debug
  format: json
`)

	// act
	cfg, err := config.Load(path)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Policy.MaxBooksPerBorrower)
	assert.Equal(t, 30, cfg.Policy.MaxLoanPeriodDays, "missing keys keep their defaults")
	assert.Equal(t, config.EnginePostgres, cfg.Journal.Engine)
	assert.Equal(t, config.DriverSQLX, cfg.Journal.Driver)
	assert.Equal(t, "postgres://u:p@db:5432/lending?sslmode=disable", cfg.Journal.DSN)
	assert.Equal(t, "lending_journal", cfg.Journal.Table)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, config.FormatJSON, cfg.Log.Format)
}

func Test_Load_MissingFile(t *testing.T) {
	// act
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

	// assert
	assert.ErrorIs(t, err, config.ErrReadingConfigFailed)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func Test_Parse_InvalidYAML(t *testing.T) {
	// act
	_, err := config.Parse([]byte("policy: [unclosed"))

	// assert
	assert.ErrorIs(t, err, config.ErrParsingConfigFailed)
}

func Test_Parse_InvalidValues(t *testing.T) {
	testCases := []struct {
		name        string
		yaml        string
		errContains string
	}{
		{"zero books", "policy: {max_books_per_borrower: 0}", "max_books_per_borrower"},
		{"zero days", "policy: {max_loan_period_days: 0}", "max_loan_period_days"},
		{"unknown engine", "journal: {engine: mongo}", `journal.engine "mongo" is unknown`},
		{"unknown driver", "journal: {engine: postgres, driver: odbc, dsn: x}", `journal.driver "odbc" is unknown`},
		{"sqlite without dsn", "journal: {engine: sqlite}", "journal.dsn is required for the sqlite engine"},
		{"unknown level", "log: {level: chatty}", `log.level "chatty" is unknown`},
		{"unknown format", "log: {format: xml}", `log.format "xml" is unknown`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := config.Parse([]byte(tc.yaml))

			// assert
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.ErrorContains(t, err, tc.errContains)
		})
	}
}

func Test_Validate_ReportsAllInvalidValues(t *testing.T) {
	// arrange
	cfg := config.Default()
	cfg.Policy.MaxBooksPerBorrower = 0
	cfg.Log.Format = "xml"

	// act
	err := cfg.Validate()

	// assert
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.ErrorContains(t, err, "max_books_per_borrower")
	assert.ErrorContains(t, err, "log.format")
}

func givenConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "lending.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "error in arranging test data")

	return path
}

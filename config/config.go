package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/lending-library-go/lending"
)

// Journal engines.
const (
	EngineMemory   = "memory"
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// PostgreSQL drivers of the postgres engine.
const (
	DriverPGX  = "pgx"
	DriverSQL  = "sql"
	DriverSQLX = "sqlx"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

const defaultJournalTable = "lending_journal"

var (
	// ErrReadingConfigFailed is returned when the configuration file can't be read.
	ErrReadingConfigFailed = errors.New("reading config file failed")

	// ErrParsingConfigFailed is returned when the configuration file is not valid YAML.
	ErrParsingConfigFailed = errors.New("parsing config file failed")

	// ErrInvalidConfig is returned when a configuration value is out of range or unknown.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config is the root of the configuration file.
type Config struct {
	Policy  PolicyConfig  `yaml:"policy"`
	Journal JournalConfig `yaml:"journal"`
	Log     LogConfig     `yaml:"log"`
}

// PolicyConfig holds the service-level lending limits.
type PolicyConfig struct {
	MaxBooksPerBorrower int `yaml:"max_books_per_borrower"`
	MaxLoanPeriodDays   int `yaml:"max_loan_period_days"`
}

// JournalConfig selects the journal engine and its database.
// Driver is only used by the postgres engine. DSN is ignored by the memory engine.
type JournalConfig struct {
	Engine string `yaml:"engine"`
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Table  string `yaml:"table"`
}

// LogConfig configures the slog logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the default lending policy, an in-memory journal and info level text logs.
func Default() Config {
	policy := lending.DefaultLoanPolicy()

	return Config{
		Policy: PolicyConfig{
			MaxBooksPerBorrower: policy.MaxBooksPerBorrower,
			MaxLoanPeriodDays:   policy.MaxLoanPeriodDays,
		},
		Journal: JournalConfig{
			Engine: EngineMemory,
			Driver: DriverPGX,
			Table:  defaultJournalTable,
		},
		Log: LogConfig{
			Level:  "info",
			Format: FormatText,
		},
	}
}

// Load reads the YAML file at path on top of Default and validates the result.
// Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Join(ErrReadingConfigFailed, err)
	}

	return Parse(raw)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(raw []byte) (Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfigFailed, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks all values, the errors of all invalid values are joined.
func (c Config) Validate() error {
	var errs []error

	if c.Policy.MaxBooksPerBorrower < 1 {
		errs = append(errs, fmt.Errorf("policy.max_books_per_borrower must be at least 1, got %d",
			c.Policy.MaxBooksPerBorrower))
	}

	if c.Policy.MaxLoanPeriodDays < 1 {
		errs = append(errs, fmt.Errorf("policy.max_loan_period_days must be at least 1, got %d",
			c.Policy.MaxLoanPeriodDays))
	}

	if !slices.Contains([]string{EngineMemory, EnginePostgres, EngineSQLite}, c.Journal.Engine) {
		errs = append(errs, fmt.Errorf("journal.engine %q is unknown", c.Journal.Engine))
	}

	if c.Journal.Engine == EnginePostgres {
		if !slices.Contains([]string{DriverPGX, DriverSQL, DriverSQLX}, c.Journal.Driver) {
			errs = append(errs, fmt.Errorf("journal.driver %q is unknown", c.Journal.Driver))
		}
	}

	if c.Journal.Engine != EngineMemory && c.Journal.DSN == "" {
		errs = append(errs, fmt.Errorf("journal.dsn is required for the %s engine", c.Journal.Engine))
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	if c.Log.Format != FormatText && c.Log.Format != FormatJSON {
		errs = append(errs, fmt.Errorf("log.format %q is unknown", c.Log.Format))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}

	return nil
}

// LoanPolicy converts the policy section for lending.WithLoanPolicy.
func (c PolicyConfig) LoanPolicy() lending.LoanPolicy {
	return lending.LoanPolicy{
		MaxBooksPerBorrower: c.MaxBooksPerBorrower,
		MaxLoanPeriodDays:   c.MaxLoanPeriodDays,
	}
}

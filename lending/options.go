package lending

import (
	"errors"
	"time"

	"github.com/AntonStoeckl/lending-library-go/core"
	"github.com/AntonStoeckl/lending-library-go/journal"
)

// LoanPolicy holds the service-level lending limits.
// Type and format limits of the individual items apply on top.
type LoanPolicy struct {
	MaxBooksPerBorrower int
	MaxLoanPeriodDays   int
}

// DefaultLoanPolicy returns 3 books per borrower and loan periods up to 30 days.
func DefaultLoanPolicy() LoanPolicy {
	return LoanPolicy{
		MaxBooksPerBorrower: 3,
		MaxLoanPeriodDays:   core.MaxLoanPeriodDays,
	}
}

// Option defines a functional option for configuring the Service.
type Option func(*Service) error

// WithClock sets the source of the current time, the default is time.Now.
func WithClock(clock Clock) Option {
	return func(s *Service) error {
		if clock == nil {
			return errors.Join(ErrNilOption, errors.New("clock"))
		}

		s.clock = clock

		return nil
	}
}

// WithFixedToday makes the Service treat today as the current date, useful for sweeps of a given day.
func WithFixedToday(today time.Time) Option {
	return WithClock(func() time.Time { return today })
}

// WithJournal sets the journal committed events are appended to. Without a journal nothing is journaled.
func WithJournal(j journal.Journal) Option {
	return func(s *Service) error {
		s.journal = j
		return nil
	}
}

// WithLogger sets the logger for the Service.
//
// Debug level: lock acquisition and decisions
// Info level: completed operations with their durations
// Warn level: rejected requests
// Error level: journaling failures.
func WithLogger(logger Logger) Option {
	return func(s *Service) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger, it takes precedence over WithLogger.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(s *Service) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Service.
func WithMetrics(collector MetricsCollector) Option {
	return func(s *Service) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Service.
func WithTracing(collector TracingCollector) Option {
	return func(s *Service) error {
		s.tracingCollector = collector
		return nil
	}
}

// WithLoanPolicy replaces the DefaultLoanPolicy.
func WithLoanPolicy(policy LoanPolicy) Option {
	return func(s *Service) error {
		if policy.MaxBooksPerBorrower < 1 || policy.MaxLoanPeriodDays < core.MinLoanPeriodDays {
			return ErrInvalidLoanPolicy
		}

		s.policy = policy

		return nil
	}
}

// WithLoanIDGenerator replaces the default ULID based loan IDs.
func WithLoanIDGenerator(generator LoanIDGenerator) Option {
	return func(s *Service) error {
		if generator == nil {
			return errors.Join(ErrNilOption, errors.New("loan ID generator"))
		}

		s.newLoanID = generator

		return nil
	}
}

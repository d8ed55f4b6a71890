package lending

import (
	"context"
	"time"

	"github.com/AntonStoeckl/lending-library-go/core"
)

// Catalog is the entity store the lending service works on.
//
// Finds and adds must be atomic, adds must reject duplicates with core.KindAlreadyExists.
// Listings return items in insertion order.
type Catalog interface {
	AddBook(book *core.Book) error
	AddSeries(series *core.Series) error
	AddBorrower(borrower *core.Borrower) error
	FindBookByISBN(isbn core.ISBNString) (*core.Book, bool)
	FindSeriesByTitle(title core.SeriesTitleString) (*core.Series, bool)
	FindBorrowerByID(id core.BorrowerIDString) (*core.Borrower, bool)
	SearchBooks(term string) []*core.Book
	AllBooks() []*core.Book
	AllSeries() []*core.Series
}

// Logger interface for operational logging, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger interface for context-aware logging with automatic trace correlation.
// When configured, the Service prefers it over Logger.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// MetricsCollector interface for collecting lending performance and business metrics.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// ContextualMetricsCollector extends MetricsCollector with context-aware methods for better tracing integration.
// This interface is optional, the Service uses the context-aware methods when available.
type ContextualMetricsCollector interface {
	MetricsCollector
	RecordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string)
	IncrementCounterContext(ctx context.Context, metric string, labels map[string]string)
	RecordValueContext(ctx context.Context, metric string, value float64, labels map[string]string)
}

// SpanContext represents an active tracing span that can be finished and updated with attributes.
type SpanContext interface {
	SetStatus(status string)
	AddAttribute(key, value string)
}

// TracingCollector interface for collecting tracing information from lending operations.
type TracingCollector interface {
	StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext)
	FinishSpan(spanCtx SpanContext, status string, attrs map[string]string)
}

// Clock returns the current time. The Service derives "today" from it.
type Clock func() time.Time

// LoanIDGenerator returns a new unique loan ID for every call.
type LoanIDGenerator func() core.LoanIDString

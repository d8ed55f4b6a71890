package testdoubles

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/lending-library-go/journal"
	"github.com/AntonStoeckl/lending-library-go/lending"
)

// ContextualLoggerSpy is a ContextualLogger implementation that captures contextual logging calls for testing.
type ContextualLoggerSpy struct {
	records     []SpyContextualLogRecord
	mu          sync.Mutex
	recordCalls bool
}

// SpyContextualLogRecord represents a recorded contextual log call.
type SpyContextualLogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// NewContextualLoggerSpy creates a new ContextualLoggerSpy instance.
func NewContextualLoggerSpy(recordCalls bool) *ContextualLoggerSpy {
	return &ContextualLoggerSpy{
		recordCalls: recordCalls,
	}
}

// DebugContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "debug", msg, args)
}

// InfoContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "info", msg, args)
}

// WarnContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "warn", msg, args)
}

// ErrorContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "error", msg, args)
}

func (s *ContextualLoggerSpy) record(ctx context.Context, level string, msg string, args []any) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyContextualLogRecord{
		Level:   level,
		Message: msg,
		Args:    append([]any(nil), args...),
		Context: ctx,
	})
}

// Reset clears all recorded log calls.
func (s *ContextualLoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = s.records[:0]
}

// GetRecords returns a copy of all log records of the given level ("debug", "info", "warn", "error").
func (s *ContextualLoggerSpy) GetRecords(level string) []SpyContextualLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []SpyContextualLogRecord
	for _, record := range s.records {
		if record.Level == level {
			records = append(records, record)
		}
	}

	return records
}

// GetTotalRecordCount returns the total number of log records across all levels.
func (s *ContextualLoggerSpy) GetTotalRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// HasDebugLog checks if a debug log with the specified message exists.
func (s *ContextualLoggerSpy) HasDebugLog(message string) bool {
	return s.has("debug", message)
}

// HasInfoLog checks if an info log with the specified message exists.
func (s *ContextualLoggerSpy) HasInfoLog(message string) bool {
	return s.has("info", message)
}

// HasWarnLog checks if a warn log with the specified message exists.
func (s *ContextualLoggerSpy) HasWarnLog(message string) bool {
	return s.has("warn", message)
}

// HasErrorLog checks if an error log with the specified message exists.
func (s *ContextualLoggerSpy) HasErrorLog(message string) bool {
	return s.has("error", message)
}

func (s *ContextualLoggerSpy) has(level string, message string) bool {
	for _, record := range s.GetRecords(level) {
		if record.Message == message {
			return true
		}
	}

	return false
}

// Compile-time checks to ensure ContextualLoggerSpy implements the ContextualLogger ports.
var (
	_ lending.ContextualLogger = (*ContextualLoggerSpy)(nil)
	_ journal.ContextualLogger = (*ContextualLoggerSpy)(nil)
)

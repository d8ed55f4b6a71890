package oteladapters

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log"

	"github.com/AntonStoeckl/lending-library-go/journal"
	"github.com/AntonStoeckl/lending-library-go/lending"
)

// SlogBridgeLogger is a ContextualLogger backed by the OpenTelemetry slog bridge.
// Records logged with a context carrying a span get its trace and span IDs.
type SlogBridgeLogger struct {
	logger *slog.Logger
}

// NewSlogBridgeLogger creates a SlogBridgeLogger for the instrumentation scope name.
// A nil provider means the global LoggerProvider.
func NewSlogBridgeLogger(name string, provider log.LoggerProvider) *SlogBridgeLogger {
	if provider == nil {
		return &SlogBridgeLogger{logger: otelslog.NewLogger(name)}
	}

	return &SlogBridgeLogger{logger: otelslog.NewLogger(name, otelslog.WithLoggerProvider(provider))}
}

// NewSlogBridgeLoggerWithHandler creates a SlogBridgeLogger writing to handler, without the OpenTelemetry bridge.
func NewSlogBridgeLoggerWithHandler(handler slog.Handler) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: slog.New(handler)}
}

// DebugContext logs at debug level.
func (l *SlogBridgeLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

// InfoContext logs at info level.
func (l *SlogBridgeLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

// WarnContext logs at warn level.
func (l *SlogBridgeLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

// ErrorContext logs at error level.
func (l *SlogBridgeLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

// OTelLogger is a ContextualLogger emitting records through the OpenTelemetry logs API directly.
type OTelLogger struct {
	logger log.Logger
}

// NewOTelLogger creates an OTelLogger emitting to logger.
func NewOTelLogger(logger log.Logger) *OTelLogger {
	return &OTelLogger{logger: logger}
}

// DebugContext emits a record with SeverityDebug.
func (l *OTelLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityDebug, msg, args)
}

// InfoContext emits a record with SeverityInfo.
func (l *OTelLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityInfo, msg, args)
}

// WarnContext emits a record with SeverityWarn.
func (l *OTelLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityWarn, msg, args)
}

// ErrorContext emits a record with SeverityError.
func (l *OTelLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityError, msg, args)
}

// emit turns slog style key-value args into record attributes. A trailing key without value is dropped.
func (l *OTelLogger) emit(ctx context.Context, severity log.Severity, msg string, args []any) {
	record := log.Record{}
	record.SetTimestamp(time.Now())
	record.SetSeverity(severity)
	record.SetSeverityText(severity.String())
	record.SetBody(log.StringValue(msg))

	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}

		record.AddAttributes(keyValue(key, args[i+1]))
	}

	l.logger.Emit(ctx, record)
}

// keyValue keeps numbers and booleans typed, everything else is rendered like slog renders it.
func keyValue(key string, value any) log.KeyValue {
	switch v := value.(type) {
	case string:
		return log.String(key, v)
	case int:
		return log.Int(key, v)
	case int64:
		return log.Int64(key, v)
	case float64:
		return log.Float64(key, v)
	case bool:
		return log.Bool(key, v)
	default:
		return log.String(key, slog.AnyValue(v).String())
	}
}

var (
	_ lending.ContextualLogger = (*SlogBridgeLogger)(nil)
	_ journal.ContextualLogger = (*SlogBridgeLogger)(nil)
	_ lending.ContextualLogger = (*OTelLogger)(nil)
	_ journal.ContextualLogger = (*OTelLogger)(nil)
)

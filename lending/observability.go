package lending

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/lending-library-go/core"
)

// Log messages and attribute keys of the Service, exported so log based assertions and dashboards can rely on them.
const (
	LogMsgOperation         = "lending operation: "
	LogMsgCheckoutCompleted = LogMsgOperation + "item checked out"
	LogMsgReturnCompleted   = LogMsgOperation + "item returned"
	LogMsgSweepCompleted    = LogMsgOperation + "due dates checked"
	LogMsgRegistered        = LogMsgOperation + "registered"
	LogMsgRequestRejected   = "lending request rejected"
	LogMsgJournalingFailed  = "journaling lending events failed"
	LogMsgLocksAcquired     = "lending locks acquired"

	LogAttrOperation      = "operation"
	LogAttrItemID         = "item_id"
	LogAttrItemKey        = "item_key"
	LogAttrBorrowerID     = "borrower_id"
	LogAttrLoanID         = "loan_id"
	LogAttrDueDate        = "due_date"
	LogAttrDaysLate       = "days_late"
	LogAttrLateFee        = "late_fee"
	LogAttrReminders      = "reminders"
	LogAttrOverdueNotices = "overdue_notices"
	LogAttrDuplicates     = "duplicates_suppressed"
	LogAttrEventCount     = "event_count"
	LogAttrLockCount      = "lock_count"
	LogAttrDurationMS     = "duration_ms"
	LogAttrErrorKind      = "error_kind"
	LogAttrError          = "error"
)

// Metric names, labels and span names of the Service.
const (
	MetricOperationDuration = "lending_operation_duration_seconds"
	MetricOperationCalls    = "lending_operation_calls_total"
	MetricLateFees          = "lending_late_fees_total"
	MetricNotifications     = "lending_notifications_total"
	MetricJournalingErrors  = "lending_journaling_errors_total"

	LabelOperation  = "operation"
	LabelStatus     = "status"
	LabelErrorKind  = "error_kind"
	LabelNoticeType = "notice_type"

	SpanNameCheckout = "lending.checkout"
	SpanNameReturn   = "lending.return"
	SpanNameSweep    = "lending.sweep"

	SpanAttrItemID     = "item_id"
	SpanAttrBorrowerID = "borrower_id"
	SpanAttrLoanDays   = "loan_days"
	SpanAttrItemKey    = "item_key"
	SpanAttrEventCount = "event_count"
	SpanAttrDurationMS = "duration_ms"
	SpanAttrErrorKind  = "error_kind"

	OperationCheckout = "checkout"
	OperationReturn   = "return"
	OperationSweep    = "sweep"

	StatusSuccess = "success"
	StatusError   = "error"

	errorKindCanceled       = "CANCELED"
	errorKindInfrastructure = "INFRASTRUCTURE"
)

// errorKindOf classifies err for metrics and spans.
func errorKindOf(err error) string {
	if kind, ok := core.KindOf(err); ok {
		return string(kind)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errorKindCanceled
	}

	return errorKindInfrastructure
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func (s *Service) logDebug(ctx context.Context, msg string, args ...any) {
	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.DebugContext(ctx, msg, args...)
	case s.logger != nil:
		s.logger.Debug(msg, args...)
	}
}

func (s *Service) logInfo(ctx context.Context, msg string, args ...any) {
	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.InfoContext(ctx, msg, args...)
	case s.logger != nil:
		s.logger.Info(msg, args...)
	}
}

func (s *Service) logWarn(ctx context.Context, msg string, args ...any) {
	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.WarnContext(ctx, msg, args...)
	case s.logger != nil:
		s.logger.Warn(msg, args...)
	}
}

func (s *Service) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := append([]any{LogAttrError, err.Error()}, args...)

	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.ErrorContext(ctx, msg, allArgs...)
	case s.logger != nil:
		s.logger.Error(msg, allArgs...)
	}
}

// recordDuration records a duration metric, using the context-aware method if available.
func (s *Service) recordDuration(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	if s.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := s.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	s.metricsCollector.RecordDuration(metric, duration, labels)
}

// incrementCounter increments a counter metric, using the context-aware method if available.
func (s *Service) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if s.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := s.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metric, labels)
}

// recordValue records a value metric, using the context-aware method if available.
func (s *Service) recordValue(ctx context.Context, metric string, value float64, labels map[string]string) {
	if s.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := s.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metric, value, labels)
		return
	}

	s.metricsCollector.RecordValue(metric, value, labels)
}

// === Operation Observer Pattern ===
// operationObserver bundles span, duration metric and call counter of one Service operation.

type operationObserver struct {
	s         *Service
	ctx       context.Context
	operation string
	span      SpanContext
	started   time.Time
}

// startOperation starts the span of an operation if the tracing collector is configured.
func (s *Service) startOperation(
	ctx context.Context,
	operation string,
	spanName string,
	attrs map[string]string,
) (*operationObserver, context.Context) {

	observer := &operationObserver{
		s:         s,
		operation: operation,
		started:   time.Now(),
	}

	if s.tracingCollector != nil {
		ctx, observer.span = s.tracingCollector.StartSpan(ctx, spanName, attrs)
	}

	observer.ctx = ctx

	return observer, ctx
}

func (o *operationObserver) elapsed() time.Duration {
	return time.Since(o.started)
}

// finishSuccess records metrics and finishes the span of a successful operation.
func (o *operationObserver) finishSuccess(attrs map[string]string) {
	duration := o.elapsed()
	labels := map[string]string{LabelOperation: o.operation, LabelStatus: StatusSuccess}

	o.s.recordDuration(o.ctx, MetricOperationDuration, duration, labels)
	o.s.incrementCounter(o.ctx, MetricOperationCalls, labels)

	if o.span == nil {
		return
	}

	o.span.SetStatus(StatusSuccess)
	o.span.AddAttribute(SpanAttrDurationMS, fmt.Sprintf("%.2f", toMilliseconds(duration)))
	o.s.tracingCollector.FinishSpan(o.span, StatusSuccess, attrs)
}

// finishError records metrics and finishes the span of a failed operation.
func (o *operationObserver) finishError(err error) {
	duration := o.elapsed()
	errorKind := errorKindOf(err)

	o.s.recordDuration(o.ctx, MetricOperationDuration, duration, map[string]string{
		LabelOperation: o.operation,
		LabelStatus:    StatusError,
	})
	o.s.incrementCounter(o.ctx, MetricOperationCalls, map[string]string{
		LabelOperation: o.operation,
		LabelStatus:    StatusError,
		LabelErrorKind: errorKind,
	})

	if o.span == nil {
		return
	}

	o.span.SetStatus(StatusError)
	o.span.AddAttribute(SpanAttrErrorKind, errorKind)
	o.span.AddAttribute(SpanAttrDurationMS, fmt.Sprintf("%.2f", toMilliseconds(duration)))
	o.s.tracingCollector.FinishSpan(o.span, StatusError, map[string]string{SpanAttrErrorKind: errorKind})
}

// finish dispatches to finishSuccess or finishError.
func (o *operationObserver) finish(err error, attrs map[string]string) {
	if err != nil {
		o.finishError(err)
		return
	}

	o.finishSuccess(attrs)
}

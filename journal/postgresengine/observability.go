package postgresengine

import (
	"context"
	"math"
	"time"
)

// logQueryWithDuration logs SQL statements with their execution time at debug level.
func (j *Journal) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	switch {
	case j.contextualLogger != nil:
		j.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
	case j.logger != nil:
		j.logger.Debug(logMsgSQLExecuted+action, args...)
	}
}

// logOperation logs operational information at info level.
func (j *Journal) logOperation(ctx context.Context, action string, args ...any) {
	switch {
	case j.contextualLogger != nil:
		j.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	case j.logger != nil:
		j.logger.Info(logMsgOperation+action, args...)
	}
}

// logWarn logs non-critical failures.
func (j *Journal) logWarn(ctx context.Context, message string, err error) {
	switch {
	case j.contextualLogger != nil:
		j.contextualLogger.WarnContext(ctx, message, logAttrError, err.Error())
	case j.logger != nil:
		j.logger.Warn(message, logAttrError, err.Error())
	}
}

// logError logs failures that make an operation fail.
func (j *Journal) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	switch {
	case j.contextualLogger != nil:
		j.contextualLogger.ErrorContext(ctx, message, allArgs...)
	case j.logger != nil:
		j.logger.Error(message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

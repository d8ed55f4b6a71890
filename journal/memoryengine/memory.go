// Package memoryengine provides an in-process implementation of the journal.Journal port.
//
// It keeps all events in a slice guarded by a RWMutex and evaluates filters in memory.
// It is the default engine of the CLI and of the lending service tests.
package memoryengine

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/AntonStoeckl/lending-library-go/journal"
)

const (
	logMsgEventsAppended   = "journal operation: events appended"
	logMsgQueryCompleted   = "journal operation: query completed"
	logMsgFilterEvalFailed = "failed to evaluate filter against event"
	logAttrEventCount      = "event_count"
	logAttrEventType       = "event_type"
	logAttrError           = "error"
)

// Journal is the in-memory journal engine, safe for concurrent use.
type Journal struct {
	mu     sync.RWMutex
	events journal.StorableEvents
	logger journal.Logger
}

// Option defines a functional option for configuring the Journal.
type Option func(*Journal)

// WithLogger sets the logger, operations are logged at info level.
func WithLogger(logger journal.Logger) Option {
	return func(j *Journal) {
		j.logger = logger
	}
}

// NewJournal creates an empty in-memory journal.
func NewJournal(options ...Option) *Journal {
	j := &Journal{}

	for _, option := range options {
		option(j)
	}

	return j
}

// Append stores the events in the given order and assigns their sequence numbers.
func (j *Journal) Append(ctx context.Context, events ...journal.StorableEvent) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(journal.ErrAppendingEventFailed, err)
	}

	if len(events) == 0 {
		return nil
	}

	j.mu.Lock()
	next := uint(len(j.events)) + 1
	for i, event := range events {
		j.events = append(j.events, event.WithSequenceNumber(next+uint(i)))
	}
	j.mu.Unlock()

	if j.logger != nil {
		j.logger.Info(logMsgEventsAppended, logAttrEventCount, len(events))
	}

	return nil
}

// Query returns the events matching filter ordered by sequence number.
func (j *Journal) Query(ctx context.Context, filter journal.Filter) (
	journal.StorableEvents,
	journal.MaxSequenceNumberUint,
	error,
) {

	if err := ctx.Err(); err != nil {
		return nil, 0, errors.Join(journal.ErrQueryingEventsFailed, err)
	}

	j.mu.RLock()
	snapshot := slices.Clone(j.events)
	j.mu.RUnlock()

	result := make(journal.StorableEvents, 0)
	maxSequenceNumber := journal.MaxSequenceNumberUint(0)

	for _, event := range snapshot {
		matches, err := filter.Matches(event)
		if err != nil {
			if j.logger != nil {
				j.logger.Error(logMsgFilterEvalFailed, logAttrError, err.Error(), logAttrEventType, event.EventType)
			}

			return nil, 0, errors.Join(journal.ErrQueryingEventsFailed, err)
		}

		if matches {
			result = append(result, event)
			maxSequenceNumber = event.SequenceNumber
		}
	}

	if j.logger != nil {
		j.logger.Info(logMsgQueryCompleted, logAttrEventCount, len(result))
	}

	return result, maxSequenceNumber, nil
}

// Len returns the number of stored events.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return len(j.events)
}

var _ journal.Journal = (*Journal)(nil)

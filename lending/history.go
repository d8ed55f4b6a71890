package lending

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/lending-library-go/core"
	"github.com/AntonStoeckl/lending-library-go/journal"
)

// journalEvents appends events to the journal if one is configured.
// Failures are logged and counted, the returned error wraps ErrJournalingFailed.
func (s *Service) journalEvents(ctx context.Context, events ...core.DomainEvent) error {
	if s.journal == nil || len(events) == 0 {
		return nil
	}

	storableEvents, err := StorableEventsFrom(events)
	if err == nil {
		err = s.journal.Append(ctx, storableEvents...)
	}

	if err != nil {
		s.logError(ctx, LogMsgJournalingFailed, err, LogAttrEventCount, len(events))
		s.incrementCounter(ctx, MetricJournalingErrors, map[string]string{LabelErrorKind: errorKindOf(err)})

		return errors.Join(ErrJournalingFailed, err)
	}

	return nil
}

// History returns the journaled events of the item identified by itemID, oldest first.
// Rejected requests for itemID are included, even if itemID never resolved to an item.
func (s *Service) History(ctx context.Context, itemID string) (core.DomainEvents, error) {
	predicates := []journal.FilterPredicate{journal.P("ItemID", itemID)}

	if item, err := s.resolveItem(itemID); err == nil {
		predicates = append(predicates, journal.P("ItemKey", string(item.Key())))
	}

	filter := journal.BuildEventFilter().
		Matching().
		AnyPredicateOf(predicates[0], predicates[1:]...).
		Finalize()

	return s.queryJournal(ctx, filter)
}

// BorrowerHistory returns the journaled events concerning the borrower, oldest first.
func (s *Service) BorrowerHistory(ctx context.Context, borrowerID core.BorrowerIDString) (core.DomainEvents, error) {
	filter := journal.BuildEventFilter().
		Matching().
		AnyPredicateOf(journal.P("BorrowerID", borrowerID)).
		Finalize()

	return s.queryJournal(ctx, filter)
}

// LateReturns returns all journaled returns that came with a late fee, oldest first.
func (s *Service) LateReturns(ctx context.Context) ([]core.ItemReturned, error) {
	filter := journal.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.ItemReturnedEventType).
		Finalize()

	events, err := s.queryJournal(ctx, filter)
	if err != nil {
		return nil, err
	}

	lateReturns := make([]core.ItemReturned, 0)
	for _, event := range events {
		if returned, ok := event.(core.ItemReturned); ok && returned.DaysLate > 0 {
			lateReturns = append(lateReturns, returned)
		}
	}

	return lateReturns, nil
}

func (s *Service) queryJournal(ctx context.Context, filter journal.Filter) (core.DomainEvents, error) {
	if s.journal == nil {
		return nil, ErrNoJournalConfigured
	}

	storableEvents, _, err := s.journal.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	return DomainEventsFrom(storableEvents)
}

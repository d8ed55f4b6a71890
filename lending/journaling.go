package lending

import (
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/lending-library-go/core"
	"github.com/AntonStoeckl/lending-library-go/journal"
)

var (
	// ErrMappingToStorableEventFailed is returned when a domain event or its metadata can't be serialized.
	ErrMappingToStorableEventFailed = errors.New("mapping to storable event failed")

	// ErrMappingToEventMetadataFailed is returned when metadata conversion fails.
	ErrMappingToEventMetadataFailed = errors.New("mapping to event metadata failed")

	// ErrUnknownEventType is returned for journaled events of an unrecognized type.
	ErrUnknownEventType = errors.New("unknown event type")
)

// MessageID represents a unique message identifier.
type MessageID = string

// CausationID represents the ID of the message that caused this event.
type CausationID = string

// CorrelationID represents the ID correlating all events of one request.
type CorrelationID = string

// EventMetadata contains event tracking information, journaled next to each payload.
type EventMetadata struct {
	MessageID     MessageID
	CausationID   CausationID
	CorrelationID CorrelationID
}

// BuildEventMetadata creates EventMetadata from UUID values.
func BuildEventMetadata(messageID uuid.UUID, causationID uuid.UUID, correlationID uuid.UUID) EventMetadata {
	return EventMetadata{
		MessageID:     messageID.String(),
		CausationID:   causationID.String(),
		CorrelationID: correlationID.String(),
	}
}

// EventMetadataFrom extracts EventMetadata from a StorableEvent.
func EventMetadataFrom(storableEvent journal.StorableEvent) (EventMetadata, error) {
	metadata := new(EventMetadata)

	err := jsoniter.ConfigFastest.Unmarshal(storableEvent.MetadataJSON, metadata)
	if err != nil {
		return EventMetadata{}, errors.Join(ErrMappingToEventMetadataFailed, err)
	}

	return *metadata, nil
}

// StorableEventFrom converts a DomainEvent and EventMetadata to a StorableEvent.
func StorableEventFrom(event core.DomainEvent, metadata EventMetadata) (journal.StorableEvent, error) {
	payloadJSON, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(event)
	if err != nil {
		return journal.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailed, err)
	}

	metadataJSON, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(metadata)
	if err != nil {
		return journal.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailed, err)
	}

	storableEvent, err := journal.BuildStorableEvent(event.IsEventType(), event.HasOccurredAt(), payloadJSON, metadataJSON)
	if err != nil {
		return journal.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailed, err)
	}

	return storableEvent, nil
}

// StorableEventsFrom converts the events of one request. They share a correlation ID
// and each event is caused by the one before it, the first one by the request itself.
func StorableEventsFrom(events core.DomainEvents) (journal.StorableEvents, error) {
	correlationID := uuid.New()
	causationID := correlationID

	storableEvents := make(journal.StorableEvents, 0, len(events))

	for _, event := range events {
		messageID := uuid.New()

		storableEvent, err := StorableEventFrom(event, BuildEventMetadata(messageID, causationID, correlationID))
		if err != nil {
			return nil, err
		}

		storableEvents = append(storableEvents, storableEvent)
		causationID = messageID
	}

	return storableEvents, nil
}

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents journal.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent journal.StorableEvent) (core.DomainEvent, error) {
	switch storableEvent.EventType {
	case core.ItemCheckedOutEventType:
		return unmarshalPayload[core.ItemCheckedOut](storableEvent.PayloadJSON)

	case core.ItemReturnedEventType:
		return unmarshalPayload[core.ItemReturned](storableEvent.PayloadJSON)

	case core.DueDateReminderIssuedEventType:
		return unmarshalPayload[core.DueDateReminderIssued](storableEvent.PayloadJSON)

	case core.OverdueNoticeIssuedEventType:
		return unmarshalPayload[core.OverdueNoticeIssued](storableEvent.PayloadJSON)

	case core.LendingRequestRejectedEventType:
		return unmarshalPayload[core.LendingRequestRejected](storableEvent.PayloadJSON)

	default:
		return nil, errors.Join(ErrMappingEventFailed, ErrUnknownEventType)
	}
}

func unmarshalPayload[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(E)

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload)
	if err != nil {
		return nil, errors.Join(ErrMappingEventFailed, err)
	}

	return *payload, nil
}

package journal

import (
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var ErrInvalidPayloadJSON = errors.New("payload json is not valid")
var ErrInvalidMetadataJSON = errors.New("metadata json is not valid")

// StorableEvents is an alias type for a slice of StorableEvent.
type StorableEvents = []StorableEvent

// StorableEvent is the DTO the journal engines store and return.
//
// It is built on scalars so that the engines stay agnostic of the domain event types.
// SequenceNumber is assigned by the engine on Append and is zero for events that were not stored yet.
//
// While its properties are exported, it should only be constructed with BuildStorableEvent
// or BuildStorableEventWithEmptyMetadata.
type StorableEvent struct {
	SequenceNumber uint
	EventType      string
	OccurredAt     time.Time
	PayloadJSON    []byte
	MetadataJSON   []byte
}

// BuildStorableEvent validates payloadJSON and metadataJSON and returns the StorableEvent.
func BuildStorableEvent(eventType string, occurredAt time.Time, payloadJSON []byte, metadataJSON []byte) (StorableEvent, error) {
	if !jsoniter.Valid(payloadJSON) {
		return StorableEvent{}, ErrInvalidPayloadJSON
	}

	if !jsoniter.Valid(metadataJSON) {
		return StorableEvent{}, ErrInvalidMetadataJSON
	}

	return StorableEvent{
		EventType:    eventType,
		OccurredAt:   occurredAt,
		PayloadJSON:  payloadJSON,
		MetadataJSON: metadataJSON,
	}, nil
}

// BuildStorableEventWithEmptyMetadata is BuildStorableEvent with "{}" as metadata.
func BuildStorableEventWithEmptyMetadata(eventType string, occurredAt time.Time, payloadJSON []byte) (StorableEvent, error) {
	return BuildStorableEvent(eventType, occurredAt, payloadJSON, []byte("{}"))
}

// WithSequenceNumber returns a copy of the event carrying the given sequence number.
func (e StorableEvent) WithSequenceNumber(sequenceNumber uint) StorableEvent {
	e.SequenceNumber = sequenceNumber

	return e
}

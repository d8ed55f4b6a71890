package core

import (
	"time"
)

// LendingRequestRejectedEventType is the event type identifier.
const LendingRequestRejectedEventType = "LendingRequestRejected"

// LendingRequestRejected represents a checkout or return request that failed a business rule.
// It is journaled but never shown to the borrower.
type LendingRequestRejected struct {
	EventType   EventTypeString
	Operation   string
	ItemID      string
	BorrowerID  BorrowerIDString
	FailureKind Kind
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildLendingRequestRejected creates a new LendingRequestRejected event from a domain error.
func BuildLendingRequestRejected(
	operation string,
	itemID string,
	borrowerID BorrowerIDString,
	err error,
	occurredAt time.Time,
) LendingRequestRejected {

	kind, _ := KindOf(err)

	return LendingRequestRejected{
		EventType:   LendingRequestRejectedEventType,
		Operation:   operation,
		ItemID:      itemID,
		BorrowerID:  borrowerID,
		FailureKind: kind,
		FailureInfo: err.Error(),
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e LendingRequestRejected) IsEventType() string {
	return LendingRequestRejectedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LendingRequestRejected) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected request.
func (e LendingRequestRejected) IsErrorEvent() bool {
	return true
}

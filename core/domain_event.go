package core

import (
	"time"
)

// DomainEvents is a slice of DomainEvent instances.
type DomainEvents = []DomainEvent

// DomainEvent represents a business event that has occurred in the lending domain.
type DomainEvent interface {
	// IsEventType returns the string identifier for this event type.
	IsEventType() string

	// HasOccurredAt returns when this event occurred.
	HasOccurredAt() time.Time

	// IsErrorEvent returns true if this event represents an error or failure condition.
	IsErrorEvent() bool
}

// BorrowerNotice is a DomainEvent the borrower is told about.
// The lending layer forwards it into the borrower's notification log.
type BorrowerNotice interface {
	DomainEvent

	// NoticeFor returns the borrower the notice is addressed to.
	NoticeFor() BorrowerIDString

	// NoticeMessage returns the text shown to the borrower.
	NoticeMessage() string
}

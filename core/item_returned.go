package core

import (
	"fmt"
	"time"
)

// ItemReturnedEventType is the event type identifier.
const ItemReturnedEventType = "ItemReturned"

// ItemReturned represents when a checked out book or series is returned.
// DaysLate and LateFee are informational, they are not kept as a balance.
type ItemReturned struct {
	EventType  EventTypeString
	ItemKey    ItemKey
	ItemKind   ItemKind
	Title      string
	BorrowerID BorrowerIDString
	LoanID     LoanIDString
	DueDate    string
	DaysLate   int
	LateFee    float64
	Message    string
	OccurredAt OccurredAtTS
}

// BuildItemReturned creates a new ItemReturned event.
func BuildItemReturned(
	item Item,
	checkedOut LifecycleState,
	daysLate int,
	lateFee float64,
	occurredAt time.Time,
) ItemReturned {

	return ItemReturned{
		EventType:  ItemReturnedEventType,
		ItemKey:    item.Key(),
		ItemKind:   item.Kind(),
		Title:      item.Title(),
		BorrowerID: checkedOut.Borrower().ID,
		LoanID:     checkedOut.LoanID(),
		DueDate:    FormatDate(checkedOut.DueDate()),
		DaysLate:   daysLate,
		LateFee:    lateFee,
		Message:    fmt.Sprintf("You have returned '%s'. Thank you!", item.Title()),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ItemReturned) IsEventType() string {
	return ItemReturnedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ItemReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e ItemReturned) IsErrorEvent() bool {
	return false
}

// NoticeFor returns the borrower who returned the item.
func (e ItemReturned) NoticeFor() BorrowerIDString {
	return e.BorrowerID
}

// NoticeMessage returns the return confirmation.
func (e ItemReturned) NoticeMessage() string {
	return e.Message
}

package core

import (
	"fmt"
	"time"
)

// ItemCheckedOutEventType is the event type identifier.
const ItemCheckedOutEventType = "ItemCheckedOut"

// ItemCheckedOut represents when a book or series is checked out to a borrower.
type ItemCheckedOut struct {
	EventType    EventTypeString
	ItemKey      ItemKey
	ItemKind     ItemKind
	Title        string
	BorrowerID   BorrowerIDString
	BorrowerName string
	LoanID       LoanIDString
	LoanDays     int
	DueDate      string
	Message      string
	OccurredAt   OccurredAtTS
}

// BuildItemCheckedOut creates a new ItemCheckedOut event.
func BuildItemCheckedOut(
	item Item,
	borrower BorrowerRef,
	loanID LoanIDString,
	loanDays int,
	dueDate time.Time,
	occurredAt time.Time,
) ItemCheckedOut {

	return ItemCheckedOut{
		EventType:    ItemCheckedOutEventType,
		ItemKey:      item.Key(),
		ItemKind:     item.Kind(),
		Title:        item.Title(),
		BorrowerID:   borrower.ID,
		BorrowerName: borrower.Name,
		LoanID:       loanID,
		LoanDays:     loanDays,
		DueDate:      FormatDate(dueDate),
		Message:      fmt.Sprintf("You have borrowed '%s'. Due date: %s", item.Title(), FormatDate(dueDate)),
		OccurredAt:   ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ItemCheckedOut) IsEventType() string {
	return ItemCheckedOutEventType
}

// HasOccurredAt returns when this event occurred.
func (e ItemCheckedOut) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e ItemCheckedOut) IsErrorEvent() bool {
	return false
}

// NoticeFor returns the borrower who checked the item out.
func (e ItemCheckedOut) NoticeFor() BorrowerIDString {
	return e.BorrowerID
}

// NoticeMessage returns the checkout confirmation.
func (e ItemCheckedOut) NoticeMessage() string {
	return e.Message
}

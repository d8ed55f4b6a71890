package core

import (
	"fmt"
	"time"
)

// DueDateReminderIssuedEventType is the event type identifier.
const DueDateReminderIssuedEventType = "DueDateReminderIssued"

// DueDateReminderIssued represents a reminder that a checked out item is due in two days.
type DueDateReminderIssued struct {
	EventType  EventTypeString
	ItemKey    ItemKey
	ItemKind   ItemKind
	Title      string
	BorrowerID BorrowerIDString
	DueDate    string
	Message    string
	OccurredAt OccurredAtTS
}

// BuildDueDateReminderIssued creates a new DueDateReminderIssued event.
func BuildDueDateReminderIssued(item Item, checkedOut LifecycleState, occurredAt time.Time) DueDateReminderIssued {
	dueDate := FormatDate(checkedOut.DueDate())

	return DueDateReminderIssued{
		EventType:  DueDateReminderIssuedEventType,
		ItemKey:    item.Key(),
		ItemKind:   item.Kind(),
		Title:      item.Title(),
		BorrowerID: checkedOut.Borrower().ID,
		DueDate:    dueDate,
		Message: fmt.Sprintf(
			"REMINDER: %s '%s' is due in %d days (Due: %s)",
			noticeSubject(item), item.Title(), reminderDaysAhead, dueDate),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e DueDateReminderIssued) IsEventType() string {
	return DueDateReminderIssuedEventType
}

// HasOccurredAt returns when this event occurred.
func (e DueDateReminderIssued) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e DueDateReminderIssued) IsErrorEvent() bool {
	return false
}

// NoticeFor returns the borrower holding the item.
func (e DueDateReminderIssued) NoticeFor() BorrowerIDString {
	return e.BorrowerID
}

// NoticeMessage returns the reminder text.
func (e DueDateReminderIssued) NoticeMessage() string {
	return e.Message
}

// noticeSubject returns "Book" or "Book series", as used in due date notices.
func noticeSubject(item Item) string {
	if item.Kind() == KindSeries {
		return "Book series"
	}

	return "Book"
}

package core

import (
	"fmt"
	"time"
)

// OverdueNoticeIssuedEventType is the event type identifier.
const OverdueNoticeIssuedEventType = "OverdueNoticeIssued"

// OverdueNoticeIssued represents a notice that a checked out item is due today or overdue.
type OverdueNoticeIssued struct {
	EventType   EventTypeString
	ItemKey     ItemKey
	ItemKind    ItemKind
	Title       string
	BorrowerID  BorrowerIDString
	DueDate     string
	DaysOverdue int
	Message     string
	OccurredAt  OccurredAtTS
}

// BuildOverdueNoticeIssued creates a new OverdueNoticeIssued event.
func BuildOverdueNoticeIssued(item Item, checkedOut LifecycleState, occurredAt time.Time) OverdueNoticeIssued {
	dueDate := FormatDate(checkedOut.DueDate())

	return OverdueNoticeIssued{
		EventType:   OverdueNoticeIssuedEventType,
		ItemKey:     item.Key(),
		ItemKind:    item.Kind(),
		Title:       item.Title(),
		BorrowerID:  checkedOut.Borrower().ID,
		DueDate:     dueDate,
		DaysOverdue: -checkedOut.DaysUntilDue(occurredAt),
		Message: fmt.Sprintf(
			"OVERDUE: %s '%s' was due on %s. Please return it as soon as possible.",
			noticeSubject(item), item.Title(), dueDate),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e OverdueNoticeIssued) IsEventType() string {
	return OverdueNoticeIssuedEventType
}

// HasOccurredAt returns when this event occurred.
func (e OverdueNoticeIssued) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false, an overdue notice is a regular outcome of a sweep.
func (e OverdueNoticeIssued) IsErrorEvent() bool {
	return false
}

// NoticeFor returns the borrower holding the item.
func (e OverdueNoticeIssued) NoticeFor() BorrowerIDString {
	return e.BorrowerID
}

// NoticeMessage returns the overdue text.
func (e OverdueNoticeIssued) NoticeMessage() string {
	return e.Message
}

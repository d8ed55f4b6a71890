package core

import (
	"fmt"
	"slices"
	"sync"
	"time"
)

const notificationTimestampLayout = "2006-01-02 15:04:05"

// Notification is one entry of a borrower's notification log.
type Notification struct {
	Message   string
	EventType EventTypeString
	At        time.Time
}

// String renders the notification as "[timestamp] message".
func (n Notification) String() string {
	return fmt.Sprintf("[%s] %s", n.At.Format(notificationTimestampLayout), n.Message)
}

// NotificationLog is an ordered, append-only log deduplicated by message content.
// The zero value is ready to use and safe for concurrent use.
type NotificationLog struct {
	mu      sync.Mutex
	entries []Notification
	seen    map[string]struct{}
}

// Append adds n unless a notification with the same message is already logged.
// It reports whether n was appended.
func (l *NotificationLog) Append(n Notification) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.seen == nil {
		l.seen = make(map[string]struct{})
	}

	if _, duplicate := l.seen[n.Message]; duplicate {
		return false
	}

	l.seen[n.Message] = struct{}{}
	l.entries = append(l.entries, n)

	return true
}

// Entries returns a copy of all notifications in append order.
func (l *NotificationLog) Entries() []Notification {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.entries)
}

// Len returns the number of logged notifications.
func (l *NotificationLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}

// Clear empties the log, previously seen messages can be logged again afterward.
func (l *NotificationLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
	l.seen = nil
}

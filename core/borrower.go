package core

import (
	"slices"
	"sync"
)

// Borrower can check out items and receives notifications about them.
//
// The borrowed list only contains books checked out individually, books lent as part
// of a series are not tracked there.
type Borrower struct {
	id   BorrowerIDString
	name string

	mu       sync.RWMutex
	borrowed []*Book

	notifications NotificationLog
}

// NewBorrower creates a borrower without borrowed books or notifications.
func NewBorrower(id BorrowerIDString, name string) *Borrower {
	return &Borrower{id: id, name: name}
}

// ID returns the borrower ID.
func (b *Borrower) ID() BorrowerIDString { return b.id }

// Name returns the borrower's name.
func (b *Borrower) Name() string { return b.name }

// Ref returns the reference a CheckedOut state keeps.
func (b *Borrower) Ref() BorrowerRef {
	return BorrowerRef{ID: b.id, Name: b.name}
}

// BorrowedBooks returns a copy of the individually borrowed books.
func (b *Borrower) BorrowedBooks() []*Book {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return slices.Clone(b.borrowed)
}

// Holds returns the number of individually borrowed books.
func (b *Borrower) Holds() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.borrowed)
}

// HasBorrowed reports whether the book with the given ISBN is in the borrowed list.
func (b *Borrower) HasBorrowed(isbn ISBNString) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return slices.ContainsFunc(b.borrowed, func(book *Book) bool { return book.ISBN() == isbn })
}

// RecordBorrowed adds a book to the borrowed list, a book already listed is not added twice.
func (b *Borrower) RecordBorrowed(book *Book) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if slices.Contains(b.borrowed, book) {
		return
	}

	b.borrowed = append(b.borrowed, book)
}

// RemoveBorrowed removes the book with the given ISBN and reports whether it was listed.
func (b *Borrower) RemoveBorrowed(isbn ISBNString) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	before := len(b.borrowed)
	b.borrowed = slices.DeleteFunc(b.borrowed, func(book *Book) bool { return book.ISBN() == isbn })

	return len(b.borrowed) < before
}

// Notify appends the notice to the notification log unless the same message is already there.
// It reports whether the notice was appended.
func (b *Borrower) Notify(notice BorrowerNotice) bool {
	return b.notifications.Append(Notification{
		Message:   notice.NoticeMessage(),
		EventType: notice.IsEventType(),
		At:        notice.HasOccurredAt(),
	})
}

// Notifications returns a copy of the notification log.
func (b *Borrower) Notifications() []Notification {
	return b.notifications.Entries()
}

// ClearNotifications empties the notification log.
func (b *Borrower) ClearNotifications() {
	b.notifications.Clear()
}

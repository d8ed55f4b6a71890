package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/lending-library-go/core"
)

func Test_Borrower_BorrowedBooks(t *testing.T) {
	// arrange
	borrower := core.NewBorrower("B001", "Alice")
	dune := givenFictionBook("111-1111111111", core.Unformatted)
	cosmos := givenNonFictionBook("222-2222222222", core.Unformatted)

	// act
	borrower.RecordBorrowed(dune)
	borrower.RecordBorrowed(cosmos)
	borrower.RecordBorrowed(dune)

	// assert
	assert.Equal(t, 2, borrower.Holds())
	assert.True(t, borrower.HasBorrowed("111-1111111111"))

	// act
	removed := borrower.RemoveBorrowed("111-1111111111")
	removedAgain := borrower.RemoveBorrowed("111-1111111111")

	// assert
	assert.True(t, removed)
	assert.False(t, removedAgain)
	assert.Equal(t, []*core.Book{cosmos}, borrower.BorrowedBooks())
}

func Test_Borrower_Notify_ForwardsNoticeOnce(t *testing.T) {
	// arrange
	borrower := core.NewBorrower("B001", "Alice")
	book := givenFictionBook("111-1111111111", core.Unformatted)
	givenCheckedOut(t, book, 10, fakeNow)
	reminder, issued := core.DecideDueDateNotice(book, fakeNow.AddDate(0, 0, 8))
	assert.True(t, issued)

	// act
	first := borrower.Notify(reminder)
	second := borrower.Notify(reminder)

	// assert
	assert.True(t, first)
	assert.False(t, second)

	notifications := borrower.Notifications()
	assert.Len(t, notifications, 1)
	assert.Equal(t, core.DueDateReminderIssuedEventType, notifications[0].EventType)
	assert.Equal(t, reminder.NoticeMessage(), notifications[0].Message)

	// act
	borrower.ClearNotifications()

	// assert
	assert.Empty(t, borrower.Notifications())
}

func Test_Borrower_Ref(t *testing.T) {
	borrower := core.NewBorrower("B001", "Alice")

	assert.Equal(t, alice, borrower.Ref())
}

package core_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-library-go/core"
)

func Test_DecideCheckOut_Success_WhenAvailable(t *testing.T) {
	// arrange
	book := givenFictionBook("123-1234567890", core.Unformatted)

	// act
	transition, err := core.DecideCheckOut(book, alice, 21, fakeNow, "loan-1")

	// assert
	require.NoError(t, err)
	assert.True(t, book.IsAvailable(), "deciding must not mutate the item")
	assert.Equal(t, core.StatusCheckedOut, transition.To().Status())
	assert.Equal(t, "2025-03-31", core.FormatDate(transition.To().DueDate()))
	assert.Equal(t, alice, transition.To().Borrower())
	assert.Equal(t, "loan-1", transition.To().LoanID())

	event, ok := transition.Event().(core.ItemCheckedOut)
	require.True(t, ok)
	assert.Equal(t, core.ItemCheckedOutEventType, event.EventType)
	assert.Equal(t, core.BookKey("123-1234567890"), event.ItemKey)
	assert.Equal(t, "B001", event.NoticeFor())
	assert.Equal(t, "You have borrowed 'Dune'. Due date: 2025-03-31", event.NoticeMessage())
	assert.Equal(t, 21, event.LoanDays)
	assert.False(t, event.IsErrorEvent())
}

func Test_DecideCheckOut_Apply_ReplacesState(t *testing.T) {
	// arrange
	book := givenFictionBook("123-1234567890", core.Unformatted)
	transition, err := core.DecideCheckOut(book, alice, 7, fakeNow, "loan-1")
	require.NoError(t, err)

	// act
	transition.Apply()

	// assert
	assert.False(t, book.IsAvailable())
	assert.Equal(t, "Checked out to Alice until 2025-03-17", book.State().StatusDisplay())
}

func Test_DecideCheckOut_Error_WhenAlreadyCheckedOut(t *testing.T) {
	// arrange
	book := givenFictionBook("123-1234567890", core.Unformatted)
	givenCheckedOut(t, book, 21, fakeNow)
	stateBefore := book.State()

	// act
	_, err := core.DecideCheckOut(book, core.BorrowerRef{ID: "B002", Name: "Bob"}, 5, fakeNow, "loan-2")

	// assert
	assert.True(t, core.IsInvalidTransition(err))
	assert.EqualError(t, err, "Book is already checked out")
	assert.Equal(t, stateBefore, book.State())
}

func Test_DecideCheckOut_Error_WhenSeriesAlreadyCheckedOut(t *testing.T) {
	// arrange
	series := givenSeriesWith(t, "LOTR", givenFictionBook("111-1111111111", core.Unformatted))
	givenCheckedOut(t, series, 10, fakeNow)

	// act
	_, err := core.DecideCheckOut(series, alice, 5, fakeNow, "loan-2")

	// assert
	assert.True(t, core.IsInvalidTransition(err))
	assert.EqualError(t, err, "Series is already checked out")
}

func Test_DecideCheckOut_Error_WhenLoanPeriodExceedsMaximum(t *testing.T) {
	// arrange
	book := givenFictionBook("123-1234567890", core.Unformatted)

	// act
	_, err := core.DecideCheckOut(book, alice, 22, fakeNow, "loan-1")

	// assert
	assert.True(t, core.IsPolicyViolation(err))
	assert.EqualError(t, err, "Maximum loan period exceeded for this book type")
	assert.True(t, book.IsAvailable())
}

func Test_DecideCheckOut_Respects_MaxLoanDays_ForAllTypesAndFormats(t *testing.T) {
	bookTypes := []core.BookType{core.Fiction, core.NonFiction}
	formats := []core.Format{core.Unformatted, core.Hardcover, core.Paperback, core.Digital}

	for _, bookType := range bookTypes {
		for _, format := range formats {
			t.Run(fmt.Sprintf("%s_%s", bookType, format), func(t *testing.T) {
				for days := 1; days <= 40; days++ {
					// arrange
					book := core.NewBook("Title", "Author", "123-1234567890", 2000, bookType, format)

					// act
					transition, err := core.DecideCheckOut(book, alice, days, fakeNow, "loan")

					// assert
					if days > book.MaxLoanDays() {
						assert.True(t, core.IsPolicyViolation(err), "days=%d", days)
						assert.True(t, book.IsAvailable(), "days=%d", days)
						continue
					}

					require.NoError(t, err, "days=%d", days)
					transition.Apply()
					assert.False(t, book.IsAvailable(), "days=%d", days)
				}
			})
		}
	}
}

func Test_DecideReturn_Error_WhenAvailable(t *testing.T) {
	// arrange
	book := givenFictionBook("123-1234567890", core.Unformatted)

	// act
	_, err := core.DecideReturn(book, fakeNow)

	// assert
	assert.True(t, core.IsInvalidTransition(err))
	assert.EqualError(t, err, "Cannot return an available book")
}

func Test_DecideReturn_Error_WhenSeriesAvailable(t *testing.T) {
	// arrange
	series := givenSeriesWith(t, "LOTR", givenFictionBook("111-1111111111", core.Unformatted))

	// act
	_, err := core.DecideReturn(series, fakeNow)

	// assert
	assert.True(t, core.IsInvalidTransition(err))
	assert.EqualError(t, err, "Series is not checked out")
}

func Test_DecideReturn_Success_OnTime(t *testing.T) {
	// arrange
	book := givenFictionBook("123-1234567890", core.Unformatted)
	givenCheckedOut(t, book, 21, fakeNow)

	// act
	transition, err := core.DecideReturn(book, fakeNow.AddDate(0, 0, 21))

	// assert
	require.NoError(t, err)
	transition.Apply()
	assert.True(t, book.IsAvailable())

	event, ok := transition.Event().(core.ItemReturned)
	require.True(t, ok)
	assert.Equal(t, 0, event.DaysLate)
	assert.InDelta(t, 0.0, event.LateFee, 0.0001)
	assert.Equal(t, "You have returned 'Dune'. Thank you!", event.NoticeMessage())
	assert.Equal(t, "B001", event.NoticeFor())
}

func Test_DecideReturn_Success_Late_ComputesFormatAdjustedFee(t *testing.T) {
	// arrange
	book := givenNonFictionBook("123-1234567890", core.Paperback)
	givenCheckedOut(t, book, 14, fakeNow)

	// act
	transition, err := core.DecideReturn(book, fakeNow.AddDate(0, 0, 17))

	// assert
	require.NoError(t, err)

	event, ok := transition.Event().(core.ItemReturned)
	require.True(t, ok)
	assert.Equal(t, 3, event.DaysLate)
	assert.InDelta(t, 3*0.75*1.2, event.LateFee, 0.0001)
}

func Test_CheckOutThenReturn_CyclesAvailability(t *testing.T) {
	// arrange
	book := givenFictionBook("123-1234567890", core.Unformatted)

	for i := 0; i < 3; i++ {
		// act
		checkout, err := core.DecideCheckOut(book, alice, 10, fakeNow, "loan")
		require.NoError(t, err)
		checkout.Apply()

		// assert
		assert.False(t, book.IsAvailable())

		// act
		ret, err := core.DecideReturn(book, fakeNow)
		require.NoError(t, err)
		ret.Apply()

		// assert
		assert.True(t, book.IsAvailable())
		assert.Equal(t, core.BorrowerRef{}, book.State().Borrower())
		assert.True(t, book.State().DueDate().IsZero())
	}
}

func Test_DecideDueDateNotice(t *testing.T) {
	testCases := []struct {
		description   string
		sweepAfter    int
		expectedType  string
		expectedIssue bool
	}{
		{description: "three days before due date", sweepAfter: 7, expectedIssue: false},
		{description: "two days before due date", sweepAfter: 8, expectedIssue: true, expectedType: core.DueDateReminderIssuedEventType},
		{description: "one day before due date", sweepAfter: 9, expectedIssue: false},
		{description: "on due date", sweepAfter: 10, expectedIssue: true, expectedType: core.OverdueNoticeIssuedEventType},
		{description: "after due date", sweepAfter: 15, expectedIssue: true, expectedType: core.OverdueNoticeIssuedEventType},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// arrange
			book := givenFictionBook("123-1234567890", core.Unformatted)
			givenCheckedOut(t, book, 10, fakeNow)

			// act
			notice, issued := core.DecideDueDateNotice(book, fakeNow.AddDate(0, 0, tc.sweepAfter))

			// assert
			assert.Equal(t, tc.expectedIssue, issued)
			if tc.expectedIssue {
				assert.Equal(t, tc.expectedType, notice.IsEventType())
				assert.Equal(t, "B001", notice.NoticeFor())
			}
		})
	}
}

func Test_DecideDueDateNotice_Messages(t *testing.T) {
	// arrange
	book := givenFictionBook("123-1234567890", core.Unformatted)
	series := givenSeriesWith(t, "LOTR", givenFictionBook("111-1111111111", core.Unformatted))
	givenCheckedOut(t, book, 10, fakeNow)
	givenCheckedOut(t, series, 10, fakeNow)
	reminderDay := fakeNow.AddDate(0, 0, 8)
	overdueDay := fakeNow.AddDate(0, 0, 12)

	// act
	bookReminder, _ := core.DecideDueDateNotice(book, reminderDay)
	bookOverdue, _ := core.DecideDueDateNotice(book, overdueDay)
	seriesReminder, _ := core.DecideDueDateNotice(series, reminderDay)
	seriesOverdue, _ := core.DecideDueDateNotice(series, overdueDay)

	// assert
	assert.Equal(t, "REMINDER: Book 'Dune' is due in 2 days (Due: 2025-03-20)", bookReminder.NoticeMessage())
	assert.Equal(t, "OVERDUE: Book 'Dune' was due on 2025-03-20. Please return it as soon as possible.", bookOverdue.NoticeMessage())
	assert.Equal(t, "REMINDER: Book series 'LOTR' is due in 2 days (Due: 2025-03-20)", seriesReminder.NoticeMessage())
	assert.Equal(t, "OVERDUE: Book series 'LOTR' was due on 2025-03-20. Please return it as soon as possible.", seriesOverdue.NoticeMessage())

	overdue, ok := bookOverdue.(core.OverdueNoticeIssued)
	require.True(t, ok)
	assert.Equal(t, 2, overdue.DaysOverdue)
}

func Test_DecideDueDateNotice_NoNotice_WhenAvailable(t *testing.T) {
	// arrange
	book := givenFictionBook("123-1234567890", core.Unformatted)

	// act
	notice, issued := core.DecideDueDateNotice(book, fakeNow.Add(48*time.Hour))

	// assert
	assert.False(t, issued)
	assert.Nil(t, notice)
}

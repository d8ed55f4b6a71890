package lending_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-library-go/core"
	"github.com/AntonStoeckl/lending-library-go/internal/sampledata"
	"github.com/AntonStoeckl/lending-library-go/testutil/fixtures"
)

func Test_Registry_AddBook_Validation(t *testing.T) {
	testCases := []struct {
		name     string
		title    string
		author   string
		isbn     string
		year     int
		bookType core.BookType
		message  string
	}{
		{name: "blank title", title: "  ", author: "A", isbn: isbnDune, year: 1965, bookType: core.Fiction,
			message: "Title cannot be empty"},
		{name: "blank author", title: "Dune", author: "", isbn: isbnDune, year: 1965, bookType: core.Fiction,
			message: "Author cannot be empty"},
		{name: "malformed isbn", title: "Dune", author: "A", isbn: "1231234567890", year: 1965, bookType: core.Fiction,
			message: "Invalid ISBN format. Use XXX-XXXXXXXXXX format"},
		{name: "year in the future", title: "Dune", author: "A", isbn: isbnDune, year: 2026, bookType: core.Fiction,
			message: "Invalid year. Must be between 1000 and 2025"},
		{name: "year too early", title: "Dune", author: "A", isbn: isbnDune, year: 999, bookType: core.Fiction,
			message: "Invalid year. Must be between 1000 and 2025"},
		{name: "unknown type", title: "Dune", author: "A", isbn: isbnDune, year: 1965, bookType: core.BookType(0),
			message: "Invalid book type"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			library := fixtures.GivenLibrary(t)

			// act
			_, err := library.Registry.AddBook(
				context.Background(), tc.title, tc.author, tc.isbn, tc.year, tc.bookType, core.Unformatted)

			// assert
			assert.True(t, core.IsValidation(err))
			assert.EqualError(t, err, tc.message)
			assert.Empty(t, library.Registry.AllBooks())
		})
	}
}

func Test_Registry_AddBook_Duplicate_ISBN(t *testing.T) {
	// arrange
	library, _, _ := givenDuneLibrary(t)

	// act
	_, err := library.Registry.AddBook(
		context.Background(), "Another Dune", "Someone", isbnDune, 2000, core.Fiction, core.Digital)

	// assert
	assert.True(t, core.IsAlreadyExists(err))
	assert.EqualError(t, err, "Book with ISBN 123-1234567890 already exists")
	assert.Len(t, library.Registry.AllBooks(), 1)
}

func Test_Registry_CreateBookCopy(t *testing.T) {
	// arrange
	ctx := context.Background()
	library := fixtures.GivenSeededLibrary(t)
	givenCheckedOut(t, library, sampledata.ISBNGreatGatsby, sampledata.BorrowerJohn, 14)

	// act
	bookCopy, err := library.Registry.CreateBookCopy(ctx, sampledata.ISBNGreatGatsby, "123-1234567899", 2004)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "The Great Gatsby", bookCopy.Title())
	assert.Equal(t, "F. Scott Fitzgerald", bookCopy.Author())
	assert.Equal(t, core.Fiction, bookCopy.Type())
	assert.Equal(t, core.Hardcover, bookCopy.Format())
	assert.Equal(t, "123-1234567899", bookCopy.ISBN())
	assert.Equal(t, 2004, bookCopy.Year())
	assert.True(t, bookCopy.IsAvailable())

	found, err := library.Registry.FindItem("123-1234567899")
	require.NoError(t, err)
	assert.Same(t, bookCopy, found)
}

func Test_Registry_CreateBookCopy_Failures(t *testing.T) {
	// arrange
	ctx := context.Background()
	library := fixtures.GivenSeededLibrary(t)

	// act
	_, unknownErr := library.Registry.CreateBookCopy(ctx, "999-9999999999", "123-1234567899", 2004)
	_, malformedErr := library.Registry.CreateBookCopy(ctx, sampledata.ISBNGreatGatsby, "123", 2004)
	_, duplicateErr := library.Registry.CreateBookCopy(ctx, sampledata.ISBNGreatGatsby, sampledata.ISBNCleanCode, 2004)

	// assert
	assert.True(t, core.IsNotFound(unknownErr))
	assert.EqualError(t, unknownErr, "Book not found")
	assert.True(t, core.IsValidation(malformedErr))
	assert.True(t, core.IsAlreadyExists(duplicateErr))
}

func Test_Registry_Series_Membership(t *testing.T) {
	// arrange
	ctx := context.Background()
	library := fixtures.GivenSeededLibrary(t)

	// act
	_, blankErr := library.Registry.CreateSeries(ctx, " ")
	_, duplicateErr := library.Registry.CreateSeries(ctx, lotr)
	unknownSeriesErr := library.Registry.AddBookToSeries(ctx, "Unknown", sampledata.ISBNCleanCode)
	unknownBookErr := library.Registry.AddBookToSeries(ctx, lotr, "999-9999999999")
	duplicateMemberErr := library.Registry.AddBookToSeries(ctx, lotr, sampledata.ISBNFellowship)
	selfErr := library.Registry.AddSeriesToSeries(ctx, lotr, lotr)

	// assert
	assert.EqualError(t, blankErr, "Series title cannot be empty")
	assert.True(t, core.IsAlreadyExists(duplicateErr))
	assert.EqualError(t, duplicateErr, "Series already exists")
	assert.True(t, core.IsNotFound(unknownSeriesErr))
	assert.EqualError(t, unknownSeriesErr, "Series not found")
	assert.True(t, core.IsNotFound(unknownBookErr))
	assert.EqualError(t, unknownBookErr, "Book not found")
	assert.True(t, core.IsAlreadyExists(duplicateMemberErr))
	assert.True(t, core.IsValidation(selfErr))

	series, _ := library.Catalog.FindSeriesByTitle(lotr)
	assert.Len(t, series.Members(), 2)
}

func Test_Registry_AddBookToSeries_While_Checked_Out(t *testing.T) {
	// arrange
	ctx := context.Background()
	library := fixtures.GivenSeededLibrary(t)
	givenCheckedOut(t, library, lotr, sampledata.BorrowerJohn, 14)

	// act
	err := library.Registry.AddBookToSeries(ctx, lotr, sampledata.ISBNCleanCode)

	// assert
	assert.True(t, core.IsInvalidTransition(err))
	assert.EqualError(t, err, "Cannot add items to series 'The Lord of the Rings' while it is checked out")
}

func Test_Registry_AddSeriesToSeries_Rejects_Cycles(t *testing.T) {
	// arrange
	ctx := context.Background()
	library := fixtures.GivenSeededLibrary(t)
	givenSeries(t, library, "Middle-earth")
	require.NoError(t, library.Registry.AddSeriesToSeries(ctx, "Middle-earth", lotr), "error in arranging test data")

	// act
	err := library.Registry.AddSeriesToSeries(ctx, lotr, "Middle-earth")

	// assert
	assert.True(t, core.IsValidation(err))
}

func Test_Registry_AddSeriesToSeries_Concurrent_Opposite_Nesting_Never_Builds_A_Cycle(t *testing.T) {
	ctx := context.Background()
	library := fixtures.GivenSeededLibrary(t)

	for i := 0; i < 50; i++ {
		// arrange
		first := fmt.Sprintf("First %d", i)
		second := fmt.Sprintf("Second %d", i)
		givenSeries(t, library, first)
		givenSeries(t, library, second)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		start := make(chan struct{})

		// act
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			errs[0] = library.Registry.AddSeriesToSeries(ctx, first, second)
		}()
		go func() {
			defer wg.Done()
			<-start
			errs[1] = library.Registry.AddSeriesToSeries(ctx, second, first)
		}()
		close(start)
		wg.Wait()

		// assert
		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.True(t, core.IsValidation(err), "iteration %d: %v", i, err)
		}
		assert.Equal(t, 1, succeeded, "iteration %d", i)
	}
}

func Test_Registry_AddBorrower(t *testing.T) {
	// arrange
	ctx := context.Background()
	library := fixtures.GivenSeededLibrary(t)

	// act
	_, malformedErr := library.Registry.AddBorrower(ctx, "b003", "Lower Case")
	_, blankNameErr := library.Registry.AddBorrower(ctx, "B003", "")
	_, duplicateErr := library.Registry.AddBorrower(ctx, sampledata.BorrowerJohn, "Another John")
	borrower, err := library.Registry.AddBorrower(ctx, "C042", "Carol")

	// assert
	assert.True(t, core.IsValidation(malformedErr))
	assert.EqualError(t, blankNameErr, "Name cannot be empty")
	assert.True(t, core.IsAlreadyExists(duplicateErr))
	assert.EqualError(t, duplicateErr, "Borrower ID already exists")
	require.NoError(t, err)
	assert.Equal(t, "C042", borrower.ID())
	assert.Equal(t, "Carol", borrower.Name())
}

func Test_Registry_Lookups(t *testing.T) {
	// arrange
	library := fixtures.GivenSeededLibrary(t)

	// act
	series, seriesErr := library.Registry.FindItem(lotr)
	_, unknownErr := library.Registry.FindItem("nothing")
	tolkien, searchErr := library.Registry.SearchBooks("TOLKIEN")
	_, blankSearchErr := library.Registry.SearchBooks(" ")

	// assert
	require.NoError(t, seriesErr)
	assert.Equal(t, core.KindSeries, series.Kind())
	assert.True(t, core.IsNotFound(unknownErr))
	require.NoError(t, searchErr)
	assert.Len(t, tolkien, 2)
	assert.EqualError(t, blankSearchErr, "Search term cannot be empty")
	assert.Len(t, library.Registry.AllBooks(), 4)
	assert.Len(t, library.Registry.AllSeries(), 1)
}

func Test_Registry_Borrower_Views(t *testing.T) {
	// arrange
	library := fixtures.GivenSeededLibrary(t)
	givenCheckedOut(t, library, sampledata.ISBNCleanCode, sampledata.BorrowerJane, 7)

	// act
	borrowed, err := library.Registry.BorrowedBooks(sampledata.BorrowerJane)
	require.NoError(t, err)
	notifications, err := library.Registry.Notifications(sampledata.BorrowerJane)
	require.NoError(t, err)
	clearErr := library.Registry.ClearNotifications(sampledata.BorrowerJane)
	afterClear, _ := library.Registry.Notifications(sampledata.BorrowerJane)
	_, unknownErr := library.Registry.BorrowedBooks("Z999")

	// assert
	require.Len(t, borrowed, 1)
	assert.Equal(t, sampledata.ISBNCleanCode, borrowed[0].ISBN())
	require.Len(t, notifications, 1)
	assert.Equal(t, core.ItemCheckedOutEventType, notifications[0].EventType)
	assert.Equal(t, "[2025-03-10 09:30:00] You have borrowed 'Clean Code'. Due date: 2025-03-17", notifications[0].String())
	assert.NoError(t, clearErr)
	assert.Empty(t, afterClear)
	assert.True(t, core.IsNotFound(unknownErr))
}

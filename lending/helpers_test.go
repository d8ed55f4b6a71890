package lending_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-library-go/catalog"
	"github.com/AntonStoeckl/lending-library-go/core"
	"github.com/AntonStoeckl/lending-library-go/lending"
	"github.com/AntonStoeckl/lending-library-go/testutil/fixtures"
)

var _ lending.Catalog = (*catalog.Catalog)(nil)

const (
	isbnDune     = "123-1234567890"
	isbnMessiah  = "123-1234567891"
	isbnChildren = "123-1234567892"
	isbnCosmos   = "456-4567890123"
	alice        = "B001"
	bob          = "B002"
)

func givenBook(
	t testing.TB,
	library *fixtures.Library,
	title string,
	isbn string,
	bookType core.BookType,
	format core.Format,
) *core.Book {

	t.Helper()

	book, err := library.Registry.AddBook(context.Background(), title, "Some Author", isbn, 1970, bookType, format)
	require.NoError(t, err, "error in arranging test data")

	return book
}

func givenBorrower(t testing.TB, library *fixtures.Library, id string, name string) *core.Borrower {
	t.Helper()

	borrower, err := library.Registry.AddBorrower(context.Background(), id, name)
	require.NoError(t, err, "error in arranging test data")

	return borrower
}

func givenSeries(t testing.TB, library *fixtures.Library, title string, isbns ...string) *core.Series {
	t.Helper()

	series, err := library.Registry.CreateSeries(context.Background(), title)
	require.NoError(t, err, "error in arranging test data")

	for _, isbn := range isbns {
		require.NoError(t, library.Registry.AddBookToSeries(context.Background(), title, isbn), "error in arranging test data")
	}

	return series
}

func givenCheckedOut(t testing.TB, library *fixtures.Library, itemID string, borrowerID string, days int) lending.CheckoutResult {
	t.Helper()

	result, err := library.Service.CheckoutItem(context.Background(), itemID, borrowerID, days)
	require.NoError(t, err, "error in arranging test data")

	return result
}

// givenDuneLibrary is a library with Alice and an unformatted Fiction book "Dune".
func givenDuneLibrary(t testing.TB, options ...lending.Option) (*fixtures.Library, *core.Book, *core.Borrower) {
	t.Helper()

	library := fixtures.GivenLibrary(t, options...)
	book := givenBook(t, library, "Dune", isbnDune, core.Fiction, core.Unformatted)
	borrower := givenBorrower(t, library, alice, "Alice")

	return library, book, borrower
}

func messagesOf(notifications []core.Notification) []string {
	messages := make([]string, 0, len(notifications))
	for _, n := range notifications {
		messages = append(messages, n.Message)
	}

	return messages
}

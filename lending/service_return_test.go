package lending_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-library-go/core"
	"github.com/AntonStoeckl/lending-library-go/internal/sampledata"
	"github.com/AntonStoeckl/lending-library-go/testutil/fixtures"
)

func Test_ReturnItem_On_Time(t *testing.T) {
	// arrange
	ctx := context.Background()
	library, book, borrower := givenDuneLibrary(t)
	checkout := givenCheckedOut(t, library, isbnDune, alice, 14)
	library.Clock.AdvanceDays(14)

	// act
	receipt, err := library.Service.ReturnItem(ctx, isbnDune)

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.BookKey(isbnDune), receipt.ItemKey)
	assert.Equal(t, "Dune", receipt.Title)
	assert.Equal(t, alice, receipt.BorrowerID)
	assert.Equal(t, checkout.LoanID, receipt.LoanID)
	assert.Equal(t, checkout.DueDate, receipt.DueDate)
	assert.True(t, library.Clock.Now().Equal(receipt.ReturnedAt))
	assert.False(t, receipt.IsLate())
	assert.Zero(t, receipt.LateFee)

	assert.True(t, book.IsAvailable())
	assert.Zero(t, borrower.Holds())
	assert.Contains(t, messagesOf(borrower.Notifications()), "You have returned 'Dune'. Thank you!")
}

func Test_ReturnItem_Late_Charges_The_Formatted_Fee(t *testing.T) {
	// arrange
	ctx := context.Background()
	library := fixtures.GivenSeededLibrary(t)
	givenCheckedOut(t, library, sampledata.ISBNGreatGatsby, sampledata.BorrowerJohn, 28)
	library.Clock.AdvanceDays(38)

	// act
	receipt, err := library.Service.ReturnItem(ctx, sampledata.ISBNGreatGatsby)

	// assert
	require.NoError(t, err)
	assert.True(t, receipt.IsLate())
	assert.Equal(t, 10, receipt.DaysLate)
	assert.InDelta(t, 7.5, receipt.LateFee, 0.0001)
}

func Test_ReturnItem_Late_Fees_Per_Type_And_Format(t *testing.T) {
	testCases := []struct {
		name     string
		bookType core.BookType
		format   core.Format
		daysLate int
		fee      float64
	}{
		{name: "fiction", bookType: core.Fiction, format: core.Unformatted, daysLate: 4, fee: 2.0},
		{name: "non-fiction", bookType: core.NonFiction, format: core.Unformatted, daysLate: 4, fee: 3.0},
		{name: "non-fiction paperback", bookType: core.NonFiction, format: core.Paperback, daysLate: 10, fee: 9.0},
		{name: "fiction digital", bookType: core.Fiction, format: core.Digital, daysLate: 3, fee: 1.5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			library := fixtures.GivenLibrary(t)
			givenBorrower(t, library, alice, "Alice")
			givenBook(t, library, tc.name, isbnDune, tc.bookType, tc.format)
			givenCheckedOut(t, library, isbnDune, alice, 7)
			library.Clock.AdvanceDays(7 + tc.daysLate)

			// act
			receipt, err := library.Service.ReturnItem(context.Background(), isbnDune)

			// assert
			require.NoError(t, err)
			assert.Equal(t, tc.daysLate, receipt.DaysLate)
			assert.InDelta(t, tc.fee, receipt.LateFee, 0.0001)
		})
	}
}

func Test_ReturnItem_Available_Book(t *testing.T) {
	// arrange
	library, _, _ := givenDuneLibrary(t)

	// act
	_, err := library.Service.ReturnItem(context.Background(), isbnDune)

	// assert
	assert.True(t, core.IsInvalidTransition(err))
	assert.EqualError(t, err, "Cannot return an available book")
}

func Test_ReturnItem_Unknown_Item(t *testing.T) {
	// arrange
	library, _, _ := givenDuneLibrary(t)

	// act
	_, err := library.Service.ReturnItem(context.Background(), "Unknown Series")

	// assert
	assert.True(t, core.IsNotFound(err))
	assert.EqualError(t, err, "Item not found")
}

func Test_ReturnItem_Then_Checkout_Again_Gets_A_New_Loan(t *testing.T) {
	// arrange
	ctx := context.Background()
	library, _, _ := givenDuneLibrary(t)
	first := givenCheckedOut(t, library, isbnDune, alice, 7)
	_, err := library.Service.ReturnItem(ctx, isbnDune)
	require.NoError(t, err, "error in arranging test data")

	// act
	second, err := library.Service.CheckoutItem(ctx, isbnDune, alice, 7)

	// assert
	require.NoError(t, err)
	assert.NotEqual(t, first.LoanID, second.LoanID)
}

package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/lending-library-go/core"
)

func Test_ValidateISBN(t *testing.T) {
	assert.NoError(t, core.ValidateISBN("123-1234567890"))

	for _, invalid := range []string{"", "1231234567890", "12-1234567890", "123-123456789", "abc-1234567890", " 123-1234567890"} {
		err := core.ValidateISBN(invalid)
		assert.True(t, core.IsValidation(err), invalid)
		assert.EqualError(t, err, "Invalid ISBN format. Use XXX-XXXXXXXXXX format", invalid)
	}
}

func Test_ValidateID(t *testing.T) {
	assert.NoError(t, core.ValidateID("B001"))
	assert.NoError(t, core.ValidateID("Z999"))

	for _, invalid := range []string{"", "b001", "B01", "B0001", "BB01"} {
		assert.True(t, core.IsValidation(core.ValidateID(invalid)), invalid)
	}
}

func Test_ValidateYear(t *testing.T) {
	assert.NoError(t, core.ValidateYear(1000, fakeNow))
	assert.NoError(t, core.ValidateYear(2025, fakeNow))

	err := core.ValidateYear(2026, fakeNow)
	assert.True(t, core.IsValidation(err))
	assert.EqualError(t, err, "Invalid year. Must be between 1000 and 2025")
	assert.True(t, core.IsValidation(core.ValidateYear(999, fakeNow)))
}

func Test_ValidateLoanPeriod(t *testing.T) {
	assert.NoError(t, core.ValidateLoanPeriod(1, core.MaxLoanPeriodDays))
	assert.NoError(t, core.ValidateLoanPeriod(30, core.MaxLoanPeriodDays))

	tooShort := core.ValidateLoanPeriod(0, core.MaxLoanPeriodDays)
	assert.True(t, core.IsValidation(tooShort))
	assert.EqualError(t, tooShort, "Loan period must be between 1 and 30 days")

	tooLong := core.ValidateLoanPeriod(31, core.MaxLoanPeriodDays)
	assert.True(t, core.IsPolicyViolation(tooLong))
	assert.False(t, core.IsValidation(tooLong))
	assert.EqualError(t, tooLong, "Loan period must be between 1 and 30 days")
}

func Test_ValidateName(t *testing.T) {
	assert.NoError(t, core.ValidateName("Alice", "Name"))
	assert.EqualError(t, core.ValidateName("   ", "Name"), "Name cannot be empty")
}

func Test_ValidateBook(t *testing.T) {
	assert.NoError(t, core.ValidateBook("Dune", "Frank Herbert", "123-1234567890", 1965, core.Fiction, fakeNow))
	assert.True(t, core.IsValidation(core.ValidateBook("", "Frank Herbert", "123-1234567890", 1965, core.Fiction, fakeNow)))
	assert.True(t, core.IsValidation(core.ValidateBook("Dune", "Frank Herbert", "123", 1965, core.Fiction, fakeNow)))
	assert.True(t, core.IsValidation(core.ValidateBook("Dune", "Frank Herbert", "123-1234567890", 1965, core.BookType(0), fakeNow)))
}

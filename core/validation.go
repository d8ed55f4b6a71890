package core

import (
	"regexp"
	"strings"
	"time"
)

const (
	// MinPublicationYear is the earliest accepted publication year.
	MinPublicationYear = 1000

	// MinLoanPeriodDays is the shortest loan period.
	MinLoanPeriodDays = 1

	// MaxLoanPeriodDays is the default service-level cap on loan periods, type and format limits apply on top.
	MaxLoanPeriodDays = 30
)

var (
	isbnPattern = regexp.MustCompile(`^\d{3}-\d{10}$`)
	idPattern   = regexp.MustCompile(`^[A-Z]\d{3}$`)
)

// ValidateISBN checks the XXX-XXXXXXXXXX format.
func ValidateISBN(isbn string) error {
	if !isbnPattern.MatchString(isbn) {
		return ValidationError("Invalid ISBN format. Use XXX-XXXXXXXXXX format")
	}

	return nil
}

// ValidateID checks the format of borrower IDs: one uppercase letter followed by 3 digits.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return ValidationError("Invalid ID format. Use one uppercase letter followed by 3 digits (e.g., B001)")
	}

	return nil
}

// ValidateYear checks that year lies between MinPublicationYear and the current year of now.
func ValidateYear(year int, now time.Time) error {
	if year < MinPublicationYear || year > now.Year() {
		return ValidationError("Invalid year. Must be between %d and %d", MinPublicationYear, now.Year())
	}

	return nil
}

// ValidateLoanPeriod checks that days lies between MinLoanPeriodDays and maxDays.
// Fewer days are malformed input, more days break the lending policy.
func ValidateLoanPeriod(days int, maxDays int) error {
	if days < MinLoanPeriodDays {
		return ValidationError("Loan period must be between %d and %d days", MinLoanPeriodDays, maxDays)
	}

	if days > maxDays {
		return PolicyViolationError("Loan period must be between %d and %d days", MinLoanPeriodDays, maxDays)
	}

	return nil
}

// ValidateName checks that a name or title is not blank, field is used in the message.
func ValidateName(value string, field string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError("%s cannot be empty", field)
	}

	return nil
}

// ValidateBook validates all fields needed to create a book.
func ValidateBook(title string, author string, isbn string, year int, bookType BookType, now time.Time) error {
	if err := ValidateName(title, "Title"); err != nil {
		return err
	}

	if err := ValidateName(author, "Author"); err != nil {
		return err
	}

	if err := ValidateISBN(isbn); err != nil {
		return err
	}

	if err := ValidateYear(year, now); err != nil {
		return err
	}

	if !bookType.IsValid() {
		return ValidationError("Invalid book type")
	}

	return nil
}

package core

import (
	"time"
)

// ISBNString represents a book's ISBN, which is the unique key of a book.
type ISBNString = string

// BorrowerIDString represents a borrower identifier like "B001".
type BorrowerIDString = string

// SeriesTitleString represents a series title, which is the unique key of a series.
type SeriesTitleString = string

// LoanIDString identifies a single checkout, it is carried by the CheckedOut state.
type LoanIDString = string

// EventTypeString represents the type identifier of a domain event.
type EventTypeString = string

// OccurredAtTS represents when an event occurred.
type OccurredAtTS = time.Time

const dateLayout = "2006-01-02"

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}

// ToDay strips the time of day and returns the calendar date of t at midnight UTC.
func ToDay(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from -> to, negative if to is before from.
func DaysBetween(from time.Time, to time.Time) int {
	return int(ToDay(to).Sub(ToDay(from)).Hours() / 24)
}

// FormatDate renders a date in ISO format (YYYY-MM-DD).
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate parses an ISO date (YYYY-MM-DD) into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

package core

import (
	"strings"
)

// BookType determines a book's base maximum loan period and its daily late fee.
type BookType int

const (
	// Fiction books can be borrowed for 21 days and cost 0.50 per day late.
	Fiction BookType = iota + 1

	// NonFiction books can be borrowed for 14 days and cost 0.75 per day late.
	NonFiction
)

type bookTypeRule struct {
	name         string
	maxLoanDays  int
	dailyLateFee float64
}

var bookTypeRules = map[BookType]bookTypeRule{
	Fiction:    {name: "Fiction", maxLoanDays: 21, dailyLateFee: 0.50},
	NonFiction: {name: "NonFiction", maxLoanDays: 14, dailyLateFee: 0.75},
}

// MaxLoanDays returns the base maximum loan period in days.
func (t BookType) MaxLoanDays() int {
	return bookTypeRules[t].maxLoanDays
}

// DailyLateFee returns the base late fee per day.
func (t BookType) DailyLateFee() float64 {
	return bookTypeRules[t].dailyLateFee
}

// IsValid reports whether t is one of the known book types.
func (t BookType) IsValid() bool {
	_, ok := bookTypeRules[t]

	return ok
}

func (t BookType) String() string {
	if rule, ok := bookTypeRules[t]; ok {
		return rule.name
	}

	return "Unknown"
}

// ParseBookType accepts "fiction", "nonfiction" and "non-fiction" in any case.
func ParseBookType(s string) (BookType, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "") {
	case "fiction":
		return Fiction, nil
	case "nonfiction":
		return NonFiction, nil
	default:
		return 0, ValidationError("Invalid book type %q. Use fiction or non-fiction", s)
	}
}

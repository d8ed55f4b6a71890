package core

import (
	"fmt"
	"time"
)

// Status is the discriminator of LifecycleState.
type Status int

const (
	// StatusAvailable means the item can be checked out.
	StatusAvailable Status = iota

	// StatusCheckedOut means the item is lent to a borrower until a due date.
	StatusCheckedOut
)

func (s Status) String() string {
	if s == StatusCheckedOut {
		return "CheckedOut"
	}

	return "Available"
}

// BorrowerRef is how a CheckedOut state refers to its borrower.
type BorrowerRef struct {
	ID   BorrowerIDString
	Name string
}

// LifecycleState is a tagged variant: Available carries no data, CheckedOut carries borrower, due date and loan ID.
//
// It is a value type. Items own it and replace it wholesale on every transition.
// The fields are unexported, so an Available state can't hold a borrower or due date.
type LifecycleState struct {
	status   Status
	borrower BorrowerRef
	dueDate  time.Time
	loanID   LoanIDString
}

// Available returns the Available state.
func Available() LifecycleState {
	return LifecycleState{status: StatusAvailable}
}

// CheckedOut returns a CheckedOut state, the due date is normalized to a calendar day.
func CheckedOut(borrower BorrowerRef, dueDate time.Time, loanID LoanIDString) LifecycleState {
	return LifecycleState{
		status:   StatusCheckedOut,
		borrower: borrower,
		dueDate:  ToDay(dueDate),
		loanID:   loanID,
	}
}

// Status returns the discriminator.
func (s LifecycleState) Status() Status {
	return s.status
}

// IsAvailable reports whether the state is Available.
func (s LifecycleState) IsAvailable() bool {
	return s.status == StatusAvailable
}

// Borrower returns the borrower of a CheckedOut state, the zero BorrowerRef otherwise.
func (s LifecycleState) Borrower() BorrowerRef {
	return s.borrower
}

// DueDate returns the due date of a CheckedOut state, the zero time otherwise.
func (s LifecycleState) DueDate() time.Time {
	return s.dueDate
}

// LoanID returns the loan ID of a CheckedOut state, "" otherwise.
func (s LifecycleState) LoanID() LoanIDString {
	return s.loanID
}

// DaysUntilDue returns the calendar days from today until the due date, negative when overdue.
// It returns 0 for an Available state.
func (s LifecycleState) DaysUntilDue(today time.Time) int {
	if s.IsAvailable() {
		return 0
	}

	return DaysBetween(today, s.dueDate)
}

// StatusDisplay renders the state for humans, e.g. "Checked out to Alice until 2025-01-21".
func (s LifecycleState) StatusDisplay() string {
	if s.IsAvailable() {
		return "Available"
	}

	return fmt.Sprintf("Checked out to %s until %s", s.borrower.Name, FormatDate(s.dueDate))
}

func (s LifecycleState) String() string {
	return s.StatusDisplay()
}

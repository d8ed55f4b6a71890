package core

import (
	"time"
)

// reminderDaysAhead is how many days before the due date a reminder is issued.
const reminderDaysAhead = 2

// Transition is the outcome of a successful decision: the next state of one item
// plus the event describing the change. Deciding never mutates the item, Apply does.
type Transition struct {
	item  Item
	from  LifecycleState
	to    LifecycleState
	event BorrowerNotice
}

// Item returns the item the transition applies to.
func (t Transition) Item() Item { return t.item }

// From returns the state the decision was based on.
func (t Transition) From() LifecycleState { return t.from }

// To returns the next state.
func (t Transition) To() LifecycleState { return t.to }

// Event returns the domain event describing the transition.
func (t Transition) Event() BorrowerNotice { return t.event }

// Apply replaces the item's state with the next state.
func (t Transition) Apply() {
	t.item.setState(t.to)
}

// DecideCheckOut decides whether item can be checked out to borrower for the given number of days.
//
// Business Rules:
//
//	GIVEN: an item in state Available
//	WHEN: it is checked out for days <= item.MaxLoanDays()
//	THEN: the next state is CheckedOut{borrower, today+days} and ItemCheckedOut is emitted
//	ERROR: KindInvalidTransition "<Book|Series> is already checked out" if the item is CheckedOut
//	ERROR: KindPolicyViolation "Maximum loan period exceeded for this book type" if days > item.MaxLoanDays()
func DecideCheckOut(
	item Item,
	borrower BorrowerRef,
	days int,
	now time.Time,
	loanID LoanIDString,
) (Transition, error) {

	state := item.State()

	if !state.IsAvailable() {
		return Transition{}, InvalidTransitionError("%s is already checked out", item.Kind().Label())
	}

	if days > item.MaxLoanDays() {
		return Transition{}, PolicyViolationError("Maximum loan period exceeded for this book type")
	}

	dueDate := ToDay(now).AddDate(0, 0, days)

	return Transition{
		item:  item,
		from:  state,
		to:    CheckedOut(borrower, dueDate, loanID),
		event: BuildItemCheckedOut(item, borrower, loanID, days, dueDate, now),
	}, nil
}

// DecideReturn decides whether item can be returned.
//
// Business Rules:
//
//	GIVEN: an item in state CheckedOut
//	WHEN: it is returned
//	THEN: the next state is Available and ItemReturned is emitted, carrying days late and late fee
//	ERROR: KindInvalidTransition if the item is Available
func DecideReturn(item Item, now time.Time) (Transition, error) {
	state := item.State()

	if state.IsAvailable() {
		if item.Kind() == KindSeries {
			return Transition{}, InvalidTransitionError("Series is not checked out")
		}

		return Transition{}, InvalidTransitionError("Cannot return an available book")
	}

	daysLate := max(0, -state.DaysUntilDue(now))

	var lateFee float64
	if daysLate > 0 {
		lateFee = item.LateFee(daysLate)
	}

	return Transition{
		item:  item,
		from:  state,
		to:    Available(),
		event: BuildItemReturned(item, state, daysLate, lateFee, now),
	}, nil
}

// DecideDueDateNotice checks a checked out item's due date against today.
//
// It returns a DueDateReminderIssued if exactly two days remain, an OverdueNoticeIssued
// if the item is due today or overdue, and nothing for Available items or any other distance.
// Issuing the same notice twice on one day yields the same message, the notification log drops the duplicate.
func DecideDueDateNotice(item Item, now time.Time) (BorrowerNotice, bool) {
	state := item.State()

	if state.IsAvailable() {
		return nil, false
	}

	switch daysUntilDue := state.DaysUntilDue(now); {
	case daysUntilDue == reminderDaysAhead:
		return BuildDueDateReminderIssued(item, state, now), true

	case daysUntilDue <= 0:
		return BuildOverdueNoticeIssued(item, state, now), true

	default:
		return nil, false
	}
}

package lending

import (
	"time"

	"github.com/AntonStoeckl/lending-library-go/core"
)

// Plan is the outcome of planning a series checkout or return: the transitions of all members
// in order, followed by the transition of the series itself. Planning never mutates, Commit does.
type Plan struct {
	series      *core.Series
	transitions []core.Transition
	notices     []core.BorrowerNotice
}

// Series returns the series the plan was made for.
func (p Plan) Series() *core.Series { return p.series }

// Transitions returns all planned transitions, members first, the series last.
func (p Plan) Transitions() []core.Transition {
	return append([]core.Transition(nil), p.transitions...)
}

// Events returns the events of all planned transitions in order. All of them are journaled.
func (p Plan) Events() core.DomainEvents {
	events := make(core.DomainEvents, 0, len(p.transitions))
	for _, transition := range p.transitions {
		events = append(events, transition.Event())
	}

	return events
}

// Notices returns the events the borrower is told about.
func (p Plan) Notices() []core.BorrowerNotice {
	return append([]core.BorrowerNotice(nil), p.notices...)
}

// SeriesEvent returns the event of the series-level transition.
func (p Plan) SeriesEvent() core.BorrowerNotice {
	return p.transitions[len(p.transitions)-1].Event()
}

// SeriesCoordinator plans and commits series checkouts and returns all-or-nothing.
//
// Each member is decided by its own rules, so members of mixed types and formats
// each get their own maximum loan period. Nested series are planned recursively.
// The caller must hold the locks of the series and all of its members from planning to Commit.
type SeriesCoordinator struct{}

// NewSeriesCoordinator creates a SeriesCoordinator.
func NewSeriesCoordinator() *SeriesCoordinator {
	return &SeriesCoordinator{}
}

// PlanCheckOut plans checking out series and all of its members to borrower.
//
// Business Rules:
//
//	GIVEN: an Available series whose members are all Available
//	WHEN: it is checked out for days
//	THEN: every member and the series become CheckedOut with the same borrower, due date and loan ID
//	NOTICE: the borrower is told once, about the series
//	ERROR: KindInvalidTransition "Series is already checked out"
//	ERROR: KindPolicyViolation "Not all items in series are available"
//	ERROR: KindPolicyViolation if the series is empty or days exceed a member's maximum loan period
func (c *SeriesCoordinator) PlanCheckOut(
	series *core.Series,
	borrower core.BorrowerRef,
	days int,
	now time.Time,
	loanID core.LoanIDString,
) (Plan, error) {

	transitions, err := c.planCheckOut(series, borrower, days, now, loanID)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{series: series, transitions: transitions}
	plan.notices = []core.BorrowerNotice{plan.SeriesEvent()}

	return plan, nil
}

func (c *SeriesCoordinator) planCheckOut(
	series *core.Series,
	borrower core.BorrowerRef,
	days int,
	now time.Time,
	loanID core.LoanIDString,
) ([]core.Transition, error) {

	if !series.IsAvailable() {
		return nil, core.InvalidTransitionError("Series is already checked out")
	}

	members := series.Members()
	if len(members) == 0 {
		return nil, core.PolicyViolationError("Series '%s' has no items to check out", series.Title())
	}

	if !series.AllMembersAvailable() {
		return nil, core.PolicyViolationError("Not all items in series are available")
	}

	transitions := make([]core.Transition, 0, len(members)+1)

	for _, member := range members {
		if nested, ok := member.(*core.Series); ok {
			nestedTransitions, err := c.planCheckOut(nested, borrower, days, now, loanID)
			if err != nil {
				return nil, err
			}

			transitions = append(transitions, nestedTransitions...)
			continue
		}

		transition, err := core.DecideCheckOut(member, borrower, days, now, loanID)
		if err != nil {
			return nil, err
		}

		transitions = append(transitions, transition)
	}

	seriesTransition, err := core.DecideCheckOut(series, borrower, days, now, loanID)
	if err != nil {
		return nil, err
	}

	return append(transitions, seriesTransition), nil
}

// PlanReturn plans returning series and all of its members.
//
// Business Rules:
//
//	GIVEN: a CheckedOut series whose members are held through it
//	WHEN: it is returned
//	THEN: every member becomes Available before the series does
//	NOTICE: the borrower is told about every member, then about the series
//	ERROR: KindInvalidTransition "Series is not checked out"
//	ERROR: KindInvalidTransition if a member is not held through the series, nothing is returned then
func (c *SeriesCoordinator) PlanReturn(series *core.Series, now time.Time) (Plan, error) {
	transitions, err := c.planReturn(series, series.State().LoanID(), now)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{series: series, transitions: transitions}
	for _, transition := range transitions {
		plan.notices = append(plan.notices, transition.Event())
	}

	return plan, nil
}

func (c *SeriesCoordinator) planReturn(
	series *core.Series,
	loanID core.LoanIDString,
	now time.Time,
) ([]core.Transition, error) {

	seriesTransition, err := core.DecideReturn(series, now)
	if err != nil {
		return nil, err
	}

	members := series.Members()
	transitions := make([]core.Transition, 0, len(members)+1)

	for _, member := range members {
		if member.State().LoanID() != loanID {
			return nil, core.InvalidTransitionError(
				"Cannot return series '%s': '%s' is not checked out with it", series.Title(), member.Title())
		}

		if nested, ok := member.(*core.Series); ok {
			nestedTransitions, err := c.planReturn(nested, loanID, now)
			if err != nil {
				return nil, err
			}

			transitions = append(transitions, nestedTransitions...)
			continue
		}

		transition, err := core.DecideReturn(member, now)
		if err != nil {
			return nil, err
		}

		transitions = append(transitions, transition)
	}

	return append(transitions, seriesTransition), nil
}

// Commit applies all transitions of plan in order.
func (c *SeriesCoordinator) Commit(plan Plan) {
	for _, transition := range plan.transitions {
		transition.Apply()
	}
}

// seriesLockKeys returns the keys of series and all of its members, nested members included.
func seriesLockKeys(series *core.Series) []string {
	keys := []string{string(series.Key())}

	for _, member := range series.Members() {
		if nested, ok := member.(*core.Series); ok {
			keys = append(keys, seriesLockKeys(nested)...)
			continue
		}

		keys = append(keys, string(member.Key()))
	}

	return keys
}

// memberKeys returns the keys of all members of series, nested series and their members included.
func memberKeys(series *core.Series) []core.ItemKey {
	keys := make([]core.ItemKey, 0)
	for _, key := range seriesLockKeys(series)[1:] {
		keys = append(keys, core.ItemKey(key))
	}

	return keys
}

// containsItem reports whether key is a direct or nested member of series.
func containsItem(series *core.Series, key core.ItemKey) bool {
	for _, member := range series.Members() {
		if member.Key() == key {
			return true
		}

		if nested, ok := member.(*core.Series); ok && containsItem(nested, key) {
			return true
		}
	}

	return false
}

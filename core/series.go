package core

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Series is an ordered composite of lendable items, checked out and returned as a unit.
// The title is its unique key.
//
// A series has its own lifecycle state, independent of its members' states,
// so members can be added after creation and keep individually correct due dates and late fees.
type Series struct {
	title SeriesTitleString

	mu      sync.RWMutex
	members []Item
	state   LifecycleState
}

// NewSeries creates an empty, Available series.
func NewSeries(title SeriesTitleString) *Series {
	return &Series{
		title: title,
		state: Available(),
	}
}

// Key returns the series' ItemKey.
func (s *Series) Key() ItemKey { return SeriesKey(s.title) }

// Kind returns KindSeries.
func (s *Series) Kind() ItemKind { return KindSeries }

// Title returns the title.
func (s *Series) Title() string { return s.title }

// Members returns a copy of the ordered member list.
func (s *Series) Members() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.members)
}

// AddMember appends an item to the series.
//
// It fails with KindInvalidTransition while the series is checked out,
// with KindAlreadyExists if the item is already a member,
// and with KindValidation if the item is the series itself or contains it.
func (s *Series) AddMember(item Item) error {
	if item.Key() == s.Key() {
		return ValidationError("A series cannot contain itself")
	}

	if nested, ok := item.(*Series); ok && nested.contains(s.Key()) {
		return ValidationError("Series '%s' already contains '%s'", nested.Title(), s.title)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsAvailable() {
		return InvalidTransitionError("Cannot add items to series '%s' while it is checked out", s.title)
	}

	for _, member := range s.members {
		if member.Key() == item.Key() {
			return AlreadyExistsError("'%s' is already part of series '%s'", item.Title(), s.title)
		}
	}

	s.members = append(s.members, item)

	return nil
}

// contains reports whether key is a direct or nested member of the series.
func (s *Series) contains(key ItemKey) bool {
	for _, member := range s.Members() {
		if member.Key() == key {
			return true
		}

		if nested, ok := member.(*Series); ok && nested.contains(key) {
			return true
		}
	}

	return false
}

// State returns a snapshot of the series' own lifecycle state.
func (s *Series) State() LifecycleState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// IsAvailable reports whether the series' own state is Available.
func (s *Series) IsAvailable() bool {
	return s.State().IsAvailable()
}

func (s *Series) setState(state LifecycleState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state
}

// AllMembersAvailable reports whether every member is Available.
func (s *Series) AllMembersAvailable() bool {
	for _, member := range s.Members() {
		if !member.IsAvailable() {
			return false
		}
	}

	return true
}

// MaxLoanDays returns the smallest maximum loan period of all members, 0 for an empty series.
// Each member still enforces its own limit when the series is checked out.
func (s *Series) MaxLoanDays() int {
	members := s.Members()
	if len(members) == 0 {
		return 0
	}

	limit := members[0].MaxLoanDays()
	for _, member := range members[1:] {
		limit = min(limit, member.MaxLoanDays())
	}

	return limit
}

// LateFee returns the sum of all members' late fees.
func (s *Series) LateFee(daysLate int) float64 {
	var fee float64
	for _, member := range s.Members() {
		fee += member.LateFee(daysLate)
	}

	return fee
}

// DisplayInfo renders the series with its status followed by its indented members.
func (s *Series) DisplayInfo() string {
	var info strings.Builder

	fmt.Fprintf(&info, "Series: %s\n", s.title)
	fmt.Fprintf(&info, "Status: %s\n", s.State().StatusDisplay())

	for _, member := range s.Members() {
		for _, line := range strings.Split(member.DisplayInfo(), "\n") {
			if line == "" {
				continue
			}
			info.WriteString("  " + line + "\n")
		}
	}

	return info.String()
}

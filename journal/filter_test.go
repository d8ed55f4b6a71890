package journal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-library-go/journal"
)

func Test_FilterBuilder_ValidCombinations(t *testing.T) {
	tests := []struct {
		name     string
		build    func() journal.Filter
		validate func(t *testing.T, filter journal.Filter)
	}{
		{
			name: "matching_any_event_creates_empty_filter",
			build: func() journal.Filter {
				return journal.BuildEventFilter().MatchingAnyEvent()
			},
			validate: func(t *testing.T, f journal.Filter) {
				assert.Empty(t, f.Items())
				assert.True(t, f.IsEmpty())
			},
		},
		{
			name: "event_types_are_sorted_and_deduplicated",
			build: func() journal.Filter {
				return journal.BuildEventFilter().
					Matching().
					AnyEventTypeOf("ItemReturned", "", "ItemCheckedOut", "ItemReturned").
					Finalize()
			},
			validate: func(t *testing.T, f journal.Filter) {
				require.Len(t, f.Items(), 1)
				assert.Equal(t, []string{"ItemCheckedOut", "ItemReturned"}, f.Items()[0].EventTypes())
				assert.Empty(t, f.Items()[0].Predicates())
			},
		},
		{
			name: "partial_predicates_are_dropped",
			build: func() journal.Filter {
				return journal.BuildEventFilter().
					Matching().
					AnyPredicateOf(journal.P("ItemKey", "book:1"), journal.P("", "x"), journal.P("BorrowerID", ""), journal.P("ItemKey", "book:1")).
					Finalize()
			},
			validate: func(t *testing.T, f journal.Filter) {
				require.Len(t, f.Items(), 1)
				assert.Equal(t, []journal.FilterPredicate{journal.P("ItemKey", "book:1")}, f.Items()[0].Predicates())
				assert.False(t, f.Items()[0].AllPredicatesMustMatch())
			},
		},
		{
			name: "event_types_and_all_predicates",
			build: func() journal.Filter {
				return journal.BuildEventFilter().
					Matching().
					AnyEventTypeOf("ItemCheckedOut").
					AndAllPredicatesOf(journal.P("ItemKey", "book:1"), journal.P("BorrowerID", "B001")).
					Finalize()
			},
			validate: func(t *testing.T, f journal.Filter) {
				require.Len(t, f.Items(), 1)
				assert.True(t, f.Items()[0].AllPredicatesMustMatch())
				assert.Equal(t, "BorrowerID", f.Items()[0].Predicates()[0].Key())
				assert.Equal(t, "ItemKey", f.Items()[0].Predicates()[1].Key())
			},
		},
		{
			name: "predicates_then_event_types_with_or_matching",
			build: func() journal.Filter {
				return journal.BuildEventFilter().
					Matching().
					AnyPredicateOf(journal.P("ItemKey", "book:1")).
					AndAnyEventTypeOf("ItemReturned").
					OrMatching().
					AnyEventTypeOf("OverdueNoticeIssued").
					Finalize()
			},
			validate: func(t *testing.T, f journal.Filter) {
				require.Len(t, f.Items(), 2)
				assert.Equal(t, []string{"ItemReturned"}, f.Items()[0].EventTypes())
				assert.Equal(t, []string{"OverdueNoticeIssued"}, f.Items()[1].EventTypes())
				assert.Empty(t, f.Items()[1].Predicates())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, tt.build())
		})
	}
}

func Test_FilterBuilder_DoesNotShareStateBetweenBranches(t *testing.T) {
	// arrange
	base := journal.BuildEventFilter().Matching().AnyEventTypeOf("ItemCheckedOut")

	// act
	first := base.AndAnyPredicateOf(journal.P("ItemKey", "book:1")).Finalize()
	second := base.AndAnyPredicateOf(journal.P("ItemKey", "book:2")).Finalize()

	// assert
	assert.Equal(t, "book:1", first.Items()[0].Predicates()[0].Val())
	assert.Equal(t, "book:2", second.Items()[0].Predicates()[0].Val())
	assert.Len(t, second.Items()[0].Predicates(), 1)
}

func Test_Filter_Matches(t *testing.T) {
	checkedOut := givenStorableEvent(t, "ItemCheckedOut", `{"ItemKey":"book:1","BorrowerID":"B001","LoanDays":7}`)
	returned := givenStorableEvent(t, "ItemReturned", `{"ItemKey":"book:1","BorrowerID":"B001"}`)
	otherItem := givenStorableEvent(t, "ItemCheckedOut", `{"ItemKey":"book:2","BorrowerID":"B002"}`)

	tests := []struct {
		name     string
		filter   journal.Filter
		expected []bool
	}{
		{
			name:     "empty filter matches everything",
			filter:   journal.BuildEventFilter().MatchingAnyEvent(),
			expected: []bool{true, true, true},
		},
		{
			name:     "event type only",
			filter:   journal.BuildEventFilter().Matching().AnyEventTypeOf("ItemReturned").Finalize(),
			expected: []bool{false, true, false},
		},
		{
			name: "event type and predicate",
			filter: journal.BuildEventFilter().Matching().
				AnyEventTypeOf("ItemCheckedOut").
				AndAnyPredicateOf(journal.P("ItemKey", "book:1")).
				Finalize(),
			expected: []bool{true, false, false},
		},
		{
			name: "any predicate",
			filter: journal.BuildEventFilter().Matching().
				AnyPredicateOf(journal.P("BorrowerID", "B002"), journal.P("ItemKey", "book:1")).
				Finalize(),
			expected: []bool{true, true, true},
		},
		{
			name: "all predicates",
			filter: journal.BuildEventFilter().Matching().
				AllPredicatesOf(journal.P("BorrowerID", "B002"), journal.P("ItemKey", "book:1")).
				Finalize(),
			expected: []bool{false, false, false},
		},
		{
			name: "non string payload values never match",
			filter: journal.BuildEventFilter().Matching().
				AnyPredicateOf(journal.P("LoanDays", "7")).
				Finalize(),
			expected: []bool{false, false, false},
		},
		{
			name: "or matching",
			filter: journal.BuildEventFilter().Matching().
				AnyEventTypeOf("ItemReturned").
				OrMatching().
				AnyPredicateOf(journal.P("ItemKey", "book:2")).
				Finalize(),
			expected: []bool{false, true, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, event := range []journal.StorableEvent{checkedOut, returned, otherItem} {
				matches, err := tt.filter.Matches(event)
				require.NoError(t, err)
				assert.Equal(t, tt.expected[i], matches, "event %d", i)
			}
		})
	}
}

func givenStorableEvent(t *testing.T, eventType string, payload string) journal.StorableEvent {
	t.Helper()

	event, err := journal.BuildStorableEventWithEmptyMetadata(eventType, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), []byte(payload))
	require.NoError(t, err)

	return event
}

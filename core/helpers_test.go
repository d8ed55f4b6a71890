package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-library-go/core"
)

var fakeNow = time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

var alice = core.BorrowerRef{ID: "B001", Name: "Alice"}

func givenFictionBook(isbn string, format core.Format) *core.Book {
	return core.NewBook("Dune", "Frank Herbert", isbn, 1965, core.Fiction, format)
}

func givenNonFictionBook(isbn string, format core.Format) *core.Book {
	return core.NewBook("Cosmos", "Carl Sagan", isbn, 1980, core.NonFiction, format)
}

func givenCheckedOut(t testing.TB, item core.Item, days int, at time.Time) {
	t.Helper()

	transition, err := core.DecideCheckOut(item, alice, days, at, "loan-"+string(item.Key()))
	require.NoError(t, err)
	transition.Apply()
}

func givenSeriesWith(t testing.TB, title string, members ...core.Item) *core.Series {
	t.Helper()

	series := core.NewSeries(title)
	for _, member := range members {
		require.NoError(t, series.AddMember(member))
	}

	return series
}

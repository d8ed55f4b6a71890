package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-library-go/core"
)

func Test_Series_AddMember_KeepsOrder(t *testing.T) {
	// arrange
	first := givenFictionBook("111-1111111111", core.Unformatted)
	second := givenFictionBook("222-2222222222", core.Unformatted)

	// act
	series := givenSeriesWith(t, "LOTR", first, second)

	// assert
	members := series.Members()
	require.Len(t, members, 2)
	assert.Same(t, first, members[0])
	assert.Same(t, second, members[1])
}

func Test_Series_AddMember_Errors(t *testing.T) {
	t.Run("duplicate member", func(t *testing.T) {
		book := givenFictionBook("111-1111111111", core.Unformatted)
		series := givenSeriesWith(t, "LOTR", book)

		err := series.AddMember(book)

		assert.True(t, core.IsAlreadyExists(err))
	})

	t.Run("series itself", func(t *testing.T) {
		series := core.NewSeries("LOTR")

		err := series.AddMember(series)

		assert.True(t, core.IsValidation(err))
	})

	t.Run("nested series containing the series", func(t *testing.T) {
		outer := core.NewSeries("Middle-earth")
		inner := givenSeriesWith(t, "LOTR", outer)

		err := outer.AddMember(inner)

		assert.True(t, core.IsValidation(err))
	})

	t.Run("series is checked out", func(t *testing.T) {
		series := givenSeriesWith(t, "LOTR", givenFictionBook("111-1111111111", core.Unformatted))
		givenCheckedOut(t, series, 5, fakeNow)

		err := series.AddMember(givenFictionBook("222-2222222222", core.Unformatted))

		assert.True(t, core.IsInvalidTransition(err))
		assert.Len(t, series.Members(), 1)
	})
}

func Test_Series_AllMembersAvailable(t *testing.T) {
	// arrange
	first := givenFictionBook("111-1111111111", core.Unformatted)
	second := givenFictionBook("222-2222222222", core.Unformatted)
	series := givenSeriesWith(t, "LOTR", first, second)

	// act & assert
	assert.True(t, series.AllMembersAvailable())

	givenCheckedOut(t, second, 5, fakeNow)
	assert.False(t, series.AllMembersAvailable())
	assert.True(t, series.IsAvailable(), "the series' own state is independent of its members")
}

func Test_Series_LateFee_IsSumOfMembers(t *testing.T) {
	// arrange
	hardcover := givenFictionBook("111-1111111111", core.Hardcover)
	nonFiction := givenNonFictionBook("222-2222222222", core.Unformatted)
	series := givenSeriesWith(t, "Mixed", hardcover, nonFiction)

	// act
	fee := series.LateFee(4)

	// assert
	assert.InDelta(t, 4*0.50*1.5+4*0.75, fee, 0.0001)
}

func Test_Series_MaxLoanDays_IsSmallestMemberLimit(t *testing.T) {
	// arrange
	series := givenSeriesWith(t, "Mixed",
		givenFictionBook("111-1111111111", core.Hardcover),
		givenNonFictionBook("222-2222222222", core.Paperback),
	)

	// act & assert
	assert.Equal(t, 17, series.MaxLoanDays())
	assert.Equal(t, 0, core.NewSeries("Empty").MaxLoanDays())
}

func Test_Series_DisplayInfo_IndentsMembers(t *testing.T) {
	// arrange
	series := givenSeriesWith(t, "LOTR", givenFictionBook("111-1111111111", core.Unformatted))

	// act
	info := series.DisplayInfo()

	// assert
	assert.Contains(t, info, "Series: LOTR\nStatus: Available\n")
	assert.Contains(t, info, "  Title: Dune\n")
	assert.Contains(t, info, "  Status: Available\n")
}

package core

// ItemKey uniquely identifies a lendable item across books and series, e.g. "book:123-1234567890".
type ItemKey string

// ItemKind tells books and series apart.
type ItemKind string

const (
	// KindBook identifies a single book.
	KindBook ItemKind = "book"

	// KindSeries identifies a series of items.
	KindSeries ItemKind = "series"
)

// Label returns the capitalized kind as used in user-facing messages.
func (k ItemKind) Label() string {
	if k == KindSeries {
		return "Series"
	}

	return "Book"
}

// BookKey builds the ItemKey of a book.
func BookKey(isbn ISBNString) ItemKey {
	return ItemKey(string(KindBook) + ":" + isbn)
}

// SeriesKey builds the ItemKey of a series.
func SeriesKey(title SeriesTitleString) ItemKey {
	return ItemKey(string(KindSeries) + ":" + title)
}

// Item is a lendable item: a *Book or a *Series.
//
// The interface is sealed, the lifecycle state can only be replaced by applying a Transition.
type Item interface {
	Key() ItemKey
	Kind() ItemKind
	Title() string
	State() LifecycleState
	IsAvailable() bool
	MaxLoanDays() int
	LateFee(daysLate int) float64
	DisplayInfo() string

	setState(state LifecycleState)
}

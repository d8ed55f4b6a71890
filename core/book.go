package core

import (
	"fmt"
	"strings"
	"sync"
)

// Book is a single lendable book. The ISBN is its unique key.
//
// Books are owned by the catalog and referenced by series and borrowers.
// All methods are safe for concurrent use.
type Book struct {
	title    string
	author   string
	isbn     ISBNString
	year     int
	bookType BookType

	mu     sync.RWMutex
	format Format
	state  LifecycleState
}

// NewBook creates an Available book. Input validation is the caller's job, see ValidateBook.
func NewBook(title string, author string, isbn ISBNString, year int, bookType BookType, format Format) *Book {
	return &Book{
		title:    title,
		author:   author,
		isbn:     isbn,
		year:     year,
		bookType: bookType,
		format:   format,
		state:    Available(),
	}
}

// CopyOf creates a new book from a template's title, author, type and format with a new ISBN and year.
// The copy starts Available and shares no checkout data with the template.
func CopyOf(template *Book, isbn ISBNString, year int) *Book {
	return NewBook(template.title, template.author, isbn, year, template.bookType, template.Format())
}

// Decorate sets the book's format and returns the same book.
// The lifecycle state is untouched, a checked out book stays checked out.
func (b *Book) Decorate(format Format) *Book {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.format = format

	return b
}

// Key returns the book's ItemKey.
func (b *Book) Key() ItemKey { return BookKey(b.isbn) }

// Kind returns KindBook.
func (b *Book) Kind() ItemKind { return KindBook }

// Title returns the title.
func (b *Book) Title() string { return b.title }

// Author returns the author.
func (b *Book) Author() string { return b.author }

// ISBN returns the ISBN.
func (b *Book) ISBN() ISBNString { return b.isbn }

// Year returns the publication year.
func (b *Book) Year() int { return b.year }

// Type returns the book type.
func (b *Book) Type() BookType { return b.bookType }

// Format returns the book's format.
func (b *Book) Format() Format {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.format
}

// State returns a snapshot of the lifecycle state.
func (b *Book) State() LifecycleState {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.state
}

// IsAvailable reports whether the book is Available.
func (b *Book) IsAvailable() bool {
	return b.State().IsAvailable()
}

func (b *Book) setState(state LifecycleState) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state = state
}

// BaseMaxLoanDays returns the type-derived maximum loan period without format adjustment.
func (b *Book) BaseMaxLoanDays() int {
	return b.bookType.MaxLoanDays()
}

// MaxLoanDays returns the maximum loan period including the format's bonus days.
func (b *Book) MaxLoanDays() int {
	return b.Format().AdjustMaxLoanDays(b.BaseMaxLoanDays())
}

// BaseLateFee returns the type-derived late fee without format adjustment.
func (b *Book) BaseLateFee(daysLate int) float64 {
	if daysLate <= 0 {
		return 0
	}

	return float64(daysLate) * b.bookType.DailyLateFee()
}

// LateFee returns the late fee including the format's multiplier.
func (b *Book) LateFee(daysLate int) float64 {
	return b.Format().AdjustLateFee(b.BaseLateFee(daysLate))
}

// DisplayInfo renders the book as a multi-line text block.
func (b *Book) DisplayInfo() string {
	var info strings.Builder

	fmt.Fprintf(&info, "Title: %s\n", b.title)
	fmt.Fprintf(&info, "Author: %s\n", b.author)
	fmt.Fprintf(&info, "ISBN: %s\n", b.isbn)
	fmt.Fprintf(&info, "Year: %d\n", b.year)
	fmt.Fprintf(&info, "Type: %s\n", b.bookType)

	if format := b.Format(); format != Unformatted {
		fmt.Fprintf(&info, "Format: %s\n", format)
	}

	fmt.Fprintf(&info, "Status: %s", b.State().StatusDisplay())

	return info.String()
}

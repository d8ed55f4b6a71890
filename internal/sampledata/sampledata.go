// Package sampledata seeds a catalog with the library's sample borrowers, books and series.
package sampledata

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/lending-library-go/core"
	"github.com/AntonStoeckl/lending-library-go/lending"
)

// Sample identifiers, handy for demos and tests.
const (
	BorrowerJohn = "B001"
	BorrowerJane = "B002"

	ISBNGreatGatsby = "123-1234567890"
	ISBNCleanCode   = "123-0987654321"
	ISBNFellowship  = "123-1111111111"
	ISBNTwoTowers   = "123-2222222222"

	SeriesLordOfTheRings = "The Lord of the Rings"
)

// ErrSeedingFailed wraps the first registration that failed.
var ErrSeedingFailed = errors.New("seeding sample data failed")

type sampleBook struct {
	title    string
	author   string
	isbn     string
	year     int
	bookType core.BookType
	format   core.Format
}

var sampleBooks = []sampleBook{
	{"The Great Gatsby", "F. Scott Fitzgerald", ISBNGreatGatsby, 1925, core.Fiction, core.Hardcover},
	{"Clean Code", "Robert C. Martin", ISBNCleanCode, 2008, core.NonFiction, core.Paperback},
	{"The Fellowship of the Ring", "J.R.R. Tolkien", ISBNFellowship, 1954, core.Fiction, core.Hardcover},
	{"The Two Towers", "J.R.R. Tolkien", ISBNTwoTowers, 1954, core.Fiction, core.Hardcover},
}

// Seed registers two borrowers, four books and a series containing two of them.
func Seed(ctx context.Context, registry *lending.Registry) error {
	if _, err := registry.AddBorrower(ctx, BorrowerJohn, "John Doe"); err != nil {
		return errors.Join(ErrSeedingFailed, err)
	}

	if _, err := registry.AddBorrower(ctx, BorrowerJane, "Jane Smith"); err != nil {
		return errors.Join(ErrSeedingFailed, err)
	}

	for _, b := range sampleBooks {
		if _, err := registry.AddBook(ctx, b.title, b.author, b.isbn, b.year, b.bookType, b.format); err != nil {
			return errors.Join(ErrSeedingFailed, err)
		}
	}

	if _, err := registry.CreateSeries(ctx, SeriesLordOfTheRings); err != nil {
		return errors.Join(ErrSeedingFailed, err)
	}

	for _, isbn := range []string{ISBNFellowship, ISBNTwoTowers} {
		if err := registry.AddBookToSeries(ctx, SeriesLordOfTheRings, isbn); err != nil {
			return errors.Join(ErrSeedingFailed, err)
		}
	}

	return nil
}

package lending

import (
	"context"

	"github.com/AntonStoeckl/lending-library-go/core"
)

// Registry registers books, series and borrowers and answers lookups.
// It validates all input before anything is stored and shares catalog, clock and locks with its Service.
type Registry struct {
	s *Service
}

// Registry returns the Registry working on the Service's catalog.
func (s *Service) Registry() *Registry {
	return &Registry{s: s}
}

// AddBook validates and stores a new, Available book.
func (r *Registry) AddBook(
	ctx context.Context,
	title string,
	author string,
	isbn core.ISBNString,
	year int,
	bookType core.BookType,
	format core.Format,
) (*core.Book, error) {

	if err := core.ValidateBook(title, author, isbn, year, bookType, r.s.clock()); err != nil {
		return nil, err
	}

	book := core.NewBook(title, author, isbn, year, bookType, format)
	if err := r.s.catalog.AddBook(book); err != nil {
		return nil, err
	}

	r.s.logInfo(ctx, LogMsgRegistered, LogAttrItemKey, string(book.Key()))

	return book, nil
}

// CreateBookCopy stores a new book with title, author, type and format of an existing one.
// The copy gets its own ISBN and year and starts Available, whatever the state of the original.
func (r *Registry) CreateBookCopy(
	ctx context.Context,
	existingISBN core.ISBNString,
	newISBN core.ISBNString,
	year int,
) (*core.Book, error) {

	template, found := r.s.catalog.FindBookByISBN(existingISBN)
	if !found {
		return nil, core.NotFoundError("Book not found")
	}

	if err := core.ValidateISBN(newISBN); err != nil {
		return nil, err
	}

	if err := core.ValidateYear(year, r.s.clock()); err != nil {
		return nil, err
	}

	book := core.CopyOf(template, newISBN, year)
	if err := r.s.catalog.AddBook(book); err != nil {
		return nil, err
	}

	r.s.logInfo(ctx, LogMsgRegistered, LogAttrItemKey, string(book.Key()))

	return book, nil
}

// CreateSeries stores a new, empty series.
func (r *Registry) CreateSeries(ctx context.Context, title core.SeriesTitleString) (*core.Series, error) {
	if err := core.ValidateName(title, "Series title"); err != nil {
		return nil, err
	}

	series := core.NewSeries(title)
	if err := r.s.catalog.AddSeries(series); err != nil {
		return nil, err
	}

	r.s.logInfo(ctx, LogMsgRegistered, LogAttrItemKey, string(series.Key()))

	return series, nil
}

// AddBookToSeries appends the book to the series. A checked out series takes no new members.
func (r *Registry) AddBookToSeries(ctx context.Context, seriesTitle core.SeriesTitleString, isbn core.ISBNString) error {
	series, found := r.s.catalog.FindSeriesByTitle(seriesTitle)
	if !found {
		return core.NotFoundError("Series not found")
	}

	book, found := r.s.catalog.FindBookByISBN(isbn)
	if !found {
		return core.NotFoundError("Book not found")
	}

	return r.addMember(ctx, series, book)
}

// AddSeriesToSeries nests the child series into the parent series.
func (r *Registry) AddSeriesToSeries(ctx context.Context, parentTitle, childTitle core.SeriesTitleString) error {
	parent, found := r.s.catalog.FindSeriesByTitle(parentTitle)
	if !found {
		return core.NotFoundError("Series not found")
	}

	child, found := r.s.catalog.FindSeriesByTitle(childTitle)
	if !found {
		return core.NotFoundError("Series not found")
	}

	return r.addMember(ctx, parent, child)
}

// addMember holds structureMu across the cycle check and the append, so two opposite nestings
// can't both pass the check. Item locks are taken after structureMu and never the other way round.
func (r *Registry) addMember(ctx context.Context, series *core.Series, member core.Item) error {
	r.s.structureMu.Lock()
	defer r.s.structureMu.Unlock()

	unlock := r.s.lock(ctx, string(series.Key()))
	defer unlock()

	if err := series.AddMember(member); err != nil {
		return err
	}

	r.s.logInfo(ctx, LogMsgRegistered, LogAttrItemKey, string(member.Key()), "series", series.Title())

	return nil
}

// AddBorrower validates and stores a new borrower.
func (r *Registry) AddBorrower(ctx context.Context, id core.BorrowerIDString, name string) (*core.Borrower, error) {
	if err := core.ValidateID(id); err != nil {
		return nil, err
	}

	if err := core.ValidateName(name, "Name"); err != nil {
		return nil, err
	}

	borrower := core.NewBorrower(id, name)
	if err := r.s.catalog.AddBorrower(borrower); err != nil {
		return nil, err
	}

	r.s.logInfo(ctx, LogMsgRegistered, LogAttrBorrowerID, id)

	return borrower, nil
}

// FindItem resolves itemID like the Service does, as an ISBN first and as a series title second.
func (r *Registry) FindItem(itemID string) (core.Item, error) {
	return r.s.resolveItem(itemID)
}

// SearchBooks returns the books whose title, author or ISBN contains term, ignoring case.
func (r *Registry) SearchBooks(term string) ([]*core.Book, error) {
	if err := core.ValidateName(term, "Search term"); err != nil {
		return nil, err
	}

	return r.s.catalog.SearchBooks(term), nil
}

// AllBooks returns all books in insertion order.
func (r *Registry) AllBooks() []*core.Book {
	return r.s.catalog.AllBooks()
}

// AllSeries returns all series in insertion order.
func (r *Registry) AllSeries() []*core.Series {
	return r.s.catalog.AllSeries()
}

// BorrowedBooks returns the books the borrower checked out individually.
func (r *Registry) BorrowedBooks(borrowerID core.BorrowerIDString) ([]*core.Book, error) {
	borrower, err := r.borrower(borrowerID)
	if err != nil {
		return nil, err
	}

	return borrower.BorrowedBooks(), nil
}

// Notifications returns the borrower's notification log.
func (r *Registry) Notifications(borrowerID core.BorrowerIDString) ([]core.Notification, error) {
	borrower, err := r.borrower(borrowerID)
	if err != nil {
		return nil, err
	}

	return borrower.Notifications(), nil
}

// ClearNotifications empties the borrower's notification log.
func (r *Registry) ClearNotifications(borrowerID core.BorrowerIDString) error {
	borrower, err := r.borrower(borrowerID)
	if err != nil {
		return err
	}

	borrower.ClearNotifications()

	return nil
}

func (r *Registry) borrower(id core.BorrowerIDString) (*core.Borrower, error) {
	borrower, found := r.s.catalog.FindBorrowerByID(id)
	if !found {
		return nil, core.NotFoundError("Borrower not found")
	}

	return borrower, nil
}

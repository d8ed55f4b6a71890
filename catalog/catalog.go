// Package catalog provides the in-memory entity store of the lending library.
//
// The Catalog keeps books, series and borrowers in insertion order. Every find and add is atomic,
// adds check for duplicates and insert under the same write lock.
// Search results are cached until the next book is added.
package catalog

import (
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/AntonStoeckl/lending-library-go/core"
)

const (
	defaultSearchCacheTTL     = 5 * time.Minute
	defaultSearchCacheCleanup = 10 * time.Minute
	searchCacheKeyPrefix      = "search:"
)

// Catalog is an in-memory store of books, series and borrowers, safe for concurrent use.
type Catalog struct {
	mu sync.RWMutex

	books       []*core.Book
	booksByISBN map[core.ISBNString]*core.Book

	series        []*core.Series
	seriesByTitle map[core.SeriesTitleString]*core.Series

	borrowers     []*core.Borrower
	borrowersByID map[core.BorrowerIDString]*core.Borrower

	searchCache    *cache.Cache
	searchCacheTTL time.Duration
}

// Option defines a functional option for configuring the Catalog.
type Option func(*Catalog)

// WithSearchCacheTTL sets how long search results are cached, 0 disables the cache.
func WithSearchCacheTTL(ttl time.Duration) Option {
	return func(c *Catalog) {
		c.searchCacheTTL = ttl
	}
}

// New creates an empty Catalog.
func New(options ...Option) *Catalog {
	c := &Catalog{
		booksByISBN:    make(map[core.ISBNString]*core.Book),
		seriesByTitle:  make(map[core.SeriesTitleString]*core.Series),
		borrowersByID:  make(map[core.BorrowerIDString]*core.Borrower),
		searchCacheTTL: defaultSearchCacheTTL,
	}

	for _, option := range options {
		option(c)
	}

	if c.searchCacheTTL > 0 {
		c.searchCache = cache.New(c.searchCacheTTL, defaultSearchCacheCleanup)
	}

	return c
}

// AddBook stores a book, it fails with core.KindAlreadyExists if the ISBN is taken.
func (c *Catalog) AddBook(book *core.Book) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.booksByISBN[book.ISBN()]; exists {
		return core.AlreadyExistsError("Book with ISBN %s already exists", book.ISBN())
	}

	c.books = append(c.books, book)
	c.booksByISBN[book.ISBN()] = book

	if c.searchCache != nil {
		c.searchCache.Flush()
	}

	return nil
}

// AddSeries stores a series, it fails with core.KindAlreadyExists if the title is taken.
func (c *Catalog) AddSeries(series *core.Series) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.seriesByTitle[series.Title()]; exists {
		return core.AlreadyExistsError("Series already exists")
	}

	c.series = append(c.series, series)
	c.seriesByTitle[series.Title()] = series

	return nil
}

// AddBorrower stores a borrower, it fails with core.KindAlreadyExists if the ID is taken.
func (c *Catalog) AddBorrower(borrower *core.Borrower) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.borrowersByID[borrower.ID()]; exists {
		return core.AlreadyExistsError("Borrower ID already exists")
	}

	c.borrowers = append(c.borrowers, borrower)
	c.borrowersByID[borrower.ID()] = borrower

	return nil
}

// FindBookByISBN returns the book with the given ISBN.
func (c *Catalog) FindBookByISBN(isbn core.ISBNString) (*core.Book, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	book, found := c.booksByISBN[isbn]

	return book, found
}

// FindSeriesByTitle returns the series with the given title.
func (c *Catalog) FindSeriesByTitle(title core.SeriesTitleString) (*core.Series, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	series, found := c.seriesByTitle[title]

	return series, found
}

// FindBorrowerByID returns the borrower with the given ID.
func (c *Catalog) FindBorrowerByID(id core.BorrowerIDString) (*core.Borrower, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	borrower, found := c.borrowersByID[id]

	return borrower, found
}

// SearchBooks returns all books whose title, author or ISBN contains term, ignoring case.
// Results keep insertion order.
func (c *Catalog) SearchBooks(term string) []*core.Book {
	needle := strings.ToLower(term)
	cacheKey := searchCacheKeyPrefix + needle

	if c.searchCache != nil {
		if cached, found := c.searchCache.Get(cacheKey); found {
			if books, ok := cached.([]*core.Book); ok {
				return append([]*core.Book(nil), books...)
			}
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*core.Book, 0)
	for _, book := range c.books {
		if matchesSearch(book, needle) {
			result = append(result, book)
		}
	}

	// still under the read lock, so AddBook can't flush in between
	if c.searchCache != nil {
		c.searchCache.SetDefault(cacheKey, append([]*core.Book(nil), result...))
	}

	return result
}

func matchesSearch(book *core.Book, needle string) bool {
	return strings.Contains(strings.ToLower(book.Title()), needle) ||
		strings.Contains(strings.ToLower(book.Author()), needle) ||
		strings.Contains(strings.ToLower(book.ISBN()), needle)
}

// AllBooks returns all books in insertion order.
func (c *Catalog) AllBooks() []*core.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]*core.Book(nil), c.books...)
}

// AllSeries returns all series in insertion order.
func (c *Catalog) AllSeries() []*core.Series {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]*core.Series(nil), c.series...)
}

// AllBorrowers returns all borrowers in insertion order.
func (c *Catalog) AllBorrowers() []*core.Borrower {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]*core.Borrower(nil), c.borrowers...)
}

package services

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/kerbaras/bookshelf/pkg/data"
)

// ErrDuplicateTitle is returned by Add and Edit when the catalog rejects
// duplicate titles and the title is already taken.
var ErrDuplicateTitle = errors.New("a book with this title already exists")

// DuplicatePolicy decides whether two books may share a title.
type DuplicatePolicy string

const (
	// DuplicatesAllow keeps every copy; title lookups reach only the first.
	DuplicatesAllow DuplicatePolicy = "allow"
	// DuplicatesReject refuses a second book with the same title.
	DuplicatesReject DuplicatePolicy = "reject"
)

func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", DuplicatesAllow:
		return DuplicatesAllow, nil
	case DuplicatesReject:
		return p, nil
	}
	return "", fmt.Errorf("unknown duplicate policy %q (want allow or reject)", s)
}

// Catalog is the ordered, persisted collection of books. Every mutation
// rewrites the whole storage before returning. It is not safe for
// concurrent use.
type Catalog struct {
	storage    data.Storage
	books      []data.Book
	duplicates DuplicatePolicy
	log        *slog.Logger
}

type Option func(*Catalog)

func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(c *Catalog) {
		c.duplicates = p
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) {
		c.log = l
	}
}

// NewCatalog loads every book from storage. When the storage does not exist
// yet it returns a usable empty catalog together with an error wrapping
// data.ErrStorageMissing, so callers can report it and carry on.
func NewCatalog(storage data.Storage, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		storage:    storage,
		duplicates: DuplicatesAllow,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	books, err := storage.Load()
	if errors.Is(err, data.ErrStorageMissing) {
		c.log.Warn("catalog storage missing, starting empty", "error", err)
		return c, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	c.books = books
	c.log.Debug("catalog loaded", "books", len(books))
	return c, nil
}

func (c *Catalog) Len() int {
	return len(c.books)
}

// Add appends book and persists. A zero ID is replaced with a fresh one.
func (c *Catalog) Add(book data.Book) error {
	if c.duplicates == DuplicatesReject && c.indexOfTitle(book.Title) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateTitle, book.Title)
	}
	if book.ID == uuid.Nil {
		book.ID = uuid.New()
	}
	if book.Status == "" {
		book.Status = data.StatusAvailable
	}

	c.books = append(c.books, book)
	if err := c.persist(); err != nil {
		c.books = c.books[:len(c.books)-1]
		return err
	}

	c.log.Info("book added", "title", book.Title, "kind", book.Kind(), "id", book.ID)
	return nil
}

// Find returns the first book whose title matches, ignoring case.
func (c *Catalog) Find(title string) (data.Book, bool) {
	i := c.indexOfTitle(title)
	if i < 0 {
		return data.Book{}, false
	}
	return c.books[i], true
}

func (c *Catalog) FindID(id uuid.UUID) (data.Book, bool) {
	i := c.indexOfID(id)
	if i < 0 {
		return data.Book{}, false
	}
	return c.books[i], true
}

// Edit replaces the first book matching title, keeping its position. It
// reports false when no book matches.
func (c *Catalog) Edit(title string, book data.Book) (bool, error) {
	return c.replace(c.indexOfTitle(title), book)
}

func (c *Catalog) EditID(id uuid.UUID, book data.Book) (bool, error) {
	return c.replace(c.indexOfID(id), book)
}

func (c *Catalog) replace(i int, book data.Book) (bool, error) {
	if i < 0 {
		return false, nil
	}
	if c.duplicates == DuplicatesReject {
		if j := c.indexOfTitle(book.Title); j >= 0 && j != i {
			return false, fmt.Errorf("%w: %q", ErrDuplicateTitle, book.Title)
		}
	}

	old := c.books[i]
	if book.ID == uuid.Nil {
		book.ID = old.ID
	}
	if book.Status == "" {
		book.Status = old.Status
	}

	c.books[i] = book
	if err := c.persist(); err != nil {
		c.books[i] = old
		return false, err
	}

	c.log.Info("book edited", "title", old.Title, "new_title", book.Title, "id", book.ID)
	return true, nil
}

// List returns the description of every book in catalog order.
func (c *Catalog) List() []string {
	out := make([]string, len(c.books))
	for i, b := range c.books {
		out[i] = b.Describe()
	}
	return out
}

// Books returns a copy of every book in catalog order.
func (c *Catalog) Books() []data.Book {
	return append([]data.Book(nil), c.books...)
}

// Search keeps the books whose description contains query, ignoring case.
// An empty query matches everything.
func (c *Catalog) Search(query string) []data.Book {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Books()
	}

	var out []data.Book
	for _, b := range c.books {
		if strings.Contains(strings.ToLower(b.Describe()), q) {
			out = append(out, b)
		}
	}
	return out
}

// Loaned returns the books currently on loan, in catalog order.
func (c *Catalog) Loaned() []data.Book {
	var out []data.Book
	for _, b := range c.books {
		if b.Status == data.StatusLoaned {
			out = append(out, b)
		}
	}
	return out
}

// Loan marks the first book matching title as loaned. Expected failures are
// reported through the Outcome; the error is only for persistence.
func (c *Catalog) Loan(title string) (Outcome, error) {
	return c.transition(c.indexOfTitle(title), data.StatusAvailable, data.StatusLoaned)
}

func (c *Catalog) LoanID(id uuid.UUID) (Outcome, error) {
	return c.transition(c.indexOfID(id), data.StatusAvailable, data.StatusLoaned)
}

// Return marks the first book matching title as available again.
func (c *Catalog) Return(title string) (Outcome, error) {
	return c.transition(c.indexOfTitle(title), data.StatusLoaned, data.StatusAvailable)
}

func (c *Catalog) ReturnID(id uuid.UUID) (Outcome, error) {
	return c.transition(c.indexOfID(id), data.StatusLoaned, data.StatusAvailable)
}

func (c *Catalog) transition(i int, from, to data.Status) (Outcome, error) {
	outcome := decide(c.at(i), from, to)
	if !outcome.OK() {
		return outcome, nil
	}

	c.books[i].Status = to
	if err := c.persist(); err != nil {
		c.books[i].Status = from
		return Outcome{Kind: OutcomeFailed, Book: c.books[i], Return: outcome.Return}, err
	}

	outcome.Book = c.books[i]
	c.log.Info("book status changed", "title", outcome.Book.Title, "status", to)
	return outcome, nil
}

func (c *Catalog) at(i int) *data.Book {
	if i < 0 {
		return nil
	}
	return &c.books[i]
}

func (c *Catalog) indexOfTitle(title string) int {
	for i, b := range c.books {
		if b.MatchesTitle(title) {
			return i
		}
	}
	return -1
}

func (c *Catalog) indexOfID(id uuid.UUID) int {
	if id == uuid.Nil {
		return -1
	}
	for i, b := range c.books {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) persist() error {
	if err := c.storage.Save(c.books); err != nil {
		c.log.Error("failed to save catalog", "error", err)
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	return nil
}

// Close releases the underlying storage.
func (c *Catalog) Close() error {
	return c.storage.Close()
}

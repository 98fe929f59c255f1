package data

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/marcboeker/go-duckdb/v2"
)

const booksSchema = `
CREATE TABLE IF NOT EXISTS books (
	position INTEGER NOT NULL,
	id VARCHAR NOT NULL,
	title VARCHAR NOT NULL,
	author VARCHAR NOT NULL,
	year_published INTEGER NOT NULL,
	status VARCHAR NOT NULL,
	file_size_mb DOUBLE,
	file_format VARCHAR,
	page_count INTEGER,
	weight_grams DOUBLE,
	cover_image_path VARCHAR
)`

// InitDuckDB opens the database at path, creating parent directories and
// the books table when needed.
func InitDuckDB(path string) (*sqlx.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sqlx.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(booksSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// DuckDBStorage keeps the catalog in a DuckDB table, one row per book, with
// an explicit position column for catalog order.
type DuckDBStorage struct {
	path string
	db   *sqlx.DB
}

// NewDuckDBStorage opens the database lazily so a missing file can still be
// reported as ErrStorageMissing on the first Load.
func NewDuckDBStorage(path string) *DuckDBStorage {
	return &DuckDBStorage{path: path}
}

func (s *DuckDBStorage) open() error {
	if s.db != nil {
		return nil
	}
	db, err := InitDuckDB(s.path)
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

func (s *DuckDBStorage) Load() ([]Book, error) {
	if s.db == nil {
		if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrStorageMissing, s.path)
		}
	}
	if err := s.open(); err != nil {
		return nil, err
	}

	var records []Record
	err := s.db.Select(&records, `
		SELECT id, title, author, year_published, status,
			file_size_mb, file_format, page_count, weight_grams, cover_image_path
		FROM books
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}

	return FromRecords(records)
}

func (s *DuckDBStorage) Save(books []Book) error {
	if err := s.open(); err != nil {
		return err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM books`); err != nil {
		return fmt.Errorf("failed to clear books: %w", err)
	}

	for i, r := range ToRecords(books) {
		_, err := tx.Exec(`
			INSERT INTO books (position, id, title, author, year_published, status,
				file_size_mb, file_format, page_count, weight_grams, cover_image_path)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, r.ID, r.Title, r.Author, r.YearPublished, r.Status,
			nullable(r.FileSizeMB), nullable(r.FileFormat), nullable(r.PageCount),
			nullable(r.WeightGrams), nullable(r.CoverImagePath),
		)
		if err != nil {
			return fmt.Errorf("failed to insert %q: %w", r.Title, err)
		}
	}

	return tx.Commit()
}

// nullable turns a record's optional column into a plain driver argument.
func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

func (s *DuckDBStorage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

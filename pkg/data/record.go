package data

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrStorageMissing is returned by Storage.Load when nothing has been
// persisted yet. Callers start with an empty catalog.
var ErrStorageMissing = errors.New("catalog storage not found")

// Storage persists the whole catalog as a single snapshot.
type Storage interface {
	Load() ([]Book, error)
	Save(books []Book) error
	Close() error
}

// Columns is the persisted row layout, in order.
var Columns = []string{
	"Title",
	"Author",
	"YearPublished",
	"Status",
	"FileSizeMB",
	"FileFormat",
	"PageCount",
	"WeightGrams",
	"CoverImagePath",
	"ID",
}

// Record is one persisted row. Nil pointers are the null marker for the
// columns that belong to the other variant.
type Record struct {
	Title          string   `json:"title" db:"title"`
	Author         string   `json:"author" db:"author"`
	YearPublished  int      `json:"year_published" db:"year_published"`
	Status         string   `json:"status" db:"status"`
	FileSizeMB     *float64 `json:"file_size_mb" db:"file_size_mb"`
	FileFormat     *string  `json:"file_format" db:"file_format"`
	PageCount      *int     `json:"page_count" db:"page_count"`
	WeightGrams    *float64 `json:"weight_grams" db:"weight_grams"`
	CoverImagePath *string  `json:"cover_image_path" db:"cover_image_path"`
	ID             string   `json:"id" db:"id"`
}

func ToRecord(b Book) Record {
	r := Record{
		Title:         b.Title,
		Author:        b.Author,
		YearPublished: b.YearPublished,
		Status:        string(b.Status),
	}
	if r.Status == "" {
		r.Status = string(StatusAvailable)
	}
	if b.ID != uuid.Nil {
		r.ID = b.ID.String()
	}
	if b.CoverImage != "" {
		cover := b.CoverImage
		r.CoverImagePath = &cover
	}

	switch v := b.Variant.(type) {
	case Digital:
		size, format := v.FileSizeMB, string(v.Format)
		r.FileSizeMB = &size
		r.FileFormat = &format
	case Physical:
		pages, weight := v.PageCount, v.WeightGrams
		r.PageCount = &pages
		r.WeightGrams = &weight
	}
	return r
}

// FromRecord rebuilds a Book. The variant is Digital exactly when the file
// size column is present; otherwise the row is Physical.
func FromRecord(r Record) (Book, error) {
	status, err := ParseStatus(r.Status)
	if err != nil {
		return Book{}, fmt.Errorf("book %q: %w", r.Title, err)
	}

	b := Book{
		Title:         r.Title,
		Author:        r.Author,
		YearPublished: r.YearPublished,
		Status:        status,
	}
	if r.CoverImagePath != nil {
		b.CoverImage = *r.CoverImagePath
	}

	if r.ID == "" {
		b.ID = uuid.New()
	} else if b.ID, err = uuid.Parse(r.ID); err != nil {
		return Book{}, fmt.Errorf("book %q: invalid id: %w", r.Title, err)
	}

	if r.FileSizeMB != nil {
		d := Digital{FileSizeMB: *r.FileSizeMB}
		if r.FileFormat != nil {
			if d.Format, err = ParseFormat(*r.FileFormat); err != nil {
				return Book{}, fmt.Errorf("book %q: %w", r.Title, err)
			}
		}
		b.Variant = d
		return b, nil
	}

	p := Physical{}
	if r.PageCount != nil {
		p.PageCount = *r.PageCount
	}
	if r.WeightGrams != nil {
		p.WeightGrams = *r.WeightGrams
	}
	b.Variant = p
	return b, nil
}

// ToRecords converts a catalog snapshot for writing.
func ToRecords(books []Book) []Record {
	out := make([]Record, len(books))
	for i, b := range books {
		out[i] = ToRecord(b)
	}
	return out
}

// FromRecords converts rows read from storage, stopping at the first bad row.
func FromRecords(records []Record) ([]Book, error) {
	out := make([]Book, 0, len(records))
	for i, r := range records {
		b, err := FromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out = append(out, b)
	}
	return out, nil
}
